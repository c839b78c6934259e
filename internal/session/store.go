package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/DukeRupert/aqdi/internal/metrics"
	"github.com/DukeRupert/aqdi/internal/submission"
	"github.com/google/uuid"
)

// Session is one visitor's server-side state.
type Session struct {
	ID        string
	Container *submission.Container

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Options configures a Store.
type Options struct {
	TTL      time.Duration
	IsSecure bool
	Logger   *slog.Logger

	// NewContainer builds the container for a new visitor. The session id
	// is passed so containers can scope their staged files.
	NewContainer func(id string) *submission.Container

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Store is an in-memory session table.
type Store struct {
	opts Options

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty store.
func NewStore(opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = 2 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Load returns the visitor's session, creating it and setting the cookie
// when the request carries no cookie or an unknown or expired id.
func (s *Store) Load(w http.ResponseWriter, r *http.Request) *Session {
	now := s.opts.Now()

	if cookie, err := r.Cookie(CookieName); err == nil {
		if sess, ok := s.Get(cookie.Value); ok && sess.idleSince(now) <= s.opts.TTL {
			sess.touch(now)
			return sess
		}
	}

	sess := s.create(now)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     CookiePath,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.IsSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Get looks up a session by id without touching it.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) create(now time.Time) *Session {
	id := uuid.NewString()
	sess := &Session{
		ID:        id,
		Container: s.opts.NewContainer(id),
		lastSeen:  now,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	s.opts.Logger.Debug("session created", "session_id", id)
	return sess
}

// Sweep closes and removes sessions idle longer than the TTL. It returns
// the number removed.
func (s *Store) Sweep() int {
	now := s.opts.Now()

	var expired []*Session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.opts.TTL {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Container.Close()
	}
	metrics.ActiveSessions.Set(float64(n))

	if len(expired) > 0 {
		s.opts.Logger.Info("expired idle sessions", "count", len(expired), "active", n)
	}
	return len(expired)
}

// Run sweeps expired sessions every interval until ctx is done, then
// closes every remaining session.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Close closes every session's container and empties the store.
func (s *Store) Close() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.Container.Close()
	}
	metrics.ActiveSessions.Set(0)
}
