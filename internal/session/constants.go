// Package session keeps one submission container per visitor, keyed by an
// opaque cookie, and expires idle visitors.
package session

const (
	// CookieName is the name of the cookie that stores the session id.
	CookieName = "aqdi_session"

	// CookiePath ensures the cookie is sent with all requests.
	CookiePath = "/"
)
