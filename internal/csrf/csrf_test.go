package csrf

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(seen *string) http.Handler {
	mw := NewMiddleware(false, 1<<20, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = Token(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
}

func TestValidateToken(t *testing.T) {
	assert.True(t, ValidateToken("abc", "abc"))
	assert.False(t, ValidateToken("abc", "abd"))
	assert.False(t, ValidateToken("", ""))
	assert.False(t, ValidateToken("abc", ""))
}

func TestMiddleware_GetIssuesCookie(t *testing.T) {
	var seen string
	rec := httptest.NewRecorder()
	newHandler(&seen).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, seen, cookies[0].Value)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}

func TestMiddleware_GetReusesCookie(t *testing.T) {
	var seen string
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "existing"})
	rec := httptest.NewRecorder()
	newHandler(&seen).ServeHTTP(rec, req)

	assert.Equal(t, "existing", seen)
	assert.Empty(t, rec.Result().Cookies())
}

func TestMiddleware_Post(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		form   string
		want   int
	}{
		{"header matches", "tok", "tok", "", http.StatusOK},
		{"form matches", "tok", "", "tok", http.StatusOK},
		{"header mismatch", "tok", "other", "", http.StatusForbidden},
		{"no cookie", "", "tok", "", http.StatusForbidden},
		{"nothing echoed", "tok", "", "", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := url.Values{}
			if tt.form != "" {
				body.Set(FormFieldName, tt.form)
			}
			req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(body.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set(HeaderName, tt.header)
			}

			rec := httptest.NewRecorder()
			newHandler(nil).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
