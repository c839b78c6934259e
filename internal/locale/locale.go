// Package locale holds the active display language for a browser session.
//
// The locale is a two-value enum. It travels on the request context rather
// than living in a package variable: the locale middleware resolves it once
// per request (cookie, then Accept-Language, then the Arabic default) and the
// toggle handler is the only code that changes it.
package locale

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

// Locale is the active display language.
type Locale string

const (
	Arabic  Locale = "ar"
	English Locale = "en"

	// Default is the locale used when nothing else is known about the visitor.
	Default = Arabic

	// CookieName stores the visitor's explicit choice.
	CookieName = "aqdi_lang"

	// CookieMaxAge keeps the choice for a year.
	CookieMaxAge = 365 * 24 * 60 * 60
)

// Parse returns the locale for s and whether s was a recognized value.
func Parse(s string) (Locale, bool) {
	switch Locale(s) {
	case Arabic:
		return Arabic, true
	case English:
		return English, true
	}
	return Default, false
}

// String returns the locale code.
func (l Locale) String() string {
	return string(l)
}

// Toggle flips Arabic and English.
func (l Locale) Toggle() Locale {
	if l == Arabic {
		return English
	}
	return Arabic
}

// IsArabic reports whether text should be laid out right to left.
func (l Locale) IsArabic() bool {
	return l == Arabic
}

// Dir is the value for the HTML dir attribute.
func (l Locale) Dir() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

// HTMLLang is the value for the HTML lang attribute.
func (l Locale) HTMLLang() string {
	return string(l)
}

// FontClass is the CSS class selecting the display font family.
func (l Locale) FontClass() string {
	if l == Arabic {
		return "font-cairo"
	}
	return "font-inter"
}

// Tag returns the BCP 47 tag for the locale.
func (l Locale) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.Arabic
}

// =============================================================================
// Negotiation
// =============================================================================

// supported is ordered so that index 0 (Arabic) is the matcher's fallback.
var supported = []language.Tag{language.Arabic, language.English}

var matcher = language.NewMatcher(supported)

// FromAcceptLanguage picks the best supported locale for an Accept-Language
// header value. Anything unparseable resolves to the default.
func FromAcceptLanguage(header string) Locale {
	if header == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	if supported[index] == language.English {
		return English
	}
	return Arabic
}

// Resolve determines the locale for a request: an explicit cookie choice
// wins, then the browser's Accept-Language preference.
func Resolve(r *http.Request) Locale {
	if c, err := r.Cookie(CookieName); err == nil {
		if l, ok := Parse(c.Value); ok {
			return l
		}
	}
	return FromAcceptLanguage(r.Header.Get("Accept-Language"))
}

// SetCookie records an explicit locale choice.
func SetCookie(w http.ResponseWriter, l Locale, isSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    l.String(),
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// =============================================================================
// Context
// =============================================================================

type contextKey struct{}

// WithLocale returns a copy of ctx carrying l.
func WithLocale(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the locale stored in ctx, or the default.
func FromContext(ctx context.Context) Locale {
	if l, ok := ctx.Value(contextKey{}).(Locale); ok {
		return l
	}
	return Default
}
