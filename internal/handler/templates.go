package handler

import (
	"fmt"
	"html/template"
	"time"

	"github.com/DukeRupert/aqdi/internal/i18n"
	"github.com/DukeRupert/aqdi/internal/locale"
)

// TemplateFuncs returns the template helpers. Message lookups go through
// cat, so every template call names its locale explicitly.
func TemplateFuncs(cat *i18n.Catalog) template.FuncMap {
	return template.FuncMap{
		// Localization
		"t": func(l locale.Locale, key string, args ...any) string {
			return cat.T(l, key, args...)
		},
		"dir": func(l locale.Locale) string {
			return l.Dir()
		},
		"font": func(l locale.Locale) string {
			return l.FontClass()
		},

		// Math
		"add": func(a, b int) int {
			return a + b
		},

		// Date/Time
		"year": func() int {
			return time.Now().Year()
		},

		// Formatting
		"formatBytes": formatBytes,

		// Collections
		"list": func(values ...string) []string {
			return values
		},

		// Form helpers
		"csrfField": func(token string) template.HTML {
			return template.HTML(fmt.Sprintf(`<input type="hidden" name="csrf_token" value="%s">`, template.HTMLEscapeString(token)))
		},
	}
}

// formatBytes renders a size as B, KB or MB with one decimal.
func formatBytes(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
