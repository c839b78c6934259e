package i18n

import (
	"fmt"

	"github.com/DukeRupert/aqdi/internal/locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Catalog resolves UI copy by message key for each locale.
type Catalog struct {
	printers map[locale.Locale]*message.Printer
	keys     map[string]struct{}
}

// NewCatalog builds the catalog from the built-in message table.
func NewCatalog() (*Catalog, error) {
	return newCatalog(messages)
}

// MustCatalog is NewCatalog for package initialisation and tests.
func MustCatalog() *Catalog {
	c, err := NewCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func newCatalog(table map[string]entry) (*Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.Arabic))
	keys := make(map[string]struct{}, len(table))
	for key, e := range table {
		keys[key] = struct{}{}
		if err := b.SetString(language.Arabic, key, e.ar); err != nil {
			return nil, fmt.Errorf("set arabic message %q: %w", key, err)
		}
		if err := b.SetString(language.English, key, e.en); err != nil {
			return nil, fmt.Errorf("set english message %q: %w", key, err)
		}
	}

	return &Catalog{
		printers: map[locale.Locale]*message.Printer{
			locale.Arabic:  message.NewPrinter(language.Arabic, message.Catalog(b)),
			locale.English: message.NewPrinter(language.English, message.Catalog(b)),
		},
		keys: keys,
	}, nil
}

// T returns the message for key in locale l. Unknown keys render as the key
// itself so a missing translation is visible rather than blank.
func (c *Catalog) T(l locale.Locale, key string, args ...any) string {
	p, ok := c.printers[l]
	if !ok {
		p = c.printers[locale.Default]
	}
	return p.Sprintf(key, args...)
}

// Has reports whether key is defined.
func (c *Catalog) Has(key string) bool {
	_, ok := c.keys[key]
	return ok
}
