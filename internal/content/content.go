// Package content loads the bilingual marketing copy (plans, supported
// regulations, capabilities, contact details) from an embedded YAML file.
package content

import (
	_ "embed"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/DukeRupert/aqdi/internal/locale"
)

//go:embed content.yaml
var raw []byte

// latinDigits groups thousands with commas. Prices use Latin digits in
// both languages.
var latinDigits = message.NewPrinter(language.English)

// Text is a string in both UI languages.
type Text struct {
	AR string `yaml:"ar"`
	EN string `yaml:"en"`
}

// In returns the text for l, falling back to Arabic.
func (t Text) In(l locale.Locale) string {
	if l == locale.English && t.EN != "" {
		return t.EN
	}
	return t.AR
}

type Contact struct {
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

type Stat struct {
	Value string `yaml:"value"`
	Label Text   `yaml:"label"`
}

// Plan is a subscription tier. Price is in SAR per month.
type Plan struct {
	ID       string `yaml:"id"`
	Name     Text   `yaml:"name"`
	Price    int    `yaml:"price"`
	Popular  bool   `yaml:"popular"`
	Features []Text `yaml:"features"`
	Color    string `yaml:"color"`
	Button   string `yaml:"button"`
}

// PriceIn formats the monthly price with thousands separators and the
// currency for l, e.g. "1,999 SAR" or "1,999 ر.س".
func (p Plan) PriceIn(l locale.Locale) string {
	currency := "ر.س"
	if l == locale.English {
		currency = "SAR"
	}
	return latinDigits.Sprintf("%d %s", p.Price, currency)
}

type Law struct {
	Icon string `yaml:"icon"`
	Name Text   `yaml:"name"`
}

type Capability struct {
	Title Text `yaml:"title"`
	Body  Text `yaml:"body"`
}

// Content is the full marketing copy.
type Content struct {
	Contact      Contact      `yaml:"contact"`
	Stats        []Stat       `yaml:"stats"`
	Plans        []Plan       `yaml:"plans"`
	Laws         []Law        `yaml:"laws"`
	Capabilities []Capability `yaml:"capabilities"`
}

// Load parses the embedded content file.
func Load() (*Content, error) {
	return Parse(raw)
}

// Parse decodes and validates a content document.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) validate() error {
	if len(c.Plans) == 0 {
		return fmt.Errorf("content: no plans defined")
	}
	seen := make(map[string]bool, len(c.Plans))
	for i, p := range c.Plans {
		if p.ID == "" {
			return fmt.Errorf("content: plan %d has no id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("content: duplicate plan id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Name.AR == "" || p.Name.EN == "" {
			return fmt.Errorf("content: plan %q needs both names", p.ID)
		}
		if p.Price < 0 {
			return fmt.Errorf("content: plan %q has a negative price", p.ID)
		}
	}
	return nil
}

