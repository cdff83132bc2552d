// Package i18n renders coded domain errors in the user's language from the
// "errors" namespace of the message catalogs.
package i18n

import (
	"strings"
	"sync"
	"text/template"

	apperrors "github.com/louisbranch/scorekeeper/internal/platform/errors"
	"github.com/louisbranch/scorekeeper/internal/platform/i18n/catalog"
)

// Catalog holds the error message templates of one locale.
type Catalog struct {
	locale    string
	raw       map[apperrors.Code]string
	templates map[apperrors.Code]*template.Template
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*Catalog{}
)

// GetCatalog returns the error catalog for locale. Locales without error
// messages, including the blank locale, use the base locale.
func GetCatalog(locale string) *Catalog {
	bundle := catalog.Default()
	locale = strings.TrimSpace(locale)
	messages := bundle.NamespaceMessages(locale, catalog.NamespaceErrors)
	if len(messages) == 0 {
		locale = catalog.BaseLocale
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if c, ok := cache[locale]; ok {
		return c
	}
	if len(messages) == 0 {
		messages = bundle.NamespaceMessages(locale, catalog.NamespaceErrors)
	}
	c := NewCatalog(locale, messages)
	cache[locale] = c
	return c
}

// NewCatalog builds a catalog from code to template text. Text that is not a
// valid template is rendered verbatim.
func NewCatalog(locale string, messages map[string]string) *Catalog {
	c := &Catalog{
		locale:    locale,
		raw:       make(map[apperrors.Code]string, len(messages)),
		templates: make(map[apperrors.Code]*template.Template, len(messages)),
	}
	for code, text := range messages {
		c.raw[apperrors.Code(code)] = text
		if tmpl, err := template.New(code).Parse(text); err == nil {
			c.templates[apperrors.Code(code)] = tmpl
		}
	}
	return c
}

// Locale returns the locale the catalog renders.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for code with metadata. Unknown codes render
// as the code itself.
func (c *Catalog) Format(code apperrors.Code, metadata map[string]string) string {
	raw, ok := c.raw[code]
	if !ok {
		return string(code)
	}
	tmpl, ok := c.templates[code]
	if !ok {
		return raw
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, metadata); err != nil {
		return raw
	}
	return b.String()
}

// Message renders err if it carries a domain error code.
func (c *Catalog) Message(err error) (string, bool) {
	domainErr, ok := apperrors.As(err)
	if !ok {
		return "", false
	}
	return c.Format(domainErr.Code, domainErr.Metadata), true
}
