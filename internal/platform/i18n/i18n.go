// Package i18n resolves the user's language and hands out message printers
// backed by the embedded catalogs.
package i18n

import (
	"strings"

	"github.com/louisbranch/scorekeeper/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supportedTags = []language.Tag{
	language.MustParse("en-US"),
	language.MustParse("pt-BR"),
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return supportedTags[0]
}

// ResolveTag matches a requested locale such as "pt", "pt_BR" or
// "en-GB,en;q=0.8" against the supported catalogs.
func ResolveTag(requested string) language.Tag {
	requested = strings.ReplaceAll(strings.TrimSpace(requested), "_", "-")
	if requested == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	_, index, confidence := tagMatcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supportedTags[index]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	catalog.Default()
	return message.NewPrinter(tag)
}
