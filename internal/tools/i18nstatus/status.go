// Package i18nstatus reports how complete each message catalog locale is
// relative to the base locale.
package i18nstatus

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	i18ncatalog "github.com/louisbranch/scorekeeper/internal/platform/i18n/catalog"
)

// Report summarizes every locale against the base locale.
type Report struct {
	BaseLocale string
	Locales    []LocaleStatus
}

// LocaleStatus counts translated, missing and extra keys for one locale.
type LocaleStatus struct {
	Locale      string
	BaseKeys    int
	Translated  int
	Completion  float64
	Namespaces  []NamespaceStatus
	MissingKeys []string
	ExtraKeys   []string
}

// NamespaceStatus is the per-namespace slice of a LocaleStatus.
type NamespaceStatus struct {
	Namespace  string
	BaseKeys   int
	Translated int
	Missing    int
	Extra      int
	Completion float64
}

// Build compares every locale in bundle with baseLocale.
func Build(bundle *i18ncatalog.Bundle, baseLocale string) (Report, error) {
	if !bundle.HasLocale(baseLocale) {
		return Report{}, fmt.Errorf("base locale %q is missing from catalogs", baseLocale)
	}
	baseMessages := bundle.LocaleMessages(baseLocale)
	baseNamespaces := bundle.Namespaces(baseLocale)

	rep := Report{BaseLocale: baseLocale}
	for _, locale := range bundle.Locales() {
		messages := bundle.LocaleMessages(locale)
		missing := diffKeys(baseMessages, messages)
		status := LocaleStatus{
			Locale:      locale,
			BaseKeys:    len(baseMessages),
			Translated:  len(baseMessages) - len(missing),
			MissingKeys: missing,
			ExtraKeys:   diffKeys(messages, baseMessages),
		}
		status.Completion = percent(status.Translated, status.BaseKeys)

		for _, namespace := range unionSorted(baseNamespaces, bundle.Namespaces(locale)) {
			baseNS := bundle.NamespaceMessages(baseLocale, namespace)
			localeNS := bundle.NamespaceMessages(locale, namespace)
			nsMissing := len(diffKeys(baseNS, localeNS))
			status.Namespaces = append(status.Namespaces, NamespaceStatus{
				Namespace:  namespace,
				BaseKeys:   len(baseNS),
				Translated: len(baseNS) - nsMissing,
				Missing:    nsMissing,
				Extra:      len(diffKeys(localeNS, baseNS)),
				Completion: percent(len(baseNS)-nsMissing, len(baseNS)),
			})
		}
		rep.Locales = append(rep.Locales, status)
	}
	return rep, nil
}

// Incomplete returns an error naming every locale with missing or extra keys.
func (r Report) Incomplete() error {
	var problems []string
	for _, locale := range r.Locales {
		if len(locale.MissingKeys) > 0 {
			problems = append(problems, fmt.Sprintf("%s missing %s", locale.Locale, strings.Join(locale.MissingKeys, ", ")))
		}
		if len(locale.ExtraKeys) > 0 {
			problems = append(problems, fmt.Sprintf("%s has extra %s", locale.Locale, strings.Join(locale.ExtraKeys, ", ")))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("catalogs out of sync: %s", strings.Join(problems, "; "))
}

// WriteMarkdown renders the report as markdown tables.
func (r Report) WriteMarkdown(w io.Writer) error {
	var b strings.Builder
	b.WriteString("# I18n Status\n\n")
	fmt.Fprintf(&b, "Base locale: `%s`.\n\n", r.BaseLocale)
	b.WriteString("| Locale | Base Keys | Translated | Missing | Extra | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
	for _, locale := range r.Locales {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %.1f%% |\n",
			locale.Locale, locale.BaseKeys, locale.Translated, len(locale.MissingKeys), len(locale.ExtraKeys), locale.Completion)
	}

	for _, locale := range r.Locales {
		fmt.Fprintf(&b, "\n## `%s`\n\n", locale.Locale)
		b.WriteString("| Namespace | Base Keys | Translated | Missing | Extra | Completion |\n")
		b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
		for _, ns := range locale.Namespaces {
			fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %.1f%% |\n",
				ns.Namespace, ns.BaseKeys, ns.Translated, ns.Missing, ns.Extra, ns.Completion)
		}
		writeKeyList(&b, "Missing keys", locale.MissingKeys)
		writeKeyList(&b, "Extra keys", locale.ExtraKeys)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeKeyList(b *strings.Builder, title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, key := range keys {
		fmt.Fprintf(b, "- `%s`\n", key)
	}
}

// diffKeys returns the sorted keys of from that are absent in other.
func diffKeys(from, other map[string]string) []string {
	var out []string
	for key := range from {
		if _, ok := other[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func unionSorted(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		set[v] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func percent(numerator, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
