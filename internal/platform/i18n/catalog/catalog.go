// Package catalog loads scorekeeper's embedded message catalogs and registers
// them with golang.org/x/text/message.
//
// Each file lives at locales/<locale>/<namespace>.yaml and holds one of the
// two namespaces: "errors" (templates keyed by domain error code) and "tui"
// (printf-style terminal strings):
//
//	locale: "pt-BR"
//	namespace: "tui"
//	messages:
//	  "tui.game.round": "Rodada %d"
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// BaseLocale is the locale every other catalog is translated from.
	BaseLocale = "en-US"

	// NamespaceErrors holds domain error templates.
	NamespaceErrors = "errors"
	// NamespaceTUI holds terminal UI strings.
	NamespaceTUI = "tui"
)

var knownNamespaces = []string{NamespaceErrors, NamespaceTUI}

// Bundle holds messages by locale, then namespace, then key.
type Bundle struct {
	locales map[string]map[string]map[string]string
}

//go:embed locales/*/*.yaml
var embedded embed.FS

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
)

// Default returns the embedded bundle, registering its messages with
// x/text on first use. Broken embedded catalogs panic.
func Default() *Bundle {
	defaultOnce.Do(func() {
		bundle, err := LoadEmbedded()
		if err == nil {
			err = bundle.register()
		}
		if err != nil {
			panic(fmt.Sprintf("load message catalogs: %v", err))
		}
		defaultBundle = bundle
	})
	return defaultBundle
}

// LoadEmbedded parses the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS parses every locales/<locale>/<namespace>.yaml in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}

	bundle := &Bundle{locales: map[string]map[string]map[string]string{}}
	for _, p := range paths {
		locale := path.Base(path.Dir(p))
		namespace := strings.TrimSuffix(path.Base(p), ".yaml")
		if !slices.Contains(knownNamespaces, namespace) {
			return nil, fmt.Errorf("%s: unknown namespace %q", p, namespace)
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		parsed, err := parseFile(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if parsed.locale != locale || parsed.namespace != namespace {
			return nil, fmt.Errorf("%s: header says %s/%s", p, parsed.locale, parsed.namespace)
		}
		if err := bundle.add(locale, namespace, parsed.entries); err != nil {
			return nil, err
		}
	}

	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s has no catalogs", BaseLocale)
	}
	return bundle, nil
}

// add stores one namespace. x/text keys are flat per locale, so a key may
// appear in only one namespace of a locale.
func (b *Bundle) add(locale, namespace string, entries map[string]string) error {
	byNamespace, ok := b.locales[locale]
	if !ok {
		byNamespace = map[string]map[string]string{}
		b.locales[locale] = byNamespace
	}
	for key := range entries {
		for other, existing := range byNamespace {
			if _, dup := existing[key]; dup {
				return fmt.Errorf("%s: key %q in %s is already defined in %s", locale, key, namespace, other)
			}
		}
	}
	byNamespace[namespace] = entries
	return nil
}

func (b *Bundle) register() error {
	for locale, byNamespace := range b.locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("locale %q: %w", locale, err)
		}
		for _, entries := range byNamespace {
			for key, text := range entries {
				if err := message.SetString(tag, key, text); err != nil {
					return fmt.Errorf("register %s %s: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether any catalog exists for locale.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the loaded locales, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.locales))
}

// Namespaces returns the namespaces loaded for locale, sorted.
func (b *Bundle) Namespaces(locale string) []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.locales[strings.TrimSpace(locale)]))
}

// NamespaceMessages returns a copy of one namespace of locale. Missing
// locales and namespaces yield an empty map.
func (b *Bundle) NamespaceMessages(locale, namespace string) map[string]string {
	out := map[string]string{}
	if b != nil {
		maps.Copy(out, b.locales[strings.TrimSpace(locale)][namespace])
	}
	return out
}

// LocaleMessages returns a copy of every namespace of locale merged together.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	out := map[string]string{}
	if b != nil {
		for _, entries := range b.locales[strings.TrimSpace(locale)] {
			maps.Copy(out, entries)
		}
	}
	return out
}

type catalogFile struct {
	locale    string
	namespace string
	entries   map[string]string
}

// parseFile reads the header lines and the messages block of one catalog.
func parseFile(data []byte) (catalogFile, error) {
	out := catalogFile{entries: map[string]string{}}
	inMessages := false

	for n, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || line[0] == '#':
			continue
		case line == "messages:":
			inMessages = true
			continue
		case !inMessages:
			if err := out.setHeader(line); err != nil {
				return catalogFile{}, fmt.Errorf("line %d: %w", n+1, err)
			}
			continue
		}

		key, text, err := parseEntry(line)
		if err != nil {
			return catalogFile{}, fmt.Errorf("line %d: %w", n+1, err)
		}
		if _, dup := out.entries[key]; dup {
			return catalogFile{}, fmt.Errorf("line %d: duplicate key %q", n+1, key)
		}
		out.entries[key] = text
	}

	switch {
	case out.locale == "":
		return catalogFile{}, fmt.Errorf("missing locale header")
	case out.namespace == "":
		return catalogFile{}, fmt.Errorf("missing namespace header")
	case len(out.entries) == 0:
		return catalogFile{}, fmt.Errorf("no messages")
	}
	return out, nil
}

func (f *catalogFile) setHeader(line string) error {
	name, value, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("expected header, got %q", line)
	}
	text, err := strconv.Unquote(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("header %q: value must be quoted", name)
	}
	switch strings.TrimSpace(name) {
	case "locale":
		f.locale = text
	case "namespace":
		f.namespace = text
	default:
		return fmt.Errorf("unknown header %q", name)
	}
	return nil
}

// parseEntry splits `"key": "text"`; both sides are Go-quoted strings.
func parseEntry(line string) (string, string, error) {
	quotedKey, err := strconv.QuotedPrefix(line)
	if err != nil {
		return "", "", fmt.Errorf("key must be a quoted string: %q", line)
	}
	key, _ := strconv.Unquote(quotedKey)
	if strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("blank key")
	}

	rest, ok := strings.CutPrefix(strings.TrimSpace(line[len(quotedKey):]), ":")
	if !ok {
		return "", "", fmt.Errorf("key %q: missing ':'", key)
	}
	text, err := strconv.Unquote(strings.TrimSpace(rest))
	if err != nil {
		return "", "", fmt.Errorf("key %q: text must be a quoted string", key)
	}
	return key, text, nil
}
