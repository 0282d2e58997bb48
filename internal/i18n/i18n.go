// Package i18n loads flat JSON message catalogs and resolves translated
// strings with {{name}} placeholders.
package i18n

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	LangEN = "en"
	LangES = "es"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

type catalog map[string]string

type Manager struct {
	defaultLanguage string
	catalogs        map[string]catalog
}

// NewManager reads every <language>.json file in localesDir. The English
// catalog is mandatory; an unsupported defaultLanguage falls back to it.
func NewManager(defaultLanguage string, localesDir string) (*Manager, error) {
	return NewManagerFS(defaultLanguage, os.DirFS(localesDir))
}

func NewManagerFS(defaultLanguage string, locales fs.FS) (*Manager, error) {
	names, err := fs.Glob(locales, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no locales found")
	}

	manager := &Manager{catalogs: make(map[string]catalog, len(names))}
	for _, name := range names {
		language := strings.ToLower(strings.TrimSuffix(name, path.Ext(name)))
		messages, err := readCatalog(locales, name)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", language, err)
		}
		manager.catalogs[language] = messages
	}

	if _, ok := manager.catalogs[LangEN]; !ok {
		return nil, fmt.Errorf("required locale %q missing", LangEN)
	}

	manager.defaultLanguage = LangEN
	if language := baseLanguage(defaultLanguage); manager.supports(language) {
		manager.defaultLanguage = language
	}
	return manager, nil
}

func readCatalog(locales fs.FS, name string) (catalog, error) {
	content, err := fs.ReadFile(locales, name)
	if err != nil {
		return nil, err
	}
	messages := catalog{}
	if err := json.Unmarshal(content, &messages); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	return messages, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

// SupportedLanguages returns the loaded language codes in sorted order.
func (manager *Manager) SupportedLanguages() []string {
	languages := make([]string, 0, len(manager.catalogs))
	for language := range manager.catalogs {
		languages = append(languages, language)
	}
	slices.Sort(languages)
	return languages
}

func (manager *Manager) NormalizeLanguage(raw string) string {
	if language := baseLanguage(raw); manager.supports(language) {
		return language
	}
	return manager.defaultLanguage
}

// DetectFromAcceptLanguage picks the supported language with the highest
// q-value; ties keep header order.
func (manager *Manager) DetectFromAcceptLanguage(header string) string {
	type candidate struct {
		language string
		weight   float64
	}

	var candidates []candidate
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(part, ";")
		language := baseLanguage(tag)
		if !manager.supports(language) {
			continue
		}
		weight := 1.0
		if value, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if parsed, err := strconv.ParseFloat(value, 64); err == nil {
				weight = parsed
			}
		}
		if weight > 0 {
			candidates = append(candidates, candidate{language: language, weight: weight})
		}
	}
	if len(candidates) == 0 {
		return manager.defaultLanguage
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return cmp.Compare(b.weight, a.weight)
	})
	return candidates[0].language
}

// Translate resolves key in language, then the default language, then
// English, and returns the key itself when no catalog has a non-blank value.
func (manager *Manager) Translate(language string, key string, params map[string]string) string {
	for _, candidate := range []string{manager.NormalizeLanguage(language), manager.defaultLanguage, LangEN} {
		if message := manager.catalogs[candidate][key]; strings.TrimSpace(message) != "" {
			return interpolate(message, params)
		}
	}
	return key
}

// interpolate replaces {{name}} with params[name] and leaves unknown
// placeholders untouched.
func interpolate(message string, params map[string]string) string {
	if len(params) == 0 {
		return message
	}
	return placeholderPattern.ReplaceAllStringFunc(message, func(placeholder string) string {
		name := placeholderPattern.FindStringSubmatch(placeholder)[1]
		if value, ok := params[name]; ok {
			return value
		}
		return placeholder
	})
}

func (manager *Manager) supports(language string) bool {
	_, ok := manager.catalogs[language]
	return ok
}

// baseLanguage reduces a tag such as "es-MX" or "ES_es" to "es".
func baseLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if index := strings.IndexAny(tag, "-_"); index >= 0 {
		tag = tag[:index]
	}
	return tag
}
