// Package i18n provides the translation lookup capability consumed by
// the UI. Tables are flat key/string maps, optionally loaded from yaml.
package i18n

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Translator resolves a message key, returning fallback when the key
// has no translation.
type Translator interface {
	T(key, fallback string) string
}

// Noop returns the fallback for every key.
type Noop struct{}

var _ Translator = Noop{}

// T implements Translator.
func (Noop) T(_, fallback string) string { return fallback }

// Table is a flat key-to-string translation table.
type Table map[string]string

var _ Translator = Table{}

// T implements Translator.
func (t Table) T(key, fallback string) string {
	if s, ok := t[key]; ok && s != "" {
		return s
	}
	return fallback
}

// builtin holds the default English table. Keys missing here fall back
// to the literal passed at the call site, so the table only needs
// entries that differ from the source text.
var builtin = Table{}

// Load returns the table for a language, layered over the built-in
// defaults. If file is non-empty it must be a yaml map of languages to
// tables; unknown languages simply yield the defaults.
func Load(language, file string) (Table, error) {
	table := Table{}
	for k, v := range builtin {
		table[k] = v
	}

	if file == "" {
		return table, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return table, fmt.Errorf("read strings file: %w", err)
	}

	var byLanguage map[string]Table
	if err := yaml.Unmarshal(data, &byLanguage); err != nil {
		return table, fmt.Errorf("parse strings file %s: %w", file, err)
	}

	for k, v := range byLanguage[language] {
		table[k] = v
	}

	return table, nil
}
