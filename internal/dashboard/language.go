package dashboard

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const UnknownLanguage = "Unknown"

//go:embed languages.yaml
var languageTableYAML []byte

type languageTable struct {
	Version   int `yaml:"version"`
	Languages []struct {
		Name    string   `yaml:"name"`
		Aliases []string `yaml:"aliases"`
	} `yaml:"languages"`
}

var languageAliases = mustLoadLanguageAliases(languageTableYAML)

func mustLoadLanguageAliases(raw []byte) map[string]string {
	aliases, err := loadLanguageAliases(raw)
	if err != nil {
		panic(err)
	}
	return aliases
}

func loadLanguageAliases(raw []byte) (map[string]string, error) {
	var tbl languageTable
	if err := yaml.Unmarshal(raw, &tbl); err != nil {
		return nil, fmt.Errorf("parse language table: %w", err)
	}
	if len(tbl.Languages) == 0 {
		return nil, fmt.Errorf("language table is empty")
	}
	out := make(map[string]string, len(tbl.Languages)*3)
	for _, lang := range tbl.Languages {
		name := strings.TrimSpace(lang.Name)
		if name == "" {
			return nil, fmt.Errorf("language table: entry without name")
		}
		keys := append([]string{name}, lang.Aliases...)
		for _, k := range keys {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				continue
			}
			if prev, ok := out[k]; ok && prev != name {
				return nil, fmt.Errorf("language table: alias %q maps to both %q and %q", k, prev, name)
			}
			out[k] = name
		}
	}
	return out, nil
}

// CanonicalLanguage maps a raw language alias to its display name. Unknown
// names are returned with only the first letter upper-cased.
func CanonicalLanguage(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" || key == "null" || key == "undefined" {
		return UnknownLanguage
	}
	if name, ok := languageAliases[key]; ok {
		return name
	}
	first, size := utf8.DecodeRuneInString(key)
	return string(unicode.ToUpper(first)) + key[size:]
}

// KnownLanguages lists the canonical names of the alias table.
func KnownLanguages() []string {
	seen := map[string]bool{}
	var out []string
	for _, name := range languageAliases {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
