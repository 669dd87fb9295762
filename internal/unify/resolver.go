// Package unify collapses duplicate complex-property records into one
// canonical listing and rolls up financial/physical figures across the units
// of a complex. It is a pure in-memory transform re-run on every fetch or
// filter change; nothing here caches or mutates the input records.
package unify

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// complexPattern captures the shared "Complexo X" prefix so that
// "Complexo Agamenon — Loja 1" and "Complexo Agamenon — Loja 2" key together.
var complexPattern = regexp.MustCompile(`complexo\s+\w+`)

// Normalize trims, lowercases and strips diacritics from a display name so
// "Complexo Agamenón" and "complexo agamenon" compare equal.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ComplexKey extracts the "complexo <word>" grouping key from a name, or ""
// when the name does not follow the complex naming convention.
func ComplexKey(name string) string {
	return complexPattern.FindString(Normalize(name))
}

// GroupKey returns the grouping key for a record name: the complex-pattern key
// when present, otherwise the full normalized name. An empty name yields an
// empty key; callers must treat empty keys as ungroupable rather than collapse
// unnamed records into one another.
func GroupKey(name string) string {
	n := Normalize(name)
	if key := complexPattern.FindString(n); key != "" {
		return key
	}
	return n
}
