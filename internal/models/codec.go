package models

import "strings"

// DefaultSeparator bounds and separates list elements in their persisted form.
const DefaultSeparator = "::"

// EncodeList serialises items into separator-bounded text: the empty list
// becomes a lone separator, {A, B} becomes "::A::B::". The bounding
// separators let SQL callers match whole tokens with a "%::X::%" pattern
// without partial-string false positives.
func EncodeList(items []string, sep string) string {
	if len(items) == 0 {
		return sep
	}
	return sep + strings.Join(items, sep) + sep
}

// DecodeList reverses EncodeList, dropping the empty fragments produced by
// the bounding separators.
func DecodeList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
