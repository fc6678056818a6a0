package models

import (
	"strings"
	"unicode"
)

// MovieKey builds the composite key identifying a movie variant, in the form
// "Title [Dimension | Language]". Empty parts are omitted; when both are
// empty the key is the bare title.
func MovieKey(title, dimension, language string) string {
	title = normaliseText(title)
	dimension = normaliseText(dimension)
	language = normaliseText(language)

	parts := make([]string, 0, 2)
	if dimension != "" {
		parts = append(parts, dimension)
	}
	if language != "" {
		parts = append(parts, language)
	}
	if len(parts) == 0 {
		return title
	}
	return title + " [" + strings.Join(parts, " | ") + "]"
}

// SplitMovieKey breaks a movie key back into its base title and language.
// Keys without a bracketed variant suffix report language "Unknown".
func SplitMovieKey(key string) (title, language string) {
	if strings.Contains(key, "[") && strings.Contains(key, "|") {
		title = strings.TrimSpace(key[:strings.Index(key, "[")])
		last := key[strings.LastIndex(key, "|")+1:]
		language = strings.TrimSpace(strings.ReplaceAll(last, "]", ""))
		return title, language
	}
	return strings.TrimSpace(key), "Unknown"
}

// BaseTitle strips the bracketed variant suffix from a movie key.
func BaseTitle(key string) string {
	if i := strings.Index(key, "["); i >= 0 {
		return strings.TrimSpace(key[:i])
	}
	return strings.TrimSpace(key)
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
