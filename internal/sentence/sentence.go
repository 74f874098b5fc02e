// Package sentence splits prose into sentences for extractive summaries.
package sentence

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Collapse replaces every run of whitespace with a single space and trims
// the ends.
func Collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Split collapses whitespace and breaks text after '.', '!' or '?' when
// the terminator is followed by whitespace. Terminators stay attached to
// their sentence. Empty input returns nil.
func Split(text string) []string {
	text = Collapse(text)
	if text == "" {
		return nil
	}

	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
		default:
			continue
		}
		if i+1 < len(text) && text[i+1] == ' ' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				out = append(out, s)
			}
			start = i + 2
			i++
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// Words counts whitespace-separated words.
func Words(s string) int {
	return len(strings.Fields(s))
}

// HasDigit reports whether s contains a decimal digit.
func HasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
