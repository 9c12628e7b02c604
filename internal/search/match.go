package search

import (
	"strings"
	"unicode/utf8"
)

// Contains reports whether pattern occurs in text. The empty pattern is
// contained in every text.
func Contains(text, pattern string) bool {
	return strings.Contains(text, pattern)
}

// Segment splits text into unmatched and matched spans. Every non-overlapping
// occurrence of pattern, scanning left to right, becomes its own matched span;
// runs of other characters are coalesced into one unmatched span.
//
// An empty pattern, or a pattern absent from text, yields a single unmatched
// span. An empty text yields no spans. Matching is literal and case-sensitive.
func Segment(text, pattern string) []MatchSpan {
	if text == "" {
		return nil
	}
	if pattern == "" || !strings.Contains(text, pattern) {
		return []MatchSpan{{Text: text}}
	}

	var out []MatchSpan
	start := 0 // start of the pending unmatched run
	i := 0
	for i < len(text) {
		if strings.HasPrefix(text[i:], pattern) {
			if start < i {
				out = append(out, MatchSpan{Text: text[start:i]})
			}
			out = append(out, MatchSpan{Text: pattern, IsMatch: true})
			i += len(pattern)
			start = i
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	if start < len(text) {
		out = append(out, MatchSpan{Text: text[start:]})
	}
	return out
}

// Join concatenates span texts.
func Join(spans []MatchSpan) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
