package search

import "github.com/kamusis/sdm-cli/internal/catalog"

// Matches reports whether pattern occurs in the entry name or in any of its
// model names.
func Matches(entry catalog.RepoEntry, pattern string) bool {
	if Contains(entry.Name, pattern) {
		return true
	}
	for _, m := range entry.Models {
		if Contains(m, pattern) {
			return true
		}
	}
	return false
}

// Filter returns the entries matching pattern, preserving order.
func Filter(entries []catalog.RepoEntry, pattern string) []catalog.RepoEntry {
	out := make([]catalog.RepoEntry, 0, len(entries))
	for _, e := range entries {
		if Matches(e, pattern) {
			out = append(out, e)
		}
	}
	return out
}

// VisibleModels returns the models of entry whose names contain pattern.
// All models are visible for the empty pattern.
func VisibleModels(entry catalog.RepoEntry, pattern string) []string {
	out := make([]string, 0, len(entry.Models))
	for _, m := range entry.Models {
		if Contains(m, pattern) {
			out = append(out, m)
		}
	}
	return out
}
