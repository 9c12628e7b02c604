package search

import "sort"

// SortResults sorts results by repository, then by model name.
func SortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Repo == results[j].Repo {
			return results[i].Model < results[j].Model
		}
		return results[i].Repo < results[j].Repo
	})
}
