package search

import "github.com/kamusis/sdm-cli/internal/catalog"

// FindModels flattens the catalog into one result per (repository, model)
// pair where either name contains query. Results are sorted by repository,
// then model, and truncated to limit when limit > 0.
func FindModels(entries []catalog.RepoEntry, query string, limit int) []Result {
	if query == "" {
		return []Result{}
	}

	var out []Result
	for _, e := range entries {
		repoHit := Contains(e.Name, query)
		for _, m := range e.Models {
			switch {
			case Contains(m, query):
				out = append(out, Result{Repo: e.Name, Model: m, Why: "model"})
			case repoHit:
				out = append(out, Result{Repo: e.Name, Model: m, Why: "repo"})
			}
		}
	}

	SortResults(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
