package catalog

import "sort"

// Index is the parsed catalog listing. It is not modified after Load.
type Index struct {
	UpdatedDate string
	Entries     []RepoEntry
}

// RepoEntry is one repository of the catalog and the models it publishes.
type RepoEntry struct {
	Name    string
	Link    string
	Models  []string
	Domains []string
}

// Find returns the entry whose normalized name equals name.
func (idx *Index) Find(name string) (RepoEntry, bool) {
	for _, e := range idx.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return RepoEntry{}, false
}

// ModelCount returns the total number of models across all entries.
func (idx *Index) ModelCount() int {
	n := 0
	for _, e := range idx.Entries {
		n += len(e.Models)
	}
	return n
}

// Domains returns every domain referenced by the catalog, sorted and deduplicated.
func (idx *Index) Domains() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range idx.Entries {
		for _, d := range e.Domains {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// HasDomain reports whether the entry is tagged with domain.
func (e RepoEntry) HasDomain(domain string) bool {
	for _, d := range e.Domains {
		if d == domain {
			return true
		}
	}
	return false
}

// HasModel reports whether the entry publishes model.
func (e RepoEntry) HasModel(model string) bool {
	for _, m := range e.Models {
		if m == model {
			return true
		}
	}
	return false
}
