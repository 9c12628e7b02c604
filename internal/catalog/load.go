package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawIndex mirrors the published catalog document. Pointers distinguish a
// missing top-level field from an empty one.
type rawIndex struct {
	UpdatedDate  *string     `json:"updatedDate"`
	OfficialList *[]rawEntry `json:"officialList"`
}

type rawEntry struct {
	RepoName   string   `json:"repoName"`
	RepoLink   string   `json:"repoLink"`
	DataModels []string `json:"dataModels"`
	Domains    []string `json:"domains"`
}

// Load parses the catalog document. A single malformed repository name fails
// the whole load; no partial index is returned.
func Load(raw []byte) (*Index, error) {
	var ri rawIndex
	if err := json.Unmarshal(raw, &ri); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndex, err)
	}
	if ri.UpdatedDate == nil {
		return nil, fmt.Errorf("%w: updatedDate", ErrMissingField)
	}
	if ri.OfficialList == nil {
		return nil, fmt.Errorf("%w: officialList", ErrMissingField)
	}

	entries := make([]RepoEntry, 0, len(*ri.OfficialList))
	for i, re := range *ri.OfficialList {
		name, err := RepoName(re.RepoName)
		if err != nil {
			return nil, fmt.Errorf("officialList[%d]: %w", i, err)
		}
		entries = append(entries, RepoEntry{
			Name:    name,
			Link:    re.RepoLink,
			Models:  nonNil(re.DataModels),
			Domains: nonNil(re.Domains),
		})
	}
	return &Index{UpdatedDate: *ri.UpdatedDate, Entries: entries}, nil
}

// LoadValue parses a catalog that was already decoded into a generic value
// (e.g. map[string]any from encoding/json).
func LoadValue(v any) (*Index, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndex, err)
	}
	return Load(b)
}

// RepoName strips everything up to and including the first '.' from a raw
// repository identifier ("dataModel.Weather" -> "Weather").
func RepoName(raw string) (string, error) {
	_, name, ok := strings.Cut(raw, ".")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMalformedRepoName, raw)
	}
	return name, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
