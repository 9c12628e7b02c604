package catalog

import (
	"encoding/json"
	"errors"
	"testing"
)

const sampleIndex = `{
  "updatedDate": "2024-05-01",
  "officialList": [
    {
      "repoName": "dataModel.Weather",
      "repoLink": "https://github.com/smart-data-models/dataModel.Weather",
      "dataModels": ["WeatherObserved", "WeatherForecast"],
      "domains": ["SmartCities", "SmartAgrifood"]
    },
    {
      "repoName": "dataModel.Parking",
      "repoLink": "https://github.com/smart-data-models/dataModel.Parking",
      "dataModels": ["OffStreetParking"],
      "domains": ["SmartCities"]
    }
  ]
}`

func TestLoad_HappyPath(t *testing.T) {
	idx, err := Load([]byte(sampleIndex))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if idx.UpdatedDate != "2024-05-01" {
		t.Fatalf("unexpected updatedDate: %q", idx.UpdatedDate)
	}
	if len(idx.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(idx.Entries))
	}
	if idx.Entries[0].Name != "Weather" || idx.Entries[1].Name != "Parking" {
		t.Fatalf("entries out of order or not normalized: %+v", idx.Entries)
	}
	if got := idx.Entries[0].Models; len(got) != 2 || got[0] != "WeatherObserved" {
		t.Fatalf("unexpected models: %v", got)
	}
	if idx.ModelCount() != 3 {
		t.Fatalf("ModelCount=%d want 3", idx.ModelCount())
	}
	domains := idx.Domains()
	if len(domains) != 2 || domains[0] != "SmartAgrifood" || domains[1] != "SmartCities" {
		t.Fatalf("unexpected domains: %v", domains)
	}
	if e, ok := idx.Find("Parking"); !ok || !e.HasModel("OffStreetParking") {
		t.Fatalf("Find(Parking) = %+v, %v", e, ok)
	}
}

func TestRepoName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"datamodel.Weather", "Weather"},
		{"dataModel.User.Profile", "User.Profile"},
		{".Leading", "Leading"},
		{"trailing.", ""},
	}
	for _, c := range cases {
		got, err := RepoName(c.in)
		if err != nil {
			t.Fatalf("RepoName(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("RepoName(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestLoad_MalformedRepoNameFailsWholeIndex(t *testing.T) {
	doc := `{"updatedDate":"x","officialList":[
		{"repoName":"dataModel.Good","repoLink":"","dataModels":[],"domains":[]},
		{"repoName":"NoSeparator","repoLink":"","dataModels":[],"domains":[]}
	]}`
	idx, err := Load([]byte(doc))
	if !errors.Is(err, ErrMalformedRepoName) {
		t.Fatalf("expected ErrMalformedRepoName, got %v", err)
	}
	if idx != nil {
		t.Fatalf("expected no partial index, got %+v", idx)
	}
}

func TestLoad_MissingFields(t *testing.T) {
	for _, doc := range []string{
		`{"officialList": []}`,
		`{"updatedDate": "2024-01-01"}`,
	} {
		if _, err := Load([]byte(doc)); !errors.Is(err, ErrMissingField) {
			t.Fatalf("Load(%s): expected ErrMissingField, got %v", doc, err)
		}
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	if _, err := Load([]byte("not json")); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestLoadValue_GenericJSON(t *testing.T) {
	var v any
	if err := json.Unmarshal([]byte(sampleIndex), &v); err != nil {
		t.Fatal(err)
	}
	idx, err := LoadValue(v)
	if err != nil {
		t.Fatalf("LoadValue: %v", err)
	}
	if len(idx.Entries) != 2 || idx.Entries[0].Name != "Weather" {
		t.Fatalf("unexpected entries: %+v", idx.Entries)
	}
}

func TestModelURL(t *testing.T) {
	got := ModelURL(DefaultModelURLTemplate, "Weather", "WeatherObserved")
	want := "https://raw.githubusercontent.com/smart-data-models/dataModel.Weather/master/WeatherObserved/model.yaml"
	if got != want {
		t.Fatalf("ModelURL mismatch: got %q want %q", got, want)
	}
}
