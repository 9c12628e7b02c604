package schema

import (
	"reflect"
	"testing"
)

func propNames(m NormalizedModel) []string {
	out := make([]string, 0, len(m.Properties))
	for _, p := range m.Properties {
		out = append(out, p.Name)
	}
	return out
}

func rawWith(required []string, names ...string) RawSchema {
	props := make(map[string]RawProperty, len(names))
	for _, n := range names {
		props[n] = RawProperty{}
	}
	return RawSchema{Properties: props, Required: required}
}

func TestNormalize_Ordering(t *testing.T) {
	cases := []struct {
		name     string
		raw      RawSchema
		expected []string
	}{
		{"checked first", rawWith([]string{"bb"}, "a", "bb"), []string{"bb", "a"}},
		{"checked by length", rawWith([]string{"x", "yz"}, "yz", "x"), []string{"x", "yz"}},
		{"unchecked alphabetical", rawWith(nil, "zebra", "apple"), []string{"apple", "zebra"}},
		{"checked equal length alphabetical", rawWith([]string{"bc", "ab"}, "bc", "ab"), []string{"ab", "bc"}},
		{"unchecked ignores length", rawWith(nil, "aaaa", "b"), []string{"aaaa", "b"}},
		{
			"mixed",
			rawWith([]string{"type", "id", "location"}, "type", "address", "id", "name", "location", "dateCreated"),
			[]string{"id", "type", "location", "address", "dateCreated", "name"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := propNames(Normalize(c.raw, ""))
			if !reflect.DeepEqual(got, c.expected) {
				t.Fatalf("order mismatch: got %v want %v", got, c.expected)
			}
		})
	}
}

func TestNormalize_PromotesRequired(t *testing.T) {
	m := Normalize(rawWith([]string{"id", "id", "missing"}, "id", "name"), "https://example.org/model.yaml")
	if m.SourceURL != "https://example.org/model.yaml" {
		t.Fatalf("unexpected source URL: %q", m.SourceURL)
	}
	if !reflect.DeepEqual(m.Required, []string{"id", "missing"}) {
		t.Fatalf("required not deduplicated: %v", m.Required)
	}
	for _, p := range m.Properties {
		want := p.Name == "id"
		if p.Required != want || p.Checked != want {
			t.Fatalf("property %s: required=%v checked=%v want %v", p.Name, p.Required, p.Checked, want)
		}
	}
	if len(m.Checked()) != 1 {
		t.Fatalf("expected one checked property, got %d", len(m.Checked()))
	}
}

func TestNormalize_PassesFieldsThrough(t *testing.T) {
	raw, err := ParseDocument([]byte(weatherDoc))
	if err != nil {
		t.Fatal(err)
	}
	m := Normalize(*raw, "src")
	if m.Name != "WeatherObserved" || m.Version != "0.0.3" || m.SchemaRef == "" || m.LicenseURL == "" {
		t.Fatalf("scalars not copied: %+v", m)
	}
	p, idx, ok := m.Property("temperature")
	if !ok || idx != 2 {
		t.Fatalf("temperature at %d (ok=%v), order %v", idx, ok, propNames(m))
	}
	if p.Type == nil || *p.Type != "number" || p.NGSI == nil || *p.NGSI.Units != "degrees Celsius" {
		t.Fatalf("raw attributes lost: %+v", p)
	}
	if p.Required || p.Checked {
		t.Fatalf("temperature should not be required")
	}
}

func TestClone_SharesNothing(t *testing.T) {
	raw, err := ParseDocument([]byte(weatherDoc))
	if err != nil {
		t.Fatal(err)
	}
	orig := Normalize(*raw, "")
	cp := orig.Clone()

	cp.Properties[0].Checked = !cp.Properties[0].Checked
	*cp.Properties[0].Description = "changed"
	cp.Required[0] = "changed"

	if orig.Properties[0].Checked == cp.Properties[0].Checked {
		t.Fatalf("checked flag shared between clones")
	}
	if *orig.Properties[0].Description == "changed" {
		t.Fatalf("description pointer shared between clones")
	}
	if orig.Required[0] == "changed" {
		t.Fatalf("required slice shared between clones")
	}
}
