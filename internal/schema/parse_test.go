package schema

import (
	"errors"
	"testing"
)

const weatherDoc = `WeatherObserved:
  description: An observation of weather conditions at a certain place and time.
  properties:
    id:
      anyOf:
        - type: string
          minLength: 1
        - format: uri
          type: string
      description: Unique identifier of the entity
      x-ngsi:
        type: Property
    temperature:
      description: Air temperature observed
      type: number
      x-ngsi:
        model: https://schema.org/Number
        type: Property
        units: degrees Celsius
    type:
      description: NGSI Entity type. It has to be WeatherObserved
      enum:
        - WeatherObserved
      type: string
  required:
    - id
    - type
  type: object
  x-derived-from: ""
  x-disclaimer: Redistribution and use in source and binary forms
  x-license-url: https://github.com/smart-data-models/dataModel.Weather/blob/master/WeatherObserved/LICENSE.md
  x-model-schema: https://smart-data-models.github.io/dataModel.Weather/WeatherObserved/schema.json
  x-model-tags: ""
  x-version: 0.0.3
`

func TestParseDocument_WeatherObserved(t *testing.T) {
	raw, err := ParseDocument([]byte(weatherDoc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if raw.Name != "WeatherObserved" {
		t.Fatalf("unexpected name: %q", raw.Name)
	}
	if raw.Version != "0.0.3" || raw.Type != "object" {
		t.Fatalf("scalars not decoded: version=%q type=%q", raw.Version, raw.Type)
	}
	if len(raw.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(raw.Properties))
	}

	temp := raw.Properties["temperature"]
	if temp.Type == nil || *temp.Type != "number" {
		t.Fatalf("temperature type: %v", temp.Type)
	}
	if temp.NGSI == nil || temp.NGSI.Units == nil || *temp.NGSI.Units != "degrees Celsius" {
		t.Fatalf("temperature x-ngsi not decoded: %+v", temp.NGSI)
	}
	if temp.Format != nil || temp.AnyOf != nil || temp.Enum != nil {
		t.Fatalf("absent keys must stay unset: %+v", temp)
	}

	id := raw.Properties["id"]
	if len(id.AnyOf) != 2 {
		t.Fatalf("id anyOf: %v", id.AnyOf)
	}
	if id.Type != nil {
		t.Fatalf("id type should be unset, got %q", *id.Type)
	}
}

func TestParseDocument_Empty(t *testing.T) {
	for _, doc := range []string{"", "{}\n", "# only a comment\n"} {
		if _, err := ParseDocument([]byte(doc)); !errors.Is(err, ErrEmptyDocument) {
			t.Fatalf("ParseDocument(%q): expected ErrEmptyDocument, got %v", doc, err)
		}
	}
}

func TestParseDocument_UnexpectedShape(t *testing.T) {
	cases := []string{
		"- just\n- a list\n",
		"Model: a scalar\n",
		"Model:\n  properties: [1, 2]\n",
		"Model:\n  properties:\n    a: {}\n    a: {}\n",
		"Model: [unterminated\n",
	}
	for _, doc := range cases {
		if _, err := ParseDocument([]byte(doc)); !errors.Is(err, ErrUnexpectedShape) {
			t.Fatalf("ParseDocument(%q): expected ErrUnexpectedShape, got %v", doc, err)
		}
	}
}

func TestParseDocument_MultipleKeysUsesFirstLexicographic(t *testing.T) {
	doc := "Zeta:\n  description: z\nAlpha:\n  description: a\n"
	raw, err := ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if raw.Name != "Alpha" || raw.Description != "a" {
		t.Fatalf("expected Alpha body, got %q (%q)", raw.Name, raw.Description)
	}
}
