package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseDocument decodes a model document. The document is expected to be a
// mapping with a single key, the model's own name, whose value is the schema
// body.
//
// Published documents only ever carry one top-level key. If more are present
// the lexicographically first one is used.
func ParseDocument(doc []byte) (*RawSchema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	top := root.Content[0]
	if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
		return nil, ErrEmptyDocument
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrUnexpectedShape)
	}
	if len(top.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	first := 0
	for i := 2; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value < top.Content[first].Value {
			first = i
		}
	}
	name := top.Content[first].Value
	body := top.Content[first+1]
	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %q is not a mapping", ErrUnexpectedShape, name)
	}

	var raw RawSchema
	if err := body.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnexpectedShape, name, err)
	}
	raw.Name = name
	return &raw, nil
}
