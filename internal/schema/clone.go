package schema

// Clone returns a deep copy of m. Callers toggle Checked flags independently,
// so copies must not share property storage.
func (m NormalizedModel) Clone() NormalizedModel {
	out := m
	if m.Properties != nil {
		out.Properties = make([]NormalizedProperty, len(m.Properties))
		for i, p := range m.Properties {
			out.Properties[i] = p.Clone()
		}
	}
	if m.Required != nil {
		out.Required = append([]string(nil), m.Required...)
	}
	return out
}

// Clone returns a deep copy of p.
func (p NormalizedProperty) Clone() NormalizedProperty {
	out := p
	out.RawProperty = p.RawProperty.Clone()
	return out
}

// Clone returns a deep copy of p.
func (p RawProperty) Clone() RawProperty {
	out := RawProperty{
		Format:      cloneString(p.Format),
		Description: cloneString(p.Description),
		Type:        cloneString(p.Type),
	}
	if p.AnyOf != nil {
		out.AnyOf = cloneValue(p.AnyOf).([]any)
	}
	if p.OneOf != nil {
		out.OneOf = cloneValue(p.OneOf).([]any)
	}
	if p.Enum != nil {
		out.Enum = append([]string(nil), p.Enum...)
	}
	if p.NGSI != nil {
		out.NGSI = &NGSI{
			Model: cloneString(p.NGSI.Model),
			Type:  cloneString(p.NGSI.Type),
			Units: cloneString(p.NGSI.Units),
		}
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// cloneValue copies the generic values produced by the YAML decoder.
func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
