package schema

import "sort"

// Normalize promotes required properties, attaches property names and sorts
// the properties into display order (see Less). All other fields are copied
// unchanged; sourceURL is recorded as given.
func Normalize(raw RawSchema, sourceURL string) NormalizedModel {
	required := make(map[string]struct{}, len(raw.Required))
	reqList := make([]string, 0, len(raw.Required))
	for _, r := range raw.Required {
		if _, dup := required[r]; dup {
			continue
		}
		required[r] = struct{}{}
		reqList = append(reqList, r)
	}

	props := make([]NormalizedProperty, 0, len(raw.Properties))
	for name, p := range raw.Properties {
		_, req := required[name]
		props = append(props, NormalizedProperty{
			RawProperty: p,
			Name:        name,
			Required:    req,
			Checked:     req,
		})
	}
	sort.Slice(props, func(i, j int) bool { return Less(props[i], props[j]) })

	return NormalizedModel{
		Name:        raw.Name,
		Description: raw.Description,
		Properties:  props,
		Required:    reqList,
		Type:        raw.Type,
		DerivedFrom: raw.DerivedFrom,
		Disclaimer:  raw.Disclaimer,
		LicenseURL:  raw.LicenseURL,
		SchemaRef:   raw.SchemaRef,
		Tags:        raw.Tags,
		Version:     raw.Version,
		SourceURL:   sourceURL,
	}
}

// Less orders checked properties before unchecked ones. Two checked
// properties compare by name length, then name; two unchecked properties
// compare by name only.
func Less(a, b NormalizedProperty) bool {
	if a.Checked != b.Checked {
		return a.Checked
	}
	if a.Checked && len(a.Name) != len(b.Name) {
		return len(a.Name) < len(b.Name)
	}
	return a.Name < b.Name
}
