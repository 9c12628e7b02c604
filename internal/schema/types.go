package schema

// NGSI carries the x-ngsi annotations of a property.
type NGSI struct {
	Model *string `yaml:"model"`
	Type  *string `yaml:"type"`
	Units *string `yaml:"units"`
}

// RawProperty is one entry of a model's properties mapping as published.
// Every attribute is optional: nil means the key was absent.
type RawProperty struct {
	AnyOf       []any    `yaml:"anyOf"`
	Format      *string  `yaml:"format"`
	OneOf       []any    `yaml:"oneOf"`
	Enum        []string `yaml:"enum"`
	Description *string  `yaml:"description"`
	Type        *string  `yaml:"type"`
	NGSI        *NGSI    `yaml:"x-ngsi"`
}

// RawSchema is the body of a model document, keyed by its own top-level name.
type RawSchema struct {
	Name        string                 `yaml:"-"`
	Description string                 `yaml:"description"`
	Properties  map[string]RawProperty `yaml:"properties"`
	Required    []string               `yaml:"required"`
	Type        string                 `yaml:"type"`
	DerivedFrom string                 `yaml:"x-derived-from"`
	Disclaimer  string                 `yaml:"x-disclaimer"`
	LicenseURL  string                 `yaml:"x-license-url"`
	SchemaRef   string                 `yaml:"x-model-schema"`
	Tags        string                 `yaml:"x-model-tags"`
	Version     string                 `yaml:"x-version"`
}

// NormalizedProperty is a RawProperty with its name attached and its
// selection state. Required is fixed at normalization; Checked starts equal to
// Required and may be toggled afterwards.
type NormalizedProperty struct {
	RawProperty
	Name     string
	Required bool
	Checked  bool
}

// NormalizedModel is the ordered, display-ready form of a model.
type NormalizedModel struct {
	Name        string
	Description string
	Properties  []NormalizedProperty
	Required    []string
	Type        string
	DerivedFrom string
	Disclaimer  string
	LicenseURL  string
	SchemaRef   string
	Tags        string
	Version     string
	SourceURL   string
}

// Checked returns the checked properties in display order.
func (m NormalizedModel) Checked() []NormalizedProperty {
	var out []NormalizedProperty
	for _, p := range m.Properties {
		if p.Checked {
			out = append(out, p)
		}
	}
	return out
}

// Property returns the property called name and its index in Properties.
func (m NormalizedModel) Property(name string) (NormalizedProperty, int, bool) {
	for i, p := range m.Properties {
		if p.Name == name {
			return p, i, true
		}
	}
	return NormalizedProperty{}, -1, false
}

// IsRequired reports whether name is listed in the model's required set.
func (m NormalizedModel) IsRequired(name string) bool {
	for _, r := range m.Required {
		if r == name {
			return true
		}
	}
	return false
}
