// Package codegen renders JavaScript declarations for the selected
// properties of a normalized model.
package codegen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kamusis/sdm-cli/internal/schema"
)

// Type is a JavaScript type name as used in JSDoc annotations.
type Type int

const (
	String Type = iota
	Number
	Bigint
	Boolean
	Undefined
	Null
	Symbol
	Object
)

func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Number:
		return "number"
	case Bigint:
		return "bigint"
	case Boolean:
		return "boolean"
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Symbol:
		return "symbol"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// JSDoc returns the type annotation comment, e.g. /** @type {number} */.
func (t Type) JSDoc() string {
	return fmt.Sprintf("/** @type {%s} */", t)
}

// Declaration is a JavaScript variable declaration keyword.
type Declaration int

const (
	Const Declaration = iota
	Let
	Var
)

func (d Declaration) String() string {
	switch d {
	case Let:
		return "let"
	case Var:
		return "var"
	default:
		return "const"
	}
}

// ParseDeclaration parses "const", "let" or "var".
func ParseDeclaration(s string) (Declaration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "const", "":
		return Const, nil
	case "let":
		return Let, nil
	case "var":
		return Var, nil
	default:
		return Const, fmt.Errorf("unknown declaration %q (expected const, let or var)", s)
	}
}

// Variable is a single JavaScript variable declaration.
type Variable struct {
	Declaration Declaration
	Type        Type
	Name        string
	Value       string
}

func (v Variable) String() string {
	return fmt.Sprintf("%s %s = %s;", v.Declaration, v.Name, v.Value)
}

// WithJSDoc renders the declaration preceded by its JSDoc type annotation.
func (v Variable) WithJSDoc() string {
	return v.Type.JSDoc() + "\n" + v.String()
}

// FromProperty builds a declaration with a zero value matching the
// property's schema type.
func FromProperty(decl Declaration, p schema.NormalizedProperty) Variable {
	v := Variable{Declaration: decl, Name: Identifier(p.Name)}
	typ := ""
	if p.Type != nil {
		typ = *p.Type
	}
	switch typ {
	case "string":
		v.Type, v.Value = String, `""`
		if len(p.Enum) > 0 {
			v.Value = strconv.Quote(p.Enum[0])
		}
	case "number", "integer":
		v.Type, v.Value = Number, "0"
	case "boolean":
		v.Type, v.Value = Boolean, "false"
	case "array":
		v.Type, v.Value = Object, "[]"
	case "object":
		v.Type, v.Value = Object, "{}"
	case "null":
		v.Type, v.Value = Null, "null"
	default:
		v.Type, v.Value = Undefined, "undefined"
	}
	return v
}

// Generate renders one annotated declaration per checked property of m, in
// property order, separated by blank lines.
func Generate(m schema.NormalizedModel, decl Declaration) string {
	var parts []string
	for _, p := range m.Checked() {
		parts = append(parts, FromProperty(decl, p).WithJSDoc())
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// Identifier turns a property name into a valid JavaScript identifier.
// Invalid characters become '_' and a leading digit is prefixed with '_'.
func Identifier(name string) string {
	var b strings.Builder
	for i, r := range name {
		ok := r == '_' || r == '$' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))
		switch {
		case ok:
			b.WriteRune(r)
		case i == 0 && unicode.IsDigit(r):
			b.WriteRune('_')
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	if reserved[b.String()] {
		return b.String() + "_"
	}
	return b.String()
}

var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "export": true, "extends": true, "false": true, "finally": true,
	"for": true, "function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "let": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true,
}
