// Package schema derives JSON Schema documents from the fuzzreport models.
//
// Documents are go-openapi/spec Schema values, so they marshal to standard
// JSON Schema and can be fed directly to go-openapi/validate.
//
// # Derivation rules
//
//   - Pointer and slice fields are optional: their type gains "null" and
//     they are left out of "required".
//   - Named struct types referenced from a field are emitted once under
//     "definitions" and referenced with "$ref".
//   - Unsigned integers carry a uint32/uint64 format and a minimum of 0.
//     Widths below 64 bits also carry their maximum.
//   - Properties carry an "x-order" extension so they render in field
//     declaration order.
//   - time.Time becomes a string with the date-time format.
//   - Types implementing EnumValues become an "enum"; an empty variant set
//     becomes {"not": {}}, the schema no value satisfies.
//   - Descriptions come from each model's SchemaDescription table.
//
// # Usage Example
//
//	doc, err := schema.For[models.Report]()
//	if err != nil {
//	    return err
//	}
//	return schema.Render(os.Stdout, doc, schema.FormatJSON)
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-openapi/spec"

	"evalgo.org/fuzzreport/models"
)

// DraftURL is the JSON Schema dialect declared by derived documents.
const DraftURL = "http://json-schema.org/draft-07/schema#"

// DefinitionsPrefix is the JSON pointer prefix of "$ref" targets.
const DefinitionsPrefix = "#/definitions/"

var (
	// ErrUnsupportedType is returned for Go kinds outside the model vocabulary.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnknownType is returned by Lookup for unregistered type names.
	ErrUnknownType = errors.New("unknown schema type")
)

type enumerated interface {
	EnumValues() []any
}

type reserved interface {
	Reserved() bool
}

var (
	timeType       = reflect.TypeOf(time.Time{})
	describedType  = reflect.TypeOf((*models.Described)(nil)).Elem()
	enumeratedType = reflect.TypeOf((*enumerated)(nil)).Elem()
	reservedType   = reflect.TypeOf((*reserved)(nil)).Elem()
)

// Derive returns the schema document for the dynamic type of v.
func Derive(v any) (*spec.Schema, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedType)
	}
	return DeriveType(reflect.TypeOf(v))
}

// For returns the schema document for T.
func For[T any]() (*spec.Schema, error) {
	return DeriveType(reflect.TypeOf((*T)(nil)).Elem())
}

// DeriveType returns the schema document for t. Pointer types are
// dereferenced; the root type is described inline and every nested named
// type is placed under "definitions".
func DeriveType(t reflect.Type) (*spec.Schema, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedType)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r := &reflector{
		definitions: spec.Definitions{},
		seen:        map[string]bool{},
	}

	root, err := r.body(t)
	if err != nil {
		return nil, err
	}

	root.Schema = spec.SchemaURL(DraftURL)
	root.Title = describe(t).Title
	if root.Title == "" {
		root.Title = t.Name()
	}
	if len(r.definitions) > 0 {
		root.Definitions = r.definitions
	}

	return root, nil
}

// reflector walks Go types and accumulates named definitions.
type reflector struct {
	definitions spec.Definitions
	seen        map[string]bool
}

// body returns the inline schema of t, without title or dialect.
func (r *reflector) body(t reflect.Type) (*spec.Schema, error) {
	if t.Implements(enumeratedType) {
		return enumSchema(t), nil
	}

	if t == timeType {
		return spec.DateTimeProperty(), nil
	}

	if t.Kind() == reflect.Struct {
		return r.object(t)
	}

	s, _, err := r.field(t)
	return s, err
}

// object describes a struct type field by field.
func (r *reflector) object(t reflect.Type) (*spec.Schema, error) {
	s := new(spec.Schema).Typed("object", "")
	desc := describe(t)
	s.Description = desc.Summary

	props := spec.SchemaProperties{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name, omitEmpty, skip := jsonName(f)
		if skip {
			continue
		}

		fs, nullable, err := r.field(f.Type)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typeName(t), f.Name, err)
		}

		prop := annotate(fs, desc.Fields[name])
		prop.AddExtension("x-order", len(props))
		props[name] = *prop
		if !nullable && !omitEmpty {
			s.Required = append(s.Required, name)
		}
	}

	if len(props) > 0 {
		s.Properties = props
	}

	if t.Implements(reservedType) && reflect.Zero(t).Interface().(reserved).Reserved() {
		s.AddExtension("x-reserved", true)
	}

	return s, nil
}

// field returns the schema used where t appears as a field or item type
// and whether the value may be null.
func (r *reflector) field(t reflect.Type) (*spec.Schema, bool, error) {
	switch t.Kind() {
	case reflect.Pointer:
		s, _, err := r.field(t.Elem())
		if err != nil {
			return nil, false, err
		}
		return nullable(s), true, nil

	case reflect.Slice, reflect.Array:
		items, _, err := r.field(t.Elem())
		if err != nil {
			return nil, false, err
		}
		s := spec.ArrayProperty(items)
		if t.Kind() == reflect.Array {
			return s, false, nil
		}
		return nullable(s), true, nil
	}

	if t == timeType {
		return spec.DateTimeProperty(), false, nil
	}

	if t.Implements(enumeratedType) || (t.Kind() == reflect.Struct && t.Name() != "") {
		ref, err := r.define(t)
		return ref, false, err
	}

	if t.Kind() == reflect.Struct {
		s, err := r.object(t)
		return s, false, err
	}

	s, err := primitive(t)
	return s, false, err
}

// define registers t under "definitions" once and returns a reference to it.
func (r *reflector) define(t reflect.Type) (*spec.Schema, error) {
	name := typeName(t)
	if !r.seen[name] {
		r.seen[name] = true

		s, err := r.body(t)
		if err != nil {
			return nil, err
		}
		r.definitions[name] = *s
	}
	return spec.RefSchema(DefinitionsPrefix + name), nil
}

func primitive(t reflect.Type) (*spec.Schema, error) {
	switch t.Kind() {
	case reflect.String:
		return spec.StringProperty(), nil
	case reflect.Bool:
		return spec.BoolProperty(), nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int, reflect.Int64:
		return new(spec.Schema).Typed("integer", fmt.Sprintf("int%d", t.Bits())), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint, reflect.Uint64:
		s := new(spec.Schema).
			Typed("integer", fmt.Sprintf("uint%d", t.Bits())).
			WithMinimum(0, false)
		// 64-bit bounds are not exact as float64; the typed decode checks them
		if t.Bits() < 64 {
			s.WithMaximum(float64(uint64(1)<<t.Bits()-1), false)
		}
		return s, nil
	case reflect.Float32:
		return spec.Float32Property(), nil
	case reflect.Float64:
		return spec.Float64Property(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
}

// enumSchema describes a closed enumeration. With no variants the result
// is the schema that rejects every instance.
func enumSchema(t reflect.Type) *spec.Schema {
	values := reflect.Zero(t).Interface().(enumerated).EnumValues()

	var s *spec.Schema
	if len(values) == 0 {
		s = &spec.Schema{SchemaProps: spec.SchemaProps{Not: &spec.Schema{}}}
	} else {
		s = spec.StringProperty().WithEnum(values...)
	}
	s.Description = describe(t).Summary
	return s
}

// nullable widens s to also accept null.
func nullable(s *spec.Schema) *spec.Schema {
	if s.Ref.String() != "" || len(s.Type) == 0 {
		return &spec.Schema{SchemaProps: spec.SchemaProps{
			AnyOf: []spec.Schema{*s, *new(spec.Schema).Typed("null", "")},
		}}
	}
	return s.AddType("null", "")
}

// annotate attaches a field description. "$ref" siblings are ignored by
// draft-07 consumers, so references are wrapped in allOf.
func annotate(s *spec.Schema, description string) *spec.Schema {
	if description == "" {
		return s
	}
	if s.Ref.String() != "" {
		return &spec.Schema{SchemaProps: spec.SchemaProps{
			Description: description,
			AllOf:       []spec.Schema{*s},
		}}
	}
	s.Description = description
	return s
}

func describe(t reflect.Type) models.Description {
	if t.Implements(describedType) {
		return reflect.Zero(t).Interface().(models.Described).SchemaDescription()
	}
	return models.Description{}
}

func jsonName(f reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = f.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// registry maps CLI type names to model values.
var registry = map[string]any{
	"report": models.Report{},
	"host":   models.Host{},
	"cpu":    models.Cpu{},
	"memory": models.Memory{},
	"fuzzer": models.Fuzzer{},
	"log":    models.Log{},
	"entry":  models.Entry{},
}

// Types returns the registered type names in sorted order.
func Types() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup derives the schema for a registered type name (case-insensitive).
func Lookup(name string) (*spec.Schema, error) {
	model, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s (use one of: %s)", ErrUnknownType, name, strings.Join(Types(), ", "))
	}
	return Derive(model)
}
