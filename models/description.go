package models

// Description carries the documentation attached to a model type when its
// schema is derived. Field descriptions are keyed by JSON field name.
type Description struct {
	// Title overrides the schema title (defaults to the Go type name)
	Title string

	// Summary becomes the schema description of the type
	Summary string

	// Fields maps JSON field names to their descriptions
	Fields map[string]string
}

// Described is implemented by every model type. Methods use value
// receivers so the zero value of a type can be asked for its docs.
type Described interface {
	SchemaDescription() Description
}
