package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-openapi/spec"
	"gopkg.in/yaml.v3"
)

// Format is a textual rendering of a schema document.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

var (
	// ErrUnknownFormat is returned for unsupported rendering formats.
	ErrUnknownFormat = errors.New("unknown schema format")

	// ErrEmptyDocument is returned by Parse when there is nothing to parse.
	ErrEmptyDocument = errors.New("empty schema document")

	errNilDocument = errors.New("nil schema document")
)

// SerializationError reports a schema document that could not be rendered.
type SerializationError struct {
	Format Format
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize schema as %s: %v", e.Format, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Formats returns the supported format names.
func Formats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatMarkdown)}
}

// ParseFormat resolves a format name. The empty string selects JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %s (use one of: %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
}

// Render writes doc to w in the given format. Rendering is buffered, so w
// receives nothing when serialization fails.
func Render(w io.Writer, doc *spec.Schema, format Format) error {
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}

// Marshal renders doc in the given format. Output is stable for a given
// document.
func Marshal(doc *spec.Schema, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(doc)
	case FormatYAML:
		return marshalYAML(doc)
	case FormatMarkdown:
		return marshalMarkdown(doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// encodeJSON produces indented JSON without HTML escaping.
func encodeJSON(doc *spec.Schema) ([]byte, error) {
	if doc == nil {
		return nil, errNilDocument
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalJSON(doc *spec.Schema) ([]byte, error) {
	data, err := encodeJSON(doc)
	if err != nil {
		return nil, &SerializationError{Format: FormatJSON, Err: err}
	}
	return data, nil
}

// marshalYAML goes through the JSON rendering so the YAML keeps the same
// key order, then switches every node to block style.
func marshalYAML(doc *spec.Schema) ([]byte, error) {
	data, err := encodeJSON(doc)
	if err != nil {
		return nil, &SerializationError{Format: FormatYAML, Err: err}
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &SerializationError{Format: FormatYAML, Err: err}
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, &SerializationError{Format: FormatYAML, Err: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &SerializationError{Format: FormatYAML, Err: err}
	}
	return buf.Bytes(), nil
}

func blockStyle(n *yaml.Node) {
	switch n.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		n.Style = 0
	case yaml.ScalarNode:
		// let the encoder quote only where needed
		n.Style &^= yaml.DoubleQuotedStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// Parse reads a JSON or YAML rendering back into a generic document.
func Parse(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = nil
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if doc == nil {
		return nil, ErrEmptyDocument
	}
	return doc, nil
}
