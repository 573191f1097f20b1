package schema

import (
	"bytes"
	"sort"
	"strings"

	"github.com/go-openapi/spec"
	"github.com/nao1215/markdown"
)

// marshalMarkdown renders doc as reference documentation: one section for
// the root type and one per definition, each with a field table.
func marshalMarkdown(doc *spec.Schema) ([]byte, error) {
	if doc == nil {
		return nil, &SerializationError{Format: FormatMarkdown, Err: errNilDocument}
	}

	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1(doc.Title)
	md.PlainText("")
	writeSection(md, doc)

	names := make([]string, 0, len(doc.Definitions))
	for name := range doc.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := doc.Definitions[name]
		md.H2(name)
		md.PlainText("")
		writeSection(md, &def)
	}

	if err := md.Build(); err != nil {
		return nil, &SerializationError{Format: FormatMarkdown, Err: err}
	}
	return buf.Bytes(), nil
}

func writeSection(md *markdown.Markdown, s *spec.Schema) {
	if s.Description != "" {
		md.PlainText(s.Description)
		md.PlainText("")
	}

	if _, ok := s.Extensions.GetBool("x-reserved"); ok {
		md.Note("Reserved for future use. No fields are defined yet.")
		md.PlainText("")
	}

	if s.Not != nil && len(s.Type) == 0 {
		md.Note("This type has no permissible values.")
		md.PlainText("")
		return
	}

	if len(s.Properties) == 0 {
		return
	}

	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}

	items := s.Properties.ToOrderedSchemaItems()
	rows := make([][]string, 0, len(items))
	for i := range items {
		prop := &items[i]
		req := "no"
		if required[prop.Name] {
			req = "yes"
		}
		rows = append(rows, []string{"`" + prop.Name + "`", typeLabel(&prop.Schema), req, prop.Description})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Field", "Type", "Required", "Description"},
		Rows:   rows,
	})
	md.PlainText("")
}

// typeLabel summarizes a property schema, e.g. "integer (uint32), null".
func typeLabel(s *spec.Schema) string {
	if ref := s.Ref.String(); ref != "" {
		return strings.TrimPrefix(ref, DefinitionsPrefix)
	}
	if len(s.AllOf) == 1 {
		return typeLabel(&s.AllOf[0])
	}
	if len(s.AnyOf) > 0 {
		labels := make([]string, 0, len(s.AnyOf))
		for i := range s.AnyOf {
			labels = append(labels, typeLabel(&s.AnyOf[i]))
		}
		return strings.Join(labels, ", ")
	}
	if s.Not != nil && len(s.Type) == 0 {
		return "never"
	}

	labels := make([]string, 0, len(s.Type))
	for _, t := range s.Type {
		label := t
		switch {
		case t == "array" && s.Items != nil && s.Items.Schema != nil:
			label = "array of " + typeLabel(s.Items.Schema)
		case t != "null" && s.Format != "":
			label += " (" + s.Format + ")"
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, ", ")
}
