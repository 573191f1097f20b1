package schema

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/fuzzreport/models"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatJSON},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"markdown", FormatMarkdown},
		{" md ", FormatMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, deriveReport(t), FormatJSON))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "\n  \"")
	assert.Contains(t, out, `"$ref": "#/definitions/Host"`)
	assert.Contains(t, out, "`uname -a`")
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, deriveReport(t), FormatYAML))

	out := buf.String()
	assert.Contains(t, out, "title: Standard fuzzer final report format")
	assert.NotContains(t, out, "{\"")

	doc, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, DraftURL, doc["$schema"])

	definitions := doc["definitions"].(map[string]any)
	host := definitions["Host"].(map[string]any)
	assert.Equal(t, []any{"hostname"}, host["required"])
	assert.ElementsMatch(t, []string{"hostname", "cpus", "memory", "os"}, propertyNames(t, host))

	cores := definitions["Cpu"].(map[string]any)["properties"].(map[string]any)["cores"].(map[string]any)
	assert.Equal(t, []any{"integer", "null"}, cores["type"])
	assert.Equal(t, "uint32", cores["format"])
}

func TestRender_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, deriveReport(t), FormatMarkdown))

	out := buf.String()
	assert.Contains(t, out, "# Standard fuzzer final report format")
	for _, section := range []string{"## Cpu", "## Host", "## Memory"} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "`hostname`")
	assert.Contains(t, out, "array of Host, null")
	assert.Contains(t, out, "integer (uint32), null")
	assert.Contains(t, out, "MHz")
}

func TestRender_DeclarationOrder(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		data, err := Marshal(deriveReport(t), format)
		require.NoError(t, err)
		out := string(data)

		key := func(name string) int {
			if format == FormatJSON {
				return strings.Index(out, `"`+name+`": {`)
			}
			return strings.Index(out, " "+name+":\n")
		}

		for _, fields := range [][]string{
			{"timestamp", "hosts"},
			{"hostname", "cpus", "memory", "os"},
			{"architecture", "model", "cores", "threads", "frequency"},
			{"total", "unit"},
		} {
			for i := 1; i < len(fields); i++ {
				prev, next := key(fields[i-1]), key(fields[i])
				require.NotEqual(t, -1, prev, "%s: %s", format, fields[i-1])
				require.NotEqual(t, -1, next, "%s: %s", format, fields[i])
				assert.Less(t, prev, next, "%s: %s before %s", format, fields[i-1], fields[i])
			}
		}
	}

	md, err := Marshal(deriveReport(t), FormatMarkdown)
	require.NoError(t, err)
	assert.Less(t, strings.Index(string(md), "`model`"), strings.Index(string(md), "`cores`"))
}

func TestRender_MarkdownFuzzer(t *testing.T) {
	doc, err := For[models.Fuzzer]()
	require.NoError(t, err)

	data, err := Marshal(doc, FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Fuzzer")
	assert.Contains(t, string(data), "no permissible values")
}

func TestRender_FuzzerAllFormats(t *testing.T) {
	doc, err := For[models.Fuzzer]()
	require.NoError(t, err)

	for _, name := range Formats() {
		format, err := ParseFormat(name)
		require.NoError(t, err)

		data, err := Marshal(doc, format)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}

func TestMarshal_NilDocument(t *testing.T) {
	for _, name := range Formats() {
		format := Format(name)
		t.Run(name, func(t *testing.T) {
			_, err := Marshal(nil, format)

			var serr *SerializationError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, format, serr.Format)
			assert.ErrorIs(t, err, errNilDocument)
		})
	}
}

func TestRender_MalformedDocumentWritesNothing(t *testing.T) {
	doc := spec.StringProperty()
	doc.Default = make(chan int)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		err := Render(&buf, doc, format)

		var serr *SerializationError
		require.True(t, errors.As(err, &serr), "format %s", format)
		assert.Contains(t, err.Error(), "serialize schema as "+string(format))
		assert.Zero(t, buf.Len(), "format %s", format)
	}
}

func TestMarshal_UnknownFormat(t *testing.T) {
	_, err := Marshal(deriveReport(t), Format("toml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRender_WriteError(t *testing.T) {
	err := Render(failingWriter{}, deriveReport(t), FormatJSON)
	require.Error(t, err)

	var serr *SerializationError
	assert.False(t, errors.As(err, &serr))
	assert.Contains(t, err.Error(), "disk full")
}

func TestParse(t *testing.T) {
	_, err := Parse(nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Parse([]byte("   \n"))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	doc, err := Parse([]byte("title: Cpu\ntype: object\n"))
	require.NoError(t, err)
	assert.Equal(t, "Cpu", doc["title"])

	_, err = Parse([]byte("- a\n- b\n"))
	assert.Error(t, err)
}
