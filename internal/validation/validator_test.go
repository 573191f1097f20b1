package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/fuzzreport/models"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return v
}

func hasErrorFor(result *ValidationResult, field string) bool {
	for _, e := range result.Errors {
		if strings.Contains(e.Field, field) {
			return true
		}
	}
	return false
}

func TestNew(t *testing.T) {
	v := newValidator(t)
	assert.NotNil(t, v.structValidator)
	assert.NotNil(t, v.reportSchema)
	assert.NotNil(t, v.formats)
}

func TestValidateReport_Valid(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name string
		json string
	}{
		{
			name: "full report",
			json: `{
				"timestamp": "2024-01-01T00:00:00Z",
				"hosts": [{
					"hostname": "build-01",
					"cpus": [{"architecture": "x86_64", "model": null, "cores": 8, "threads": null, "frequency": null}],
					"memory": [{"total": 17179869184, "unit": null}],
					"os": "Linux build-01 6.1.0 x86_64"
				}]
			}`,
		},
		{
			name: "timestamp only",
			json: `{"timestamp": "2024-01-01T00:00:00Z"}`,
		},
		{
			name: "explicit null hosts",
			json: `{"timestamp": "2024-01-01T00:00:00Z", "hosts": null}`,
		},
		{
			name: "host with hostname only",
			json: `{"timestamp": "2024-01-01T00:00:00Z", "hosts": [{"hostname": "build-01"}]}`,
		},
		{
			name: "memory total above 2^53",
			json: `{"timestamp": "2024-01-01T00:00:00Z", "hosts": [{"hostname": "a", "memory": [{"total": 9007199254740993}]}]}`,
		},
		{
			name: "memory total at uint64 max",
			json: `{"timestamp": "2024-01-01T00:00:00Z", "hosts": [{"hostname": "a", "memory": [{"total": 18446744073709551615}]}]}`,
		},
		{
			name: "cores at uint32 max",
			json: `{"timestamp": "2024-01-01T00:00:00Z", "hosts": [{"hostname": "a", "cpus": [{"cores": 4294967295}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateReport([]byte(tt.json))
			assert.True(t, result.Valid, "errors: %+v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestValidateReport_Invalid(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name          string
		json          string
		expectedField string
	}{
		{
			name:          "invalid json",
			json:          `{"timestamp":`,
			expectedField: "document",
		},
		{
			name:          "missing timestamp",
			json:          `{"hosts": []}`,
			expectedField: "timestamp",
		},
		{
			name:          "timestamp not a date-time",
			json:          `{"timestamp": "yesterday"}`,
			expectedField: "timestamp",
		},
		{
			name:          "zero timestamp",
			json:          `{"timestamp": "0001-01-01T00:00:00Z"}`,
			expectedField: "timestamp",
		},
		{
			name:          "missing hostname",
			json:          `{"timestamp": "2024-01-01T00:00:00Z", "hosts": [{"os": "linux"}]}`,
			expectedField: "hostname",
		},
		{
			name:          "empty hostname",
			json:          `{"timestamp": "2024-01-01T00:00:00Z", "hosts": [{"hostname": ""}]}`,
			expectedField: "hostname",
		},
		{
			name:          "negative cores",
			json:          `{"timestamp": "2024-01-01T00:00:00Z", "hosts": [{"hostname": "a", "cpus": [{"cores": -1}]}]}`,
			expectedField: "cores",
		},
		{
			name:          "fractional threads",
			json:          `{"timestamp": "2024-01-01T00:00:00Z", "hosts": [{"hostname": "a", "cpus": [{"threads": 1.5}]}]}`,
			expectedField: "threads",
		},
		{
			name:          "cores above uint32 max",
			json:          `{"timestamp": "2024-01-01T00:00:00Z", "hosts": [{"hostname": "a", "cpus": [{"cores": 4294967296}]}]}`,
			expectedField: "cores",
		},
		{
			name:          "memory total above uint64 max",
			json:          `{"timestamp": "2024-01-01T00:00:00Z", "hosts": [{"hostname": "a", "memory": [{"total": 18446744073709551616}]}]}`,
			expectedField: "total",
		},
		{
			name:          "trailing data",
			json:          `{"timestamp": "2024-01-01T00:00:00Z"} {}`,
			expectedField: "document",
		},
		{
			name:          "string memory total",
			json:          `{"timestamp": "2024-01-01T00:00:00Z", "hosts": [{"hostname": "a", "memory": [{"total": "16GB"}]}]}`,
			expectedField: "total",
		},
		{
			name:          "hosts not an array",
			json:          `{"timestamp": "2024-01-01T00:00:00Z", "hosts": {"hostname": "a"}}`,
			expectedField: "hosts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateReport([]byte(tt.json))
			assert.False(t, result.Valid)
			require.NotEmpty(t, result.Errors)
			assert.True(t, hasErrorFor(result, tt.expectedField),
				"Should have error for field %s, got %+v", tt.expectedField, result.Errors)
		})
	}
}

func TestValidateStruct(t *testing.T) {
	v := newValidator(t)

	valid := models.NewReport(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), models.Host{
		Hostname: "build-01",
		Cpus:     []models.Cpu{{Architecture: models.Ptr("x86_64"), Cores: models.Ptr(uint32(8))}},
	})
	assert.Empty(t, v.ValidateStruct(valid))

	invalid := &models.Report{Hosts: []models.Host{{Hostname: "ok"}, {}}}
	errs := v.ValidateStruct(invalid)
	require.Len(t, errs, 2)

	fields := []string{errs[0].Field, errs[1].Field}
	assert.Contains(t, fields, "timestamp")
	assert.Contains(t, fields, "hosts[1].hostname")
	for _, e := range errs {
		assert.Contains(t, e.Message, "is required")
	}
}

func TestValidateReport_FieldNames(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		json  string
		field string
	}{
		{"missing timestamp", `{"hosts": []}`, "timestamp"},
		{"malformed timestamp", `{"timestamp": "yesterday"}`, "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateReport([]byte(tt.json))
			require.False(t, result.Valid)
			require.NotEmpty(t, result.Errors)
			for _, e := range result.Errors {
				assert.False(t, strings.HasPrefix(e.Field, "."), "field %q", e.Field)
			}
			assert.Equal(t, tt.field, result.Errors[0].Field)
		})
	}
}

func TestDecodeError(t *testing.T) {
	var report models.Report
	err := json.Unmarshal([]byte(`{"hosts": [{"hostname": "a", "cpus": [{"cores": 4294967296}]}]}`), &report)
	require.Error(t, err)

	e := decodeError(err)
	assert.NotEqual(t, "document", e.Field)
	assert.Contains(t, e.Field, "cores")
	assert.Contains(t, e.Message, "uint32")

	e = decodeError(errors.New("boom"))
	assert.Equal(t, "document", e.Field)
}
