// Package validation checks fuzzing report documents.
//
// A document is validated in two passes:
//   - go-openapi/validate checks the raw JSON against the schema derived
//     from models.Report (types, required fields, date-time format)
//   - go-playground/validator checks the decoded models.Report against its
//     struct rules (non-empty hostnames, non-zero timestamp)
//
// # Usage Example
//
//	v, err := validation.New()
//	if err != nil {
//	    return err
//	}
//	result := v.ValidateReport(data)
//	if !result.Valid {
//	    for _, e := range result.Errors {
//	        fmt.Printf("%s: %s\n", e.Field, e.Message)
//	    }
//	}
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	oaierrors "github.com/go-openapi/errors"
	"github.com/go-openapi/spec"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
	"github.com/go-playground/validator/v10"

	"evalgo.org/fuzzreport/internal/schema"
	"evalgo.org/fuzzreport/models"
)

// Validator validates report documents against the report schema and the
// model's struct rules.
type Validator struct {
	// structValidator validates Go struct constraints and tags
	structValidator *validator.Validate

	// reportSchema is the expanded Report schema (no $ref left)
	reportSchema *spec.Schema

	// formats resolves string formats such as date-time
	formats strfmt.Registry
}

// ValidationError represents a single validation error with field-level details.
type ValidationError struct {
	// Field is the JSON path of the field that failed validation
	Field string `json:"field"`

	// Message describes why the validation failed
	Message string `json:"message"`

	// Value is the invalid value that caused the error (optional)
	Value interface{} `json:"value,omitempty"`
}

// ValidationResult represents the complete result of a validation operation.
type ValidationResult struct {
	// Valid is true if validation passed, false otherwise
	Valid bool `json:"valid"`

	// Errors contains all validation errors found (empty if Valid is true)
	Errors []ValidationError `json:"errors,omitempty"`
}

// New creates a Validator. It fails only if the report schema cannot be
// derived or expanded.
func New() (*Validator, error) {
	doc, err := schema.For[models.Report]()
	if err != nil {
		return nil, fmt.Errorf("derive report schema: %w", err)
	}

	if err := spec.ExpandSchema(doc, doc, nil); err != nil {
		return nil, fmt.Errorf("expand report schema: %w", err)
	}

	sv := validator.New(validator.WithRequiredStructEnabled())
	sv.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		structValidator: sv,
		reportSchema:    doc,
		formats:         strfmt.Default,
	}, nil
}

// ValidateReport validates a report JSON document. Malformed input is
// reported in the result, never as an error.
func (v *Validator) ValidateReport(data []byte) *ValidationResult {
	// Parse JSON
	doc, err := decodeDocument(data)
	if err != nil {
		return invalid(ValidationError{
			Field:   "document",
			Message: fmt.Sprintf("Invalid JSON: %v", err),
		})
	}

	// Validate against the schema
	if errs := v.validateSchema(doc); len(errs) > 0 {
		return invalid(errs...)
	}

	// Decode and validate report-specific rules
	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return invalid(decodeError(err))
	}

	if errs := v.ValidateStruct(&report); len(errs) > 0 {
		return invalid(errs...)
	}

	return &ValidationResult{Valid: true}
}

// ValidateStruct applies the struct rules to an in-memory report.
func (v *Validator) ValidateStruct(report *models.Report) []ValidationError {
	err := v.structValidator.Struct(report)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Field: "document", Message: err.Error()}}
	}

	errs := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.TrimPrefix(fe.Namespace(), "Report.")
		errs = append(errs, ValidationError{
			Field:   field,
			Message: structMessage(field, fe.Tag()),
			Value:   fe.Value(),
		})
	}
	return errs
}

// decodeDocument parses data keeping numbers as json.Number, so integers
// above 2^53 keep their exact value.
func decodeDocument(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return doc, nil
}

// normalizeNumbers converts json.Number values for the schema pass:
// integers become int64, and integers between MaxInt64 and MaxUint64 are
// clamped to MaxInt64 since go-openapi/validate cannot hold them (the typed
// decode checks their range). Anything else becomes float64.
func normalizeNumbers(doc interface{}) interface{} {
	switch val := doc.(type) {
	case map[string]interface{}:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
	case []interface{}:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
	case json.Number:
		if n, err := strconv.ParseInt(val.String(), 10, 64); err == nil {
			return n
		}
		if _, err := strconv.ParseUint(val.String(), 10, 64); err == nil {
			return int64(math.MaxInt64)
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
	}
	return doc
}

// decodeError reports a failed typed decode against the offending field.
func decodeError(err error) ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return ValidationError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be a %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value),
		}
	}
	return ValidationError{
		Field:   "document",
		Message: fmt.Sprintf("Invalid report: %v", err),
	}
}

// validateSchema runs go-openapi/validate and flattens its composite errors.
func (v *Validator) validateSchema(doc interface{}) []ValidationError {
	err := validate.AgainstSchema(v.reportSchema, normalizeNumbers(doc), v.formats)
	if err == nil {
		return nil
	}

	var errs []ValidationError
	flatten(err, &errs)

	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Field < errs[j].Field
	})
	return errs
}

func flatten(err error, out *[]ValidationError) {
	var composite *oaierrors.CompositeError
	if errors.As(err, &composite) {
		for _, e := range composite.Errors {
			flatten(e, out)
		}
		return
	}

	var ve *oaierrors.Validation
	if errors.As(err, &ve) {
		field := strings.TrimPrefix(ve.Name, ".")
		if field == "" {
			field = "document"
		}
		*out = append(*out, ValidationError{
			Field:   field,
			Message: ve.Error(),
			Value:   ve.Value,
		})
		return
	}

	*out = append(*out, ValidationError{Field: "document", Message: err.Error()})
}

func structMessage(field, tag string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s failed the %q rule", field, tag)
	}
}

func invalid(errs ...ValidationError) *ValidationResult {
	return &ValidationResult{
		Valid:  false,
		Errors: errs,
	}
}
