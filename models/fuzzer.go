package models

import (
	"errors"
	"fmt"
)

// ErrUnknownFuzzer is returned when a name does not match any Fuzzer variant.
var ErrUnknownFuzzer = errors.New("unknown fuzzer")

// Fuzzer identifies a fuzzing engine.
//
// Fuzzer is a closed enumeration whose variant set is currently empty: no
// valid value exists. ParseFuzzer fails for every input and Validate
// rejects every value, including the zero value. The set is reserved for
// future fuzzer-identity variants.
type Fuzzer struct {
	name string
}

// fuzzers is the variant set. Empty until fuzzer identities are agreed on.
var fuzzers []Fuzzer

// Fuzzers returns every defined variant.
func Fuzzers() []Fuzzer {
	return append([]Fuzzer(nil), fuzzers...)
}

// ParseFuzzer returns the variant named s.
func ParseFuzzer(s string) (Fuzzer, error) {
	for _, f := range fuzzers {
		if f.name == s {
			return f, nil
		}
	}
	return Fuzzer{}, fmt.Errorf("%w: %q", ErrUnknownFuzzer, s)
}

// Validate reports whether f is one of the defined variants.
func (f Fuzzer) Validate() error {
	_, err := ParseFuzzer(f.name)
	return err
}

func (f Fuzzer) String() string {
	return f.name
}

// MarshalText implements encoding.TextMarshaler.
func (f Fuzzer) MarshalText() ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return []byte(f.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Fuzzer) UnmarshalText(text []byte) error {
	v, err := ParseFuzzer(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// EnumValues lists the permissible values for schema derivation.
func (Fuzzer) EnumValues() []any {
	values := make([]any, 0, len(fuzzers))
	for _, f := range fuzzers {
		values = append(values, f.name)
	}
	return values
}

// SchemaDescription implements Described.
func (Fuzzer) SchemaDescription() Description {
	return Description{
		Summary: "Identity of a fuzzing engine. No variants are defined yet; " +
			"the set is reserved for future fuzzer identities.",
	}
}
