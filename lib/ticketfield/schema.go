// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketfield

import (
	"errors"
	"fmt"
)

// Kind identifies the primitive wire type of a field's value.
type Kind int

const (
	Bool Kind = iota
	I8
	I16
	I32
	I64
	U16 // char-equivalent: an unsigned 16-bit code point.
	F32
	F64
	String
	Enum
	Array
)

func (k Kind) isPrimitive() bool {
	return k >= Bool && k <= String
}

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case U16:
		return "u16"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case String:
		return "string"
	case Enum:
		return "enum"
	case Array:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field declares one slot of a [Schema].
type Field struct {
	Index    int
	Kind     Kind
	IsSecret bool

	// EnumSymbols is the non-empty symbol domain for Kind == Enum,
	// or for the element type of an Array whose ElementKind == Enum.
	EnumSymbols []string

	// ElementKind is the element type for Kind == Array. It must be
	// a primitive kind or Enum; nested arrays are not supported.
	ElementKind Kind
}

// ErrInvalidSchema is returned by [NewSchema] when the supplied field
// list is inconsistent: missing or duplicate indices, a negative
// index, an unsupported kind, an empty enum domain, or a non-primitive
// array element kind.
var ErrInvalidSchema = errors.New("ticketfield: invalid schema")

// Schema is an ordered, validated list of fields, partitioned into
// open and secret subsets in declared order.
type Schema struct {
	fields       []Field // dense, sorted by Index
	openFields   []Field
	secretFields []Field
}

// NewSchema validates fields and returns a Schema. fields need not be
// given in index order; NewSchema sorts them by Index.
func NewSchema(fields []Field) (*Schema, error) {
	n := len(fields)
	ordered := make([]Field, n)
	seen := make([]bool, n)

	for _, f := range fields {
		if f.Index < 0 || f.Index >= n {
			return nil, fmt.Errorf("%w: index %d out of range [0, %d)", ErrInvalidSchema, f.Index, n)
		}
		if seen[f.Index] {
			return nil, fmt.Errorf("%w: duplicate index %d", ErrInvalidSchema, f.Index)
		}
		seen[f.Index] = true

		if err := validateKind(f); err != nil {
			return nil, err
		}
		ordered[f.Index] = f
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: missing index %d", ErrInvalidSchema, i)
		}
	}

	s := &Schema{fields: ordered}
	for _, f := range ordered {
		if f.IsSecret {
			s.secretFields = append(s.secretFields, f)
		} else {
			s.openFields = append(s.openFields, f)
		}
	}
	return s, nil
}

func validateKind(f Field) error {
	switch f.Kind {
	case Bool, I8, I16, I32, I64, U16, F32, F64, String:
		return nil
	case Enum:
		if len(f.EnumSymbols) == 0 {
			return fmt.Errorf("%w: field %d: enum with empty domain", ErrInvalidSchema, f.Index)
		}
		return nil
	case Array:
		if !f.ElementKind.isPrimitive() && f.ElementKind != Enum {
			return fmt.Errorf("%w: field %d: array of non-primitive kind %s", ErrInvalidSchema, f.Index, f.ElementKind)
		}
		if f.ElementKind == Enum && len(f.EnumSymbols) == 0 {
			return fmt.Errorf("%w: field %d: array of enum with empty domain", ErrInvalidSchema, f.Index)
		}
		return nil
	default:
		return fmt.Errorf("%w: field %d: unsupported kind %s", ErrInvalidSchema, f.Index, f.Kind)
	}
}

// Len returns the number of fields declared by the schema.
func (s *Schema) Len() int { return len(s.fields) }

// Field returns the field declared at index.
func (s *Schema) Field(index int) Field { return s.fields[index] }

// OpenFields returns the subset of fields with IsSecret == false, in
// declared order.
func (s *Schema) OpenFields() []Field { return s.openFields }

// SecretFields returns the subset of fields with IsSecret == true, in
// declared order.
func (s *Schema) SecretFields() []Field { return s.secretFields }

func (s *Schema) fieldsFor(secret bool) []Field {
	if secret {
		return s.secretFields
	}
	return s.openFields
}

// Defaults returns a values slice sized to the schema, with every
// slot set to its kind's zero value: numeric zero, empty string,
// empty slice, ordinal 0 (the first enum symbol), or false.
func (s *Schema) Defaults() []any {
	values := make([]any, s.Len())
	for _, f := range s.fields {
		values[f.Index] = zeroValue(f)
	}
	return values
}

func zeroValue(f Field) any {
	switch f.Kind {
	case Bool:
		return false
	case I8:
		return int8(0)
	case I16:
		return int16(0)
	case I32:
		return int32(0)
	case I64:
		return int64(0)
	case U16:
		return uint16(0)
	case F32:
		return float32(0)
	case F64:
		return float64(0)
	case String:
		return ""
	case Enum:
		return 0 // ordinal of the first symbol.
	case Array:
		return []any{}
	default:
		return nil
	}
}
