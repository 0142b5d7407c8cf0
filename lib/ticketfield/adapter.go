// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketfield

import (
	"errors"
	"fmt"

	"github.com/originmark/tickets/lib/bitcode"
)

// ErrMalformed is returned by [Adapter.Read] when a decoded field
// count or kind is inconsistent with the schema.
var ErrMalformed = errors.New("ticketfield: malformed field data")

// Adapter serializes and deserializes a schema's open or secret field
// subset to and from a bit stream.
type Adapter struct {
	schema *Schema
}

// NewAdapter returns an Adapter for schema.
func NewAdapter(schema *Schema) *Adapter {
	return &Adapter{schema: schema}
}

// Write emits the subset of fields selected by secret (open fields if
// false, secret fields if true), reading each field's value from
// values at its declared index. It returns the number of bits
// written.
func (a *Adapter) Write(w *bitcode.Writer, secret bool, values []any) int {
	start := w.Position()
	fields := a.schema.fieldsFor(secret)
	w.WritePositiveInt(uint32(len(fields)))
	for _, f := range fields {
		writeValue(w, f, values[f.Index])
	}
	return w.Position() - start
}

// Read decodes the subset of fields selected by secret into values,
// which must already hold defaults for every index (e.g. from
// [Schema.Defaults]): indices beyond the encoded field count are left
// untouched, matching a ticket encoded under an earlier, shorter
// version of the schema.
func (a *Adapter) Read(r *bitcode.Reader, secret bool, values []any) error {
	fields := a.schema.fieldsFor(secret)

	count, err := r.ReadPositiveInt()
	if err != nil {
		return fmt.Errorf("%w: field count: %v", ErrMalformed, err)
	}
	if count == 0 {
		return nil
	}
	if int(count) > len(fields) {
		return fmt.Errorf("%w: field count %d exceeds schema width %d", ErrMalformed, count, len(fields))
	}

	for i := 0; i < int(count); i++ {
		f := fields[i]
		v, err := readValue(r, f)
		if err != nil {
			return fmt.Errorf("%w: field %d: %v", ErrMalformed, f.Index, err)
		}
		values[f.Index] = v
	}
	return nil
}

func writeValue(w *bitcode.Writer, f Field, value any) {
	switch f.Kind {
	case Bool:
		w.WriteBool(value.(bool))
	case I8:
		w.WriteInt(int32(value.(int8)))
	case I16:
		w.WriteInt(int32(value.(int16)))
	case I32:
		w.WriteInt(value.(int32))
	case I64:
		w.WriteLong(value.(int64))
	case U16:
		w.WritePositiveInt(uint32(value.(uint16)))
	case F32:
		w.WriteFloat32(value.(float32))
	case F64:
		w.WriteFloat64(value.(float64))
	case String:
		w.WriteString(value.(string))
	case Enum:
		w.WriteEnum(value.(int))
	case Array:
		writeArray(w, f, value)
	}
}

func writeArray(w *bitcode.Writer, f Field, value any) {
	elems := value.([]any)
	w.WritePositiveInt(uint32(len(elems)))
	elemField := Field{Kind: f.ElementKind, EnumSymbols: f.EnumSymbols}
	for _, e := range elems {
		writeValue(w, elemField, e)
	}
}

func readValue(r *bitcode.Reader, f Field) (any, error) {
	switch f.Kind {
	case Bool:
		return r.ReadBool()
	case I8:
		v, err := r.ReadInt()
		return int8(v), err
	case I16:
		v, err := r.ReadInt()
		return int16(v), err
	case I32:
		return r.ReadInt()
	case I64:
		return r.ReadLong()
	case U16:
		v, err := r.ReadPositiveInt()
		return uint16(v), err
	case F32:
		return r.ReadFloat32()
	case F64:
		return r.ReadFloat64()
	case String:
		return r.ReadString()
	case Enum:
		ordinal, err := r.ReadEnum()
		if err != nil {
			return nil, err
		}
		if ordinal < 0 || ordinal >= len(f.EnumSymbols) {
			return nil, fmt.Errorf("enum ordinal %d out of range [0, %d)", ordinal, len(f.EnumSymbols))
		}
		return ordinal, nil
	case Array:
		return readArray(r, f)
	default:
		return nil, fmt.Errorf("unsupported kind %s", f.Kind)
	}
}

func readArray(r *bitcode.Reader, f Field) (any, error) {
	n, err := r.ReadPositiveInt()
	if err != nil {
		return nil, err
	}
	elemField := Field{Kind: f.ElementKind, EnumSymbols: f.EnumSymbols}
	elems := make([]any, n)
	for i := range elems {
		v, err := readValue(r, elemField)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return elems, nil
}
