package domain

import (
	"bytes"
	"encoding/json"
)

// Field is an optional value for partial updates. It distinguishes a field
// that was omitted (Set == false) from one explicitly cleared (Set && Null)
// and one given a value (Set && !Null).
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a Field that explicitly clears the target.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// HasValue reports whether the field carries a non-null value.
func (f Field[T]) HasValue() bool {
	return f.Set && !f.Null
}

// Ptr returns a pointer to the value, or nil when absent or null.
func (f Field[T]) Ptr() *T {
	if !f.HasValue() {
		return nil
	}
	v := f.Value
	return &v
}

// UnmarshalJSON is only invoked for keys present in the document, so any
// call marks the field as set.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Null = true
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON renders absent and null fields as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.HasValue() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
