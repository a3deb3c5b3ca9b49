package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a JSON value whose key may be absent, present but null, or
// present with a value. Set reports presence; Valid reports a non-null value.
type Optional[T any] struct {
	Value T
	Set   bool
	Valid bool
}

// Some returns a present, non-null Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true, Valid: true}
}

// Null returns a present Optional whose value is null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value, o.Valid = zero, false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Format renders the value with f, or "" when it is null or absent.
func (o Optional[T]) Format(f func(T) string) string {
	if !o.Valid {
		return ""
	}
	return f(o.Value)
}
