package model

import (
	"bytes"
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
)

// Optional represents a field with three encodable states: absent (the
// key is omitted entirely), explicit null (the key is present with a
// JSON/CBOR null), or present with a value. spec.md §3 requires this
// distinction be preserved bit-for-bit across serialization for
// dual-optional fields such as an identifier's valid_to, where explicit
// null means "no expiration" and absence means the field was never
// supplied.
//
// The zero value of Optional[T] is Absent.
type Optional[T any] struct {
	present bool
	null    bool
	value   T
}

// Absent returns an Optional in the omitted-key state.
func Absent[T any]() Optional[T] {
	return Optional[T]{}
}

// Null returns an Optional in the explicit-null state.
func Null[T any]() Optional[T] {
	return Optional[T]{present: true, null: true}
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{present: true, value: v}
}

// IsAbsent reports whether the field was omitted from the source
// document entirely.
func (o Optional[T]) IsAbsent() bool { return !o.present }

// IsNull reports whether the field was present and explicitly null.
func (o Optional[T]) IsNull() bool { return o.present && o.null }

// IsSome reports whether the field carries a value.
func (o Optional[T]) IsSome() bool { return o.present && !o.null }

// Get returns the held value and true when IsSome, otherwise the zero
// value and false.
func (o Optional[T]) Get() (T, bool) {
	if o.IsSome() {
		return o.value, true
	}
	var zero T
	return zero, false
}

// MustGet returns the held value, or the zero value if not present.
func (o Optional[T]) MustGet() T {
	return o.value
}

// MarshalJSON implements json.Marshaler. It is only invoked by the
// parent struct's custom MarshalJSON for fields it has decided to
// include (Some or Null); the Absent state is handled by omitting the
// key entirely, which must happen one level up since encoding/json has
// no native three-state optional.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.null = true
		var zero T
		o.value = zero
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}

// MarshalCBOR implements cbor.Marshaler, mirroring MarshalJSON.
func (o Optional[T]) MarshalCBOR() ([]byte, error) {
	if o.null {
		return cbor.Marshal(nil)
	}
	return cbor.Marshal(o.value)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (o *Optional[T]) UnmarshalCBOR(data []byte) error {
	o.present = true
	if bytes.Equal(data, []byte{0xf6}) { // CBOR simple value for null
		o.null = true
		var zero T
		o.value = zero
		return nil
	}
	o.null = false
	return cbor.Unmarshal(data, &o.value)
}
