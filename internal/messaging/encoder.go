package messaging

import "fmt"

// Encoder converts between a field's native value and its wire string.
// Implementations must be pure so serialization order never matters.
type Encoder interface {
	// Encode returns the wire form of v or an error wrapping ErrEncoding
	Encode(v any) (string, error)

	// Decode returns the native value of s or an error wrapping ErrDecoding
	Decode(s string) (any, error)
}

// typedEncoder adapts a pair of typed functions to Encoder
type typedEncoder[T any] struct {
	encode func(T) (string, error)
	decode func(string) (T, error)
}

// NewEncoder builds an Encoder for values of type T.
// Values of any other type fail to encode with ErrEncoding.
func NewEncoder[T any](encode func(T) (string, error), decode func(string) (T, error)) Encoder {
	return typedEncoder[T]{encode: encode, decode: decode}
}

func (e typedEncoder[T]) Encode(v any) (string, error) {
	tv, ok := v.(T)
	if !ok {
		var zero T
		return "", fmt.Errorf("%w: got %T, want %T", ErrEncoding, v, zero)
	}
	return e.encode(tv)
}

func (e typedEncoder[T]) Decode(s string) (any, error) {
	return e.decode(s)
}

// encodeIdentity is used when a field has no encoder
func encodeIdentity(v any) (string, error) {
	switch tv := v.(type) {
	case string:
		return tv, nil
	case fmt.Stringer:
		return tv.String(), nil
	default:
		return "", fmt.Errorf("%w: %T has no encoder", ErrEncoding, v)
	}
}
