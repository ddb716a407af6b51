package messaging

// Accessor reads a field's native value from a message.
// It reports false when the field is unset.
type Accessor[M any] func(msg M) (any, bool)

// Field describes one message part and how it appears on the wire
type Field[M any] struct {
	name       string
	required   bool
	allowEmpty bool
	encoder    Encoder
	get        Accessor[M]
}

// FieldOption configures a Field
type FieldOption func(*fieldOptions)

type fieldOptions struct {
	required   bool
	allowEmpty bool
	encoder    Encoder
}

// Required marks the field as mandatory on the wire
func Required() FieldOption {
	return func(o *fieldOptions) {
		o.required = true
	}
}

// AllowEmpty permits an empty wire value when the field is present
func AllowEmpty() FieldOption {
	return func(o *fieldOptions) {
		o.allowEmpty = true
	}
}

// WithEncoder sets the encoder for non-string native values
func WithEncoder(e Encoder) FieldOption {
	return func(o *fieldOptions) {
		o.encoder = e
	}
}

// NewField creates a field descriptor named by its wire key
func NewField[M any](name string, get Accessor[M], opts ...FieldOption) Field[M] {
	var o fieldOptions
	for _, opt := range opts {
		opt(&o)
	}
	return Field[M]{
		name:       name,
		required:   o.required,
		allowEmpty: o.allowEmpty,
		encoder:    o.encoder,
		get:        get,
	}
}

// Constant creates a required field that always carries value
func Constant[M any](name, value string) Field[M] {
	return NewField[M](name, func(M) (any, bool) { return value, true }, Required())
}

func (f Field[M]) Name() string { return f.name }
func (f Field[M]) IsRequired() bool { return f.required }
func (f Field[M]) IsAllowEmpty() bool { return f.allowEmpty }
func (f Field[M]) Encoder() Encoder { return f.encoder }

// Encode converts a native value to its wire form
func (f Field[M]) Encode(v any) (string, error) {
	if f.encoder == nil {
		return encodeIdentity(v)
	}
	return f.encoder.Encode(v)
}

// Decode converts a wire value to its native form.
// Fields without an encoder decode to the string itself.
func (f Field[M]) Decode(s string) (any, error) {
	if f.encoder == nil {
		return s, nil
	}
	return f.encoder.Decode(s)
}

// value reads the native value from msg
func (f Field[M]) value(msg M) (any, bool) {
	if f.get == nil {
		return nil, false
	}
	return f.get(msg)
}
