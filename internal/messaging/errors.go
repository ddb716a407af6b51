package messaging

import (
	"errors"
	"fmt"
)

// Errors returned while constructing messages
var (
	// ErrInvalidArgument indicates a nil or incomplete constructor argument
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidEndpoint indicates a recipient that is not an absolute http(s) URI
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrUnsupportedVersion indicates an unset or unknown protocol version
	ErrUnsupportedVersion = errors.New("unsupported protocol version")
)

// Errors returned while serializing messages
var (
	// ErrMissingRequiredField indicates a required field was never set
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrEmptyFieldNotAllowed indicates an empty value for a field that disallows it
	ErrEmptyFieldNotAllowed = errors.New("empty value not allowed")

	// ErrEncoding indicates a native value outside its encoder's domain
	ErrEncoding = errors.New("encoding failed")

	// ErrDecoding indicates a wire value its decoder does not recognize
	ErrDecoding = errors.New("decoding failed")

	// ErrDuplicateParameter indicates extra data that shadows a declared field
	ErrDuplicateParameter = errors.New("duplicate parameter")
)

// FieldError ties a serialization failure to the wire field that caused it
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// DescriptorError reports a malformed message descriptor.
// It is a programming error and never depends on message data.
type DescriptorError struct {
	Message string
	Field   string
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("message %s: duplicate wire name %q", e.Message, e.Field)
}
