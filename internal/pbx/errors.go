package pbx

import (
	"errors"
	"fmt"
)

// Sentinel decode failures. Every error returned by Decode wraps exactly
// one of these, so callers can classify with errors.Is.
var (
	// ErrMissingField indicates a field required by a known shape, or the
	// isa discriminator itself, is absent.
	ErrMissingField = errors.New("required field missing")

	// ErrTypeMismatch indicates a field is present but its node shape does
	// not match what the target field expects.
	ErrTypeMismatch = errors.New("value has unexpected type")

	// ErrUnsupportedValue indicates a node outside the six supported
	// dynamic-value shapes, such as a date or binary data.
	ErrUnsupportedValue = errors.New("unsupported property-list value")

	// ErrMalformedDocument indicates the byte stream is not a valid
	// property list or its top level is not a dictionary.
	ErrMalformedDocument = errors.New("malformed project document")
)

// DecodeError describes why a project document failed to decode. Err wraps
// one of the sentinel errors; Path locates the failing node from the
// document root. Any failure aborts the whole decode: no partial project
// is ever returned alongside a DecodeError.
type DecodeError struct {
	Path Path
	Err  error
}

// Error renders the joined field path followed by the cause.
func (e *DecodeError) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}
	return e.Path.String() + ": " + e.Err.Error()
}

// Unwrap exposes the wrapped cause for errors.Is and errors.As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// missingField builds the decode failure for an absent required field.
func missingField(path Path) error {
	return &DecodeError{Path: path, Err: ErrMissingField}
}

// typeMismatch builds the decode failure for a node of the wrong shape,
// naming the expected and actual plist types.
func typeMismatch(path Path, want string, node any) error {
	return &DecodeError{Path: path, Err: fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, want, nodeTypeName(node))}
}

// malformed builds a document-level decode failure.
func malformed(format string, args ...any) error {
	return &DecodeError{Err: fmt.Errorf("%w: %s", ErrMalformedDocument, fmt.Sprintf(format, args...))}
}
