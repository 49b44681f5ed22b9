package phpserialize

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors returned by the decoder and encoder.
//
// Taxonomy follows the component's error design: syntactic errors are
// malformed grammar, structural errors are well-formed grammar that doesn't
// satisfy a container's shape requirements, coercion errors are well-formed
// values that don't fit the demanded host type, and capability errors are
// well-formed PHP constructs this package chooses not to support.
var (
	// Syntactic.

	// ErrUnexpectedByte is returned when a byte does not match the grammar's
	// expected literal (a tag, a delimiter, or a fixed keyword).
	ErrUnexpectedByte = errors.New("phpserialize: unexpected byte")
	// ErrUnexpectedEOF is returned when the input ends before a production completes.
	ErrUnexpectedEOF = errors.New("phpserialize: unexpected end of input")
	// ErrInvalidInteger is returned when an `i:` payload is not a valid decimal integer.
	ErrInvalidInteger = errors.New("phpserialize: invalid integer literal")
	// ErrInvalidFloat is returned when a `d:` payload is not a valid PHP float literal.
	ErrInvalidFloat = errors.New("phpserialize: invalid float literal")
	// ErrInvalidBoolean is returned when a `b:` payload is neither "0" nor "1".
	ErrInvalidBoolean = errors.New("phpserialize: invalid boolean literal")
	// ErrLengthOverflow is returned when a declared length or count is not an
	// unsigned decimal that fits in a uint64.
	ErrLengthOverflow = errors.New("phpserialize: declared length overflows")
	// ErrTruncatedString is returned when a declared `s:` length exceeds the
	// bytes remaining in the input.
	ErrTruncatedString = errors.New("phpserialize: string length exceeds remaining input")
	// ErrTrailingData is returned when bytes remain after the top-level value.
	ErrTrailingData = errors.New("phpserialize: trailing data after top-level value")

	// Structural.

	// ErrLengthMismatch is returned when a fixed-length tuple target does not
	// match the array's declared element count.
	ErrLengthMismatch = errors.New("phpserialize: array length mismatch")
	// ErrDepthExceeded is returned when nested containers exceed the configured depth limit.
	ErrDepthExceeded = errors.New("phpserialize: maximum recursion depth exceeded")
	// ErrMissingField is returned when a required record field has no corresponding key.
	ErrMissingField = errors.New("phpserialize: missing required field")
	// ErrUnknownField is returned in strict mode when an array key has no matching field.
	ErrUnknownField = errors.New("phpserialize: unknown field")
	// ErrUnsupportedKey is returned when a map key does not encode to an `i:` or `s:` token.
	ErrUnsupportedKey = errors.New("phpserialize: unsupported map key type")
	// ErrNegativeIndex is returned when an unordered-array helper sees a negative integer key.
	ErrNegativeIndex = errors.New("phpserialize: negative array index")
	// ErrHoleWithoutDefault is returned by DecodeUnorderedArray, when called
	// with WithNoDefault, for an array that has a gap in its integer keys.
	ErrHoleWithoutDefault = errors.New("phpserialize: array has a hole with no default value")

	// Coercion.

	// ErrTypeMismatch is returned when the stream's next tag cannot satisfy the host demand.
	ErrTypeMismatch = errors.New("phpserialize: type mismatch")
	// ErrIntegerOutOfRange is returned when a decoded integer doesn't fit the demanded width.
	ErrIntegerOutOfRange = errors.New("phpserialize: integer out of range")
	// ErrFloatNarrowingLoss is returned when an f64-to-f32 narrowing is not exact.
	ErrFloatNarrowingLoss = errors.New("phpserialize: float narrows with loss")
	// ErrNotUTF8 is returned when a text-string demand is given non-UTF-8 bytes.
	ErrNotUTF8 = errors.New("phpserialize: string is not valid UTF-8")
	// ErrNotSingleChar is returned when a char demand's string is not exactly one codepoint.
	ErrNotSingleChar = errors.New("phpserialize: string is not a single codepoint")

	// Capability.

	// ErrUnsupportedFeature is returned for PHP objects (O:), references
	// (R:/r:), and Serializable payloads (C:) — recognized non-goals.
	ErrUnsupportedFeature = errors.New("phpserialize: unsupported PHP feature")
)

// DecodeError wraps a sentinel error with positional context about where in
// the input stream the error occurred.
type DecodeError struct {
	// Err is the underlying sentinel error.
	Err error
	// Pos is the byte offset in the input where the error was detected.
	Pos int
	// Detail provides additional context about the error.
	Detail string
}

// Error returns a human-readable description of the decode error.
func (e *DecodeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s at pos %d: %s", e.Err.Error(), e.Pos, e.Detail)
	}
	return fmt.Sprintf("%s at pos %d", e.Err.Error(), e.Pos)
}

// Unwrap returns the underlying sentinel error, enabling errors.Is matching.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// newDecodeError creates a DecodeError with position and optional detail.
func newDecodeError(err error, pos int, detail string) *DecodeError {
	return &DecodeError{Err: err, Pos: pos, Detail: detail}
}

// EncodeError wraps a sentinel error or a custom Marshaler error with the
// Go type that was being encoded when the failure occurred.
type EncodeError struct {
	// Err is the underlying sentinel error, or a wrapped custom error.
	Err error
	// Type is the Go type being encoded when the error occurred, if known.
	Type reflect.Type
}

// Error returns a human-readable description of the encode error.
func (e *EncodeError) Error() string {
	if e.Type != nil {
		return fmt.Sprintf("%s (encoding %s)", e.Err.Error(), e.Type)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying sentinel error, enabling errors.Is matching.
func (e *EncodeError) Unwrap() error {
	return e.Err
}

func newEncodeError(err error, t reflect.Type) *EncodeError {
	return &EncodeError{Err: err, Type: t}
}

// UnsupportedTypeError is returned when attempting to encode a Go value
// whose kind has no PHP serialize() representation (e.g. a channel or func).
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return "phpserialize: unsupported type: " + e.Type.String()
}
