// Package jsonerr defines the failure taxonomy for json-parse.
//
// Every error returned by the parser carries exactly one Kind and the byte
// offset of the failure, so a diagnostic can be produced without re-scanning
// the input. The set of kinds is closed.
package jsonerr

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Kind is a stable failure category.
type Kind string

const (
	UnexpectedEndOfInput         Kind = "UNEXPECTED_END_OF_INPUT"
	TrailingGarbage              Kind = "TRAILING_GARBAGE"
	ExceededNestingLimit         Kind = "EXCEEDED_NESTING_LIMIT"
	InvalidValue                 Kind = "INVALID_VALUE"
	InvalidUnicodeEscape         Kind = "INVALID_UNICODE_ESCAPE"
	UnrecognizedControlCharacter Kind = "UNRECOGNIZED_CONTROL_CHARACTER"
	InvalidLiteral               Kind = "INVALID_LITERAL"
	MissingSeparator             Kind = "MISSING_SEPARATOR"
	MissingKey                   Kind = "MISSING_KEY"
	MissingFractionalDigits      Kind = "MISSING_FRACTIONAL_DIGITS"
	MissingExponentDigits        Kind = "MISSING_EXPONENT_DIGITS"
	MissingDigitsAfterSign       Kind = "MISSING_DIGITS_AFTER_SIGN"
	InvalidEncoding              Kind = "INVALID_ENCODING"
)

// Kinds lists every member of the taxonomy in declaration order.
var Kinds = []Kind{
	UnexpectedEndOfInput,
	TrailingGarbage,
	ExceededNestingLimit,
	InvalidValue,
	InvalidUnicodeEscape,
	UnrecognizedControlCharacter,
	InvalidLiteral,
	MissingSeparator,
	MissingKey,
	MissingFractionalDigits,
	MissingExponentDigits,
	MissingDigitsAfterSign,
	InvalidEncoding,
}

// ExitCode returns the process exit code for this failure kind. All parse
// failures are input failures.
func (k Kind) ExitCode() int {
	return 2
}

// Error is the structured error type for all parse failures.
type Error struct {
	Kind   Kind
	Offset int

	// Char is the offending character for InvalidValue. It is
	// utf8.RuneError when the byte at Offset does not start a valid
	// UTF-8 sequence.
	Char rune

	// Encoding is the detected, unsupported encoding for InvalidEncoding.
	Encoding string

	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("jsonerr: %s at byte %d: %s", e.Kind, e.Offset, e.Message)
}

// New creates a new Error with the given kind and message.
func New(kind Kind, offset int, message string) *Error {
	return &Error{Kind: kind, Offset: offset, Message: message}
}

// Newf is like New with a formatted message.
func Newf(kind Kind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidValue reports that no JSON value can start at offset. The
// offending character is decoded from data at that offset.
func NewInvalidValue(data []byte, offset int) *Error {
	if offset >= len(data) {
		return &Error{Kind: InvalidValue, Offset: offset, Char: utf8.RuneError, Message: "no value"}
	}
	r, _ := utf8.DecodeRune(data[offset:])
	msg := fmt.Sprintf("unexpected character %q", r)
	if r == utf8.RuneError {
		msg = fmt.Sprintf("unexpected byte 0x%02X", data[offset])
	}
	return &Error{Kind: InvalidValue, Offset: offset, Char: r, Message: msg}
}

// NewInvalidEncoding reports an unsupported stream encoding.
func NewInvalidEncoding(encoding string) *Error {
	return &Error{
		Kind:     InvalidEncoding,
		Offset:   0,
		Encoding: encoding,
		Message:  fmt.Sprintf("unsupported encoding %s, input must be UTF-8", encoding),
	}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
