package codec

import (
	"errors"
	"fmt"
)

// DecodeErrorCode categorizes decode failures.
type DecodeErrorCode string

const (
	// ErrCodeSyntax indicates the payload is not valid JSON.
	ErrCodeSyntax DecodeErrorCode = "SYNTAX"

	// ErrCodeSchema indicates the JSON does not match the serialized set schema.
	ErrCodeSchema DecodeErrorCode = "SCHEMA"

	// ErrCodeHeader indicates a malformed or unsupported export header.
	ErrCodeHeader DecodeErrorCode = "HEADER"

	// ErrCodeDigest indicates the payload does not match the header digest.
	ErrCodeDigest DecodeErrorCode = "DIGEST"

	// ErrCodeCompression indicates a corrupt zstd frame.
	ErrCodeCompression DecodeErrorCode = "COMPRESSION"
)

// DecodeError reports a payload or export that could not be decoded.
type DecodeError struct {
	Code    DecodeErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsSchemaError reports whether err is a DecodeError with ErrCodeSchema.
func IsSchemaError(err error) bool {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Code == ErrCodeSchema
	}
	return false
}

// CodeOf returns the DecodeErrorCode carried by err, or "" if err is not a
// DecodeError.
func CodeOf(err error) DecodeErrorCode {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
