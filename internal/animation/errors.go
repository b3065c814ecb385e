package animation

import (
	"errors"
	"fmt"
)

// DeserializationError reports a packed record that could not be unpacked.
type DeserializationError struct {
	// Index is the element position inside a serialized array, or -1 when
	// the record was unpacked on its own.
	Index int

	// Field names the offending field, empty when the whole element has
	// the wrong shape.
	Field string

	// Reason is a human-readable description.
	Reason string

	// Err is the underlying conversion error, if any.
	Err error
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	msg := "deserialize animation"
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s [%d]", msg, e.Index)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s field %q", msg, e.Field)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// AtIndex returns a copy of e positioned at element i.
func (e *DeserializationError) AtIndex(i int) *DeserializationError {
	cp := *e
	cp.Index = i
	return &cp
}

// IsDeserializationError reports whether err is, or wraps, a
// *DeserializationError.
func IsDeserializationError(err error) bool {
	var de *DeserializationError
	return errors.As(err, &de)
}
