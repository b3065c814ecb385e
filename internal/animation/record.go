package animation

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/roach88/animset/internal/llsd"
)

// Packed field names.
const (
	FieldAnimation = "animation"
	FieldSeqNum    = "seq_num"
	FieldObjectID  = "object_id"
)

// Record is one playing animation: what plays, its sequence tag, and the
// in-world object that triggered it (uuid.Nil when none).
//
// Record is a comparable value type; two records are equal iff all three
// fields are equal.
type Record struct {
	ID          uuid.UUID
	SequenceNum int32
	ObjectID    uuid.UUID
}

// NewRecord creates a Record.
func NewRecord(id uuid.UUID, sequenceNum int32, objectID uuid.UUID) Record {
	return Record{ID: id, SequenceNum: sequenceNum, ObjectID: objectID}
}

// IsNil reports whether the record holds the "no animation" sentinel id.
func (r Record) IsNil() bool {
	return r.ID == uuid.Nil
}

// String returns the diagnostic form used in logs.
func (r Record) String() string {
	return fmt.Sprintf("AnimID=%s/seq=%d/objID=%s", r.ID, r.SequenceNum, r.ObjectID)
}

// Pack converts the record to its structured form.
func (r Record) Pack() llsd.Map {
	return llsd.Map{
		FieldAnimation: llsd.NewUUID(r.ID),
		FieldSeqNum:    llsd.Int(r.SequenceNum),
		FieldObjectID:  llsd.NewUUID(r.ObjectID),
	}
}

// Unpack reads a record from its structured form.
// All three fields must be present. Returns *DeserializationError on any
// shape or type mismatch.
func Unpack(v llsd.Value) (Record, error) {
	m, ok := v.(llsd.Map)
	if !ok {
		return Record{}, &DeserializationError{
			Index:  -1,
			Reason: fmt.Sprintf("expected map, got %s", llsd.TypeName(v)),
		}
	}

	var r Record
	var err error

	raw, ok := m[FieldAnimation]
	if !ok {
		return Record{}, missingField(FieldAnimation)
	}
	if r.ID, err = llsd.AsUUID(raw); err != nil {
		return Record{}, badField(FieldAnimation, err)
	}

	raw, ok = m[FieldSeqNum]
	if !ok {
		return Record{}, missingField(FieldSeqNum)
	}
	seq, err := llsd.AsInt(raw)
	if err != nil {
		return Record{}, badField(FieldSeqNum, err)
	}
	if seq < math.MinInt32 || seq > math.MaxInt32 {
		return Record{}, badField(FieldSeqNum, fmt.Errorf("%d out of int32 range", seq))
	}
	r.SequenceNum = int32(seq)

	raw, ok = m[FieldObjectID]
	if !ok {
		return Record{}, missingField(FieldObjectID)
	}
	if r.ObjectID, err = llsd.AsUUID(raw); err != nil {
		return Record{}, badField(FieldObjectID, err)
	}

	return r, nil
}

func missingField(field string) *DeserializationError {
	return &DeserializationError{Index: -1, Field: field, Reason: "field is missing"}
}

func badField(field string, err error) *DeserializationError {
	return &DeserializationError{Index: -1, Field: field, Reason: "invalid value", Err: err}
}
