package animset

import (
	"errors"

	"github.com/google/uuid"

	"github.com/roach88/animset/internal/animation"
	"github.com/roach88/animset/internal/llsd"
)

// ToArray returns a copy of the overlay animations. The default is not
// included.
func (s *Set) ToArray() []animation.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyOverlaysLocked()
}

func (s *Set) copyOverlaysLocked() []animation.Record {
	out := make([]animation.Record, len(s.overlays))
	copy(out, s.overlays)
	return out
}

// snapshot reads all three parts under one shared lock.
func (s *Set) snapshot() (def, implicit animation.Record, overlays []animation.Record) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultAnim, s.implicitDefault, s.copyOverlaysLocked()
}

// FromArray appends records to the overlays verbatim. It neither
// deduplicates nor touches the default; callers own the uniqueness of ids.
func (s *Set) FromArray(records []animation.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlays = append(s.overlays, records...)
}

// GetArrays flattens the set into three parallel arrays for compact
// transmission. A non-nil default occupies index 0; overlays follow in
// collection order.
func (s *Set) GetArrays() (ids []uuid.UUID, sequenceNums []int32, objectIDs []uuid.UUID) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.overlays)
	hasDefault := !s.defaultAnim.IsNil()
	if hasDefault {
		n++
	}

	ids = make([]uuid.UUID, 0, n)
	sequenceNums = make([]int32, 0, n)
	objectIDs = make([]uuid.UUID, 0, n)

	if hasDefault {
		ids = append(ids, s.defaultAnim.ID)
		sequenceNums = append(sequenceNums, s.defaultAnim.SequenceNum)
		objectIDs = append(objectIDs, s.defaultAnim.ObjectID)
	}
	for _, r := range s.overlays {
		ids = append(ids, r.ID)
		sequenceNums = append(sequenceNums, r.SequenceNum)
		objectIDs = append(objectIDs, r.ObjectID)
	}
	return ids, sequenceNums, objectIDs
}

// ToSerializableArray packs the set as: default, implicit default, then
// each overlay in collection order.
func (s *Set) ToSerializableArray() llsd.Array {
	def, implicit, overlays := s.snapshot()

	arr := make(llsd.Array, 0, 2+len(overlays))
	arr = append(arr, def.Pack(), implicit.Pack())
	for _, r := range overlays {
		arr = append(arr, r.Pack())
	}
	return arr
}

// FromSerializableArray replaces the contents of the set with a packed
// array produced by ToSerializableArray.
//
// The set is cleared first. Element 0, if present, becomes the default;
// element 1, if present, becomes the implicit default (read independently,
// not derived from the default); the remaining elements are appended to
// the overlays in order without deduplication.
//
// Every element is unpacked before the set is touched, so on error the set
// is left unchanged. The error is an *animation.DeserializationError
// carrying the element index.
func (s *Set) FromSerializableArray(arr llsd.Array) error {
	records := make([]animation.Record, len(arr))
	for i, v := range arr {
		r, err := animation.Unpack(v)
		if err != nil {
			var de *animation.DeserializationError
			if errors.As(err, &de) {
				return de.AtIndex(i)
			}
			return err
		}
		records[i] = r
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
	if len(records) >= 1 {
		s.defaultAnim = records[0]
	}
	if len(records) >= 2 {
		s.implicitDefault = records[1]
	}
	if len(records) > 2 {
		s.overlays = append(s.overlays, records[2:]...)
	}
	return nil
}

// NewFromSerializableArray builds a Set from a packed array. A nil dir
// selects animation.DefaultDirectory.
func NewFromSerializableArray(arr llsd.Array, dir *animation.Directory) (*Set, error) {
	s := NewWithDirectory(dir)
	if err := s.FromSerializableArray(arr); err != nil {
		return nil, err
	}
	return s, nil
}

// Clone returns an independent copy of the set sharing its directory.
func (s *Set) Clone() *Set {
	def, implicit, overlays := s.snapshot()
	return &Set{
		dir:             s.dir,
		stand:           s.stand,
		defaultAnim:     def,
		implicitDefault: implicit,
		overlays:        overlays,
	}
}
