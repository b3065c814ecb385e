package animset

import (
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/animset/internal/animation"
)

// Set is the thread-safe animation state of one avatar.
// The zero value is not usable; construct with New or NewWithDirectory.
type Set struct {
	dir   *animation.Directory
	stand animation.Record // STAND as assigned by a reset; resolved once

	mu              sync.RWMutex
	defaultAnim     animation.Record
	implicitDefault animation.Record
	overlays        []animation.Record
}

// New creates a Set resolving names through animation.DefaultDirectory.
// The default animation starts as STAND.
func New() *Set {
	return NewWithDirectory(animation.DefaultDirectory())
}

// NewWithDirectory creates a Set resolving names through dir. A nil dir
// selects animation.DefaultDirectory.
// If dir has no STAND entry the default starts as the nil record.
func NewWithDirectory(dir *animation.Directory) *Set {
	if dir == nil {
		dir = animation.DefaultDirectory()
	}
	s := &Set{dir: dir, stand: standRecord(dir)}
	s.defaultAnim = s.stand
	s.implicitDefault = s.stand
	return s
}

// Directory returns the directory the set resolves names with.
func (s *Set) Directory() *animation.Directory {
	return s.dir
}

// standRecord returns the built-in default as assigned by a reset.
func standRecord(dir *animation.Directory) animation.Record {
	id, ok := dir.Lookup(animation.StandName)
	if !ok {
		return animation.Record{}
	}
	return animation.NewRecord(id, 1, uuid.Nil)
}

// resetDefaultLocked sets the default (and implicit default) back to STAND.
// Like any explicit assignment it is a no-op when STAND is already the
// default. Caller must hold s.mu for writing.
func (s *Set) resetDefaultLocked() {
	if s.stand.IsNil() {
		return
	}
	s.setDefaultLocked(s.stand)
}

// setDefaultLocked replaces default and implicit default when the id
// differs. Caller must hold s.mu for writing.
func (s *Set) setDefaultLocked(r animation.Record) bool {
	if s.defaultAnim.ID == r.ID {
		return false
	}
	s.defaultAnim = r
	s.implicitDefault = r
	return true
}

// DefaultAnimation returns the current default record.
func (s *Set) DefaultAnimation() animation.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultAnim
}

// ImplicitDefaultAnimation returns the implicit default record.
func (s *Set) ImplicitDefaultAnimation() animation.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.implicitDefault
}

// Len returns the number of overlay animations.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.overlays)
}

// HasAnimation reports whether id is the default or one of the overlays.
func (s *Set) HasAnimation(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.defaultAnim.ID == id {
		return true
	}
	return s.indexLocked(id) >= 0
}

// indexLocked returns the overlay position of id, or -1.
func (s *Set) indexLocked(id uuid.UUID) int {
	for i := range s.overlays {
		if s.overlays[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends an overlay animation.
// Returns false without change if an overlay with id is already playing.
func (s *Set) Add(id uuid.UUID, sequenceNum int32, objectID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) >= 0 {
		return false
	}
	s.overlays = append(s.overlays, animation.NewRecord(id, sequenceNum, objectID))
	return true
}

// Remove stops the animation with id.
//
// If id is the default: with allowNoDefault the default becomes the nil
// record (sequence 1, no object); otherwise it resets to STAND. Either way
// Remove returns true. If id is an overlay it is removed and Remove returns
// true. Otherwise Remove returns false.
func (s *Set) Remove(id uuid.UUID, allowNoDefault bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.defaultAnim.ID == id {
		if allowNoDefault {
			s.defaultAnim = animation.NewRecord(uuid.Nil, 1, uuid.Nil)
		} else {
			s.resetDefaultLocked()
		}
		return true
	}

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.overlays = append(s.overlays[:i], s.overlays[i+1:]...)
	return true
}

// Clear resets the default to STAND and drops every overlay.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Set) clearLocked() {
	s.resetDefaultLocked()
	s.overlays = nil
}

// SetDefaultAnimation makes id the default (mutually exclusive) animation.
// The implicit default follows. Returns false if id is already the default.
func (s *Set) SetDefaultAnimation(id uuid.UUID, sequenceNum int32, objectID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setDefaultLocked(animation.NewRecord(id, sequenceNum, objectID))
}

// setImplicitDefaultAnimation overwrites the implicit default.
// Only deserialization may call this.
func (s *Set) setImplicitDefaultAnimation(id uuid.UUID, sequenceNum int32, objectID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.implicitDefault = animation.NewRecord(id, sequenceNum, objectID)
}

// TrySetDefaultAnimation resolves name through the directory and makes it
// the default. Returns false if the name is unknown or already the default.
func (s *Set) TrySetDefaultAnimation(name string, sequenceNum int32, objectID uuid.UUID) bool {
	id, ok := s.dir.Lookup(name)
	if !ok {
		return false
	}
	return s.SetDefaultAnimation(id, sequenceNum, objectID)
}
