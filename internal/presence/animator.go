package presence

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/animset/internal/animation"
	"github.com/roach88/animset/internal/animset"
)

// Update is the flattened animation state sent for one avatar.
// Index 0 holds the default when one is set.
type Update struct {
	AvatarID     uuid.UUID
	IDs          []uuid.UUID
	SequenceNums []int32
	ObjectIDs    []uuid.UUID
}

// Len returns the number of animations in the update.
func (u Update) Len() int {
	return len(u.IDs)
}

// Animator owns the animation set of one avatar.
type Animator struct {
	avatarID uuid.UUID
	set      *animset.Set
	seq      Sequencer

	flushMu sync.Mutex
	sent    *animset.Set // snapshot of the last flushed state; nil before the first Flush
}

// NewAnimator creates an animator whose set starts at STAND from dir.
func NewAnimator(avatarID uuid.UUID, dir *animation.Directory, seq Sequencer) *Animator {
	return newAnimator(avatarID, animset.NewWithDirectory(dir), seq)
}

func newAnimator(avatarID uuid.UUID, set *animset.Set, seq Sequencer) *Animator {
	return &Animator{avatarID: avatarID, set: set, seq: seq}
}

// AvatarID returns the avatar this animator belongs to.
func (a *Animator) AvatarID() uuid.UUID {
	return a.avatarID
}

// Set returns the live set. Mutations through it are seen by Flush.
func (a *Animator) Set() *animset.Set {
	return a.set
}

// Start plays id as an overlay on behalf of objectID.
// Returns false if it is already playing.
func (a *Animator) Start(id, objectID uuid.UUID) bool {
	return a.set.Add(id, nextSeq(a.seq), objectID)
}

// Stop stops id, falling back to STAND if it was the default.
func (a *Animator) Stop(id uuid.UUID) bool {
	return a.set.Remove(id, false)
}

// StopAllowingNone stops id and leaves no default if it was the default.
func (a *Animator) StopAllowingNone(id uuid.UUID) bool {
	return a.set.Remove(id, true)
}

// SetDefault makes id the default animation.
func (a *Animator) SetDefault(id, objectID uuid.UUID) bool {
	return a.set.SetDefaultAnimation(id, nextSeq(a.seq), objectID)
}

// SetDefaultNamed makes the directory animation name the default.
// Returns false if name is unknown or already the default.
func (a *Animator) SetDefaultNamed(name string, objectID uuid.UUID) bool {
	if _, ok := a.set.Directory().Lookup(name); !ok {
		slog.Debug("unknown animation name", "avatar", a.avatarID, "name", name)
		return false
	}
	return a.set.TrySetDefaultAnimation(name, nextSeq(a.seq), objectID)
}

// Reset returns the avatar to STAND with no overlays.
func (a *Animator) Reset() {
	a.set.Clear()
}

// Flush returns the current state when it differs from the last flushed
// state. The first Flush always reports.
func (a *Animator) Flush() (Update, bool) {
	a.flushMu.Lock()
	defer a.flushMu.Unlock()

	// The update and the stored snapshot come from one copy.
	snap := a.set.Clone()

	if a.sent != nil && snap.Equal(a.sent) {
		slog.Debug("animation update coalesced", "avatar", a.avatarID)
		return Update{}, false
	}
	a.sent = snap

	ids, seqs, objs := snap.GetArrays()
	return Update{
		AvatarID:     a.avatarID,
		IDs:          ids,
		SequenceNums: seqs,
		ObjectIDs:    objs,
	}, true
}
