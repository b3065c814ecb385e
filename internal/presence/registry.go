package presence

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/animset/internal/animation"
	"github.com/roach88/animset/internal/animset"
)

// SetStore persists animation sets. *store.Store satisfies it.
type SetStore interface {
	Save(ctx context.Context, avatarID uuid.UUID, set *animset.Set) (bool, error)
	Load(ctx context.Context, avatarID uuid.UUID, dir *animation.Directory) (*animset.Set, error)
}

// Registry tracks the animators of every avatar present.
type Registry struct {
	dir *animation.Directory
	seq Sequencer

	mu        sync.RWMutex
	animators map[uuid.UUID]*Animator
}

// NewRegistry creates an empty registry. A nil dir selects
// animation.DefaultDirectory; a nil seq selects a fresh Counter.
func NewRegistry(dir *animation.Directory, seq Sequencer) *Registry {
	if dir == nil {
		dir = animation.DefaultDirectory()
	}
	if seq == nil {
		seq = NewCounter()
	}
	return &Registry{
		dir:       dir,
		seq:       seq,
		animators: make(map[uuid.UUID]*Animator),
	}
}

// Add returns the animator for avatarID, creating one if needed.
// created reports whether a new animator was made.
func (r *Registry) Add(avatarID uuid.UUID) (a *Animator, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.animators[avatarID]; ok {
		return a, false
	}
	a = NewAnimator(avatarID, r.dir, r.seq)
	r.animators[avatarID] = a
	return a, true
}

// Get returns the animator for avatarID.
func (r *Registry) Get(avatarID uuid.UUID) (*Animator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.animators[avatarID]
	return a, ok
}

// Remove drops the animator for avatarID. Returns false if absent.
func (r *Registry) Remove(avatarID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.animators[avatarID]; !ok {
		return false
	}
	delete(r.animators, avatarID)
	return true
}

// Len returns the number of avatars present.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.animators)
}

// sorted returns the animators ordered by avatar id bytes.
func (r *Registry) sorted() []*Animator {
	r.mu.RLock()
	out := make([]*Animator, 0, len(r.animators))
	for _, a := range r.animators {
		out = append(out, a)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].avatarID[:], out[j].avatarID[:]) < 0
	})
	return out
}

// FlushAll flushes every animator and returns the pending updates in
// avatar order. Returns an empty slice (not nil) when nothing changed.
func (r *Registry) FlushAll() []Update {
	updates := []Update{}
	for _, a := range r.sorted() {
		if u, ok := a.Flush(); ok {
			updates = append(updates, u)
		}
	}
	return updates
}

// Persist saves every animator's set. Returns how many stored sets changed.
func (r *Registry) Persist(ctx context.Context, st SetStore) (int, error) {
	changed := 0
	for _, a := range r.sorted() {
		ok, err := st.Save(ctx, a.avatarID, a.set)
		if err != nil {
			return changed, fmt.Errorf("persist %s: %w", a.avatarID, err)
		}
		if ok {
			changed++
		}
	}
	slog.Debug("animation sets persisted", "avatars", r.Len(), "changed", changed)
	return changed, nil
}

// Restore loads the stored set for avatarID and installs it, replacing any
// animator already present. The restored state has not been flushed.
func (r *Registry) Restore(ctx context.Context, st SetStore, avatarID uuid.UUID) (*Animator, error) {
	set, err := st.Load(ctx, avatarID, r.dir)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", avatarID, err)
	}

	a := newAnimator(avatarID, set, r.seq)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.animators[avatarID] = a
	return a, nil
}
