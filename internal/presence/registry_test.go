package presence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/animset/internal/animation"
	"github.com/roach88/animset/internal/animset"
	"github.com/roach88/animset/internal/store"
	"github.com/roach88/animset/internal/testutil"
)

func TestRegistry_AddGetRemove(t *testing.T) {
	r := NewRegistry(nil, nil)

	a, created := r.Add(testutil.ID(1))
	require.True(t, created)
	again, created := r.Add(testutil.ID(1))
	assert.False(t, created)
	assert.Same(t, a, again)

	got, ok := r.Get(testutil.ID(1))
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, 1, r.Len())

	assert.True(t, r.Remove(testutil.ID(1)))
	assert.False(t, r.Remove(testutil.ID(1)))
	_, ok = r.Get(testutil.ID(1))
	assert.False(t, ok)
}

func TestRegistry_FlushAllOrdered(t *testing.T) {
	r := NewRegistry(nil, testutil.NewDeterministicClock())
	for _, n := range []int{3, 1, 2} {
		r.Add(testutil.ID(n))
	}

	updates := r.FlushAll()
	require.Len(t, updates, 3)
	for i, u := range updates {
		assert.Equal(t, testutil.ID(i+1), u.AvatarID)
	}

	assert.Empty(t, r.FlushAll())

	a, _ := r.Get(testutil.ID(2))
	a.Start(testutil.ID(10), uuid.Nil)

	updates = r.FlushAll()
	require.Len(t, updates, 1)
	assert.Equal(t, testutil.ID(2), updates[0].AvatarID)
}

func TestRegistry_SharedSequencer(t *testing.T) {
	clock := testutil.NewDeterministicClock()
	r := NewRegistry(nil, clock)

	a1, _ := r.Add(testutil.ID(1))
	a2, _ := r.Add(testutil.ID(2))
	a1.Start(testutil.ID(10), uuid.Nil)
	a2.Start(testutil.ID(10), uuid.Nil)

	assert.Equal(t, int32(1), a1.Set().ToArray()[0].SequenceNum)
	assert.Equal(t, int32(2), a2.Set().ToArray()[0].SequenceNum)
}

func TestRegistry_PersistRestore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "presence.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	r := NewRegistry(nil, testutil.NewDeterministicClock())
	a, _ := r.Add(testutil.ID(1))
	a.Start(testutil.ID(10), testutil.ID(50))
	a.SetDefaultNamed("SIT", uuid.Nil)
	r.Add(testutil.ID(2))

	changed, err := r.Persist(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	changed, err = r.Persist(ctx, st)
	require.NoError(t, err)
	assert.Zero(t, changed, "nothing changed since last persist")

	fresh := NewRegistry(nil, nil)
	restored, err := fresh.Restore(ctx, st, testutil.ID(1))
	require.NoError(t, err)
	assert.True(t, a.Set().Equal(restored.Set()))

	_, ok := restored.Flush()
	assert.True(t, ok, "restored state has not been flushed")
}

func TestRegistry_RestoreMissing(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "presence.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	r := NewRegistry(nil, nil)
	_, err = r.Restore(context.Background(), st, testutil.ID(7))
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Zero(t, r.Len())
}

type failingStore struct{}

func (failingStore) Save(context.Context, uuid.UUID, *animset.Set) (bool, error) {
	return false, errors.New("disk full")
}

func (failingStore) Load(context.Context, uuid.UUID, *animation.Directory) (*animset.Set, error) {
	return nil, errors.New("disk full")
}

func TestRegistry_PersistError(t *testing.T) {
	r := NewRegistry(nil, nil)
	r.Add(testutil.ID(1))

	_, err := r.Persist(context.Background(), failingStore{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
