package store

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/roach88/animset/internal/animset"
	"github.com/roach88/animset/internal/testutil"
)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSet returns a set holding STAND as default plus n overlays
// with ids testutil.ID(1..n).
func createTestSet(t *testing.T, n int) *animset.Set {
	t.Helper()
	set := animset.New()
	for i := 1; i <= n; i++ {
		set.Add(testutil.ID(i), int32(i), uuid.Nil)
	}
	return set
}
