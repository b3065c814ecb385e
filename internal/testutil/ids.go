package testutil

import (
	"fmt"

	"github.com/google/uuid"
)

// ID returns a readable, deterministic UUID whose last group is n:
//
//	ID(7) == 00000000-0000-0000-0000-000000000007
//
// ID(0) is uuid.Nil.
func ID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

// IDs returns ID(1) through ID(n).
func IDs(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = ID(i + 1)
	}
	return out
}
