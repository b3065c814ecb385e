package animset

import (
	"strings"

	"github.com/roach88/animset/internal/animation"
)

// Equal reports whether two sets hold the same default, the same implicit
// default, and the same overlays regardless of order.
//
// A nil set is only equal to another nil set. Each side is snapshotted
// under its own lock in turn; the two locks are never held together.
func (s *Set) Equal(other *Set) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s == other {
		return true
	}

	def, implicit, mine := s.snapshot()
	oDef, oImplicit, theirs := other.snapshot()

	if def != oDef || implicit != oImplicit {
		return false
	}
	return sameRecords(mine, theirs)
}

// sameRecords compares two overlay collections as sets. Overlay counts are
// small, so a quadratic scan is fine. Both directions are checked so that
// duplicates from deserialization cannot make the result asymmetric.
func sameRecords(a, b []animation.Record) bool {
	if len(a) != len(b) {
		return false
	}
	return containsAll(a, b) && containsAll(b, a)
}

// containsAll reports whether every record of a appears in b.
func containsAll(a, b []animation.Record) bool {
	for _, ra := range a {
		found := false
		for _, rb := range b {
			if ra == rb {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// String renders the set for logs:
//
//	dflt=<record>,iDflt=same|<record>[,anims=<record>,<record>...]
//
// Overlays keep collection order. Not a wire format.
func (s *Set) String() string {
	def, implicit, overlays := s.snapshot()

	var b strings.Builder
	b.WriteString("dflt=")
	b.WriteString(def.String())
	b.WriteString(",iDflt=")
	if def == implicit {
		b.WriteString("same")
	} else {
		b.WriteString(implicit.String())
	}
	if len(overlays) > 0 {
		b.WriteString(",anims=")
		for i, r := range overlays {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('<')
			b.WriteString(r.String())
			b.WriteByte('>')
		}
	}
	return b.String()
}
