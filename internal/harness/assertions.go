package harness

import (
	"errors"
	"fmt"

	"github.com/roach88/animset/internal/animation"
	"github.com/roach88/animset/internal/animset"
)

// errAssertion marks a failed assertion, as opposed to a malformed one.
var errAssertion = errors.New("assertion failed")

func failed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errAssertion, fmt.Sprintf(format, args...))
}

// evaluate checks one assertion against set.
func (h *Harness) evaluate(set *animset.Set, a *Assertion) error {
	switch a.Type {
	case AssertDefault:
		return h.assertRecord(set.DefaultAnimation(), a)
	case AssertImplicitDefault:
		return h.assertRecord(set.ImplicitDefaultAnimation(), a)

	case AssertHasAnimation:
		id, err := h.resolve(a.Anim)
		if err != nil {
			return err
		}
		if got := set.HasAnimation(id); got != *a.Want {
			return failed("HasAnimation(%s) = %t, want %t", a.Anim, got, *a.Want)
		}

	case AssertOverlayCount:
		if got := set.Len(); got != *a.Count {
			return failed("overlay count = %d, want %d", got, *a.Count)
		}

	case AssertSerializedLength:
		if got := len(set.ToSerializableArray()); got != *a.Count {
			return failed("serialized length = %d, want %d", got, *a.Count)
		}

	case AssertDisplay:
		if got := set.String(); got != a.Display {
			return failed("display = %q, want %q", got, a.Display)
		}

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

// assertRecord compares r with the anim, and optional seq and object, of a.
func (h *Harness) assertRecord(r animation.Record, a *Assertion) error {
	id, err := h.resolve(a.Anim)
	if err != nil {
		return err
	}
	if r.ID != id {
		return failed("id = %s, want %s (%s)", r.ID, id, a.Anim)
	}
	if a.Seq != nil && r.SequenceNum != *a.Seq {
		return failed("seq = %d, want %d", r.SequenceNum, *a.Seq)
	}
	if a.Object != "" {
		object, err := resolveID(a.Object)
		if err != nil {
			return err
		}
		if r.ObjectID != object {
			return failed("object = %s, want %s", r.ObjectID, object)
		}
	}
	return nil
}
