package harness

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/animset/internal/animation"
	"github.com/roach88/animset/internal/animset"
	"github.com/roach88/animset/internal/codec"
	"github.com/roach88/animset/internal/llsd"
	"github.com/roach88/animset/internal/testutil"
)

// errStep marks a failure of the operation under test, as opposed to a
// malformed scenario.
var errStep = errors.New("step failed")

// Harness executes scenarios against one directory.
type Harness struct {
	dir    *animation.Directory
	logger *slog.Logger
}

// New creates a harness for s, loading its catalog if any.
func New(s *Scenario) (*Harness, error) {
	dir := animation.DefaultDirectory()
	if s.Catalog != "" {
		f, err := os.Open(s.Catalog)
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		defer f.Close()
		extra, err := animation.LoadDirectoryYAML(f)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		dir = dir.Merge(extra)
	}
	return &Harness{dir: dir, logger: slog.Default().With("scenario", s.Name)}, nil
}

// Run executes a scenario on a fresh set and returns the result.
//
// A returned error means the scenario itself could not run (an anim that
// resolves to nothing, an unreadable catalog). Failed expectations and
// assertions are reported in Result.Errors.
func Run(s *Scenario) (*Result, error) {
	h, err := New(s)
	if err != nil {
		return nil, err
	}
	return h.Run(s)
}

// RunFile loads and runs a scenario file.
func RunFile(path string) (*Result, error) {
	s, err := LoadScenario(path)
	if err != nil {
		return nil, err
	}
	return Run(s)
}

// Run executes s.
func (h *Harness) Run(s *Scenario) (*Result, error) {
	result := NewResult()
	set := animset.NewWithDirectory(h.dir)

	for i, step := range s.Steps {
		ok, err := h.execute(set, &step)
		if err != nil && !errors.Is(err, errStep) {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		result.addTrace(i, step.Op, ok, err, set)
		h.logger.Debug("step executed", "step", i, "op", step.Op, "ok", ok)
		checkStep(result, i, &step, ok, err)
	}

	for i, a := range s.Assertions {
		if err := h.evaluate(set, &a); err != nil {
			if !errors.Is(err, errAssertion) {
				return nil, fmt.Errorf("assertions[%d]: %w", i, err)
			}
			result.AddError(fmt.Sprintf("assertions[%d] %s: %v", i, a.Type, err))
		}
	}

	result.Final = set
	return result, nil
}

// checkStep compares the step outcome with its expectations.
func checkStep(r *Result, i int, step *Step, ok bool, err error) {
	if step.ExpectError != "" {
		if err == nil {
			r.AddError(fmt.Sprintf("steps[%d] %s: expected error containing %q", i, step.Op, step.ExpectError))
		} else if !strings.Contains(err.Error(), step.ExpectError) {
			r.AddError(fmt.Sprintf("steps[%d] %s: error %q does not contain %q", i, step.Op, err, step.ExpectError))
		}
		return
	}
	if err != nil {
		r.AddError(fmt.Sprintf("steps[%d] %s: %v", i, step.Op, err))
		return
	}
	if step.Expect != nil && *step.Expect != ok {
		r.AddError(fmt.Sprintf("steps[%d] %s: returned %t, expected %t", i, step.Op, ok, *step.Expect))
	}
}

// execute applies one step. Errors wrapping errStep are outcomes of the
// operation; any other error is a malformed step.
func (h *Harness) execute(set *animset.Set, step *Step) (bool, error) {
	seq := int32(1)
	if step.Seq != nil {
		seq = *step.Seq
	}

	switch step.Op {
	case OpAdd, OpRemove, OpSetDefault:
		id, err := h.resolve(step.Anim)
		if err != nil {
			return false, err
		}
		object, err := resolveID(step.Object)
		if err != nil {
			return false, err
		}
		switch step.Op {
		case OpAdd:
			return set.Add(id, seq, object), nil
		case OpRemove:
			return set.Remove(id, step.AllowNoDefault), nil
		default:
			return set.SetDefaultAnimation(id, seq, object), nil
		}

	case OpTrySetDefault:
		object, err := resolveID(step.Object)
		if err != nil {
			return false, err
		}
		return set.TrySetDefaultAnimation(step.Anim, seq, object), nil

	case OpClear:
		set.Clear()
		return true, nil

	case OpDeserialize:
		v, err := llsd.Unmarshal([]byte(step.Payload))
		if err != nil {
			return false, fmt.Errorf("payload: %w", err)
		}
		arr, ok := v.(llsd.Array)
		if !ok {
			return false, fmt.Errorf("payload: expected array, got %s", llsd.TypeName(v))
		}
		if err := set.FromSerializableArray(arr); err != nil {
			return false, fmt.Errorf("%w: %w", errStep, err)
		}
		return true, nil

	case OpRoundTrip:
		data, err := codec.Encode(set.ToSerializableArray())
		if err != nil {
			return false, fmt.Errorf("%w: %w", errStep, err)
		}
		arr, err := codec.Decode(data)
		if err != nil {
			return false, fmt.Errorf("%w: %w", errStep, err)
		}
		copied, err := animset.NewFromSerializableArray(arr, h.dir)
		if err != nil {
			return false, fmt.Errorf("%w: %w", errStep, err)
		}
		return set.Equal(copied), nil
	}
	return false, fmt.Errorf("unknown op %q", step.Op)
}

// resolve maps a catalog name, UUID, or id:N shorthand to an animation id.
func (h *Harness) resolve(ref string) (uuid.UUID, error) {
	if id, ok := h.dir.Lookup(ref); ok {
		return id, nil
	}
	return resolveID(ref)
}

// resolveID parses a UUID or id:N shorthand. Empty means uuid.Nil.
func resolveID(ref string) (uuid.UUID, error) {
	if ref == "" {
		return uuid.Nil, nil
	}
	if n, ok := strings.CutPrefix(ref, "id:"); ok {
		v, err := strconv.Atoi(n)
		if err != nil || v < 0 {
			return uuid.Nil, fmt.Errorf("bad id shorthand %q", ref)
		}
		return testutil.ID(v), nil
	}
	id, err := uuid.Parse(ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("unresolvable reference %q", ref)
	}
	return id, nil
}
