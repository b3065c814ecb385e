package harness

import "github.com/roach88/animset/internal/animset"

// TraceEvent records one executed step.
type TraceEvent struct {
	Step  int    `json:"step"`
	Op    string `json:"op"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Set   string `json:"set"` // display form after the step
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	Trace  []TraceEvent `json:"trace"`
	Errors []string     `json:"errors,omitempty"`

	// Final is the set after the last step.
	Final *animset.Set `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// addTrace appends a step to the trace.
func (r *Result) addTrace(step int, op string, ok bool, err error, set *animset.Set) {
	ev := TraceEvent{Step: step, Op: op, OK: ok, Set: set.String()}
	if err != nil {
		ev.Error = err.Error()
	}
	r.Trace = append(r.Trace, ev)
}
