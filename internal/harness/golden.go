package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/animset/internal/llsd"
)

// traceValue converts a trace to its canonical structured form.
func traceValue(name string, trace []TraceEvent) llsd.Map {
	events := make(llsd.Array, len(trace))
	for i, ev := range trace {
		m := llsd.Map{
			"step": llsd.Int(ev.Step),
			"op":   llsd.String(ev.Op),
			"ok":   llsd.Bool(ev.OK),
			"set":  llsd.String(ev.Set),
		}
		if ev.Error != "" {
			m["error"] = llsd.String(ev.Error)
		}
		events[i] = m
	}
	return llsd.Map{
		"scenario": llsd.String(name),
		"trace":    events,
	}
}

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := llsd.MarshalCanonical(traceValue(scenarioName, result.Trace))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)
	return nil
}
