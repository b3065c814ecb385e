package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario is a sequence of set operations followed by assertions.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Catalog is an optional YAML catalog merged over the built-in one.
	// Relative paths resolve against the scenario file.
	Catalog string `yaml:"catalog,omitempty"`

	Steps      []Step      `yaml:"steps"`
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one operation on the set.
type Step struct {
	Op string `yaml:"op"`

	Anim           string `yaml:"anim,omitempty"`
	Seq            *int32 `yaml:"seq,omitempty"` // defaults to 1
	Object         string `yaml:"object,omitempty"`
	AllowNoDefault bool   `yaml:"allow_no_default,omitempty"`

	// Payload is the JSON serialized array for deserialize.
	Payload string `yaml:"payload,omitempty"`

	// Expect is the expected boolean return of the operation, if checked.
	Expect *bool `yaml:"expect,omitempty"`

	// ExpectError is a substring the step's error must contain. Empty means
	// the step must not fail.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion checks the final state.
type Assertion struct {
	Type string `yaml:"type"`

	Anim    string `yaml:"anim,omitempty"`
	Seq     *int32 `yaml:"seq,omitempty"`
	Object  string `yaml:"object,omitempty"`
	Want    *bool  `yaml:"want,omitempty"`
	Count   *int   `yaml:"count,omitempty"`
	Display string `yaml:"display,omitempty"`
}

// Operation names.
const (
	OpAdd           = "add"
	OpRemove        = "remove"
	OpClear         = "clear"
	OpSetDefault    = "set_default"
	OpTrySetDefault = "try_set_default"
	OpDeserialize   = "deserialize"
	OpRoundTrip     = "roundtrip"
)

// Assertion type constants.
const (
	AssertDefault          = "default"
	AssertImplicitDefault  = "implicit_default"
	AssertHasAnimation     = "has_animation"
	AssertOverlayCount     = "overlay_count"
	AssertDisplay          = "display"
	AssertSerializedLength = "serialized_length"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}
	if s.Catalog != "" && !filepath.IsAbs(s.Catalog) {
		s.Catalog = filepath.Join(filepath.Dir(path), s.Catalog)
	}
	return s, nil
}

// ParseScenario parses scenario YAML. Unknown fields are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 && len(s.Assertions) == 0 {
		return fmt.Errorf("steps or assertions are required")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, s *Step) error {
	switch s.Op {
	case OpAdd, OpRemove, OpSetDefault, OpTrySetDefault:
		if s.Anim == "" {
			return fmt.Errorf("steps[%d]: anim is required for %s", index, s.Op)
		}
	case OpDeserialize:
		if s.Payload == "" {
			return fmt.Errorf("steps[%d]: payload is required for deserialize", index)
		}
	case OpClear, OpRoundTrip:
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, s.Op)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertDefault, AssertImplicitDefault:
		if a.Anim == "" {
			return fmt.Errorf("assertions[%d]: anim is required for %s", index, a.Type)
		}
	case AssertHasAnimation:
		if a.Anim == "" || a.Want == nil {
			return fmt.Errorf("assertions[%d]: anim and want are required for has_animation", index)
		}
	case AssertOverlayCount, AssertSerializedLength:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for %s", index, a.Type)
		}
	case AssertDisplay:
		if a.Display == "" {
			return fmt.Errorf("assertions[%d]: display is required", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
