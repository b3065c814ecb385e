// Package harness runs animation set scenarios written in YAML.
//
// A scenario applies a list of operations to a fresh set and then checks
// assertions against the final state. Every step is recorded in a trace
// that can be compared against a golden file.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario shows"
//	catalog: extra.yaml        # optional, merged over the built-in catalog
//	steps:
//	  - op: add
//	    anim: id:1             # catalog name, UUID, or id:N shorthand
//	    seq: 2
//	    object: id:7
//	    expect: true
//	  - op: deserialize
//	    payload: '[{"animation": ...}]'
//	    expect_error: "seq_num"
//	assertions:
//	  - type: default
//	    anim: STAND
//	    seq: 1
//	  - type: overlay_count
//	    count: 0
//
// # Operations
//
//   - add, remove, set_default: take anim, seq (default 1) and object
//   - try_set_default: anim must be a catalog name
//   - clear: no arguments
//   - deserialize: replaces the set from a JSON payload
//   - roundtrip: encodes and decodes the set, reporting whether the copy
//     is equal
//
// # Assertion Types
//
//   - default, implicit_default: anim plus optional seq and object
//   - has_animation: anim and want
//   - overlay_count: count
//   - display: exact String() output
//   - serialized_length: count of elements in the serialized array
package harness
