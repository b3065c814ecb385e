// Package llsd provides the structured value model used to pack animation
// records for persistence and network updates.
//
// Values form a sealed sum type: Undef, String, Int, Bool, UUID, Array and
// Map. Only these types implement Value. Floats are not representable.
//
// Key design constraints:
//   - Canonical JSON is the only wire form (RFC 8785 key ordering, NFC strings)
//   - UUIDs encode as their hyphenated string and convert back via AsUUID
//   - Map iteration is always done through SortedKeys for determinism
//
// llsd imports nothing internal.
package llsd
