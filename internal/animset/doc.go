// Package animset holds the set of animations currently driving one
// avatar's pose.
//
// A Set has three parts:
//   - Default: the single mutually exclusive pose (stand, fly, sit)
//   - Implicit default: the last explicitly assigned default, kept through
//     serialization even when the default is later removed
//   - Overlays: concurrently playing animations, unique by animation id
//
// # Locking
//
// One sync.RWMutex guards all three parts, so every method observes and
// mutates the set atomically. Reads take the shared lock, mutations the
// exclusive lock, and every acquisition is released with defer. Directory
// lookups and record packing/unpacking run outside the lock.
//
// # Serialized layout
//
// ToSerializableArray emits, in order: the packed default, the packed
// implicit default, then each overlay in collection order. This layout is
// the persistence and wire contract and must not be reordered.
package animset
