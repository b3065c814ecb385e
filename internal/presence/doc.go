// Package presence drives animation sets for avatars in a scene.
//
// An Animator owns the Set for one avatar. Mutations are stamped with a
// sequence number from a shared Sequencer, and Flush reports the flattened
// set only when it differs from what was last flushed. A Registry holds the
// animators for every avatar present and flushes them in avatar order.
//
// # Ordering
//
// FlushAll returns updates sorted by avatar id bytes, so a scene produces
// the same update stream for the same mutations regardless of map order.
package presence
