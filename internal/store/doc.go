// Package store provides SQLite-backed persistence for avatar animation
// sets.
//
// Two tables are kept:
//   - animation_sets: the latest serialized set per avatar
//   - animation_set_history: an append-only log of every change, including
//     deletions as tombstones
//
// # Change detection
//
// Save compares the digest of the new serialized set with the stored one
// and skips the write when nothing changed. This is the persistence twin of
// comparing sets with Equal before sending a network update.
//
// # Ordering
//
// History is ordered by a logical seq (never wall time) that resumes from
// the highest stored value when the database is reopened. All list queries
// ORDER BY a stable key.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
