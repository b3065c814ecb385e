// Package animation defines the animation record carried by an avatar's
// animation set and the name→id directory used to resolve well-known
// animations such as STAND.
//
// Records pack into llsd maps with the keys "animation", "seq_num" and
// "object_id". The directory is immutable once built; DefaultDirectory
// returns a process-wide instance loaded from the embedded catalog.
package animation
