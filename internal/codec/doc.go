// Package codec encodes serialized animation sets for the wire and for
// storage.
//
// The payload is the canonical JSON of the array produced by
// animset.Set.ToSerializableArray. Decoding validates the JSON against an
// embedded JSON Schema before converting it to llsd values, so shape errors
// are reported with a schema location rather than surfacing later as
// unpack failures.
//
// Exports wrap a payload with a one-line JSON header and may be zstd
// compressed. Digests are SHA-256 over the canonical payload with domain
// separation and are used to skip redundant writes.
package codec
