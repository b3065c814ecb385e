package store

import (
	"fmt"

	"github.com/roach88/animset/internal/codec"
	"github.com/roach88/animset/internal/llsd"
)

const (
	encodingJSON = "json"
	encodingZstd = "zstd"
)

// encodePayload serializes a set for storage and returns the stored bytes,
// their encoding, and the digest of the canonical form.
func (s *Store) encodePayload(arr llsd.Array) (payload []byte, encoding, digest string, err error) {
	canonical, err := codec.Encode(arr)
	if err != nil {
		return nil, "", "", err
	}
	digest = codec.DigestBytes(canonical)

	if s.compress {
		return codec.Compress(canonical), encodingZstd, digest, nil
	}
	return canonical, encodingJSON, digest, nil
}

// decodePayload reverses encodePayload.
func decodePayload(payload []byte, encoding string) (llsd.Array, error) {
	switch encoding {
	case encodingJSON:
	case encodingZstd:
		var err error
		if payload, err = codec.Decompress(payload); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
	default:
		return nil, fmt.Errorf("decode payload: unknown encoding %q", encoding)
	}

	arr, err := codec.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return arr, nil
}
