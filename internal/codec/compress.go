package codec

import (
	"bytes"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Shared coders: EncodeAll and DecodeAll are safe for concurrent use.
var (
	encOnce sync.Once
	encoder *zstd.Encoder
	decOnce sync.Once
	decoder *zstd.Decoder
)

func sharedEncoder() *zstd.Encoder {
	encOnce.Do(func() {
		encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	})
	return encoder
}

func sharedDecoder() *zstd.Decoder {
	decOnce.Do(func() {
		decoder, _ = zstd.NewReader(nil)
	})
	return decoder
}

// Compress wraps data in a zstd frame.
func Compress(data []byte) []byte {
	return sharedEncoder().EncodeAll(data, make([]byte, 0, len(data)/2+16))
}

// Decompress unwraps a zstd frame.
func Decompress(data []byte) ([]byte, error) {
	out, err := sharedDecoder().DecodeAll(data, nil)
	if err != nil {
		return nil, &DecodeError{Code: ErrCodeCompression, Message: "corrupt zstd frame", Err: err}
	}
	return out, nil
}

// IsCompressed reports whether data starts with a zstd frame header.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}
