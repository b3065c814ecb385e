package codec

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/roach88/animset/internal/llsd"
)

// ExportVersion is the current export header version.
const ExportVersion = 1

// Header is the first line of an export.
type Header struct {
	Version  int       `json:"version"`
	AvatarID uuid.UUID `json:"avatar_id"`
	Digest   string    `json:"digest"`
	Count    int       `json:"count"`
}

// Export is one avatar's serialized set plus its header.
type Export struct {
	Header Header
	Set    llsd.Array
}

// NewExport builds an export for avatarID, computing the digest.
func NewExport(avatarID uuid.UUID, arr llsd.Array) (Export, error) {
	digest, err := Digest(arr)
	if err != nil {
		return Export{}, err
	}
	return Export{
		Header: Header{
			Version:  ExportVersion,
			AvatarID: avatarID,
			Digest:   digest,
			Count:    len(arr),
		},
		Set: arr,
	}, nil
}

// WriteExport writes a header line followed by the canonical payload.
// With compress, the whole stream is a single zstd frame.
func WriteExport(w io.Writer, e Export, compress bool) (err error) {
	payload, err := Encode(e.Set)
	if err != nil {
		return err
	}

	if compress {
		enc, zerr := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if zerr != nil {
			return fmt.Errorf("zstd writer: %w", zerr)
		}
		defer func() {
			if cerr := enc.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("zstd close: %w", cerr)
			}
		}()
		w = enc
	}

	bw := bufio.NewWriter(w)
	hb, err := json.Marshal(e.Header)
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}
	if _, err := bw.Write(hb); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := bw.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}

// ReadExport reads an export written by WriteExport, compressed or not.
// The payload is schema-validated and checked against the header digest.
func ReadExport(r io.Reader) (Export, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Export{}, fmt.Errorf("read export: %w", err)
	}
	if IsCompressed(data) {
		if data, err = Decompress(data); err != nil {
			return Export{}, err
		}
	}

	line, payload, ok := bytes.Cut(data, []byte{'\n'})
	if !ok {
		return Export{}, &DecodeError{Code: ErrCodeHeader, Message: "missing header line"}
	}

	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return Export{}, &DecodeError{Code: ErrCodeHeader, Message: "invalid header", Err: err}
	}
	if h.Version != ExportVersion {
		return Export{}, &DecodeError{Code: ErrCodeHeader, Message: fmt.Sprintf("unsupported version %d", h.Version)}
	}

	arr, err := Decode(payload)
	if err != nil {
		return Export{}, err
	}
	got, err := Digest(arr)
	if err != nil {
		return Export{}, err
	}
	if got != h.Digest {
		return Export{}, &DecodeError{Code: ErrCodeDigest, Message: fmt.Sprintf("digest mismatch: header %s, payload %s", h.Digest, got)}
	}
	return Export{Header: h, Set: arr}, nil
}
