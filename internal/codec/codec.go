package codec

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/roach88/animset/internal/llsd"
)

// DomainSerializedSet separates set digests from any other hash of the
// same bytes. The version suffix allows a future algorithm change.
const DomainSerializedSet = "animset/serialized/v1"

const schemaURL = "https://animset.roach88.dev/schemas/serialized.schema.json"

//go:embed serialized.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
)

func serializedSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			panic(fmt.Sprintf("codec: add schema: %v", err))
		}
		schema = c.MustCompile(schemaURL)
	})
	return schema
}

// Encode returns the canonical JSON of a serialized set.
func Encode(arr llsd.Array) ([]byte, error) {
	data, err := llsd.MarshalCanonical(arr)
	if err != nil {
		return nil, fmt.Errorf("encode serialized set: %w", err)
	}
	return data, nil
}

// Decode parses and validates a serialized set.
// Errors are *DecodeError with ErrCodeSyntax or ErrCodeSchema.
func Decode(data []byte) (llsd.Array, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &DecodeError{Code: ErrCodeSyntax, Message: "invalid json", Err: err}
	}
	if dec.More() {
		return nil, &DecodeError{Code: ErrCodeSyntax, Message: "trailing data after array"}
	}

	if err := serializedSchema().Validate(raw); err != nil {
		return nil, &DecodeError{Code: ErrCodeSchema, Message: "serialized set does not match schema", Err: err}
	}

	v, err := llsd.FromAny(raw)
	if err != nil {
		return nil, &DecodeError{Code: ErrCodeSchema, Message: "unsupported value", Err: err}
	}
	arr, ok := v.(llsd.Array)
	if !ok {
		return nil, &DecodeError{Code: ErrCodeSchema, Message: "expected array, got " + llsd.TypeName(v)}
	}
	return arr, nil
}

// Digest returns the hex SHA-256 of the canonical payload:
// SHA256(DomainSerializedSet + 0x00 + canonical).
func Digest(arr llsd.Array) (string, error) {
	data, err := Encode(arr)
	if err != nil {
		return "", err
	}
	return DigestBytes(data), nil
}

// DigestBytes digests an already encoded canonical payload.
func DigestBytes(canonical []byte) string {
	h := sha256.New()
	h.Write([]byte(DomainSerializedSet))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil))
}
