package llsd

import (
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"github.com/google/uuid"
)

// Value is a sealed interface over the structured value variants.
type Value interface {
	llsdValue()
}

// Undef is the absent value. It encodes as JSON null.
type Undef struct{}

func (Undef) llsdValue() {}

// String is a text value.
type String string

func (String) llsdValue() {}

// Int is a signed integer value. Always int64 on the wire.
type Int int64

func (Int) llsdValue() {}

// Bool is a boolean value.
type Bool bool

func (Bool) llsdValue() {}

// UUID is a 128-bit identifier value.
type UUID uuid.UUID

func (UUID) llsdValue() {}

// Array is an ordered list of values.
type Array []Value

func (Array) llsdValue() {}

// Map is a string-keyed set of values.
// Use SortedKeys() for deterministic iteration.
type Map map[string]Value

func (Map) llsdValue() {}

// NewUUID wraps a uuid.UUID as a Value.
func NewUUID(id uuid.UUID) UUID {
	return UUID(id)
}

// AsUUID converts v to a UUID.
// A UUID converts to itself, a String converts when it parses as a UUID,
// and Undef converts to uuid.Nil. Anything else is an error.
func AsUUID(v Value) (uuid.UUID, error) {
	switch val := v.(type) {
	case UUID:
		return uuid.UUID(val), nil
	case String:
		if val == "" {
			return uuid.Nil, nil
		}
		id, err := uuid.Parse(string(val))
		if err != nil {
			return uuid.Nil, fmt.Errorf("string %q is not a uuid: %w", string(val), err)
		}
		return id, nil
	case Undef:
		return uuid.Nil, nil
	case nil:
		return uuid.Nil, fmt.Errorf("missing value")
	default:
		return uuid.Nil, fmt.Errorf("cannot convert %s to uuid", TypeName(v))
	}
}

// AsInt converts v to an int64.
// Int converts to itself, Bool to 0/1 and a numeric String is parsed.
func AsInt(v Value) (int64, error) {
	switch val := v.(type) {
	case Int:
		return int64(val), nil
	case Bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case String:
		n, err := strconv.ParseInt(string(val), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("string %q is not an integer: %w", string(val), err)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("cannot convert %s to int", TypeName(v))
	}
}

// TypeName returns a short name for the variant held by v.
func TypeName(v Value) string {
	switch v.(type) {
	case Undef:
		return "undef"
	case String:
		return "string"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case UUID:
		return "uuid"
	case Array:
		return "array"
	case Map:
		return "map"
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings compares UTF-8 bytes, which orders differently.
func (m Map) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysUTF16)
	return keys
}

func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}
