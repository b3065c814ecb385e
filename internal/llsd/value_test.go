package llsd

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsUUID(t *testing.T) {
	id := uuid.MustParse("2408fe9e-df1d-1d7d-f4ff-1384fa7b350f")

	tests := []struct {
		name    string
		in      Value
		want    uuid.UUID
		wantErr bool
	}{
		{"uuid", NewUUID(id), id, false},
		{"string", String(id.String()), id, false},
		{"empty string", String(""), uuid.Nil, false},
		{"undef", Undef{}, uuid.Nil, false},
		{"bad string", String("not-a-uuid"), uuid.Nil, true},
		{"int", Int(4), uuid.Nil, true},
		{"missing", nil, uuid.Nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AsUUID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsInt(t *testing.T) {
	n, err := AsInt(Int(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = AsInt(Bool(true))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = AsInt(String("-7"))
	require.NoError(t, err)
	assert.Equal(t, int64(-7), n)

	_, err = AsInt(String("seven"))
	assert.Error(t, err)

	_, err = AsInt(Map{})
	assert.Error(t, err)

	_, err = AsInt(nil)
	assert.Error(t, err)
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "uuid", TypeName(UUID{}))
	assert.Equal(t, "map", TypeName(Map{}))
	assert.Equal(t, "array", TypeName(Array{}))
	assert.Equal(t, "undef", TypeName(Undef{}))
	assert.Equal(t, "nil", TypeName(nil))
}

func TestMap_SortedKeys(t *testing.T) {
	m := Map{
		"seq_num":   Int(1),
		"animation": String("a"),
		"object_id": String("b"),
	}
	assert.Equal(t, []string{"animation", "object_id", "seq_num"}, m.SortedKeys())
}

func TestMap_SortedKeys_UTF16Order(t *testing.T) {
	// U+FF61 sorts before U+1F600 in UTF-8 but after it in UTF-16
	// (the emoji becomes a surrogate pair starting 0xD83D).
	m := Map{
		"\uff61":     Int(1),
		"\U0001F600": Int(2),
	}
	assert.Equal(t, []string{"\U0001F600", "\uff61"}, m.SortedKeys())
}
