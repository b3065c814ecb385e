package animset

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/animset/internal/animation"
	"github.com/roach88/animset/internal/llsd"
	"github.com/roach88/animset/internal/testutil"
)

func TestToSerializableArray_Empty(t *testing.T) {
	// Scenario A.
	arr := New().ToSerializableArray()
	require.Len(t, arr, 2)

	stand := animation.NewRecord(standID(t), 1, uuid.Nil)
	for i, v := range arr {
		r, err := animation.Unpack(v)
		require.NoError(t, err)
		assert.Equal(t, stand, r, "element %d", i)
	}
}

func TestToSerializableArray_Layout(t *testing.T) {
	s := New()
	avatar := testutil.ID(9)
	s.SetDefaultAnimation(flyID(t), 2, avatar)
	s.Remove(flyID(t), true)
	s.Add(testutil.ID(1), 3, avatar)
	s.Add(testutil.ID(2), 4, uuid.Nil)

	arr := s.ToSerializableArray()
	require.Len(t, arr, 4)

	want := []animation.Record{
		animation.NewRecord(uuid.Nil, 1, uuid.Nil),
		animation.NewRecord(flyID(t), 2, avatar),
		animation.NewRecord(testutil.ID(1), 3, avatar),
		animation.NewRecord(testutil.ID(2), 4, uuid.Nil),
	}
	for i, v := range arr {
		r, err := animation.Unpack(v)
		require.NoError(t, err)
		assert.Equal(t, want[i], r, "element %d", i)
	}
}

func TestSerializableArray_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		build func(s *Set)
	}{
		{"empty", func(s *Set) {}},
		{"overlays", func(s *Set) {
			s.Add(testutil.ID(1), 1, testutil.ID(100))
			s.Add(testutil.ID(2), 2, uuid.Nil)
		}},
		{"explicit default", func(s *Set) {
			s.SetDefaultAnimation(flyID(t), 5, testutil.ID(100))
			s.Add(testutil.ID(3), 6, uuid.Nil)
		}},
		{"no default", func(s *Set) {
			s.SetDefaultAnimation(flyID(t), 5, testutil.ID(100))
			s.Remove(flyID(t), true)
		}},
		{"implicit differs after stand reset", func(s *Set) {
			s.SetDefaultAnimation(flyID(t), 5, uuid.Nil)
			s.Remove(flyID(t), true)
			s.Add(testutil.ID(4), 8, uuid.Nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.build(s)

			restored, err := NewFromSerializableArray(s.ToSerializableArray(), nil)
			require.NoError(t, err)
			assert.True(t, s.Equal(restored), "want %s, got %s", s, restored)
			assert.Equal(t, s.ToArray(), restored.ToArray(), "overlay order is preserved")
		})
	}
}

func TestFromSerializableArray_ImplicitIndependent(t *testing.T) {
	sit, _ := animation.DefaultDirectory().Lookup("SIT")
	arr := llsd.Array{
		animation.NewRecord(flyID(t), 1, uuid.Nil).Pack(),
		animation.NewRecord(sit, 2, uuid.Nil).Pack(),
	}

	s := New()
	require.NoError(t, s.FromSerializableArray(arr))
	assert.Equal(t, flyID(t), s.DefaultAnimation().ID)
	assert.Equal(t, sit, s.ImplicitDefaultAnimation().ID)
}

func TestFromSerializableArray_ShortArrays(t *testing.T) {
	s := New()
	s.Add(testutil.ID(1), 1, uuid.Nil)

	require.NoError(t, s.FromSerializableArray(llsd.Array{}))
	assert.Equal(t, 0, s.Len(), "cleared")
	assert.Equal(t, standID(t), s.DefaultAnimation().ID)

	require.NoError(t, s.FromSerializableArray(llsd.Array{
		animation.NewRecord(flyID(t), 3, uuid.Nil).Pack(),
	}))
	assert.Equal(t, flyID(t), s.DefaultAnimation().ID)
	assert.Equal(t, standID(t), s.ImplicitDefaultAnimation().ID)
}

func TestFromSerializableArray_NoDedup(t *testing.T) {
	dup := animation.NewRecord(testutil.ID(1), 1, uuid.Nil)
	arr := New().ToSerializableArray()
	arr = append(arr, dup.Pack(), dup.Pack())

	s := New()
	require.NoError(t, s.FromSerializableArray(arr))
	assert.Equal(t, []animation.Record{dup, dup}, s.ToArray())
}

func TestFromSerializableArray_ErrorLeavesSetUntouched(t *testing.T) {
	s := New()
	s.SetDefaultAnimation(flyID(t), 2, uuid.Nil)
	s.Add(testutil.ID(1), 1, uuid.Nil)
	before := s.String()

	arr := New().ToSerializableArray()
	arr = append(arr, llsd.Map{animation.FieldAnimation: llsd.String("bogus")})

	err := s.FromSerializableArray(arr)
	require.Error(t, err)

	var de *animation.DeserializationError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Index)
	assert.Equal(t, animation.FieldAnimation, de.Field)

	assert.Equal(t, before, s.String())
}

func TestNewFromSerializableArray_Error(t *testing.T) {
	_, err := NewFromSerializableArray(llsd.Array{llsd.Int(1)}, nil)
	require.Error(t, err)
	assert.True(t, animation.IsDeserializationError(err))
}

func TestToArray_IsCopy(t *testing.T) {
	s := New()
	s.Add(testutil.ID(1), 1, uuid.Nil)

	arr := s.ToArray()
	arr[0] = animation.Record{}

	assert.Equal(t, testutil.ID(1), s.ToArray()[0].ID)
}

func TestFromArray_Appends(t *testing.T) {
	s := New()
	s.Add(testutil.ID(1), 1, uuid.Nil)

	recs := []animation.Record{
		animation.NewRecord(testutil.ID(1), 9, uuid.Nil),
		animation.NewRecord(testutil.ID(2), 2, uuid.Nil),
	}
	s.FromArray(recs)

	assert.Equal(t, 3, s.Len(), "no deduplication")
	assert.Equal(t, standID(t), s.DefaultAnimation().ID)
}

func TestGetArrays(t *testing.T) {
	s := New()
	o := testutil.ID(100)
	s.Add(testutil.ID(1), 2, o)
	s.Add(testutil.ID(2), 3, uuid.Nil)

	ids, seqs, objs := s.GetArrays()
	assert.Equal(t, []uuid.UUID{standID(t), testutil.ID(1), testutil.ID(2)}, ids)
	assert.Equal(t, []int32{1, 2, 3}, seqs)
	assert.Equal(t, []uuid.UUID{uuid.Nil, o, uuid.Nil}, objs)
}

func TestGetArrays_NoDefault(t *testing.T) {
	s := New()
	s.Remove(standID(t), true)
	s.Add(testutil.ID(1), 2, uuid.Nil)

	ids, seqs, objs := s.GetArrays()
	assert.Equal(t, []uuid.UUID{testutil.ID(1)}, ids)
	assert.Equal(t, []int32{2}, seqs)
	assert.Equal(t, []uuid.UUID{uuid.Nil}, objs)

	s.Remove(testutil.ID(1), false)
	ids, seqs, objs = s.GetArrays()
	assert.Empty(t, ids)
	assert.Empty(t, seqs)
	assert.Empty(t, objs)
}

func TestClone_Independent(t *testing.T) {
	s := New()
	s.Add(testutil.ID(1), 2, uuid.Nil)

	c := s.Clone()
	assert.True(t, s.Equal(c))
	assert.Same(t, s.Directory(), c.Directory())

	c.Add(testutil.ID(2), 3, uuid.Nil)
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Equal(c))
}
