package prealloc_test

import (
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/hupe1980/prealloc"
	"github.com/hupe1980/prealloc/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedUnique_Properties(t *testing.T) {
	rng := testutil.NewRNG(7)
	a := newInts4()
	for _, v := range rng.SortedUnique(20, 100) {
		require.NoError(t, a.PushBack(v))
	}

	for _, v := range rng.Ints(200, 120) {
		_, _, err := prealloc.InsertUnique(a, v)
		require.NoError(t, err)
		assert.Equal(t, 1, prealloc.CountUnique(a, v))

		assert.Equal(t, 1, prealloc.EraseUnique(a, v))
		assert.Equal(t, 0, prealloc.CountUnique(a, v))

		size := a.Len()
		assert.Equal(t, 0, prealloc.EraseUnique(a, v))
		assert.Equal(t, size, a.Len())
	}
}

func TestSortedUnique_Find(t *testing.T) {
	a := newInts4()
	fill(t, a, 10, 20, 30, 40, 50)

	tests := []struct {
		v     int
		pos   int
		found bool
	}{
		{5, 0, false},
		{10, 0, true},
		{25, 2, false},
		{50, 4, true},
		{60, 5, false},
	}
	for _, tt := range tests {
		pos, found := prealloc.FindUnique(a, tt.v)
		assert.Equal(t, tt.pos, pos, "v=%d", tt.v)
		assert.Equal(t, tt.found, found, "v=%d", tt.v)
	}
}

func TestSortedUnique_EmptyArray(t *testing.T) {
	a := newInts4()

	assert.Equal(t, 0, prealloc.CountUnique(a, 1))
	assert.Equal(t, 0, prealloc.EraseUnique(a, 1))

	pos, inserted, err := prealloc.InsertUnique(a, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
	assert.True(t, inserted)
}

// Random set operations against a map model.
func TestSortedUnique_SetModel(t *testing.T) {
	rng := testutil.NewRNG(1234)
	a := prealloc.New[uint64, [8]uint64, prealloc.Plain[uint64]]()
	model := make(map[uint64]struct{})

	for range 3000 {
		v := uint64(rng.Intn(300))
		if rng.Intn(3) == 0 {
			_, present := model[v]
			n := prealloc.EraseUnique(a, v)
			assert.Equal(t, present, n == 1)
			delete(model, v)
			continue
		}
		_, present := model[v]
		_, inserted, err := prealloc.InsertUnique(a, v)
		require.NoError(t, err)
		assert.Equal(t, !present, inserted)
		model[v] = struct{}{}
	}

	assert.Equal(t, slices.Sorted(maps.Keys(model)), a.Slice())
}

type record struct {
	key  string
	data int
}

func byKey(a, b record) int { return strings.Compare(a.key, b.key) }

func TestSortedUnique_Func(t *testing.T) {
	a := prealloc.New[record, [2]record, prealloc.Plain[record]]()

	for i, k := range []string{"m", "c", "x", "a", "c"} {
		_, _, err := a.InsertUniqueFunc(record{k, i}, byKey)
		require.NoError(t, err)
	}

	keys := make([]string, 0, a.Len())
	for r := range a.Values() {
		keys = append(keys, r.key)
	}
	assert.Equal(t, []string{"a", "c", "m", "x"}, keys)

	// The first "c" wins; duplicates are not overwritten
	pos, found := a.FindUniqueFunc(record{key: "c"}, byKey)
	require.True(t, found)
	assert.Equal(t, 1, a.At(pos).data)

	assert.Equal(t, 1, a.CountUniqueFunc(record{key: "x"}, byKey))
	assert.Equal(t, 1, a.EraseUniqueFunc(record{key: "x"}, byKey))
	assert.Equal(t, 0, a.CountUniqueFunc(record{key: "x"}, byKey))
}
