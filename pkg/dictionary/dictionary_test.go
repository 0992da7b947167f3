package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryFirstSeenOrder(t *testing.T) {
	d := New()

	assert.Equal(t, 0, d.GetOrInsert("x"))
	assert.Equal(t, 1, d.GetOrInsert("y"))
	assert.Equal(t, 2, d.GetOrInsert("z"))
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []string{"x", "y", "z"}, d.Values())
}

func TestDictionaryIdempotentInsert(t *testing.T) {
	d := New()

	assert.Equal(t, 0, d.GetOrInsert("x"))
	assert.Equal(t, 1, d.GetOrInsert("y"))
	assert.Equal(t, 0, d.GetOrInsert("x"))
	assert.Equal(t, 1, d.GetOrInsert("y"))
	assert.Equal(t, 2, d.Len())
}

func TestDictionaryBijection(t *testing.T) {
	d := New()
	values := []string{"alpha", "beta", "", "alpha", "gamma", "beta"}
	for _, v := range values {
		d.GetOrInsert(v)
	}

	// idToValue[valueToId[v]] == v for every inserted value
	for _, v := range values {
		id, ok := d.ID(v)
		require.True(t, ok)
		back, ok := d.Value(id)
		require.True(t, ok)
		assert.Equal(t, v, back)
	}
}

func TestDictionaryLookupMisses(t *testing.T) {
	d := New()
	d.GetOrInsert("x")

	_, ok := d.ID("missing")
	assert.False(t, ok)

	_, ok = d.Value(-1)
	assert.False(t, ok)

	_, ok = d.Value(1)
	assert.False(t, ok)
}

func TestArenaAccess(t *testing.T) {
	c0 := New()
	c0.GetOrInsert("x")
	c0.GetOrInsert("y")
	c1 := New()
	c1.GetOrInsert("1")

	arena := NewArena([]*Dictionary{c0, c1})

	assert.Equal(t, 2, arena.Columns())
	assert.Equal(t, 2, arena.Size(0))
	assert.Equal(t, 1, arena.Size(1))

	v, ok := arena.Value(0, 1)
	require.True(t, ok)
	assert.Equal(t, "y", v)

	id, ok := arena.ID(1, "1")
	require.True(t, ok)
	assert.Equal(t, 0, id)

	_, ok = arena.Value(5, 0)
	assert.False(t, ok)
	_, ok = arena.ID(-1, "x")
	assert.False(t, ok)
}

func TestArenaPersistRoundTrip(t *testing.T) {
	c0 := New()
	c0.GetOrInsert("x")
	c0.GetOrInsert("y")
	c1 := New()
	c1.GetOrInsert("1")
	c1.GetOrInsert("2")
	arena := NewArena([]*Dictionary{c0, c1})

	dir := t.TempDir()
	reversePath := filepath.Join(dir, "dicts.gagc")
	forwardPath := filepath.Join(dir, "dicts.gagd")

	require.NoError(t, arena.SaveReverse(reversePath))
	require.NoError(t, arena.SaveForward(forwardPath))

	loaded, err := LoadReverse(reversePath)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Columns())

	for col := 0; col < arena.Columns(); col++ {
		require.Equal(t, arena.Size(col), loaded.Size(col))
		for id := 0; id < arena.Size(col); id++ {
			want, _ := arena.Value(col, id)
			got, ok := loaded.Value(col, id)
			require.True(t, ok)
			assert.Equal(t, want, got)
		}
	}

	// Forward file holds one value-to-id object per column in column order.
	data, err := os.ReadFile(forwardPath)
	require.NoError(t, err)
	var forward []map[string]int
	require.NoError(t, json.Unmarshal(data, &forward))
	assert.Equal(t, []map[string]int{
		{"x": 0, "y": 1},
		{"1": 0, "2": 1},
	}, forward)
}

func TestArenaPersistEmptyColumns(t *testing.T) {
	arena := NewArena([]*Dictionary{New(), New()})

	dir := t.TempDir()
	reversePath := filepath.Join(dir, "empty.gagc")
	require.NoError(t, arena.SaveReverse(reversePath))

	loaded, err := LoadReverse(reversePath)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Columns())
	assert.Equal(t, 0, loaded.Size(0))
	assert.Equal(t, 0, loaded.Size(1))
}
