package paramstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_Bijection(t *testing.T) {
	t.Parallel()
	schema := NewSchema(DefaultEntries())

	for _, e := range DefaultEntries() {
		got, ok := schema.Lookup(e.Name)
		require.True(t, ok, "entry %q must be found by name", e.Name)
		assert.Equal(t, e.ID, got.ID)
		assert.Equal(t, e.Type, got.Type)

		name, ok := schema.LookupByID(e.ID)
		require.True(t, ok, "entry id %d must be found", e.ID)
		assert.Equal(t, e.Name, name)
	}
}

func TestSchema_UnknownLookup(t *testing.T) {
	t.Parallel()
	schema := NewSchema(DefaultEntries())

	_, ok := schema.Lookup("does-not-exist")
	assert.False(t, ok)

	_, ok = schema.LookupByID(99999)
	assert.False(t, ok)
}

func TestSchema_IterIsStableInsertionOrder(t *testing.T) {
	t.Parallel()
	entries := DefaultEntries()
	schema := NewSchema(entries)

	iterated := schema.Iter()
	require.Len(t, iterated, len(entries))
	for i, e := range entries {
		assert.Equal(t, e.Name, iterated[i].Name, "index %d", i)
	}
}

func TestSchema_PanicsOnDuplicateName(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		NewSchema([]Entry{
			{Name: "brightness", ID: 1, Type: TypeUint32},
			{Name: "brightness", ID: 2, Type: TypeUint32},
		})
	})
}

func TestSchema_PanicsOnDuplicateID(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		NewSchema([]Entry{
			{Name: "a", ID: 1, Type: TypeUint32},
			{Name: "b", ID: 1, Type: TypeUint32},
		})
	})
}
