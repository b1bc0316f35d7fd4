package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore runs the Store contract against a fresh store.
func testStore(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get("missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("SetGet", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set("g/bt", []byte{1, 2, 3}))

		got, err := s.Get("g/bt")
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set("k", []byte("old")))
		require.NoError(t, s.Set("k", []byte("new")))

		got, err := s.Get("k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), got)
	})

	t.Run("EmptyValue", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set("k", nil))

		got, err := s.Get("k")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("DeleteIdempotent", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set("k", []byte{1}))
		require.NoError(t, s.Delete("k"))
		require.NoError(t, s.Delete("k"))

		_, err := s.Get("k")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("EmptyKey", func(t *testing.T) {
		s := newStore(t)
		assert.ErrorIs(t, s.Set("", []byte{1}), ErrInvalidKey)
		_, err := s.Get("")
		assert.ErrorIs(t, err, ErrInvalidKey)
		assert.ErrorIs(t, s.Delete(""), ErrInvalidKey)
	})

	t.Run("ValuesAreCopied", func(t *testing.T) {
		s := newStore(t)
		value := []byte{1, 2, 3}
		require.NoError(t, s.Set("k", value))
		value[0] = 0xFF

		got, err := s.Get("k")
		require.NoError(t, err)
		assert.Equal(t, byte(1), got[0])

		got[1] = 0xFF
		again, err := s.Get("k")
		require.NoError(t, err)
		assert.Equal(t, byte(2), again[1])
	})

	t.Run("KeysByPrefix", func(t *testing.T) {
		s := newStore(t)
		lister, ok := s.(Lister)
		require.True(t, ok, "store must implement Lister")

		for _, k := range []string{"g/bt/2", "g/bt", "g/bt/0", "g/fidx", "a"} {
			require.NoError(t, s.Set(k, []byte{0}))
		}

		keys, err := lister.Keys(BindingTablePrefix())
		require.NoError(t, err)
		assert.Equal(t, []string{"g/bt", "g/bt/0", "g/bt/2"}, keys)

		all, err := lister.Keys("")
		require.NoError(t, err)
		assert.Len(t, all, 5)
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, func(t *testing.T) Store { return NewMemoryStore() })
}

func TestMemoryStore_LenClear(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set("a", []byte{1}))
	require.NoError(t, s.Set("b", []byte{2}))
	assert.Equal(t, 2, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, err := s.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBindingTableKeys(t *testing.T) {
	assert.Equal(t, "g/bt", BindingTableKey())
	assert.Equal(t, "g/bt/0", BindingTableEntryKey(0))
	assert.Equal(t, "g/bt/a", BindingTableEntryKey(10))
	assert.Equal(t, "g/bt/3f", BindingTableEntryKey(63))
}
