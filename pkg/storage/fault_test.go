package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaultStore_PassThrough(t *testing.T) {
	f := NewFaultStore(NewMemoryStore())
	testStore(t, func(t *testing.T) Store { return NewFaultStore(NewMemoryStore()) })

	require.NoError(t, f.Set("k", []byte{1}))
	_, err := f.Get("k")
	require.NoError(t, err)
	require.NoError(t, f.Delete("k"))

	assert.Equal(t, []Call{
		{Op: OpSet, Key: "k"},
		{Op: OpGet, Key: "k"},
		{Op: OpDelete, Key: "k"},
	}, f.Calls())
}

func TestFaultStore_Rules(t *testing.T) {
	inner := NewMemoryStore()
	f := NewFaultStore(inner)
	boom := errors.New("flash worn out")

	f.FailOn(OpSet, "g/bt", boom)
	f.FailOn(OpDelete, "", nil)

	assert.ErrorIs(t, f.Set("g/bt", []byte{1}), boom)
	assert.NoError(t, f.Set("g/bt/0", []byte{1}))
	assert.ErrorIs(t, f.Delete("g/bt/0"), ErrInjected)

	// Failed calls never reach the wrapped store.
	_, err := inner.Get("g/bt")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = inner.Get("g/bt/0")
	assert.NoError(t, err)

	calls := f.Calls()
	require.Len(t, calls, 3)
	assert.ErrorIs(t, calls[0].Err, boom)
	assert.NoError(t, calls[1].Err)

	f.ClearFaults()
	f.ResetCalls()
	assert.NoError(t, f.Set("g/bt", []byte{1}))
	assert.NoError(t, f.Delete("g/bt/0"))
	assert.Len(t, f.Calls(), 2)
}

func TestOp_String(t *testing.T) {
	assert.Equal(t, "get", OpGet.String())
	assert.Equal(t, "set", OpSet.String())
	assert.Equal(t, "delete", OpDelete.String())
	assert.Equal(t, "unknown", Op(9).String())
}
