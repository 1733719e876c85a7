package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionRegistry(t *testing.T) {
	t.Run("add and lookup", func(t *testing.T) {
		r := NewSessionRegistry()
		r.Add("conn-1", "alice")
		r.Add("conn-2", "bob")

		name, ok := r.Username("conn-1")
		require.True(t, ok)
		require.Equal(t, "alice", name)

		name, ok = r.Username("conn-2")
		require.True(t, ok)
		require.Equal(t, "bob", name)

		require.Equal(t, 2, r.Len())
	})

	t.Run("unknown connection", func(t *testing.T) {
		r := NewSessionRegistry()
		_, ok := r.Username("nope")
		require.False(t, ok)
	})

	t.Run("remove", func(t *testing.T) {
		r := NewSessionRegistry()
		r.Add("conn-1", "alice")

		require.True(t, r.Remove("conn-1"))
		require.Equal(t, 0, r.Len())

		_, ok := r.Username("conn-1")
		require.False(t, ok)
	})

	t.Run("remove from empty registry", func(t *testing.T) {
		r := NewSessionRegistry()
		require.False(t, r.Remove("conn-1"))
	})

	t.Run("remove unknown connection", func(t *testing.T) {
		r := NewSessionRegistry()
		r.Add("conn-1", "alice")
		require.False(t, r.Remove("conn-2"))
		require.Equal(t, 1, r.Len())
	})

	t.Run("active is case-insensitive", func(t *testing.T) {
		r := NewSessionRegistry()
		r.Add("conn-1", "Alice")

		require.True(t, r.Active("alice"))
		require.True(t, r.Active("ALICE"))
		require.False(t, r.Active("bob"))
	})
}
