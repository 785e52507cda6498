package localstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)

	value, ok, err := s.Get("token")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, value)
}

func TestSetGetRoundtrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("token", "abc123"))

	value, ok, err := s.Get("token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc123", value)
}

func TestSetOverwrites(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("cart", `[]`))
	require.NoError(t, s.Set("cart", `[{"product_id":1}]`))

	value, ok, err := s.Get("cart")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"product_id":1}]`, value)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("user", `{"id":1}`))
	require.NoError(t, s.Delete("user"))

	_, ok, err := s.Get("user")
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting an absent key is a no-op, not an error.
	require.NoError(t, s.Delete("user"))
}

func TestKeysAreIndependent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set(KeyToken, "tok"))
	require.NoError(t, s.Set(KeyCart, "[]"))
	require.NoError(t, s.Delete(KeyCart))

	value, ok, err := s.Get(KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok", value)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("token", "survives"))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	value, ok, err := s2.Get("token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "survives", value)
}
