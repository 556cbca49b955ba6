package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()

	got, err := c.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, c.Store("tok"))
	got, err = c.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", got)

	require.NoError(t, c.Clear())
	got, err = c.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	c := NewFileCache(path)
	assert.Equal(t, path, c.Path())

	got, err := c.Load()
	require.NoError(t, err)
	assert.Empty(t, got, "missing file reads as empty")

	require.NoError(t, c.Store("tok-1"))
	require.NoError(t, c.Store("tok-2"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err = NewFileCache(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, c.Clear())
	require.NoError(t, c.Clear())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileCacheSharedAcrossProviders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	p1, _, rdb := newTestProvider(t, nil)
	p1.cache = NewFileCache(path)
	state, err := p1.CreateAccount(t.Context(), creds("file@example.com", "abcdefg"))
	require.NoError(t, err)

	p2, err := NewProvider(rdb, testConfig(), NewFileCache(path), nil)
	require.NoError(t, err)
	assert.Equal(t, state, p2.CurrentSession(t.Context()))
}
