package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := OpenFileStore(path)
	require.NoError(t, err)

	s.Set("alpha", "1")
	s.Set("beta", "2")
	s.Delete("alpha")

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)

	_, ok := reopened.Get("alpha")
	assert.False(t, ok)

	v, ok := reopened.Get("beta")
	require.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestFileStoreMissingFileOpensEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent", "store.json")

	s, err := OpenFileStore(path)
	require.NoError(t, err)

	_, ok := s.Get("anything")
	assert.False(t, ok)
}

func TestFileStoreCorruptFileOpensEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := OpenFileStore(path)
	require.NoError(t, err)

	_, ok := s.Get("anything")
	assert.False(t, ok)

	s.Set("k", "v")
	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	v, ok := reopened.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}
