package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "backup/a.json", []byte("one")))
	require.NoError(t, store.Put(ctx, "backup/b.json", []byte("two")))

	data, err := store.Get(ctx, "backup/a.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)

	names, err := store.List(ctx, "backup/")
	require.NoError(t, err)
	assert.Equal(t, []string{"backup/a.json", "backup/b.json"}, names)
}

func TestLocalStoreGetAbsent(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	_, err := store.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())
	require.NoError(t, store.Put(ctx, "a", []byte("x")))

	require.NoError(t, store.Delete(ctx, "a"))
	_, err := store.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(ctx, "a"))
}

func TestLocalStoreListEmptyRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")
	store := NewLocalStore(root)

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStoreListSkipsTempFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewLocalStore(root)
	require.NoError(t, store.Put(ctx, "a.json", []byte("x")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.json.tmp"), []byte("y"), 0o644))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json"}, names)
}
