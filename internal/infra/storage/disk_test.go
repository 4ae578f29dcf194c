package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveAndOpen(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "products/sample.jpg", strings.NewReader("jpeg bytes")))

	f, err := store.Open("products/sample.jpg")
	require.NoError(t, err)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "jpeg bytes", string(content))
}

func TestSaveOverwritesExistingName(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "products/sample.jpg", strings.NewReader("first")))
	require.NoError(t, store.Save(ctx, "products/sample.jpg", strings.NewReader("second")))

	f, err := store.Open("products/sample.jpg")
	require.NoError(t, err)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "second", string(content))
}

func TestRemove(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "products/sample.jpg", strings.NewReader("x")))
	require.NoError(t, store.Remove(ctx, "products/sample.jpg"))

	_, err = store.Open("products/sample.jpg")
	require.Error(t, err)
}

func TestRejectsNonLocalNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	for _, name := range []string{"", "../escape.jpg", "products/../../escape.jpg", "/absolute.jpg"} {
		require.ErrorIs(t, store.Save(ctx, name, strings.NewReader("x")), ErrInvalidName, "name %q", name)
	}
}
