package blob

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	fsStore, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)

	return map[string]Store{
		"memory":     NewMemory(),
		"filesystem": fsStore,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			info, err := store.Put(ctx, "complaints/abc.jpg", strings.NewReader("evidence-bytes"), PutOptions{ContentType: "image/jpeg"})
			require.NoError(t, err)
			assert.Equal(t, "complaints/abc.jpg", info.Key)
			assert.Equal(t, int64(len("evidence-bytes")), info.Size)

			got, rc, err := store.Get(ctx, "complaints/abc.jpg")
			require.NoError(t, err)
			defer rc.Close()
			assert.Equal(t, info.Size, got.Size)

			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, "evidence-bytes", string(data))
		})
	}
}

func TestStorePutRefusesOverwrite(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Put(ctx, "complaints/dup.pdf", strings.NewReader("first"), PutOptions{})
			require.NoError(t, err)

			_, err = store.Put(ctx, "complaints/dup.pdf", strings.NewReader("second"), PutOptions{})
			assert.ErrorIs(t, err, ErrExists)

			// Original content survives the rejected overwrite.
			_, rc, err := store.Get(ctx, "complaints/dup.pdf")
			require.NoError(t, err)
			defer rc.Close()
			data, _ := io.ReadAll(rc)
			assert.Equal(t, "first", string(data))
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := store.Get(ctx, "complaints/nope.png")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Put(ctx, "complaints/gone.mp4", strings.NewReader("clip"), PutOptions{})
			require.NoError(t, err)

			removed, err := store.Delete(ctx, "complaints/gone.mp4")
			require.NoError(t, err)
			assert.True(t, removed)

			_, _, err = store.Get(ctx, "complaints/gone.mp4")
			assert.ErrorIs(t, err, ErrNotFound)

			// Deleting a missing key reports false without an error.
			removed, err = store.Delete(ctx, "complaints/gone.mp4")
			require.NoError(t, err)
			assert.False(t, removed)
		})
	}
}

func TestStoreRejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "/etc/passwd", "complaints/../../secret"} {
				_, err := store.Put(ctx, key, strings.NewReader("x"), PutOptions{})
				assert.Error(t, err, "key %q", key)

				_, _, err = store.Get(ctx, key)
				assert.Error(t, err, "key %q", key)

				_, err2 := func() (bool, error) { return store.Delete(ctx, key) }()
				assert.Error(t, err2, "key %q", key)
			}
		})
	}
}

func TestDriverReported(t *testing.T) {
	stores := openStores(t)
	assert.Equal(t, DriverMemory, stores["memory"].Driver())
	assert.Equal(t, DriverFilesystem, stores["filesystem"].Driver())
}
