package storage_test

import (
	"context"
	"strings"
	"testing"

	"go-leave/internal/storage"

	"github.com/stretchr/testify/assert"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	t.Run("save then size", func(t *testing.T) {
		ref, err := store.Save(ctx, "medical-document", "../../etc/scan.PDF", strings.NewReader("0123456789"))

		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "medical-document-"))
		assert.True(t, strings.HasSuffix(ref, ".pdf"))
		assert.NotContains(t, ref, "/")

		size, err := store.Size(ctx, ref)
		assert.NoError(t, err)
		assert.Equal(t, int64(10), size)
	})

	t.Run("negative missing file", func(t *testing.T) {
		_, err := store.Size(ctx, "medical-document-missing.pdf")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("negative traversal", func(t *testing.T) {
		_, err := store.Size(ctx, "../secret.txt")

		assert.ErrorIs(t, err, storage.ErrInvalidReference)
	})

	t.Run("delete", func(t *testing.T) {
		ref, err := store.Save(ctx, "medical-document", "note.png", strings.NewReader("x"))
		assert.NoError(t, err)

		assert.NoError(t, store.Delete(ctx, ref))
		assert.NoError(t, store.Delete(ctx, ref))

		_, err = store.Size(ctx, ref)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("negative cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := store.Save(cctx, "medical-document", "note.png", strings.NewReader("x"))

		assert.ErrorIs(t, err, context.Canceled)
	})
}
