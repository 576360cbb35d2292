package fs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/core/domain"
)

func newTestStore(t *testing.T) *BlobStore {
	t.Helper()
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestPutAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	content := []byte("%PDF-1.4 original upload bytes")
	require.NoError(t, store.Put(ctx, "doc1", content))

	got, err := store.Get(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestPut_ReplacesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "doc1", []byte("first")))
	require.NoError(t, store.Put(ctx, "doc1", []byte("second")))

	got, err := store.Get(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestGet_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "doc1", []byte("content")))
	require.NoError(t, store.Delete(ctx, "doc1"))

	_, err := store.Get(ctx, "doc1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, "doc1"))
}

func TestInvalidIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"", "../escape", "a/b", `a\b`} {
		assert.ErrorIs(t, store.Put(ctx, id, []byte("x")), domain.ErrInvalidInput, "id %q", id)

		_, err := store.Get(ctx, id)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "id %q", id)
	}
}
