package blob

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestFSStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	id, err := store.Put(ctx, strings.NewReader("not actually mp4 bytes"), "video/mp4")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	rc, info, err := store.Open(ctx, id)
	require.NoError(t, err)
	defer rc.Close()

	require.Equal(t, "video/mp4", info.ContentType)
	require.Equal(t, int64(22), info.Size)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "not actually mp4 bytes", string(data))
}

func TestFSStoreOpenMissing(t *testing.T) {
	t.Parallel()

	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Open(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFSStoreDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	id, err := store.Put(ctx, strings.NewReader("thumb"), "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))

	_, _, err = store.Open(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting something that is not there is an error, never a no-op.
	require.ErrorIs(t, store.Delete(ctx, id), ErrNotFound)
	require.ErrorIs(t, store.Delete(ctx, uuid.New()), ErrNotFound)
}

func TestFSStorePutStreams(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	big := strings.Repeat("x", 1<<20)
	id, err := store.Put(ctx, strings.NewReader(big), "application/octet-stream")
	require.NoError(t, err)

	rc, info, err := store.Open(ctx, id)
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, int64(len(big)), info.Size)
}
