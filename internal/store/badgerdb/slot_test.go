package badgerdb

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot(t *testing.T) {
	ctx := context.Background()

	db, err := Open(Config{InMemory: true}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := New(db, "filter_parser_history")

	_, ok, err := s.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Write(ctx, "blob-1"))
	require.NoError(t, s.Write(ctx, "blob-2"))

	blob, ok, err := s.Read(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "blob-2", blob)

	other := New(db, "other")
	_, ok, err = other.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "slots are isolated by name")

	require.NoError(t, s.Remove(ctx))
	_, ok, err = s.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remove(ctx))
}

func TestOpen_Persistent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	db, err := Open(Config{Path: dir, SyncWrites: true}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, New(db, "h").Write(ctx, "kept"))
	require.NoError(t, db.Close())

	db, err = Open(Config{Path: dir}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	blob, ok, err := New(db, "h").Read(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kept", blob)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{}, zerolog.Nop())
	assert.Error(t, err)
}
