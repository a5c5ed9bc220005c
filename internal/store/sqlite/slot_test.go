package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot(t *testing.T) {
	ctx := context.Background()

	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := New(db, "filter_parser_history")

	_, ok, err := s.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Write(ctx, "one"))
	require.NoError(t, s.Write(ctx, "two"))

	blob, ok, err := s.Read(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", blob)

	_, ok, err = New(db, "other").Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remove(ctx))
	_, ok, err = s.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "tonebook.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, New(db, "h").Write(ctx, "persisted"))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	blob, ok, err := New(db, "h").Read(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", blob)
}
