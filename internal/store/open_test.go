package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/tonebook/internal/core/config"
)

func TestOpen(t *testing.T) {
	backends := []string{config.BackendFile, config.BackendBadger, config.BackendSQLite, config.BackendMemory}

	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := config.DefaultConfig()
			cfg.DataDir = t.TempDir()
			cfg.Storage.Backend = backend

			opened, err := Open(ctx, &cfg, zerolog.Nop())
			require.NoError(t, err)
			t.Cleanup(func() { _ = opened.Close() })

			require.NoError(t, opened.Slot.Write(ctx, "blob"))
			blob, ok, err := opened.Slot.Read(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "blob", blob)

			if backend == config.BackendFile {
				assert.Equal(t, cfg.HistoryFile(), opened.WatchPath)
			} else {
				assert.Empty(t, opened.WatchPath)
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Storage.Backend = "tape"

	_, err := Open(context.Background(), &cfg, zerolog.Nop())
	assert.Error(t, err)
}
