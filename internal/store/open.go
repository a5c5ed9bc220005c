// Package store builds the history slot selected by configuration.
package store

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/hay-kot/tonebook/internal/core/config"
	"github.com/hay-kot/tonebook/internal/core/history"
	"github.com/hay-kot/tonebook/internal/store/badgerdb"
	"github.com/hay-kot/tonebook/internal/store/memory"
	"github.com/hay-kot/tonebook/internal/store/sqlite"
	"github.com/hay-kot/tonebook/internal/store/textfile"
)

// Opened is a slot together with the resources backing it.
type Opened struct {
	Slot history.Slot
	// WatchPath is the file that changes when the slot is written, or empty
	// when the backend cannot be watched.
	WatchPath string

	closer io.Closer
}

// Close releases the backend.
func (o Opened) Close() error {
	if o.closer == nil {
		return nil
	}
	return o.closer.Close()
}

// Open opens the slot for cfg.Storage.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Opened, error) {
	name := cfg.Storage.Slot

	switch cfg.Storage.Backend {
	case config.BackendFile:
		path := cfg.HistoryFile()
		return Opened{Slot: textfile.New(path), WatchPath: path}, nil

	case config.BackendBadger:
		db, err := badgerdb.Open(badgerdb.Config{Path: cfg.BadgerDir(), SyncWrites: cfg.Storage.SyncWrites}, logger)
		if err != nil {
			return Opened{}, err
		}
		return Opened{Slot: badgerdb.New(db, name), closer: db}, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLiteFile())
		if err != nil {
			return Opened{}, err
		}
		return Opened{Slot: sqlite.New(db, name), closer: db}, nil

	case config.BackendMemory:
		return Opened{Slot: memory.New()}, nil

	default:
		return Opened{}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
