// Package badgerdb provides a history slot stored as a single key in an
// embedded BadgerDB database.
package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

const keyPrefix = "slot/"

// Config controls how the database is opened.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps all data in memory. Used by tests.
	InMemory bool
	// SyncWrites fsyncs every write before it is acknowledged.
	SyncWrites bool
}

// Open opens (or creates) a Badger database. Badger's internal logging is
// routed through logger at debug level and above.
func Open(cfg Config, logger zerolog.Logger) (*badger.DB, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.
		WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(badgerLogger{logger: logger.With().Str("component", "badger").Logger()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return db, nil
}

// Slot reads and writes one key of a Badger database.
type Slot struct {
	db  *badger.DB
	key []byte
}

// New creates a Slot for name in db. The caller owns db and must close it.
func New(db *badger.DB, name string) *Slot {
	return &Slot{db: db, key: []byte(keyPrefix + name)}
}

func (s *Slot) Read(_ context.Context) (string, bool, error) {
	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key)
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})

	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("read slot %s: %w", s.key, err)
	}
	return string(blob), true, nil
}

func (s *Slot) Write(_ context.Context, blob string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key, []byte(blob))
	})
	if err != nil {
		return fmt.Errorf("write slot %s: %w", s.key, err)
	}
	return nil
}

func (s *Slot) Remove(_ context.Context) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key)
	})
	if err != nil {
		return fmt.Errorf("remove slot %s: %w", s.key, err)
	}
	return nil
}

// badgerLogger adapts zerolog to badger.Logger. Badger is chatty at info
// level, so info messages are demoted to debug.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.logger.Trace().Msgf(format, args...)
}
