// Package tonebook ties the parameter normalizer to the history store.
package tonebook

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/tonebook/internal/core/history"
	"github.com/hay-kot/tonebook/internal/core/params"
)

var (
	// ErrNotFound is returned when no record has the requested ID.
	ErrNotFound = errors.New("record not found")
	// ErrNoPruneLimit is returned when Prune is called without any limit.
	ErrNoPruneLimit = errors.New("set a record count or an age limit")
)

// Service orchestrates normalization and history operations.
type Service struct {
	history    *history.Store
	normalizer *params.Normalizer
	log        zerolog.Logger
}

// New creates a new Service.
func New(store *history.Store, normalizer *params.Normalizer, log zerolog.Logger) *Service {
	return &Service{
		history:    store,
		normalizer: normalizer,
		log:        log,
	}
}

// History returns the underlying store.
func (s *Service) History() *history.Store {
	return s.history
}

// Normalize converts an analysis into bounded filter parameters.
func (s *Service) Normalize(a params.Analysis) params.FilterParameters {
	p := s.normalizer.Normalize(a.Parameters)
	s.log.Debug().
		Int("raw_fields", len(a.Parameters)).
		Str("summary", p.Summary()).
		Msg("normalized analysis")
	return p
}

// SaveAnalysis normalizes a and stores the result under name along with the
// analysis confidence and suggestions.
func (s *Service) SaveAnalysis(ctx context.Context, name string, a params.Analysis) (history.Record, error) {
	p := s.Normalize(a)
	meta := &history.AnalysisMeta{
		ConfidenceScore: a.ConfidenceScore,
		Suggestions:     slices.Clone(a.Suggestions),
	}

	rec, err := s.history.Save(ctx, name, p, meta)
	if err != nil {
		return history.Record{}, fmt.Errorf("save %q: %w", name, err)
	}

	s.log.Info().Str("id", rec.ID).Str("name", rec.Name).Msg("saved filter")
	return rec, nil
}

// UpdateOptions describes an edit to an existing record.
type UpdateOptions struct {
	Name *string
	// Assignments are "field=value" pairs applied to the stored parameters.
	Assignments []string
}

// Update applies opts to the record with id and returns the updated record.
func (s *Service) Update(ctx context.Context, id string, opts UpdateOptions) (history.Record, error) {
	rec, ok := s.history.GetByID(ctx, id)
	if !ok {
		return history.Record{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}

	patch := history.Patch{Name: opts.Name}
	if len(opts.Assignments) > 0 {
		p, err := rec.Parameters.Assign(opts.Assignments)
		if err != nil {
			return history.Record{}, fmt.Errorf("update %s: %w", id, err)
		}
		patch.Parameters = &p
	}

	found, err := s.history.Update(ctx, id, patch)
	if err != nil {
		return history.Record{}, fmt.Errorf("update %s: %w", id, err)
	}
	if !found {
		return history.Record{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}

	updated, _ := s.history.GetByID(ctx, id)
	return updated, nil
}

// Delete removes the record with id.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.history.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if !removed {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}

	s.log.Info().Str("id", id).Msg("deleted filter")
	return nil
}

// Get returns the record with id.
func (s *Service) Get(ctx context.Context, id string) (history.Record, error) {
	rec, ok := s.history.GetByID(ctx, id)
	if !ok {
		return history.Record{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return rec, nil
}

// PruneOptions limits which records survive a prune.
type PruneOptions struct {
	Keep      int           // newest records to keep; 0 keeps all
	OlderThan time.Duration // remove records older than this; 0 disables
	Now       func() time.Time
}

// Prune removes old records and returns how many were removed.
func (s *Service) Prune(ctx context.Context, opts PruneOptions) (int, error) {
	if opts.Keep <= 0 && opts.OlderThan <= 0 {
		return 0, ErrNoPruneLimit
	}

	var cutoff time.Time
	if opts.OlderThan > 0 {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		cutoff = now().Add(-opts.OlderThan)
	}

	removed, err := s.history.Prune(ctx, opts.Keep, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}

	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("pruned filters")
	}
	return removed, nil
}
