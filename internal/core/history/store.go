package history

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/hay-kot/tonebook/internal/core/params"
	"github.com/hay-kot/tonebook/internal/core/validate"
)

// maxIDAttempts bounds ID regeneration when a generated ID is already taken.
const maxIDAttempts = 5

// Store is the capacity-bounded, newest-first collection of filter records.
// Every operation is one read-modify-write of the slot. Returned records are
// copies; mutating them never affects stored state.
type Store struct {
	slot   Slot
	logger zerolog.Logger
	now    func() time.Time
	newID  IDGenerator
	max    int

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for SavedTime and IDs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how record IDs are generated.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore creates a store persisting to slot.
func NewStore(slot Slot, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		logger: logger,
		now:    time.Now,
		newID:  LegacyID,
		max:    MaxRecords,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all records, newest first. An unreadable or undecodable slot
// yields an empty list; the failure is logged, never returned.
func (s *Store) List(ctx context.Context) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("read history slot")
		return []Record{}
	}
	return records
}

// GetByID returns the record with id.
func (s *Store) GetByID(ctx context.Context, id string) (Record, bool) {
	for _, r := range s.List(ctx) {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Search returns records whose name matches query, newest first. A query
// containing glob metacharacters is matched as a doublestar pattern against
// the whole name; any other query is a case-insensitive substring match.
func (s *Store) Search(ctx context.Context, query string) []Record {
	query = strings.TrimSpace(query)
	records := s.List(ctx)
	if query == "" {
		return records
	}

	match := substringMatcher(query)
	if strings.ContainsAny(query, "*?[{") && doublestar.ValidatePattern(query) {
		pattern := strings.ToLower(query)
		match = func(name string) bool {
			ok, _ := doublestar.Match(pattern, strings.ToLower(name))
			return ok
		}
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if match(r.Name) {
			out = append(out, r)
		}
	}
	return out
}

func substringMatcher(query string) func(string) bool {
	q := strings.ToLower(query)
	return func(name string) bool {
		return strings.Contains(strings.ToLower(name), q)
	}
}

// Save validates name, then stores a new record at the head of the collection.
func (s *Store) Save(ctx context.Context, name string, p params.FilterParameters, meta *AnalysisMeta) (Record, error) {
	name = validate.NormalizeName(name)
	if err := validate.FilterName(name); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidName, criterio.NewFieldErrors("name", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return Record{}, err
	}

	if len(records) >= s.max {
		return Record{}, fmt.Errorf("%w: limit of %d records reached, delete records before saving", ErrCapacityExceeded, s.max)
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	rec := Record{
		ID:         s.uniqueID(now, records),
		Name:       name,
		Parameters: p.Clamped(),
		SavedTime:  now,
	}
	if meta != nil {
		rec.AnalysisMeta = cloneMeta(meta)
	}

	records = append([]Record{rec}, records...)
	if err := s.persist(ctx, records); err != nil {
		return Record{}, err
	}

	s.logger.Debug().Str("id", rec.ID).Str("name", rec.Name).Msg("saved record")
	return rec.Clone(), nil
}

// Delete removes the record with id. It reports whether a record was removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	idx := slices.IndexFunc(records, func(r Record) bool { return r.ID == id })
	if idx == -1 {
		return false, nil
	}

	records = slices.Delete(records, idx, idx+1)
	if err := s.persist(ctx, records); err != nil {
		return false, err
	}
	return true, nil
}

// Update merges the non-nil fields of patch into the record with id. It
// reports whether the record exists.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (bool, error) {
	var name string
	if patch.Name != nil {
		name = validate.NormalizeName(*patch.Name)
		if err := validate.FilterName(name); err != nil {
			return false, fmt.Errorf("%w: %w", ErrInvalidName, criterio.NewFieldErrors("name", err))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	idx := slices.IndexFunc(records, func(r Record) bool { return r.ID == id })
	if idx == -1 {
		return false, nil
	}

	rec := &records[idx]
	if patch.Name != nil {
		rec.Name = name
	}
	if patch.Parameters != nil {
		rec.Parameters = patch.Parameters.Clamped()
	}
	if patch.AnalysisMeta != nil {
		rec.AnalysisMeta = cloneMeta(patch.AnalysisMeta)
	}

	if err := s.persist(ctx, records); err != nil {
		return false, err
	}
	return true, nil
}

// Prune removes every record beyond the newest keep and every record saved
// before cutoff. A keep of 0 or less and a zero cutoff disable the respective
// limit. It returns the number of records removed.
func (s *Store) Prune(ctx context.Context, keep int, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	kept := make([]Record, 0, len(records))
	for i, r := range records {
		if keep > 0 && i >= keep {
			continue
		}
		if !cutoff.IsZero() && r.SavedTime.Before(cutoff) {
			continue
		}
		kept = append(kept, r)
	}

	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.persist(ctx, kept); err != nil {
		return 0, err
	}

	s.logger.Debug().Int("removed", removed).Msg("pruned history")
	return removed, nil
}

// ClearAll removes the persisted collection.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slot.Remove(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	return nil
}

// Export serializes the collection, newest first, as indented JSON. Unlike
// List, a slot read failure is returned so a backup never silently comes out
// empty.
func (s *Store) Export(ctx context.Context) (string, error) {
	s.mu.Lock()
	records, err := s.load(ctx)
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}
	return string(data), nil
}

// Import validates text as a JSON array of records and merges it into the
// collection. Existing records win on ID collisions. After merging, the
// collection is re-sorted and the oldest records beyond capacity are dropped.
// A payload with any invalid record is rejected whole.
func (s *Store) Import(ctx context.Context, text string) (ImportSummary, error) {
	incoming, err := parseImport(text)
	if err != nil {
		return ImportSummary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return ImportSummary{}, err
	}

	summary := ImportSummary{Received: len(incoming)}

	seen := make(map[string]bool, len(current)+len(incoming))
	for _, r := range current {
		seen[r.ID] = true
	}

	added := make(map[string]bool, len(incoming))
	merged := slices.Clone(current)
	for _, r := range incoming {
		if seen[r.ID] {
			summary.Duplicates++
			continue
		}
		seen[r.ID] = true
		added[r.ID] = true
		merged = append(merged, r)
	}

	sortNewestFirst(merged)
	if len(merged) > s.max {
		summary.Evicted = len(merged) - s.max
		merged = merged[:s.max]
	}

	for _, r := range merged {
		if added[r.ID] {
			summary.Added++
		}
	}

	if err := s.persist(ctx, merged); err != nil {
		return ImportSummary{}, err
	}

	s.logger.Info().
		Int("received", summary.Received).
		Int("added", summary.Added).
		Int("duplicates", summary.Duplicates).
		Int("evicted", summary.Evicted).
		Msg("imported history")

	return summary, nil
}

// Stats reports the record count and the size of the persisted blob.
func (s *Store) Stats(ctx context.Context) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{MaxCount: s.max}

	blob, ok, err := s.slot.Read(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("read history slot")
		return st
	}
	if !ok {
		return st
	}

	st.TotalSizeBytes = len(blob)
	records, err := decodeBlob(blob)
	if err != nil {
		s.logger.Warn().Err(err).Msg("history blob is undecodable, treating as empty")
		return st
	}

	st.Count = len(records)
	st.UsagePercent = usagePercent(st.Count, st.MaxCount)
	return st
}

// Verify reads and decodes the slot strictly and returns the record count.
// Unlike List, an undecodable blob is reported as an error.
func (s *Store) Verify(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok, err := s.slot.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("read history: %w", err)
	}
	if !ok {
		return 0, nil
	}

	records, err := decodeBlob(blob)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func usagePercent(count, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(float64(count)/float64(limit)*100 + 0.5)
}

// load reads and decodes the slot, newest first. A missing blob is an empty
// collection. An undecodable blob is logged and treated as empty so corrupt
// data can be overwritten. Slot read failures are returned so a write never
// replaces data that could not be read.
func (s *Store) load(ctx context.Context) ([]Record, error) {
	blob, ok, err := s.slot.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if !ok {
		return []Record{}, nil
	}

	records, err := decodeBlob(blob)
	if err != nil {
		s.logger.Warn().Err(err).Msg("history blob is undecodable, treating as empty")
		return []Record{}, nil
	}

	sortNewestFirst(records)
	return records, nil
}

func (s *Store) persist(ctx context.Context, records []Record) error {
	blob, err := encodeBlob(records)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	if err := s.slot.Write(ctx, blob); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	return nil
}

func (s *Store) uniqueID(now time.Time, records []Record) string {
	id := s.newID(now)
	for i := 1; i < maxIDAttempts; i++ {
		if !slices.ContainsFunc(records, func(r Record) bool { return r.ID == id }) {
			break
		}
		id = s.newID(now)
	}
	return id
}

func cloneMeta(meta *AnalysisMeta) *AnalysisMeta {
	out := *meta
	out.Suggestions = slices.Clone(meta.Suggestions)
	return &out
}
