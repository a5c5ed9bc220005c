package tonebook

import (
	"context"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/tonebook/internal/core/history"
	"github.com/hay-kot/tonebook/internal/core/params"
	"github.com/hay-kot/tonebook/internal/store/memory"
)

func newTestService() *Service {
	store := history.NewStore(memory.New(), zerolog.Nop())
	return New(store, params.NewNormalizer(nil), zerolog.Nop())
}

func TestService_SaveAnalysis(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	a := params.Analysis{
		Parameters: map[string]params.RawValue{
			"brightness":  params.Directed("增加", 62),
			"temperature": params.Directed("偏冷", 1200),
		},
		ConfidenceScore: 0.85,
		Suggestions:     []string{"lift shadows"},
	}

	rec, err := svc.SaveAnalysis(ctx, "Warm Portrait", a)
	require.NoError(t, err)

	assert.InDelta(t, 62, rec.Parameters.Brightness, 1e-9)
	assert.InDelta(t, -12, rec.Parameters.Temperature, 1e-9)
	require.NotNil(t, rec.AnalysisMeta)
	assert.InDelta(t, 0.85, rec.AnalysisMeta.ConfidenceScore, 1e-9)
	assert.Equal(t, []string{"lift shadows"}, rec.AnalysisMeta.Suggestions)

	list := svc.History().List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "Warm Portrait", list[0].Name)
}

func TestService_SaveAnalysisInvalidName(t *testing.T) {
	svc := newTestService()

	_, err := svc.SaveAnalysis(context.Background(), "", params.Analysis{})
	require.ErrorIs(t, err, history.ErrInvalidName)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	rec, err := svc.SaveAnalysis(ctx, "draft", params.Analysis{})
	require.NoError(t, err)

	name := "final"
	updated, err := svc.Update(ctx, rec.ID, UpdateOptions{Name: &name, Assignments: []string{"hue=-12"}})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Name)
	assert.InDelta(t, -12, updated.Parameters.Hue, 1e-9)

	_, err = svc.Update(ctx, rec.ID, UpdateOptions{Assignments: []string{"hue=999"}})
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	_, err = svc.Update(ctx, "missing", UpdateOptions{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_DeleteAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	rec, err := svc.SaveAnalysis(ctx, "x", params.Analysis{})
	require.NoError(t, err)

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)

	require.NoError(t, svc.Delete(ctx, rec.ID))
	require.ErrorIs(t, svc.Delete(ctx, rec.ID), ErrNotFound)

	_, err = svc.Get(ctx, rec.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_Prune(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.SaveAnalysis(ctx, name, params.Analysis{})
		require.NoError(t, err)
	}

	_, err := svc.Prune(ctx, PruneOptions{})
	require.ErrorIs(t, err, ErrNoPruneLimit)

	removed, err := svc.Prune(ctx, PruneOptions{Keep: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	later := func() time.Time { return time.Now().Add(48 * time.Hour) }
	removed, err = svc.Prune(ctx, PruneOptions{OlderThan: 24 * time.Hour, Now: later})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Empty(t, svc.History().List(ctx))
}
