// Package history defines filter history records and the capacity-bounded
// store that persists them.
package history

import (
	"errors"
	"slices"
	"time"

	"github.com/hay-kot/tonebook/internal/core/params"
)

// MaxRecords is the maximum number of records the store keeps.
const MaxRecords = 50

var (
	// ErrInvalidName is returned when a record name fails validation.
	ErrInvalidName = errors.New("invalid name")
	// ErrCapacityExceeded is returned when saving into a full store.
	ErrCapacityExceeded = errors.New("history is full")
	// ErrMalformedImport is returned when an import payload fails validation.
	// Nothing from the payload is applied.
	ErrMalformedImport = errors.New("malformed import")
	// ErrPersistenceWrite is returned when the backing slot rejects a write.
	ErrPersistenceWrite = errors.New("persist history")
)

// AnalysisMeta records where a snapshot's parameters came from.
type AnalysisMeta struct {
	ConfidenceScore float64  `json:"confidence_score"`
	Suggestions     []string `json:"suggestions"`
}

// Record is one named snapshot of filter parameters.
type Record struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Parameters   params.FilterParameters `json:"parameters"`
	SavedTime    time.Time               `json:"saved_time"`
	AnalysisMeta *AnalysisMeta           `json:"analysis_result,omitempty"`
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	if r.AnalysisMeta != nil {
		meta := *r.AnalysisMeta
		meta.Suggestions = slices.Clone(meta.Suggestions)
		r.AnalysisMeta = &meta
	}
	return r
}

// Patch holds the fields Update may change. Nil fields are left untouched.
type Patch struct {
	Name         *string
	Parameters   *params.FilterParameters
	AnalysisMeta *AnalysisMeta
}

// Stats summarizes store usage.
type Stats struct {
	Count          int `json:"count"`
	MaxCount       int `json:"max_count"`
	UsagePercent   int `json:"usage_percent"`
	TotalSizeBytes int `json:"total_size_bytes"`
}

// ImportSummary reports what an Import did with the payload.
type ImportSummary struct {
	Received   int `json:"received"`
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
	Evicted    int `json:"evicted"`
}

// sortNewestFirst orders records by SavedTime descending. The sort is stable
// so records saved in the same instant keep their relative order.
func sortNewestFirst(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return b.SavedTime.Compare(a.SavedTime)
	})
}
