package history

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/tonebook/internal/core/params"
)

// importRecord mirrors Record with the shape checks applied to imported data.
type importRecord struct {
	ID           string                   `json:"id" validate:"required"`
	Name         string                   `json:"name" validate:"required"`
	Parameters   *params.FilterParameters `json:"parameters" validate:"required"`
	SavedTime    string                   `json:"saved_time" validate:"required"`
	AnalysisMeta *AnalysisMeta            `json:"analysis_result,omitempty"`
}

var importValidator = newImportValidator()

func newImportValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseImport decodes and validates an import payload. Every problem found is
// reported; any problem rejects the payload.
func parseImport(text string) ([]Record, error) {
	var raw []importRecord
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of records: %w", ErrMalformedImport, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON array of records, got null", ErrMalformedImport)
	}

	var errs criterio.FieldErrorsBuilder
	records := make([]Record, 0, len(raw))

	for i, r := range raw {
		prefix := fmt.Sprintf("[%d]", i)

		if err := importValidator.Struct(r); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					errs = errs.Append(prefix+"."+fe.Field(), fmt.Errorf("failed %q check", fe.Tag()))
				}
			} else {
				errs = errs.Append(prefix, err)
			}
			continue
		}

		saved, err := time.Parse(time.RFC3339Nano, r.SavedTime)
		if err != nil {
			errs = errs.Append(prefix+".saved_time", fmt.Errorf("not an RFC 3339 timestamp: %q", r.SavedTime))
			continue
		}

		rec := Record{
			ID:         r.ID,
			Name:       r.Name,
			Parameters: r.Parameters.Clamped(),
			SavedTime:  saved.UTC(),
		}
		if r.AnalysisMeta != nil {
			rec.AnalysisMeta = cloneMeta(r.AnalysisMeta)
		}
		records = append(records, rec)
	}

	if err := errs.ToError(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedImport, err)
	}

	return records, nil
}
