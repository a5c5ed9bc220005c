package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/tonebook/internal/core/history"
)

// capacityWarnPercent is the usage at which the storage check starts warning.
const capacityWarnPercent = 90

// StorageCheck verifies the history slot can be read and decoded and reports
// how full it is.
type StorageCheck struct {
	store *history.Store
	// historyFile is the file-backed slot path, empty for other backends.
	historyFile string
	fix         bool
}

// NewStorageCheck creates a new storage check. historyFile enables the
// leftover temp file check for the file backend. If fix is true, leftover
// temp files are deleted.
func NewStorageCheck(store *history.Store, historyFile string, fix bool) *StorageCheck {
	return &StorageCheck{store: store, historyFile: historyFile, fix: fix}
}

func (c *StorageCheck) Name() string {
	return "Storage"
}

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	count, err := c.store.Verify(ctx)
	if err != nil {
		detail := err.Error()
		if !errors.Is(err, os.ErrPermission) {
			detail += " (run 'tonebook clear' to reset)"
		}
		result.Items = append(result.Items, CheckItem{
			Label:  "History readable",
			Status: StatusFail,
			Detail: detail,
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "History readable",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d record(s)", count),
	})

	st := c.store.Stats(ctx)
	capacity := CheckItem{
		Label:  "Capacity",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d of %d used (%d%%)", st.Count, st.MaxCount, st.UsagePercent),
	}
	if st.UsagePercent >= capacityWarnPercent {
		capacity.Status = StatusWarn
		capacity.Detail += "; delete or export old records"
	}
	result.Items = append(result.Items, capacity)

	if c.historyFile != "" {
		result.Items = append(result.Items, c.checkTempFile())
	}

	return result
}

// checkTempFile looks for a temp file left by an interrupted write.
func (c *StorageCheck) checkTempFile() CheckItem {
	tmp := c.historyFile + ".tmp"

	if _, err := os.Stat(tmp); errors.Is(err, os.ErrNotExist) {
		return CheckItem{Label: "Interrupted writes", Status: StatusPass}
	}

	if c.fix {
		if err := os.Remove(tmp); err != nil {
			return CheckItem{
				Label:  "Interrupted writes",
				Status: StatusFail,
				Detail: fmt.Sprintf("remove %s: %v", tmp, err),
			}
		}
		return CheckItem{Label: "Interrupted writes", Status: StatusPass, Detail: "removed " + tmp}
	}

	return CheckItem{
		Label:   "Interrupted writes",
		Status:  StatusWarn,
		Detail:  "leftover " + tmp,
		Fixable: true,
	}
}
