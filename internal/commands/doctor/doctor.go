// Package doctor runs health checks over the tonebook setup.
package doctor

import (
	"context"
	"fmt"
)

// Status is the outcome of a single check item. Higher values are worse.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalText writes the status by name so JSON reports read "pass", "warn", "fail".
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusPass, StatusWarn, StatusFail:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
}

// CheckItem is one line of a check, such as "Capacity" or "Interrupted writes".
type CheckItem struct {
	Label   string `json:"label"`
	Status  Status `json:"status"`
	Detail  string `json:"detail,omitempty"`
	Fixable bool   `json:"fixable,omitempty"`
}

// Result is the outcome of one check.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
}

// Status returns the worst status among the result's items.
func (r Result) Status() Status {
	worst := StatusPass
	for _, item := range r.Items {
		worst = max(worst, item.Status)
	}
	return worst
}

// Check inspects one part of the setup.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// RunAll executes checks in order.
func RunAll(ctx context.Context, checks []Check) []Result {
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		results = append(results, check.Run(ctx))
	}
	return results
}

// Counts tallies check items by status.
type Counts struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

// Tally counts items by status across all results.
func Tally(results []Result) Counts {
	var c Counts
	for _, r := range results {
		for _, item := range r.Items {
			switch item.Status {
			case StatusPass:
				c.Passed++
			case StatusWarn:
				c.Warned++
			case StatusFail:
				c.Failed++
			}
		}
	}
	return c
}

// CountFixable returns the number of warn or fail items that --fix can repair.
func CountFixable(results []Result) int {
	count := 0
	for _, r := range results {
		for _, item := range r.Items {
			if item.Fixable && item.Status != StatusPass {
				count++
			}
		}
	}
	return count
}

// Report is the complete doctor outcome. The setup is healthy when nothing
// failed; warnings such as a nearly full history do not make it unhealthy.
type Report struct {
	Healthy bool     `json:"healthy"`
	Fixable int      `json:"fixable"`
	Summary Counts   `json:"summary"`
	Checks  []Result `json:"checks"`
}

// NewReport summarizes results.
func NewReport(results []Result) Report {
	counts := Tally(results)
	return Report{
		Healthy: counts.Failed == 0,
		Fixable: CountFixable(results),
		Summary: counts,
		Checks:  results,
	}
}
