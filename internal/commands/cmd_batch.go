package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tonebook/internal/core/params"
	"github.com/hay-kot/tonebook/internal/core/validate"
	"github.com/hay-kot/tonebook/pkg/randid"
)

const (
	// StatusSaved indicates the filter was saved.
	StatusSaved = "saved"
	// StatusFailed indicates saving the filter failed.
	StatusFailed = "failed"
	// StatusSkipped indicates the filter was not attempted due to failure threshold.
	StatusSkipped = "skipped"

	// maxFailures is the number of failures before stopping batch processing.
	maxFailures = 3
)

// BatchInput is the JSON input schema for saving several analyses at once.
type BatchInput struct {
	Filters []BatchFilter `json:"filters"`
}

// Validate checks the batch input for errors using criterio.
func (b BatchInput) Validate() error {
	if len(b.Filters) == 0 {
		return criterio.NewFieldErrors("filters", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder
	seenNames := make(map[string]bool)

	for i, f := range b.Filters {
		field := fmt.Sprintf("filters[%d].name", i)

		name := validate.NormalizeName(f.Name)
		if err := validate.FilterName(name); err != nil {
			errs = errs.Append(field, err)
			continue
		}

		if seenNames[name] {
			errs = errs.Append(field, fmt.Errorf("duplicate name %q", name))
			continue
		}
		seenNames[name] = true
	}

	return errs.ToError()
}

// BatchFilter is one analysis to save under a name.
type BatchFilter struct {
	Name     string          `json:"name"`
	Analysis params.Analysis `json:"analysis"`
}

// BatchResult is the output for a single save attempt.
type BatchResult struct {
	Name    string `json:"name"`
	ID      string `json:"id,omitempty"`
	Summary string `json:"summary,omitempty"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// BatchOutput is the JSON output schema.
type BatchOutput struct {
	BatchID string        `json:"batch_id"`
	LogFile string        `json:"log_file"`
	Results []BatchResult `json:"results"`
}

// BatchErrorOutput is the JSON output for fatal errors.
type BatchErrorOutput struct {
	Error string `json:"error"`
}

type BatchCmd struct {
	flags *Flags
	file  string
}

func NewBatchCmd(flags *Flags) *BatchCmd {
	return &BatchCmd{flags: flags}
}

func (cmd *BatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "batch",
		Usage: "Save multiple analyses from JSON input",
		UsageText: `tonebook batch [options]

Read from stdin:
  echo '{"filters":[{"name":"Warm","analysis":{"parameters":{"temperature":30}}}]}' | tonebook batch

Read from file:
  tonebook batch -f filters.json`,
		Description: `Normalizes and saves several analyses in one run.

Each filter in the input array is saved in order, so the last one ends up
newest. Processing stops after 3 failures; filters not attempted are marked
as skipped. Saving fails once history holds 50 records.

Input JSON schema:
  {
    "filters": [
      {
        "name": "Warm Portrait",
        "analysis": { "parameters": { ... }, "confidence_score": 0.8 }
      }
    ]
  }

See 'tonebook doc format' for the analysis object.

Output is JSON with a batch ID, log file path, and results for each filter.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to JSON file (reads from stdin if not provided)",
				Destination: &cmd.file,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *BatchCmd) run(ctx context.Context, c *cli.Command) error {
	w := c.Root().Writer
	batchID := randid.Generate(6)

	logger, logFile, err := cmd.setupLogger(batchID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "batch %s: failed to setup logger: %v\n", batchID, err)
		return writeBatchError(w, fmt.Errorf("setup logger: %w", err))
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close log file: %v\n", err)
		}
	}()

	logger.Info().Str("batch_id", batchID).Msg("starting batch processing")

	input, err := readBatchInput(stdinSource(cmd.file))
	if err != nil {
		logger.Error().Err(err).Msg("failed to read input")
		return writeBatchError(w, fmt.Errorf("read input: %w", err))
	}

	if err := input.Validate(); err != nil {
		logger.Error().Err(err).Msg("input validation failed")
		return writeBatchError(w, fmt.Errorf("invalid input: %w", err))
	}

	output := BatchOutput{
		BatchID: batchID,
		LogFile: logFile.Name(),
		Results: cmd.process(ctx, input, logger),
	}

	return writeBatchOutput(w, output)
}

// process saves each filter in order and stops attempting after maxFailures.
func (cmd *BatchCmd) process(ctx context.Context, input BatchInput, logger zerolog.Logger) []BatchResult {
	results := make([]BatchResult, 0, len(input.Filters))

	failures := 0
	for i, f := range input.Filters {
		if failures >= maxFailures {
			logger.Warn().Str("name", f.Name).Msg("skipping filter due to failure threshold")
			for j := i; j < len(input.Filters); j++ {
				results = append(results, BatchResult{
					Name:   input.Filters[j].Name,
					Status: StatusSkipped,
				})
			}
			break
		}

		logger.Info().Str("name", f.Name).Int("index", i).Msg("saving filter")

		rec, err := cmd.flags.Service.SaveAnalysis(ctx, f.Name, f.Analysis)
		if err != nil {
			failures++
			logger.Error().Str("name", f.Name).Err(err).Msg("save failed")
			results = append(results, BatchResult{Name: f.Name, Status: StatusFailed, Error: err.Error()})
			continue
		}

		logger.Info().Str("name", rec.Name).Str("id", rec.ID).Msg("filter saved")
		results = append(results, BatchResult{
			Name:    rec.Name,
			ID:      rec.ID,
			Summary: rec.Parameters.Summary(),
			Status:  StatusSaved,
		})
	}

	logger.Info().
		Int("total", len(input.Filters)).
		Int("saved", countByStatus(results, StatusSaved)).
		Int("failed", countByStatus(results, StatusFailed)).
		Int("skipped", countByStatus(results, StatusSkipped)).
		Msg("batch processing complete")

	return results
}

func (cmd *BatchCmd) setupLogger(batchID string) (zerolog.Logger, *os.File, error) {
	logsDir := cmd.flags.Config.LogsDir()
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("create logs dir: %w", err)
	}

	logPath := filepath.Join(logsDir, fmt.Sprintf("batch-%s.log", batchID))
	file, err := os.Create(logPath)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("create log file: %w", err)
	}

	logger := zerolog.New(file).With().Timestamp().Logger()
	return logger, file, nil
}

func readBatchInput(src inputSource) (BatchInput, error) {
	data, err := src.read()
	if err != nil {
		return BatchInput{}, err
	}

	var input BatchInput
	if err := json.Unmarshal(data, &input); err != nil {
		return BatchInput{}, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}

func writeBatchOutput(w io.Writer, output BatchOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write JSON output: %v\n", err)
		fmt.Fprintf(os.Stderr, "batch_id: %s\n", output.BatchID)
		fmt.Fprintf(os.Stderr, "log_file: %s\n", output.LogFile)
		fmt.Fprintf(os.Stderr, "results: %d saved, %d failed, %d skipped\n",
			countByStatus(output.Results, StatusSaved),
			countByStatus(output.Results, StatusFailed),
			countByStatus(output.Results, StatusSkipped))
		return err
	}
	return nil
}

func writeBatchError(w io.Writer, err error) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(BatchErrorOutput{Error: err.Error()}); encErr != nil {
		fmt.Fprintf(os.Stderr, "error: %s (failed to write JSON: %v)\n", err, encErr)
	}
	return err
}

func countByStatus(results []BatchResult, status string) int {
	count := 0
	for _, r := range results {
		if r.Status == status {
			count++
		}
	}
	return count
}
