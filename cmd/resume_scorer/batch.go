package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/engine"
	"github.com/jonathan/resume-scorer/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a JSON array of score requests in parallel",
	Long: `Read a JSON array of score requests and print one result per request, in input order.

A failing request does not stop the batch; its entry carries the error instead.`,
	RunE: runBatch,
}

var (
	batchInput   string
	batchOutput  string
	batchWorkers int
)

// batchEntry is one line of batch output.
type batchEntry struct {
	Index  int                `json:"index"`
	Result *types.MatchResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
	Field  string             `json:"field,omitempty"`
}

func init() {
	batchCmd.Flags().StringVarP(&batchInput, "in", "i", "", "JSON file holding an array of score requests (required)")
	batchCmd.Flags().StringVarP(&batchOutput, "out", "o", "", "Output JSON file (default stdout)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Parallel scorers (default from config)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, _ []string) error {
	if err := requireFlag("in", batchInput); err != nil {
		return err
	}

	data, err := os.ReadFile(batchInput)
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}
	var reqs []types.ScoreRequest
	if err := json.Unmarshal(data, &reqs); err != nil {
		return fmt.Errorf("failed to parse batch file: %w", err)
	}
	if len(reqs) == 0 {
		return fmt.Errorf("batch file contains no requests")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	quietLogs(cfg.Verbose)

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	workers := batchWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}
	results, err := eng.ScoreBatch(context.Background(), reqs, workers)
	if err != nil {
		return fmt.Errorf("batch scoring failed: %w", err)
	}
	return writeJSON(batchOutput, batchEntries(results))
}

func batchEntries(results []engine.BatchResult) []batchEntry {
	out := make([]batchEntry, len(results))
	for i, r := range results {
		out[i] = batchEntry{Index: r.Index, Result: r.Result}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
			var inputErr *engine.InputError
			if errors.As(r.Err, &inputErr) {
				out[i].Field = inputErr.Field
			}
		}
	}
	return out
}
