package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/jonathan/resume-scorer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a résumé without a job description",
	Long:  "Analyze a résumé and print section feedback, key strengths, a guessed job role and improvement suggestions as JSON.",
	RunE:  runAnalyze,
}

var (
	analyzeResume  string
	analyzeOutput  string
	analyzeVerbose bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Résumé text file, s3:// reference or - for stdin (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Output JSON file (default stdout)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print a readable summary to stderr")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if err := requireFlag("resume", analyzeResume); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	verbose := analyzeVerbose || cfg.Verbose
	quietLogs(verbose)

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	router, err := newSourceRouter(ctx, cfg)
	if err != nil {
		return err
	}
	text, err := readInput(ctx, router, analyzeResume, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read résumé: %w", err)
	}

	analysis, err := eng.Analyze(types.AnalyzeRequest{ResumeText: text})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if err := schemas.ValidateDocument(schemas.Analysis, analysis); err != nil {
		return fmt.Errorf("analysis failed schema validation: %w", err)
	}

	if verbose {
		observability.NewPrinter(os.Stderr).PrintAnalysis(analysis)
	}
	return writeJSON(analyzeOutput, analysis)
}
