package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/jonathan/resume-scorer/internal/source"
	"github.com/jonathan/resume-scorer/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a résumé, optionally against a job description",
	Long: `Score a résumé and print the MatchResult JSON.

Without --job the result is a résumé quality score. Inputs may be file paths,
s3://bucket/key references (when S3 is configured) or "-" for stdin.`,
	RunE: runScore,
}

var (
	scoreResume   string
	scoreJob      string
	scoreTitle    string
	scoreCompany  string
	scoreLocation string
	scoreSections string
	scoreOutput   string
	scoreVerbose  bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Résumé text file, s3:// reference or - for stdin (required)")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Job description text file or s3:// reference")
	scoreCmd.Flags().StringVar(&scoreTitle, "title", "", "Job title (required with --job)")
	scoreCmd.Flags().StringVar(&scoreCompany, "company", "", "Company name (informational)")
	scoreCmd.Flags().StringVar(&scoreLocation, "location", "", "Job location (informational)")
	scoreCmd.Flags().StringVar(&scoreSections, "sections", "", "JSON file with section boundaries overriding heading detection")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Output JSON file (default stdout)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a readable summary to stderr")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if err := requireFlag("resume", scoreResume); err != nil {
		return err
	}
	if scoreJob != "" {
		if err := requireFlag("title", scoreTitle); err != nil {
			return fmt.Errorf("%w when --job is set", err)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	verbose := scoreVerbose || cfg.Verbose
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

	req, err := buildScoreRequest(ctx, router, cmd.InOrStdin())
	if err != nil {
		return err
	}

	result, err := eng.ScoreResume(req)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}
	if err := schemas.ValidateDocument(schemas.MatchResult, result); err != nil {
		return fmt.Errorf("result failed schema validation: %w", err)
	}

	if verbose {
		observability.NewPrinter(os.Stderr).PrintMatchResult(result)
	}
	return writeJSON(scoreOutput, result)
}

func buildScoreRequest(ctx context.Context, router *source.Router, stdin io.Reader) (types.ScoreRequest, error) {
	resumeText, err := readInput(ctx, router, scoreResume, stdin)
	if err != nil {
		return types.ScoreRequest{}, fmt.Errorf("failed to read résumé: %w", err)
	}

	sections, err := readSections(scoreSections)
	if err != nil {
		return types.ScoreRequest{}, err
	}

	req := types.ScoreRequest{ResumeText: resumeText, Sections: sections}
	if scoreJob != "" {
		jobText, err := readInput(ctx, router, scoreJob, stdin)
		if err != nil {
			return types.ScoreRequest{}, fmt.Errorf("failed to read job description: %w", err)
		}
		req.Job = &types.JobDescription{
			Text:     jobText,
			Title:    scoreTitle,
			Company:  scoreCompany,
			Location: scoreLocation,
		}
	}
	return req, nil
}
