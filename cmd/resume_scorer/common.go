package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/engine"
	"github.com/jonathan/resume-scorer/internal/source"
	"github.com/jonathan/resume-scorer/internal/taxonomy"
	"github.com/jonathan/resume-scorer/internal/types"
)

// loadConfig reads --config plus environment overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newEngine loads the configured taxonomy and builds an engine around it. A taxonomy
// that cannot be loaded is fatal.
func newEngine(cfg config.Config) (*engine.Engine, error) {
	registry := taxonomy.NewRegistry(nil)
	tax, err := registry.Reload(cfg.TaxonomyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", taxonomy.ErrTaxonomyUnavailable, err)
	}
	log.Printf("[taxonomy] loaded version %s from %s (%d skills)", tax.Version(), tax.Source(), tax.Len())

	return engine.New(registry, engine.Options{
		MaxInputBytes:  cfg.MaxInputBytes,
		MaxNamedSkills: cfg.MaxNamedSkills,
		FuzzyDistance:  cfg.FuzzyDistance,
	}), nil
}

// newSourceRouter resolves file paths always and s3:// references when an S3 region or
// endpoint is configured.
func newSourceRouter(ctx context.Context, cfg config.Config) (*source.Router, error) {
	router := &source.Router{File: &source.FileFetcher{MaxBytes: int64(cfg.MaxInputBytes)}}
	if cfg.S3Region == "" && cfg.S3Endpoint == "" {
		return router, nil
	}

	client, err := source.NewS3Client(ctx, cfg.S3Region, cfg.S3Endpoint)
	if err != nil {
		return nil, err
	}
	router.S3 = source.NewS3Fetcher(client, int64(cfg.MaxInputBytes))
	return router, nil
}

// readInput reads a file path or s3:// reference; "-" reads stdin.
func readInput(ctx context.Context, router *source.Router, ref string, stdin io.Reader) (string, error) {
	if ref == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	return router.Fetch(ctx, ref)
}

// readSections loads caller-supplied section boundaries from a JSON array file.
func readSections(path string) ([]types.SectionBoundary, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sections file: %w", err)
	}
	var sections []types.SectionBoundary
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse sections file: %w", err)
	}
	return sections, nil
}

// writeJSON writes v as indented JSON to path, or stdout when path is empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// quietLogs silences internal logging unless verbose output was requested, so that
// JSON on stdout stays clean and stderr carries only errors.
func quietLogs(verbose bool) {
	if !verbose {
		log.SetOutput(io.Discard)
	}
}

func requireFlag(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
