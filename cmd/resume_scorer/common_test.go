package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/engine"
	"github.com/jonathan/resume-scorer/internal/source"
	"github.com/jonathan/resume-scorer/internal/taxonomy"
	"github.com/jonathan/resume-scorer/internal/types"
)

func TestNewEngine(t *testing.T) {
	t.Run("embedded taxonomy", func(t *testing.T) {
		eng, err := newEngine(config.Defaults())
		require.NoError(t, err)

		tax, err := eng.Registry().Current()
		require.NoError(t, err)
		assert.Equal(t, taxonomy.EmbeddedSource, tax.Source())
	})

	t.Run("unloadable taxonomy is unavailable", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.TaxonomyPath = writeTestFile(t, "skills.json", `{"version":`)

		_, err := newEngine(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, taxonomy.ErrTaxonomyUnavailable)
	})
}

func TestNewSourceRouter_WithoutS3(t *testing.T) {
	router, err := newSourceRouter(context.Background(), config.Defaults())
	require.NoError(t, err)
	assert.Nil(t, router.S3)
	assert.NotNil(t, router.File)
}

func TestReadInput(t *testing.T) {
	router := &source.Router{File: &source.FileFetcher{MaxBytes: 1024}}
	path := writeTestFile(t, "resume.txt", "Go engineer")

	tests := []struct {
		name    string
		ref     string
		stdin   string
		want    string
		wantErr error
	}{
		{name: "file", ref: path, want: "Go engineer"},
		{name: "stdin", ref: "-", stdin: "from stdin", want: "from stdin"},
		{name: "missing file", ref: filepath.Join(t.TempDir(), "none.txt"), wantErr: source.ErrNotFound},
		{name: "s3 disabled", ref: "s3://bucket/key", wantErr: source.ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readInput(context.Background(), router, tt.ref, strings.NewReader(tt.stdin))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSections(t *testing.T) {
	sections, err := readSections("")
	require.NoError(t, err)
	assert.Nil(t, sections)

	path := writeTestFile(t, "sections.json", `[{"section":"experience","start":0,"end":42}]`)
	sections, err = readSections(path)
	require.NoError(t, err)
	assert.Equal(t, []types.SectionBoundary{{Section: "experience", Start: 0, End: 42}}, sections)

	_, err = readSections(writeTestFile(t, "bad.json", `{"section":`))
	assert.ErrorContains(t, err, "failed to parse sections file")
}

func TestWriteJSON_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeJSON(path, map[string]int{"score": 7}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"score\": 7\n}\n", string(data))
}

func TestBatchEntries(t *testing.T) {
	result := &types.MatchResult{TaxonomyVersion: "v1"}
	inputErr := &engine.InputError{Kind: engine.ErrInvalidInput, Field: "resume_text", Message: "is required"}

	entries := batchEntries([]engine.BatchResult{
		{Index: 0, Result: result},
		{Index: 1, Err: inputErr},
		{Index: 2, Err: errors.New("boom")},
	})

	require.Len(t, entries, 3)
	assert.Same(t, result, entries[0].Result)
	assert.Empty(t, entries[0].Error)
	assert.Equal(t, "resume_text", entries[1].Field)
	assert.NotEmpty(t, entries[1].Error)
	assert.Equal(t, "boom", entries[2].Error)
	assert.Empty(t, entries[2].Field)
}

func TestRequireFlag(t *testing.T) {
	assert.EqualError(t, requireFlag("resume", "  "), "--resume is required")
	assert.NoError(t, requireFlag("resume", "cv.txt"))
}
