package taxonomy

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/jonathan/resume-scorer/internal/types"
)

func TestDefault_Loads(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, tax.Version())
	assert.Equal(t, EmbeddedSource, tax.Source())
	assert.Greater(t, tax.Len(), 50)
	assert.Len(t, tax.Roles(), 5)
}

func TestLookup(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	tests := []struct {
		term      string
		canonical string
		category  types.SkillCategory
	}{
		{term: "Python", canonical: "python", category: types.CategoryTechnical},
		{term: "golang", canonical: "go", category: types.CategoryTechnical},
		{term: "ReactJS", canonical: "react", category: types.CategoryTechnical},
		{term: "CI/CD", canonical: "ci/cd", category: types.CategoryTechnical},
		{term: "REST APIs", canonical: "rest api", category: types.CategoryTechnical},
		{term: "C#", canonical: "c#", category: types.CategoryTechnical},
		{term: "c++", canonical: "c++", category: types.CategoryTechnical},
		{term: "Problem-Solving", canonical: "problem solving", category: types.CategorySoft},
		{term: "Scrum", canonical: "agile", category: types.CategoryDomain},
		{term: "QA", canonical: "quality assurance", category: types.CategoryDomain},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			entry, ok := tax.Lookup(tt.term)
			require.True(t, ok)
			assert.Equal(t, tt.canonical, entry.CanonicalName)
			assert.Equal(t, tt.category, entry.Category)
		})
	}

	_, ok := tax.Lookup("basket weaving")
	assert.False(t, ok)
}

func TestShortSkills(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	assert.True(t, tax.IsShortSkill("r"))
	assert.True(t, tax.IsShortSkill("c"))
	assert.False(t, tax.IsShortSkill("a"))

	doc := tax.Normalize("Statistics in R and C")
	assert.True(t, doc.HasToken("r"))
	assert.True(t, doc.HasToken("c"))
}

func TestTerms_SortedAndComplete(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	terms := tax.Terms()
	require.NotEmpty(t, terms)
	for i := 1; i < len(terms); i++ {
		assert.Less(t, terms[i-1].Key, terms[i].Key)
	}
	for _, term := range terms {
		entry, ok := tax.Lookup(term.Key)
		require.True(t, ok, term.Key)
		assert.Equal(t, term.Canonical, entry.CanonicalName)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "duplicate synonym across entries",
			doc:     `{"version":"1","skills":[{"canonical_name":"go","category":"technical"},{"canonical_name":"golang","category":"technical","synonyms":["Go"]}]}`,
			wantMsg: "maps to both",
		},
		{
			name:    "synonym too long",
			doc:     `{"version":"1","skills":[{"canonical_name":"x","category":"soft","synonyms":["one two three four five"]}]}`,
			wantMsg: "more than 4 words",
		},
		{
			name:    "synonym with no tokens",
			doc:     `{"version":"1","skills":[{"canonical_name":"go","category":"technical","synonyms":["///"]}]}`,
			wantMsg: "empty synonym",
		},
		{
			name:    "unknown category",
			doc:     `{"version":"1","skills":[{"canonical_name":"go","category":"language"}]}`,
			wantMsg: "schema validation failed",
		},
		{
			name:    "malformed json",
			doc:     `{"version":`,
			wantMsg: "schema validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatJSON, "test")
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr), "expected LoadError, got %T", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse_SchemaErrorUnwraps(t *testing.T) {
	_, err := Parse([]byte(`{"version":"1","skills":[{"canonical_name":"go","category":"language"}]}`), FormatJSON, "test")
	require.Error(t, err)

	var ve *schemas.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestLoadFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.yaml")
	content := `version: "yaml-1"
skills:
  - canonical_name: Go
    category: technical
    synonyms: [golang]
  - canonical_name: teamwork
    category: soft
roles:
  - name: Gopher
    keywords: [go, concurrency]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	tax, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml-1", tax.Version())

	entry, ok := tax.Lookup("GoLang")
	require.True(t, ok)
	assert.Equal(t, "go", entry.CanonicalName)
	assert.Equal(t, "Gopher", tax.Roles()[0].Name)
}

func TestLoadFile_YAMLUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.yml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\nskills: []\nextra: true\n"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestMarshal_RoundTrip(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := tax.Marshal(format)
			require.NoError(t, err)

			again, err := Parse(data, format, "roundtrip")
			require.NoError(t, err)
			assert.Equal(t, tax.Entries(), again.Entries())
			assert.Equal(t, tax.Terms(), again.Terms())
		})
	}
}

func TestRegistry(t *testing.T) {
	empty := NewRegistry(nil)
	_, err := empty.Current()
	assert.ErrorIs(t, err, ErrTaxonomyUnavailable)

	loaded, err := empty.Reload("")
	require.NoError(t, err)
	current, err := empty.Current()
	require.NoError(t, err)
	assert.Same(t, loaded, current)

	t.Run("failed reload keeps previous", func(t *testing.T) {
		_, err := empty.Reload(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)

		current, err := empty.Current()
		require.NoError(t, err)
		assert.Same(t, loaded, current)
	})

	t.Run("swap returns previous", func(t *testing.T) {
		prev := empty.Swap(nil)
		assert.Same(t, loaded, prev)
		_, err := empty.Current()
		assert.ErrorIs(t, err, ErrTaxonomyUnavailable)
	})
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)
	reg := NewRegistry(tax)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cur, err := reg.Current()
				if err != nil || cur == nil {
					t.Error("taxonomy missing during reload")
					return
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		_, err := reg.Reload("")
		require.NoError(t, err)
	}
	wg.Wait()
}
