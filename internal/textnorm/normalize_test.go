package textnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortSkills(tok string) bool {
	return tok == "r" || tok == "c"
}

func TestTokenize_SymbolPolicy(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "intra-word dots kept",
			in:   "Built APIs in Node.js.",
			want: []string{"built", "apis", "in", "node.js"},
		},
		{
			name: "plus and hash suffixes kept",
			in:   "C++, C# and F#",
			want: []string{"c++", "c#", "and", "f#"},
		},
		{
			name: "slash separates",
			in:   "CI/CD pipelines",
			want: []string{"ci", "cd", "pipelines"},
		},
		{
			name: "intra-word hyphen kept, dangling trimmed",
			in:   "front-end -- back-end-",
			want: []string{"front-end", "back-end"},
		},
		{
			name: "percent and currency dropped",
			in:   "Increased revenue by 40% ($1.2M)",
			want: []string{"increased", "revenue", "by", "40", "1.2m"},
		},
		{
			name: "diacritics folded",
			in:   "Résumé Naïve CAFÉ",
			want: []string{"resume", "naive", "cafe"},
		},
		{
			name: "empty",
			in:   "   \n\t ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestNormalize_DropsShortTokensUnlessSkill(t *testing.T) {
	doc := Normalize("I know R and C, a bit of Go", shortSkills)

	assert.Equal(t, []string{"know", "r", "and", "c", "bit", "of", "go"}, doc.Tokens)
	assert.True(t, doc.HasToken("r"))
	assert.False(t, doc.HasToken("a"))
}

func TestNormalize_NGrams(t *testing.T) {
	doc := Normalize("Machine learning and project management", nil)

	assert.True(t, doc.HasPhrase("machine learning"))
	assert.True(t, doc.HasPhrase("project management"))
	assert.True(t, doc.HasPhrase("learning and project management"))
	assert.True(t, doc.HasPhrase("machine"))
	assert.False(t, doc.HasPhrase("machine and"))
	// five tokens is longer than MaxNGram
	assert.False(t, doc.HasPhrase("machine learning and project management"))
}

func TestNormalize_Empty(t *testing.T) {
	doc := Normalize("", shortSkills)

	assert.True(t, doc.IsEmpty())
	assert.Empty(t, doc.NGrams)
	assert.Equal(t, 0, doc.RawLength)
	assert.False(t, doc.HasPhrase("go"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Senior Engineer — Built REST APIs using Python, React & Node.js (2019–2023).",
		"Skills: C++, C#, R; CI/CD; Kubernetes/K8s. Résumé: front-end, e.g. HTML5.",
		"<ul><li>Go</li><li>Docker</li></ul>",
	}

	for _, in := range inputs {
		first := Normalize(in, shortSkills)
		second := Normalize(first.Text(), shortSkills)
		assert.Equal(t, first.Tokens, second.Tokens, "input: %q", in)
		assert.Equal(t, first.NGrams, second.NGrams, "input: %q", in)
	}
}

func TestStripMarkup(t *testing.T) {
	t.Run("plain text unchanged", func(t *testing.T) {
		in := "Python < 3 years? Not a tag."
		assert.Equal(t, in, StripMarkup(in))
	})

	t.Run("html list separated", func(t *testing.T) {
		out := StripMarkup("<div><p>Requirements</p><ul><li>Go</li><li>Docker</li></ul><script>var x=1</script></div>")
		tokens := Tokenize(out)
		assert.Equal(t, []string{"requirements", "go", "docker"}, tokens)
		assert.NotContains(t, out, "var x")
	})
}

func TestTopTerms(t *testing.T) {
	doc := Normalize("Python python PYTHON docker docker the the the the 2020 kubernetes", nil)

	terms := TopTerms(doc, 2)
	require.Len(t, terms, 2)
	assert.Equal(t, []string{"python", "docker"}, terms)

	all := TopTerms(doc, -1)
	assert.Equal(t, "kubernetes", all[len(all)-1])
	assert.NotContains(t, strings.Join(all, " "), "2020")
}

func TestPhrase(t *testing.T) {
	assert.Equal(t, "ci cd", Phrase("CI/CD"))
	assert.Equal(t, "machine learning", Phrase("  Machine   Learning "))
	assert.Equal(t, "node.js", Phrase("Node.JS"))
}
