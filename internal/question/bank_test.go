package question

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBank(t *testing.T) {
	b := DefaultBank()
	require.NotEmpty(t, b.Templates)
	assert.Equal(t, []Category{
		CategoryTechnical, CategoryHR, CategoryProject, CategoryScenario, CategoryProblemSolving,
	}, b.Categories())

	for _, tmpl := range b.Templates {
		assert.NotEmpty(t, tmpl.Text)
		assert.NotEmpty(t, tmpl.Keywords, "template %q has no keywords", tmpl.Text)
	}
}

func TestBank_TechnicalFallsBackToGeneral(t *testing.T) {
	b := DefaultBank()
	python := b.Technical("Python")
	require.Len(t, python, 4)
	for _, tmpl := range python {
		assert.Equal(t, "python", tmpl.Skill)
	}

	rust := b.Technical("rust")
	require.NotEmpty(t, rust)
	for _, tmpl := range rust {
		assert.Equal(t, "general", tmpl.Skill)
	}
}

func TestLoadBank_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	data := `templates:
  - category: Behavioral
    text: "Tell me about a conflict."
    keywords: [listen, Listen, resolve]
  - category: technical
    skill: Go
    text: "What is a goroutine?"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	b, err := LoadBank(path)
	require.NoError(t, err)
	require.Len(t, b.Templates, 2)
	assert.Equal(t, CategoryHR, b.Templates[0].Category)
	assert.Equal(t, []string{"listen", "resolve"}, b.Templates[0].Keywords)
	assert.Equal(t, "go", b.Templates[1].Skill)
}

func TestLoadBank_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	data := `{"templates":[{"category":"scenario","text":"Design a rate limiter.","keywords":["token bucket"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	b, err := LoadBank(path)
	require.NoError(t, err)
	assert.Equal(t, CategoryScenario, b.Templates[0].Category)
}

func TestParseBank_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no templates", `{}`},
		{"empty templates", `{"templates":[]}`},
		{"missing text", `{"templates":[{"category":"hr"}]}`},
		{"unknown field", `{"templates":[{"category":"hr","text":"x","score":3}]}`},
		{"keywords not strings", `{"templates":[{"category":"hr","text":"x","keywords":[1]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBank([]byte(tt.data), FormatJSON)
			assert.Error(t, err)
		})
	}
}

func TestParseBank_BlankCategory(t *testing.T) {
	_, err := ParseBank([]byte(`{"templates":[{"category":"  ","text":"x"}]}`), FormatJSON)
	assert.ErrorContains(t, err, "category is required")
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("a/b.JSON"))
	assert.Equal(t, FormatYAML, FormatForPath("a/b.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("bank"))
}
