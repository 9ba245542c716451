package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_Validate(t *testing.T) {
	s := notesSchema()

	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"valid", validNotes, true},
		{"several focus areas", `{"summary":"ok","focus_areas":["a","b"]}`, true},
		{"missing required", `{"summary":"ok"}`, false},
		{"wrong type", `{"summary":3,"focus_areas":["a"]}`, false},
		{"empty focus areas", `{"summary":"ok","focus_areas":[]}`, false},
		{"extra property", `{"summary":"ok","focus_areas":["a"],"mood":"great"}`, false},
		{"malformed", `{not json}`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(json.RawMessage(tt.raw))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var invalid *ErrInvalidResponse
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.raw, string(invalid.Content))
		})
	}
}

func TestSchema_ValidateNames(t *testing.T) {
	err := notesSchema().Validate(json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `schema "test-notes"`)
}

func TestSchema_BrokenDefinition(t *testing.T) {
	s := &Schema{Name: "broken", Definition: map[string]any{"type": 42}}

	err := s.Validate(json.RawMessage(`{}`))
	var invalid *ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), `compile schema "broken"`)

	// Compilation runs once; the failure sticks.
	assert.Error(t, s.Validate(json.RawMessage(`{}`)))
}
