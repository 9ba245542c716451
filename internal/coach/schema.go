package coach

import "github.com/abhisek/mockview/internal/llm"

// NotesSchema defines the JSON schema for coaching notes.
var NotesSchema = &llm.Schema{
	Name:        "coaching-notes",
	Description: "Coaching notes for a candidate after a mock interview",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two or three sentences on how the interview went overall",
			},
			"focus_areas": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    5,
				"description": "Specific topics or habits the candidate should work on",
			},
			"practice_plan": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    7,
				"description": "Concrete practice steps, one per item",
			},
		},
		"required":             []any{"summary", "focus_areas", "practice_plan"},
		"additionalProperties": false,
	},
}
