package hints

import "github.com/abhisek/quizbox/internal/llm"

// Schema is the structured output of a hint request.
var Schema = &llm.Schema{
	Name:        "quiz-hint",
	Description: "A single nudge toward the answer of a quiz question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "One short sentence that helps without stating the answer",
			},
		},
		"required":             []any{"hint"},
		"additionalProperties": false,
	},
}

type output struct {
	Hint string `json:"hint"`
}
