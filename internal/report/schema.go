package report

import "github.com/abhisek/vitalcheck/internal/llm"

// Schema is the structured shape of a health report.
var Schema = &llm.Schema{
	Name:        "health-report",
	Description: "A health check report for one set of patient vitals",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Short overall health summary (2-4 sentences)",
			},
			"risks": map[string]any{
				"type":        "array",
				"description": "Potential health risks suggested by the readings",
				"items":       map[string]any{"type": "string"},
			},
			"actions": map[string]any{
				"type":        "array",
				"description": "Recommended next actions, most urgent first",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required":             []any{"summary", "risks", "actions"},
		"additionalProperties": false,
	},
}
