package quizgen

import "github.com/abhisek/quizzy/internal/llm"

// OptionsPerQuestion is the fixed number of choices per question.
const OptionsPerQuestion = 4

// OptionLabels are the option IDs the prompt asks for.
var OptionLabels = []string{"A", "B", "C", "D"}

// QuestionSetSchema describes the object the model must return. The
// question count is checked separately because it varies per request.
var QuestionSetSchema = &llm.Schema{
	Name: "quiz-question-set",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    questionSchema,
			},
		},
	},
}

var questionSchema = map[string]any{
	"type":     "object",
	"required": []string{"question", "options", "correctOptionId"},
	"properties": map[string]any{
		"id": map[string]any{
			"type": []string{"string", "integer"},
		},
		"question": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"options": map[string]any{
			"type":     "array",
			"minItems": OptionsPerQuestion,
			"maxItems": OptionsPerQuestion,
			"items": map[string]any{
				"type":     "object",
				"required": []string{"id", "text"},
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "minLength": 1},
					"text": map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
		"correctOptionId": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
	},
}
