package quizgen

import "github.com/SimeonTsvetanov/quizzard/internal/llm"

// QuestionSchema constrains structured-output providers to the question
// record shape the parser expects.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single quiz question with its correct answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text, phrased as a question",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The single correct answer, short and unambiguous",
			},
			"category": map[string]any{
				"type":        "string",
				"description": "The topic the question belongs to",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"description": "One of easy, medium or hard",
			},
		},
		"required":             []string{"question", "answer", "category", "difficulty"},
		"additionalProperties": false,
	},
}
