package quizgen

import "strings"

// Question is a generated quiz question ready for display.
type Question struct {
	// ID is assigned locally, never by the provider. Unique per
	// generation call.
	ID string

	// Text is the question shown to the player.
	Text string

	// Answer is the canonical correct answer as a string.
	Answer string

	// Category is the topic label, e.g. "Geography". Defaults to
	// "General Knowledge" when the model omits it.
	Category string

	// Difficulty is the normalized difficulty of the question.
	Difficulty Difficulty

	// Options is populated only for multiple-choice questions: the
	// correct answer plus distractors in shuffled order.
	Options []string

	// CorrectOption is the index into Options holding the correct
	// answer. The index, not the answer text, is the authoritative
	// marker. -1 when Options is empty.
	CorrectOption int
}

// SessionQuestion is the minimal record kept for duplicate avoidance
// within one session.
type SessionQuestion struct {
	Text   string
	Answer string
}

// Difficulty is the requested knowledge depth of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// difficultySynonyms maps model-produced difficulty labels onto the
// canonical three levels.
var difficultySynonyms = map[string]Difficulty{
	"easy":        DifficultyEasy,
	"beginner":    DifficultyEasy,
	"simple":      DifficultyEasy,
	"basic":       DifficultyEasy,
	"novice":      DifficultyEasy,
	"medium":      DifficultyMedium,
	"moderate":    DifficultyMedium,
	"normal":      DifficultyMedium,
	"average":     DifficultyMedium,
	"hard":        DifficultyHard,
	"difficult":   DifficultyHard,
	"advanced":    DifficultyHard,
	"expert":      DifficultyHard,
	"challenging": DifficultyHard,
}

// NormalizeDifficulty maps an arbitrary difficulty label to a canonical
// level. Unrecognized or empty input normalizes to medium.
func NormalizeDifficulty(s string) Difficulty {
	if d, ok := difficultySynonyms[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d
	}
	return DifficultyMedium
}

// CategoryRandom asks the model to pick any widely-known topic.
const CategoryRandom = "random"

// DefaultCategory labels questions whose category the model omitted.
const DefaultCategory = "General Knowledge"

// Params holds the caller-supplied generation parameters. Immutable per
// call; session history is owned by the Orchestrator, not the caller.
type Params struct {
	// Difficulty of the requested question.
	Difficulty Difficulty

	// Language the question should be written in, e.g. "English".
	Language string

	// Category is the topic, or CategoryRandom (or empty) to let the
	// model choose.
	Category string

	// Choices is the total number of options for multiple-choice
	// rendering (correct answer included). Zero means an open-answer
	// question with no options.
	Choices int
}
