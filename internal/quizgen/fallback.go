package quizgen

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// fallbackPool holds known-good questions served when the model's
// output is unusable. Entries are static; pick stamps a fresh ID so
// repeated fallbacks never collide in a session.
type fallbackPool struct {
	entries []Question
}

func newFallbackPool() *fallbackPool {
	return &fallbackPool{entries: []Question{
		{Text: "What is the capital city of France?", Answer: "Paris", Category: "Geography", Difficulty: DifficultyEasy},
		{Text: "Which planet is known as the Red Planet?", Answer: "Mars", Category: "Science", Difficulty: DifficultyEasy},
		{Text: "Who painted the Mona Lisa?", Answer: "Leonardo da Vinci", Category: "Art", Difficulty: DifficultyEasy},
		{Text: "What is the largest ocean on Earth?", Answer: "The Pacific Ocean", Category: "Geography", Difficulty: DifficultyEasy},
		{Text: "In which year did the Second World War end?", Answer: "1945", Category: "History", Difficulty: DifficultyMedium},
		{Text: "What is the chemical symbol for gold?", Answer: "Au", Category: "Science", Difficulty: DifficultyMedium},
		{Text: "Which author wrote the novel Nineteen Eighty-Four?", Answer: "George Orwell", Category: "Literature", Difficulty: DifficultyMedium},
		{Text: "What is the smallest prime number?", Answer: "2", Category: "Mathematics", Difficulty: DifficultyEasy},
	}}
}

// pick returns a copy of a random pool entry with a fresh ID.
func (p *fallbackPool) pick() *Question {
	q := p.entries[rand.IntN(len(p.entries))]
	q.ID = uuid.NewString()
	q.CorrectOption = -1
	return &q
}
