package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a quiz master writing trivia questions for a general audience.

Rules:
- Generate a single self-contained quiz question with one unambiguous correct answer.
- The question must be answerable without access to the conversation, images, or external material.
- Keep the answer short: a name, a term, a number or a short phrase. No full sentences.
- Never repeat a question from the "already asked" list, and avoid near-duplicates of them.
- Respond with a single JSON object containing exactly these four fields: "question", "answer", "category", "difficulty". No markdown fences, no commentary, no text before or after the JSON object.`

// difficultyDirectives describes the expected knowledge depth per level.
// Each level gets a full instructional paragraph, not just a keyword.
var difficultyDirectives = map[Difficulty]string{
	DifficultyEasy: "Difficulty: easy. Ask about something most adults know without " +
		"special study: famous landmarks, household science, major historical events, " +
		"widely-known pop culture. A casual player should get it right more often than not.",
	DifficultyMedium: "Difficulty: medium. Ask about something a curious, well-read " +
		"person would know but a casual player might miss: secondary capitals, notable " +
		"inventors, events outside the textbook headlines. Roughly half of players " +
		"should get it right.",
	DifficultyHard: "Difficulty: hard. Ask about specifics that reward genuine expertise " +
		"or niche interest: precise dates, lesser-known figures, technical terminology. " +
		"Only enthusiasts of the topic should get it right, but it must still be fair " +
		"and verifiable, never obscure trivia about trivia.",
}

// factCheckAddendum returns a category-specific verification hint.
// Categories are matched by keyword; topics without a bespoke hint get a
// generic verification reminder.
func factCheckAddendum(category string) string {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "geograph"):
		return "Before settling on the answer, double-check current borders, capitals and " +
			"country names: several countries have renamed cities or changed capitals in " +
			"recent decades, and the answer must reflect the present day."
	case strings.Contains(c, "histor"):
		return "Before settling on the answer, verify the date, the people involved and the " +
			"commonly accepted account: avoid legends and popular misattributions presented " +
			"as fact."
	case strings.Contains(c, "scien"), strings.Contains(c, "physic"),
		strings.Contains(c, "chemis"), strings.Contains(c, "biolog"):
		return "Before settling on the answer, verify it against established scientific " +
			"consensus: use current terminology and avoid outdated models or superseded " +
			"classifications."
	default:
		return "Verify the answer is factually correct before responding."
	}
}

// buildUserMessage assembles the generation prompt in fixed order:
// language, category, difficulty, fact-check addendum, duplicate
// avoidance, output format. The format directive is repeated here even
// though the system prompt states it; the parser still defends against
// violations.
func buildUserMessage(params Params, prior []SessionQuestion, cfg Config) string {
	var b strings.Builder

	language := params.Language
	if language == "" {
		language = "English"
	}
	fmt.Fprintf(&b, "Write the question and answer in %s.\n", language)

	category := params.Category
	if category == "" || category == CategoryRandom {
		b.WriteString("Category: choose any widely-known topic yourself and name it in the \"category\" field.\n")
	} else {
		fmt.Fprintf(&b, "Category: %s\n", category)
	}

	b.WriteString("\n")
	b.WriteString(difficultyDirectives[normalizeLevel(params.Difficulty)])
	b.WriteString("\n\n")
	b.WriteString(factCheckAddendum(category))
	b.WriteString("\n\nAlready asked in this session (do not repeat any of these):\n")
	b.WriteString(buildDedup(prior, cfg.MaxPriorQuestions))
	b.WriteString("\n\nRespond with only the JSON object with the fields \"question\", \"answer\", \"category\" and \"difficulty\", and nothing else.")

	return b.String()
}

// normalizeLevel coerces unknown difficulties to medium so the prompt
// always carries a directive paragraph.
func normalizeLevel(d Difficulty) Difficulty {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d
	default:
		return DifficultyMedium
	}
}

// buildDedup formats prior questions for the prompt, keeping only the
// most recent max entries. Returns "None" when there is no history.
func buildDedup(prior []SessionQuestion, max int) string {
	if len(prior) == 0 {
		return "None"
	}

	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}
