package quizgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/SimeonTsvetanov/quizzard/internal/llm"
)

// listMarker strips leading bullet or numbering prefixes from a line of
// model output ("- foo", "* foo", "1. foo", "(2) foo").
var listMarker = regexp.MustCompile(`^\s*(?:[-*•]|\(?\d+[.)]\)?)\s*`)

// Synthesizer produces plausible wrong answers for a question. The
// model is asked first; heuristics backfill whatever it fails to
// deliver, so the requested count is always met.
type Synthesizer struct {
	provider llm.Provider
	cfg      Config
}

// NewSynthesizer creates a Synthesizer. The provider may be nil, in
// which case only heuristic distractors are produced.
func NewSynthesizer(provider llm.Provider, cfg Config) *Synthesizer {
	return &Synthesizer{provider: provider, cfg: cfg}
}

// Distractors returns exactly count wrong answers for the question,
// none of which equals the correct answer.
func (s *Synthesizer) Distractors(ctx context.Context, q *Question, count int) []string {
	if count <= 0 {
		return nil
	}

	out := make([]string, 0, count)
	if s.provider != nil {
		for _, d := range s.fromModel(ctx, q, count) {
			if len(out) == count {
				break
			}
			out = append(out, d)
		}
	}
	return backfill(out, q.Answer, count)
}

// fromModel asks the provider for distractors and cleans its output.
func (s *Synthesizer) fromModel(ctx context.Context, q *Question, count int) []string {
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: distractorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDistractorMessage(q, count)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
		TopP:        s.cfg.TopP,
		TopK:        s.cfg.TopK,
	})
	if err != nil {
		return nil
	}

	text := string(resp.Content)
	if unq, err := strconv.Unquote(text); err == nil {
		text = unq
	}

	seen := map[string]bool{normalizeAnswer(q.Answer): true}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		candidate := strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if candidate == "" {
			continue
		}
		key := normalizeAnswer(candidate)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, candidate)
	}
	return out
}

const distractorSystemPrompt = `You write plausible wrong answers for quiz questions.
Given a question and its correct answer, respond with wrong answers only, one per line.
The wrong answers must be believable, distinct from each other, and clearly different from the correct answer.
Do not number the lines, do not add commentary, do not repeat the correct answer.`

// distractorTuning steers how close the wrong answers should sit to the
// correct one.
var distractorTuning = map[Difficulty]string{
	DifficultyEasy: "The wrong answers may be clearly wrong to anyone who " +
		"knows the topic; obvious alternatives are fine.",
	DifficultyMedium: "The wrong answers should be reasonable guesses that " +
		"a casual player could fall for.",
	DifficultyHard: "The wrong answers must be near-misses: same kind, same " +
		"era or same magnitude as the correct answer, telling them apart " +
		"should require real knowledge.",
}

func buildDistractorMessage(q *Question, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	fmt.Fprintf(&b, "Correct answer: %s\n", q.Answer)
	b.WriteString(distractorTuning[normalizeLevel(q.Difficulty)])
	b.WriteString("\n")
	fmt.Fprintf(&b, "Write exactly %d plausible wrong answers in the same format as the correct answer, one per line.", count)
	return b.String()
}

// backfill pads distractors up to count using heuristics keyed on the
// shape of the correct answer.
func backfill(have []string, answer string, count int) []string {
	out := have
	seen := map[string]bool{normalizeAnswer(answer): true}
	for _, d := range out {
		seen[normalizeAnswer(d)] = true
	}

	add := func(candidate string) {
		if len(out) >= count {
			return
		}
		key := normalizeAnswer(candidate)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, candidate)
	}

	switch {
	case isNumeric(answer):
		for _, c := range nearbyNumbers(answer) {
			add(c)
		}
	case isProperNoun(answer):
		for i := 0; len(out) < count && i < count*2; i++ {
			add(fmt.Sprintf("Alternative %c", 'A'+i))
		}
	}

	// Generic placeholders close any remaining gap.
	for i := 1; len(out) < count; i++ {
		add(fmt.Sprintf("None of the above (%d)", i))
	}
	return out[:count]
}

// nearbyNumbers perturbs a numeric answer into close but wrong values.
func nearbyNumbers(answer string) []string {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		f, ferr := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		if ferr != nil {
			return nil
		}
		var out []string
		for _, delta := range []float64{-1, 1, -2, 2, -5, 5, -10, 10, -3, 3} {
			out = append(out, strconv.FormatFloat(f+delta, 'f', -1, 64))
		}
		return out
	}

	deltas := []int{-1, 1, -2, 2, -5, 5, -10, 10, -3, 3, -7, 7, -4, 4, -6, 6, -8, 8, -9, 9}
	var out []string
	for _, d := range deltas {
		out = append(out, strconv.Itoa(n+d))
	}
	return out
}

func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// isProperNoun reports whether the answer looks like a name: every word
// starts with an uppercase letter.
func isProperNoun(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AssembleChoices shuffles the correct answer in with its distractors
// and records where the correct answer landed. A nil rng uses the
// global source.
func AssembleChoices(q *Question, distractors []string, rng *rand.Rand) {
	options := make([]string, 0, len(distractors)+1)
	options = append(options, q.Answer)
	options = append(options, distractors...)

	swap := func(i, j int) { options[i], options[j] = options[j], options[i] }
	if rng != nil {
		rng.Shuffle(len(options), swap)
	} else {
		rand.Shuffle(len(options), swap)
	}

	q.Options = options
	q.CorrectOption = -1
	for i, opt := range options {
		if opt == q.Answer {
			q.CorrectOption = i
			break
		}
	}
}
