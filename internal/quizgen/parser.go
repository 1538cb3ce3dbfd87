package quizgen

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// rawQuestion is the model's response shape before validation.
type rawQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

const (
	// minQuestionLen rejects fragments the model sometimes emits in
	// place of a real question.
	minQuestionLen = 10

	// maxFieldLen flags (but does not reject) suspiciously long fields.
	maxFieldLen = 300
)

// questionPattern loosely matches a JSON-ish object anchored on the
// presence of a "question" field, for responses where the model wrapped
// or damaged the object beyond balanced-brace extraction.
var questionPattern = regexp.MustCompile(`(?s)\{[^{}]*"question"\s*:.*?\}`)

// extractFunc attempts to locate a candidate JSON object inside raw
// model output. Returns the candidate bytes or a reason for failure.
type extractFunc func(string) (json.RawMessage, error)

// strategy is one named step in the extraction chain.
type strategy struct {
	name    string
	extract extractFunc
}

// strategies is the ordered extraction chain; the first strategy whose
// candidate survives validation wins.
var strategies = []strategy{
	{"whole", extractWhole},
	{"braced", extractBraced},
	{"pattern", extractPattern},
}

// Parser converts raw model output into a valid Question.
// Parse is total: any input, including empty or binary garbage, yields a
// usable record, falling back to a known-good pool when nothing can be
// salvaged.
type Parser struct {
	logger   *slog.Logger
	fallback *fallbackPool
}

// NewParser creates a Parser. A nil logger disables warning output.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{
		logger:   logger,
		fallback: newFallbackPool(),
	}
}

// Parse extracts a question record from raw model output. It never
// fails: correctness-affecting defects fall through to the next
// strategy and ultimately to the fallback pool, stylistic defects are
// logged as warnings and accepted.
func (p *Parser) Parse(raw string) *Question {
	for _, s := range strategies {
		candidate, err := s.extract(raw)
		if err != nil {
			continue
		}

		q, err := p.validate(candidate)
		if err != nil {
			p.logger.Debug("extraction candidate rejected",
				"strategy", s.name, "reason", err)
			continue
		}

		return q
	}

	p.logger.Warn("no parseable question in model output, using fallback",
		"raw_length", len(raw))
	return p.fallback.pick()
}

// validate turns a candidate object into a Question, rejecting records
// that cannot guarantee a non-empty question and answer.
func (p *Parser) validate(candidate json.RawMessage) (*Question, error) {
	var raw rawQuestion
	if err := json.Unmarshal(candidate, &raw); err != nil {
		return nil, fmt.Errorf("not a question object: %w", err)
	}

	question := strings.TrimSpace(raw.Question)
	answer := strings.TrimSpace(raw.Answer)

	if len(question) < minQuestionLen {
		return nil, fmt.Errorf("question too short (%d chars)", len(question))
	}
	if answer == "" {
		return nil, fmt.Errorf("answer is empty")
	}

	// Stylistic defects are logged, never rejected.
	if len(question) > maxFieldLen {
		p.logger.Warn("question text unusually long", "length", len(question))
	}
	if len(answer) > maxFieldLen {
		p.logger.Warn("answer text unusually long", "length", len(answer))
	}
	if !strings.HasSuffix(question, "?") {
		p.logger.Warn("question does not end with a question mark")
	}

	category := strings.TrimSpace(raw.Category)
	if category == "" {
		category = DefaultCategory
	}

	return &Question{
		ID:            uuid.NewString(),
		Text:          question,
		Answer:        answer,
		Category:      category,
		Difficulty:    NormalizeDifficulty(raw.Difficulty),
		CorrectOption: -1,
	}, nil
}

// extractWhole interprets the entire trimmed text as one JSON object,
// after stripping a markdown code fence if the model added one.
func extractWhole(raw string) (json.RawMessage, error) {
	text := strings.TrimSpace(stripFence(raw))
	if text == "" {
		return nil, fmt.Errorf("empty input")
	}
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("not valid JSON")
	}
	return json.RawMessage(text), nil
}

// extractBraced finds the first balanced brace-delimited substring,
// honoring JSON string literals and escapes.
func extractBraced(raw string) (json.RawMessage, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return nil, fmt.Errorf("no opening brace")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Braces inside strings don't count.
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				block := raw[start : i+1]
				if !json.Valid([]byte(block)) {
					return nil, fmt.Errorf("braced block is not valid JSON")
				}
				return json.RawMessage(block), nil
			}
		}
	}
	return nil, fmt.Errorf("unbalanced braces")
}

// extractPattern is the loosest strategy: a regexp match anchored on the
// "question" field, for output too damaged for the balanced scan.
func extractPattern(raw string) (json.RawMessage, error) {
	match := questionPattern.FindString(raw)
	if match == "" {
		return nil, fmt.Errorf("no question-shaped object found")
	}
	if !json.Valid([]byte(match)) {
		return nil, fmt.Errorf("matched block is not valid JSON")
	}
	return json.RawMessage(match), nil
}

// stripFence removes a surrounding markdown code fence, with or without
// a language tag.
func stripFence(s string) string {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, "```") {
		return s
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		// Drop the language tag line (e.g. "json").
		if firstLine := strings.TrimSpace(text[:i]); firstLine == "" || !strings.ContainsAny(firstLine, "{}") {
			text = text[i+1:]
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return text
}
