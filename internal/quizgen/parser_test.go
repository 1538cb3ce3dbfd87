package quizgen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validJSON = `{"question":"What is the capital of Japan?","answer":"Tokyo","category":"Geography","difficulty":"easy"}`

func TestParseCleanObject(t *testing.T) {
	p := NewParser(nil)

	q := p.Parse(validJSON)
	require.NotNil(t, q)
	assert.Equal(t, "What is the capital of Japan?", q.Text)
	assert.Equal(t, "Tokyo", q.Answer)
	assert.Equal(t, "Geography", q.Category)
	assert.Equal(t, DifficultyEasy, q.Difficulty)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, -1, q.CorrectOption)
}

func TestParseMarkdownFenced(t *testing.T) {
	p := NewParser(nil)

	for _, raw := range []string{
		"```json\n" + validJSON + "\n```",
		"```\n" + validJSON + "\n```",
	} {
		q := p.Parse(raw)
		require.NotNil(t, q)
		assert.Equal(t, "Tokyo", q.Answer)
	}
}

func TestParseEmbeddedInProse(t *testing.T) {
	p := NewParser(nil)

	raw := "Sure! Here is your question:\n\n" + validJSON + "\n\nLet me know if you want another."
	q := p.Parse(raw)
	require.NotNil(t, q)
	assert.Equal(t, "Tokyo", q.Answer)
}

func TestParseBracesInsideStrings(t *testing.T) {
	p := NewParser(nil)

	raw := `noise {"question":"What does the set {1, 2} contain in mathematics?","answer":"The numbers 1 and 2","category":"Mathematics","difficulty":"medium"} trailing`
	q := p.Parse(raw)
	require.NotNil(t, q)
	assert.Equal(t, "The numbers 1 and 2", q.Answer)
}

func TestParseIsTotal(t *testing.T) {
	// Any garbage must still yield a usable record via the fallback pool.
	p := NewParser(nil)

	for i, raw := range []string{
		"",
		"   \n\t ",
		"no json here at all",
		`{"question": "truncated`,
		`{"answer":"orphan answer without a question"}`,
		`{"question":"short?","answer":"x"}`,
		"\x00\x01\x02 binary garbage \xff",
		`[1, 2, 3]`,
	} {
		t.Run(fmt.Sprintf("garbage_%d", i), func(t *testing.T) {
			q := p.Parse(raw)
			require.NotNil(t, q)
			assert.NotEmpty(t, q.Text)
			assert.NotEmpty(t, q.Answer)
			assert.NotEmpty(t, q.ID)
		})
	}
}

func TestParseRejectsEmptyAnswer(t *testing.T) {
	p := NewParser(nil)

	q := p.Parse(`{"question":"What is the capital of Japan?","answer":"   ","category":"Geography","difficulty":"easy"}`)
	require.NotNil(t, q)
	// The record came from the fallback pool, not the model output.
	assert.NotEqual(t, "What is the capital of Japan?", q.Text)
}

func TestParseDefaultsCategory(t *testing.T) {
	p := NewParser(nil)

	q := p.Parse(`{"question":"What is the capital of Japan?","answer":"Tokyo","difficulty":"easy"}`)
	require.NotNil(t, q)
	assert.Equal(t, DefaultCategory, q.Category)
}

func TestParseFallbackIDsAreFresh(t *testing.T) {
	p := NewParser(nil)

	a := p.Parse("")
	b := p.Parse("")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNormalizeDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"easy":        DifficultyEasy,
		"EASY":        DifficultyEasy,
		"beginner":    DifficultyEasy,
		"Simple":      DifficultyEasy,
		"medium":      DifficultyMedium,
		"moderate":    DifficultyMedium,
		"hard":        DifficultyHard,
		"Challenging": DifficultyHard,
		"expert":      DifficultyHard,
		"":            DifficultyMedium,
		"impossible":  DifficultyMedium,
		"  hard  ":    DifficultyHard,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDifficulty(in), "input %q", in)
	}
}
