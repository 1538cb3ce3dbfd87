package quizgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUserMessageOrder(t *testing.T) {
	msg := buildUserMessage(Params{
		Difficulty: DifficultyHard,
		Language:   "German",
		Category:   "History",
	}, []SessionQuestion{{Text: "Who was the first Roman emperor?"}}, DefaultConfig())

	language := strings.Index(msg, "German")
	category := strings.Index(msg, "Category: History")
	difficulty := strings.Index(msg, "Difficulty: hard")
	factCheck := strings.Index(msg, "verify the date")
	dedup := strings.Index(msg, "Who was the first Roman emperor?")
	format := strings.Index(msg, "only the JSON object")

	for name, idx := range map[string]int{
		"language": language, "category": category, "difficulty": difficulty,
		"factcheck": factCheck, "dedup": dedup, "format": format,
	} {
		require.GreaterOrEqual(t, idx, 0, "missing %s section", name)
	}

	assert.Less(t, language, category)
	assert.Less(t, category, difficulty)
	assert.Less(t, difficulty, factCheck)
	assert.Less(t, factCheck, dedup)
	assert.Less(t, dedup, format)
}

func TestBuildUserMessageDefaults(t *testing.T) {
	msg := buildUserMessage(Params{}, nil, DefaultConfig())

	assert.Contains(t, msg, "English")
	assert.Contains(t, msg, "choose any widely-known topic")
	assert.Contains(t, msg, "Difficulty: medium")
	assert.Contains(t, msg, "None")
}

func TestBuildUserMessageRandomCategory(t *testing.T) {
	msg := buildUserMessage(Params{Category: CategoryRandom}, nil, DefaultConfig())
	assert.Contains(t, msg, "choose any widely-known topic")
	assert.NotContains(t, msg, "Category: random")
}

func TestFactCheckAddendum(t *testing.T) {
	assert.Contains(t, factCheckAddendum("Geography"), "borders")
	assert.Contains(t, factCheckAddendum("World History"), "misattributions")
	assert.Contains(t, factCheckAddendum("Science"), "scientific")
	assert.Contains(t, factCheckAddendum("Biology"), "scientific")
	assert.Contains(t, factCheckAddendum("Pop Culture"), "factually correct")
	assert.Contains(t, factCheckAddendum(""), "factually correct")
}

func TestBuildDedup(t *testing.T) {
	assert.Equal(t, "None", buildDedup(nil, 10))

	got := buildDedup([]SessionQuestion{
		{Text: "First?"}, {Text: "Second?"}, {Text: "Third?"},
	}, 2)
	assert.Equal(t, "1. Second?\n2. Third?", got)
}

func TestSessionRecent(t *testing.T) {
	s := NewSession()
	require.Nil(t, s.Recent(5))

	for _, text := range []string{"A?", "B?", "C?"} {
		s.Add(&Question{Text: text, Answer: "x"})
	}

	recent := s.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "B?", recent[0].Text)
	assert.Equal(t, "C?", recent[1].Text)

	assert.Len(t, s.Recent(10), 3)
	assert.Equal(t, 3, s.Len())
}
