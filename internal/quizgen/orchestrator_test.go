package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimeonTsvetanov/quizzard/internal/llm"
)

func questionResponse(text, answer string) llm.MockResponse {
	content, _ := json.Marshal(map[string]string{
		"question":   text,
		"answer":     answer,
		"category":   "Geography",
		"difficulty": "easy",
	})
	return llm.MockResponse{Content: content}
}

// fastLimiter returns a limiter whose clock jumps far enough forward on
// every read that no wait is ever required.
func fastLimiter(cfg Config) *RateLimiter {
	l := NewRateLimiter(cfg)
	t := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time {
		t = t.Add(cfg.Window)
		return t
	}
	return l
}

func TestOrchestratorGenerate(t *testing.T) {
	mock := llm.NewMockProvider(questionResponse("What is the capital of Japan?", "Tokyo"))
	o := New(mock, DefaultConfig(), WithRateLimiter(fastLimiter(DefaultConfig())))

	q, err := o.Generate(context.Background(), Params{Difficulty: DifficultyEasy})
	require.NoError(t, err)
	assert.Equal(t, "What is the capital of Japan?", q.Text)
	assert.Equal(t, "Tokyo", q.Answer)
	assert.Empty(t, q.Options)
	assert.Equal(t, 1, o.Session().Len())

	req := mock.LastCall()
	assert.Equal(t, systemPrompt, req.System)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "Difficulty: easy")
	assert.NotNil(t, req.Schema)
}

func TestOrchestratorNilProvider(t *testing.T) {
	o := New(nil, DefaultConfig())
	require.False(t, o.Usable())

	_, err := o.Generate(context.Background(), Params{})
	var notConfigured *llm.ErrNotConfigured
	require.ErrorAs(t, err, &notConfigured)
}

func TestOrchestratorMultipleChoice(t *testing.T) {
	mock := llm.NewMockProvider(
		questionResponse("What is the capital of France?", "Paris"),
		llm.MockResponse{Content: json.RawMessage("London\nBerlin\nMadrid")},
	)
	o := New(mock, DefaultConfig(), WithRateLimiter(fastLimiter(DefaultConfig())))

	q, err := o.Generate(context.Background(), Params{Choices: 4})
	require.NoError(t, err)
	require.Len(t, q.Options, 4)
	assert.Equal(t, "Paris", q.Options[q.CorrectOption])
	assert.Equal(t, 2, mock.CallCount())
}

func TestOrchestratorDedupGrows(t *testing.T) {
	mock := llm.NewMockProvider(
		questionResponse("What is the capital of Japan?", "Tokyo"),
		questionResponse("What is the capital of Italy?", "Rome"),
	)
	o := New(mock, DefaultConfig(), WithRateLimiter(fastLimiter(DefaultConfig())))

	_, err := o.Generate(context.Background(), Params{})
	require.NoError(t, err)
	_, err = o.Generate(context.Background(), Params{})
	require.NoError(t, err)

	req := mock.LastCall()
	assert.Contains(t, req.Messages[0].Content, "What is the capital of Japan?")
	assert.Equal(t, 2, o.Session().Len())
}

func TestOrchestratorProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")},
	})
	cfg := DefaultConfig()
	limiter, _ := newTestLimiter(cfg)
	o := New(mock, cfg, WithRateLimiter(limiter))

	_, err := o.Generate(context.Background(), Params{})
	var unavailable *llm.ErrProviderUnavailable
	require.ErrorAs(t, err, &unavailable)

	// The failed call still consumed a slot.
	assert.Less(t, limiter.Check().RequestsRemaining, cfg.RequestsPerWindow)
	assert.Equal(t, 0, o.Session().Len())
}

func TestOrchestratorParserAbsorbsGarbage(t *testing.T) {
	// A successful call with unparseable content degrades to the
	// fallback pool instead of surfacing an error.
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("the model rambled instead of answering"),
	})
	o := New(mock, DefaultConfig(), WithRateLimiter(fastLimiter(DefaultConfig())))

	q, err := o.Generate(context.Background(), Params{})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.NotEmpty(t, q.Text)
	assert.NotEmpty(t, q.Answer)
}

func TestOrchestratorDifficultyOverride(t *testing.T) {
	// The model labeled the question medium but the caller asked for
	// hard; the caller wins.
	content, _ := json.Marshal(map[string]string{
		"question":   "Which treaty ended the Thirty Years' War?",
		"answer":     "The Peace of Westphalia",
		"category":   "History",
		"difficulty": "medium",
	})
	mock := llm.NewMockProvider(llm.MockResponse{Content: content})
	o := New(mock, DefaultConfig(), WithRateLimiter(fastLimiter(DefaultConfig())))

	q, err := o.Generate(context.Background(), Params{Difficulty: DifficultyHard})
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, q.Difficulty)
}

func TestOrchestratorContextCancelDuringWait(t *testing.T) {
	cfg := DefaultConfig()
	// A freshly recorded request forces a min-interval wait.
	limiter := NewRateLimiter(cfg)
	limiter.Record()

	mock := llm.NewMockProvider(questionResponse("What is the capital of Japan?", "Tokyo"))
	o := New(mock, cfg, WithRateLimiter(limiter))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Generate(ctx, Params{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, mock.CallCount())
}

func TestOrchestratorStatusUpdates(t *testing.T) {
	mock := llm.NewMockProvider(questionResponse("What is the capital of Japan?", "Tokyo"))
	status := make(chan StatusUpdate, 16)
	o := New(mock, DefaultConfig(),
		WithRateLimiter(fastLimiter(DefaultConfig())),
		WithStatus(status))

	_, err := o.Generate(context.Background(), Params{})
	require.NoError(t, err)
	close(status)

	var states []StatusState
	for u := range status {
		states = append(states, u.State)
	}
	assert.Equal(t, []StatusState{StateGenerating, StateDone}, states)
}

func TestOrchestratorQuota(t *testing.T) {
	cfg := DefaultConfig()
	limiter := NewRateLimiter(cfg)
	clock := newFakeClock()
	limiter.now = clock.now

	o := New(llm.NewMockProvider(), cfg, WithRateLimiter(limiter))

	st := o.Quota()
	assert.Equal(t, 15, st.RequestsRemaining)
	assert.False(t, st.NearLimit)

	for range 13 {
		limiter.Record()
	}
	st = o.Quota()
	assert.Equal(t, 2, st.RequestsRemaining)
	assert.True(t, st.NearLimit)
	assert.Equal(t, 60, st.SecondsUntilReset)
}

func TestOrchestratorPurposeLabels(t *testing.T) {
	var purposes []string
	mock := llm.NewMockProvider(
		questionResponse("What is the capital of France?", "Paris"),
		llm.MockResponse{Content: json.RawMessage("London\nBerlin\nMadrid")},
	)
	provider := purposeRecorder{inner: mock, purposes: &purposes}
	o := New(provider, DefaultConfig(), WithRateLimiter(fastLimiter(DefaultConfig())))

	_, err := o.Generate(context.Background(), Params{Choices: 4})
	require.NoError(t, err)
	require.Equal(t, []string{"question-gen", "distractor-gen"}, purposes)
}

type purposeRecorder struct {
	inner    llm.Provider
	purposes *[]string
}

func (p purposeRecorder) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	*p.purposes = append(*p.purposes, llm.PurposeFrom(ctx))
	return p.inner.Generate(ctx, req)
}

func (p purposeRecorder) ModelID() string { return p.inner.ModelID() }

func TestBuildUserMessageDedupCap(t *testing.T) {
	cfg := DefaultConfig()
	var prior []SessionQuestion
	for i := range 14 {
		prior = append(prior, SessionQuestion{Text: "Old question number " + string(rune('A'+i)) + "?"})
	}

	msg := buildUserMessage(Params{}, prior, cfg)
	assert.NotContains(t, msg, "Old question number A?")
	assert.Contains(t, msg, "Old question number N?")
	assert.Equal(t, 10, strings.Count(msg, "Old question number"))
}
