package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini-2.0-flash",
		Model:        "gemini-2.0-flash",
		Purpose:      "question-gen",
		InputTokens:  120,
		OutputTokens: 48,
		LatencyMs:    900,
		Success:      true,
		RequestBody:  "[user]\nGenerate a question",
		ResponseBody: `{"question":"?"}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini-2.0-flash",
		Model:        "gemini-2.0-flash",
		Purpose:      "distractor-gen",
		InputTokens:  60,
		OutputTokens: 20,
		LatencyMs:    400,
		Success:      false,
		ErrorMessage: "rate limited",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 2)
	// Newest first.
	require.Equal(t, "distractor-gen", events[0].Purpose)
	require.Equal(t, "question-gen", events[1].Purpose)
	require.True(t, events[1].Success)

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "question-gen"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "question-gen",
		Success:      true,
		RequestBody:  "request",
		ResponseBody: "response",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Equal(t, "request", e.RequestBody)
	require.Equal(t, "response", e.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestLLMUsageAggregation(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for range 3 {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "gemini-2.0-flash", Model: "gemini-2.0-flash",
			Purpose: "question-gen", InputTokens: 100, OutputTokens: 50,
			LatencyMs: 500, Success: true,
		}))
	}
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gpt-4o-mini", Model: "gpt-4o-mini",
		Purpose: "distractor-gen", InputTokens: 40, OutputTokens: 10,
		LatencyMs: 300, Success: true,
	}))

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	for _, st := range byPurpose {
		if st.Purpose == "question-gen" {
			require.Equal(t, 3, st.Calls)
			require.Equal(t, 300, st.InputTokens)
			require.Equal(t, 150, st.OutputTokens)
		}
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
}
