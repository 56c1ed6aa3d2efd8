package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Convosum/internal/core"
)

func TestInsights_TemplatePerKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind   InsightKind
		prefix string
	}{
		{InsightSentiment, "Analyze the overall sentiment (positive, negative, neutral) of the following conversation:"},
		{InsightKeywords, "Extract the main topics or keywords from the following conversation:"},
		{InsightActions, "List all action items or tasks mentioned in the following conversation:"},
		{InsightHighlights, "Extract the most important highlights from the following conversation:"},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			provider := &recordingLLM{reply: "ok"}
			svc := NewAnalysisService(provider, 1)

			_, err := svc.Insights(context.Background(), []string{"one", "two"}, tc.kind)
			require.NoError(t, err)
			require.Equal(t, tc.prefix+"\none\ntwo", provider.prompts[0])
		})
	}
}

func TestInsights_UnknownKindFallsBack(t *testing.T) {
	t.Parallel()

	provider := &recordingLLM{reply: "ok"}
	svc := NewAnalysisService(provider, 1)

	// An unrecognized kind is not an error; it gets the generic template.
	out, err := svc.Insights(context.Background(), []string{"hi"}, InsightKind("emotions"))
	require.NoError(t, err)
	require.Equal(t, "ok", out)
	require.Equal(t, "Provide insights for the following conversation:\nhi", provider.prompts[0])
}

func TestSummarize_PromptShape(t *testing.T) {
	t.Parallel()

	provider := &recordingLLM{reply: "short"}
	svc := NewAnalysisService(provider, 1)

	out, err := svc.Summarize(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, "short", out)
	require.Equal(t, "Summarize the following conversation:\na\nb\nc", provider.prompts[0])
}

func TestComplete_CancelledContext(t *testing.T) {
	t.Parallel()

	provider := &recordingLLM{reply: "never"}
	svc := NewAnalysisService(provider, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Summarize(ctx, []string{"x"})
	require.ErrorIs(t, err, core.ErrAnalysisUnavailable)
	require.Zero(t, provider.calls(), "cancelled request must not reach the provider")
}
