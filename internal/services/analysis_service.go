package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/markdave123-py/Convosum/internal/core"
)

// InsightKind selects the instruction template an analysis request uses.
type InsightKind string

const (
	InsightSentiment  InsightKind = "sentiment"
	InsightKeywords   InsightKind = "keywords"
	InsightActions    InsightKind = "actions"
	InsightHighlights InsightKind = "highlights"
)

// AnalysisService turns a conversation's message bodies into a prompt for
// the external text-generation collaborator. Provider calls are the
// slowest thing the API does, so they pass through a weighted semaphore:
// at most maxInFlight analyses run concurrently and a slow model cannot
// soak up every handler goroutine's DB slot.
type AnalysisService struct {
	llm core.LLMProvider
	sem *semaphore.Weighted
}

func NewAnalysisService(llm core.LLMProvider, maxInFlight int) *AnalysisService {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &AnalysisService{llm: llm, sem: semaphore.NewWeighted(int64(maxInFlight))}
}

// Summarize asks the collaborator for a summary of the messages, one per
// line in the order given.
func (s *AnalysisService) Summarize(ctx context.Context, texts []string) (string, error) {
	prompt := "Summarize the following conversation:\n" + strings.Join(texts, "\n")
	return s.complete(ctx, prompt)
}

// Insights applies the template for kind to the messages. Unrecognized
// kinds get a generic "provide insights" instruction rather than an
// error; the permissive default mirrors how callers actually use this.
func (s *AnalysisService) Insights(ctx context.Context, texts []string, kind InsightKind) (string, error) {
	base := strings.Join(texts, "\n")

	var prompt string
	switch kind {
	case InsightSentiment:
		prompt = fmt.Sprintf("Analyze the overall sentiment (positive, negative, neutral) of the following conversation:\n%s", base)
	case InsightKeywords:
		prompt = fmt.Sprintf("Extract the main topics or keywords from the following conversation:\n%s", base)
	case InsightActions:
		prompt = fmt.Sprintf("List all action items or tasks mentioned in the following conversation:\n%s", base)
	case InsightHighlights:
		prompt = fmt.Sprintf("Extract the most important highlights from the following conversation:\n%s", base)
	default:
		prompt = fmt.Sprintf("Provide insights for the following conversation:\n%s", base)
	}
	return s.complete(ctx, prompt)
}

// complete forwards the prompt under the concurrency cap. Acquisition is
// context-aware, so a disconnected client stops waiting instead of
// holding a slot. Any provider failure surfaces as one condition; the
// service never retries on its own.
func (s *AnalysisService) complete(ctx context.Context, prompt string) (string, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrAnalysisUnavailable, err)
	}
	defer s.sem.Release(1)

	out, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrAnalysisUnavailable, err)
	}
	return out, nil
}
