package analysis_test

import (
	"context"
	"fmt"
	"time"

	"reviewkit/internal/domain"
)

// stubOracle lets each test pin down exactly one behavior per operation.
type stubOracle struct {
	detect   func(ctx context.Context, name string, samples []string) (string, error)
	topics   func(ctx context.Context, category, name string) ([]string, error)
	classify func(ctx context.Context, batch []domain.IndexedReview, topics []string) ([]domain.RawAssignment, error)
}

func (s *stubOracle) DetectCategory(ctx context.Context, name string, samples []string) (string, error) {
	if s.detect == nil {
		return domain.DefaultCategory, nil
	}
	return s.detect(ctx, name, samples)
}

func (s *stubOracle) SynthesizeTopics(ctx context.Context, category, name string) ([]string, error) {
	if s.topics == nil {
		return domain.FallbackTopics(category), nil
	}
	return s.topics(ctx, category, name)
}

func (s *stubOracle) ClassifyBatch(ctx context.Context, batch []domain.IndexedReview, topics []string) ([]domain.RawAssignment, error) {
	if s.classify == nil {
		return nil, nil
	}
	return s.classify(ctx, batch, topics)
}

func makeReviews(n int) []domain.Review {
	out := make([]domain.Review, n)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = domain.Review{
			ID:        fmt.Sprintf("r%d", i),
			Reviewer:  fmt.Sprintf("Reviewer %d", i),
			Rating:    5,
			Text:      fmt.Sprintf("review text %d", i),
			CreatedAt: base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return out
}
