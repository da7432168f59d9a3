package analysis_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"reviewkit/internal/analysis"
	"reviewkit/internal/domain"
)

func indexReviews(rs []domain.Review) []domain.IndexedReview {
	out := make([]domain.IndexedReview, len(rs))
	for i, r := range rs {
		out[i] = domain.IndexedReview{Index: i, Review: r}
	}
	return out
}

func TestDetect_CanonicalizesLabel(t *testing.T) {
	o := &stubOracle{detect: func(ctx context.Context, name string, samples []string) (string, error) {
		return "  hotel/accommodation ", nil
	}}
	d := analysis.NewDetector(o, "Tour/Activity")

	got := d.Detect(context.Background(), "Grand Budapest", indexReviews(makeReviews(3)))
	if got != "Hotel/Accommodation" {
		t.Fatalf("expected canonical category, got %q", got)
	}
}

func TestDetect_FallsBackOnOracleError(t *testing.T) {
	o := &stubOracle{detect: func(ctx context.Context, name string, samples []string) (string, error) {
		return "", errors.New("boom")
	}}
	d := analysis.NewDetector(o, "Restaurant/Dining")

	if got := d.Detect(context.Background(), "x", indexReviews(makeReviews(1))); got != "Restaurant/Dining" {
		t.Fatalf("expected configured default, got %q", got)
	}
}

func TestDetect_FallsBackOnUnknownLabel(t *testing.T) {
	o := &stubOracle{detect: func(ctx context.Context, name string, samples []string) (string, error) {
		return "Space Travel", nil
	}}
	d := analysis.NewDetector(o, "Restaurant/Dining")

	if got := d.Detect(context.Background(), "x", indexReviews(makeReviews(1))); got != "Restaurant/Dining" {
		t.Fatalf("expected fallback for unknown label, got %q", got)
	}
}

func TestDetect_InvalidDefaultFallsBackToTaxonomyDefault(t *testing.T) {
	o := &stubOracle{detect: func(ctx context.Context, name string, samples []string) (string, error) {
		return "", errors.New("down")
	}}
	d := analysis.NewDetector(o, "Nonsense Category")

	if got := d.Detect(context.Background(), "x", indexReviews(makeReviews(1))); got != domain.DefaultCategory {
		t.Fatalf("expected taxonomy default, got %q", got)
	}
}

func TestDetect_SamplesAtMost30TruncatedReviews(t *testing.T) {
	reviews := makeReviews(40)
	reviews[0].Text = strings.Repeat("long ", 100) // 500 chars

	var gotSamples []string
	o := &stubOracle{detect: func(ctx context.Context, name string, samples []string) (string, error) {
		gotSamples = samples
		return domain.DefaultCategory, nil
	}}
	analysis.NewDetector(o, domain.DefaultCategory).Detect(context.Background(), "x", indexReviews(reviews))

	if len(gotSamples) != 30 {
		t.Fatalf("expected 30 samples, got %d", len(gotSamples))
	}
	if len([]rune(gotSamples[0])) != 200 {
		t.Fatalf("expected sample truncated to 200 runes, got %d", len([]rune(gotSamples[0])))
	}
}
