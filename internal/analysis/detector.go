package analysis

import (
	"context"

	"github.com/rs/zerolog/log"

	"reviewkit/internal/domain"
)

const (
	sampleReviewLimit = 30
	sampleTextLimit   = 200
)

// Detector picks one business category from the fixed taxonomy using the
// oracle plus a small sample of review texts. It never fails the pipeline:
// any oracle trouble degrades to the configured default category.
type Detector struct {
	oracle     domain.Oracle
	defaultCat string
}

func NewDetector(o domain.Oracle, defaultCategory string) *Detector {
	if _, ok := domain.MatchCategory(defaultCategory); !ok {
		defaultCategory = domain.DefaultCategory
	}
	return &Detector{oracle: o, defaultCat: defaultCategory}
}

func (d *Detector) Detect(ctx context.Context, businessName string, reviews []domain.IndexedReview) string {
	samples := make([]string, 0, sampleReviewLimit)
	for _, r := range reviews {
		if len(samples) == sampleReviewLimit {
			break
		}
		samples = append(samples, truncateRunes(r.Review.Text, sampleTextLimit))
	}

	label, err := d.oracle.DetectCategory(ctx, businessName, samples)
	if err != nil {
		log.Warn().Err(err).Str("business", businessName).
			Str("fallback", d.defaultCat).Msg("category detection failed")
		return d.defaultCat
	}
	canonical, ok := domain.MatchCategory(label)
	if !ok {
		log.Warn().Str("label", label).Str("fallback", d.defaultCat).
			Msg("detected category not in taxonomy")
		return d.defaultCat
	}
	return canonical
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
