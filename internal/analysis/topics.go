package analysis

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"reviewkit/internal/domain"
)

const topicCount = 5

// Synthesizer produces exactly five distinct topic labels for a category.
// "Value for Money" is always present, in the last position. Shortfalls are
// padded from the category's fallback template; a failed oracle call yields
// the template verbatim.
type Synthesizer struct {
	oracle domain.Oracle
}

func NewSynthesizer(o domain.Oracle) *Synthesizer {
	return &Synthesizer{oracle: o}
}

func (s *Synthesizer) Topics(ctx context.Context, category, businessName string) []string {
	proposed, err := s.oracle.SynthesizeTopics(ctx, category, businessName)
	if err != nil {
		log.Warn().Err(err).Str("category", category).Msg("topic synthesis failed, using fallback template")
		return domain.FallbackTopics(category)
	}

	seen := map[string]bool{strings.ToLower(domain.ValueForMoney): true}
	topics := make([]string, 0, topicCount)
	add := func(t string) {
		t = strings.TrimSpace(t)
		if t == "" || len(topics) == topicCount-1 {
			return
		}
		k := strings.ToLower(t)
		if seen[k] {
			return
		}
		seen[k] = true
		topics = append(topics, t)
	}

	for _, t := range proposed {
		add(t)
	}
	// Pad from the template when the oracle came back short.
	for _, t := range domain.FallbackTopics(category) {
		add(t)
	}

	return append(topics, domain.ValueForMoney)
}
