package domain_test

import (
	"testing"

	"reviewkit/internal/domain"
)

func TestMatchCategory(t *testing.T) {
	got, ok := domain.MatchCategory("  restaurant/dining ")
	if !ok || got != "Restaurant/Dining" {
		t.Fatalf("expected canonical Restaurant/Dining, got %q ok=%v", got, ok)
	}
	if _, ok := domain.MatchCategory("Food Truck"); ok {
		t.Fatalf("expected no match for unknown label")
	}
	if _, ok := domain.MatchCategory(""); ok {
		t.Fatalf("expected no match for empty label")
	}
}

func TestFallbackTopics(t *testing.T) {
	for _, cat := range append([]string{"nonsense"}, domain.Categories...) {
		topics := domain.FallbackTopics(cat)
		if len(topics) != 5 {
			t.Fatalf("%s: expected 5 topics, got %d", cat, len(topics))
		}
		if topics[4] != domain.ValueForMoney {
			t.Fatalf("%s: expected %q last, got %q", cat, domain.ValueForMoney, topics[4])
		}
	}
}

func TestFallbackTopicsReturnsCopy(t *testing.T) {
	a := domain.FallbackTopics("Healthcare")
	a[0] = "mutated"
	b := domain.FallbackTopics("Healthcare")
	if b[0] == "mutated" {
		t.Fatalf("template must not be mutable through the returned slice")
	}
}

func TestSnapshotProjections(t *testing.T) {
	snap := domain.Snapshot{
		BusinessID:   "42",
		BusinessType: "Restaurant/Dining",
		Topics: []domain.TopicResult{
			{Name: "Service", SentimentScore: 4.5, MentionCount: 3, PositiveCount: 3,
				Keywords: []string{"friendly"}, Reviews: []domain.TopicReview{{ReviewID: "r1"}}},
			{Name: domain.ValueForMoney, SentimentScore: 2},
		},
	}

	radar := snap.Radar()
	if len(radar) != 2 || radar[0].Topic != "Service" || radar[0].Score != 4.5 {
		t.Fatalf("unexpected radar projection: %+v", radar)
	}

	sum := snap.Summary()
	if len(sum.Topics) != 2 {
		t.Fatalf("unexpected summary topics: %+v", sum.Topics)
	}
	if sum.Topics[0].MentionCount != 3 || sum.Topics[0].SentimentScore != 4.5 {
		t.Fatalf("summary lost counts: %+v", sum.Topics[0])
	}
}

func TestParseSentiment(t *testing.T) {
	if s, ok := domain.ParseSentiment(" POSITIVE "); !ok || s != domain.SentimentPositive {
		t.Fatalf("expected positive, got %q ok=%v", s, ok)
	}
	if _, ok := domain.ParseSentiment("meh"); ok {
		t.Fatalf("expected unrecognized sentiment to be rejected")
	}
}
