package analysis

import (
	"fmt"
	"math"

	"reviewkit/internal/domain"
)

// Aggregate reduces the merged assignment list into per-topic statistics and
// snapshot totals. Every synthesized topic appears in the result, assignments
// or not; a topic with zero mentions scores 0 (present but unscored).
func Aggregate(businessID, businessType string, topics []string, assignments []domain.Assignment, reviews []domain.IndexedReview, classified int) (domain.Snapshot, error) {
	if len(topics) != topicCount {
		return domain.Snapshot{}, fmt.Errorf("%w: got %d topics, want %d", domain.ErrValidation, len(topics), topicCount)
	}

	meta := make(map[int]domain.Review, len(reviews))
	for _, r := range reviews {
		meta[r.Index] = r.Review
	}

	byTopic := make(map[string][]domain.Assignment, topicCount)
	for _, a := range assignments {
		byTopic[a.Topic] = append(byTopic[a.Topic], a)
	}

	snap := domain.Snapshot{
		BusinessID:   businessID,
		BusinessType: businessType,
		TotalReviews: classified,
		Topics:       make([]domain.TopicResult, 0, topicCount),
	}

	for _, name := range topics {
		as := byTopic[name] // already in review_index order from the merge
		tr := domain.TopicResult{
			Name:     name,
			Keywords: []string{},
			Reviews:  make([]domain.TopicReview, 0, len(as)),
		}
		excerpts := make([]string, 0, len(as))
		distinct := map[string]bool{}
		for _, a := range as {
			distinct[a.ReviewID] = true
			switch a.Sentiment {
			case domain.SentimentPositive:
				tr.PositiveCount++
			case domain.SentimentNeutral:
				tr.NeutralCount++
			case domain.SentimentNegative:
				tr.NegativeCount++
			}
			rv := meta[a.ReviewIndex]
			tr.Reviews = append(tr.Reviews, domain.TopicReview{
				ReviewID:    a.ReviewID,
				ReviewIndex: a.ReviewIndex,
				Reviewer:    rv.Reviewer,
				Rating:      rv.Rating,
				Date:        formatDate(rv),
				Excerpt:     a.Excerpt,
				Sentiment:   a.Sentiment,
			})
			excerpts = append(excerpts, a.Excerpt)
		}
		tr.MentionCount = tr.PositiveCount + tr.NeutralCount + tr.NegativeCount
		tr.ReviewCount = len(distinct)
		tr.SentimentScore = SentimentScore(tr.PositiveCount, tr.NeutralCount, tr.NegativeCount)
		tr.Keywords = ExtractKeywords(excerpts, maxKeywords)

		snap.Topics = append(snap.Topics, tr)
		snap.TotalMentions += tr.MentionCount
	}

	return snap, nil
}

// SentimentScore maps sentiment tallies onto the 0..5 scale:
// ((pos - neg + 0.5*neu) / mentions) * 5, clipped to [0, 5]. Zero mentions
// score 0: the topic is present but unscored.
func SentimentScore(positive, neutral, negative int) float64 {
	total := positive + neutral + negative
	if total == 0 {
		return 0
	}
	score := (float64(positive-negative) + 0.5*float64(neutral)) / float64(total) * 5
	return math.Max(0, math.Min(5, score))
}

func formatDate(r domain.Review) string {
	if r.CreatedAt.IsZero() {
		return "N/A"
	}
	return r.CreatedAt.Format("2006-01-02")
}
