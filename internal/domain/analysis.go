package domain

import (
	"strings"
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment normalizes an oracle-provided sentiment label.
func ParseSentiment(s string) (Sentiment, bool) {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive, true
	case SentimentNeutral:
		return SentimentNeutral, true
	case SentimentNegative:
		return SentimentNegative, true
	}
	return "", false
}

// RawAssignment is one oracle judgment as it comes off the wire, before any
// validation against the synthesized topic set.
type RawAssignment struct {
	ReviewID  string `json:"review_id"`
	Topic     string `json:"topic"`
	Sentiment string `json:"sentiment"`
	Excerpt   string `json:"excerpt"`
}

// Assignment is a validated (review, topic) judgment. At most one exists per
// (ReviewID, Topic) pair.
type Assignment struct {
	ReviewID    string
	ReviewIndex int
	Topic       string
	Sentiment   Sentiment
	Excerpt     string
}

// TopicReview is the evidentiary excerpt record carried inside a TopicResult.
type TopicReview struct {
	ReviewID    string    `json:"review_id"`
	ReviewIndex int       `json:"review_index"`
	Reviewer    string    `json:"reviewer_name"`
	Rating      float64   `json:"rating"`
	Date        string    `json:"date"`
	Excerpt     string    `json:"excerpt"`
	Sentiment   Sentiment `json:"sentiment"`
}

type TopicResult struct {
	Name           string        `json:"name"`
	ReviewCount    int           `json:"review_count"`
	MentionCount   int           `json:"mention_count"`
	PositiveCount  int           `json:"positive_count"`
	NeutralCount   int           `json:"neutral_count"`
	NegativeCount  int           `json:"negative_count"`
	SentimentScore float64       `json:"sentiment_score"` // 0..5
	Keywords       []string      `json:"keywords"`
	Reviews        []TopicReview `json:"reviews"`
}

// Snapshot is the single current analysis result for a business. Regeneration
// replaces it wholesale.
type Snapshot struct {
	BusinessID    string        `json:"business_id"`
	BusinessType  string        `json:"business_type"`
	TotalReviews  int           `json:"total_reviews"`
	TotalMentions int           `json:"total_mentions"`
	Topics        []TopicResult `json:"topics"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type RadarPoint struct {
	Topic string  `json:"topic"`
	Score float64 `json:"score"`
}

// Radar projects the per-topic scores in topic order.
func (s Snapshot) Radar() []RadarPoint {
	pts := make([]RadarPoint, 0, len(s.Topics))
	for _, t := range s.Topics {
		pts = append(pts, RadarPoint{Topic: t.Name, Score: t.SentimentScore})
	}
	return pts
}

// SummaryTopic drops keywords and excerpt records from a TopicResult.
type SummaryTopic struct {
	Name           string  `json:"name"`
	ReviewCount    int     `json:"review_count"`
	MentionCount   int     `json:"mention_count"`
	PositiveCount  int     `json:"positive_count"`
	NeutralCount   int     `json:"neutral_count"`
	NegativeCount  int     `json:"negative_count"`
	SentimentScore float64 `json:"sentiment_score"`
}

type SummaryView struct {
	BusinessID    string         `json:"business_id"`
	BusinessType  string         `json:"business_type"`
	TotalReviews  int            `json:"total_reviews"`
	TotalMentions int            `json:"total_mentions"`
	Topics        []SummaryTopic `json:"topics"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Summary is the lightweight projection served by the summary endpoint.
func (s Snapshot) Summary() SummaryView {
	out := SummaryView{
		BusinessID:    s.BusinessID,
		BusinessType:  s.BusinessType,
		TotalReviews:  s.TotalReviews,
		TotalMentions: s.TotalMentions,
		Topics:        make([]SummaryTopic, 0, len(s.Topics)),
		UpdatedAt:     s.UpdatedAt,
	}
	for _, t := range s.Topics {
		out.Topics = append(out.Topics, SummaryTopic{
			Name:           t.Name,
			ReviewCount:    t.ReviewCount,
			MentionCount:   t.MentionCount,
			PositiveCount:  t.PositiveCount,
			NeutralCount:   t.NeutralCount,
			NegativeCount:  t.NegativeCount,
			SentimentScore: t.SentimentScore,
		})
	}
	return out
}
