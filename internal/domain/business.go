package domain

import "time"

type Business struct {
	ID   string `json:"id"`
	Name string `json:"display_name"`
}

type Review struct {
	ID        string    `json:"id"`
	Reviewer  string    `json:"reviewer_name"`
	Rating    float64   `json:"rating"` // 1..5 stars
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"timestamp"`
}

// IndexedReview carries the stable position a review was assigned before
// batching. Indices survive concurrent batch dispatch unchanged.
type IndexedReview struct {
	Index  int
	Review Review
}
