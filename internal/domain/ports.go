package domain

import "context"

// ReviewSource hands back the raw material for an analysis run. Deleted
// reviews are filtered out before they reach the pipeline.
type ReviewSource interface {
	GetBusiness(ctx context.Context, id string) (Business, error)
	// FetchReviews returns up to max non-deleted reviews, most recent first.
	FetchReviews(ctx context.Context, id string, max int) ([]Review, error)
}

// Oracle is the external classification capability. It is nondeterministic,
// rate-limited and occasionally malformed; callers own validation and fallback.
type Oracle interface {
	DetectCategory(ctx context.Context, businessName string, sampleReviews []string) (string, error)
	SynthesizeTopics(ctx context.Context, category, businessName string) ([]string, error)
	ClassifyBatch(ctx context.Context, batch []IndexedReview, topics []string) ([]RawAssignment, error)
}

// SnapshotStore keeps exactly one snapshot per business id, overwrite on Put.
type SnapshotStore interface {
	Put(ctx context.Context, snap Snapshot) error
	// Get returns ErrSnapshotMiss when no snapshot exists yet.
	Get(ctx context.Context, businessID string) (Snapshot, error)
}
