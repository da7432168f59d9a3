package domain

import "errors"

var (
	// ErrNotFound: unknown business id.
	ErrNotFound = errors.New("business not found")
	// ErrNoReviews: a generate run found nothing to classify; we never cache
	// an empty analysis.
	ErrNoReviews = errors.New("no reviews available")
	// ErrOracleUnavailable: classification capability unreachable or timed out.
	ErrOracleUnavailable = errors.New("classification oracle unavailable")
	// ErrOracleMalformed: oracle response failed schema validation.
	ErrOracleMalformed = errors.New("malformed oracle response")
	// ErrValidation: an internal invariant broke; a logic defect, not an
	// operational condition.
	ErrValidation = errors.New("analysis validation failed")
	// ErrSnapshotMiss: read against a business with no snapshot yet.
	ErrSnapshotMiss = errors.New("no snapshot for business")
)
