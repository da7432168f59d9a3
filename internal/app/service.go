package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"reviewkit/internal/analysis"
	"reviewkit/internal/domain"
)

// Service orchestrates the five pipeline stages and owns the snapshot store.
// Stages run sequentially; only the classifier fans out internally.
type Service struct {
	source     domain.ReviewSource
	store      domain.SnapshotStore
	detector   *analysis.Detector
	synth      *analysis.Synthesizer
	classifier *analysis.Classifier
	maxReviews int
	now        func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(src domain.ReviewSource, store domain.SnapshotStore, oracle domain.Oracle, defaultCategory string, maxReviews int, ccfg analysis.ClassifierConfig) *Service {
	if maxReviews <= 0 {
		maxReviews = 300
	}
	return &Service{
		source:     src,
		store:      store,
		detector:   analysis.NewDetector(oracle, defaultCategory),
		synth:      analysis.NewSynthesizer(oracle),
		classifier: analysis.NewClassifier(oracle, ccfg),
		maxReviews: maxReviews,
		now:        time.Now,
		locks:      map[string]*sync.Mutex{},
	}
}

// lockFor serializes regenerations per business id. The map only ever grows,
// bounded by the number of businesses seen by this process.
func (s *Service) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Generate runs the full pipeline and replaces the business's snapshot. A
// failed run leaves any prior snapshot untouched; nothing is written after
// cancellation.
func (s *Service) Generate(ctx context.Context, businessID string) (domain.Snapshot, error) {
	l := s.lockFor(businessID)
	l.Lock()
	defer l.Unlock()

	start := s.now()

	biz, err := s.source.GetBusiness(ctx, businessID)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load business %s: %w", businessID, err)
	}
	reviews, err := s.source.FetchReviews(ctx, businessID, s.maxReviews)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("fetch reviews for %s: %w", businessID, err)
	}
	if len(reviews) == 0 {
		return domain.Snapshot{}, fmt.Errorf("business %s: %w", businessID, domain.ErrNoReviews)
	}

	indexed := make([]domain.IndexedReview, len(reviews))
	for i, r := range reviews {
		indexed[i] = domain.IndexedReview{Index: i, Review: r}
	}

	category := s.detector.Detect(ctx, biz.Name, indexed)
	topics := s.synth.Topics(ctx, category, biz.Name)

	res, err := s.classifier.Classify(ctx, reviews, topics)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("classify reviews for %s: %w", businessID, err)
	}
	if res.Classified == 0 {
		return domain.Snapshot{}, fmt.Errorf("business %s has no classifiable review text: %w", businessID, domain.ErrNoReviews)
	}
	// Dropped batches cost coverage, but losing every batch is an outage, not
	// an analysis. Fail the run rather than cache a zero-coverage snapshot.
	if res.DroppedBatches == res.TotalBatches {
		return domain.Snapshot{}, fmt.Errorf("classification produced no coverage for %s (%d batches dropped): %w",
			businessID, res.DroppedBatches, domain.ErrOracleUnavailable)
	}

	snap, err := analysis.Aggregate(businessID, category, topics, res.Assignments, indexed, res.Classified)
	if err != nil {
		return domain.Snapshot{}, err
	}

	// All-or-nothing at the write boundary: a canceled generate persists nothing.
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	now := s.now()
	snap.CreatedAt = now
	snap.UpdatedAt = now
	if prev, err := s.store.Get(ctx, businessID); err == nil {
		snap.CreatedAt = prev.CreatedAt
	} else if !errors.Is(err, domain.ErrSnapshotMiss) {
		return domain.Snapshot{}, fmt.Errorf("read prior snapshot for %s: %w", businessID, err)
	}

	if err := s.store.Put(ctx, snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("store snapshot for %s: %w", businessID, err)
	}

	log.Info().
		Str("business", businessID).
		Str("category", category).
		Int("reviews", res.Classified).
		Int("assignments", len(res.Assignments)).
		Int("dropped_batches", res.DroppedBatches).
		Dur("took", s.now().Sub(start)).
		Msg("analysis generated")

	return snap, nil
}

// Get returns the current snapshot, or domain.ErrSnapshotMiss.
func (s *Service) Get(ctx context.Context, businessID string) (domain.Snapshot, error) {
	return s.store.Get(ctx, businessID)
}

// Summary returns the lightweight projection of the current snapshot.
func (s *Service) Summary(ctx context.Context, businessID string) (domain.SummaryView, error) {
	snap, err := s.store.Get(ctx, businessID)
	if err != nil {
		return domain.SummaryView{}, err
	}
	return snap.Summary(), nil
}
