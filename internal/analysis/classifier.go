package analysis

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"reviewkit/internal/adapters/observability"
	"reviewkit/internal/domain"
)

// ClassifierConfig tunes batching, fan-out and the malformed-response retry
// loop. Batch size should track the oracle's payload budget, not a review
// count picked for elegance.
type ClassifierConfig struct {
	BatchSize   int
	Workers     int
	MaxAttempts int
	RetryDelay  time.Duration
}

func (c *ClassifierConfig) defaults() {
	if c.BatchSize <= 0 {
		c.BatchSize = 40
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	}
}

// Classifier batches reviews through the oracle and merges per-batch
// judgments back into one ordered assignment list. Batches run with bounded
// concurrency; ordering is recovered from the stable review indices assigned
// before any goroutine is spawned, so the concurrency degree never shows up
// in the output.
type Classifier struct {
	oracle domain.Oracle
	cfg    ClassifierConfig
}

func NewClassifier(o domain.Oracle, cfg ClassifierConfig) *Classifier {
	cfg.defaults()
	return &Classifier{oracle: o, cfg: cfg}
}

// ClassifyResult carries the merged assignments plus coverage accounting.
type ClassifyResult struct {
	Assignments []domain.Assignment
	// Classified is the number of reviews submitted to the oracle
	// (post-truncation, post-empty-text-exclusion).
	Classified int
	// TotalBatches is how many batches were dispatched.
	TotalBatches int
	// DroppedBatches counts batches abandoned after exhausting retries.
	// DroppedBatches == TotalBatches means zero coverage, not partial.
	DroppedBatches int
}

// Classify indexes the input sequence, drops reviews with no text, fans the
// remainder out in batches and merges what came back. A dropped batch costs
// coverage, not the run; only cancellation aborts.
func (c *Classifier) Classify(ctx context.Context, reviews []domain.Review, topics []string) (ClassifyResult, error) {
	// Indices are positions in the truncated input sequence, fixed here once.
	indexed := make([]domain.IndexedReview, 0, len(reviews))
	for i, r := range reviews {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		indexed = append(indexed, domain.IndexedReview{Index: i, Review: r})
	}
	res := ClassifyResult{Classified: len(indexed)}
	if len(indexed) == 0 {
		return res, nil
	}

	var batches [][]domain.IndexedReview
	for start := 0; start < len(indexed); start += c.cfg.BatchSize {
		end := start + c.cfg.BatchSize
		if end > len(indexed) {
			end = len(indexed)
		}
		batches = append(batches, indexed[start:end])
	}
	res.TotalBatches = len(batches)

	type batchOut struct {
		assignments []domain.Assignment
		dropped     bool
	}
	outs := make([]batchOut, len(batches))

	sem := semaphore.NewWeighted(int64(c.cfg.Workers))
	var wg sync.WaitGroup
	for i, batch := range batches {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return ClassifyResult{}, err
		}
		wg.Add(1)
		go func(idx int, batch []domain.IndexedReview) {
			defer wg.Done()
			defer sem.Release(1)
			assignments, ok := c.classifyBatch(ctx, idx, batch, topics)
			outs[idx] = batchOut{assignments: assignments, dropped: !ok}
		}(i, batch)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return ClassifyResult{}, err
	}

	// Merge in batch order (which is input order), deduplicating on
	// (review, topic) and keeping the first seen.
	type key struct{ reviewID, topic string }
	seen := map[key]bool{}
	for _, out := range outs {
		if out.dropped {
			res.DroppedBatches++
			continue
		}
		for _, a := range out.assignments {
			k := key{a.ReviewID, strings.ToLower(a.Topic)}
			if seen[k] {
				continue
			}
			seen[k] = true
			res.Assignments = append(res.Assignments, a)
		}
	}
	sortAssignments(res.Assignments, topics)
	return res, nil
}

// classifyBatch submits one batch with bounded retries. ok=false means the
// batch's contribution is lost (partial coverage), never that the run failed.
func (c *Classifier) classifyBatch(ctx context.Context, idx int, batch []domain.IndexedReview, topics []string) ([]domain.Assignment, bool) {
	byID := make(map[string]domain.IndexedReview, len(batch))
	for _, r := range batch {
		byID[r.Review.ID] = r
	}

	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if attempt > 0 && !sleepCtx(ctx, c.cfg.RetryDelay<<(attempt-1)) {
			return nil, false
		}
		raw, err := c.oracle.ClassifyBatch(ctx, batch, topics)
		if err != nil {
			if ctx.Err() != nil {
				return nil, false
			}
			log.Warn().Err(err).Int("batch", idx).Int("attempt", attempt+1).Msg("classify batch failed")
			continue
		}
		return validateAssignments(raw, byID, topics), true
	}
	observability.DroppedBatches.Inc()
	log.Error().Int("batch", idx).Int("size", len(batch)).Msg("classify batch dropped after retries")
	return nil, false
}

// validateAssignments filters oracle output down to judgments we can trust:
// known review ids, taxonomy-checked topics (canonical spelling restored),
// recognized sentiments. Anything else is discarded, never invented.
func validateAssignments(raw []domain.RawAssignment, byID map[string]domain.IndexedReview, topics []string) []domain.Assignment {
	canonical := make(map[string]string, len(topics))
	for _, t := range topics {
		canonical[strings.ToLower(t)] = t
	}

	out := make([]domain.Assignment, 0, len(raw))
	for _, ra := range raw {
		rv, ok := byID[strings.TrimSpace(ra.ReviewID)]
		if !ok {
			continue
		}
		topic, ok := canonical[strings.ToLower(strings.TrimSpace(ra.Topic))]
		if !ok {
			continue
		}
		sentiment, ok := domain.ParseSentiment(ra.Sentiment)
		if !ok {
			continue
		}
		excerpt := strings.TrimSpace(ra.Excerpt)
		if ra.Excerpt != "" && excerpt == "" {
			continue
		}
		out = append(out, domain.Assignment{
			ReviewID:    rv.Review.ID,
			ReviewIndex: rv.Index,
			Topic:       topic,
			Sentiment:   sentiment,
			Excerpt:     excerpt,
		})
	}
	return out
}

// sortAssignments orders by review index, then topic order, independent of
// batch arrival order.
func sortAssignments(as []domain.Assignment, topics []string) {
	rank := make(map[string]int, len(topics))
	for i, t := range topics {
		rank[t] = i
	}
	sort.Slice(as, func(i, j int) bool {
		if as[i].ReviewIndex != as[j].ReviewIndex {
			return as[i].ReviewIndex < as[j].ReviewIndex
		}
		return rank[as[i].Topic] < rank[as[j].Topic]
	})
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
