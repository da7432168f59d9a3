package oracle

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"reviewkit/internal/adapters/observability"
	"reviewkit/internal/domain"
)

const defaultModel = "claude-sonnet-4-5-20250929"

// Anthropic implements domain.Oracle on top of the Anthropic Messages API.
// Requests are rate-limited client-side and retried on transport failures;
// schema problems are surfaced as domain.ErrOracleMalformed so the pipeline
// can decide between retry and fallback.
type Anthropic struct {
	client   anthropic.Client
	model    anthropic.Model
	rl       *rate.Limiter
	timeout  time.Duration
	attempts int
}

func New(apiKey, model string, rps int, timeout time.Duration) (*Anthropic, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	if rps <= 0 {
		rps = 2
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Anthropic{
		client:   anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:    anthropic.Model(model),
		rl:       rate.NewLimiter(rate.Limit(rps), rps),
		timeout:  timeout,
		attempts: 3,
	}, nil
}

func (a *Anthropic) DetectCategory(ctx context.Context, businessName string, sampleReviews []string) (string, error) {
	text, err := a.complete(ctx, "detect_category", detectSystemPrompt, detectUserPrompt(businessName, sampleReviews), 1024)
	if err != nil {
		return "", err
	}
	var resp struct {
		BusinessType string `json:"business_type"`
		Confidence   string `json:"confidence"`
		Reasoning    string `json:"reasoning"`
	}
	if err := decodeObject(text, &resp); err != nil {
		return "", err
	}
	if resp.BusinessType == "" {
		return "", fmt.Errorf("%w: missing business_type", domain.ErrOracleMalformed)
	}
	return resp.BusinessType, nil
}

func (a *Anthropic) SynthesizeTopics(ctx context.Context, category, businessName string) ([]string, error) {
	text, err := a.complete(ctx, "synthesize_topics", topicsSystemPrompt, topicsUserPrompt(category, businessName), 1024)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Topics []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"topics"`
	}
	if err := decodeObject(text, &resp); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Topics))
	for _, t := range resp.Topics {
		if t.Name != "" {
			names = append(names, t.Name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: empty topic list", domain.ErrOracleMalformed)
	}
	return names, nil
}

func (a *Anthropic) ClassifyBatch(ctx context.Context, batch []domain.IndexedReview, topics []string) ([]domain.RawAssignment, error) {
	text, err := a.complete(ctx, "classify_batch", classifySystemPrompt, classifyUserPrompt(batch, topics), 8192)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Assignments []domain.RawAssignment `json:"assignments"`
	}
	if err := decodeObject(text, &resp); err != nil {
		return nil, err
	}
	return resp.Assignments, nil
}

// complete performs one rate-limited, per-attempt-timed, retried call and
// returns the first text block of the response.
func (a *Anthropic) complete(ctx context.Context, op, system, user string, maxTokens int64) (string, error) {
	if err := a.rl.Wait(ctx); err != nil {
		return "", err
	}

	var lastErr error
	for i := 0; i < a.attempts; i++ {
		start := time.Now()
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		message, err := a.client.Messages.New(callCtx, anthropic.MessageNewParams{
			Model:     a.model,
			MaxTokens: maxTokens,
			System: []anthropic.TextBlockParam{
				{Text: system, CacheControl: anthropic.NewCacheControlEphemeralParam()},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
			},
		})
		cancel()
		if err != nil {
			observability.ObserveOracle(op, "unavailable", time.Since(start))
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			if i < a.attempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, lastErr)
		}

		for _, block := range message.Content {
			if block.Type == "text" {
				observability.ObserveOracle(op, "ok", time.Since(start))
				return block.Text, nil
			}
		}
		observability.ObserveOracle(op, "malformed", time.Since(start))
		return "", fmt.Errorf("%w: no text content", domain.ErrOracleMalformed)
	}
	return "", fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
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

// backoff returns an exponential delay (500ms, 1s, 2s, ...) with up to +50%
// concurrency-safe jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 500 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
