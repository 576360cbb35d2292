// Package ratelimit throttles calls to external AI provider APIs.
// Embedding and generation providers enforce per-minute quotas; going
// over them turns ingestion failures into hard-to-diagnose 429 storms,
// so outbound calls are paced proactively and backed off reactively.
package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/doclens/doclens/internal/core/domain"
)

const (
	// DefaultRate is the proactive request rate (requests per second).
	DefaultRate = 5.0

	// DefaultBurst is the token bucket burst size.
	DefaultBurst = 5

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// Limiter implements dual-strategy rate limiting for provider APIs:
// proactive token-bucket throttling plus reactive backoff driven by
// 429 responses.
type Limiter struct {
	mu         sync.Mutex
	retryAfter time.Time     // From 429 responses
	bucket     *rate.Limiter // Proactive throttling
}

// NewLimiter creates a limiter pacing requests at the given per-second
// rate. A non-positive rate falls back to DefaultRate.
func NewLimiter(perSecond float64, burst int) *Limiter {
	if perSecond <= 0 {
		perSecond = DefaultRate
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &Limiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Wait blocks until it's safe to make a request.
func (l *Limiter) Wait(ctx context.Context) error {
	// 1. Check token bucket (proactive throttling)
	if err := l.bucket.Wait(ctx); err != nil {
		return err
	}

	// 2. Honour any server-imposed backoff (reactive)
	l.mu.Lock()
	retryAfter := l.retryAfter
	l.mu.Unlock()

	if time.Now().Before(retryAfter) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAfter)):
		}
	}

	return nil
}

// CheckResponse inspects a provider response for throttling. On a 429
// it records the backoff window and returns domain.ErrRateLimited.
func (l *Limiter) CheckResponse(resp *http.Response) error {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	backoff := time.Now().Add(time.Second)
	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			backoff = time.Now().Add(time.Duration(seconds) * time.Second)
		}
	}

	l.mu.Lock()
	if backoff.After(l.retryAfter) {
		l.retryAfter = backoff
	}
	l.mu.Unlock()

	return domain.ErrRateLimited
}

// RetryAt returns when the current backoff window ends. The zero time
// means no backoff is active.
func (l *Limiter) RetryAt() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.retryAfter
}
