package semrush

import (
	"context"
	"math"
	"time"
)

// Retry runs a request attempt with exponential backoff
type Retry struct {
	maxRetries        int
	retryDelay        time.Duration
	backoffMultiplier float64
	retryable         func(error) bool
}

// NewRetry creates a retry policy; maxRetries counts attempts after the first
func NewRetry(maxRetries int, retryDelay time.Duration) *Retry {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Retry{
		maxRetries:        maxRetries,
		retryDelay:        retryDelay,
		backoffMultiplier: 2.0,
		retryable:         IsRetryable,
	}
}

// Execute runs fn until it succeeds, fails with a final error, or attempts run out
func (r *Retry) Execute(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == r.maxRetries || !r.retryable(err) {
			break
		}

		delay := time.Duration(float64(r.retryDelay) * math.Pow(r.backoffMultiplier, float64(attempt)))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}
