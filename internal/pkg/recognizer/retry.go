package recognizer

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig configures WithRetry.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

type retrying struct {
	inner  Recognizer
	config RetryConfig
}

// WithRetry retries transient failures with exponential backoff and jitter.
// Context errors and permanent failures return immediately.
func WithRetry(r Recognizer, cfg RetryConfig) Recognizer {
	if cfg.MaxAttempts <= 1 {
		return r
	}
	return &retrying{inner: r, config: cfg}
}

func (r *retrying) Name() string { return r.inner.Name() }

func (r *retrying) Transcribe(ctx context.Context, img Image, instruction string) (Transcription, error) {
	var lastErr error
	for attempt := range r.config.MaxAttempts {
		t, err := r.inner.Transcribe(ctx, img, instruction)
		if err == nil {
			return t, nil
		}
		lastErr = err

		if !shouldRetry(err) || attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return Transcription{}, permanent(r.Name(), ctx.Err())
		case <-time.After(r.backoff(attempt, err)):
		}
	}
	return Transcription{}, lastErr
}

// Close releases the wrapped adapter.
func (r *retrying) Close() error {
	if c, ok := r.inner.(Closer); ok {
		return c.Close()
	}
	return nil
}

func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var unavailable *UnavailableError
	if errors.As(err, &unavailable) {
		return unavailable.Transient
	}
	return true
}

func (r *retrying) backoff(attempt int, err error) time.Duration {
	var unavailable *UnavailableError
	if errors.As(err, &unavailable) && unavailable.RetryAfter > 0 {
		return unavailable.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
