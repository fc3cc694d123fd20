package httpx

import (
	"context"
	"time"
)

// RetryPolicy controls how an oracle call is retried. Zero values fall back
// to a single attempt with a two second initial delay.
type RetryPolicy struct {
	Attempts     int
	InitialDelay time.Duration
}

// DefaultRetry is the policy used for outbound oracle calls unless a caller
// threads its own through.
var DefaultRetry = RetryPolicy{Attempts: 3, InitialDelay: 2 * time.Second}

type AttemptFunc func() (status int, body []byte, err error)

// DoWithRetry retries the attempt function on transient failures (429/5xx)
// or non-nil errors, doubling the delay between attempts up to 30 seconds.
func DoWithRetry(ctx context.Context, policy RetryPolicy, fn AttemptFunc) (int, []byte, error) {
	attempts := policy.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	delay := policy.InitialDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	for i := 0; i < attempts; i++ {
		status, body, err := fn()
		if err == nil && status != 429 && status < 500 {
			return status, body, nil
		}
		if i == attempts-1 {
			return status, body, err
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return status, body, ctx.Err()
		case <-t.C:
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
	return 0, nil, context.DeadlineExceeded
}
