package pipeline

import (
	"context"
	"time"
)

// FetchFunc fetches the markup behind a URL.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc receives formatted soft-failure notes during a run.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays between fetch
// attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays runs fetch with one retry per delay, sleeping
// the delay between attempts. Each retry is announced through the
// logger when one is supplied. The delay slice is injectable so tests
// run without real backoff; an empty slice means a single attempt.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		markup, err := fetch(ctx, url)
		if err == nil {
			return markup, nil
		}
		lastErr = err

		if attempt >= len(delays) {
			return "", lastErr
		}
		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
}
