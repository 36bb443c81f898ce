package jobpress

import "context"

// Fetcher retrieves raw markup from URLs. The transport details
// (headers, TLS, timeouts) are implementation concerns; the pipeline
// treats any fetch error as "no content" for that URL, never as fatal.
type Fetcher interface {
	// Fetch retrieves the markup at the URL. The context controls
	// timeout and cancellation.
	Fetch(ctx context.Context, url string) (markup string, err error)

	// Close releases transport resources.
	Close() error
}

// HostLimiter provides per-host request pacing.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
