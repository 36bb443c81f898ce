package pipeline

import (
	"context"
	"sync"

	"github.com/rojgarbhaskar/jobpress"
	"golang.org/x/time/rate"
)

var _ jobpress.HostLimiter = (*HostLimiter)(nil)

// HostLimiter paces requests per host. Each host gets its own token
// bucket with a burst of one, so sources are fetched politely while
// different sources proceed in parallel.
type HostLimiter struct {
	rps float64

	mu      sync.Mutex
	perHost map[string]*rate.Limiter
}

// NewHostLimiter creates a HostLimiter allowing rps requests per
// second to each host.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		rps:     rps,
		perHost: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until the host's limiter admits a request, or the
// context is canceled.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.limiterFor(host).Wait(ctx)
}

func (l *HostLimiter) limiterFor(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim := l.perHost[host]
	if lim == nil {
		lim = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.perHost[host] = lim
	}
	return lim
}
