package pipeline

import (
	"strings"
	"sync"

	"github.com/rojgarbhaskar/jobpress"
	"github.com/rojgarbhaskar/jobpress/bloom"
)

// Queue collects the candidates discovered across every listing page
// and feed of a run. Sources frequently link the same item from
// several pages, so candidates are deduplicated by URL across the
// whole run before the workers drain them. Safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	items []queued
}

type queued struct {
	cand   jobpress.Candidate
	source string
}

// NewQueue creates a Queue sized for n expected candidates with the
// given false positive rate for deduplication.
func NewQueue(n uint, fpRate float64) *Queue {
	return &Queue{
		seen: bloom.NewFilter(n, fpRate),
	}
}

// Push queues a candidate discovered by the named source. It returns
// false when the URL was already queued; fragments are stripped first,
// so URLs differing only by fragment count as duplicates.
func (q *Queue) Push(c jobpress.Candidate, source string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	url := stripFragment(c.URL)
	if q.seen.Test(url) {
		return false
	}
	q.seen.Add(url)

	c.URL = url
	q.items = append(q.items, queued{cand: c, source: source})
	return true
}

// Pop returns the next candidate and the source that discovered it, in
// discovery order. The bool result is false once the queue is drained.
func (q *Queue) Pop() (jobpress.Candidate, string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return jobpress.Candidate{}, "", false
	}
	next := q.items[0]
	q.items = q.items[1:]
	return next.cand, next.source, true
}

// Len returns the number of queued candidates.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
