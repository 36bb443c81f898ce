// Package bloom provides the probabilistic seen-URL set behind
// candidate deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a seen-URL set with one-sided error: Test may report a URL
// as seen when it was not, but never the reverse. The pipeline accepts
// the tiny chance of dropping a candidate in exchange for constant
// memory across large runs.
type Filter struct {
	set *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected URLs at the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		set: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as seen.
func (f *Filter) Add(url string) {
	f.set.AddString(url)
}

// Test reports whether the URL may have been added before.
func (f *Filter) Test(url string) bool {
	return f.set.TestString(url)
}
