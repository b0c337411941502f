// Package bloom provides probabilistic URL deduplication for the crawler
// frontier, backed by github.com/bits-and-blooms/bloom.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter remembers URLs the crawler has already queued. Membership tests may
// return false positives but never false negatives, so a URL is never crawled
// twice at the cost of occasionally skipping an unseen one.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs at the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records a URL.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether the URL was probably added before.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount approximates how many URLs have been added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
