// Package bloom tracks image URLs already consumed by the pipeline using a
// Bloom filter, so memory stays flat however large the archive is.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultFalsePositiveRate is used when no rate is configured.
const DefaultFalsePositiveRate = 0.001

// Filter is a probabilistic set of URLs. Contains may report a URL that was
// never added; it never misses one that was.
type Filter struct {
	f     *bloom.BloomFilter
	added uint
}

// NewFilter creates a Filter sized for n expected URLs at the given false
// positive rate. Non-positive rates fall back to DefaultFalsePositiveRate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFalsePositiveRate
	}
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records url. Adding a URL that is already present is a no-op.
func (f *Filter) Add(url string) {
	if f.f.TestOrAddString(url) {
		return
	}
	f.added++
}

// Contains reports whether url may have been added.
func (f *Filter) Contains(url string) bool {
	return f.f.TestString(url)
}

// Added returns how many Add calls inserted a URL the filter had not seen.
func (f *Filter) Added() uint {
	return f.added
}

// EstimatedCount returns the filter's own estimate of its cardinality.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
