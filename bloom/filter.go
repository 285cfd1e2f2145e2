// Package bloom records discovered links in a Bloom filter so the number of
// distinct links seen during a crawl can be estimated in constant memory.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Default sizing for a single crawl session.
const (
	DefaultCapacity = 100_000
	DefaultFPRate   = 0.01
)

// LinkSet is a concurrency-safe Bloom filter of link URLs.
type LinkSet struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewLinkSet creates a LinkSet sized for n expected links with the given
// false positive rate.
func NewLinkSet(n uint, fpRate float64) *LinkSet {
	return &LinkSet{f: bloom.NewWithEstimates(n, fpRate)}
}

// Record adds link and reports whether it was probably new.
// A false positive makes a new link look already recorded.
func (s *LinkSet) Record(link string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.f.TestAndAddString(link)
}

// Seen reports whether link might have been recorded.
// False positives are possible; false negatives are not.
func (s *LinkSet) Seen(link string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.TestString(link)
}

// EstimatedCount returns the approximate number of distinct links recorded.
func (s *LinkSet) EstimatedCount() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint(s.f.ApproximatedSize())
}
