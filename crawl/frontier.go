package crawl

import (
	"sync/atomic"

	"github.com/fwojciec/nametrail/bloom"
)

// Frontier tracks outstanding work: the number of links announced for
// expansion whose subtrees have not yet completed. It never blocks and does
// not limit concurrency. Every announced link is also recorded in a Bloom
// filter so the number of distinct links discovered can be estimated.
type Frontier struct {
	pending atomic.Int64
	links   *bloom.LinkSet
}

// NewFrontier creates a Frontier whose link record is sized for n links
// with the given false positive rate.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{links: bloom.NewLinkSet(n, fpRate)}
}

// Discover records links and adds their count to the pending tally.
func (f *Frontier) Discover(links []string) {
	for _, l := range links {
		f.links.Record(l)
	}
	f.pending.Add(int64(len(links)))
}

// Complete subtracts n from the pending tally once a node's subtree is done.
func (f *Frontier) Complete(n int) {
	f.pending.Add(-int64(n))
}

// Pending returns the current pending tally.
func (f *Frontier) Pending() int {
	return int(f.pending.Load())
}

// Discovered returns the estimated number of distinct links discovered.
func (f *Frontier) Discovered() int {
	return int(f.links.EstimatedCount())
}

// Seen reports whether link might have been discovered.
func (f *Frontier) Seen(link string) bool {
	return f.links.Seen(link)
}
