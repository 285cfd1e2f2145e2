package crawl

import (
	"sync"

	"github.com/fwojciec/nametrail"
	"github.com/fwojciec/nametrail/bloom"
)

// Session holds the state shared by every branch of one top-level crawl
// invocation. A Session must not be reused across invocations.
type Session struct {
	Visited  *VisitedSet
	Frontier *Frontier
	MaxDepth int
}

// NewSession creates a Session bounded at maxDepth.
func NewSession(maxDepth int) (*Session, error) {
	if maxDepth < 0 {
		return nil, nametrail.Errorf(nametrail.EINVALID, "max depth must be non-negative, got %d", maxDepth)
	}
	return &Session{
		Visited:  NewVisitedSet(),
		Frontier: NewFrontier(bloom.DefaultCapacity, bloom.DefaultFPRate),
		MaxDepth: maxDepth,
	}, nil
}

// VisitedSet is the exact set of URLs claimed for fetching.
// It is safe for concurrent use by multiple goroutines.
type VisitedSet struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{urls: make(map[string]struct{})}
}

// TryAdd inserts url and reports whether it was absent.
// Exactly one of any number of concurrent callers for the same URL wins.
func (v *VisitedSet) TryAdd(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.urls[url]; ok {
		return false
	}
	v.urls[url] = struct{}{}
	return true
}

// Contains reports whether url has been claimed.
func (v *VisitedSet) Contains(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.urls[url]
	return ok
}

// Len returns the number of claimed URLs.
func (v *VisitedSet) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.urls)
}
