package nametrail

import (
	"net/url"
	"sort"
	"strings"
)

// NameDetector finds person names in free text.
type NameDetector interface {
	// DetectPersonNames returns every span tagged as a person, in order of
	// appearance. A name mentioned twice is returned twice.
	DetectPersonNames(text string) ([]string, error)
}

// NameSet is a set of normalized person names.
type NameSet map[string]struct{}

// NormalizeName lowercases a name and strips all whitespace from it,
// so "John  Smith" becomes "johnsmith".
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

// CountNames builds a frequency count of detected name mentions.
func CountNames(mentions []string) map[string]int {
	counts := make(map[string]int, len(mentions))
	for _, m := range mentions {
		counts[m]++
	}
	return counts
}

// NewNameSet normalizes the keys of a frequency count into a NameSet.
// Names that normalize to the empty string are skipped.
func NewNameSet(counts map[string]int) NameSet {
	set := make(NameSet, len(counts))
	for name := range counts {
		if n := NormalizeName(name); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Remove deletes name from the set.
func (s NameSet) Remove(name string) {
	delete(s, name)
}

// Has reports whether the set contains name.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// MatchAny reports whether any name in the set is a substring of one of
// the given strings. Callers pass already-lowercased input.
func (s NameSet) MatchAny(haystacks ...string) bool {
	for name := range s {
		for _, h := range haystacks {
			if strings.Contains(h, name) {
				return true
			}
		}
	}
	return false
}

// Sorted returns the names in lexical order.
func (s NameSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SiteName returns the site's own name: the first DNS label of the URL host
// after an optional "www." prefix, lowercased. For https://www.smith.com/a
// it returns "smith". Returns "" if the URL has no host.
func SiteName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	label, _, _ := strings.Cut(host, ".")
	return label
}
