package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/nametrail"
)

// Ensure LinkFilter implements nametrail.LinkFilter at compile time.
var _ nametrail.LinkFilter = (*LinkFilter)(nil)

// LinkFilter accepts anchors whose href or visible text mentions a known
// person and whose href is not on the block-list.
type LinkFilter struct {
	blockList []string
}

// NewLinkFilter creates a LinkFilter with the given block-list.
// A nil blockList uses nametrail.DefaultBlockList.
func NewLinkFilter(blockList []string) *LinkFilter {
	if blockList == nil {
		blockList = nametrail.DefaultBlockList
	}
	return &LinkFilter{blockList: blockList}
}

// FilterLinks parses html and returns the accepted absolute URLs in
// document order of first occurrence.
func (f *LinkFilter) FilterLinks(html, baseURL string, names nametrail.NameSet) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, nametrail.Errorf(nametrail.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nametrail.Errorf(nametrail.EINVALID, "failed to parse HTML: %v", err)
	}

	if len(names) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved := resolveURL(base, strings.TrimSpace(href))
		if resolved == "" || seen[resolved] {
			return
		}

		lowerHref := strings.ToLower(resolved)
		lowerText := strings.ToLower(sel.Text())
		if !names.MatchAny(lowerHref, lowerText) {
			return
		}
		if nametrail.IsBlocked(lowerHref, f.blockList) {
			return
		}

		seen[resolved] = true
		links = append(links, resolved)
	})

	return links, nil
}

// resolveURL resolves href against base and strips the fragment.
// Returns empty string if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return nametrail.NormalizeURL(base.ResolveReference(ref).String())
}
