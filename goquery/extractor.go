// Package goquery implements HTML content extraction and name-trail link
// filtering on top of goquery.
package goquery

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/nametrail"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Extractor implements nametrail.ContentExtractor at compile time.
var _ nametrail.ContentExtractor = (*Extractor)(nil)

// blockSelector matches the elements that make up a page's readable text.
// goquery returns matches in document order.
const blockSelector = "h1, h2, h3, h4, h5, h6, p"

// Block is a heading followed by the paragraphs that come after it.
type Block struct {
	// Heading is the heading text prefixed with one "#" per level,
	// e.g. "## Early life".
	Heading    string
	Paragraphs []string
}

// Extractor turns HTML into flattened heading/paragraph text, detects the
// people it mentions, and selects the links that lead to them.
type Extractor struct {
	detector nametrail.NameDetector
	links    nametrail.LinkFilter
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger that records name detection failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a new Extractor using detector for named-entity
// detection and links for outbound link selection.
func NewExtractor(detector nametrail.NameDetector, links nametrail.LinkFilter, opts ...Option) *Extractor {
	e := &Extractor{
		detector: detector,
		links:    links,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses content fetched from rawURL.
func (e *Extractor) Extract(rawURL, content string) (*nametrail.Extraction, error) {
	if content == "" {
		return nil, nametrail.Errorf(nametrail.EINVALID, "empty content from %s", rawURL)
	}
	if !utf8.ValidString(content) || strings.ContainsRune(content, 0) {
		return nil, nametrail.Errorf(nametrail.EINVALID, "non-text content from %s", rawURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, nametrail.Errorf(nametrail.EINVALID, "failed to parse HTML from %s: %v", rawURL, err)
	}

	blocks := Blocks(doc)
	if !hasParagraphs(blocks) {
		return nil, nametrail.Errorf(nametrail.EINVALID, "no paragraph text in %s", rawURL)
	}
	text := Flatten(blocks)

	// A failed detection leaves the page without names: its text is
	// still saved, it just leads nowhere.
	mentions, err := e.detector.DetectPersonNames(text)
	if err != nil {
		e.logger.Warn("name detection failed", "url", rawURL, "err", err)
		return &nametrail.Extraction{Text: text}, nil
	}
	names := nametrail.NewNameSet(nametrail.CountNames(mentions))
	names.Remove(nametrail.SiteName(rawURL))

	result := &nametrail.Extraction{Text: text, Names: names}
	if len(names) == 0 {
		return result, nil
	}

	links, err := e.links.FilterLinks(content, rawURL, names)
	if err != nil {
		return nil, err
	}
	result.Links = links

	return result, nil
}

// Blocks walks headings and paragraphs in document order and groups each
// paragraph under the most recent heading. Paragraphs that appear before
// the first heading are dropped, as are empty ones.
func Blocks(doc *goquery.Document) []Block {
	var blocks []Block
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		level := headingLevel(sel.Get(0))
		if level > 0 {
			blocks = append(blocks, Block{Heading: strings.Repeat("#", level) + " " + text})
			return
		}
		if len(blocks) == 0 || text == "" {
			return
		}
		last := &blocks[len(blocks)-1]
		last.Paragraphs = append(last.Paragraphs, text)
	})
	return blocks
}

// Flatten joins each block's heading and paragraphs with newlines and
// separates blocks with a blank line.
func Flatten(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		lines := append([]string{b.Heading}, b.Paragraphs...)
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func hasParagraphs(blocks []Block) bool {
	for _, b := range blocks {
		if len(b.Paragraphs) > 0 {
			return true
		}
	}
	return false
}

// headingLevel returns 1-6 for h1-h6 elements and 0 otherwise.
func headingLevel(n *html.Node) int {
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}
