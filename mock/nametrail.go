package mock

import (
	"context"

	"github.com/fwojciec/nametrail"
)

// Compile-time interface verification.
var (
	_ nametrail.Fetcher          = (*Fetcher)(nil)
	_ nametrail.ContentExtractor = (*ContentExtractor)(nil)
	_ nametrail.NameDetector     = (*NameDetector)(nil)
	_ nametrail.LinkFilter       = (*LinkFilter)(nil)
	_ nametrail.PersistenceSink  = (*PersistenceSink)(nil)
	_ nametrail.SeedProvider     = (*SeedProvider)(nil)
	_ nametrail.FeedReader       = (*FeedReader)(nil)
	_ nametrail.PageService      = (*PageService)(nil)
)

// Fetcher is a mock implementation of nametrail.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// ContentExtractor is a mock implementation of nametrail.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(url, content string) (*nametrail.Extraction, error)
}

func (e *ContentExtractor) Extract(url, content string) (*nametrail.Extraction, error) {
	return e.ExtractFn(url, content)
}

// NameDetector is a mock implementation of nametrail.NameDetector.
type NameDetector struct {
	DetectPersonNamesFn func(text string) ([]string, error)
}

func (d *NameDetector) DetectPersonNames(text string) ([]string, error) {
	return d.DetectPersonNamesFn(text)
}

// LinkFilter is a mock implementation of nametrail.LinkFilter.
type LinkFilter struct {
	FilterLinksFn func(html, baseURL string, names nametrail.NameSet) ([]string, error)
}

func (f *LinkFilter) FilterLinks(html, baseURL string, names nametrail.NameSet) ([]string, error) {
	return f.FilterLinksFn(html, baseURL, names)
}

// PersistenceSink is a mock implementation of nametrail.PersistenceSink.
type PersistenceSink struct {
	SaveFn func(ctx context.Context, title, text string) error
}

func (s *PersistenceSink) Save(ctx context.Context, title, text string) error {
	return s.SaveFn(ctx, title, text)
}

// SeedProvider is a mock implementation of nametrail.SeedProvider.
type SeedProvider struct {
	SearchFn func(ctx context.Context, q nametrail.SearchQuery) ([]nametrail.SearchResult, error)
}

func (p *SeedProvider) Search(ctx context.Context, q nametrail.SearchQuery) ([]nametrail.SearchResult, error) {
	return p.SearchFn(ctx, q)
}

// FeedReader is a mock implementation of nametrail.FeedReader.
type FeedReader struct {
	ReadFeedFn func(ctx context.Context, q nametrail.FeedQuery) ([]nametrail.SearchResult, error)
}

func (r *FeedReader) ReadFeed(ctx context.Context, q nametrail.FeedQuery) ([]nametrail.SearchResult, error) {
	return r.ReadFeedFn(ctx, q)
}

// PageService is a mock implementation of nametrail.PageService.
type PageService struct {
	SaveFn      func(ctx context.Context, title, text string) error
	FindPagesFn func(ctx context.Context, filter nametrail.PageFilter) ([]*nametrail.Page, error)
}

func (s *PageService) Save(ctx context.Context, title, text string) error {
	return s.SaveFn(ctx, title, text)
}

func (s *PageService) FindPages(ctx context.Context, filter nametrail.PageFilter) ([]*nametrail.Page, error) {
	return s.FindPagesFn(ctx, filter)
}
