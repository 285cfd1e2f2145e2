package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/nametrail"
)

// DefaultSearchURL is the results endpoint queried by SearchService.
const DefaultSearchURL = "https://www.google.com/search"

// searchUserAgent is a desktop browser UA; the results page markup
// differs for unknown clients.
const searchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/96.0.4664.110 Safari/537.36"

// resultsPerPage is the number of organic results per results page.
const resultsPerPage = 10

// CSS selectors for organic results on the results page.
const (
	resultSelector = ".tF2Cxc"
	titleSelector  = ".DKV0Md"
)

// Ensure SearchService implements nametrail.SeedProvider.
var _ nametrail.SeedProvider = (*SearchService)(nil)

// SearchService discovers seed pages by scraping a web search results page.
type SearchService struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// NewSearchService creates a new SearchService with the given HTTP client.
// If client is nil, http.DefaultClient is used. If baseURL is empty,
// DefaultSearchURL is used.
func NewSearchService(client *http.Client, baseURL string, logger *slog.Logger) *SearchService {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultSearchURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{client: client, baseURL: baseURL, logger: logger}
}

// Search reads q.Pages results pages and returns the organic results.
// A results page that fails to load or parse is logged and skipped.
func (s *SearchService) Search(ctx context.Context, q nametrail.SearchQuery) ([]nametrail.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var results []nametrail.SearchResult
	for page := range q.Pages {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		pageURL := s.pageURL(q, page*resultsPerPage)
		found, err := s.searchPage(ctx, pageURL)
		if err != nil {
			s.logger.Error("search page failed", "page", page+1, "err", err)
			continue
		}
		results = append(results, found...)
	}

	return results, nil
}

// pageURL builds the results URL for the given result offset.
// The custom date range is only applied when both dates are set.
func (s *SearchService) pageURL(q nametrail.SearchQuery, start int) string {
	v := url.Values{}
	v.Set("q", q.Query)
	if q.StartDate != nil && q.EndDate != nil {
		v.Set("tbs", fmt.Sprintf("cdr:1,cd_min:%s,cd_max:%s",
			q.StartDate.Format("01/02/2006"),
			q.EndDate.Format("01/02/2006"),
		))
	}
	v.Set("start", strconv.Itoa(start))
	return s.baseURL + "?" + v.Encode()
}

func (s *SearchService) searchPage(ctx context.Context, pageURL string) ([]nametrail.SearchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", searchUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	return ParseResults(doc), nil
}

// ParseResults extracts organic results from a parsed results page.
// Results without a link are skipped.
func ParseResults(doc *goquery.Document) []nametrail.SearchResult {
	var results []nametrail.SearchResult
	doc.Find(resultSelector).Each(func(_ int, item *goquery.Selection) {
		link, ok := item.Find("a[href]").First().Attr("href")
		if !ok || link == "" {
			return
		}
		results = append(results, nametrail.SearchResult{
			Title: strings.TrimSpace(item.Find(titleSelector).First().Text()),
			Link:  link,
		})
	})
	return results
}
