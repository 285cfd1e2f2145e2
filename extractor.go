package nametrail

// Extraction holds the readable text of a page and the links worth following.
type Extraction struct {
	// Text is the flattened heading/paragraph text of the page.
	Text string

	// Names is the normalized person-name set that selected Links.
	// The page's own site name has already been removed.
	Names NameSet

	// Links are absolute URLs correlated with a name in Names,
	// in document order of first occurrence.
	Links []string
}

// ContentExtractor turns fetched HTML into text and followable links.
type ContentExtractor interface {
	// Extract parses content fetched from url.
	// Returns an EINVALID error when the content is empty, not text,
	// or yields no paragraph text. A page with text but no detected
	// names is not an error; its Extraction simply has no links.
	Extract(url, content string) (*Extraction, error)
}

// PageResult is the outcome of fetching and extracting one URL.
// On any failure Text is empty, Links is nil, and Failed is true.
type PageResult struct {
	URL    string
	Text   string
	Links  []string
	Failed bool
	Err    error
}
