package nametrail

import (
	"net/url"
	"strings"
)

// LinkFilter selects the outbound links of a page worth following.
type LinkFilter interface {
	// FilterLinks returns the absolute URLs of anchors in html whose href or
	// visible text mentions a name in names and whose href is not blocked.
	// Relative hrefs are resolved against baseURL. Duplicates collapse.
	FilterLinks(html, baseURL string, names NameSet) ([]string, error)
}

// DefaultBlockList holds substrings that disqualify a lowercased href
// regardless of any name match: share widgets, tweet intents and
// non-navigational schemes.
var DefaultBlockList = []string{
	"mailto:",
	"javascript:",
	"tel:",
	"/intent/tweet",
	"twitter.com/intent",
	"twitter.com/share",
	"x.com/intent",
	"x.com/share",
	"facebook.com/sharer",
	"facebook.com/share.php",
	"facebook.com/dialog/share",
	"linkedin.com/sharearticle",
	"linkedin.com/sharing",
	"pinterest.com/pin/create",
	"reddit.com/submit",
	"tumblr.com/share",
	"api.whatsapp.com/send",
	"wa.me/?text",
	"t.me/share",
	"telegram.me/share",
	"news.ycombinator.com/submitlink",
	"addtoany.com",
	"sharethis.com",
}

// IsBlocked reports whether the lowercased href contains any entry of
// blockList. Entries are compared lowercased.
func IsBlocked(lowerHref string, blockList []string) bool {
	for _, b := range blockList {
		if strings.Contains(lowerHref, strings.ToLower(b)) {
			return true
		}
	}
	return false
}

// NormalizeURL strips the fragment from rawURL so that links to different
// anchors of one page share a visited entry. Unparsable input is returned
// unchanged.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
