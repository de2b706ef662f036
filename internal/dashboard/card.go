package dashboard

import (
	"net/url"

	"github.com/nikbrunner/bmdash/internal/favicon"
	"github.com/nikbrunner/bmdash/internal/model"
)

// NewCard builds the card for a bookmark node.
func NewCard(node *model.Node, opts Options) Card {
	endpoint := opts.FaviconEndpoint
	if endpoint == "" {
		endpoint = favicon.DefaultEndpoint
	}
	size := opts.FaviconSize
	if size <= 0 {
		size = favicon.DefaultSize
	}

	return Card{
		ID:      node.ID,
		URL:     node.URL,
		Title:   DisplayTitle(node.Title, node.URL),
		IconURL: favicon.URL(endpoint, node.URL, size),
	}
}

// DisplayTitle returns title, or the URL's hostname when title is empty, or
// rawURL verbatim when it has no parseable host.
func DisplayTitle(title, rawURL string) string {
	if title != "" {
		return title
	}
	return Hostname(rawURL)
}

// Hostname extracts the host of rawURL without port. Unparseable input, or
// input without a host, is returned unchanged.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}
