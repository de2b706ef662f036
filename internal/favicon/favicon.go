// Package favicon builds icon URLs through a host favicon resolution endpoint.
package favicon

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultEndpoint is the host favicon service browser extensions use.
	// It resolves icons for intranet pages too.
	DefaultEndpoint = "/_favicon/?pageUrl={pageUrl}&size={size}"
	DefaultSize     = 32

	pageURLPlaceholder = "{pageUrl}"
	sizePlaceholder    = "{size}"
)

// URL returns the icon URL for pageURL. The endpoint may contain {pageUrl}
// and {size} placeholders; an endpoint without any gets them appended as
// query parameters.
func URL(endpoint, pageURL string, size int) string {
	escaped := url.QueryEscape(pageURL)
	sz := strconv.Itoa(size)

	if !strings.Contains(endpoint, pageURLPlaceholder) && !strings.Contains(endpoint, sizePlaceholder) {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
			if strings.HasSuffix(endpoint, "?") || strings.HasSuffix(endpoint, "&") {
				sep = ""
			}
		}
		return endpoint + sep + "pageUrl=" + escaped + "&size=" + sz
	}

	r := strings.NewReplacer(pageURLPlaceholder, escaped, sizePlaceholder, sz)
	return r.Replace(endpoint)
}
