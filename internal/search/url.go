// Package search drives a Google Images results page: loading it, forcing
// lazy-loaded results to render, and scraping image URLs out of the page
// metadata.
package search

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the search endpoint queries are issued against.
const DefaultBaseURL = "https://www.google.co.in/search"

// BuildSearchURL returns the image-search URL for a query. The fixed
// source=lnms and tbm=isch parameters select the image search vertical.
func BuildSearchURL(baseURL, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("query must not be empty")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base search URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid base search URL %q: scheme must be http or https", baseURL)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("source", "lnms")
	params.Set("tbm", "isch")
	u.RawQuery = params.Encode()

	return u.String(), nil
}
