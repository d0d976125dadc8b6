package models

import "time"

// PageInfo describes the outcome of loading a search results page.
type PageInfo struct {
	URL          string    `json:"url"`
	StatusCode   int       `json:"status_code"`
	FetchedAt    time.Time `json:"fetched_at"`
	ResponseTime int64     `json:"response_time_ms"`
}

// LinkSet is an insertion-ordered collection of unique image URLs.
// Links scraped across multiple queries accumulate into one set so a
// result that appears in several searches is downloaded once.
type LinkSet struct {
	seen  map[string]struct{}
	links []string
}

// NewLinkSet returns an empty LinkSet.
func NewLinkSet() *LinkSet {
	return &LinkSet{seen: make(map[string]struct{})}
}

// Add inserts a link, returning true if it was not already present.
func (s *LinkSet) Add(link string) bool {
	if _, ok := s.seen[link]; ok {
		return false
	}
	s.seen[link] = struct{}{}
	s.links = append(s.links, link)
	return true
}

// Has reports whether the link is in the set.
func (s *LinkSet) Has(link string) bool {
	_, ok := s.seen[link]
	return ok
}

// Len returns the number of unique links collected.
func (s *LinkSet) Len() int {
	return len(s.links)
}

// Links returns the collected links in insertion order.
// The returned slice is a copy.
func (s *LinkSet) Links() []string {
	out := make([]string, len(s.links))
	copy(out, s.links)
	return out
}

// DownloadReport summarizes a download pass over a link set.
type DownloadReport struct {
	Found      int           `json:"found"`
	Downloaded int           `json:"downloaded"`
	Skipped    int           `json:"skipped"`
	TotalBytes int64         `json:"total_bytes"`
	Elapsed    time.Duration `json:"elapsed"`
	OutputDir  string        `json:"output_dir"`
}
