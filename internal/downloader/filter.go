package downloader

import (
	"regexp"
	"strings"
)

// linkExtensionPattern captures the trailing extension of a link. Greedy
// prefix so the last dot wins, including dots in query strings.
var linkExtensionPattern = regexp.MustCompile(`.*\.(\w+)`)

// DefaultExtensions are the image extensions downloaded when no filter is
// configured.
var DefaultExtensions = []string{"jpg", "png", "gif"}

// LinkExtension extracts the lowercased extension from a link. The second
// return value is false when the link carries no recognizable extension.
func LinkExtension(link string) (string, bool) {
	m := linkExtensionPattern.FindStringSubmatch(strings.ToLower(link))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtensionSet is an allow-set of lowercased file extensions. An empty or
// nil set allows everything.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds an ExtensionSet from extension names. Entries are
// lowercased and stripped of a leading dot; blanks are dropped.
func NewExtensionSet(exts ...string) ExtensionSet {
	set := make(ExtensionSet)
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext != "" {
			set[ext] = struct{}{}
		}
	}
	return set
}

// ParseExtensions builds an ExtensionSet from a comma-separated list.
func ParseExtensions(csv string) ExtensionSet {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	return NewExtensionSet(strings.Split(csv, ",")...)
}

// Allows reports whether the extension passes the filter.
func (s ExtensionSet) Allows(ext string) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[strings.ToLower(ext)]
	return ok
}
