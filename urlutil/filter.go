package urlutil

import (
	"net/url"
	"strings"
)

// SameHost reports whether rawURL's host matches the registered crawl domain.
// The comparison is exact (including any port); subdomains are different hosts.
func SameHost(rawURL string, domain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	return strings.EqualFold(parsed.Host, domain)
}

// IsHTTPScheme returns true if the URL has an http or https scheme.
// Returns false for empty strings, non-HTTP schemes, or unparseable URLs.
func IsHTTPScheme(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(parsed.Scheme)
	return scheme == "http" || scheme == "https"
}

// IsSkippable reports whether an href/src attribute value should be discarded
// before resolution: empty values, pure fragments, javascript: and mailto:
// references never become crawlable links.
func IsSkippable(ref string) bool {
	if ref == "" {
		return true
	}
	if strings.HasPrefix(ref, "#") {
		return true
	}
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:")
}

// EnsureScheme normalizes a user-supplied seed URL to carry a scheme,
// assuming https when none is present.
func EnsureScheme(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return trimmed
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}
