package crawler

import (
	"io"
	"net/url"

	"github.com/scoutlab/linkscout/urlutil"
	"golang.org/x/net/html"
)

// linkAttrs maps link-bearing tags to the attribute that carries the
// reference: href on anchors and stylesheet links, src on scripts and images.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"script": "src",
	"img":    "src",
}

// ExtractLinks scans an HTML document for link references, resolves each one
// against baseURL, and classifies it by host: same host as domain -> internal,
// anything else -> external. Empty values, pure fragments, javascript: and
// mailto: references are discarded before resolution.
//
// Order is preserved and duplicates are kept: one slice element per attribute
// occurrence, so the registry can count occurrences faithfully. Tokenizer
// errors end extraction for the page without failing the crawl; whatever was
// extracted up to that point is returned.
func ExtractLinks(baseURL *url.URL, body io.Reader, domain string) (internal, external []string) {
	tokenizer := html.NewTokenizer(body)

	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			// io.EOF is the normal end of document; anything else is a
			// malformed page that degrades to whatever was found so far.
			return internal, external
		}
		if tokenType != html.StartTagToken && tokenType != html.SelfClosingTagToken {
			continue
		}

		token := tokenizer.Token()
		attrKey, ok := linkAttrs[token.Data]
		if !ok {
			continue
		}

		for _, attr := range token.Attr {
			if attr.Key != attrKey {
				continue
			}
			if urlutil.IsSkippable(attr.Val) {
				continue
			}

			refURL, err := url.Parse(attr.Val)
			if err != nil {
				continue
			}
			resolved := baseURL.ResolveReference(refURL).String()

			if !urlutil.IsHTTPScheme(resolved) {
				continue
			}
			normalized, err := urlutil.Normalize(resolved)
			if err != nil {
				continue
			}

			if urlutil.SameHost(normalized, domain) {
				internal = append(internal, normalized)
			} else {
				external = append(external, normalized)
			}
		}
	}
}
