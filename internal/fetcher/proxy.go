package fetcher

import (
	"net/url"
	"strings"
)

const urlPlaceholder = "{url}"

// Proxy is one hop of the fallback chain.
//
// Template forms:
//
//	""                                  direct request to the target
//	"https://corsproxy.io/?{url}"       target is query-escaped into {url}
//	"https://cors.example.org/"         target is appended verbatim
type Proxy struct {
	Name     string
	Template string
}

func (p Proxy) URL(target string) string {
	switch {
	case p.Template == "":
		return target
	case strings.Contains(p.Template, urlPlaceholder):
		return strings.ReplaceAll(p.Template, urlPlaceholder, url.QueryEscape(target))
	default:
		return p.Template + target
	}
}

func (p Proxy) direct() bool {
	return p.Template == ""
}
