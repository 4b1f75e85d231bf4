package normalize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultTitle = "Без названия"
	titleMaxLen  = 100
	ellipsis     = "..."
)

var stripPolicy = bluemonday.StrictPolicy()

// StripTags turns an upstream comment into plain text.
func StripTags(s string) string {
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

// Title picks the subject, else the comment text cut to 100 characters
// (with "..." when cut), else DefaultTitle.
func Title(subject, comment string) string {
	if s := strings.TrimSpace(subject); s != "" {
		return s
	}
	text := strings.TrimSpace(StripTags(comment))
	if text == "" {
		return DefaultTitle
	}
	runes := []rune(text)
	if len(runes) > titleMaxLen {
		return string(runes[:titleMaxLen]) + ellipsis
	}
	return text
}
