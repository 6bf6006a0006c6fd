package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every HTML tag; comments are plain text only.
var strictPolicy = bluemonday.StrictPolicy()

var (
	newlineRuns = regexp.MustCompile(`\n+`)
	// Bare URLs and email addresses in already-sanitized text. URLs
	// stop at whitespace or the paragraph tags inserted before this
	// pass runs.
	linkTargets = regexp.MustCompile(`https?://[^\s<]+|\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// RenderBody derives the sanitized HTML for a comment body: trim,
// strip all tags, turn newline runs into paragraph boundaries, wrap in
// a single paragraph, and auto-link bare URLs and email addresses.
// Pure function; every write path that mutates a comment's Body must
// call it so BodyHTML never diverges.
func RenderBody(body string) string {
	text := strictPolicy.Sanitize(strings.TrimSpace(body))
	text = newlineRuns.ReplaceAllString(text, "</p><p>")
	text = linkTargets.ReplaceAllStringFunc(text, func(m string) string {
		if strings.Contains(m, "://") {
			return fmt.Sprintf(`<a href="%s" rel="nofollow">%s</a>`, m, m)
		}
		return fmt.Sprintf(`<a href="mailto:%s">%s</a>`, m, m)
	})
	return "<p>" + text + "</p>"
}
