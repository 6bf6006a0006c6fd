package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBody(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "PlainText",
			body:     "hello world",
			expected: "<p>hello world</p>",
		},
		{
			name:     "TrimsWhitespace",
			body:     "  hello  ",
			expected: "<p>hello</p>",
		},
		{
			name:     "StripsTags",
			body:     `<script>alert("x")</script>hi`,
			expected: "<p>hi</p>",
		},
		{
			name:     "StripsFormattingTags",
			body:     "<b>bold</b> and <i>italic</i>",
			expected: "<p>bold and italic</p>",
		},
		{
			name:     "NewlineBecomesParagraphBreak",
			body:     "first\nsecond",
			expected: "<p>first</p><p>second</p>",
		},
		{
			name:     "NewlineRunCollapsesToOneBreak",
			body:     "first\n\n\nsecond",
			expected: "<p>first</p><p>second</p>",
		},
		{
			name:     "LinkifiesURL",
			body:     "see https://example.com/page",
			expected: `<p>see <a href="https://example.com/page" rel="nofollow">https://example.com/page</a></p>`,
		},
		{
			name:     "LinkifiesEmail",
			body:     "mail me@example.com please",
			expected: `<p>mail <a href="mailto:me@example.com">me@example.com</a> please</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RenderBody(tt.body))
		})
	}
}

func TestRenderBodyIsDeterministic(t *testing.T) {
	body := "a\nb https://example.com"
	assert.Equal(t, RenderBody(body), RenderBody(body))
}
