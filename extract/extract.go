// Package extract reduces a blog URL to readable article text so the
// model receives the content itself rather than a URL it cannot fetch.
package extract

import (
	"fmt"
	"time"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
)

const (
	fetchTimeout = 30 * time.Second

	// maxContentChars bounds the text attached to a prompt. Long-form
	// posts rarely exceed this; anything past it adds cost, not signal.
	maxContentChars = 60000
)

// ReadableText fetches the URL and extracts the article body as plain
// text, truncated to a prompt-friendly length.
func ReadableText(url string) (string, error) {
	article, err := readability.FromURL(url, fetchTimeout)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}
	return truncate(article.TextContent, maxContentChars), nil
}

// truncate cuts text to at most max bytes without splitting a rune.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
