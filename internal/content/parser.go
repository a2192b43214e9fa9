// Package content extracts hashtags and mentions from post and comment text.
package content

import (
	"regexp"
	"strings"
)

var (
	hashtagPattern = regexp.MustCompile(`#[A-Za-z0-9_]+`)
	mentionPattern = regexp.MustCompile(`@[A-Za-z0-9_]+`)
)

// Tokens holds the hashtags and mentions extracted from one piece of text.
// Both slices are lowercase, ordered by occurrence, and keep duplicates so
// callers see the literal occurrence count.
type Tokens struct {
	Hashtags []string
	Mentions []string
}

// Parse extracts hashtag and mention tokens from text. It is pure and
// deterministic; empty input yields empty token lists.
func Parse(text string) Tokens {
	return Tokens{
		Hashtags: extract(hashtagPattern, text),
		Mentions: extract(mentionPattern, text),
	}
}

func extract(pattern *regexp.Regexp, text string) []string {
	matches := pattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		// strip the leading # or @ marker
		tokens = append(tokens, strings.ToLower(m[1:]))
	}
	return tokens
}
