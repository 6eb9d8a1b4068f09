// Package card defines the character card record and the in-memory
// operations over card collections: normalization, deduplication,
// filtering, sorting, fuzzy search and random selection.
package card

import (
	"strings"

	"golang.org/x/net/html"
)

// Card represents a character/bot metadata record from a community source.
type Card struct {
	Name        string   `json:"name"`
	Creator     string   `json:"creator"`
	Tags        []string `json:"tags"`
	Description string   `json:"description,omitempty"` // full text used for search/blocklist checks
	Preview     string   `json:"preview,omitempty"`     // short text shown in listings
	NSFW        bool     `json:"nsfw"`                  // heuristic adult-content flag
	AvatarURL   string   `json:"avatar_url,omitempty"`
	CardURL     string   `json:"card_url,omitempty"`
	Service     string   `json:"service"` // source that produced the card

	// Relevance holds the score from the most recent fuzzy search.
	// It is transient and not persisted.
	Relevance int `json:"-"`
}

// previewLimit caps the generated preview length in runes.
const previewLimit = 200

// Key returns the dedup identity for the card: the normalized
// "name|creator" pair, lowercased with whitespace collapsed.
func (c Card) Key() string {
	return normalizeKeyPart(c.Name) + "|" + normalizeKeyPart(c.Creator)
}

func normalizeKeyPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Normalize cleans up a card fetched from a source: fields are trimmed,
// HTML markup is stripped from descriptions, empty tags are dropped, and
// the preview is derived from the description when the source didn't
// provide one.
func Normalize(c Card) Card {
	c.Name = strings.TrimSpace(c.Name)
	c.Creator = strings.TrimSpace(c.Creator)
	c.Description = StripHTML(c.Description)
	c.Preview = StripHTML(c.Preview)

	tags := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	c.Tags = tags

	if c.Preview == "" && c.Description != "" {
		c.Preview = truncate(c.Description, previewLimit)
	}
	return c
}

// truncate shortens s to at most limit runes, appending an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

// StripHTML removes markup from source-provided text, keeping only the
// text content. Entities are decoded by the tokenizer. Plain strings
// pass through untouched.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	tok := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(tok.Text())
		}
	}
	return strings.TrimSpace(b.String())
}

// Deduplicate returns a new slice keeping the first occurrence of each
// card per Key. The input is not modified.
func Deduplicate(cards []Card) []Card {
	seen := make(map[string]bool, len(cards))
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		key := c.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
