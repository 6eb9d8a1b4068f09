package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"botbrowser/card"
)

// Tavern implements the Source interface by scraping the Character
// Tavern explore listing, which has no JSON API.
type Tavern struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewTavern creates a new Character Tavern source.
func NewTavern(userAgent string) *Tavern {
	return &Tavern{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:   "https://character-tavern.com",
		userAgent: userAgent,
	}
}

// Name returns the source name.
func (t *Tavern) Name() string {
	return "tavern"
}

// Fetch scrapes a page of card tiles from the explore listing.
func (t *Tavern) Fetch(ctx context.Context, q Query) ([]card.Card, error) {
	params := url.Values{}
	params.Set("query", q.Search)
	if q.NSFW {
		params.Set("nsfw", "true")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", t.baseURL+"/explore?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavern listing returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var cards []card.Card
	doc.Find(".card-tile").Each(func(_ int, sel *goquery.Selection) {
		c := card.Card{
			Name:    strings.TrimSpace(sel.Find(".card-title").First().Text()),
			Creator: strings.TrimSpace(sel.Find(".card-creator").First().Text()),
			Preview: strings.TrimSpace(sel.Find(".card-desc").First().Text()),
			NSFW:    sel.HasClass("nsfw") || sel.Find(".nsfw-badge").Length() > 0,
			Service: t.Name(),
		}
		c.Description = c.Preview

		sel.Find(".tag").Each(func(_ int, tag *goquery.Selection) {
			if txt := strings.TrimSpace(tag.Text()); txt != "" {
				c.Tags = append(c.Tags, txt)
			}
		})

		if src, ok := sel.Find("img").First().Attr("src"); ok {
			c.AvatarURL = t.absoluteURL(src)
		}
		if href, ok := sel.Find("a").First().Attr("href"); ok {
			c.CardURL = t.absoluteURL(href)
		}

		if c.Name != "" {
			cards = append(cards, c)
		}
	})

	return cards, nil
}

// absoluteURL resolves listing-relative links against the site base.
func (t *Tavern) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base, err := url.Parse(t.baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
