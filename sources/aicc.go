package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"botbrowser/card"
)

// AICC implements the Source interface using the AI Character Cards
// JSON catalog.
type AICC struct {
	client  *http.Client
	baseURL string
}

// NewAICC creates a new AI Character Cards source.
func NewAICC() *AICC {
	return &AICC{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: "https://aicharactercards.com",
	}
}

// Name returns the source name.
func (a *AICC) Name() string {
	return "aicc"
}

// aiccResponse represents the catalog listing response.
type aiccResponse struct {
	Cards []aiccCard `json:"cards"`
}

type aiccCard struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Tags     []string `json:"tags"`
	Summary  string   `json:"summary"`
	NSFW     bool     `json:"nsfw"`
	ImageURL string   `json:"image_url"`
	PageURL  string   `json:"page_url"`
}

// Fetch retrieves a page of cards from the catalog.
func (a *AICC) Fetch(ctx context.Context, q Query) ([]card.Card, error) {
	params := url.Values{}
	params.Set("search", q.Search)
	if q.First > 0 {
		params.Set("per_page", strconv.Itoa(q.First))
	}
	if q.NSFW {
		params.Set("nsfw", "1")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", a.baseURL+"/api/v2/cards?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching cards: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aicc catalog returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var catResp aiccResponse
	if err := json.Unmarshal(body, &catResp); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	cards := make([]card.Card, 0, len(catResp.Cards))
	for _, cc := range catResp.Cards {
		cards = append(cards, card.Card{
			Name:        cc.Title,
			Creator:     cc.Author,
			Tags:        cc.Tags,
			Description: cc.Summary,
			NSFW:        cc.NSFW,
			AvatarURL:   cc.ImageURL,
			CardURL:     cc.PageURL,
			Service:     a.Name(),
		})
	}

	return cards, nil
}
