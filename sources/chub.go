package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"botbrowser/card"
)

// Chub implements the Source interface using the Chub search API.
type Chub struct {
	client  *http.Client
	baseURL string
	token   string // optional API token
}

// NewChub creates a new Chub source. The token may be empty; when set
// it is sent as both CH-API-KEY and a bearer token.
func NewChub(token string) *Chub {
	return &Chub{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: "https://api.chub.ai",
		token:   token,
	}
}

// Name returns the source name.
func (c *Chub) Name() string {
	return "chub"
}

// chubResponse represents the Chub search API response.
type chubResponse struct {
	Data struct {
		Count int        `json:"count"`
		Nodes []chubNode `json:"nodes"`
	} `json:"data"`
}

type chubNode struct {
	Name        string   `json:"name"`
	FullPath    string   `json:"fullPath"`
	Tagline     string   `json:"tagline"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
	NSFWImage   bool     `json:"nsfw_image"`
	AvatarURL   string   `json:"avatar_url"`
	MaxResURL   string   `json:"max_res_url"`
}

// Fetch performs a Chub card search via API.
func (c *Chub) Fetch(ctx context.Context, q Query) ([]card.Card, error) {
	first := q.First
	if first <= 0 {
		first = 50
	}

	params := url.Values{}
	params.Set("first", strconv.Itoa(first))
	params.Set("sort", q.Sort)
	params.Set("search", q.Search)
	params.Set("cursor", q.Cursor)
	params.Set("venus", "true")
	if q.NSFW {
		params.Set("nsfw", "true")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("CH-API-KEY", c.token)
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching cards: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chub search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var chResp chubResponse
	if err := json.Unmarshal(body, &chResp); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	cards := make([]card.Card, 0, len(chResp.Data.Nodes))
	for _, node := range chResp.Data.Nodes {
		desc := node.Description
		if desc == "" {
			desc = node.Tagline
		}

		avatar := node.AvatarURL
		if avatar == "" {
			avatar = node.MaxResURL
		}

		cards = append(cards, card.Card{
			Name:        node.Name,
			Creator:     creatorFromPath(node.FullPath),
			Tags:        node.Topics,
			Description: desc,
			Preview:     node.Tagline,
			NSFW:        node.NSFWImage || hasNSFWTopic(node.Topics),
			AvatarURL:   avatar,
			CardURL:     "https://chub.ai/characters/" + node.FullPath,
			Service:     c.Name(),
		})
	}

	return cards, nil
}

// creatorFromPath extracts the creator from a "creator/slug" full path.
func creatorFromPath(fullPath string) string {
	if i := strings.IndexByte(fullPath, '/'); i > 0 {
		return fullPath[:i]
	}
	return fullPath
}

// hasNSFWTopic is the adult-content heuristic for cards whose image
// flag is unset but which are tagged as such.
func hasNSFWTopic(topics []string) bool {
	for _, t := range topics {
		if strings.EqualFold(t, "nsfw") {
			return true
		}
	}
	return false
}
