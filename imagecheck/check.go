// Package imagecheck validates card thumbnail URLs and swaps in a
// placeholder image when one fails to load.
package imagecheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"botbrowser/card"
)

// Options configures the checker.
type Options struct {
	UserAgent      string
	TimeoutSeconds int
	Placeholder    string // URL substituted for broken thumbnails
	ChromePath     string // Chrome binary for rendered checks (empty = auto-detect)

	// RenderedFallback retries failed probes in headless Chrome
	// before swapping in the placeholder.
	RenderedFallback bool
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent:      "botbrowser/1.0",
		TimeoutSeconds: 15,
		Placeholder:    "https://placehold.co/256x256?text=unavailable",
	}
}

// Checker probes thumbnail URLs.
type Checker struct {
	client *http.Client
	opts   Options
}

// New creates a checker. Zero-valued option fields fall back to the
// defaults.
func New(opts Options) *Checker {
	def := DefaultOptions()
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	if opts.TimeoutSeconds <= 0 {
		opts.TimeoutSeconds = def.TimeoutSeconds
	}
	if opts.Placeholder == "" {
		opts.Placeholder = def.Placeholder
	}
	return &Checker{
		client: &http.Client{
			Timeout: time.Duration(opts.TimeoutSeconds) * time.Second,
		},
		opts: opts,
	}
}

// Placeholder returns the configured substitute image URL.
func (c *Checker) Placeholder() string {
	return c.opts.Placeholder
}

// Check probes a thumbnail URL over plain HTTP. It returns nil when the
// URL serves a loadable image: 200 status, an image content type and a
// non-empty body.
func (c *Checker) Check(ctx context.Context, rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("empty image URL")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image returned status %d", resp.StatusCode)
	}

	// Sniff the body when the server doesn't declare a content type.
	head := make([]byte, 512)
	n, err := io.ReadFull(resp.Body, head)
	if n == 0 {
		return fmt.Errorf("empty image body")
	}
	if err != nil && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("reading image: %w", err)
	}

	ctype := resp.Header.Get("Content-Type")
	if ctype == "" || ctype == "application/octet-stream" {
		ctype = http.DetectContentType(head[:n])
	}
	if !strings.HasPrefix(ctype, "image/") {
		return fmt.Errorf("not an image: content type %q", ctype)
	}

	return nil
}

// Sanitize checks every card's thumbnail and replaces failing URLs with
// the placeholder. It returns the updated cards and the number swapped.
func (c *Checker) Sanitize(ctx context.Context, cards []card.Card) ([]card.Card, int) {
	out := make([]card.Card, len(cards))
	copy(out, cards)

	swapped := 0
	for i := range out {
		if err := ctx.Err(); err != nil {
			break
		}
		if out[i].AvatarURL == "" || out[i].AvatarURL == c.opts.Placeholder {
			continue
		}
		if err := c.validate(ctx, out[i].AvatarURL); err != nil {
			log.Warn().
				Str("card", out[i].Name).
				Str("url", out[i].AvatarURL).
				Err(err).
				Msg("thumbnail failed, using placeholder")
			out[i].AvatarURL = c.opts.Placeholder
			swapped++
		}
	}
	return out, swapped
}

// validate runs the plain HTTP probe, retrying in headless Chrome when
// the rendered fallback is enabled.
func (c *Checker) validate(ctx context.Context, rawURL string) error {
	err := c.Check(ctx, rawURL)
	if err == nil || !c.opts.RenderedFallback {
		return err
	}
	return c.CheckRendered(ctx, rawURL)
}
