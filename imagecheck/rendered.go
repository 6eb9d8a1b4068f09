package imagecheck

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// CheckRendered validates a thumbnail by loading it in headless Chrome
// and reading the decoded natural width, for hosts that gate plain HTTP
// requests behind JS challenges. Slower than Check; use as a fallback.
func (c *Checker) CheckRendered(ctx context.Context, rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("empty image URL")
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(c.opts.UserAgent),
		chromedp.Flag("headless", "new"),
	}
	if c.opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.opts.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	// Browser startup needs headroom beyond the plain HTTP timeout.
	timeout := time.Duration(c.opts.TimeoutSeconds) * time.Second
	if timeout < 30*time.Second {
		timeout = 30 * time.Second
	}
	runCtx, cancel := context.WithTimeout(allocCtx, timeout)
	defer cancel()

	runCtx, cancel = chromedp.NewContext(runCtx)
	defer cancel()

	// Navigating straight to an image URL makes Chrome wrap it in a
	// single <img>; a decoded image reports naturalWidth > 0.
	var loaded bool
	err := chromedp.Run(runCtx,
		network.SetExtraHTTPHeaders(network.Headers(map[string]interface{}{
			"Accept": "image/avif,image/webp,image/apng,image/*,*/*;q=0.8",
		})),
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`document.images.length > 0 && document.images[0].naturalWidth > 0`, &loaded),
	)
	if err != nil {
		return fmt.Errorf("rendered check: %w", err)
	}
	if !loaded {
		return fmt.Errorf("image did not decode in page")
	}
	return nil
}
