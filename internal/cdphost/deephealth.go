package cdphost

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// DeepHealthResult reports what a full chromedp round trip against the
// browser found.
type DeepHealthResult struct {
	Reachable bool `json:"reachable"`
	Targets   int  `json:"targets"`
	PageTabs  int  `json:"page_tabs"`
}

// DeepHealth verifies the DevTools endpoint beyond the raw socket: it
// connects through a chromedp remote allocator and enumerates targets the
// way a full client would.
func DeepHealth(ctx context.Context, cdpURL string) (DeepHealthResult, error) {
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(probeCtx, cdpURL)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	if err := chromedp.Run(browserCtx); err != nil {
		return DeepHealthResult{}, fmt.Errorf("cdphost: deep health connect: %w", err)
	}

	targets, err := chromedp.Targets(browserCtx)
	if err != nil {
		return DeepHealthResult{}, fmt.Errorf("cdphost: deep health targets: %w", err)
	}

	result := DeepHealthResult{Reachable: true, Targets: len(targets)}
	for _, t := range targets {
		if t.Type == "page" {
			result.PageTabs++
		}
	}
	return result, nil
}
