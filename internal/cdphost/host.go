// Package cdphost implements the tab directory's host capability surface
// against a Chromium-family browser's DevTools endpoint. Tabs are browser
// targets of type "page"; the package assigns small stable integer ids to
// CDP target ids so the directory never handles protocol identifiers.
package cdphost

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chromedp/cdproto/target"

	"github.com/dgnsrekt/tab_agent/internal/tabdir"
)

// Host talks CDP for the directory. Safe for use from a single goroutine per
// surface; the internal registry is locked because the controller's HTTP
// handlers may overlap.
type Host struct {
	cdp *rawCDP

	mu         sync.Mutex
	idByTarget map[target.ID]int
	targetByID map[int]target.ID
	frontByWin map[int]target.ID // most-recently-seen front target per window
	nextID     int
}

var _ tabdir.Host = (*Host)(nil)

func New(cdpURL string) *Host {
	return &Host{
		cdp:        newRawCDP(cdpURL),
		idByTarget: make(map[target.ID]int),
		targetByID: make(map[int]target.ID),
		frontByWin: make(map[int]target.ID),
		nextID:     1,
	}
}

// Connect establishes the browser WebSocket. Idempotent.
func (h *Host) Connect(ctx context.Context) error {
	return h.cdp.connect(ctx)
}

func (h *Host) Close() error {
	h.cdp.close()
	return nil
}

// QueryTabs lists page targets. The zero query returns all tabs in /json/list
// order; the active+current-window query returns at most the front-most tab.
func (h *Host) QueryTabs(ctx context.Context, q tabdir.TabQuery) ([]tabdir.RawTab, error) {
	pages, err := h.pageTargets(ctx)
	if err != nil {
		return nil, err
	}

	tabs := make([]tabdir.RawTab, 0, len(pages))
	for i, p := range pages {
		raw, err := h.mapTarget(ctx, p, i == 0)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, raw)
	}

	if q.Active {
		if len(tabs) == 0 {
			return nil, nil
		}
		return tabs[:1], nil
	}
	return tabs, nil
}

// GetTab looks up one tab by its directory id against live browser state.
func (h *Host) GetTab(ctx context.Context, id int) (tabdir.RawTab, error) {
	targetID, ok := h.lookupTarget(id)
	if !ok {
		return tabdir.RawTab{}, fmt.Errorf("cdphost: unknown tab id %d", id)
	}

	pages, err := h.pageTargets(ctx)
	if err != nil {
		return tabdir.RawTab{}, err
	}
	for i, p := range pages {
		if p.ID == targetID {
			return h.mapTarget(ctx, p, i == 0)
		}
	}
	return tabdir.RawTab{}, fmt.Errorf("cdphost: tab %d no longer open", id)
}

func (h *Host) ActivateTab(ctx context.Context, id int) error {
	targetID, ok := h.lookupTarget(id)
	if !ok {
		return fmt.Errorf("cdphost: unknown tab id %d", id)
	}
	return h.cdp.activateTarget(ctx, targetID)
}

// CloseTabs closes each tab in turn. The first failure aborts the batch; the
// caller treats a partial close as a failure of the whole set.
func (h *Host) CloseTabs(ctx context.Context, ids []int) error {
	for _, id := range ids {
		targetID, ok := h.lookupTarget(id)
		if !ok {
			return fmt.Errorf("cdphost: unknown tab id %d", id)
		}
		if err := h.cdp.closeTarget(ctx, targetID); err != nil {
			return fmt.Errorf("cdphost: close tab %d: %w", id, err)
		}
	}
	return nil
}

// FocusWindow raises the window by activating its front target. CDP has no
// direct window-focus command; in Chromium, activating a tab raises the
// window that hosts it.
func (h *Host) FocusWindow(ctx context.Context, windowID int) error {
	h.mu.Lock()
	front, ok := h.frontByWin[windowID]
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("cdphost: unknown window id %d", windowID)
	}
	return h.cdp.activateTarget(ctx, front)
}

func (h *Host) pageTargets(ctx context.Context) ([]tabTarget, error) {
	entries, err := h.cdp.listTargets(ctx)
	if err != nil {
		return nil, err
	}
	pages := entries[:0]
	for _, e := range entries {
		if e.Type == "page" {
			pages = append(pages, e)
		}
	}
	return pages, nil
}

// mapTarget converts one /json/list entry into a raw tab record, resolving
// the hosting window and registering the target under a stable integer id.
func (h *Host) mapTarget(ctx context.Context, p tabTarget, front bool) (tabdir.RawTab, error) {
	windowID, err := h.cdp.windowForTarget(ctx, p.ID)
	if err != nil {
		// Window resolution is best-effort; a tab without a resolvable
		// window still belongs in the directory.
		slog.Debug("cdphost window lookup failed", "target_id", p.ID, "error", err)
		windowID = 0
	}

	h.mu.Lock()
	id, ok := h.idByTarget[p.ID]
	if !ok {
		id = h.nextID
		h.nextID++
		h.idByTarget[p.ID] = id
		h.targetByID[id] = p.ID
	}
	if front && windowID != 0 {
		h.frontByWin[windowID] = p.ID
	} else if _, seen := h.frontByWin[windowID]; !seen && windowID != 0 {
		h.frontByWin[windowID] = p.ID
	}
	h.mu.Unlock()

	return tabdir.RawTab{
		ID:         id,
		Title:      p.Title,
		URL:        p.URL,
		FaviconURL: p.FaviconURL,
		WindowID:   windowID,
		Active:     front,
		Pinned:     false, // the DevTools protocol does not expose pin state
	}, nil
}

func (h *Host) lookupTarget(id int) (target.ID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.targetByID[id]
	return t, ok
}
