// Package tabdir holds the in-memory directory of open browser tabs: the
// full tab list fetched from the host, the filtered view derived from the
// current query, and the actions that mutate host state (switch, close,
// close-others).
package tabdir

import (
	"context"
	"log/slog"
)

// DefaultTitle is substituted for tabs whose raw record carries no title.
const DefaultTitle = "Untitled"

// Directory is the single mutable state object behind both the terminal
// popup and the HTTP controller. It is not safe for concurrent use; each
// surface drives it from one goroutine.
type Directory struct {
	host  Host
	shell Shell

	all      []Tab
	filtered []Tab
	current  int // id of the host's active tab at last refresh; 0 = unknown
	query    string
	exact    bool
	sel      int
	loading  bool
	lastErr  string
}

func New(host Host, shell Shell) *Directory {
	return &Directory{host: host, shell: shell, sel: NoSelection}
}

// Refresh replaces the tab list wholesale from the host. On any host failure
// the prior list is kept and a user-visible error state is recorded. The
// loading flag is cleared on every exit path.
func (d *Directory) Refresh(ctx context.Context) error {
	d.loading = true
	defer func() { d.loading = false }()

	raw, err := d.host.QueryTabs(ctx, TabQuery{})
	if err != nil {
		slog.Warn("tab query failed", "error", err)
		d.lastErr = "could not load tabs from the browser"
		return newError(CodeHostQuery, "query tabs", err)
	}

	active, err := d.host.QueryTabs(ctx, TabQuery{Active: true, CurrentWindow: true})
	if err != nil {
		slog.Warn("active tab query failed", "error", err)
		d.lastErr = "could not load tabs from the browser"
		return newError(CodeHostQuery, "query active tab", err)
	}

	tabs := make([]Tab, 0, len(raw))
	for _, r := range raw {
		tabs = append(tabs, mapTab(r))
	}

	d.all = tabs
	d.current = 0
	if len(active) > 0 {
		d.current = active[0].ID
	}
	d.query = ""
	d.filtered = append([]Tab(nil), d.all...)
	d.sel = NoSelection
	d.lastErr = ""

	slog.Debug("tab directory refreshed", "tabs", len(d.all), "current_tab", d.current)
	return nil
}

func mapTab(r RawTab) Tab {
	t := Tab{
		ID:         r.ID,
		Title:      r.Title,
		URL:        r.URL,
		FaviconURL: r.FaviconURL,
		WindowID:   r.WindowID,
		Active:     r.Active,
		Pinned:     r.Pinned,
	}
	if t.Title == "" {
		t.Title = DefaultTitle
	}
	return t
}

// SetQuery updates the filter query and recomputes the filtered view.
func (d *Directory) SetQuery(query string) {
	d.query = normalizeQuery(query)
	d.refilter()
}

// SetExactMatch toggles whole-word matching and recomputes the filtered view.
func (d *Directory) SetExactMatch(exact bool) {
	d.exact = exact
	d.refilter()
}

func (d *Directory) refilter() {
	d.filtered = FilterTabs(d.all, d.query, d.exact)
	d.sel = NoSelection
}

// SwitchTo asks the host to activate the tab, focus its window, and then
// dismisses the popup surface. Local state is never mutated; the host owns
// the outcome.
func (d *Directory) SwitchTo(ctx context.Context, id int) error {
	if err := d.host.ActivateTab(ctx, id); err != nil {
		slog.Warn("activate tab failed", "tab_id", id, "error", err)
		return newError(CodeHostAction, "activate tab", err)
	}

	raw, err := d.host.GetTab(ctx, id)
	if err != nil {
		slog.Warn("tab lookup after activate failed", "tab_id", id, "error", err)
		return newError(CodeHostAction, "look up tab window", err)
	}
	if err := d.host.FocusWindow(ctx, raw.WindowID); err != nil {
		slog.Warn("focus window failed", "tab_id", id, "window_id", raw.WindowID, "error", err)
		return newError(CodeHostAction, "focus tab window", err)
	}

	d.shell.Close()
	return nil
}

// Close removes one tab on the host and, only on success, drops it from the
// local lists.
func (d *Directory) Close(ctx context.Context, id int) error {
	if err := d.host.CloseTabs(ctx, []int{id}); err != nil {
		slog.Warn("close tab failed", "tab_id", id, "error", err)
		return newError(CodeHostAction, "close tab", err)
	}

	d.all = removeTab(d.all, id)
	d.filtered = removeTab(d.filtered, id)
	if d.sel >= len(d.filtered) {
		d.sel = len(d.filtered) - 1
	}
	return nil
}

// CloseOthers closes every unpinned tab except the current one, behind the
// shell's confirm gate. With no known current tab the close-set is forced
// empty: a mass-close without an anchor tab is never issued. Returns the
// number of tabs requested to close.
func (d *Directory) CloseOthers(ctx context.Context) (int, error) {
	if !d.shell.Confirm("Close all other tabs? Pinned tabs are kept.") {
		return 0, nil
	}

	set := d.closeSet()
	if len(set) == 0 {
		return 0, nil
	}

	if err := d.host.CloseTabs(ctx, set); err != nil {
		slog.Warn("close other tabs failed", "count", len(set), "error", err)
		return 0, newError(CodeHostAction, "close other tabs", err)
	}

	slog.Info("closed other tabs", "count", len(set))
	if err := d.Refresh(ctx); err != nil {
		return len(set), err
	}
	return len(set), nil
}

func (d *Directory) closeSet() []int {
	if d.current == 0 {
		return nil
	}
	var ids []int
	for _, t := range d.all {
		if t.ID == d.current || t.Pinned {
			continue
		}
		ids = append(ids, t.ID)
	}
	return ids
}

func removeTab(tabs []Tab, id int) []Tab {
	out := tabs[:0]
	for _, t := range tabs {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Tabs returns the filtered view in host order.
func (d *Directory) Tabs() []Tab { return append([]Tab(nil), d.filtered...) }

// All returns the full tab list as of the last refresh.
func (d *Directory) All() []Tab { return append([]Tab(nil), d.all...) }

// Counts reports (shown, total) for the status line.
func (d *Directory) Counts() (int, int) { return len(d.filtered), len(d.all) }

func (d *Directory) Query() string { return d.query }

func (d *Directory) ExactMatch() bool { return d.exact }

func (d *Directory) CurrentTabID() int { return d.current }

func (d *Directory) Loading() bool { return d.loading }

func (d *Directory) LastError() string { return d.lastErr }

// Suggestion returns the nearest tab title by edit distance when the current
// query matched nothing, or "" otherwise.
func (d *Directory) Suggestion() string {
	if len(d.filtered) > 0 || d.query == "" {
		return ""
	}
	return NearestTitle(d.all, d.query)
}
