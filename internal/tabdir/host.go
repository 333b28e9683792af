package tabdir

import "context"

// RawTab is a tab record as reported by the host browser. Every field except
// ID is optional; mapping into a Tab applies the documented defaults.
type RawTab struct {
	ID         int
	Title      string
	URL        string
	FaviconURL string
	WindowID   int
	Active     bool
	Pinned     bool
}

// TabQuery selects which tabs a Host query returns. The zero value matches
// all tabs; Active+CurrentWindow matches at most the front-most tab of the
// current window.
type TabQuery struct {
	Active        bool
	CurrentWindow bool
}

// Host is the browser side of the capability surface the directory depends
// on. All calls are host-authoritative: the directory never mirrors a
// mutation locally unless the host call succeeded.
type Host interface {
	QueryTabs(ctx context.Context, q TabQuery) ([]RawTab, error)
	ActivateTab(ctx context.Context, id int) error
	GetTab(ctx context.Context, id int) (RawTab, error)
	FocusWindow(ctx context.Context, windowID int) error
	CloseTabs(ctx context.Context, ids []int) error
}

// Shell is the UI side of the capability surface: dismissing the popup
// surface and gating destructive actions behind a yes/no prompt.
type Shell interface {
	Close()
	Confirm(message string) bool
}
