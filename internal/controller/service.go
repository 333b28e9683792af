// Package controller implements the HTTP-facing service on top of the
// tab directory. All directory access goes through a single mutex since
// the directory itself is built for a single-owner event loop.
package controller

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dgnsrekt/tab_agent/internal/cdphost"
	"github.com/dgnsrekt/tab_agent/internal/notify"
	"github.com/dgnsrekt/tab_agent/internal/tabdir"
)

// TabList is the result of a directory query.
type TabList struct {
	Tabs       []tabdir.Tab `json:"tabs"`
	Filtered   int          `json:"filtered"`
	Total      int          `json:"total"`
	Query      string       `json:"query"`
	ExactMatch bool         `json:"exact_match"`
	Suggestion string       `json:"suggestion,omitempty"`
}

// CloseOthersResult reports the outcome of a bulk close.
type CloseOthersResult struct {
	Closed    int `json:"closed"`
	Remaining int `json:"remaining"`
}

// Service wraps tab directory operations for the API layer.
type Service struct {
	mu      sync.Mutex
	dir     *tabdir.Directory
	cdpURL  string
	ntfyURL string
}

// confirmShell satisfies the directory's shell surface for a stateless
// HTTP caller: there is no popup to close, and consent is collected in
// the request body before the bulk-close operation is ever invoked.
type confirmShell struct{}

func (confirmShell) Close()              {}
func (confirmShell) Confirm(string) bool { return true }

func NewService(host tabdir.Host, cdpURL, ntfyURL string) *Service {
	return &Service{
		dir:     tabdir.New(host, confirmShell{}),
		cdpURL:  cdpURL,
		ntfyURL: ntfyURL,
	}
}

func (s *Service) Refresh(ctx context.Context) (TabList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dir.Refresh(ctx); err != nil {
		return TabList{}, err
	}
	return s.listLocked(), nil
}

// ListTabs applies the query and mode to the current snapshot. It does
// not hit the browser; callers refresh explicitly.
func (s *Service) ListTabs(ctx context.Context, query string, exact bool) (TabList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dir.SetExactMatch(exact)
	s.dir.SetQuery(query)
	return s.listLocked(), nil
}

func (s *Service) listLocked() TabList {
	filtered, total := s.dir.Counts()
	out := TabList{
		Tabs:       s.dir.Tabs(),
		Filtered:   filtered,
		Total:      total,
		Query:      s.dir.Query(),
		ExactMatch: s.dir.ExactMatch(),
	}
	if filtered == 0 && total > 0 {
		out.Suggestion = s.dir.Suggestion()
	}
	return out
}

func (s *Service) ActiveTab(ctx context.Context) (tabdir.Tab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.dir.CurrentTabID()
	if current == 0 {
		return tabdir.Tab{}, &tabdir.CodedError{Code: tabdir.CodeTabNotFound, Message: "no active tab known; refresh first"}
	}
	for _, t := range s.dir.All() {
		if t.ID == current {
			return t, nil
		}
	}
	return tabdir.Tab{}, &tabdir.CodedError{Code: tabdir.CodeTabNotFound, Message: "active tab no longer present"}
}

func (s *Service) ActivateTab(ctx context.Context, id int) error {
	if id <= 0 {
		return &tabdir.CodedError{Code: tabdir.CodeValidation, Message: "tab_id must be positive"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir.SwitchTo(ctx, id)
}

func (s *Service) CloseTab(ctx context.Context, id int) error {
	if id <= 0 {
		return &tabdir.CodedError{Code: tabdir.CodeValidation, Message: "tab_id must be positive"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir.Close(ctx, id)
}

// CloseOthers closes every unpinned tab except the current one. The
// confirm flag is the caller's explicit consent; without it the request
// is rejected before anything is touched.
func (s *Service) CloseOthers(ctx context.Context, confirm bool) (CloseOthersResult, error) {
	if !confirm {
		return CloseOthersResult{}, &tabdir.CodedError{Code: tabdir.CodeValidation, Message: "close-others requires confirm=true"}
	}
	s.mu.Lock()
	closed, err := s.dir.CloseOthers(ctx)
	_, remaining := s.dir.Counts()
	s.mu.Unlock()
	if err != nil {
		return CloseOthersResult{}, err
	}
	if closed > 0 && s.ntfyURL != "" {
		msg := notify.BulkCloseMessage(closed, remaining)
		if err := notify.Send(ctx, http.DefaultClient, s.ntfyURL, msg); err != nil {
			slog.Warn("bulk close notification failed", "error", err)
		}
	}
	return CloseOthersResult{Closed: closed, Remaining: remaining}, nil
}

func (s *Service) DeepHealthCheck(ctx context.Context) (cdphost.DeepHealthResult, error) {
	return cdphost.DeepHealth(ctx, s.cdpURL)
}
