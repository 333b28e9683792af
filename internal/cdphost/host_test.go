package cdphost

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dgnsrekt/tab_agent/internal/tabdir"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func withDefaultHTTPClient(t *testing.T, transport http.RoundTripper) {
	t.Helper()
	origClient := http.DefaultClient
	t.Cleanup(func() {
		http.DefaultClient = origClient
	})
	http.DefaultClient = &http.Client{Transport: transport}
}

func serveTargets(t *testing.T, targets []map[string]any) {
	t.Helper()
	withDefaultHTTPClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/json/list" {
			return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader(``))}, nil
		}
		payload, err := json.Marshal(targets)
		if err != nil {
			t.Fatalf("json.Marshal() = %v", err)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(string(payload))),
		}, nil
	}))
}

func TestQueryTabsMapsPageTargets(t *testing.T) {
	serveTargets(t, []map[string]any{
		{"id": "AAA", "type": "page", "title": "First", "url": "https://a.example", "faviconUrl": "https://a.example/favicon.ico"},
		{"id": "SW1", "type": "service_worker", "title": "worker", "url": "https://a.example/sw.js"},
		{"id": "BBB", "type": "page", "title": "Second", "url": "https://b.example"},
	})

	h := New("http://example.com")
	tabs, err := h.QueryTabs(context.Background(), tabdir.TabQuery{})
	if err != nil {
		t.Fatalf("QueryTabs() error = %v", err)
	}

	if len(tabs) != 2 {
		t.Fatalf("len(tabs) = %d; want 2 (service worker excluded)", len(tabs))
	}
	if tabs[0].ID != 1 || tabs[1].ID != 2 {
		t.Fatalf("ids = [%d %d]; want [1 2]", tabs[0].ID, tabs[1].ID)
	}
	if !tabs[0].Active || tabs[1].Active {
		t.Fatalf("active flags = [%v %v]; want front-most tab only", tabs[0].Active, tabs[1].Active)
	}
	if tabs[0].FaviconURL != "https://a.example/favicon.ico" {
		t.Fatalf("favicon = %q; want the /json/list value", tabs[0].FaviconURL)
	}
	if tabs[0].Pinned || tabs[1].Pinned {
		t.Fatal("pinned = true; CDP never reports pin state")
	}
}

func TestQueryTabsActiveReturnsFrontMostOnly(t *testing.T) {
	serveTargets(t, []map[string]any{
		{"id": "AAA", "type": "page", "title": "Front", "url": "https://a.example"},
		{"id": "BBB", "type": "page", "title": "Back", "url": "https://b.example"},
	})

	h := New("http://example.com")
	tabs, err := h.QueryTabs(context.Background(), tabdir.TabQuery{Active: true, CurrentWindow: true})
	if err != nil {
		t.Fatalf("QueryTabs(active) error = %v", err)
	}
	if len(tabs) != 1 || tabs[0].Title != "Front" {
		t.Fatalf("tabs = %v; want only the front-most tab", tabs)
	}
}

func TestQueryTabsKeepsIDsStableAcrossRefreshes(t *testing.T) {
	serveTargets(t, []map[string]any{
		{"id": "AAA", "type": "page", "title": "First", "url": "https://a.example"},
		{"id": "BBB", "type": "page", "title": "Second", "url": "https://b.example"},
	})

	h := New("http://example.com")
	first, err := h.QueryTabs(context.Background(), tabdir.TabQuery{})
	if err != nil {
		t.Fatalf("QueryTabs() error = %v", err)
	}

	// Same targets, reordered: the id must follow the target, not the slot.
	serveTargets(t, []map[string]any{
		{"id": "BBB", "type": "page", "title": "Second", "url": "https://b.example"},
		{"id": "AAA", "type": "page", "title": "First", "url": "https://a.example"},
	})
	second, err := h.QueryTabs(context.Background(), tabdir.TabQuery{})
	if err != nil {
		t.Fatalf("QueryTabs() error = %v", err)
	}

	if first[0].ID != second[1].ID || first[1].ID != second[0].ID {
		t.Fatalf("ids moved with slots: first = [%d %d], second = [%d %d]",
			first[0].ID, first[1].ID, second[0].ID, second[1].ID)
	}
}

func TestQueryTabsListFailure(t *testing.T) {
	withDefaultHTTPClient(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       io.NopCloser(strings.NewReader(`oops`)),
		}, nil
	}))

	h := New("http://example.com")
	if _, err := h.QueryTabs(context.Background(), tabdir.TabQuery{}); err == nil {
		t.Fatal("QueryTabs() = nil; want error when /json/list fails")
	}
}

func TestGetTabUnknownID(t *testing.T) {
	h := New("http://example.com")
	if _, err := h.GetTab(context.Background(), 99); err == nil {
		t.Fatal("GetTab(99) = nil; want unknown id error")
	}
}

func TestCloseTabsUnknownIDAbortsBatch(t *testing.T) {
	h := New("http://example.com")
	if err := h.CloseTabs(context.Background(), []int{1, 2}); err == nil {
		t.Fatal("CloseTabs() = nil; want unknown id error")
	}
}

func TestFocusWindowUnknown(t *testing.T) {
	h := New("http://example.com")
	if err := h.FocusWindow(context.Background(), 7); err == nil {
		t.Fatal("FocusWindow(7) = nil; want unknown window error")
	}
}
