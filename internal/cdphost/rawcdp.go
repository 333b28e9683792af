package cdphost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/target"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// rawCDP is a minimal browser-level CDP client. The tab directory only needs
// browser-scope commands (Target.activateTarget, Target.closeTarget,
// Browser.getWindowForTarget), so no per-target sessions are ever attached;
// that keeps the browser free of auto-attach side effects.
type rawCDP struct {
	httpBase string // e.g. "http://127.0.0.1:9222"

	mu   sync.Mutex
	conn net.Conn
	seq  atomic.Int64

	pendingMu sync.Mutex
	pending   map[int64]chan json.RawMessage
}

// tabTarget is one entry from the /json/list endpoint. faviconUrl is
// reported by Chromium for page targets that have one.
type tabTarget struct {
	ID         target.ID `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	FaviconURL string    `json:"faviconUrl"`
}

func newRawCDP(httpBase string) *rawCDP {
	return &rawCDP{
		httpBase: strings.TrimRight(httpBase, "/"),
		pending:  make(map[int64]chan json.RawMessage),
	}
}

// connect dials the browser-level WebSocket endpoint, if not yet connected.
func (r *rawCDP) connect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn != nil {
		return nil
	}

	wsURL, err := r.browserWSURL(ctx)
	if err != nil {
		return fmt.Errorf("cdphost: browser ws url: %w", err)
	}

	slog.Debug("cdphost connecting", "ws_url", wsURL)
	conn, _, _, err := ws.Dial(ctx, wsURL)
	if err != nil {
		return fmt.Errorf("cdphost: dial: %w", err)
	}

	r.conn = conn
	r.pendingMu.Lock()
	r.pending = make(map[int64]chan json.RawMessage)
	r.pendingMu.Unlock()
	go r.readLoop()
	return nil
}

func (r *rawCDP) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn != nil {
		r.conn.Close()
		r.conn = nil
	}
}

// readLoop dispatches command responses to their waiters. CDP events carry
// no id and are dropped; nothing here subscribes to events.
func (r *rawCDP) readLoop() {
	for {
		r.mu.Lock()
		conn := r.conn
		r.mu.Unlock()
		if conn == nil {
			return
		}

		data, err := wsutil.ReadServerText(conn)
		if err != nil {
			slog.Debug("cdphost read loop exit", "error", err)
			r.failAllPending()
			return
		}

		var msg struct {
			ID int64 `json:"id"`
		}
		if json.Unmarshal(data, &msg) != nil || msg.ID == 0 {
			continue
		}

		r.pendingMu.Lock()
		ch, ok := r.pending[msg.ID]
		if ok {
			delete(r.pending, msg.ID)
		}
		r.pendingMu.Unlock()
		if ok {
			ch <- json.RawMessage(data)
		}
	}
}

func (r *rawCDP) failAllPending() {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()
	for id, ch := range r.pending {
		close(ch)
		delete(r.pending, id)
	}
}

func (r *rawCDP) deletePending(id int64) {
	r.pendingMu.Lock()
	delete(r.pending, id)
	r.pendingMu.Unlock()
}

// send issues a browser-scope CDP command and waits for the matching
// response, returning its inner result payload.
func (r *rawCDP) send(ctx context.Context, method string, params any) (json.RawMessage, error) {
	r.mu.Lock()
	conn := r.conn
	r.mu.Unlock()
	if conn == nil {
		return nil, fmt.Errorf("cdphost: not connected")
	}

	id := r.seq.Add(1)
	req := struct {
		ID     int64  `json:"id"`
		Method string `json:"method"`
		Params any    `json:"params,omitempty"`
	}{ID: id, Method: method, Params: params}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("cdphost: marshal: %w", err)
	}

	ch := make(chan json.RawMessage, 1)
	r.pendingMu.Lock()
	r.pending[id] = ch
	r.pendingMu.Unlock()

	r.mu.Lock()
	err = wsutil.WriteClientText(conn, data)
	r.mu.Unlock()
	if err != nil {
		r.deletePending(id)
		return nil, fmt.Errorf("cdphost: send: %w", err)
	}

	var raw json.RawMessage
	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, fmt.Errorf("cdphost: connection closed")
		}
		raw = resp
	case <-ctx.Done():
		r.deletePending(id)
		return nil, ctx.Err()
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("cdphost: unmarshal %s: %w", method, err)
	}
	if envelope.Error != nil {
		return nil, fmt.Errorf("cdphost: %s: %s", method, envelope.Error.Message)
	}
	return envelope.Result, nil
}

// activateTarget raises the tab (and, in Chromium, its window).
func (r *rawCDP) activateTarget(ctx context.Context, id target.ID) error {
	params := struct {
		TargetID target.ID `json:"targetId"`
	}{TargetID: id}
	_, err := r.send(ctx, "Target.activateTarget", params)
	return err
}

// closeTarget closes the tab.
func (r *rawCDP) closeTarget(ctx context.Context, id target.ID) error {
	params := struct {
		TargetID target.ID `json:"targetId"`
	}{TargetID: id}
	_, err := r.send(ctx, "Target.closeTarget", params)
	return err
}

// windowForTarget resolves the browser window hosting the tab.
func (r *rawCDP) windowForTarget(ctx context.Context, id target.ID) (int, error) {
	params := struct {
		TargetID target.ID `json:"targetId"`
	}{TargetID: id}

	raw, err := r.send(ctx, "Browser.getWindowForTarget", params)
	if err != nil {
		return 0, err
	}

	var resp struct {
		WindowID int `json:"windowId"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return 0, fmt.Errorf("cdphost: unmarshal window id: %w", err)
	}
	return resp.WindowID, nil
}

// listTargets fetches open targets via the HTTP /json/list endpoint.
// Chromium orders the list most-recently-active first.
func (r *rawCDP) listTargets(ctx context.Context) ([]tabTarget, error) {
	listCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(listCtx, http.MethodGet, r.httpBase+"/json/list", nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cdphost: /json/list: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var entries []tabTarget
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("cdphost: decode /json/list: %w", err)
	}
	return entries, nil
}

// browserWSURL fetches the WebSocket debugger URL from /json/version.
func (r *rawCDP) browserWSURL(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.httpBase+"/json/version", nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cdphost: /json/version: HTTP %d", resp.StatusCode)
	}

	var info struct {
		WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", err
	}
	if info.WebSocketDebuggerURL == "" {
		return "", fmt.Errorf("cdphost: empty webSocketDebuggerUrl")
	}
	return info.WebSocketDebuggerURL, nil
}
