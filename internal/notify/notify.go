// Package notify posts plain-text messages to an ntfy-style endpoint. The
// controller uses it to announce bulk tab closes when an endpoint is
// configured.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// BulkCloseMessage formats the announcement sent after a close-others run.
func BulkCloseMessage(closed, remaining int) string {
	return fmt.Sprintf("tab_agent closed %d tabs; %d remaining", closed, remaining)
}

// Send posts a message to the endpoint using HTTP POST. A nil client falls
// back to http.DefaultClient.
func Send(ctx context.Context, client *http.Client, endpoint, message string) error {
	c := client
	if c == nil {
		c = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(message))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ntfy notification failed: status=%d", resp.StatusCode)
	}
	return nil
}
