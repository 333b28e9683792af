package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dgnsrekt/tab_agent/internal/controller"
	"github.com/dgnsrekt/tab_agent/internal/render"
)

// popupHandler serves the tab list as a standalone HTML page: the filter
// query highlighted inside each title and a display-form URL per row.
func popupHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		exact := r.URL.Query().Get("mode") == "exact"
		list, err := svc.ListTabs(r.Context(), query, exact)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(popupPage(list))); err != nil {
			slog.Debug("popup response write failed", "error", err)
		}
	}
}

func popupPage(list controller.TabList) string {
	var b strings.Builder
	b.WriteString(popupHead)
	fmt.Fprintf(&b, `<input class="query" type="search" placeholder="Search tabs" value="%s" autofocus>`+"\n",
		render.EscapeHTML(list.Query))
	fmt.Fprintf(&b, `<div class="counts">%d / %d tabs</div>`+"\n", list.Filtered, list.Total)
	if len(list.Tabs) == 0 {
		if list.Suggestion != "" {
			fmt.Fprintf(&b, `<div class="empty">No matches. Did you mean <em>%s</em>?</div>`+"\n",
				render.EscapeHTML(list.Suggestion))
		} else {
			b.WriteString(`<div class="empty">No matches.</div>` + "\n")
		}
	}
	b.WriteString("<ul class=\"tabs\">\n")
	for _, tab := range list.Tabs {
		classes := "tab"
		if tab.Active {
			classes += " active"
		}
		if tab.Pinned {
			classes += " pinned"
		}
		fmt.Fprintf(&b, `<li class="%s" data-tab-id="%d">`, classes, tab.ID)
		if tab.FaviconURL != "" {
			fmt.Fprintf(&b, `<img class="favicon" src="%s" alt="">`, render.EscapeHTML(tab.FaviconURL))
		}
		fmt.Fprintf(&b, `<span class="title">%s</span>`, render.HighlightText(tab.Title, list.Query))
		fmt.Fprintf(&b, `<span class="url">%s</span>`, render.EscapeHTML(render.FormatURL(tab.URL)))
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n</body>\n</html>\n")
	return b.String()
}

const popupHead = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Tabs</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; margin: 0; padding: 8px; background: #0d1117; color: #c9d1d9; }
    .query { width: 100%; box-sizing: border-box; padding: 6px 8px; margin-bottom: 6px; background: #161b22; border: 1px solid #30363d; border-radius: 6px; color: inherit; }
    .counts { font-size: 11px; color: #8b949e; margin-bottom: 4px; }
    .empty { font-size: 13px; color: #8b949e; padding: 8px 0; }
    .tabs { list-style: none; margin: 0; padding: 0; }
    .tab { display: flex; align-items: center; gap: 8px; padding: 5px 8px; border-radius: 6px; cursor: pointer; }
    .tab.active { background: #161b22; }
    .tab.pinned .title::before { content: '\1F4CC '; }
    .favicon { width: 16px; height: 16px; }
    .title { flex: 1; white-space: nowrap; overflow: hidden; text-overflow: ellipsis; }
    .title .highlight { background: #3b2300; color: #e3b341; }
    .url { font-size: 11px; color: #8b949e; max-width: 40%; white-space: nowrap; overflow: hidden; text-overflow: ellipsis; }
  </style>
</head>
<body>
`
