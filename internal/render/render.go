// Package render holds the display-formatting helpers shared by the HTML
// popup view and the terminal UI. Tab titles and URLs are never trusted as
// markup: everything interpolated into HTML goes through EscapeHTML.
package render

import (
	"net/url"
	"strings"
)

// htmlEscaper runs every substitution in a single pass, so entities it
// emits are never re-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML maps &, <, >, " and ' to their entity equivalents.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// Range is a half-open [Start, End) byte range into a string.
type Range struct {
	Start int
	End   int
}

// MatchRanges returns every case-insensitive occurrence of query in text, in
// order, without overlaps. Empty query or text yields nil.
func MatchRanges(text, query string) []Range {
	if text == "" || query == "" {
		return nil
	}

	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	if len(lowerText) != len(text) || len(lowerQuery) != len(query) {
		// Lowercasing changed byte lengths (rare non-ASCII case folds), so
		// lowered indexes no longer map back onto the original string. Skip
		// highlighting rather than slice at the wrong byte.
		return nil
	}

	var ranges []Range
	for from := 0; ; {
		i := strings.Index(lowerText[from:], lowerQuery)
		if i < 0 {
			return ranges
		}
		start := from + i
		end := start + len(lowerQuery)
		ranges = append(ranges, Range{Start: start, End: end})
		from = end
	}
}

// HighlightText returns escaped text with every case-insensitive occurrence
// of the query wrapped in a highlight span. The matched text keeps its
// original case. An empty query returns the escaped text unchanged; empty
// text returns "".
func HighlightText(text, query string) string {
	if text == "" {
		return ""
	}
	if query == "" {
		return EscapeHTML(text)
	}

	var b strings.Builder
	last := 0
	for _, r := range MatchRanges(text, query) {
		b.WriteString(EscapeHTML(text[last:r.Start]))
		b.WriteString(`<span class="highlight">`)
		b.WriteString(EscapeHTML(text[r.Start:r.End]))
		b.WriteString(`</span>`)
		last = r.End
	}
	b.WriteString(EscapeHTML(text[last:]))
	return b.String()
}

// FormatURL reduces an absolute URL to hostname + path, dropping the query
// string and fragment. Strings that do not parse as absolute URLs come back
// unchanged.
func FormatURL(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return rawurl
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return u.Hostname() + path
}
