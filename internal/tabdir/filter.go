package tabdir

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// FilterTabs returns the tabs whose title or URL match the query, preserving
// input order. The empty (or whitespace-only) query matches everything. In
// exact mode the query must appear as a whole word bounded by non-word
// characters; otherwise plain case-insensitive substring matching applies.
// Pure function of its inputs.
func FilterTabs(tabs []Tab, query string, exact bool) []Tab {
	q := normalizeQuery(query)
	if q == "" {
		return append([]Tab(nil), tabs...)
	}

	var wordRE *regexp.Regexp
	if exact {
		wordRE = regexp.MustCompile(`\b` + regexp.QuoteMeta(q) + `\b`)
	}

	out := make([]Tab, 0, len(tabs))
	for _, t := range tabs {
		title := strings.ToLower(t.Title)
		url := strings.ToLower(t.URL)
		if exact {
			if wordRE.MatchString(title) || wordRE.MatchString(url) {
				out = append(out, t)
			}
			continue
		}
		if strings.Contains(title, q) || strings.Contains(url, q) {
			out = append(out, t)
		}
	}
	return out
}

// NearestTitle picks the tab title closest to the query by edit distance,
// for the "no matches" hint. Returns "" when there is nothing to suggest.
func NearestTitle(tabs []Tab, query string) string {
	q := normalizeQuery(query)
	if q == "" || len(tabs) == 0 {
		return ""
	}

	best := ""
	bestDist := -1
	for _, t := range tabs {
		dist := levenshtein.ComputeDistance(q, strings.ToLower(t.Title))
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = t.Title
		}
	}
	return best
}
