package tabdir

import (
	"strings"
	"testing"
)

func sampleTabs() []Tab {
	return []Tab{
		{ID: 1, Title: "Go Documentation", URL: "https://go.dev/doc/"},
		{ID: 2, Title: "Issue tracker", URL: "https://github.com/golang/go/issues"},
		{ID: 3, Title: "News", URL: "https://example.com/news"},
		{ID: 4, Title: "gopher drawings", URL: "https://example.com/art"},
	}
}

func ids(tabs []Tab) []int {
	out := make([]int, 0, len(tabs))
	for _, t := range tabs {
		out = append(out, t.ID)
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterTabsEmptyQueryMatchesAll(t *testing.T) {
	tabs := sampleTabs()
	for _, q := range []string{"", "   ", "\t"} {
		got := FilterTabs(tabs, q, false)
		if !equalIDs(ids(got), ids(tabs)) {
			t.Fatalf("FilterTabs(tabs, %q) = %v; want all tabs", q, ids(got))
		}
	}
}

func TestFilterTabsSubstringMatchesTitleOrURL(t *testing.T) {
	tabs := sampleTabs()

	tests := []struct {
		query string
		want  []int
	}{
		{"go", []int{1, 2, 4}}, // title, url, and title matches
		{"github", []int{2}},   // url only
		{"news", []int{3}},     // both fields of one tab
		{"drawings", []int{4}}, // title only
		{"zzz", nil},           // no match
	}
	for _, tt := range tests {
		got := ids(FilterTabs(tabs, tt.query, false))
		if !equalIDs(got, tt.want) {
			t.Fatalf("FilterTabs(tabs, %q) = %v; want %v", tt.query, got, tt.want)
		}
	}
}

func TestFilterTabsCaseInsensitive(t *testing.T) {
	tabs := sampleTabs()
	base := ids(FilterTabs(tabs, "go", false))
	for _, q := range []string{"GO", "Go", "gO"} {
		got := ids(FilterTabs(tabs, q, false))
		if !equalIDs(got, base) {
			t.Fatalf("FilterTabs(tabs, %q) = %v; want %v", q, got, base)
		}
	}
}

func TestFilterTabsPreservesOrder(t *testing.T) {
	tabs := sampleTabs()
	got := ids(FilterTabs(tabs, "example", false))
	if !equalIDs(got, []int{3, 4}) {
		t.Fatalf("FilterTabs(tabs, \"example\") = %v; want [3 4] in input order", got)
	}
}

func TestFilterTabsExactWordMode(t *testing.T) {
	tabs := []Tab{
		{ID: 1, Title: "Go Documentation"},
		{ID: 2, Title: "gopher drawings"},
		{ID: 3, Title: "Let's go!"},
	}

	got := ids(FilterTabs(tabs, "go", true))
	if !equalIDs(got, []int{1, 3}) {
		t.Fatalf("exact FilterTabs(tabs, \"go\") = %v; want [1 3]", got)
	}

	// Substring mode still matches the embedded occurrence.
	got = ids(FilterTabs(tabs, "go", false))
	if !equalIDs(got, []int{1, 2, 3}) {
		t.Fatalf("substring FilterTabs(tabs, \"go\") = %v; want [1 2 3]", got)
	}
}

func TestFilterTabsQueryWithRegexpMetacharacters(t *testing.T) {
	tabs := []Tab{{ID: 1, Title: "C++ reference", URL: "https://cppreference.com"}}
	got := ids(FilterTabs(tabs, "c++", true))
	if !equalIDs(got, nil) {
		// "c++" ends in non-word characters, so \b...\b cannot match, but it
		// must not blow up the pattern either.
		t.Fatalf("exact FilterTabs(tabs, \"c++\") = %v; want none", got)
	}
	got = ids(FilterTabs(tabs, "c++", false))
	if !equalIDs(got, []int{1}) {
		t.Fatalf("substring FilterTabs(tabs, \"c++\") = %v; want [1]", got)
	}
}

func TestFilterTabsIsSubsequence(t *testing.T) {
	tabs := sampleTabs()
	for _, q := range []string{"", "go", "e", "zzz", "https"} {
		got := FilterTabs(tabs, q, false)
		pos := 0
		for _, f := range got {
			found := false
			for ; pos < len(tabs); pos++ {
				if tabs[pos].ID == f.ID {
					found = true
					pos++
					break
				}
			}
			if !found {
				t.Fatalf("FilterTabs(tabs, %q) is not an order-preserving subsequence: %v", q, ids(got))
			}
		}
	}
}

func TestNearestTitle(t *testing.T) {
	tabs := []Tab{
		{ID: 1, Title: "Release notes"},
		{ID: 2, Title: "Weekly report"},
	}
	if got := NearestTitle(tabs, "releose"); got != "Release notes" {
		t.Fatalf("NearestTitle() = %q; want %q", got, "Release notes")
	}
	if got := NearestTitle(nil, "anything"); got != "" {
		t.Fatalf("NearestTitle(nil) = %q; want empty", got)
	}
	if got := NearestTitle(tabs, "  "); got != "" {
		t.Fatalf("NearestTitle(blank) = %q; want empty", got)
	}
}

func TestFilterTabsDoesNotModifyInput(t *testing.T) {
	tabs := sampleTabs()
	before := strings.Join([]string{tabs[0].Title, tabs[1].Title}, "|")
	_ = FilterTabs(tabs, "go", false)
	after := strings.Join([]string{tabs[0].Title, tabs[1].Title}, "|")
	if before != after {
		t.Fatalf("FilterTabs mutated its input: %q != %q", before, after)
	}
}
