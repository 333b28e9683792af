package render

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<x>", "&lt;x&gt;"},
		{"A & B", "A &amp; B"},
		{`say "hi"`, "say &quot;hi&quot;"},
		{"it's", "it&#039;s"},
		{"&lt;", "&amp;lt;"}, // already-escaped text is escaped again, not trusted
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EscapeHTML(tt.in); got != tt.want {
			t.Fatalf("EscapeHTML(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestHighlightTextWrapsMatchesCaseInsensitively(t *testing.T) {
	got := HighlightText("Hello World", "world")
	want := `Hello <span class="highlight">World</span>`
	if got != want {
		t.Fatalf("HighlightText() = %q; want %q", got, want)
	}
}

func TestHighlightTextAllOccurrences(t *testing.T) {
	got := HighlightText("go Go GO", "go")
	want := `<span class="highlight">go</span> <span class="highlight">Go</span> <span class="highlight">GO</span>`
	if got != want {
		t.Fatalf("HighlightText() = %q; want %q", got, want)
	}
}

func TestHighlightTextEmptyQueryEscapesOnly(t *testing.T) {
	if got, want := HighlightText("a < b", ""), "a &lt; b"; got != want {
		t.Fatalf("HighlightText(text, \"\") = %q; want %q", got, want)
	}
}

func TestHighlightTextEmptyText(t *testing.T) {
	if got := HighlightText("", "query"); got != "" {
		t.Fatalf("HighlightText(\"\", query) = %q; want empty", got)
	}
}

func TestHighlightTextEscapesAroundMatches(t *testing.T) {
	got := HighlightText("<b>bold</b>", "bold")
	want := `&lt;b&gt;<span class="highlight">bold</span>&lt;/b&gt;`
	if got != want {
		t.Fatalf("HighlightText() = %q; want %q", got, want)
	}
}

func TestHighlightTextQueryWithMarkupCharacters(t *testing.T) {
	got := HighlightText("tom & jerry", "&")
	want := `tom <span class="highlight">&amp;</span> jerry`
	if got != want {
		t.Fatalf("HighlightText() = %q; want %q", got, want)
	}
}

func TestMatchRanges(t *testing.T) {
	tests := []struct {
		text  string
		query string
		want  []Range
	}{
		{"Hello World", "world", []Range{{6, 11}}},
		{"aaaa", "aa", []Range{{0, 2}, {2, 4}}}, // non-overlapping, left to right
		{"abc", "zzz", nil},
		{"", "x", nil},
		{"abc", "", nil},
	}
	for _, tt := range tests {
		got := MatchRanges(tt.text, tt.query)
		if len(got) != len(tt.want) {
			t.Fatalf("MatchRanges(%q, %q) = %v; want %v", tt.text, tt.query, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("MatchRanges(%q, %q)[%d] = %v; want %v", tt.text, tt.query, i, got[i], tt.want[i])
			}
		}
	}
}

func TestFormatURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.example.com/path?x=1", "www.example.com/path"},
		{"https://example.com/a/b#frag", "example.com/a/b"},
		{"https://example.com", "example.com/"},
		{"http://localhost:9220/json/list", "localhost/json/list"},
		{"not-a-url", "not-a-url"},
		{"/relative/path", "/relative/path"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatURL(tt.in); got != tt.want {
			t.Fatalf("FormatURL(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
