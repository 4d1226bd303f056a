package textscan

import (
	"reflect"
	"testing"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"no urls", "just plain text", nil},
		{"single url", "see https://example.com/a", []string{"https://example.com/a"}},
		{"http scheme", "go http://example.com", []string{"http://example.com"}},
		{"trailing period", "read https://example.com/a.", []string{"https://example.com/a"}},
		{"trailing comma", "https://example.com/a, and more", []string{"https://example.com/a"}},
		{"trailing question mark", "seen https://example.com/a?", []string{"https://example.com/a"}},
		{"wrapped in parens", "(https://example.com/a)", []string{"https://example.com/a"}},
		{"matched parens survive", "https://en.wikipedia.org/wiki/Go_(game)", []string{"https://en.wikipedia.org/wiki/Go_(game)"}},
		{"matched parens then period", "https://en.wikipedia.org/wiki/Go_(game).", []string{"https://en.wikipedia.org/wiki/Go_(game)"}},
		{"trailing bracket", "[https://example.com/a]", []string{"https://example.com/a"}},
		{"two urls ordered", "a https://one.com b https://two.com", []string{"https://one.com", "https://two.com"}},
		{"duplicates retained", "https://one.com and https://one.com", []string{"https://one.com", "https://one.com"}},
		{"query string kept", "https://example.com/a?w=200&h=100", []string{"https://example.com/a?w=200&h=100"}},
		{"not a scheme", "visit example.com today", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractURLs(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractURLs(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractURLsIdempotent(t *testing.T) {
	text := "see (https://example.com/a). and https://en.wikipedia.org/wiki/Go_(game)"
	first := ExtractURLs(text)
	second := ExtractURLs(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ExtractURLs not idempotent: %v vs %v", first, second)
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Segment
	}{
		{"empty", "", nil},
		{"plain only", "hello world", []Segment{{SegPlain, "hello world"}}},
		{"mention only", "@alice", []Segment{{SegMention, "@alice"}}},
		{
			"mention in sentence",
			"hi @alice how are you",
			[]Segment{{SegPlain, "hi "}, {SegMention, "@alice"}, {SegPlain, " how are you"}},
		},
		{
			"url in sentence",
			"see https://x.com/a now",
			[]Segment{{SegPlain, "see "}, {SegURL, "https://x.com/a"}, {SegPlain, " now"}},
		},
		{
			"mention and url",
			"@bob check https://x.com/a",
			[]Segment{{SegMention, "@bob"}, {SegPlain, " check "}, {SegURL, "https://x.com/a"}},
		},
		{
			"at-sign inside url stays url",
			"https://x.com/@alice/post",
			[]Segment{{SegURL, "https://x.com/@alice/post"}},
		},
		{
			"trailing punctuation returns to plain",
			"read https://x.com/a.",
			[]Segment{{SegPlain, "read "}, {SegURL, "https://x.com/a"}, {SegPlain, "."}},
		},
		{
			"whitespace preserved",
			"a  @b  c",
			[]Segment{{SegPlain, "a  "}, {SegMention, "@b"}, {SegPlain, "  c"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Segments(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segments(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSegmentsRoundTrip(t *testing.T) {
	// Concatenating all segments must reproduce the input exactly.
	inputs := []string{
		"hi @alice see https://x.com/a. then (https://y.com/b) ok",
		"@a@b", // adjacent mentions
		"no special content here",
	}
	for _, text := range inputs {
		var rebuilt string
		for _, s := range Segments(text) {
			rebuilt += s.Text
		}
		if rebuilt != text {
			t.Errorf("Segments round trip: got %q, want %q", rebuilt, text)
		}
	}
}

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "thanks @alice and @bob", []string{"alice", "bob"}},
		{"inside url skipped", "see https://x.com/@alice/post and @bob", []string{"bob"}},
		{"adjacent", "@a@b", []string{"a", "b"}},
		{"none", "no mentions here", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMentions(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractMentions(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ExtractMentions(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}
