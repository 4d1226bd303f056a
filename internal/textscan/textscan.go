// Package textscan provides the pure text-scanning primitives behind URL
// previews and mention rendering: URL extraction and plain/mention/url
// segmentation of composed text.
package textscan

import (
	"regexp"
	"strings"
)

// urlRe matches http/https URLs. Trailing sentence punctuation and unmatched
// closing brackets are stripped afterwards by trimTrailing.
var urlRe = regexp.MustCompile(`https?://[^\s<>"]+`)

// mentionRe matches @word mention tokens.
var mentionRe = regexp.MustCompile(`@\w+`)

// closers maps closing bracket characters to their opener.
var closers = map[byte]byte{')': '(', ']': '[', '}': '{'}

// trimTrailing strips sentence punctuation and unbalanced closing brackets
// from the end of a URL match, so "see https://x.com/a." and
// "(https://x.com/a)" both yield "https://x.com/a" while Wikipedia-style
// URLs with matched parentheses survive intact.
func trimTrailing(u string) string {
	for len(u) > 0 {
		last := u[len(u)-1]
		if strings.IndexByte(".,!?;:'", last) >= 0 {
			u = u[:len(u)-1]
			continue
		}
		if opener, ok := closers[last]; ok {
			if strings.Count(u, string(opener)) < strings.Count(u, string(last)) {
				u = u[:len(u)-1]
				continue
			}
		}
		break
	}
	return u
}

// ExtractURLs returns every http(s) URL in text in first-occurrence order.
// Duplicates are retained as found; deduplication happens downstream.
func ExtractURLs(text string) []string {
	matches := urlRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		if u := trimTrailing(m); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// ExtractMentions returns the @usernames in text, without the @ prefix, in
// first-occurrence order. Tokens inside URLs do not count as mentions.
func ExtractMentions(text string) []string {
	var names []string
	for _, seg := range Segments(text) {
		if seg.Kind == SegMention {
			names = append(names, seg.Text[1:])
		}
	}
	return names
}

// SegmentKind tags a run of text for independent styling and click handling.
type SegmentKind int

const (
	SegPlain SegmentKind = iota
	SegMention
	SegURL
)

// Segment is one run of source text.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Segments splits text into an alternating sequence of plain / mention / URL
// runs, preserving original order and whitespace. Mentions inside URLs stay
// part of the URL run.
func Segments(text string) []Segment {
	type span struct {
		start, end int
		kind       SegmentKind
	}

	var spans []span
	for _, loc := range urlRe.FindAllStringIndex(text, -1) {
		trimmed := trimTrailing(text[loc[0]:loc[1]])
		if trimmed == "" {
			continue
		}
		spans = append(spans, span{start: loc[0], end: loc[0] + len(trimmed), kind: SegURL})
	}
	for _, loc := range mentionRe.FindAllStringIndex(text, -1) {
		inURL := false
		for _, s := range spans {
			if loc[0] >= s.start && loc[0] < s.end {
				inURL = true
				break
			}
		}
		if !inURL {
			spans = append(spans, span{start: loc[0], end: loc[1], kind: SegMention})
		}
	}

	// Spans never overlap, so ordering by start is enough.
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].start < spans[j-1].start; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}

	var segs []Segment
	pos := 0
	for _, s := range spans {
		if s.start > pos {
			segs = append(segs, Segment{Kind: SegPlain, Text: text[pos:s.start]})
		}
		segs = append(segs, Segment{Kind: s.kind, Text: text[s.start:s.end]})
		pos = s.end
	}
	if pos < len(text) {
		segs = append(segs, Segment{Kind: SegPlain, Text: text[pos:]})
	}
	return segs
}
