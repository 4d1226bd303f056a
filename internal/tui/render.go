package tui

import (
	"strings"

	"github.com/fountainhq/fountain/internal/preview"
	"github.com/fountainhq/fountain/internal/textscan"
	"github.com/fountainhq/fountain/pkg/domain"
)

// renderPostText styles mentions and URLs inline. Direct media URLs are
// dropped from the text; they show up as attachment cards instead.
func renderPostText(text string) string {
	var b strings.Builder
	for _, seg := range textscan.Segments(text) {
		switch seg.Kind {
		case textscan.SegMention:
			b.WriteString(mentionStyle.Render(seg.Text))
		case textscan.SegURL:
			if domain.ClassifyMedia(seg.Text) != domain.MediaLink {
				continue
			}
			b.WriteString(linkStyle.Render(seg.Text))
		default:
			b.WriteString(normalStyle.Render(seg.Text))
		}
	}
	return b.String()
}

// mediaBadge returns a short label for a post's direct media attachments.
func mediaBadge(text string) string {
	var labels []string
	for _, u := range textscan.ExtractURLs(text) {
		switch domain.ClassifyMedia(u) {
		case domain.MediaImage:
			labels = append(labels, "[image]")
		case domain.MediaVideo:
			labels = append(labels, "[video]")
		case domain.MediaGIF:
			labels = append(labels, "[gif]")
		}
	}
	if len(labels) == 0 {
		return ""
	}
	return dimStyle.Render(strings.Join(labels, " "))
}

// renderCard renders one preview card for the composer and detail views.
// Cards that carry nothing beyond the bare URL collapse to a single line.
func renderCard(c preview.Card, width int) string {
	w := width - 4
	if w < 20 {
		w = 20
	}

	if c.Degraded || !preview.ShouldRenderCard(c.Meta) {
		return " " + cardBorderStyle.Render("┊ ") + degradedStyle.Render(truncStr(c.Meta.URL, w))
	}

	var b strings.Builder
	switch c.Meta.Kind {
	case domain.MediaImage, domain.MediaGIF:
		b.WriteString(" " + cardBorderStyle.Render("┊ ") + cardSiteStyle.Render("image") + " " + dimStyle.Render(truncStr(c.Meta.URL, w-6)))
	case domain.MediaVideo:
		b.WriteString(" " + cardBorderStyle.Render("┊ ") + cardSiteStyle.Render("video") + " " + dimStyle.Render(truncStr(c.Meta.URL, w-6)))
	default:
		if c.Meta.Title != "" {
			b.WriteString(" " + cardBorderStyle.Render("┊ ") + cardTitleStyle.Render(truncStr(c.Meta.Title, w)))
		}
		if c.Meta.Description != "" {
			b.WriteString("\n " + cardBorderStyle.Render("┊ ") + cardDescStyle.Render(truncStr(c.Meta.Description, w)))
		}
		site := c.Meta.SiteName
		if site == "" {
			site = truncStr(c.Meta.URL, w)
		}
		b.WriteString("\n " + cardBorderStyle.Render("┊ ") + cardSiteStyle.Render(truncStr(site, w)))
	}
	return b.String()
}
