package tui

import (
	"strings"
	"testing"

	"github.com/fountainhq/fountain/internal/preview"
	"github.com/fountainhq/fountain/pkg/domain"
)

func TestRenderPostTextDropsMediaURLs(t *testing.T) {
	out := renderPostText("look https://x.com/cat.png and https://example.com/story")

	if strings.Contains(out, "cat.png") {
		t.Errorf("media URL should not render inline, got:\n%s", out)
	}
	if !strings.Contains(out, "https://example.com/story") {
		t.Errorf("plain link should stay inline, got:\n%s", out)
	}
}

func TestRenderPostTextKeepsMentions(t *testing.T) {
	out := renderPostText("thanks @alice!")
	if !strings.Contains(out, "@alice") {
		t.Errorf("mention missing from output:\n%s", out)
	}
}

func TestMediaBadge(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"https://x.com/a.png", "[image]"},
		{"https://x.com/a.mp4", "[video]"},
		{"https://x.com/a.gif", "[gif]"},
		{"https://example.com/story", ""},
		{"no links at all", ""},
	}
	for _, tt := range tests {
		got := mediaBadge(tt.text)
		if tt.want == "" && got != "" {
			t.Errorf("mediaBadge(%q) = %q, want empty", tt.text, got)
		}
		if tt.want != "" && !strings.Contains(got, tt.want) {
			t.Errorf("mediaBadge(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestRenderCardDegraded(t *testing.T) {
	out := renderCard(preview.Card{
		Meta:     domain.URLMetadata{URL: "https://broken.example", Kind: domain.MediaLink},
		Degraded: true,
	}, 80)

	if !strings.Contains(out, "https://broken.example") {
		t.Errorf("degraded card should show the bare URL:\n%s", out)
	}
	if strings.Count(out, "\n") != 0 {
		t.Errorf("degraded card should be a single line:\n%s", out)
	}
}

func TestRenderCardFull(t *testing.T) {
	out := renderCard(preview.Card{
		Meta: domain.URLMetadata{
			URL: "https://example.com", Kind: domain.MediaLink,
			Title: "A Title", Description: "A description", SiteName: "example.com",
		},
	}, 80)

	for _, want := range []string{"A Title", "A description", "example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}
}
