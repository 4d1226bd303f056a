package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fountainhq/fountain/pkg/domain"
)

func newTestApp() App {
	a := NewApp(nil, "test")
	a.width = 80
	a.height = 30
	return a
}

func TestAppTabSwitching(t *testing.T) {
	tests := []struct {
		key      string
		wantView view
	}{
		{"2", viewAlerts},
		{"3", viewYou},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			app := newTestApp()
			model, _ := app.Update(keyRunes(tc.key))
			a := model.(App)
			if a.view != tc.wantView {
				t.Errorf("after key %q: expected view=%d, got %d", tc.key, tc.wantView, a.view)
			}
		})
	}
}

func TestAppComposeOpenAndClose(t *testing.T) {
	a := newTestApp()

	model, _ := a.Update(keyRunes("n"))
	a = model.(App)
	if a.view != viewCompose {
		t.Fatalf("expected compose view after 'n', got %d", a.view)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.view != viewFeed {
		t.Errorf("expected feed view after esc, got %d", a.view)
	}
}

func TestAppEscInComposeDismissesSuggestionsFirst(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(keyRunes("n"))
	a = model.(App)

	model, _ = a.Update(keyRunes("@"))
	a = model.(App)
	if !a.compose.editor.Mentioning() {
		t.Fatal("expected suggestion mode after '@'")
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.view != viewCompose {
		t.Error("first esc should stay in compose and only dismiss suggestions")
	}
	if a.compose.editor.Mentioning() {
		t.Error("suggestions should be dismissed")
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.view != viewFeed {
		t.Error("second esc should leave compose")
	}
}

func TestAppGlobalQuitOnQ(t *testing.T) {
	a := newTestApp()
	_, cmd := a.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
}

func TestAppEditingBlocksGlobalKeys(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(keyRunes("n"))
	a = model.(App)

	// 'q' is just a letter while composing.
	model, _ = a.Update(keyRunes("q"))
	a = model.(App)
	if a.view != viewCompose {
		t.Error("'q' while composing must not leave the view")
	}
	if a.compose.editor.Text() != "q" {
		t.Errorf("expected 'q' typed into the draft, got %q", a.compose.editor.Text())
	}
}

func TestAppCommentingBlocksTabSwitch(t *testing.T) {
	a := newTestApp()
	p := domain.Post{ID: "p1", Author: &domain.Profile{Username: "alice"}, Text: "x", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	model, _ := a.Update(postLoadedMsg{post: &p})
	a = model.(App)
	model, _ = a.Update(keyRunes("c"))
	a = model.(App)

	model, _ = a.Update(keyRunes("2"))
	a = model.(App)
	if a.view != viewFeed {
		t.Error("tab keys must not fire while writing a comment")
	}
	if a.feed.comment.Text() != "2" {
		t.Errorf("expected '2' typed into the comment, got %q", a.feed.comment.Text())
	}
}

func TestAppHelpOverlayCapturesKeys(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(keyRunes("h"))
	a = model.(App)
	if !a.helpOpen {
		t.Fatal("expected help overlay open")
	}

	model, _ = a.Update(keyRunes("2"))
	a = model.(App)
	if a.view != viewFeed {
		t.Error("help overlay should capture tab keys")
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.helpOpen {
		t.Error("esc should close the help overlay")
	}
}

func TestAppViewRendersChrome(t *testing.T) {
	a := newTestApp()
	a.me = &domain.Profile{Username: "alice"}
	a.feed.posts = []domain.Post{
		{ID: "p1", Author: &domain.Profile{Username: "bob"}, Text: "hi", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)},
	}

	view := a.View()
	if view == "" {
		t.Fatal("empty view")
	}
	// Tab labels present
	for _, want := range []string{"Feed", "Alerts", "You"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing tab %q", want)
		}
	}
}
