package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fountainhq/fountain/pkg/domain"
)

func newTestAlertsModel() alertsModel {
	m := newAlertsModel(nil)
	m.width = 80
	m.height = 24
	return m
}

func makeNotif(id, kind, actor string, read bool) domain.Notification {
	return domain.Notification{
		ID:        id,
		Type:      kind,
		Actor:     &domain.Profile{Username: actor},
		Read:      read,
		CreatedAt: time.Now(),
	}
}

func TestAlertsLoaded(t *testing.T) {
	m := newTestAlertsModel()
	m, _ = m.Update(alertsLoadedMsg{notifs: []domain.Notification{
		makeNotif("n1", domain.NotifLike, "bob", false),
		makeNotif("n2", domain.NotifMention, "carol", true),
	}})

	view := m.View()
	if !strings.Contains(view, "@bob liked your post") {
		t.Errorf("expected like line, got:\n%s", view)
	}
	if !strings.Contains(view, "@carol mentioned you") {
		t.Errorf("expected mention line, got:\n%s", view)
	}
	if m.unread() != 1 {
		t.Errorf("unread = %d, want 1", m.unread())
	}
}

func TestAlertsLoadedWithError(t *testing.T) {
	m := newTestAlertsModel()
	m, _ = m.Update(alertsLoadedMsg{err: errors.New("timeout")})

	if !strings.Contains(m.View(), "timeout") {
		t.Errorf("expected error in view:\n%s", m.View())
	}
}

func TestAlertsEmpty(t *testing.T) {
	m := newTestAlertsModel()
	m, _ = m.Update(alertsLoadedMsg{notifs: nil})

	if !strings.Contains(m.View(), "all quiet") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}
}

func TestAlertsMarkRead(t *testing.T) {
	m := newTestAlertsModel()
	m, _ = m.Update(alertsLoadedMsg{notifs: []domain.Notification{
		makeNotif("n1", domain.NotifLike, "bob", false),
	}})

	m, cmd := m.Update(keyRunes("r"))
	if cmd == nil {
		t.Fatal("marking read should issue a request")
	}
	if !m.notifs[0].Read {
		t.Error("notification should be marked read optimistically")
	}

	// Already read: nothing to do.
	m, cmd = m.Update(keyRunes("r"))
	if cmd != nil {
		t.Error("marking an already-read notification should do nothing")
	}
}

func TestAlertsMarkAllRead(t *testing.T) {
	m := newTestAlertsModel()
	m, _ = m.Update(alertsLoadedMsg{notifs: []domain.Notification{
		makeNotif("n1", domain.NotifLike, "bob", false),
		makeNotif("n2", domain.NotifComment, "carol", false),
	}})

	m, cmd := m.Update(keyRunes("a"))
	if cmd == nil {
		t.Fatal("read-all should issue a request")
	}
	if m.unread() != 0 {
		t.Errorf("unread = %d, want 0", m.unread())
	}
}
