package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fountainhq/fountain/pkg/client"
	"github.com/fountainhq/fountain/pkg/domain"
)

// alertsPollInterval is how often notifications auto-refresh.
const alertsPollInterval = 30 * time.Second

type alertsTickMsg time.Time

func alertsTickCmd() tea.Cmd {
	return tea.Tick(alertsPollInterval, func(t time.Time) tea.Msg {
		return alertsTickMsg(t)
	})
}

type alertsLoadedMsg struct {
	notifs []domain.Notification
	err    error
}

type alertReadMsg struct {
	id  string
	all bool
	err error
}

type alertsModel struct {
	client  *client.Client
	notifs  []domain.Notification
	cursor  int
	loading bool
	err     string
	width   int
	height  int
}

func newAlertsModel(c *client.Client) alertsModel {
	return alertsModel{client: c, loading: true}
}

func (m alertsModel) Init() tea.Cmd {
	return m.load()
}

func (m alertsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		notifs, err := c.GetNotifications(context.Background())
		return alertsLoadedMsg{notifs: notifs, err: err}
	}
}

// unread returns how many notifications are still unread; the tab bar
// shows it as a badge.
func (m alertsModel) unread() int {
	n := 0
	for _, a := range m.notifs {
		if !a.Read {
			n++
		}
	}
	return n
}

func (m alertsModel) Update(msg tea.Msg) (alertsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case alertsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.notifs = msg.notifs
			m.err = ""
			if m.cursor >= len(m.notifs) {
				m.cursor = 0
			}
		}
		return m, alertsTickCmd()

	case alertsTickMsg:
		return m, m.load()

	case alertReadMsg:
		// Marked optimistically; a failure just resyncs on the next poll.
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m alertsModel) updateKeys(msg tea.KeyMsg) (alertsModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.notifs)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r", "enter":
		if m.cursor < len(m.notifs) && !m.notifs[m.cursor].Read {
			m.notifs[m.cursor].Read = true
			id := m.notifs[m.cursor].ID
			c := m.client
			return m, func() tea.Msg {
				return alertReadMsg{id: id, err: c.ReadNotification(context.Background(), id)}
			}
		}
	case "a":
		if m.unread() > 0 {
			for i := range m.notifs {
				m.notifs[i].Read = true
			}
			c := m.client
			return m, func() tea.Msg {
				return alertReadMsg{all: true, err: c.ReadAllNotifications(context.Background())}
			}
		}
	}
	return m, nil
}

// alertLine describes what the actor did, per notification type.
func alertLine(n domain.Notification) string {
	actor := "someone"
	if n.Actor != nil {
		actor = "@" + n.Actor.Username
	}
	switch n.Type {
	case domain.NotifLike:
		return actor + " liked your post"
	case domain.NotifDislike:
		return actor + " disliked your post"
	case domain.NotifComment:
		return actor + " commented on your post"
	case domain.NotifMention:
		return actor + " mentioned you"
	case domain.NotifFollow:
		return actor + " followed you"
	default:
		return actor + " " + n.Type
	}
}

func (m alertsModel) View() string {
	if m.loading && len(m.notifs) == 0 {
		return " " + dimStyle.Render("loading alerts...")
	}
	if m.err != "" {
		return " " + errStyle.Render("error: "+m.err)
	}
	if len(m.notifs) == 0 {
		return " " + dimStyle.Render("all quiet")
	}

	var b strings.Builder
	maxRows := m.height - 1
	if maxRows < 5 {
		maxRows = 10
	}

	for i := 0; i < len(m.notifs) && i < maxRows; i++ {
		n := m.notifs[i]

		dot := " "
		if !n.Read {
			dot = unreadDotStyle.Render("●")
		}
		line := fmt.Sprintf("%s %s %s",
			dot,
			notifStyle(n.Type).Render(alertLine(n)),
			metaStyle.Render(formatTime(n.CreatedAt)))
		if n.Preview != "" {
			line += "  " + dimStyle.Render(`"`+truncStr(n.Preview, 40)+`"`)
		}

		if i == m.cursor {
			b.WriteString(" " + accentStyle.Render(">") + " " + line + "\n")
		} else {
			b.WriteString("   " + line + "\n")
		}
	}
	return b.String()
}
