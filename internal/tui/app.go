package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fountainhq/fountain/internal/browser"
	"github.com/fountainhq/fountain/pkg/client"
	"github.com/fountainhq/fountain/pkg/domain"
)

type view int

const (
	viewFeed view = iota
	viewAlerts
	viewYou
	viewCompose
)

// meLoadedMsg carries the signed-in profile.
type meLoadedMsg struct {
	me  *domain.Profile
	err error
}

// App is the root Bubbletea model.
type App struct {
	client     *client.Client
	version    string
	view       view
	feed       feedModel
	alerts     alertsModel
	you        youModel
	compose    composeModel
	helpOpen   bool
	helpCursor int
	me         *domain.Profile
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(c *client.Client, version string) App {
	return App{
		client:  c,
		version: version,
		feed:    newFeedModel(c),
		alerts:  newAlertsModel(c),
		you:     newYouModel(c),
		compose: newComposeModel(c),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.feed.Init(), shimmerTickCmd(), a.loadMe())
}

func (a App) loadMe() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		me, err := c.GetMe(context.Background())
		return meLoadedMsg{me: me, err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.feed, _ = a.feed.Update(bodyMsg)
		a.alerts, _ = a.alerts.Update(bodyMsg)
		a.you, _ = a.you.Update(bodyMsg)
		a.compose, _ = a.compose.Update(bodyMsg)

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case meLoadedMsg:
		if msg.err == nil && msg.me != nil {
			a.me = msg.me
		}
		// Propagate to sub-models that need user identity
		a.you, _ = a.you.Update(msg)
		return a, nil

	case tea.KeyMsg:
		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				item := helpItems[a.helpCursor]
				if item.url != "" {
					browser.Open(item.url) //nolint:errcheck // best-effort browser open
				}
			}
			return a, nil
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "h":
				a.helpOpen = true
				a.helpCursor = 0
				return a, nil
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				if a.view != viewFeed {
					a.view = viewFeed
					return a, a.feed.Init()
				}
				return a, nil
			case "2":
				if a.view != viewAlerts {
					a.view = viewAlerts
					return a, a.alerts.Init()
				}
				return a, nil
			case "3":
				if a.view != viewYou {
					a.view = viewYou
					return a, a.you.Init()
				}
				return a, nil
			case "n":
				if a.view != viewCompose {
					a.view = viewCompose
					return a, nil
				}
			case "esc":
				if a.view == viewCompose {
					a.view = viewFeed
					return a, a.feed.Init()
				}
			}
		} else if msg.String() == "esc" && a.view == viewCompose && !a.compose.editor.Mentioning() {
			a.view = viewFeed
			return a, a.feed.Init()
		} else if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewFeed:
		a.feed, cmd = a.feed.Update(msg)
	case viewAlerts:
		a.alerts, cmd = a.alerts.Update(msg)
	case viewYou:
		a.you, cmd = a.you.Update(msg)
	case viewCompose:
		a.compose, cmd = a.compose.Update(msg)
	}

	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewCompose:
		return true
	case viewFeed:
		return a.feed.commenting
	}
	return false
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)

	// Identity line below logo
	idLine := ""
	if a.me != nil {
		parts := []string{"@" + a.me.Username}
		if a.me.Followers > 0 {
			parts = append(parts, fmt.Sprintf("%d followers", a.me.Followers))
		}
		idLine = metaStyle.Render(strings.Join(parts, " · "))
	}

	// Center the logo within terminal width
	logoWidth := lipgloss.Width(logo)
	logoPad := (a.width - logoWidth) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	if idLine != "" {
		idWidth := lipgloss.Width(idLine)
		idPad := (a.width - idWidth) / 2
		if idPad < 0 {
			idPad = 0
		}
		header += "\n" + strings.Repeat(" ", idPad) + idLine
	} else {
		header += "\n"
	}

	// Tab bar: 1 Feed  2 Alerts  3 You
	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Feed", viewFeed},
		{"2", "Alerts", viewAlerts},
		{"3", "You", viewYou},
	}

	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		// Alerts tab: unread badge
		if t.v == viewAlerts {
			if n := a.alerts.unread(); n > 0 {
				label += " " + unreadDotStyle.Render("●") + dimStyle.Render(fmt.Sprintf("%d", n))
			}
		}
		// Center label within its column
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	centeredTabs := tabBar.String()

	// Body
	var body string
	var help string
	switch a.view {
	case viewFeed:
		body = a.feed.View()
		switch {
		case a.feed.commenting:
			help = " " + helpEntry("enter", "send") + "  " + helpEntry("tab", "mention") + "  " + helpEntry("esc", "cancel")
		case a.feed.detail:
			help = " " + helpEntry("l", "like") + "  " + helpEntry("d", "dislike") + "  " + helpEntry("c", "comment") + "  " + helpEntry("o", "open") + "  " + helpEntry("esc", "back")
		default:
			help = " " + helpEntry("1-3", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("n", "post") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
		}
	case viewAlerts:
		body = a.alerts.View()
		help = " " + helpEntry("1-3", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("r", "read") + "  " + helpEntry("a", "read all") + "  " + helpEntry("q", "quit")
	case viewYou:
		body = a.you.View()
		help = " " + helpEntry("1-3", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("q", "quit")
	case viewCompose:
		body = a.compose.View()
		help = " " + helpEntry("ctrl+s", "post") + "  " + helpEntry("ctrl+v", "paste") + "  " + helpEntry("ctrl+r", "retry previews") + "  " + helpEntry("esc", "cancel")
	}

	// Help overlay
	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	// Chrome budget: header(2) + tabs(1) + help(1) = 4 lines + body
	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, centeredTabs, body, help)
}
