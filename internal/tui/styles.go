package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fountainhq/fountain/internal/countdown"
)

// Shimmer animation for the FOUNTAIN logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "F O U N T A I N" as a flowing wave of cyan
// light. Deep sea (#12333e) -> bright aqua (#4adede). No hue drift.
func renderShimmerLogo(frame int) string {
	const text = "FOUNTAIN"
	n := len(text)

	var out string

	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		// Flowing phase: one smooth wave advancing through the text
		phase := t*0.1 - x*3.0

		// Gentle speed modulation
		phase += math.Sin(t*0.023) * 2.0

		// Primary brightness wave
		b := math.Sin(phase)*0.5 + 0.5

		// Soft shaping
		b = math.Pow(b, 1.3)

		// Slow breathing tide
		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Continuous RGB interpolation: deep sea -> bright aqua
		// Deep:   (18, 51, 62)   #12333e
		// Bright: (74, 222, 222) #4adede
		r := clampByte(18 + b*(74-18))
		g := clampByte(51 + b*(222-51))
		bl := clampByte(62 + b*(222-62))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		// Letter spacing: two spaces between each letter
		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles: fountain neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / action styles
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d4d4"))

	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4adede")).
			Bold(true)

	likeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	dislikeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	rewardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844")).
			Bold(true)

	// Countdown accents while a reaction animates
	countUpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Bold(true)

	countDownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060")).
			Bold(true)

	countRestStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	// Mention and link styles
	mentionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4adede")).
			Bold(true)

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a0e0")).
			Underline(true)

	// Preview cards
	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0")).
			Bold(true)

	cardDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	cardSiteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	cardBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1e2a2a"))

	degradedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868")).
			Italic(true)

	// Alerts
	unreadDotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4adede"))

	// Selected row background
	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1a242a"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#34d4d4")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))
)

// countdownStyle maps the engine's color state to a lipgloss style.
func countdownStyle(c countdown.Color) lipgloss.Style {
	switch c {
	case countdown.ColorGreen:
		return countUpStyle
	case countdown.ColorRed:
		return countDownStyle
	default:
		return countRestStyle
	}
}

// notifStyle colors the marker glyph for a notification kind.
func notifStyle(kind string) lipgloss.Style {
	switch kind {
	case "like":
		return likeStyle
	case "dislike":
		return dislikeStyle
	case "mention":
		return mentionStyle
	case "follow":
		return authorStyle
	default:
		return dimStyle
	}
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

var helpItems = []helpItem{
	{"Terms of Service", "fountain.social/terms", "https://fountain.social/terms"},
	{"Privacy Policy", "fountain.social/privacy", "https://fountain.social/privacy"},
	{"Website", "fountain.social", "https://fountain.social"},
}

// helpView renders the interactive help overlay with a cursor.
func helpView(cursor int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4adede")).
		Bold(true).
		Render("F O U N T A I N")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"Every post is a drop. Keep the good ones flowing."`)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4adede"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	commands := []struct{ cmd, desc string }{
		{"fountain", "Open the feed (interactive TUI)"},
		{"fountain login", "Save an access token"},
		{"fountain logout", "Clear your session"},
		{"fountain --version", "Show version"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n\n", title, quote)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range helpItems {
		label := cmdStyle.Render(fmt.Sprintf("%-20s", item.label))
		prefix := "    "
		if i == cursor {
			label = cursorStyle.Render(fmt.Sprintf("%-20s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
	}
	return b.String()
}
