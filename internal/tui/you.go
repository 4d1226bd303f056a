package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fountainhq/fountain/internal/countdown"
	"github.com/fountainhq/fountain/internal/rewards"
	"github.com/fountainhq/fountain/pkg/client"
	"github.com/fountainhq/fountain/pkg/domain"
)

// rewardTickInterval re-renders the live balance once a second, matching
// the accrual granularity.
const rewardTickInterval = time.Second

type rewardTickMsg time.Time

func rewardTickCmd() tea.Cmd {
	return tea.Tick(rewardTickInterval, func(t time.Time) tea.Msg {
		return rewardTickMsg(t)
	})
}

type youLoadedMsg struct {
	posts    []domain.Post
	comments []domain.Comment
	settled  *domain.RewardSummary
	err      error
}

type youModel struct {
	client   *client.Client
	me       *domain.Profile
	posts    []domain.Post
	comments []domain.Comment
	settled  float64
	cursor   int
	loading  bool
	err      string
	width    int
	height   int
}

func newYouModel(c *client.Client) youModel {
	return youModel{client: c, loading: true}
}

func (m youModel) Init() tea.Cmd {
	return tea.Batch(m.load(), rewardTickCmd())
}

func (m youModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		posts, err := c.GetMyPosts(context.Background())
		if err != nil {
			return youLoadedMsg{err: err}
		}
		comments, err := c.GetMyComments(context.Background())
		if err != nil {
			comments = nil
		}
		settled, err := c.GetSettledRewards(context.Background())
		if err != nil {
			settled = nil
		}
		return youLoadedMsg{posts: posts, comments: comments, settled: settled}
	}
}

func (m youModel) Update(msg tea.Msg) (youModel, tea.Cmd) {
	switch msg := msg.(type) {
	case youLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.posts = msg.posts
			m.comments = msg.comments
			m.err = ""
			if msg.settled != nil {
				m.settled = msg.settled.Total
			}
			if m.cursor >= len(m.posts) {
				m.cursor = 0
			}
		}
		return m, nil

	case rewardTickMsg:
		return m, rewardTickCmd()

	case meLoadedMsg:
		if msg.err == nil && msg.me != nil {
			m.me = msg.me
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.posts)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func activeComments(comments []domain.Comment, now time.Time) int {
	n := 0
	for _, c := range comments {
		if !c.Expired(now) {
			n++
		}
	}
	return n
}

func (m youModel) View() string {
	var b strings.Builder
	now := time.Now()

	if m.me != nil {
		b.WriteString(" " + authorStyle.Render("@"+m.me.Username))
		if m.me.Name != "" {
			b.WriteString("  " + normalStyle.Render(m.me.Name))
		}
		b.WriteString("  " + metaStyle.Render(fmt.Sprintf("%d followers · %d following", m.me.Followers, m.me.Following)))
		b.WriteString("\n\n")
	}

	if m.err != "" {
		b.WriteString(" " + errStyle.Render("error: "+m.err) + "\n")
		return b.String()
	}
	if m.loading && len(m.posts) == 0 {
		b.WriteString(" " + dimStyle.Render("loading..."))
		return b.String()
	}

	live := rewards.AggregatePosts(m.posts, now, rewards.DefaultRate) +
		rewards.AggregateComments(m.comments, now, rewards.DefaultRate)
	total := m.settled + live
	b.WriteString(" " + rewardStyle.Render(fmt.Sprintf("◉ %.3f", total)))
	b.WriteString("  " + metaStyle.Render(fmt.Sprintf("(%.3f settled + %.3f flowing)", m.settled, live)))
	b.WriteString("\n")
	if n := activeComments(m.comments, now); n > 0 {
		b.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d comments still flowing", n)) + "\n")
	}
	b.WriteString("\n")

	if len(m.posts) == 0 {
		b.WriteString(" " + dimStyle.Render("you haven't posted yet"))
		return b.String()
	}

	b.WriteString(" " + metaStyle.Render("your drops") + "\n")
	maxRows := m.height - 6
	if maxRows < 3 {
		maxRows = 5
	}
	for i := 0; i < len(m.posts) && i < maxRows; i++ {
		p := m.posts[i]

		remaining := countdown.FormatRemaining(p.Remaining(now))
		if p.Expired(now) {
			remaining = "settled"
		}
		line := fmt.Sprintf("%s  %s %s  %s  %s",
			normalStyle.Render(truncStr(strings.ReplaceAll(p.Text, "\n", " "), 44)),
			likeStyle.Render(fmt.Sprintf("+%d", p.Likes)),
			dislikeStyle.Render(fmt.Sprintf("-%d", p.Dislikes)),
			countRestStyle.Render(remaining),
			rewardStyle.Render(fmt.Sprintf("%.3f", rewards.Live(p.CreatedAt, p.ExpiresAt, now, rewards.DefaultRate))))

		if i == m.cursor {
			b.WriteString(" " + accentStyle.Render(">") + " " + line + "\n")
		} else {
			b.WriteString("   " + line + "\n")
		}
	}
	return b.String()
}
