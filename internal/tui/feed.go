package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fountainhq/fountain/internal/browser"
	"github.com/fountainhq/fountain/internal/countdown"
	"github.com/fountainhq/fountain/internal/mentions"
	"github.com/fountainhq/fountain/internal/textscan"
	"github.com/fountainhq/fountain/pkg/client"
	"github.com/fountainhq/fountain/pkg/domain"
)

// feedPollInterval is how often the feed auto-refreshes.
const feedPollInterval = 15 * time.Second

// feedPageSize is how many posts one feed fetch asks for.
const feedPageSize = 50

// clockInterval re-renders the visible countdowns once a second.
const clockInterval = time.Second

type feedTickMsg time.Time

func feedTickCmd() tea.Cmd {
	return tea.Tick(feedPollInterval, func(t time.Time) tea.Msg {
		return feedTickMsg(t)
	})
}

type clockTickMsg time.Time

func clockTickCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// animTickMsg drives the countdown spring at its fixed frame rate while a
// reaction animates.
type animTickMsg time.Time

func animTickCmd() tea.Cmd {
	return tea.Tick(time.Second/countdown.FPS, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

type feedLoadedMsg struct {
	posts []domain.Post
	err   error
}

type postLoadedMsg struct {
	post     *domain.Post
	comments []domain.Comment
	err      error
}

// reactDoneMsg reports the outcome of a like/dislike request. The reaction
// is applied optimistically; a failure rolls the countdown and counters
// back.
type reactDoneMsg struct {
	postID string
	like   bool
	err    error
}

type commentDoneMsg struct {
	comment *domain.Comment
	err     error
}

type feedModel struct {
	client  *client.Client
	posts   []domain.Post
	cursor  int
	loading bool
	err     string
	width   int
	height  int

	// detail state
	detail   bool
	post     *domain.Post
	comments []domain.Comment
	engine   *countdown.Engine
	toast    string

	// comment composer
	commenting bool
	comment    *mentions.Editor
}

func newFeedModel(c *client.Client) feedModel {
	return feedModel{client: c, loading: true}
}

func (m feedModel) Init() tea.Cmd {
	return tea.Batch(m.load(), clockTickCmd())
}

func (m feedModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		posts, err := c.GetFeed(context.Background(), feedPageSize, "")
		return feedLoadedMsg{posts: posts, err: err}
	}
}

func (m feedModel) openDetail(id string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		post, err := c.GetPost(context.Background(), id)
		if err != nil {
			return postLoadedMsg{err: err}
		}
		comments, err := c.GetComments(context.Background(), id)
		if err != nil {
			comments = nil
		}
		return postLoadedMsg{post: post, comments: comments}
	}
}

func (m feedModel) react(postID string, like bool) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		var err error
		if like {
			err = c.Like(context.Background(), client.TargetPost, postID)
		} else {
			err = c.Dislike(context.Background(), client.TargetPost, postID)
		}
		return reactDoneMsg{postID: postID, like: like, err: err}
	}
}

func (m feedModel) submitComment() (feedModel, tea.Cmd) {
	text := strings.TrimSpace(m.comment.Text())
	if text == "" || m.post == nil {
		return m, nil
	}
	req := client.CreateCommentRequest{Text: text, MentionedIDs: m.comment.MentionedIDs()}
	postID := m.post.ID
	c := m.client
	m.commenting = false
	m.comment = nil
	return m, func() tea.Msg {
		comment, err := c.CreateComment(context.Background(), postID, req)
		return commentDoneMsg{comment: comment, err: err}
	}
}

func (m feedModel) Update(msg tea.Msg) (feedModel, tea.Cmd) {
	switch msg := msg.(type) {
	case feedLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.posts = msg.posts
			m.err = ""
			if m.cursor >= len(m.posts) {
				m.cursor = 0
			}
		}
		return m, feedTickCmd()

	case feedTickMsg:
		return m, m.load()

	case clockTickMsg:
		// Countdown columns re-render off the wall clock.
		return m, clockTickCmd()

	case animTickMsg:
		if m.engine == nil {
			return m, nil
		}
		m.engine.Tick()
		if m.engine.Animating() {
			return m, animTickCmd()
		}
		return m, nil

	case postLoadedMsg:
		if msg.err != nil {
			m.toast = "load failed: " + msg.err.Error()
			return m, nil
		}
		m.detail = true
		m.post = msg.post
		m.comments = msg.comments
		m.engine = countdown.NewEngine(msg.post.ExpiresAt, countdown.DefaultConfig())
		m.toast = ""
		return m, nil

	case reactDoneMsg:
		if msg.err != nil && m.post != nil && m.post.ID == msg.postID {
			m.engine.Revert()
			if msg.like {
				m.post.Likes--
				m.post.Liked = false
				m.toast = "like failed"
			} else {
				m.post.Dislikes--
				m.post.Disliked = false
				m.toast = "dislike failed"
			}
			return m, animTickCmd()
		}
		return m, nil

	case commentDoneMsg:
		if msg.err != nil {
			m.toast = "comment failed"
		} else if m.post != nil {
			m.comments = append(m.comments, *msg.comment)
			m.post.CommentCount++
			m.toast = ""
		}
		return m, nil

	case mentionResultsMsg:
		if m.commenting && m.comment != nil {
			m.comment.SetMatches(msg.gen, msg.profiles)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m feedModel) updateKeys(msg tea.KeyMsg) (feedModel, tea.Cmd) {
	if m.commenting && m.comment != nil {
		return m.updateCommentKeys(msg)
	}

	if m.detail {
		switch msg.String() {
		case "esc", "backspace":
			m.detail = false
			m.post = nil
			m.engine = nil
			m.toast = ""
			return m, nil
		case "l":
			if m.post != nil && !m.post.Liked {
				m.engine.Increase()
				m.post.Likes++
				m.post.Liked = true
				return m, tea.Batch(m.react(m.post.ID, true), animTickCmd())
			}
			return m, nil
		case "d":
			if m.post != nil && !m.post.Disliked {
				if !m.engine.Decrease(time.Now()) {
					m.toast = "too little time left"
					return m, nil
				}
				m.post.Dislikes++
				m.post.Disliked = true
				return m, tea.Batch(m.react(m.post.ID, false), animTickCmd())
			}
			return m, nil
		case "c":
			m.commenting = true
			m.comment = mentions.NewEditor(mentions.DefaultMaxLength)
			return m, nil
		case "o":
			if m.post != nil {
				if urls := textscan.ExtractURLs(m.post.Text); len(urls) > 0 {
					browser.Open(urls[0]) //nolint:errcheck // best-effort browser open
				}
			}
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(m.posts) {
			return m, m.openDetail(m.posts[m.cursor].ID)
		}
	case "o":
		if m.cursor < len(m.posts) {
			if urls := textscan.ExtractURLs(m.posts[m.cursor].Text); len(urls) > 0 {
				browser.Open(urls[0]) //nolint:errcheck // best-effort browser open
			}
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m feedModel) updateCommentKeys(msg tea.KeyMsg) (feedModel, tea.Cmd) {
	e := m.comment
	if e.Mentioning() {
		switch msg.String() {
		case "up":
			e.MoveUp()
			return m, nil
		case "down":
			e.MoveDown()
			return m, nil
		case "tab", "enter":
			if _, ok := e.Commit(); ok {
				return m, nil
			}
		case "esc":
			e.Dismiss()
			return m, nil
		}
	}

	switch msg.String() {
	case "esc":
		m.commenting = false
		m.comment = nil
		return m, nil
	case "enter":
		return m.submitComment()
	case "backspace":
		e.Backspace()
	case "left":
		e.Left()
	case "right":
		e.Right()
	default:
		if len([]rune(msg.String())) == 1 {
			e.InsertRune([]rune(msg.String())[0])
		}
	}
	return m, m.suggestCmd()
}

// suggestCmd issues the mention query for the comment editor's current
// token, if any. A bare @ lists followed accounts; anything longer
// searches.
func (m feedModel) suggestCmd() tea.Cmd {
	e := m.comment
	if e == nil || !e.Mentioning() {
		return nil
	}
	return fetchMentions(m.client, e.Generation(), e.Query())
}

func (m feedModel) View() string {
	if m.detail {
		return m.detailView()
	}
	return m.listView()
}

func (m feedModel) listView() string {
	if m.loading && len(m.posts) == 0 {
		return " " + dimStyle.Render("loading the feed...")
	}
	if m.err != "" {
		return " " + errStyle.Render("error: "+m.err)
	}
	if len(m.posts) == 0 {
		return " " + dimStyle.Render("nothing flowing yet — press n to post")
	}

	now := time.Now()
	var b strings.Builder
	maxRows := m.height - 1
	if maxRows < 5 {
		maxRows = 10
	}

	for i := 0; i < len(m.posts) && i < maxRows; i++ {
		p := m.posts[i]

		author := "?"
		if p.Author != nil {
			author = p.Author.Username
		}
		remaining := countdown.FormatRemaining(p.Remaining(now))
		if p.Expired(now) {
			remaining = "expired"
		}

		line := fmt.Sprintf("%s  %s  %s %s  %s  %s",
			authorStyle.Render("@"+author),
			normalStyle.Render(truncStr(strings.ReplaceAll(p.Text, "\n", " "), 48)),
			likeStyle.Render(fmt.Sprintf("+%d", p.Likes)),
			dislikeStyle.Render(fmt.Sprintf("-%d", p.Dislikes)),
			countRestStyle.Render(remaining),
			metaStyle.Render(formatTime(p.CreatedAt)))
		if badge := mediaBadge(p.Text); badge != "" {
			line += "  " + badge
		}

		if i == m.cursor {
			b.WriteString(" " + accentStyle.Render(">") + " " + selectedRowBg.Render(line) + "\n")
		} else {
			b.WriteString("   " + line + "\n")
		}
	}
	return b.String()
}

func (m feedModel) detailView() string {
	if m.post == nil {
		return " " + dimStyle.Render("loading post...")
	}
	p := m.post
	now := time.Now()

	var b strings.Builder

	author := "?"
	if p.Author != nil {
		author = p.Author.Username
	}
	b.WriteString(" " + authorStyle.Render("@"+author) + "  " + metaStyle.Render(formatTime(p.CreatedAt)) + "\n\n")
	b.WriteString(" " + renderPostText(p.Text) + "\n")
	if badge := mediaBadge(p.Text); badge != "" {
		b.WriteString(" " + badge + "\n")
	}
	b.WriteString("\n")

	remaining := m.engine.Display(now)
	if p.Expired(now) && !m.engine.Animating() {
		remaining = "expired"
	}
	b.WriteString(" " + countdownStyle(m.engine.Color()).Render("⏳ "+remaining))
	b.WriteString("   " + likeStyle.Render(fmt.Sprintf("+%d", p.Likes)) + " " + dislikeStyle.Render(fmt.Sprintf("-%d", p.Dislikes)))
	b.WriteString("   " + dimStyle.Render(fmt.Sprintf("%d comments", p.CommentCount)) + "\n")

	if m.toast != "" {
		b.WriteString(" " + errStyle.Render(m.toast) + "\n")
	}
	b.WriteString("\n")

	for _, c := range m.comments {
		who := "?"
		if c.Author != nil {
			who = c.Author.Username
		}
		b.WriteString("   " + mentionStyle.Render("@"+who) + " " + renderPostText(c.Text) + "  " + metaStyle.Render(formatTime(c.CreatedAt)) + "\n")
	}

	if m.commenting && m.comment != nil {
		b.WriteString("\n " + inputPromptStyle.Render("> ") + normalStyle.Render(m.comment.Text()) + accentStyle.Render("█") + "\n")
		b.WriteString(renderSuggestions(m.comment))
	} else {
		b.WriteString("\n " + inputPlaceholderStyle.Render("press c to comment") + "\n")
	}

	return b.String()
}

// renderSuggestions lists the mention candidates under an active editor.
func renderSuggestions(e *mentions.Editor) string {
	if !e.Mentioning() || len(e.Matches()) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range e.Matches() {
		prefix := "     "
		name := dimStyle.Render("@" + p.Username)
		if i == e.Cursor() {
			prefix = "   " + accentStyle.Render("> ")
			name = mentionStyle.Render("@" + p.Username)
		}
		b.WriteString(prefix + name)
		if p.Name != "" {
			b.WriteString("  " + metaStyle.Render(p.Name))
		}
		b.WriteString("\n")
	}
	return b.String()
}
