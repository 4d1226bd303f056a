package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fountainhq/fountain/internal/mentions"
	"github.com/fountainhq/fountain/internal/preview"
	"github.com/fountainhq/fountain/pkg/client"
	"github.com/fountainhq/fountain/pkg/domain"
)

// previewDebounceMsg lands after the composer has been idle long enough to
// resolve previews. Stale generations are dropped by the detector.
type previewDebounceMsg struct {
	gen int
}

func previewDebounceCmd(gen int) tea.Cmd {
	return tea.Tick(preview.DebounceInterval, func(time.Time) tea.Msg {
		return previewDebounceMsg{gen: gen}
	})
}

type previewResultsMsg struct {
	gen     int
	results []preview.Result
}

// mentionResultsMsg carries mention suggestions for an editor generation.
// Shared by the composer and the comment box; the app routes it to
// whichever view is active.
type mentionResultsMsg struct {
	gen      int
	profiles []domain.Profile
	err      error
}

// fetchMentions queries candidates for an @-token. A bare @ lists the
// accounts the user follows; anything longer searches by username prefix.
func fetchMentions(c *client.Client, gen int, query string) tea.Cmd {
	return func() tea.Msg {
		if query == "" {
			page, err := c.GetFollowings(context.Background(), mentions.PageSize, "")
			if err != nil {
				return mentionResultsMsg{gen: gen, err: err}
			}
			return mentionResultsMsg{gen: gen, profiles: page.Data}
		}
		profiles, err := c.SearchProfiles(context.Background(), query)
		return mentionResultsMsg{gen: gen, profiles: profiles, err: err}
	}
}

type postCreatedMsg struct {
	post *domain.Post
	err  error
}

type composeModel struct {
	client    *client.Client
	editor    *mentions.Editor
	detector  preview.Detector
	submitted bool
	statusMsg string
	width     int
	height    int
}

func newComposeModel(c *client.Client) composeModel {
	return composeModel{client: c, editor: mentions.NewEditor(mentions.DefaultMaxLength)}
}

func (m composeModel) Init() tea.Cmd {
	return nil
}

func (m composeModel) resolvePreviews(gen int, urls []string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return previewResultsMsg{gen: gen, results: preview.ResolveAll(context.Background(), c, urls)}
	}
}

// afterEdit schedules the follow-up work a text change may need: a preview
// debounce tick and a mention suggestion query.
func (m *composeModel) afterEdit() tea.Cmd {
	var cmds []tea.Cmd
	if gen, fetch := m.detector.TextChanged(m.editor.Text()); fetch {
		cmds = append(cmds, previewDebounceCmd(gen))
	}
	if m.editor.Mentioning() {
		cmds = append(cmds, fetchMentions(m.client, m.editor.Generation(), m.editor.Query()))
	}
	return tea.Batch(cmds...)
}

func (m composeModel) Update(msg tea.Msg) (composeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case previewDebounceMsg:
		if urls, ok := m.detector.Fire(msg.gen); ok {
			return m, m.resolvePreviews(msg.gen, urls)
		}
		return m, nil

	case previewResultsMsg:
		m.detector.Apply(msg.gen, msg.results)
		return m, nil

	case mentionResultsMsg:
		if msg.err == nil {
			m.editor.SetMatches(msg.gen, msg.profiles)
		}
		return m, nil

	case postCreatedMsg:
		m.submitted = false
		if msg.err != nil {
			m.statusMsg = "post failed: " + msg.err.Error()
		} else {
			m.statusMsg = "posted"
			m.editor = mentions.NewEditor(mentions.DefaultMaxLength)
			m.detector = preview.Detector{}
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

func (m composeModel) updateKeys(msg tea.KeyMsg) (composeModel, tea.Cmd) {
	m.statusMsg = ""
	e := m.editor

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
				return m, m.afterEdit()
			}
			return m, nil
		case "esc":
			e.Dismiss()
			return m, nil
		}
	}

	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "ctrl+r":
		if gen, urls, ok := m.detector.Retry(); ok {
			return m, m.resolvePreviews(gen, urls)
		}
		return m, nil
	case "ctrl+v":
		if text, err := clipboard.ReadAll(); err == nil && text != "" {
			if n := e.Insert(text); n < len([]rune(text)) {
				m.statusMsg = "paste truncated to fit"
			}
			return m, m.afterEdit()
		}
		return m, nil
	case "enter":
		e.InsertRune('\n')
		return m, m.afterEdit()
	case "backspace":
		e.Backspace()
		return m, m.afterEdit()
	case "left":
		e.Left()
		return m, nil
	case "right":
		e.Right()
		return m, nil
	case "home":
		e.Home()
		return m, nil
	case "end":
		e.End()
		return m, nil
	default:
		key := []rune(msg.String())
		if len(key) == 1 {
			if !e.InsertRune(key[0]) {
				m.statusMsg = fmt.Sprintf("limit is %d characters", e.MaxLen())
				return m, nil
			}
			return m, m.afterEdit()
		}
	}
	return m, nil
}

func (m composeModel) submit() (composeModel, tea.Cmd) {
	text := strings.TrimSpace(m.editor.Text())
	if text == "" {
		m.statusMsg = "write something first"
		return m, nil
	}
	if m.detector.Pending() {
		m.statusMsg = "still resolving previews..."
		return m, nil
	}

	m.submitted = true
	req := client.CreatePostRequest{Text: text, MentionedIDs: m.editor.MentionedIDs()}
	c := m.client
	return m, func() tea.Msg {
		post, err := c.CreatePost(context.Background(), req)
		return postCreatedMsg{post: post, err: err}
	}
}

func (m composeModel) View() string {
	var b strings.Builder

	e := m.editor
	runes := []rune(e.Text())
	before := string(runes[:e.Caret()])
	after := string(runes[e.Caret():])

	b.WriteString(" " + inputPromptStyle.Render("> ") + normalStyle.Render(before) + accentStyle.Render("█") + normalStyle.Render(after) + "\n")
	b.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d/%d", e.Len(), e.MaxLen())) + "\n")

	b.WriteString(renderSuggestions(e))

	if m.detector.Pending() {
		b.WriteString("\n " + dimStyle.Render("resolving previews...") + "\n")
	} else if cards := m.detector.Cards(); len(cards) > 0 {
		b.WriteString("\n")
		for _, c := range cards {
			b.WriteString(renderCard(c, m.width) + "\n")
		}
	}
	if err := m.detector.Err(); err != nil {
		b.WriteString(" " + errStyle.Render(err.Error()) + "  " + dimStyle.Render("(ctrl+r to retry)") + "\n")
	}

	b.WriteString("\n")
	if m.submitted {
		b.WriteString(" " + dimStyle.Render("posting..."))
	} else if m.statusMsg != "" {
		b.WriteString(" " + okStyle.Render(m.statusMsg))
	}

	return b.String()
}
