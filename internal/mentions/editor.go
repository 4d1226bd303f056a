package mentions

import (
	"strings"
	"unicode"

	"github.com/fountainhq/fountain/pkg/domain"
)

// PageSize is the number of profiles fetched per suggestion query.
const PageSize = 50

// DefaultMaxLength is the rune cap for a post draft.
const DefaultMaxLength = 280

// stopRunes terminate a mention token. Typing one of these while composing
// a mention ends suggestion mode.
const stopRunes = ",.!?;:"

func isStop(r rune) bool { return strings.ContainsRune(stopRunes, r) }

// Editor is the compose-box state machine: a rune buffer with a caret,
// the set of user IDs mentioned so far, and the @-suggestion state derived
// from the token under the caret. Suggestion queries are generation-keyed
// so late results for an abandoned query are discarded.
type Editor struct {
	runes  []rune
	caret  int
	maxLen int

	idOrder []string
	idSet   map[string]struct{}

	active  bool
	query   string
	gen     int
	matches []domain.Profile
	cursor  int
}

// NewEditor returns an empty editor capped at maxLen runes. A maxLen of
// zero or less falls back to DefaultMaxLength.
func NewEditor(maxLen int) *Editor {
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	return &Editor{maxLen: maxLen, idSet: make(map[string]struct{})}
}

func (e *Editor) Text() string { return string(e.runes) }
func (e *Editor) Caret() int { return e.caret }
func (e *Editor) Len() int { return len(e.runes) }
func (e *Editor) MaxLen() int { return e.maxLen }

// MentionedIDs returns the IDs committed so far, in first-mention order.
func (e *Editor) MentionedIDs() []string { return e.idOrder }

// InsertRune types one character at the caret. At capacity the whole edit
// is rejected and InsertRune reports false.
func (e *Editor) InsertRune(r rune) bool {
	if len(e.runes) >= e.maxLen {
		return false
	}
	e.runes = append(e.runes[:e.caret], append([]rune{r}, e.runes[e.caret:]...)...)
	e.caret++
	e.refresh()
	return true
}

// Insert pastes text at the caret, clipped to the remaining capacity.
// It returns the number of runes actually inserted.
func (e *Editor) Insert(s string) int {
	room := e.maxLen - len(e.runes)
	if room <= 0 {
		return 0
	}
	in := []rune(s)
	if len(in) > room {
		in = in[:room]
	}
	e.runes = append(e.runes[:e.caret], append(in, e.runes[e.caret:]...)...)
	e.caret += len(in)
	e.refresh()
	return len(in)
}

// Backspace deletes the rune before the caret. Emptying the draft clears
// the mentioned-ID set, since no mention can survive an empty text.
func (e *Editor) Backspace() {
	if e.caret == 0 {
		return
	}
	e.runes = append(e.runes[:e.caret-1], e.runes[e.caret:]...)
	e.caret--
	if len(e.runes) == 0 {
		e.clearIDs()
	}
	e.refresh()
}

// Clear resets the draft, including the mentioned-ID set.
func (e *Editor) Clear() {
	e.runes = e.runes[:0]
	e.caret = 0
	e.clearIDs()
	e.refresh()
}

func (e *Editor) Left() {
	if e.caret > 0 {
		e.caret--
	}
	e.refresh()
}

func (e *Editor) Right() {
	if e.caret < len(e.runes) {
		e.caret++
	}
	e.refresh()
}

func (e *Editor) Home() {
	e.caret = 0
	e.refresh()
}

func (e *Editor) End() {
	e.caret = len(e.runes)
	e.refresh()
}

// Mentioning reports whether the caret sits in an @-token.
func (e *Editor) Mentioning() bool { return e.active }

// Query returns the token under the caret minus its @ prefix. Empty means
// a bare @, for which the caller lists followed accounts instead of
// searching.
func (e *Editor) Query() string { return e.query }

// Generation identifies the current suggestion query. SetMatches calls
// carrying an older generation are dropped.
func (e *Editor) Generation() int { return e.gen }

// SetMatches installs suggestion results for a generation. Stale results
// are discarded and SetMatches reports false.
func (e *Editor) SetMatches(gen int, profiles []domain.Profile) bool {
	if !e.active || gen != e.gen {
		return false
	}
	e.matches = profiles
	if e.cursor >= len(profiles) {
		e.cursor = 0
	}
	return true
}

// Matches returns the current suggestion list.
func (e *Editor) Matches() []domain.Profile { return e.matches }

// Cursor returns the index of the highlighted suggestion.
func (e *Editor) Cursor() int { return e.cursor }

// MoveUp and MoveDown move the suggestion highlight, clamped to the list.
func (e *Editor) MoveUp() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *Editor) MoveDown() {
	if e.cursor < len(e.matches)-1 {
		e.cursor++
	}
}

// Commit replaces the @-token under the caret with the highlighted
// profile's @username plus a trailing space, records the profile's ID, and
// leaves suggestion mode. It reports false when nothing is selectable.
func (e *Editor) Commit() (domain.Profile, bool) {
	if !e.active || len(e.matches) == 0 {
		return domain.Profile{}, false
	}
	p := e.matches[e.cursor]
	start, end := e.tokenAt()
	repl := []rune("@" + p.Username + " ")

	// The replacement may not fit once the token is swapped out.
	if len(e.runes)-(end-start)+len(repl) > e.maxLen {
		return domain.Profile{}, false
	}
	e.runes = append(e.runes[:start], append(repl, e.runes[end:]...)...)
	e.caret = start + len(repl)
	if _, dup := e.idSet[p.ID]; !dup {
		e.idSet[p.ID] = struct{}{}
		e.idOrder = append(e.idOrder, p.ID)
	}
	e.dismiss()
	return p, true
}

// Dismiss leaves suggestion mode without committing.
func (e *Editor) Dismiss() { e.dismiss() }

func (e *Editor) dismiss() {
	e.active = false
	e.query = ""
	e.matches = nil
	e.cursor = 0
}

func (e *Editor) clearIDs() {
	e.idOrder = nil
	e.idSet = make(map[string]struct{})
}

// tokenAt returns the bounds of the token containing the caret: left bound
// at whitespace or start of text, right bound at whitespace, a stop rune,
// or end of text.
func (e *Editor) tokenAt() (start, end int) {
	start = e.caret
	for start > 0 && !unicode.IsSpace(e.runes[start-1]) {
		start--
	}
	end = e.caret
	for end < len(e.runes) && !unicode.IsSpace(e.runes[end]) && !isStop(e.runes[end]) {
		end++
	}
	return start, end
}

// refresh re-derives the suggestion state from the token under the caret.
// Entering a mention or changing its query bumps the generation and resets
// the highlight.
func (e *Editor) refresh() {
	start, end := e.tokenAt()
	token := e.runes[start:end]
	if len(token) == 0 || token[0] != '@' || e.caret <= start {
		if e.active {
			e.dismiss()
		}
		return
	}
	for _, r := range token {
		if isStop(r) {
			if e.active {
				e.dismiss()
			}
			return
		}
	}
	q := string(token[1:])
	if e.active && q == e.query {
		return
	}
	e.active = true
	e.query = q
	e.gen++
	e.matches = nil
	e.cursor = 0
}
