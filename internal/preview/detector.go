package preview

import (
	"errors"
	"time"

	"github.com/fountainhq/fountain/internal/textscan"
	"github.com/fountainhq/fountain/pkg/domain"
)

// DebounceInterval is how long the composer waits after the last keystroke
// before resolving previews. The view schedules a tick carrying the
// generation returned by TextChanged; a tick whose generation is stale by
// the time it fires is dropped.
const DebounceInterval = 500 * time.Millisecond

// ErrPartial reports that at least one URL in the current set could not be
// previewed. It is recoverable; Retry re-issues the whole set.
var ErrPartial = errors.New("some URLs could not be previewed")

// Card is one resolved preview attached to a draft.
type Card struct {
	Meta domain.URLMetadata
	// Degraded marks a card built from the bare URL because resolution
	// failed or returned an unusable payload.
	Degraded bool
}

// Result is the outcome of resolving a single URL.
type Result struct {
	URL  string
	Meta domain.URLMetadata
	Err  error
}

// Detector tracks the URL set of a draft and the previews resolved for it.
// Every change to the set bumps a generation counter; fetches carry the
// generation they were issued under, and results from superseded
// generations are discarded on arrival. The zero value is ready to use.
type Detector struct {
	gen     int
	want    []string
	cards   []Card
	failed  []string
	pending bool
}

// TextChanged rescans the draft. When the (deduplicated, order-preserving)
// URL set differs from the current one it bumps the generation and reports
// fetch=true, meaning the caller should schedule a debounce tick carrying
// the returned generation. Clearing all URLs drops state immediately with
// fetch=false.
func (d *Detector) TextChanged(text string) (gen int, fetch bool) {
	urls := dedupe(textscan.ExtractURLs(text))
	if equal(urls, d.want) {
		return d.gen, false
	}
	d.gen++
	d.want = urls
	if len(urls) == 0 {
		d.cards = nil
		d.failed = nil
		d.pending = false
		return d.gen, false
	}
	d.pending = true
	return d.gen, true
}

// Fire is called when a debounce tick lands. It returns the URL set to
// resolve, or ok=false when the tick's generation has been superseded.
func (d *Detector) Fire(gen int) (urls []string, ok bool) {
	if gen != d.gen || len(d.want) == 0 {
		return nil, false
	}
	return d.want, true
}

// Apply installs resolution results. Results from a stale generation are
// discarded and Apply reports false. Failed URLs still get a degraded
// bare-link card so the draft shows every detected URL.
func (d *Detector) Apply(gen int, results []Result) bool {
	if gen != d.gen {
		return false
	}
	d.cards = d.cards[:0]
	d.failed = d.failed[:0]
	for _, r := range results {
		if r.Err != nil {
			d.failed = append(d.failed, r.URL)
			d.cards = append(d.cards, Card{
				Meta:     domain.URLMetadata{URL: r.URL, Kind: domain.ClassifyMedia(r.URL)},
				Degraded: true,
			})
			continue
		}
		d.cards = append(d.cards, Card{Meta: r.Meta})
	}
	d.pending = false
	return true
}

// Retry re-issues the current URL set under a fresh generation. It returns
// ok=false when there is nothing to retry.
func (d *Detector) Retry() (gen int, urls []string, ok bool) {
	if len(d.failed) == 0 {
		return 0, nil, false
	}
	d.gen++
	d.pending = true
	return d.gen, d.want, true
}

// Cards returns the previews for the current draft, in URL order.
func (d *Detector) Cards() []Card { return d.cards }

// Generation identifies the current URL set.
func (d *Detector) Generation() int { return d.gen }

// Pending reports whether a fetch is outstanding for the current set.
func (d *Detector) Pending() bool { return d.pending }

// Err returns ErrPartial when any URL in the settled set failed, nil
// otherwise or while a fetch is pending.
func (d *Detector) Err() error {
	if d.pending || len(d.failed) == 0 {
		return nil
	}
	return ErrPartial
}

// ShouldRenderCard reports whether resolved metadata carries enough to be
// worth a card. Direct media always renders; a plain link needs either a
// description or both an image and a title.
func ShouldRenderCard(m domain.URLMetadata) bool {
	if m.Kind != domain.MediaLink {
		return true
	}
	if m.Description != "" {
		return true
	}
	return m.Image != "" && m.Title != ""
}

func dedupe(urls []string) []string {
	if len(urls) < 2 {
		return urls
	}
	seen := make(map[string]struct{}, len(urls))
	out := urls[:0]
	for _, u := range urls {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
