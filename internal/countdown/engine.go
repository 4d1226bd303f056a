package countdown

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// FPS is the fixed step rate of the spring animation. The TUI schedules one
// Tick per frame while Animating reports true.
const FPS = 60

// Color is the accent applied to the countdown while it animates. It returns
// to ColorNeutral once the spring settles.
type Color int

const (
	ColorNeutral Color = iota
	ColorGreen
	ColorRed
)

// Config tunes the reaction nudges applied to a post's lifetime.
type Config struct {
	// Quantum is the number of seconds a single reaction adds or removes.
	Quantum float64
	// Floor is the minimum displayed value, in seconds, below which
	// FloorGuard suppresses further decreases.
	Floor float64
	// FloorGuard makes Decrease a no-op when the displayed value is
	// already under Floor. The server clamps regardless; the guard only
	// keeps the animation from dipping toward zero and snapping back.
	FloorGuard bool
}

// DefaultConfig matches the server's reaction weight of one hour per vote.
func DefaultConfig() Config {
	return Config{Quantum: 3600, Floor: 3600, FloorGuard: true}
}

const (
	settleEpsilon = 1.0 // seconds
	angularFreq   = 6.0
	dampingRatio  = 1.0
)

// Engine animates the seconds remaining until a post expires. The
// authoritative value ticks down in real time from the (nudge-adjusted)
// expiry; reactions offset the display and a critically damped spring
// relaxes the offset back to zero, so the value flows smoothly from its old
// reading to the new one instead of jumping.
type Engine struct {
	cfg    Config
	spring harmonica.Spring

	expiresAt time.Time // includes accepted nudges
	anim      float64   // display offset, relaxing toward zero
	vel       float64

	color     Color
	animating bool
	lastNudge float64
}

// NewEngine seeds an engine from a post's expiry timestamp.
func NewEngine(expiresAt time.Time, cfg Config) *Engine {
	return &Engine{
		cfg:       cfg,
		spring:    harmonica.NewSpring(harmonica.FPS(FPS), angularFreq, dampingRatio),
		expiresAt: expiresAt,
	}
}

// Seconds reports the displayed seconds remaining, clamped at zero.
func (e *Engine) Seconds(now time.Time) float64 {
	s := e.expiresAt.Sub(now).Seconds() + e.anim
	if s < 0 {
		return 0
	}
	return s
}

// Display renders the current value with FormatRemaining.
func (e *Engine) Display(now time.Time) string {
	return FormatRemaining(time.Duration(e.Seconds(now) * float64(time.Second)))
}

// Color reports the accent for the current animation, ColorNeutral at rest.
func (e *Engine) Color() Color { return e.color }

// Animating reports whether the spring still has work to do. The TUI stops
// scheduling frames once this is false.
func (e *Engine) Animating() bool { return e.animating }

// Increase applies an upvote nudge of one quantum.
func (e *Engine) Increase() {
	e.nudge(e.cfg.Quantum)
	e.color = ColorGreen
}

// Decrease applies a downvote nudge of one quantum. When the floor guard is
// active and the displayed value is already under the floor it does nothing
// and reports false; a value of exactly the floor still proceeds.
func (e *Engine) Decrease(now time.Time) bool {
	if e.cfg.FloorGuard && e.Seconds(now) < e.cfg.Floor {
		return false
	}
	e.nudge(-e.cfg.Quantum)
	e.color = ColorRed
	return true
}

// Revert undoes the most recent nudge. The detail view calls it when the
// reaction request behind the nudge fails, so the display animates back to
// the server's value.
func (e *Engine) Revert() {
	if e.lastNudge == 0 {
		return
	}
	e.nudge(-e.lastNudge)
	e.lastNudge = 0
	e.color = ColorNeutral
}

func (e *Engine) nudge(q float64) {
	// Shift the target and compensate the offset so the displayed value is
	// continuous; the spring then carries the offset back to zero.
	e.expiresAt = e.expiresAt.Add(time.Duration(q * float64(time.Second)))
	e.anim -= q
	e.lastNudge = q
	e.animating = true
}

// Tick advances the spring by one fixed 1/FPS step. Once the offset and its
// velocity are both within the settle threshold the value snaps to rest and
// the color clears.
func (e *Engine) Tick() {
	if !e.animating {
		return
	}
	e.anim, e.vel = e.spring.Update(e.anim, e.vel, 0)
	if math.Abs(e.anim) < settleEpsilon && math.Abs(e.vel) < settleEpsilon {
		e.anim, e.vel = 0, 0
		e.animating = false
		e.color = ColorNeutral
	}
}
