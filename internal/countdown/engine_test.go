package countdown

import (
	"math"
	"testing"
	"time"
)

// settle runs the spring until it reports at rest, bounded so a broken
// engine fails the test instead of spinning.
func settle(t *testing.T, e *Engine) {
	t.Helper()
	for i := 0; i < 10*FPS; i++ {
		if !e.Animating() {
			return
		}
		e.Tick()
	}
	t.Fatal("spring did not settle within 10 seconds of ticks")
}

func TestEngineSeedsFromExpiry(t *testing.T) {
	now := time.Now()
	e := NewEngine(now.Add(2*time.Hour), DefaultConfig())

	if got := e.Seconds(now); math.Abs(got-7200) > 0.001 {
		t.Errorf("Seconds = %v, want 7200", got)
	}
	if e.Animating() {
		t.Error("fresh engine should be at rest")
	}
	if e.Color() != ColorNeutral {
		t.Errorf("Color = %v, want neutral", e.Color())
	}
	if got := e.Display(now); got != "2h" {
		t.Errorf("Display = %q, want %q", got, "2h")
	}
}

func TestEngineValueTicksDownInRealTime(t *testing.T) {
	now := time.Now()
	e := NewEngine(now.Add(time.Hour), DefaultConfig())

	if got := e.Seconds(now.Add(10 * time.Minute)); math.Abs(got-3000) > 0.001 {
		t.Errorf("Seconds after 10m = %v, want 3000", got)
	}
}

func TestEngineExpiredClampsAtZero(t *testing.T) {
	now := time.Now()
	e := NewEngine(now.Add(-time.Minute), DefaultConfig())

	if got := e.Seconds(now); got != 0 {
		t.Errorf("Seconds = %v, want 0", got)
	}
}

func TestIncreaseAnimatesUpByQuantum(t *testing.T) {
	now := time.Now()
	e := NewEngine(now.Add(time.Hour), DefaultConfig())

	e.Increase()
	if e.Color() != ColorGreen {
		t.Errorf("Color = %v, want green", e.Color())
	}
	// Displayed value is continuous at the moment of the nudge.
	if got := e.Seconds(now); math.Abs(got-3600) > 0.001 {
		t.Errorf("Seconds right after Increase = %v, want 3600", got)
	}

	settle(t, e)
	if got := e.Seconds(now); math.Abs(got-7200) > settleEpsilon {
		t.Errorf("settled Seconds = %v, want 7200", got)
	}
	if e.Color() != ColorNeutral {
		t.Errorf("Color after settle = %v, want neutral", e.Color())
	}
}

func TestDecreaseAnimatesDownByQuantum(t *testing.T) {
	now := time.Now()
	e := NewEngine(now.Add(3*time.Hour), DefaultConfig())

	if !e.Decrease(now) {
		t.Fatal("Decrease should proceed above the floor")
	}
	if e.Color() != ColorRed {
		t.Errorf("Color = %v, want red", e.Color())
	}

	settle(t, e)
	if got := e.Seconds(now); math.Abs(got-7200) > settleEpsilon {
		t.Errorf("settled Seconds = %v, want 7200", got)
	}
}

func TestDecreaseFloorGuard(t *testing.T) {
	now := time.Now()

	// Just under the floor: no-op, color untouched.
	e := NewEngine(now.Add(3599*time.Second), DefaultConfig())
	if e.Decrease(now) {
		t.Error("Decrease at 3599s should be suppressed")
	}
	if e.Animating() || e.Color() != ColorNeutral {
		t.Error("suppressed Decrease must not change animation state")
	}

	// Exactly at the floor: proceeds.
	e = NewEngine(now.Add(3600*time.Second), DefaultConfig())
	if !e.Decrease(now) {
		t.Error("Decrease at exactly 3600s should proceed")
	}
}

func TestDecreaseWithoutGuard(t *testing.T) {
	now := time.Now()
	cfg := DefaultConfig()
	cfg.FloorGuard = false

	e := NewEngine(now.Add(10*time.Minute), cfg)
	if !e.Decrease(now) {
		t.Error("Decrease should proceed when the guard is disabled")
	}
	settle(t, e)
	if got := e.Seconds(now); got != 0 {
		t.Errorf("settled Seconds = %v, want clamped 0", got)
	}
}

func TestRevertUndoesLastNudge(t *testing.T) {
	now := time.Now()
	e := NewEngine(now.Add(time.Hour), DefaultConfig())

	e.Increase()
	e.Revert()
	if e.Color() != ColorNeutral {
		t.Errorf("Color after Revert = %v, want neutral", e.Color())
	}

	settle(t, e)
	if got := e.Seconds(now); math.Abs(got-3600) > settleEpsilon {
		t.Errorf("settled Seconds = %v, want 3600", got)
	}
}

func TestRevertWithoutNudgeIsNoop(t *testing.T) {
	now := time.Now()
	e := NewEngine(now.Add(time.Hour), DefaultConfig())

	e.Revert()
	if e.Animating() {
		t.Error("Revert with no prior nudge should not animate")
	}
}
