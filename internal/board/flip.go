package board

import (
	"math"
	"time"
)

// DefaultDuration is how long a FLIP animation plays
const DefaultDuration = 300 * time.Millisecond

// Box is the layout position of a rendered card
type Box struct {
	Top  float64
	Left float64
}

// Snapshot maps task ids to their layout boxes
type Snapshot map[string]Box

// Delta is the inverse offset applied to a card so it appears at its old
// position right after re-layout.
type Delta struct {
	DX float64
	DY float64
}

// Invert computes old-minus-new offsets for every card present in both
// snapshots. Cards that moved at most one unit on both axes are skipped.
func Invert(first, last Snapshot) map[string]Delta {
	deltas := make(map[string]Delta)
	for id, before := range first {
		after, ok := last[id]
		if !ok {
			continue
		}
		d := Delta{DX: before.Left - after.Left, DY: before.Top - after.Top}
		if math.Abs(d.DX) > 1 || math.Abs(d.DY) > 1 {
			deltas[id] = d
		}
	}
	return deltas
}

// Animation plays inverted deltas back to zero
type Animation struct {
	Deltas   map[string]Delta
	Start    time.Time
	Duration time.Duration
}

// NewAnimation starts playing the deltas between first and last at now.
// ok is false when nothing moved.
func NewAnimation(first, last Snapshot, now time.Time, d time.Duration) (Animation, bool) {
	deltas := Invert(first, last)
	if len(deltas) == 0 {
		return Animation{}, false
	}
	if d <= 0 {
		d = DefaultDuration
	}
	return Animation{Deltas: deltas, Start: now, Duration: d}, true
}

// Progress returns the eased completion in [0, 1] at now
func (a Animation) Progress(now time.Time) float64 {
	if a.Duration <= 0 {
		return 1
	}
	t := float64(now.Sub(a.Start)) / float64(a.Duration)
	return Ease(clamp01(t))
}

// Offset returns the remaining offset of card id at now. ok is false when
// the card is not animating.
func (a Animation) Offset(id string, now time.Time) (Delta, bool) {
	d, ok := a.Deltas[id]
	if !ok || a.Done(now) {
		return Delta{}, false
	}
	remain := 1 - a.Progress(now)
	return Delta{DX: d.DX * remain, DY: d.DY * remain}, true
}

// Done reports whether the animation has finished at now
func (a Animation) Done(now time.Time) bool {
	return !now.Before(a.Start.Add(a.Duration))
}

// Ease is the CSS timing function cubic-bezier(0.2, 0, 0.2, 1)
func Ease(t float64) float64 {
	return cubicBezier(0.2, 0, 0.2, 1, clamp01(t))
}

// cubicBezier evaluates a CSS-style timing curve with control points
// (x1, y1) and (x2, y2) at horizontal position x.
func cubicBezier(x1, y1, x2, y2, x float64) float64 {
	if x <= 0 || x >= 1 {
		return x
	}

	sample := func(a1, a2, t float64) float64 {
		// B(t) for a curve from 0 to 1
		return ((1-3*a2+3*a1)*t+(3*a2-6*a1))*t*t + 3*a1*t
	}
	slope := func(a1, a2, t float64) float64 {
		return 3*(1-3*a2+3*a1)*t*t + 2*(3*a2-6*a1)*t + 3*a1
	}

	// Newton-Raphson, falling back to bisection when the slope flattens
	t := x
	for range 8 {
		dx := sample(x1, x2, t) - x
		if math.Abs(dx) < 1e-7 {
			return sample(y1, y2, t)
		}
		s := slope(x1, x2, t)
		if math.Abs(s) < 1e-6 {
			break
		}
		t -= dx / s
	}

	lo, hi := 0.0, 1.0
	t = x
	for range 50 {
		v := sample(x1, x2, t)
		if math.Abs(v-x) < 1e-7 {
			break
		}
		if v < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return sample(y1, y2, t)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
