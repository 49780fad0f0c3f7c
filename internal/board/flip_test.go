package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvert(t *testing.T) {
	t.Parallel()

	first := Snapshot{
		"a": {Top: 0, Left: 0},
		"b": {Top: 10, Left: 0},
		"c": {Top: 20, Left: 0},
		"gone": {Top: 30, Left: 0},
	}
	last := Snapshot{
		"a": {Top: 0.5, Left: 0},
		"b": {Top: 20, Left: 0},
		"c": {Top: 10, Left: 40},
		"new": {Top: 0, Left: 0},
	}

	deltas := Invert(first, last)
	assert.Equal(t, map[string]Delta{
		"b": {DX: 0, DY: -10},
		"c": {DX: -40, DY: 10},
	}, deltas)
}

func TestAnimation(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	anim, ok := NewAnimation(
		Snapshot{"a": {Top: 0}},
		Snapshot{"a": {Top: 8}},
		start, 0,
	)
	require.True(t, ok)
	assert.Equal(t, DefaultDuration, anim.Duration)

	d, ok := anim.Offset("a", start)
	require.True(t, ok)
	assert.InDelta(t, -8, d.DY, 1e-9)

	mid, ok := anim.Offset("a", start.Add(150*time.Millisecond))
	require.True(t, ok)
	assert.Greater(t, mid.DY, -8.0)
	assert.Less(t, mid.DY, 0.0)

	_, ok = anim.Offset("a", start.Add(DefaultDuration))
	assert.False(t, ok)
	assert.True(t, anim.Done(start.Add(DefaultDuration)))
	assert.False(t, anim.Done(start.Add(time.Millisecond)))

	_, ok = anim.Offset("other", start)
	assert.False(t, ok)
}

func TestNewAnimationNothingMoved(t *testing.T) {
	t.Parallel()

	_, ok := NewAnimation(Snapshot{"a": {}}, Snapshot{"a": {}}, time.Now(), time.Second)
	assert.False(t, ok)
}

func TestEase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Ease(0))
	assert.Equal(t, 1.0, Ease(1))
	assert.Equal(t, 1.0, Ease(3))

	prev := 0.0
	for i := 1; i < 100; i++ {
		v := Ease(float64(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
	// the curve front-loads motion
	assert.Greater(t, Ease(0.5), 0.5)
}
