package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_PauseFreezes(t *testing.T) {
	s := New()
	fired := 0
	completed := 0
	value := 0.0

	s.Timers.After(100, func() { fired++ })
	s.Tweens.Add(&Tween{
		Targets:    []*float64{&value},
		To:         []float64{100},
		Duration:   100,
		OnComplete: func() { completed++ },
	})

	s.Update(50)
	assert.InDelta(t, 50.0, value, 1e-9)
	assert.Zero(t, fired)

	s.SetPaused(true)
	assert.True(t, s.Paused())
	s.Update(1000)
	assert.InDelta(t, 50.0, value, 1e-9)
	assert.Zero(t, fired)

	s.SetPaused(false)
	s.Update(50)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 100.0, value)

	s.Update(500)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, completed)
}

func TestScheduler_TweenStartedByTimerMovesNextUpdate(t *testing.T) {
	s := New()
	value := 0.0
	s.Timers.After(10, func() {
		s.Tweens.Add(&Tween{Targets: []*float64{&value}, To: []float64{1}, Duration: 10})
	})

	s.Update(10)
	assert.Zero(t, value)
	assert.Equal(t, 1, s.Tweens.Len())

	s.Update(10)
	assert.Equal(t, 1.0, value)
}

func TestScheduler_Clear(t *testing.T) {
	s := New()
	fired := false
	completed := false
	value := 0.0
	call := s.Timers.After(10, func() { fired = true })
	tw := s.Tweens.Add(&Tween{
		Targets:    []*float64{&value},
		To:         []float64{1},
		Duration:   10,
		OnComplete: func() { completed = true },
	})

	s.Clear()
	s.Update(100)

	assert.False(t, fired)
	assert.False(t, completed)
	assert.True(t, call.Done())
	assert.True(t, tw.Done())
	assert.Zero(t, s.Timers.Len())
	assert.Zero(t, s.Tweens.Len())
}

func TestTimers(t *testing.T) {
	t.Run("cancel", func(t *testing.T) {
		timers := NewTimers()
		fired := false
		c := timers.After(10, func() { fired = true })

		assert.True(t, timers.Cancel(c))
		assert.False(t, timers.Cancel(c))
		timers.Update(20)
		assert.False(t, fired)
	})

	t.Run("call scheduled from a callback waits", func(t *testing.T) {
		timers := NewTimers()
		var order []string
		timers.After(10, func() {
			order = append(order, "outer")
			timers.After(0, func() { order = append(order, "inner") })
		})

		timers.Update(10)
		assert.Equal(t, []string{"outer"}, order)
		timers.Update(0)
		assert.Equal(t, []string{"outer", "inner"}, order)
	})

	t.Run("callback cancels a sibling", func(t *testing.T) {
		timers := NewTimers()
		firedB := false
		var b *DelayedCall
		timers.After(5, func() { timers.Cancel(b) })
		b = timers.After(5, func() { firedB = true })

		timers.Update(5)
		assert.False(t, firedB)
		assert.Zero(t, timers.Len())
	})

	t.Run("elapsed accumulates", func(t *testing.T) {
		timers := NewTimers()
		c := timers.After(100, nil)
		timers.Update(30)
		timers.Update(30)
		assert.Equal(t, 60.0, c.Elapsed())
		assert.False(t, c.Done())
		timers.Update(40)
		assert.True(t, c.Done())
	})
}

func TestTweens(t *testing.T) {
	t.Run("progress and updates", func(t *testing.T) {
		tweens := NewTweens()
		x, y := 10.0, 0.0
		updates := 0
		tw := tweens.Add(&Tween{
			Targets:  []*float64{&x, &y},
			To:       []float64{20, -40},
			Duration: 200,
			OnUpdate: func() { updates++ },
		})

		tweens.Update(50)
		assert.InDelta(t, 0.25, tw.Progress(), 1e-9)
		assert.InDelta(t, 12.5, x, 1e-9)
		assert.InDelta(t, -10.0, y, 1e-9)

		tweens.Update(500)
		assert.Equal(t, 1.0, tw.Progress())
		assert.Equal(t, 20.0, x)
		assert.Equal(t, -40.0, y)
		assert.Equal(t, 2, updates)
		assert.True(t, tw.Done())
	})

	t.Run("cancel skips completion", func(t *testing.T) {
		tweens := NewTweens()
		v := 0.0
		completed := false
		tw := tweens.Add(&Tween{Targets: []*float64{&v}, To: []float64{1}, Duration: 10, OnComplete: func() { completed = true }})

		require.True(t, tweens.Cancel(tw))
		assert.False(t, tweens.Cancel(tw))
		tweens.Update(20)
		assert.False(t, completed)
		assert.Zero(t, v)
	})

	t.Run("zero duration completes on first update", func(t *testing.T) {
		tweens := NewTweens()
		v := 3.0
		tw := tweens.Add(&Tween{Targets: []*float64{&v}, To: []float64{7}})
		assert.Zero(t, tw.Progress())

		tweens.Update(0)
		assert.Equal(t, 7.0, v)
		assert.Equal(t, 1.0, tw.Progress())
	})
}

func TestEaseInOutQuad(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.125},
		{0.5, 0.5},
		{0.75, 0.875},
		{1, 1},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, EaseInOutQuad(tt.in), 1e-9, "t=%v", tt.in)
	}
}
