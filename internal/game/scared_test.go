package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePursuer(id EntityID) *Pursuer {
	p := NewPursuer(id, Point{X: 1, Y: 1})
	p.Free = true
	return p
}

func TestScaredService_ScareAllActive(t *testing.T) {
	free := freePursuer(1)
	jailed := NewPursuer(2, Point{X: 4, Y: 3})
	dead := freePursuer(3)
	dead.Dead = true
	inactive := freePursuer(4)
	inactive.Active = false

	s := NewScaredService()
	n := s.ScareAllActive([]*Pursuer{free, jailed, dead, inactive}, ScaredDurationMs)

	assert.Equal(t, 1, n)
	assert.Equal(t, 1, s.Len())
	assert.True(t, free.Scared)
	assert.False(t, jailed.Scared)
	assert.False(t, dead.Scared)
	assert.False(t, inactive.Scared)
}

func TestScaredService_TickBlinksAndExpires(t *testing.T) {
	p := freePursuer(1)
	pursuers := []*Pursuer{p}
	s := NewScaredService()
	s.SetScared(p, ScaredDurationMs)

	steps := []struct {
		name          string
		dt            float64
		wantRemaining float64
		wantBlink     bool
		wantElapsed   float64
		wantShowBase  bool
		wantNext      float64
	}{
		{"before the warning", 3000, 3000, false, 0, false, 0},
		{"warning starts", 1000, 2000, true, 0, false, ScaredBlinkMs},
		{"no toggle yet", 100, 1900, true, 100, false, ScaredBlinkMs},
		{"first toggle", 150, 1750, true, 250, true, 2 * ScaredBlinkMs},
		{"two toggles in one tick", 600, 1150, true, 850, true, 4 * ScaredBlinkMs},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			assert.Empty(t, s.Tick(pursuers, step.dt))
			w, ok := s.Window(p.ID)
			require.True(t, ok)
			assert.InDelta(t, step.wantRemaining, w.RemainingMs, 1e-9)
			if !step.wantBlink {
				assert.Nil(t, w.Warning)
				return
			}
			require.NotNil(t, w.Warning)
			assert.InDelta(t, step.wantElapsed, w.Warning.ElapsedMs, 1e-9)
			assert.InDelta(t, step.wantNext, w.Warning.NextToggleAtMs, 1e-9)
			assert.Equal(t, step.wantShowBase, w.Warning.ShowBaseColor)
		})
	}

	expired := s.Tick(pursuers, 1150)
	assert.Equal(t, []*Pursuer{p}, expired)
	assert.False(t, p.Scared)
	assert.Zero(t, s.Len())
}

func TestScaredService_SetScaredResetsWindow(t *testing.T) {
	p := freePursuer(1)
	s := NewScaredService()
	s.SetScared(p, ScaredDurationMs)
	s.Tick([]*Pursuer{p}, 5000)
	s.Tick([]*Pursuer{p}, 10)

	s.SetScared(p, ScaredDurationMs)
	w, ok := s.Window(p.ID)
	require.True(t, ok)
	assert.Equal(t, ScaredDurationMs, w.RemainingMs)
	assert.Nil(t, w.Warning)
}

func TestScaredService_IgnoresNonPositiveDelta(t *testing.T) {
	p := freePursuer(1)
	s := NewScaredService()
	s.SetScared(p, 100)

	assert.Nil(t, s.Tick([]*Pursuer{p}, 0))
	assert.Nil(t, s.Tick([]*Pursuer{p}, -50))
	w, _ := s.Window(p.ID)
	assert.Equal(t, 100.0, w.RemainingMs)
}

func TestScaredService_WindowIsACopy(t *testing.T) {
	p := freePursuer(1)
	s := NewScaredService()
	s.SetScared(p, ScaredWarningMs)
	s.Tick([]*Pursuer{p}, 10)

	w, ok := s.Window(p.ID)
	require.True(t, ok)
	require.NotNil(t, w.Warning)
	w.RemainingMs = 0
	w.Warning.ShowBaseColor = true

	again, _ := s.Window(p.ID)
	assert.InDelta(t, ScaredWarningMs-10, again.RemainingMs, 1e-9)
	assert.False(t, again.Warning.ShowBaseColor)
}

func TestScaredService_ClearScared(t *testing.T) {
	p := freePursuer(1)
	s := NewScaredService()
	s.SetScared(p, ScaredDurationMs)
	s.ClearScared(p)
	s.ClearScared(p)

	assert.False(t, p.Scared)
	_, ok := s.Window(p.ID)
	assert.False(t, ok)
}
