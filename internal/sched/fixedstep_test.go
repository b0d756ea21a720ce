package sched

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedStep(t *testing.T) {
	tests := []struct {
		name        string
		acc         float64
		delta       float64
		wantSteps   int
		wantAcc     float64
		wantApplied float64
	}{
		{"one step", 0, 10, 1, 0, 10},
		{"carries remainder", 0, 14, 1, 4, 14},
		{"below one step", 3, 5, 0, 8, 5},
		{"catches up with carry", 9, 11, 2, 0, 11},
		{"clamped to the cap", 0, 1000, 5, 0, 50},
		{"remainder under a step survives the cap", 9, 50, 5, 9, 50},
		{"debt beyond the cap is dropped", 15, 50, 5, 0, 50},
		{"negative delta", 4, -20, 0, 4, 0},
		{"NaN delta", 4, math.NaN(), 0, 4, 0},
		{"NaN accumulator", math.NaN(), 10, 1, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := FixedStep(tt.acc, tt.delta, 10, 5)
			assert.Equal(t, tt.wantSteps, res.Steps)
			assert.InDelta(t, tt.wantAcc, res.Accumulator, 1e-9)
			assert.InDelta(t, tt.wantApplied, res.Applied, 1e-9)
		})
	}
}

func TestFixedStep_SixtyHertz(t *testing.T) {
	step := 1000.0 / 60.0

	res := FixedStep(0, 1000, step, 5)
	assert.Equal(t, 5, res.Steps)
	assert.Zero(t, res.Accumulator)

	acc := 0.0
	total := 0
	for i := 0; i < 60; i++ {
		res := FixedStep(acc, step, step, 5)
		acc = res.Accumulator
		total += res.Steps
	}
	assert.Equal(t, 60, total)
}

func TestFixedStep_InvalidStep(t *testing.T) {
	res := FixedStep(3, 100, 0, 5)
	assert.Zero(t, res.Steps)
	assert.Equal(t, 3.0, res.Accumulator)

	res = FixedStep(3, 100, 10, 0)
	assert.Zero(t, res.Steps)
}
