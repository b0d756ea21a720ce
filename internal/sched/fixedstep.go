// Package sched provides the deterministic time primitives of the simulation:
// a fixed-step accumulator, pausable delayed calls and pausable tweens.
// Nothing here reads the wall clock; time only moves through Update calls.
package sched

import "math"

// epsilon absorbs float drift, so a delta of exactly n steps yields n steps.
const epsilon = 1e-9

// StepResult is the outcome of one FixedStep call.
type StepResult struct {
	Steps       int     // whole steps to simulate this frame
	Accumulator float64 // leftover time carried to the next frame
	Applied     float64 // frame delta after clamping
}

// FixedStep converts a raw frame delta into whole simulation steps. The delta
// is clamped to step*maxSubSteps; when the sub-step cap is reached with a full
// step still pending, the accumulator is dropped to zero instead of carrying
// the debt forward.
func FixedStep(acc, frameDelta, step float64, maxSubSteps int) StepResult {
	if step <= 0 || maxSubSteps <= 0 {
		return StepResult{Accumulator: acc}
	}
	if math.IsNaN(acc) || math.IsInf(acc, 0) || acc < 0 {
		acc = 0
	}
	if math.IsNaN(frameDelta) || frameDelta < 0 {
		frameDelta = 0
	}
	if limit := step * float64(maxSubSteps); frameDelta > limit {
		frameDelta = limit
	}

	acc += frameDelta
	steps := 0
	for acc+epsilon >= step && steps < maxSubSteps {
		acc -= step
		steps++
	}
	if acc < 0 || (steps == maxSubSteps && acc+epsilon >= step) {
		acc = 0
	}
	return StepResult{Steps: steps, Accumulator: acc, Applied: frameDelta}
}
