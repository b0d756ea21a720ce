package sched

import "math"

// EaseFunc maps linear progress in [0,1] to eased progress.
type EaseFunc func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseInOutQuad accelerates through the first half and decelerates after.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// Tween interpolates the float fields behind Targets toward To over Duration
// milliseconds. Starting values are captured when the tween is added.
type Tween struct {
	Targets    []*float64
	To         []float64
	Duration   float64
	Ease       EaseFunc
	OnUpdate   func()
	OnComplete func()

	from    []float64
	elapsed float64
	done    bool
}

// Progress returns linear progress in [0,1].
func (tw *Tween) Progress() float64 {
	if tw.Duration <= 0 {
		if tw.done {
			return 1
		}
		return 0
	}
	return math.Min(tw.elapsed/tw.Duration, 1)
}

// Done reports whether the tween completed or was cancelled.
func (tw *Tween) Done() bool { return tw.done }

func (tw *Tween) apply(progress float64) {
	ease := tw.Ease
	if ease == nil {
		ease = Linear
	}
	e := ease(progress)
	for i := range tw.from {
		*tw.Targets[i] = tw.from[i] + (tw.To[i]-tw.from[i])*e
	}
}

func (tw *Tween) finish() {
	for i := range tw.from {
		*tw.Targets[i] = tw.To[i]
	}
}

// Tweens owns a set of running tweens sharing one pause flag.
type Tweens struct {
	list   []*Tween
	paused bool
}

// NewTweens creates an empty, running tween set.
func NewTweens() *Tweens {
	return &Tweens{}
}

// Add starts tw, capturing the current values of its targets as the start.
func (ts *Tweens) Add(tw *Tween) *Tween {
	n := len(tw.Targets)
	if len(tw.To) < n {
		n = len(tw.To)
	}
	tw.from = make([]float64, n)
	for i := 0; i < n; i++ {
		tw.from[i] = *tw.Targets[i]
	}
	tw.elapsed = 0
	tw.done = false
	ts.list = append(ts.list, tw)
	return tw
}

// Cancel stops tw without completing it. The completion callback is not run.
func (ts *Tweens) Cancel(tw *Tween) bool {
	if tw == nil || tw.done {
		return false
	}
	tw.done = true
	ts.remove(tw)
	return true
}

// Update advances every running tween. While paused it does nothing. The
// completion callback runs exactly once, after the targets hold their end
// values.
func (ts *Tweens) Update(deltaMs float64) {
	if ts.paused || deltaMs < 0 || math.IsNaN(deltaMs) {
		return
	}
	running := append([]*Tween(nil), ts.list...)
	for _, tw := range running {
		if tw.done {
			continue
		}
		tw.elapsed += deltaMs
		if tw.elapsed < tw.Duration {
			tw.apply(tw.elapsed / tw.Duration)
			if tw.OnUpdate != nil {
				tw.OnUpdate()
			}
			continue
		}
		tw.elapsed = tw.Duration
		tw.finish()
		tw.done = true
		ts.remove(tw)
		if tw.OnUpdate != nil {
			tw.OnUpdate()
		}
		if tw.OnComplete != nil {
			tw.OnComplete()
		}
	}
}

func (ts *Tweens) remove(tw *Tween) {
	for i, cur := range ts.list {
		if cur == tw {
			ts.list = append(ts.list[:i], ts.list[i+1:]...)
			return
		}
	}
}

func (ts *Tweens) SetPaused(paused bool) { ts.paused = paused }
func (ts *Tweens) Paused() bool          { return ts.paused }

// Len returns the number of running tweens.
func (ts *Tweens) Len() int { return len(ts.list) }

// Clear cancels every running tween without completing it.
func (ts *Tweens) Clear() {
	for _, tw := range ts.list {
		tw.done = true
	}
	ts.list = nil
}
