package sched

import "math"

// DelayedCall is a callback scheduled to run once after a delay.
type DelayedCall struct {
	delay   float64
	elapsed float64
	fn      func()
	done    bool
}

// Elapsed returns the time accumulated toward the delay.
func (c *DelayedCall) Elapsed() float64 { return c.elapsed }

// Done reports whether the call fired or was cancelled.
func (c *DelayedCall) Done() bool { return c.done }

// Timers owns a set of delayed calls sharing one pause flag.
type Timers struct {
	calls  []*DelayedCall
	paused bool
}

// NewTimers creates an empty, running timer set.
func NewTimers() *Timers {
	return &Timers{}
}

// After schedules fn to run once delayMs of unpaused time from now.
func (t *Timers) After(delayMs float64, fn func()) *DelayedCall {
	c := &DelayedCall{delay: delayMs, fn: fn}
	t.calls = append(t.calls, c)
	return c
}

// Cancel removes a pending call. It reports whether the call was pending.
func (t *Timers) Cancel(c *DelayedCall) bool {
	if c == nil || c.done {
		return false
	}
	c.done = true
	t.remove(c)
	return true
}

// Update advances every pending call. While paused it does nothing. A call
// is removed from the set before its callback runs, so callbacks may schedule
// or cancel freely without firing anything twice.
func (t *Timers) Update(deltaMs float64) {
	if t.paused || deltaMs < 0 || math.IsNaN(deltaMs) {
		return
	}
	pending := append([]*DelayedCall(nil), t.calls...)
	for _, c := range pending {
		if c.done {
			continue
		}
		c.elapsed += deltaMs
		if c.elapsed < c.delay {
			continue
		}
		c.done = true
		t.remove(c)
		if c.fn != nil {
			c.fn()
		}
	}
}

func (t *Timers) remove(c *DelayedCall) {
	for i, cur := range t.calls {
		if cur == c {
			t.calls = append(t.calls[:i], t.calls[i+1:]...)
			return
		}
	}
}

func (t *Timers) SetPaused(paused bool) { t.paused = paused }
func (t *Timers) Paused() bool          { return t.paused }

// Len returns the number of pending calls.
func (t *Timers) Len() int { return len(t.calls) }

// Clear cancels every pending call.
func (t *Timers) Clear() {
	for _, c := range t.calls {
		c.done = true
	}
	t.calls = nil
}
