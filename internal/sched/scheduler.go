package sched

// Scheduler bundles the delayed calls and tweens driven by one loop.
type Scheduler struct {
	Timers *Timers
	Tweens *Tweens
}

// New creates a running scheduler.
func New() *Scheduler {
	return &Scheduler{Timers: NewTimers(), Tweens: NewTweens()}
}

// Update advances tweens, then delayed calls. A tween started by a delayed
// call therefore begins moving on the next update.
func (s *Scheduler) Update(deltaMs float64) {
	s.Tweens.Update(deltaMs)
	s.Timers.Update(deltaMs)
}

// SetPaused freezes or resumes both timers and tweens.
func (s *Scheduler) SetPaused(paused bool) {
	s.Timers.SetPaused(paused)
	s.Tweens.SetPaused(paused)
}

// Paused reports whether the scheduler is paused.
func (s *Scheduler) Paused() bool {
	return s.Timers.Paused() && s.Tweens.Paused()
}

// Clear drops every pending call and running tween. Neither completes.
func (s *Scheduler) Clear() {
	s.Timers.Clear()
	s.Tweens.Clear()
}
