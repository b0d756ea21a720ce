package game

// WarningBlink drives the flashing shown in the last part of a scared window.
type WarningBlink struct {
	ElapsedMs      float64 `json:"elapsed_ms"`
	NextToggleAtMs float64 `json:"next_toggle_at_ms"`
	ShowBaseColor  bool    `json:"show_base_color"`
}

// ScaredWindow is one pursuer's vulnerability window.
type ScaredWindow struct {
	RemainingMs float64       `json:"remaining_ms"`
	Warning     *WarningBlink `json:"warning,omitempty"`
}

// ScaredService owns the scared windows, keyed by pursuer. Every operation is
// idempotent; only the world tick advances windows, through Tick.
type ScaredService struct {
	windows map[EntityID]*ScaredWindow
}

func NewScaredService() *ScaredService {
	return &ScaredService{windows: make(map[EntityID]*ScaredWindow)}
}

// SetScared opens a full-length window for p. A running window is reset and
// its blink record dropped.
func (s *ScaredService) SetScared(p *Pursuer, durationMs float64) {
	p.Scared = true
	s.windows[p.ID] = &ScaredWindow{RemainingMs: durationMs}
}

// ClearScared closes p's window.
func (s *ScaredService) ClearScared(p *Pursuer) {
	p.Scared = false
	delete(s.windows, p.ID)
}

// ScareAllActive opens a window for every free, active, living pursuer and
// returns how many were scared.
func (s *ScaredService) ScareAllActive(pursuers []*Pursuer, durationMs float64) int {
	n := 0
	for _, p := range pursuers {
		if !p.Active || !p.Free || p.Dead {
			continue
		}
		s.SetScared(p, durationMs)
		n++
	}
	return n
}

// Window returns a copy of p's window.
func (s *ScaredService) Window(id EntityID) (ScaredWindow, bool) {
	w, ok := s.windows[id]
	if !ok {
		return ScaredWindow{}, false
	}
	out := *w
	if w.Warning != nil {
		blink := *w.Warning
		out.Warning = &blink
	}
	return out, true
}

// Len returns the number of open windows.
func (s *ScaredService) Len() int { return len(s.windows) }

// Tick counts every open window down by dtMs. A window entering its last
// ScaredWarningMs gets a blink record toggling every ScaredBlinkMs. Windows
// that run out are cleared; their pursuers are returned.
func (s *ScaredService) Tick(pursuers []*Pursuer, dtMs float64) []*Pursuer {
	if dtMs <= 0 {
		return nil
	}
	var expired []*Pursuer
	for _, p := range pursuers {
		w, ok := s.windows[p.ID]
		if !ok {
			continue
		}
		w.RemainingMs -= dtMs
		if w.RemainingMs <= 0 {
			s.ClearScared(p)
			expired = append(expired, p)
			continue
		}
		if w.RemainingMs > ScaredWarningMs {
			continue
		}
		if w.Warning == nil {
			w.Warning = &WarningBlink{NextToggleAtMs: ScaredBlinkMs}
			continue
		}
		w.Warning.ElapsedMs += dtMs
		for w.Warning.ElapsedMs >= w.Warning.NextToggleAtMs {
			w.Warning.ShowBaseColor = !w.Warning.ShowBaseColor
			w.Warning.NextToggleAtMs += ScaredBlinkMs
		}
	}
	return expired
}
