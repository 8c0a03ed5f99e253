package components

// Stat is a named scalar with a current value, bounds, and a per-tick
// drift. Normalized() always lies in [0,1].
type Stat struct {
	Current float32
	Min     float32
	Max     float32
	Drift   float32 // applied once per tick by the stat-drift system
}

// Normalized returns Current scaled into [0,1] against [Min, Max].
func (s Stat) Normalized() float32 {
	if s.Max <= s.Min {
		return 0
	}
	v := (s.Current - s.Min) / (s.Max - s.Min)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Apply advances Current by Drift, clamped to [Min, Max].
func (s *Stat) Apply() {
	s.Current += s.Drift
	if s.Current < s.Min {
		s.Current = s.Min
	} else if s.Current > s.Max {
		s.Current = s.Max
	}
}

// Adjust nudges Current by delta, clamped to [Min, Max].
func (s *Stat) Adjust(delta float32) {
	s.Current += delta
	if s.Current < s.Min {
		s.Current = s.Min
	} else if s.Current > s.Max {
		s.Current = s.Max
	}
}

// StatsBundle holds the four survival stats every Agent carries. Initial
// values and drifts are supplied per-species by the species registry,
// which initializes current values and per-tick drifts.
type StatsBundle struct {
	Hunger Stat
	Thirst Stat
	Energy Stat
	Health Stat
}
