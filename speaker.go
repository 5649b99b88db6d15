package modsynth

// Speaker feeds its inputs into the rack's per-tick output accumulators.
// Multiple speakers mix additively; the tick driver resets the accumulators
// before each step and reads them after.
type Speaker struct {
	// Inputs
	LeftIn  float64
	RightIn float64

	rack   *Rack
	handle Handle
}

// NewSpeaker registers a speaker on the rack.
func NewSpeaker(r *Rack) *Speaker {
	s := &Speaker{}
	s.rack, s.handle = r, r.Register(s)
	return s
}

func (s *Speaker) Update() {
	s.rack.Mix(s.LeftIn, s.RightIn)
}

// Close removes the speaker from its rack.
func (s *Speaker) Close() {
	s.rack.Deregister(s.handle)
}
