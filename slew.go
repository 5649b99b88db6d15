package modsynth

import "math"

// LinearSlew limits how fast its output may follow its input: each tick the
// difference is clamped to Rate units per second, producing a constant-rate
// ramp toward In.
type LinearSlew struct {
	// Inputs
	In   float64
	Rate float64 // units per second

	// Outputs
	Out float64

	rack   *Rack
	handle Handle
}

// NewLinearSlew registers a linear slew limiter with the given rate.
func NewLinearSlew(r *Rack, rate float64) *LinearSlew {
	s := &LinearSlew{Rate: rate}
	s.rack, s.handle = r, r.Register(s)
	return s
}

func (s *LinearSlew) Update() {
	delta := s.In - s.Out
	limit := s.Rate * Dt
	if delta > limit {
		delta = limit
	} else if delta < -limit {
		delta = -limit
	}
	s.Out += delta
}

// Close removes the slew limiter from its rack.
func (s *LinearSlew) Close() {
	s.rack.Deregister(s.handle)
}

// ExpSlew limits the rate of change of its output in the log2 domain: Rate
// is octaves per second. Useful for gliding between frequencies.
//
// In and Out must stay strictly positive. Feeding a non-positive input (or
// constructing with a non-positive initial value) yields a non-finite
// output; there is no runtime guard.
type ExpSlew struct {
	// Inputs
	In   float64
	Rate float64 // octaves per second

	// Outputs
	Out float64

	rack   *Rack
	handle Handle
}

// NewExpSlew registers an exponential slew limiter. initial is the starting
// output value and must be greater than zero.
func NewExpSlew(r *Rack, rate, initial float64) *ExpSlew {
	s := &ExpSlew{Rate: rate, In: initial, Out: initial}
	s.rack, s.handle = r, r.Register(s)
	return s
}

func (s *ExpSlew) Update() {
	delta := math.Log2(s.In / s.Out)
	limit := s.Rate * Dt
	if delta > limit {
		delta = limit
	} else if delta < -limit {
		delta = -limit
	}
	s.Out *= math.Exp2(delta)
}

// Close removes the slew limiter from its rack.
func (s *ExpSlew) Close() {
	s.rack.Deregister(s.handle)
}
