package modsynth

import "math"

// VCO is a numerically controlled oscillator. Frequency may change every
// tick and may be negative; the phase accumulator wraps by floor so it stays
// in range for any sign or magnitude. Four waveforms are derived from the
// same phase each tick.
type VCO struct {
	// Inputs
	Frequency float64 // Hz

	// Outputs
	SawtoothOut float64 // ramp, [-1,1)
	SineOut     float64
	SquareOut   float64 // +1 or -1
	TriangleOut float64

	phase float64 // [0,1)

	rack   *Rack
	handle Handle
}

// NewVCO registers an oscillator running at the given initial frequency.
func NewVCO(r *Rack, frequency float64) *VCO {
	v := &VCO{Frequency: frequency, SawtoothOut: -1, SquareOut: 1}
	v.rack, v.handle = r, r.Register(v)
	return v
}

func (v *VCO) Update() {
	v.phase += v.Frequency * Dt
	v.phase -= math.Floor(v.phase)

	v.SawtoothOut = v.phase*2 - 1
	v.SineOut = math.Sin(v.phase * 2 * math.Pi)
	v.SquareOut = math.Round(v.phase)*-2 + 1
	v.TriangleOut = math.Abs(v.phase-0.5)*4 - 1
}

// Close removes the oscillator from its rack.
func (v *VCO) Close() {
	v.rack.Deregister(v.handle)
}
