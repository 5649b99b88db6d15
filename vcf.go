package modsynth

import "math"

// VCF is a 12 dB/octave Chamberlin state variable filter. It filters AudioIn
// according to Cutoff and Resonance and provides simultaneous lowpass,
// bandpass and highpass outputs. Resonance must be greater than zero; 1 is
// heavily damped, larger values ring more.
type VCF struct {
	// Inputs
	AudioIn   float64
	Cutoff    float64 // Hz
	Resonance float64 // > 0

	// Outputs
	LowpassOut  float64
	BandpassOut float64
	HighpassOut float64

	rack   *Rack
	handle Handle
}

// NewVCF registers a filter with the given initial cutoff and resonance.
func NewVCF(r *Rack, cutoff, resonance float64) *VCF {
	f := &VCF{Cutoff: cutoff, Resonance: resonance}
	f.rack, f.handle = r, r.Register(f)
	return f
}

func (f *VCF) Update() {
	// The coefficient is clamped at asin(0.5) so the integrators stay stable
	// no matter how high a cutoff is requested.
	g := 2 * math.Sin(math.Min(math.Pi*f.Cutoff*Dt, math.Asin(0.5)))
	q := 1 / f.Resonance

	// Update order is load-bearing: lowpass integrates the previous
	// bandpass, highpass is derived from the fresh lowpass, and the
	// bandpass integrator moves last using that highpass.
	f.LowpassOut += g * f.BandpassOut
	f.HighpassOut = f.AudioIn - q*f.BandpassOut - f.LowpassOut
	f.BandpassOut += g * f.HighpassOut
}

// Close removes the filter from its rack.
func (f *VCF) Close() {
	f.rack.Deregister(f.handle)
}
