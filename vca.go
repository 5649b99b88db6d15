package modsynth

// VCA is a value controlled amplifier: AudioOut = AudioIn * Amplitude,
// evaluated fresh every tick. It holds no state, so it also serves as a
// plain multiplier for control signals.
type VCA struct {
	// Inputs
	AudioIn   float64
	Amplitude float64

	// Outputs
	AudioOut float64

	rack   *Rack
	handle Handle
}

// NewVCA registers an amplifier with the given initial amplitude.
func NewVCA(r *Rack, amplitude float64) *VCA {
	a := &VCA{Amplitude: amplitude}
	a.rack, a.handle = r, r.Register(a)
	return a
}

func (a *VCA) Update() {
	a.AudioOut = a.AudioIn * a.Amplitude
}

// Close removes the amplifier from its rack.
func (a *VCA) Close() {
	a.rack.Deregister(a.handle)
}
