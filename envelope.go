package modsynth

import "math"

type envState int

const (
	envAttack envState = iota
	envDecay
	envRelease
)

// Envelope is an attack/decay/release generator. GateIn going high (> 0)
// starts the attack phase, which raises AmplitudeOut linearly to 1 over
// Attack seconds. The decay phase then halves AmplitudeOut every Decay
// seconds. GateIn going low (<= 0) forces the release phase, which halves
// AmplitudeOut every Release seconds. The amplitude is never hard-reset; it
// decays asymptotically toward zero.
//
// Attack, Decay and Release must be non-zero; a zero value divides by zero.
type Envelope struct {
	// Inputs
	GateIn  float64
	Attack  float64 // seconds
	Decay   float64 // half-life, seconds
	Release float64 // half-life, seconds

	// Outputs
	AmplitudeOut float64

	state envState

	rack   *Rack
	handle Handle
}

// NewEnvelope registers an envelope generator with the given times.
func NewEnvelope(r *Rack, attack, decay, release float64) *Envelope {
	e := &Envelope{Attack: attack, Decay: decay, Release: release, state: envRelease}
	e.rack, e.handle = r, r.Register(e)
	return e
}

func (e *Envelope) Update() {
	// A low gate always wins; a high gate only retriggers out of release.
	if e.GateIn <= 0 {
		e.state = envRelease
	} else if e.state == envRelease {
		e.state = envAttack
	}

	switch e.state {
	case envAttack:
		e.AmplitudeOut += Dt / e.Attack
		if e.AmplitudeOut >= 1 {
			e.AmplitudeOut = 1
			e.state = envDecay
		}
	case envDecay:
		e.AmplitudeOut *= math.Exp2(-Dt / e.Decay)
	case envRelease:
		e.AmplitudeOut *= math.Exp2(-Dt / e.Release)
	}
}

// Close removes the envelope from its rack.
func (e *Envelope) Close() {
	e.rack.Deregister(e.handle)
}
