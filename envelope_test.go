package modsynth

import (
	"math"
	"testing"
)

func TestEnvelopeAttackReachesUnityOnSchedule(t *testing.T) {
	r := NewRack()
	attackTicks := 512
	e := NewEnvelope(r, float64(attackTicks)*Dt, 1, 0.1)
	e.GateIn = 1

	for i := 0; i < attackTicks-1; i++ {
		r.Step()
		if e.AmplitudeOut >= 1 {
			t.Fatalf("amplitude hit 1 at tick %d, want not before %d", i+1, attackTicks)
		}
	}
	r.Step()
	if e.AmplitudeOut != 1 {
		t.Errorf("amplitude after %d ticks: got %f, want 1", attackTicks, e.AmplitudeOut)
	}
}

func TestEnvelopeDecayHalfLife(t *testing.T) {
	r := NewRack()
	e := NewEnvelope(r, 512*Dt, 0.5, 0.1)
	e.GateIn = 1

	// Run through the attack into decay.
	for i := 0; i < 512; i++ {
		r.Step()
	}
	if e.AmplitudeOut != 1 {
		t.Fatalf("attack did not complete: amplitude %f", e.AmplitudeOut)
	}

	// Half a second of decay at a 0.5 s half-life halves the amplitude.
	for i := 0; i < SampleRate/2; i++ {
		r.Step()
	}
	if math.Abs(e.AmplitudeOut-0.5) > 1e-6 {
		t.Errorf("after one half-life: got %f, want 0.5", e.AmplitudeOut)
	}
	for i := 0; i < SampleRate/2; i++ {
		r.Step()
	}
	if math.Abs(e.AmplitudeOut-0.25) > 1e-6 {
		t.Errorf("after two half-lives: got %f, want 0.25", e.AmplitudeOut)
	}
}

func TestEnvelopeReleaseFromAnyState(t *testing.T) {
	r := NewRack()
	e := NewEnvelope(r, 1, 1, 0.25)
	e.GateIn = 1

	// Release interrupts the attack partway up.
	for i := 0; i < 4800; i++ {
		r.Step()
	}
	mid := e.AmplitudeOut
	if mid <= 0 || mid >= 1 {
		t.Fatalf("mid-attack amplitude %f, want in (0,1)", mid)
	}

	e.GateIn = 0
	for i := 0; i < SampleRate/4; i++ {
		r.Step()
	}
	if math.Abs(e.AmplitudeOut-mid/2) > 1e-6 {
		t.Errorf("after one release half-life: got %f, want %f", e.AmplitudeOut, mid/2)
	}

	// Amplitude decays asymptotically, never reaching zero.
	for i := 0; i < SampleRate; i++ {
		r.Step()
	}
	if e.AmplitudeOut <= 0 {
		t.Errorf("amplitude hard-reset to %f, want > 0", e.AmplitudeOut)
	}
}

func TestEnvelopeGateHeldHighDoesNotRetrigger(t *testing.T) {
	r := NewRack()
	e := NewEnvelope(r, 512*Dt, 1, 0.1)
	e.GateIn = 1

	for i := 0; i < 512+100; i++ {
		r.Step()
	}
	inDecay := e.AmplitudeOut
	if inDecay >= 1 {
		t.Fatalf("expected decay to have started, amplitude %f", inDecay)
	}

	// Gate stays high: the envelope must keep decaying, not re-attack.
	r.Step()
	if e.AmplitudeOut >= inDecay {
		t.Errorf("amplitude rose from %f to %f with gate held", inDecay, e.AmplitudeOut)
	}

	// A fresh rising edge out of release does retrigger.
	e.GateIn = 0
	for i := 0; i < 100; i++ {
		r.Step()
	}
	released := e.AmplitudeOut
	e.GateIn = 1
	r.Step()
	if e.AmplitudeOut <= released {
		t.Errorf("amplitude %f did not rise on retrigger from %f", e.AmplitudeOut, released)
	}
}
