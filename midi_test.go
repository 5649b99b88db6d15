package modsynth

import (
	"testing"

	"github.com/cbegin/modsynth-go/internal/note"
)

func TestMIDIHighestNotePriorityAndVelocityLatch(t *testing.T) {
	r := NewRack()
	m := NewMIDI(r)
	ch := &m.Channels[0]

	m.Push(Event{Kind: EventNoteOn, Channel: 0, Note: 60, Value: 100})
	m.Push(Event{Kind: EventNoteOn, Channel: 0, Note: 64, Value: 80})
	r.Step()

	if ch.Gate != 1 {
		t.Errorf("gate %f, want 1", ch.Gate)
	}
	if want := note.MIDIFrequency(64); ch.Frequency != want {
		t.Errorf("frequency %f, want %f (highest held note)", ch.Frequency, want)
	}
	if want := 100.0 / 127; ch.Velocity != want {
		t.Errorf("velocity %f, want %f (latched from the first note)", ch.Velocity, want)
	}

	// Releasing the top note retunes to the remaining note, gate stays high.
	m.Push(Event{Kind: EventNoteOff, Channel: 0, Note: 64})
	r.Step()
	if ch.Gate != 1 {
		t.Errorf("gate %f after partial release, want 1", ch.Gate)
	}
	if want := note.MIDIFrequency(60); ch.Frequency != want {
		t.Errorf("frequency %f after partial release, want %f", ch.Frequency, want)
	}

	// Releasing the last note drops the gate and records release velocity.
	m.Push(Event{Kind: EventNoteOff, Channel: 0, Note: 60})
	r.Step()
	if ch.Gate != 0 {
		t.Errorf("gate %f after full release, want 0", ch.Gate)
	}
	if want := 100.0 / 127; ch.ReleaseVelocity != want {
		t.Errorf("release velocity %f, want %f", ch.ReleaseVelocity, want)
	}
	// The frequency holds its last value after release.
	if want := note.MIDIFrequency(60); ch.Frequency != want {
		t.Errorf("frequency %f after release, want %f", ch.Frequency, want)
	}
}

func TestMIDINoteOnVelocityZeroIsNoteOff(t *testing.T) {
	r := NewRack()
	m := NewMIDI(r)
	ch := &m.Channels[3]

	m.Push(Event{Kind: EventNoteOn, Channel: 3, Note: 72, Value: 64})
	m.Push(Event{Kind: EventNoteOn, Channel: 3, Note: 72, Value: 0})
	r.Step()

	if ch.Gate != 0 {
		t.Errorf("gate %f, want 0", ch.Gate)
	}
	if want := 64.0 / 127; ch.ReleaseVelocity != want {
		t.Errorf("release velocity %f, want %f", ch.ReleaseVelocity, want)
	}
}

func TestMIDIChordGateNeverRetriggers(t *testing.T) {
	r := NewRack()
	m := NewMIDI(r)
	ch := &m.Channels[0]

	m.Push(Event{Kind: EventNoteOn, Channel: 0, Note: 60, Value: 100})
	m.Push(Event{Kind: EventNoteOn, Channel: 0, Note: 64, Value: 80})
	// Release and re-press the sounding top note while 60 stays held.
	m.Push(Event{Kind: EventNoteOff, Channel: 0, Note: 64})
	m.Push(Event{Kind: EventNoteOn, Channel: 0, Note: 64, Value: 50})
	r.Step()

	if ch.Gate != 1 {
		t.Errorf("gate %f, want 1 throughout", ch.Gate)
	}
	// Velocity stays latched from the silence-to-sound transition.
	if want := 100.0 / 127; ch.Velocity != want {
		t.Errorf("velocity %f, want %f", ch.Velocity, want)
	}
}

func TestMIDIAftertouch(t *testing.T) {
	r := NewRack()
	m := NewMIDI(r)
	ch := &m.Channels[0]

	m.Push(Event{Kind: EventNoteOn, Channel: 0, Note: 60, Value: 100})
	m.Push(Event{Kind: EventNoteOn, Channel: 0, Note: 64, Value: 80})
	// Pressure on a held note that is not the sounding one is ignored.
	m.Push(Event{Kind: EventKeyPressure, Channel: 0, Note: 60, Value: 127})
	r.Step()
	if ch.Aftertouch != 0 {
		t.Errorf("aftertouch %f after off-note pressure, want 0", ch.Aftertouch)
	}

	// Pressure on the sounding top note applies.
	m.Push(Event{Kind: EventKeyPressure, Channel: 0, Note: 64, Value: 127})
	r.Step()
	if ch.Aftertouch != 1 {
		t.Errorf("aftertouch %f, want 1", ch.Aftertouch)
	}

	// Channel pressure applies unconditionally.
	m.Push(Event{Kind: EventChannelPressure, Channel: 0, Value: 64})
	r.Step()
	if want := 64.0 / 127; ch.Aftertouch != want {
		t.Errorf("aftertouch %f, want %f", ch.Aftertouch, want)
	}
}

func TestMIDIPitchBendAndControlChange(t *testing.T) {
	r := NewRack()
	m := NewMIDI(r)
	ch := &m.Channels[0]

	m.Push(Event{Kind: EventPitchBend, Channel: 0, Bend: 4096})
	m.Push(Event{Kind: EventControlChange, Channel: 0, Note: 7, Value: 100})
	r.Step()

	if ch.PitchBend != 1 {
		t.Errorf("pitch bend %f, want 1", ch.PitchBend)
	}
	if want := 100.0 / 127; ch.Parameter[7] != want {
		t.Errorf("parameter 7 = %f, want %f", ch.Parameter[7], want)
	}

	m.Push(Event{Kind: EventPitchBend, Channel: 0, Bend: -8192})
	r.Step()
	if ch.PitchBend != -2 {
		t.Errorf("pitch bend %f, want -2", ch.PitchBend)
	}
}

func TestMIDIChannelsAreIndependent(t *testing.T) {
	r := NewRack()
	m := NewMIDI(r)

	m.Push(Event{Kind: EventNoteOn, Channel: 5, Note: 60, Value: 100})
	r.Step()

	if m.Channels[5].Gate != 1 {
		t.Errorf("channel 5 gate %f, want 1", m.Channels[5].Gate)
	}
	for i, ch := range m.Channels {
		if i == 5 {
			continue
		}
		if ch.Gate != 0 || ch.Frequency != 0 {
			t.Errorf("channel %d touched: gate %f, frequency %f", i, ch.Gate, ch.Frequency)
		}
	}
}

func TestMIDIUnknownKindIgnored(t *testing.T) {
	r := NewRack()
	m := NewMIDI(r)

	m.Push(Event{Kind: EventKind(99), Channel: 0, Note: 60, Value: 100})
	r.Step()

	ch := &m.Channels[0]
	if ch.Gate != 0 || ch.Frequency != 0 || ch.Velocity != 0 {
		t.Errorf("unknown event mutated channel state: %+v", ch)
	}
}

func TestMIDIEventsApplyOnlyDuringUpdate(t *testing.T) {
	r := NewRack()
	m := NewMIDI(r)
	ch := &m.Channels[0]

	m.Push(Event{Kind: EventNoteOn, Channel: 0, Note: 60, Value: 100})
	if ch.Gate != 0 {
		t.Fatalf("event applied before the translator's scheduled update")
	}
	r.Step()
	if ch.Gate != 1 {
		t.Errorf("gate %f after update, want 1", ch.Gate)
	}
}

func TestMIDIDrainIsBoundedAndLossyWhenFull(t *testing.T) {
	r := NewRack()
	m := NewMIDI(r)

	for i := 0; i < eventBacklog; i++ {
		if !m.Push(Event{Kind: EventControlChange, Channel: 0, Note: uint8(i % 128), Value: 1}) {
			t.Fatalf("push %d rejected below capacity", i)
		}
	}
	if m.Push(Event{Kind: EventControlChange, Channel: 0, Note: 0, Value: 1}) {
		t.Error("push succeeded beyond capacity, want drop")
	}

	// One update drains the whole backlog.
	r.Step()
	if m.Push(Event{Kind: EventControlChange, Channel: 0, Note: 0, Value: 1}) != true {
		t.Error("queue not drained by a single update")
	}
}
