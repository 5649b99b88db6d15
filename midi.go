package modsynth

import (
	"fmt"
	"log/slog"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/cbegin/modsynth-go/internal/note"
)

// EventKind tags a discrete control event.
type EventKind int

const (
	EventNoteOn EventKind = iota
	EventNoteOff
	EventKeyPressure
	EventChannelPressure
	EventPitchBend
	EventControlChange
)

// Event is one discrete control event addressed to a translator channel.
// Note doubles as the controller number for EventControlChange; Value is
// the 7-bit velocity, pressure or controller value; Bend is only meaningful
// for EventPitchBend.
type Event struct {
	Kind    EventKind
	Channel uint8 // 0-15
	Note    uint8 // 0-127
	Value   uint8 // 0-127
	Bend    int16 // -8192..8191
}

// Channel is the aggregated continuous state of one MIDI channel. The
// exported fields are output ports; wire them like any other module output.
type Channel struct {
	Frequency       float64      // frequency of the highest held note, Hz
	Velocity        float64      // latched when a note starts from silence, 0..1
	ReleaseVelocity float64      // Velocity recorded when the last note released
	Gate            float64      // 1 while any note is held, else 0
	Aftertouch      float64      // 0..1
	PitchBend       float64      // bipolar, roughly -2..2
	Parameter       [128]float64 // controller values, 0..1

	notes   [128]bool
	topNote int // note Frequency was computed from, -1 before any note
}

func (c *Channel) held() bool {
	for _, on := range c.notes {
		if on {
			return true
		}
	}
	return false
}

// retune points Frequency at the highest held note.
func (c *Channel) retune() {
	for n := 127; n >= 0; n-- {
		if c.notes[n] {
			c.topNote = n
			c.Frequency = note.MIDIFrequency(uint8(n))
			return
		}
	}
}

func (c *Channel) noteOff(n uint8) {
	c.notes[n&0x7f] = false
	if !c.held() {
		c.ReleaseVelocity = c.Velocity
		c.Gate = 0
		return
	}
	// Releasing one note of a chord retunes but does not drop the gate.
	c.retune()
}

// MIDI translates discrete note and controller events into continuous
// per-channel signals. Events arrive asynchronously, through Push or a
// virtual input port, and take effect when the translator's scheduled
// Update drains them. The drain is bounded: Update applies everything
// already queued and returns without waiting.
type MIDI struct {
	// Outputs
	Channels [16]Channel

	events chan Event

	drv  *rtmididrv.Driver
	in   drivers.In
	stop func()

	rack   *Rack
	handle Handle
}

const eventBacklog = 256

// NewMIDI registers a translator with no transport attached. Feed it with
// Push, or attach a port with OpenVirtualPort.
func NewMIDI(r *Rack) *MIDI {
	m := &MIDI{events: make(chan Event, eventBacklog)}
	for i := range m.Channels {
		m.Channels[i].topNote = -1
	}
	m.rack, m.handle = r, r.Register(m)
	return m
}

// OpenVirtualPort creates a virtual MIDI input port with the given name and
// starts listening; incoming messages are queued for the next Update.
func (m *MIDI) OpenVirtualPort(name string) error {
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("midi driver: %w", err)
	}
	in, err := drv.OpenVirtualIn(name)
	if err != nil {
		drv.Close()
		return fmt.Errorf("midi port %q: %w", name, err)
	}
	stop, err := midi.ListenTo(in, m.receive, midi.HandleError(func(err error) {
		slog.Warn("midi listener", "port", name, "err", err)
	}))
	if err != nil {
		in.Close()
		drv.Close()
		return fmt.Errorf("midi listen on %q: %w", name, err)
	}
	m.drv, m.in, m.stop = drv, in, stop
	return nil
}

// receive runs on the transport's goroutine and translates raw messages
// into queued events. Message types without a translation are dropped.
func (m *MIDI) receive(msg midi.Message, _ int32) {
	var ch, b1, b2 uint8
	var rel int16
	var abs uint16
	switch {
	case msg.GetNoteOn(&ch, &b1, &b2):
		m.Push(Event{Kind: EventNoteOn, Channel: ch, Note: b1, Value: b2})
	case msg.GetNoteOff(&ch, &b1, &b2):
		m.Push(Event{Kind: EventNoteOff, Channel: ch, Note: b1, Value: b2})
	case msg.GetPolyAfterTouch(&ch, &b1, &b2):
		m.Push(Event{Kind: EventKeyPressure, Channel: ch, Note: b1, Value: b2})
	case msg.GetAfterTouch(&ch, &b1):
		m.Push(Event{Kind: EventChannelPressure, Channel: ch, Value: b1})
	case msg.GetPitchBend(&ch, &rel, &abs):
		m.Push(Event{Kind: EventPitchBend, Channel: ch, Bend: rel})
	case msg.GetControlChange(&ch, &b1, &b2):
		m.Push(Event{Kind: EventControlChange, Channel: ch, Note: b1, Value: b2})
	}
}

// Push queues an event without blocking. It reports false if the backlog
// was full and the event was dropped.
func (m *MIDI) Push(ev Event) bool {
	select {
	case m.events <- ev:
		return true
	default:
		return false
	}
}

// Update applies every event queued so far, then returns. It never waits
// for new events, so the tick thread cannot block on transport I/O.
func (m *MIDI) Update() {
	for {
		select {
		case ev := <-m.events:
			m.apply(ev)
		default:
			return
		}
	}
}

func (m *MIDI) apply(ev Event) {
	if int(ev.Channel) >= len(m.Channels) {
		return
	}
	ch := &m.Channels[ev.Channel]

	switch ev.Kind {
	case EventNoteOn:
		if ev.Value == 0 {
			// Note-on with velocity zero is a note-off.
			ch.noteOff(ev.Note)
			return
		}
		if !ch.held() {
			// Velocity latches only on the transition out of silence, not
			// on notes added to a sounding chord.
			ch.Velocity = float64(ev.Value) / 127
		}
		ch.notes[ev.Note&0x7f] = true
		ch.retune()
		ch.Gate = 1

	case EventNoteOff:
		ch.noteOff(ev.Note)

	case EventKeyPressure:
		if int(ev.Note) == ch.topNote {
			ch.Aftertouch = float64(ev.Value) / 127
		}

	case EventChannelPressure:
		ch.Aftertouch = float64(ev.Value) / 127

	case EventPitchBend:
		ch.PitchBend = float64(ev.Bend) / 4096

	case EventControlChange:
		ch.Parameter[ev.Note&0x7f] = float64(ev.Value) / 127
	}
	// Unrecognized kinds are silently ignored.
}

// Close stops the listener, releases the port and driver, and removes the
// translator from its rack. Channel state is left intact.
func (m *MIDI) Close() error {
	if m.stop != nil {
		m.stop()
		m.stop = nil
	}
	var err error
	if m.in != nil {
		err = m.in.Close()
		m.in = nil
	}
	if m.drv != nil {
		if cerr := m.drv.Close(); err == nil {
			err = cerr
		}
		m.drv = nil
	}
	m.rack.Deregister(m.handle)
	return err
}
