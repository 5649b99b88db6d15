package modsynth

import (
	"errors"

	"github.com/cbegin/modsynth-go/internal/note"
)

// Sequencer steps through a fixed cycle of frequencies. Each rising edge on
// ClockIn selects the next entry, wrapping after the last; GateOut is a
// cleaned-up copy of the clock (1 while ClockIn > 0, else 0).
type Sequencer struct {
	// Inputs
	ClockIn float64

	// Frequencies is the cycle, one entry per note name given at
	// construction. Entries may be retuned at runtime; the length must not
	// change.
	Frequencies []float64

	// Outputs
	FrequencyOut float64
	GateOut      float64

	index int

	rack   *Rack
	handle Handle
}

// NewSequencer parses the note names (see the note package for the accepted
// form) and registers a sequencer cycling through them. It fails if the
// list is empty or any name does not parse.
func NewSequencer(r *Rack, names ...string) (*Sequencer, error) {
	if len(names) == 0 {
		return nil, errors.New("sequencer: empty note list")
	}
	freqs := make([]float64, len(names))
	for i, name := range names {
		f, err := note.Frequency(name)
		if err != nil {
			return nil, err
		}
		freqs[i] = f
	}
	// Starting on the last entry makes the first clock edge select entry 0.
	s := &Sequencer{Frequencies: freqs, index: len(freqs) - 1}
	s.rack, s.handle = r, r.Register(s)
	return s, nil
}

func (s *Sequencer) Update() {
	// The edge test keys off the previous GateOut, not the previous clock,
	// so a clock held high advances exactly once.
	if s.ClockIn > 0 && s.GateOut <= 0 {
		s.index = (s.index + 1) % len(s.Frequencies)
	}

	s.FrequencyOut = s.Frequencies[s.index]
	if s.ClockIn > 0 {
		s.GateOut = 1
	} else {
		s.GateOut = 0
	}
}

// Close removes the sequencer from its rack.
func (s *Sequencer) Close() {
	s.rack.Deregister(s.handle)
}
