// Package note converts note names and MIDI note numbers to frequencies in
// equal temperament, tuned to A4 = 440 Hz.
package note

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Semitone offsets from C for each recognized letter/accidental prefix.
var baseNotes = map[string]int{
	"Cb": -1, "C": 0, "C#": 1,
	"Db": 1, "D": 2, "D#": 3,
	"Eb": 3, "E": 4, "E#": 5,
	"Fb": 4, "F": 5, "F#": 6,
	"Gb": 6, "G": 7, "G#": 8,
	"Ab": 8, "A": 9, "A#": 10,
	"Bb": 10, "B": 11, "B#": 12,
}

// Frequency parses a note name such as "C4", "F#3" or "Bb2" and returns its
// frequency in Hz. The name is a letter with optional accidental followed by
// the octave digits; anything else is an error.
func Frequency(name string) (float64, error) {
	i := strings.IndexAny(name, "0123456789")
	if i < 0 {
		return 0, fmt.Errorf("note %q: missing octave", name)
	}
	base, ok := baseNotes[name[:i]]
	if !ok {
		return 0, fmt.Errorf("note %q: unknown note %q", name, name[:i])
	}
	octave, err := strconv.Atoi(name[i:])
	if err != nil {
		return 0, fmt.Errorf("note %q: bad octave: %w", name, err)
	}
	return 440 * math.Exp2(float64(base-9)/12+float64(octave)-4), nil
}

// MIDIFrequency returns the frequency of MIDI note n, where 69 is A4.
func MIDIFrequency(n uint8) float64 {
	return 440 * math.Exp2((float64(n)-69)/12)
}
