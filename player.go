package modsynth

import (
	"github.com/cbegin/modsynth-go/internal/audio"
)

// Start opens the audio output and begins invoking one Step per output
// sample. Returns the backend's error if the device cannot be opened.
// After a Stop, Start resumes the same rack; no module state is reset.
func (r *Rack) Start() error {
	if r.output != nil {
		r.output.Play()
		return nil
	}
	out, err := audio.NewOutput(SampleRate, r)
	if err != nil {
		return err
	}
	r.output = out
	out.Play()
	return nil
}

// Stop pauses the tick driver. All module state persists; a later Start
// continues from the exact same state.
func (r *Rack) Stop() {
	if r.output != nil {
		r.output.Pause()
	}
}

// Close stops playback and releases the audio output.
func (r *Rack) Close() error {
	if r.output == nil {
		return nil
	}
	err := r.output.Close()
	r.output = nil
	return err
}
