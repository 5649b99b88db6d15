// Package modsynth is a modular synthesizer engine. Modules (oscillators,
// envelopes, filters, a sequencer, a MIDI translator) expose their inputs and
// outputs as plain float64 fields; they are patched together either with Wire
// modules or by a user module whose Update copies values between ports. A
// Rack owns the live modules and runs every one of them once per audio
// sample, in registration order.
package modsynth

const (
	// SampleRate is the fixed output sample rate in Hz.
	SampleRate = 48000

	// Dt is the duration of one tick in seconds. All per-tick rate and time
	// arithmetic in the modules is expressed in units of Dt.
	Dt = 1.0 / SampleRate
)

// Module is one schedulable unit of the signal graph. Update is called once
// per tick and must derive the module's outputs from its inputs and any
// internal state.
type Module interface {
	Update()
}

// Handle identifies a module registered with a Rack.
type Handle int

// Rack owns the ordered collection of live modules and executes one tick by
// invoking every module's Update in registration order.
//
// Registration order is the scheduling order. If module B reads a port that
// module A writes and A was registered after B, then B sees A's value from
// the previous tick; registered before, B sees the current tick's value.
// The rack performs no dependency analysis.
//
// A Rack is not safe for concurrent use: register and deregister modules
// either before Start or after Stop, never while ticks are running.
type Rack struct {
	order   []Handle
	modules map[Handle]Module
	nextID  Handle

	left, right float64

	output audioOutput
}

type audioOutput interface {
	Play()
	Pause()
	Close() error
}

// NewRack returns an empty rack.
func NewRack() *Rack {
	return &Rack{modules: make(map[Handle]Module)}
}

// Register appends m to the live sequence and returns its handle. Module
// constructors call this; it is exported so user-defined modules can join
// the same schedule.
func (r *Rack) Register(m Module) Handle {
	h := r.nextID
	r.nextID++
	r.modules[h] = m
	r.order = append(r.order, h)
	return h
}

// Deregister removes the module from the live sequence. Its Update is never
// invoked again. Deregistering an unknown handle is a no-op.
func (r *Rack) Deregister(h Handle) {
	if _, ok := r.modules[h]; !ok {
		return
	}
	delete(r.modules, h)
	for i, o := range r.order {
		if o == h {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Step runs one tick: every live module's Update, in registration order.
func (r *Rack) Step() {
	for _, h := range r.order {
		r.modules[h].Update()
	}
}

// Mix adds one stereo sample into the per-tick output accumulators.
// Speakers call this from Update; multiple speakers sum.
func (r *Rack) Mix(left, right float64) {
	r.left += left
	r.right += right
}

// headroom so several summed speakers do not clip immediately
const outputHeadroom = 0.1

// Process renders interleaved stereo float32 frames. For each frame it
// resets the output accumulators, runs exactly one Step, and writes the
// scaled accumulator values. This is the per-sample contract the audio
// backend drives; offline rendering uses the same path.
func (r *Rack) Process(dst []float32) {
	for i := 0; i+1 < len(dst); i += 2 {
		r.left, r.right = 0, 0
		r.Step()
		dst[i] = float32(r.left * outputHeadroom)
		dst[i+1] = float32(r.right * outputHeadroom)
	}
}
