package modsynth

import "math"

// Delay is an interpolating delay line. Its capacity is fixed at
// construction; the tap position Time may be modulated every tick and is
// silently clamped into [0, maximum]. The output is linearly interpolated
// between the two history samples bracketing the fractional offset, so a
// Time of zero reproduces the input exactly.
type Delay struct {
	// Inputs
	In   float64
	Time float64 // seconds

	// Outputs
	Out float64

	buf []float64 // ring of recent input, newest at pos
	pos int

	rack   *Rack
	handle Handle
}

// NewDelay registers a delay line able to hold up to maxDelay seconds.
func NewDelay(r *Rack, maxDelay float64) *Delay {
	n := int(math.Ceil(maxDelay/Dt)) + 1
	if n < 1 {
		n = 1
	}
	d := &Delay{buf: make([]float64, n)}
	d.rack, d.handle = r, r.Register(d)
	return d
}

func (d *Delay) Update() {
	d.buf[d.pos] = d.In

	max := float64(len(d.buf)-1) * Dt
	t := d.Time
	if t < 0 {
		t = 0
	} else if t > max {
		t = max
	}

	offset := t / Dt
	i := int(offset)
	frac := offset - float64(i)

	a := d.tap(i)
	b := d.tap(i + 1)
	d.Out = a + (b-a)*frac

	d.pos++
	if d.pos == len(d.buf) {
		d.pos = 0
	}
}

// tap returns the sample written back ticks ago (0 = the current input).
func (d *Delay) tap(back int) float64 {
	i := d.pos - back
	for i < 0 {
		i += len(d.buf)
	}
	return d.buf[i]
}

// Close removes the delay line from its rack.
func (d *Delay) Close() {
	d.rack.Deregister(d.handle)
}
