package modsynth

// Wire copies one port value to another every tick, so modules can be
// patched without writing a custom module type. Both ends are pointers into
// other modules' public port fields. When several wires target the same
// input, the wire scheduled last wins; values are never summed.
type Wire struct {
	from *float64
	to   *float64

	rack   *Rack
	handle Handle
}

// NewWire registers a wire from one port to another.
func NewWire(r *Rack, from, to *float64) *Wire {
	w := &Wire{from: from, to: to}
	w.rack, w.handle = r, r.Register(w)
	return w
}

func (w *Wire) Update() {
	*w.to = *w.from
}

// Close removes the wire from its rack.
func (w *Wire) Close() {
	w.rack.Deregister(w.handle)
}
