package layout

import "slices"

// Signal is a synchronous change notification. Observers run in connection
// order.
type Signal struct {
	slots []*slot
}

type slot struct {
	fn func()
}

// Connection identifies one observer of a Signal.
type Connection struct {
	sig *Signal
	s   *slot
}

// Connect adds fn as an observer.
func (sig *Signal) Connect(fn func()) Connection {
	s := &slot{fn: fn}
	sig.slots = append(sig.slots, s)
	return Connection{sig: sig, s: s}
}

// Emit calls every observer connected when Emit starts.
func (sig *Signal) Emit() {
	switch len(sig.slots) {
	case 0:
		return
	case 1:
		sig.slots[0].fn()
		return
	}
	for _, s := range slices.Clone(sig.slots) {
		s.fn()
	}
}

// Len returns the number of connected observers.
func (sig *Signal) Len() int {
	return len(sig.slots)
}

// Disconnect removes the observer. It is safe to call more than once and on
// the zero Connection.
func (c Connection) Disconnect() {
	if c.sig == nil {
		return
	}
	if i := slices.Index(c.sig.slots, c.s); i >= 0 {
		c.sig.slots = slices.Delete(c.sig.slots, i, i+1)
	}
}

// Connected reports whether the observer is still attached.
func (c Connection) Connected() bool {
	return c.sig != nil && slices.Contains(c.sig.slots, c.s)
}
