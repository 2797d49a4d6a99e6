// Package update drives per-tick callbacks for the demo.
//
// A [Service] calls every registered [Updatable] once per tick, in
// registration order, with the elapsed time in seconds. A [Future] is a
// completion handle settled from inside a tick.
package update

import "slices"

// Updatable is advanced once per tick.
type Updatable interface {
	Update(dt float64)
}

// Service is a single-threaded tick scheduler. Entries are compared by
// identity, so register pointer types.
type Service struct {
	entries []Updatable
	spare   []Updatable
	ticks   uint64
}

// NewService returns an empty scheduler.
func NewService() *Service {
	return &Service{}
}

// Add registers u at the end of the call order. Adding an entry that is
// already registered is a no-op and reports false.
func (s *Service) Add(u Updatable) bool {
	if u == nil {
		panic("update: nil Updatable")
	}
	if s.Has(u) {
		return false
	}
	s.entries = append(s.entries, u)
	return true
}

// Remove deregisters u. It reports false if u was not registered.
func (s *Service) Remove(u Updatable) bool {
	i := slices.Index(s.entries, u)
	if i < 0 {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return true
}

// Has reports whether u is registered.
func (s *Service) Has(u Updatable) bool {
	return slices.Contains(s.entries, u)
}

// Len returns the number of registered entries.
func (s *Service) Len() int {
	return len(s.entries)
}

// Ticks returns the number of ticks started so far. During a tick it is that
// tick's number, starting at 1.
func (s *Service) Ticks() uint64 {
	return s.ticks
}

// Update runs one tick. The call set is fixed when the tick starts: entries
// added during the tick first run on the next one, and entries removed during
// the tick are still called, so they must check their own state.
func (s *Service) Update(dt float64) {
	s.ticks++
	calls := append(s.spare[:0], s.entries...)
	s.spare = nil
	for _, u := range calls {
		u.Update(dt)
	}
	clear(calls)
	s.spare = calls
}
