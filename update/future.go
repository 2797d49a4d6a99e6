package update

import "errors"

// ErrStopped rejects the future of a transition that was stopped before it
// finished. Callers that switch transitions expect it and ignore it.
var ErrStopped = errors.New("update: transition has been stopped")

// Future is a one-shot completion handle. It settles at most once, either
// resolved (nil error) or rejected.
type Future struct {
	done    bool
	err     error
	waiters []func(error)
}

// NewFuture returns a pending future.
func NewFuture() *Future {
	return &Future{}
}

// Resolve settles the future successfully. Later calls are ignored.
func (f *Future) Resolve() {
	f.settle(nil)
}

// Reject settles the future with err, or ErrStopped if err is nil.
func (f *Future) Reject(err error) {
	if err == nil {
		err = ErrStopped
	}
	f.settle(err)
}

func (f *Future) settle(err error) {
	if f.done {
		return
	}
	f.done = true
	f.err = err
	waiters := f.waiters
	f.waiters = nil
	for _, fn := range waiters {
		fn(err)
	}
}

// Then calls fn once the future settles. If it already has, fn runs now.
func (f *Future) Then(fn func(err error)) {
	if f.done {
		fn(f.err)
		return
	}
	f.waiters = append(f.waiters, fn)
}

// Done reports whether the future has settled.
func (f *Future) Done() bool {
	return f.done
}

// Err returns the rejection error, or nil while pending or after Resolve.
func (f *Future) Err() error {
	return f.err
}
