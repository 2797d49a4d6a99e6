// Package button turns a scene node into a button with idle, over, down and
// lock looks. Looks are switched through Transitions; a click plays a
// feedback transition that holds off every other switch until it finishes.
package button

import (
	"github.com/phanxgames/jumplab"
	"github.com/phanxgames/jumplab/update"
)

// State is the look a button shows.
type State int

const (
	StateIdle State = iota
	StateOver
	StateDown
	StateLock
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOver:
		return "over"
	case StateDown:
		return "down"
	case StateLock:
		return "lock"
	}
	return "unknown"
}

// Transition animates a target toward one look.
type Transition interface {
	// Start begins the animation. While running it returns the same future.
	Start() *update.Future
	// Stop cancels the animation and rejects its future with
	// update.ErrStopped.
	Stop()
	// ApplyEndState snaps the target to the end look.
	ApplyEndState()
}

// Transitions maps each look, plus the two click feedbacks, to a transition.
type Transitions struct {
	Idle        Transition
	Over        Transition
	Down        Transition
	Lock        Transition
	ClickNormal Transition
	ClickLock   Transition
}

// Button is the pointer state machine. Lock is not stored: it is shown
// whenever the button is not interactable, while the pointer tracking keeps
// running underneath.
type Button struct {
	// OnClick runs after a click on an interactable button.
	OnClick func()

	node         *jumplab.Node
	transitions  Transitions
	state        State
	downOnMe     bool
	interactable bool
	feedback     bool
	current      Transition
}

// New wires a button to node's pointer callbacks and snaps it to the idle
// look.
func New(node *jumplab.Node, t Transitions) *Button {
	b := &Button{
		node:         node,
		transitions:  t,
		interactable: true,
		current:      t.Idle,
	}
	b.current.ApplyEndState()

	node.OnPointerEnter = func(jumplab.PointerContext) { b.PointerEnter() }
	node.OnPointerLeave = func(jumplab.PointerContext) { b.PointerLeave() }
	node.OnPointerDown = func(jumplab.PointerContext) { b.PointerDown() }
	node.OnPointerUp = func(jumplab.PointerContext) { b.PointerUp() }
	node.OnPointerUpOutside = func(jumplab.PointerContext) { b.PointerUpOutside() }
	node.OnClick = func(jumplab.ClickContext) { b.Click() }
	return b
}

// Node returns the node the button listens on.
func (b *Button) Node() *jumplab.Node { return b.node }

// Interactable reports whether the button accepts clicks.
func (b *Button) Interactable() bool { return b.interactable }

// SetInteractable locks or unlocks the button.
func (b *Button) SetInteractable(v bool) {
	if b.interactable == v {
		return
	}
	b.interactable = v
	b.updateView()
}

// State returns the shown state: StateLock when not interactable.
func (b *Button) State() State {
	if !b.interactable {
		return StateLock
	}
	return b.state
}

// SetState overrides the tracked pointer state.
func (b *Button) SetState(s State) {
	if s == b.state {
		return
	}
	b.state = s
	b.updateView()
}

// Current returns the transition that was started last.
func (b *Button) Current() Transition { return b.current }

// PlayingFeedback reports whether a click feedback is running.
func (b *Button) PlayingFeedback() bool { return b.feedback }

// PointerEnter shows over, or down if the press started on this button.
func (b *Button) PointerEnter() {
	if b.downOnMe {
		b.state = StateDown
	} else {
		b.state = StateOver
	}
	b.updateView()
}

// PointerLeave shows idle. A press that started here is still remembered.
func (b *Button) PointerLeave() {
	b.state = StateIdle
	b.updateView()
}

// PointerDown is ignored while a click feedback plays.
func (b *Button) PointerDown() {
	if b.feedback {
		return
	}
	b.downOnMe = true
	b.state = StateDown
	b.updateView()
}

// PointerUpOutside forgets the press.
func (b *Button) PointerUpOutside() {
	b.downOnMe = false
}

// PointerUp forgets the press and shows over.
func (b *Button) PointerUp() {
	b.downOnMe = false
	b.state = StateOver
	b.updateView()
}

// Click plays the normal or lock feedback. State changes are not shown
// until it completes; a feedback that gets stopped leaves that to the next
// click.
func (b *Button) Click() {
	b.current.Stop()
	b.feedback = true
	if b.interactable {
		b.current = b.transitions.ClickNormal
	} else {
		b.current = b.transitions.ClickLock
	}
	b.current.Start().Then(func(err error) {
		if err != nil {
			return
		}
		b.feedback = false
		b.updateView()
	})

	if b.interactable && b.OnClick != nil {
		b.OnClick()
	}
}

func (b *Button) updateView() {
	if b.feedback {
		return
	}

	var next Transition
	switch b.State() {
	case StateLock:
		// Own case: lock used to fall through to the down transition.
		next = b.transitions.Lock
	case StateDown:
		next = b.transitions.Down
	case StateOver:
		next = b.transitions.Over
	default:
		next = b.transitions.Idle
	}
	if next == b.current {
		return
	}

	b.current.Stop()
	b.current = next
	// A rejection only means another switch stopped it.
	b.current.Start()
}
