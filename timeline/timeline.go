// Package timeline plays a one-shot sequence of calls and tweens on an
// update.Service. Steps run in order: calls fire as soon as they are reached,
// tweens hold the sequence until they finish.
package timeline

import (
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/jumplab"
	"github.com/phanxgames/jumplab/update"
)

type step struct {
	call  func()
	start func() *jumplab.TweenGroup
	group *jumplab.TweenGroup

	onUpdate   func()
	onComplete func()
}

// Timeline is a builder and player for a step sequence. Builders return the
// timeline so calls can be chained.
type Timeline struct {
	updates *update.Service
	steps   []*step
	next    int
	playing bool
	done    *update.Future
}

// New returns an empty, paused timeline ticking on s.
func New(s *update.Service) *Timeline {
	return &Timeline{updates: s, done: update.NewFuture()}
}

// Call appends an instant step.
func (t *Timeline) Call(fn func()) *Timeline {
	t.steps = append(t.steps, &step{call: fn})
	return t
}

// From appends a tween of *field from the given value back to the value it
// holds now. The field is set to from immediately.
func (t *Timeline) From(field *float64, from float64, duration float32, fn ease.TweenFunc) *Timeline {
	to := *field
	*field = from
	t.steps = append(t.steps, &step{start: func() *jumplab.TweenGroup {
		return jumplab.TweenValue(field, from, to, duration, fn)
	}})
	return t
}

// FromScale appends a uniform scale-in of node from the given factor back to
// its current scale. The node is scaled immediately.
func (t *Timeline) FromScale(node *jumplab.Node, from float64, duration float32, fn ease.TweenFunc) *Timeline {
	sx, sy := node.ScaleX, node.ScaleY
	node.SetScale(from, from)
	t.steps = append(t.steps, &step{start: func() *jumplab.TweenGroup {
		return jumplab.TweenScale(node, sx, sy, duration, fn)
	}})
	return t
}

// OnUpdate sets a callback for every write of the last tween step.
func (t *Timeline) OnUpdate(fn func()) *Timeline {
	if len(t.steps) == 0 {
		panic("timeline: OnUpdate with no steps")
	}
	t.steps[len(t.steps)-1].onUpdate = fn
	return t
}

// OnComplete sets a callback run when the last step finishes.
func (t *Timeline) OnComplete(fn func()) *Timeline {
	if len(t.steps) == 0 {
		panic("timeline: OnComplete with no steps")
	}
	t.steps[len(t.steps)-1].onComplete = fn
	return t
}

// Play starts or resumes the sequence.
func (t *Timeline) Play() {
	if t.done.Done() {
		return
	}
	t.playing = true
	t.updates.Add(t)
}

// Pause stops ticking. Play resumes where it left off.
func (t *Timeline) Pause() {
	t.playing = false
	t.updates.Remove(t)
}

// Playing reports whether the timeline is registered and unfinished.
func (t *Timeline) Playing() bool { return t.playing }

// Done reports whether every step has run.
func (t *Timeline) Done() bool { return t.done.Done() }

// Finished resolves once every step has run.
func (t *Timeline) Finished() *update.Future { return t.done }

// Update implements update.Updatable. A tween consumes the whole tick; calls
// that follow it in the same tick still run.
func (t *Timeline) Update(dt float64) {
	if !t.playing {
		return
	}
	for t.next < len(t.steps) {
		s := t.steps[t.next]
		if s.call != nil {
			t.next++
			s.call()
			if s.onComplete != nil {
				s.onComplete()
			}
			if !t.playing {
				return
			}
			continue
		}

		if s.group == nil {
			s.group = s.start()
			s.group.OnUpdate = s.onUpdate
		}
		s.group.Update(float32(dt))
		dt = 0
		if !s.group.Done {
			return
		}
		t.next++
		if s.onComplete != nil {
			s.onComplete()
		}
	}

	t.playing = false
	t.updates.Remove(t)
	t.done.Resolve()
}
