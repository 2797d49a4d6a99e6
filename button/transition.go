package button

import (
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/jumplab"
	"github.com/phanxgames/jumplab/layout"
	"github.com/phanxgames/jumplab/update"
)

// DefaultDuration is the length of a look change, in seconds.
const DefaultDuration = 0.1

// StyleTransition moves a FilledArea's fill and line toward fixed styles.
// The fill's color and alpha and the line's color, alpha, alignment and
// miter limit are interpolated; width is taken as is by ApplyEndState.
type StyleTransition struct {
	target   *layout.FilledArea
	fill     *layout.FillStyle
	line     *layout.LineStyle
	duration float64
	updates  *update.Service

	fromFill *layout.FillStyle
	fromLine *layout.LineStyle
	progress float64
	tween    *jumplab.TweenGroup
	future   *update.Future
}

// NewStyleTransition returns a transition of target toward fill and line.
// It ticks on the target's update service.
func NewStyleTransition(target *layout.FilledArea, fill *layout.FillStyle, line *layout.LineStyle, duration float64) *StyleTransition {
	return &StyleTransition{
		target:   target,
		fill:     fill,
		line:     line,
		duration: duration,
		updates:  target.Env().Updates,
	}
}

// Fill returns the end fill.
func (t *StyleTransition) Fill() *layout.FillStyle { return t.fill }

// Line returns the end line.
func (t *StyleTransition) Line() *layout.LineStyle { return t.line }

// Running reports whether the transition is in flight.
func (t *StyleTransition) Running() bool { return t.future != nil }

// Start captures the target's current styles and begins ticking. Calling it
// again while running returns the same future.
func (t *StyleTransition) Start() *update.Future {
	if t.future != nil {
		return t.future
	}
	t.fromFill = t.target.FillStyle().Clone()
	t.fromLine = t.target.LineStyle().Clone()
	t.tween = jumplab.TweenValue(&t.progress, 0, 1, float32(t.duration), ease.Linear)
	t.future = update.NewFuture()
	t.updates.Add(t)
	return t.future
}

// Update implements update.Updatable.
func (t *StyleTransition) Update(dt float64) {
	if t.future == nil {
		return
	}
	t.tween.Update(float32(dt))
	t.interpolate(t.progress)
	if !t.tween.Done {
		return
	}
	f := t.future
	t.future = nil
	t.updates.Remove(t)
	f.Resolve()
}

func (t *StyleTransition) interpolate(r float64) {
	line := t.target.LineStyle()
	line.SetColor(t.fromLine.Color().Lerp(t.line.Color(), r))
	line.SetAlpha(lerp(t.fromLine.Alpha(), t.line.Alpha(), r))
	line.SetAlignment(lerp(t.fromLine.Alignment(), t.line.Alignment(), r))
	line.SetMiterLimit(lerp(t.fromLine.MiterLimit(), t.line.MiterLimit(), r))

	fill := t.target.FillStyle()
	fill.SetColor(t.fromFill.Color().Lerp(t.fill.Color(), r))
	fill.SetAlpha(lerp(t.fromFill.Alpha(), t.fill.Alpha(), r))
}

// Stop rejects the pending future and deregisters. It is a no-op when idle.
func (t *StyleTransition) Stop() {
	t.updates.Remove(t)
	if f := t.future; f != nil {
		t.future = nil
		f.Reject(update.ErrStopped)
	}
}

// ApplyEndState snaps the target to the end styles.
func (t *StyleTransition) ApplyEndState() {
	fill := t.target.FillStyle()
	fill.SetAlpha(t.fill.Alpha())
	fill.SetColor(t.fill.Color())
	t.target.LineStyle().CopyFrom(t.line)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

var (
	black = jumplab.ColorBlack
	white = jumplab.ColorWhite
	red   = jumplab.RGB(0xFF0000)
	green = jumplab.RGB(0x00FF00)
)

// NewFilledAreaButton builds a button over area whose looks are derived from
// the area's current styles: darker when down or locked, lighter on hover,
// green or red flashes on click.
func NewFilledAreaButton(area *layout.FilledArea, duration float64) *Button {
	fill := area.FillStyle()
	line := area.LineStyle()

	tint := func(to jumplab.Color, amount float64) *StyleTransition {
		f := fill.Clone()
		f.SetColor(fill.Color().Lerp(to, amount))
		l := line.Clone()
		l.SetColor(line.Color().Lerp(to, amount))
		return NewStyleTransition(area, f, l, duration)
	}

	return New(area.Graphics(), Transitions{
		Idle:        NewStyleTransition(area, fill.Clone(), line.Clone(), duration),
		Down:        tint(black, 0.2),
		Lock:        tint(black, 0.5),
		Over:        tint(white, 0.2),
		ClickLock:   tint(red, 0.5),
		ClickNormal: tint(green, 0.5),
	})
}
