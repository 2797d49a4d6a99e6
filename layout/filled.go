package layout

import "github.com/phanxgames/jumplab"

// styleValue is satisfied by *FillStyle and *LineStyle.
type styleValue[T any] interface {
	comparable
	Changed() *Signal
	Clone() T
}

// styleSlot is one style kind of a FilledArea. override is nil until the
// style is customized; used is the single style observed for changes,
// either override or the env default.
type styleSlot[T styleValue[T]] struct {
	def      T
	override T
	used     T
	conn     Connection
	onChange func()
}

func (s *styleSlot[T]) init(def T, onChange func()) {
	s.def = def
	s.onChange = onChange
	s.use(def)
}

// get returns the override, creating it from the default on first access.
func (s *styleSlot[T]) get() T {
	var zero T
	if s.override == zero {
		s.override = s.def.Clone()
		s.use(s.override)
	}
	return s.override
}

// set installs v as the override. The default instance itself and nil both
// mean no override.
func (s *styleSlot[T]) set(v T) {
	var zero T
	if v == s.def {
		v = zero
	}
	s.override = v
	if v == zero {
		s.use(s.def)
		return
	}
	s.use(v)
}

func (s *styleSlot[T]) use(v T) {
	if v == s.used && s.conn.Connected() {
		return
	}
	s.conn.Disconnect()
	s.used = v
	s.conn = v.Changed().Connect(s.onChange)
	s.onChange()
}

// FilledArea is an Area that draws its rect with a fill and a line style.
// The graphics node carries a hit rect matching the drawn rectangle.
type FilledArea struct {
	*Area
	graphics *jumplab.Node
	fill     styleSlot[*FillStyle]
	line     styleSlot[*LineStyle]
}

// NewFilledArea creates a filled area under parent using the env's default
// styles.
func NewFilledArea(parent Anchored, name string) *FilledArea {
	a := newArea(parent, name)
	f := &FilledArea{
		Area:     a,
		graphics: jumplab.NewGraphics(name + ".graphics"),
	}
	f.graphics.Interactable = true
	a.container.AddChild(f.graphics)
	a.onDraw = f.redraw
	f.fill.init(a.env.DefaultFill, a.ScheduleDraw)
	f.line.init(a.env.DefaultLine, a.ScheduleDraw)
	return f
}

// Graphics returns the node the rectangle is drawn on.
func (f *FilledArea) Graphics() *jumplab.Node {
	return f.graphics
}

// FillStyle returns the area's own fill, cloning the default on first use.
func (f *FilledArea) FillStyle() *FillStyle { return f.fill.get() }

// SetFillStyle sets the fill. Passing nil or the default instance clears the
// override.
func (f *FilledArea) SetFillStyle(s *FillStyle) { f.fill.set(s) }

// UsedFillStyle returns the fill that is drawn, without creating an override.
func (f *FilledArea) UsedFillStyle() *FillStyle { return f.fill.used }

// LineStyle returns the area's own line, cloning the default on first use.
func (f *FilledArea) LineStyle() *LineStyle { return f.line.get() }

// SetLineStyle sets the line. Passing nil or the default instance clears the
// override.
func (f *FilledArea) SetLineStyle(s *LineStyle) { f.line.set(s) }

// UsedLineStyle returns the line that is drawn, without creating an override.
func (f *FilledArea) UsedLineStyle() *LineStyle { return f.line.used }

func (f *FilledArea) redraw() {
	r := f.rt.Rect()
	tl := f.container.ToLocal(r.Min(), nil)
	br := f.container.ToLocal(r.Max(), nil)
	size := br.Sub(tl)

	g := f.graphics.Graphics
	g.Clear()
	f.fill.used.Apply(g)
	f.line.used.Apply(g)
	g.DrawRect(tl.X, tl.Y, size.X, size.Y)
	g.EndFill()

	f.graphics.HitShape = jumplab.HitRect{X: tl.X, Y: tl.Y, Width: size.X, Height: size.Y}
}

// Text is an Area showing one line of text. The text is anchored at the
// rect transform's pivot.
type Text struct {
	*Area
	label *jumplab.Node
}

// DefaultTextColor is the color new Text areas use.
var DefaultTextColor = jumplab.RGB(0x00FF00)

// NewText creates a text area under parent.
func NewText(parent Anchored, name, content string, font *jumplab.Font) *Text {
	a := newArea(parent, name)
	t := &Text{Area: a, label: jumplab.NewText(name+".label", content, font)}
	t.label.TextBlock.Color = DefaultTextColor
	a.container.AddChild(t.label)
	a.onDraw = t.redraw
	return t
}

// Label returns the text node.
func (t *Text) Label() *jumplab.Node {
	return t.label
}

// SetText replaces the content.
func (t *Text) SetText(s string) {
	t.label.TextBlock.Content = s
}

func (t *Text) redraw() {
	pv := t.rt.Pivot()
	t.label.TextBlock.SetAnchor(pv.X, pv.Y)
}
