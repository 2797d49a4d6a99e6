package layout

import "github.com/phanxgames/jumplab"

// FillStyle is a shared, observable fill description. Every setter that
// changes a value emits Changed.
type FillStyle struct {
	color   jumplab.Color
	alpha   float64
	changed Signal
}

// NewFillStyle returns a fill of color c at the given alpha.
func NewFillStyle(c jumplab.Color, alpha float64) *FillStyle {
	return &FillStyle{color: c, alpha: alpha}
}

func (s *FillStyle) Color() jumplab.Color { return s.color }
func (s *FillStyle) Alpha() float64       { return s.alpha }

// Changed fires after any value changes.
func (s *FillStyle) Changed() *Signal { return &s.changed }

func (s *FillStyle) SetColor(c jumplab.Color) {
	if s.color == c {
		return
	}
	s.color = c
	s.changed.Emit()
}

func (s *FillStyle) SetAlpha(a float64) {
	if s.alpha == a {
		return
	}
	s.alpha = a
	s.changed.Emit()
}

// Clone copies the values. Observers are not copied.
func (s *FillStyle) Clone() *FillStyle {
	return NewFillStyle(s.color, s.alpha)
}

// CopyFrom takes o's values, emitting Changed at most once.
func (s *FillStyle) CopyFrom(o *FillStyle) {
	if s.color == o.color && s.alpha == o.alpha {
		return
	}
	s.color, s.alpha = o.color, o.alpha
	s.changed.Emit()
}

// Apply begins a fill on g.
func (s *FillStyle) Apply(g *jumplab.Graphics) {
	g.BeginFill(s.color, s.alpha)
}

// LineStyle is a shared, observable stroke description. Alignment runs from
// 0 (inside the shape) to 1 (outside). MiterLimit is carried for transitions;
// the stroke mesh draws butt-ended segments and ignores it.
type LineStyle struct {
	width      float64
	color      jumplab.Color
	alpha      float64
	alignment  float64
	miterLimit float64
	changed    Signal
}

// NewLineStyle returns a centered stroke with a miter limit of 10.
func NewLineStyle(width float64, c jumplab.Color, alpha float64) *LineStyle {
	return &LineStyle{width: width, color: c, alpha: alpha, alignment: 0.5, miterLimit: 10}
}

func (s *LineStyle) Width() float64       { return s.width }
func (s *LineStyle) Color() jumplab.Color { return s.color }
func (s *LineStyle) Alpha() float64       { return s.alpha }
func (s *LineStyle) Alignment() float64   { return s.alignment }
func (s *LineStyle) MiterLimit() float64  { return s.miterLimit }

// Changed fires after any value changes.
func (s *LineStyle) Changed() *Signal { return &s.changed }

func (s *LineStyle) SetWidth(w float64)          { s.setFloat(&s.width, w) }
func (s *LineStyle) SetAlpha(a float64)          { s.setFloat(&s.alpha, a) }
func (s *LineStyle) SetAlignment(a float64)      { s.setFloat(&s.alignment, a) }
func (s *LineStyle) SetMiterLimit(limit float64) { s.setFloat(&s.miterLimit, limit) }

func (s *LineStyle) SetColor(c jumplab.Color) {
	if s.color == c {
		return
	}
	s.color = c
	s.changed.Emit()
}

func (s *LineStyle) setFloat(field *float64, v float64) {
	if *field == v {
		return
	}
	*field = v
	s.changed.Emit()
}

// Clone copies the values. Observers are not copied.
func (s *LineStyle) Clone() *LineStyle {
	return &LineStyle{
		width:      s.width,
		color:      s.color,
		alpha:      s.alpha,
		alignment:  s.alignment,
		miterLimit: s.miterLimit,
	}
}

// CopyFrom takes o's values, emitting Changed at most once.
func (s *LineStyle) CopyFrom(o *LineStyle) {
	if s.width == o.width && s.color == o.color && s.alpha == o.alpha &&
		s.alignment == o.alignment && s.miterLimit == o.miterLimit {
		return
	}
	s.width, s.color, s.alpha = o.width, o.color, o.alpha
	s.alignment, s.miterLimit = o.alignment, o.miterLimit
	s.changed.Emit()
}

// Apply sets g's stroke.
func (s *LineStyle) Apply(g *jumplab.Graphics) {
	g.LineStyle(s.width, s.color, s.alpha, s.alignment)
}
