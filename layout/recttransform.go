// Package layout places scene containers inside anchored rectangles and
// redraws them at most once per tick.
//
// A [RectTransform] resolves a rectangle from its parent's rectangle using
// anchors, a pivot, a size delta and an anchored position. An [Area] owns one
// rect transform and one container; any change to either schedules a single
// redraw on the next tick of the update service.
package layout

import "github.com/phanxgames/jumplab"

// RectTransform is an anchor-based rectangle. Anchors are fractions of the
// parent rectangle, the pivot is a fraction of the own rectangle.
//
// Without a parent the transform resolves against its screen rect, which only
// the root should use. Inverted anchors are not validated and yield a
// negative size.
type RectTransform struct {
	anchorMin        jumplab.Vec2
	anchorMax        jumplab.Vec2
	pivot            jumplab.Vec2
	sizeDelta        jumplab.Vec2
	anchoredPosition jumplab.Vec2

	parent   *RectTransform
	children []*RectTransform
	screen   jumplab.Rect

	changed Signal
}

// NewRectTransform returns a centered 100x100 transform.
func NewRectTransform() *RectTransform {
	return &RectTransform{
		anchorMin: jumplab.Vec2{X: 0.5, Y: 0.5},
		anchorMax: jumplab.Vec2{X: 0.5, Y: 0.5},
		pivot:     jumplab.Vec2{X: 0.5, Y: 0.5},
		sizeDelta: jumplab.Vec2{X: 100, Y: 100},
	}
}

func (rt *RectTransform) AnchorMin() jumplab.Vec2        { return rt.anchorMin }
func (rt *RectTransform) AnchorMax() jumplab.Vec2        { return rt.anchorMax }
func (rt *RectTransform) Pivot() jumplab.Vec2            { return rt.pivot }
func (rt *RectTransform) SizeDelta() jumplab.Vec2        { return rt.sizeDelta }
func (rt *RectTransform) AnchoredPosition() jumplab.Vec2 { return rt.anchoredPosition }
func (rt *RectTransform) Parent() *RectTransform         { return rt.parent }

func (rt *RectTransform) SetAnchorMin(x, y float64)        { rt.set(&rt.anchorMin, x, y) }
func (rt *RectTransform) SetAnchorMax(x, y float64)        { rt.set(&rt.anchorMax, x, y) }
func (rt *RectTransform) SetPivot(x, y float64)            { rt.set(&rt.pivot, x, y) }
func (rt *RectTransform) SetSizeDelta(x, y float64)        { rt.set(&rt.sizeDelta, x, y) }
func (rt *RectTransform) SetAnchoredPosition(x, y float64) { rt.set(&rt.anchoredPosition, x, y) }

// SetAnchors sets both anchors to the same fractions.
func (rt *RectTransform) SetAnchors(minX, minY, maxX, maxY float64) {
	rt.SetAnchorMin(minX, minY)
	rt.SetAnchorMax(maxX, maxY)
}

func (rt *RectTransform) set(field *jumplab.Vec2, x, y float64) {
	v := jumplab.Vec2{X: x, Y: y}
	if *field == v {
		return
	}
	*field = v
	rt.notify()
}

// Changed fires when this transform's rect may have moved: after its own
// setters, after reparenting and after any ancestor changes.
func (rt *RectTransform) Changed() *Signal {
	return &rt.changed
}

// SetParent links rt under p. A nil p detaches it. It panics if the link
// would create a cycle.
func (rt *RectTransform) SetParent(p *RectTransform) {
	if p == rt.parent {
		return
	}
	if rt.wouldCycle(p) {
		panic("layout: rect transform parent would create a cycle")
	}
	if rt.parent != nil {
		rt.parent.removeChild(rt)
	}
	rt.parent = p
	if p != nil {
		p.children = append(p.children, rt)
	}
	rt.notify()
}

func (rt *RectTransform) wouldCycle(p *RectTransform) bool {
	for q := p; q != nil; q = q.parent {
		if q == rt {
			return true
		}
	}
	return false
}

func (rt *RectTransform) removeChild(c *RectTransform) {
	for i, ch := range rt.children {
		if ch == c {
			rt.children = append(rt.children[:i], rt.children[i+1:]...)
			return
		}
	}
}

// SetScreenRect sets the rect a parentless transform resolves against.
func (rt *RectTransform) SetScreenRect(r jumplab.Rect) {
	if rt.screen == r {
		return
	}
	rt.screen = r
	if rt.parent == nil {
		rt.notify()
	}
}

func (rt *RectTransform) notify() {
	rt.changed.Emit()
	for _, c := range rt.children {
		c.notify()
	}
}

// Rect resolves the absolute rectangle.
func (rt *RectTransform) Rect() jumplab.Rect {
	p := rt.screen
	if rt.parent != nil {
		p = rt.parent.Rect()
	}

	minX := p.X + p.Width*rt.anchorMin.X
	minY := p.Y + p.Height*rt.anchorMin.Y
	spanX := p.Width * (rt.anchorMax.X - rt.anchorMin.X)
	spanY := p.Height * (rt.anchorMax.Y - rt.anchorMin.Y)

	w := spanX + rt.sizeDelta.X
	h := spanY + rt.sizeDelta.Y

	// Pivot point: the pivot's share of the anchor span, then the offset.
	px := minX + spanX*rt.pivot.X + rt.anchoredPosition.X
	py := minY + spanY*rt.pivot.Y + rt.anchoredPosition.Y

	return jumplab.Rect{X: px - w*rt.pivot.X, Y: py - h*rt.pivot.Y, Width: w, Height: h}
}
