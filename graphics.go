package jumplab

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// GraphicsShape is one recorded path with the fill and line state that was
// active when it was closed.
type GraphicsShape struct {
	Points []Vec2
	Closed bool

	Filled    bool
	FillColor Color
	FillAlpha float64

	LineWidth     float64
	LineColor     Color
	LineAlpha     float64
	LineAlignment float64 // 0 = inner, 0.5 = centered, 1 = outer
}

// Graphics records vector drawing commands and tessellates them into a
// triangle mesh on demand. Paths are flushed into shapes by BeginFill,
// EndFill, MoveTo, ClosePath and DrawRect.
type Graphics struct {
	shapes []GraphicsShape
	path   []Vec2

	filling   bool
	fillColor Color
	fillAlpha float64

	lineWidth     float64
	lineColor     Color
	lineAlpha     float64
	lineAlignment float64

	vertices  []ebiten.Vertex
	indices   []uint16
	meshDirty bool
}

// Clear drops every recorded shape and resets the fill and line state.
func (g *Graphics) Clear() {
	g.shapes = g.shapes[:0]
	g.path = g.path[:0]
	g.filling = false
	g.lineWidth = 0
	g.meshDirty = true
}

// BeginFill starts filling subsequent shapes with the given color and alpha.
func (g *Graphics) BeginFill(c Color, alpha float64) {
	g.flush(false)
	g.filling = true
	g.fillColor = c
	g.fillAlpha = alpha
}

// EndFill closes the current path and stops filling.
func (g *Graphics) EndFill() {
	g.flush(true)
	g.filling = false
}

// LineStyle sets the stroke used by subsequent shapes. A zero width disables
// stroking.
func (g *Graphics) LineStyle(width float64, c Color, alpha, alignment float64) {
	g.flush(false)
	g.lineWidth = width
	g.lineColor = c
	g.lineAlpha = alpha
	g.lineAlignment = alignment
}

// MoveTo starts a new path at (x, y).
func (g *Graphics) MoveTo(x, y float64) {
	g.flush(false)
	g.path = append(g.path, Vec2{x, y})
}

// LineTo adds a segment from the current point to (x, y).
func (g *Graphics) LineTo(x, y float64) {
	g.path = append(g.path, Vec2{x, y})
}

// ClosePath closes the current path back to its first point.
func (g *Graphics) ClosePath() {
	g.flush(true)
}

// DrawRect records an axis-aligned rectangle with the current styles.
func (g *Graphics) DrawRect(x, y, w, h float64) {
	g.flush(false)
	g.path = append(g.path, Vec2{x, y}, Vec2{x + w, y}, Vec2{x + w, y + h}, Vec2{x, y + h})
	g.flush(true)
}

// Shapes returns the recorded shapes. The returned slice MUST NOT be mutated.
func (g *Graphics) Shapes() []GraphicsShape {
	return g.shapes
}

// flush turns the pending path into a shape. Paths that can neither be filled
// nor stroked are dropped.
func (g *Graphics) flush(closed bool) {
	if len(g.path) < 2 || (!g.filling && g.lineWidth <= 0) {
		g.path = g.path[:0]
		return
	}
	pts := make([]Vec2, len(g.path))
	copy(pts, g.path)
	g.shapes = append(g.shapes, GraphicsShape{
		Points:        pts,
		Closed:        closed,
		Filled:        g.filling,
		FillColor:     g.fillColor,
		FillAlpha:     g.fillAlpha,
		LineWidth:     g.lineWidth,
		LineColor:     g.lineColor,
		LineAlpha:     g.lineAlpha,
		LineAlignment: g.lineAlignment,
	})
	g.path = g.path[:0]
	g.meshDirty = true
}

// mesh returns the tessellated shapes, rebuilding them when dirty.
func (g *Graphics) mesh() ([]ebiten.Vertex, []uint16) {
	if !g.meshDirty {
		return g.vertices, g.indices
	}
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	for i := range g.shapes {
		sh := &g.shapes[i]
		if sh.Filled && len(sh.Points) >= 3 {
			g.appendFan(sh.Points, sh.FillColor, sh.FillAlpha)
		}
		if sh.LineWidth > 0 {
			g.appendStroke(sh)
		}
	}
	g.meshDirty = false
	return g.vertices, g.indices
}

// appendFan fan-triangulates a convex polygon. N vertices, 3*(N-2) indices.
func (g *Graphics) appendFan(points []Vec2, c Color, alpha float64) {
	base := uint16(len(g.vertices))
	for _, p := range points {
		g.vertices = append(g.vertices, solidVertex(p.X, p.Y, c, alpha))
	}
	for i := 0; i < len(points)-2; i++ {
		g.indices = append(g.indices, base, base+uint16(i+1), base+uint16(i+2))
	}
}

// appendStroke emits one quad per segment, offset along the segment normal
// according to the line alignment. Joins are left open.
func (g *Graphics) appendStroke(sh *GraphicsShape) {
	n := len(sh.Points)
	segs := n - 1
	if sh.Closed {
		segs = n
	}
	inner := sh.LineWidth * (1 - sh.LineAlignment)
	outer := sh.LineWidth * sh.LineAlignment
	for i := 0; i < segs; i++ {
		a := sh.Points[i]
		b := sh.Points[(i+1)%n]
		nx, ny := perpendicular(a, b)
		base := uint16(len(g.vertices))
		g.vertices = append(g.vertices,
			solidVertex(a.X-nx*outer, a.Y-ny*outer, sh.LineColor, sh.LineAlpha),
			solidVertex(a.X+nx*inner, a.Y+ny*inner, sh.LineColor, sh.LineAlpha),
			solidVertex(b.X-nx*outer, b.Y-ny*outer, sh.LineColor, sh.LineAlpha),
			solidVertex(b.X+nx*inner, b.Y+ny*inner, sh.LineColor, sh.LineAlpha),
		)
		g.indices = append(g.indices, base, base+1, base+2, base+1, base+3, base+2)
	}
}

// solidVertex builds an untextured vertex sampling the center of the white pixel.
func solidVertex(x, y float64, c Color, alpha float64) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R),
		ColorG: float32(c.G),
		ColorB: float32(c.B),
		ColorA: float32(c.A * alpha),
	}
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
