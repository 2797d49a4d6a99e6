package jumplab

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// RGB converts a 0xRRGGBB value into an opaque Color.
func RGB(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xFF) / 255,
		G: float64((hex>>8)&0xFF) / 255,
		B: float64(hex&0xFF) / 255,
		A: 1,
	}
}

// Hex returns the color as 0xRRGGBB, ignoring alpha.
func (c Color) Hex() uint32 {
	return uint32(channel8(c.R))<<16 | uint32(channel8(c.G))<<8 | uint32(channel8(c.B))
}

// Lerp interpolates each channel of c toward to by t. t is not clamped.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
		A: c.A + (to.A-c.A)*t,
	}
}

func channel8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. Width and Height may be negative
// when the rectangle was derived from inverted anchors.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 {
	return Vec2{r.X, r.Y}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 {
	return Vec2{r.X + r.Width, r.Y + r.Height}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeGraphics                  // renders recorded vector shapes
	NodeTypeText                      // renders a TextBlock via text/v2
)

// EventType identifies a kind of pointer event.
type EventType uint8

const (
	EventPointerDown       EventType = iota // a pointer button is pressed over a node
	EventPointerUp                          // a pointer button is released over a node
	EventPointerUpOutside                   // released away from the node it was pressed on
	EventClick                              // press then release over the same node
	EventPointerEnter                       // the pointer enters a node's bounds
	EventPointerLeave                       // the pointer leaves a node's bounds
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)
