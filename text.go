package jumplab

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps Ebitengine's text/v2 for TrueType font rendering.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("jumplab: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	return &Font{
		face: face,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}

// DefaultFont loads Go Regular at the given size.
func DefaultFont(size float64) (*Font, error) {
	return LoadFont(goregular.TTF, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// TextBlock holds text content and formatting.
type TextBlock struct {
	Content string
	Font    *Font
	Color   Color

	// AnchorX and AnchorY place the node origin within the measured text box
	// (0,0 top-left, 0.5,0.5 centered, 1,1 bottom-right).
	AnchorX float64
	AnchorY float64
}

// SetAnchor sets the text anchor.
func (tb *TextBlock) SetAnchor(x, y float64) {
	tb.AnchorX = x
	tb.AnchorY = y
}

// Bounds returns the text box in the node's local space, after anchoring.
func (tb *TextBlock) Bounds() Rect {
	if tb.Font == nil {
		return Rect{}
	}
	w, h := tb.Font.MeasureString(tb.Content)
	return Rect{X: -w * tb.AnchorX, Y: -h * tb.AnchorY, Width: w, Height: h}
}
