package jumplab

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandMesh CommandType = iota // DrawTriangles
	CommandText                    // text/v2 Draw
)

// RenderCommand is a single draw instruction emitted during scene traversal.
// Commands are submitted in tree order.
type RenderCommand struct {
	Type      CommandType
	Transform [6]float64
	Color     Color

	// Mesh-only fields (slice headers, not copies of vertex data).
	meshVerts []ebiten.Vertex
	meshInds  []uint16

	text *TextBlock
}

// traverse walks the node tree depth-first, updating transforms and emitting
// render commands for visible, renderable nodes.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.Renderable {
		tint := Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha}
		switch n.Type {
		case NodeTypeGraphics:
			if n.Graphics == nil {
				break
			}
			verts, inds := n.Graphics.mesh()
			if len(verts) == 0 || len(inds) == 0 {
				break
			}
			dst := make([]ebiten.Vertex, len(verts))
			transformVertices(verts, dst, n.worldTransform, tint)
			s.commands = append(s.commands, RenderCommand{
				Type:      CommandMesh,
				Transform: n.worldTransform,
				meshVerts: dst,
				meshInds:  inds,
			})
		case NodeTypeText:
			if n.TextBlock != nil && n.TextBlock.Font != nil && n.TextBlock.Content != "" {
				s.commands = append(s.commands, RenderCommand{
					Type:      CommandText,
					Transform: n.worldTransform,
					Color:     tint,
					text:      n.TextBlock,
				})
			}
			// NodeTypeContainer doesn't emit commands
		}
	}

	for _, child := range n.children {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// submit draws every collected command onto target in order.
func (s *Scene) submit(target *ebiten.Image) {
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandMesh:
			var op ebiten.DrawTrianglesOptions
			op.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha
			op.AntiAlias = s.AntiAlias
			target.DrawTriangles(cmd.meshVerts, cmd.meshInds, ensureWhitePixel(), &op)
		case CommandText:
			tb := cmd.text
			b := tb.Bounds()
			op := &text.DrawOptions{}
			op.GeoM.Translate(b.X, b.Y)
			op.GeoM.Concat(commandGeoM(cmd))
			op.ColorScale.Scale(
				float32(tb.Color.R*cmd.Color.R),
				float32(tb.Color.G*cmd.Color.G),
				float32(tb.Color.B*cmd.Color.B),
				float32(tb.Color.A*cmd.Color.A),
			)
			op.LineSpacing = tb.Font.LineHeight()
			text.Draw(target, tb.Content, tb.Font.face, op)
		}
	}
}

// commandGeoM converts a command's affine transform into an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, cmd.Transform[0])
	m.SetElement(1, 0, cmd.Transform[1])
	m.SetElement(0, 1, cmd.Transform[2])
	m.SetElement(1, 1, cmd.Transform[3])
	m.SetElement(0, 2, cmd.Transform[4])
	m.SetElement(1, 2, cmd.Transform[5])
	return m
}
