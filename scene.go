package jumplab

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, input state and
// render buffers.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor fills the target before the tree is drawn. A zero alpha
	// leaves the target untouched.
	ClearColor Color

	// AntiAlias is forwarded to every DrawTriangles call.
	AntiAlias bool

	// Render state
	commands []RenderCommand

	// Input state
	handlers    handlerRegistry
	pointer     pointerState
	hitBuf      []*Node
	injectQueue []syntheticPointerEvent

	updateFunc func() error
	resizeFunc func(w, h int)
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:     root,
		commands: make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update refreshes world transforms and processes pointer input. Injected
// events take priority over the real mouse.
func (s *Scene) Update() {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	if !s.processInjectedInput() {
		s.processMousePointer()
	}
}

// Draw traverses the scene tree, emits render commands and submits them to
// the given screen image.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(color.RGBA{
			R: channel8(s.ClearColor.R),
			G: channel8(s.ClearColor.G),
			B: channel8(s.ClearColor.B),
			A: channel8(s.ClearColor.A),
		})
	}

	s.commands = s.commands[:0]

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.traverse(s.root, identityTransform, 1.0, false)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submit(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.vertexCount = countVertices(s.commands)
		s.debugLog(stats)
	}
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings go to stderr along with per-frame timing stats.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
