package jumplab

import "github.com/hajimehoshi/ebiten/v2"

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// --- Pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hitNode   *Node       // node under the pointer at press time
	hoverNode *Node       // last node the pointer was hovering over (for enter/leave)
	button    MouseButton // button captured at press time
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	click       []clickHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removePointerHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removePointerHandler(h.reg.pointerUp, h.id)
	case EventClick:
		h.reg.click = removeClickHandler(h.reg.click, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeClickHandler(s []clickHandler, id uint32) []clickHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clickHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events,
// whether or not a node was hit.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerDown = append(s.handlers.pointerDown, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerDown}
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerUp = append(s.handlers.pointerUp, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerUp}
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// --- Hit testing ---

// collectInteractable walks the tree in painter order (DFS, child order),
// appending nodes that carry a HitShape to buf. Skips Visible=false or
// Interactable=false subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if n.HitShape.Contains(lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processMousePointer reads the mouse and feeds it through the pointer state
// machine.
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	// If the pointer is already down, keep the stored button so it does not
	// change mid-interaction.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	s.processPointer(float64(mx), float64(my), pressed, button)
}

// processPointer runs the pointer state machine.
//
// On release the hit node under the cursor receives pointer up. If the press
// started on a different node, that node receives pointer up outside. If the
// press and release landed on the same node, it then receives click.
func (s *Scene) processPointer(wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	target := s.hitTest(wx, wy)

	if target != ps.hoverNode {
		if ps.hoverNode != nil && ps.hoverNode.OnPointerLeave != nil {
			ps.hoverNode.OnPointerLeave(pointerContext(ps.hoverNode, wx, wy, button))
		}
		if target != nil && target.OnPointerEnter != nil {
			target.OnPointerEnter(pointerContext(target, wx, wy, button))
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.firePointerDown(target, wx, wy, button)
	case !pressed && ps.down:
		pressedOn := ps.hitNode
		ps.down = false
		ps.hitNode = nil

		s.firePointerUp(target, wx, wy, ps.button)
		if pressedOn != nil && pressedOn != target && pressedOn.OnPointerUpOutside != nil {
			pressedOn.OnPointerUpOutside(pointerContext(pressedOn, wx, wy, ps.button))
		}
		if pressedOn != nil && pressedOn == target {
			s.fireClick(target, wx, wy, ps.button)
		}
	}
	ps.lastX = wx
	ps.lastY = wy
}

// --- Event dispatch ---

func pointerContext(node *Node, wx, wy float64, button MouseButton) PointerContext {
	ctx := PointerContext{Node: node, GlobalX: wx, GlobalY: wy, Button: button}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
	}
	return ctx
}

func (s *Scene) firePointerDown(node *Node, wx, wy float64, button MouseButton) {
	ctx := pointerContext(node, wx, wy, button)
	// Scene-level handlers first.
	for _, h := range s.handlers.pointerDown {
		h.fn(ctx)
	}
	if node != nil && node.OnPointerDown != nil {
		node.OnPointerDown(ctx)
	}
}

func (s *Scene) firePointerUp(node *Node, wx, wy float64, button MouseButton) {
	ctx := pointerContext(node, wx, wy, button)
	for _, h := range s.handlers.pointerUp {
		h.fn(ctx)
	}
	if node != nil && node.OnPointerUp != nil {
		node.OnPointerUp(ctx)
	}
}

func (s *Scene) fireClick(node *Node, wx, wy float64, button MouseButton) {
	pc := pointerContext(node, wx, wy, button)
	ctx := ClickContext(pc)
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if node != nil && node.OnClick != nil {
		node.OnClick(ctx)
	}
}
