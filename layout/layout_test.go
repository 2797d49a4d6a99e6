package layout

import (
	"testing"

	"github.com/phanxgames/jumplab"
	"github.com/phanxgames/jumplab/update"
)

const tick = 1.0 / 60

func newTestTree(w, h float64) (*Env, *RootArea) {
	env := NewEnv(update.NewService())
	root := NewRootArea(env, jumplab.NewContainer("stage"))
	root.Resize(w, h)
	return env, root
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func rectApprox(a, b jumplab.Rect) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Width, b.Width) && approx(a.Height, b.Height)
}

// --- RectTransform ---

func TestRectTransformRect(t *testing.T) {
	screen := jumplab.Rect{Width: 800, Height: 600}

	tests := []struct {
		name  string
		setup func(rt *RectTransform)
		want  jumplab.Rect
	}{
		{"defaults centered", func(rt *RectTransform) {}, jumplab.Rect{X: 350, Y: 250, Width: 100, Height: 100}},
		{"stretch with margin", func(rt *RectTransform) {
			rt.SetAnchors(0, 0, 1, 1)
			rt.SetSizeDelta(-20, -20)
		}, jumplab.Rect{X: 10, Y: 10, Width: 780, Height: 580}},
		{"top right corner", func(rt *RectTransform) {
			rt.SetAnchors(1, 0, 1, 0)
			rt.SetPivot(1, 0)
			rt.SetSizeDelta(200, 40)
			rt.SetAnchoredPosition(-25, 25)
		}, jumplab.Rect{X: 575, Y: 25, Width: 200, Height: 40}},
		{"left half", func(rt *RectTransform) {
			rt.SetAnchors(0, 0, 0.5, 1)
			rt.SetSizeDelta(0, 0)
		}, jumplab.Rect{X: 0, Y: 0, Width: 400, Height: 600}},
		{"inverted anchors", func(rt *RectTransform) {
			rt.SetAnchors(1, 1, 0, 0)
			rt.SetSizeDelta(0, 0)
		}, jumplab.Rect{X: 800, Y: 600, Width: -800, Height: -600}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := NewRectTransform()
			rt.SetScreenRect(screen)
			tt.setup(rt)
			if got := rt.Rect(); !rectApprox(got, tt.want) {
				t.Errorf("Rect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectTransformNested(t *testing.T) {
	parent := NewRectTransform()
	parent.SetScreenRect(jumplab.Rect{Width: 800, Height: 600})

	child := NewRectTransform()
	child.SetAnchors(0, 0, 0, 0)
	child.SetPivot(0, 0)
	child.SetSizeDelta(10, 10)
	child.SetParent(parent)

	want := jumplab.Rect{X: 350, Y: 250, Width: 10, Height: 10}
	if got := child.Rect(); !rectApprox(got, want) {
		t.Errorf("child Rect() = %+v, want %+v", got, want)
	}
}

func TestRectTransformChangedCascades(t *testing.T) {
	parent := NewRectTransform()
	child := NewRectTransform()
	child.SetParent(parent)

	fired := 0
	child.Changed().Connect(func() { fired++ })

	parent.SetSizeDelta(50, 50)
	if fired != 1 {
		t.Errorf("child notified %d times, want 1", fired)
	}
	parent.SetSizeDelta(50, 50)
	if fired != 1 {
		t.Errorf("unchanged value should not notify, got %d", fired)
	}
}

func TestRectTransformCyclePanics(t *testing.T) {
	a := NewRectTransform()
	b := NewRectTransform()
	b.SetParent(a)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on parent cycle")
		}
	}()
	a.SetParent(b)
}

// --- Signal ---

func TestSignalDisconnect(t *testing.T) {
	var sig Signal
	var calls []string
	var second Connection
	sig.Connect(func() {
		calls = append(calls, "first")
		second.Disconnect()
	})
	second = sig.Connect(func() { calls = append(calls, "second") })

	sig.Emit()
	if len(calls) != 2 {
		t.Fatalf("calls = %v, want both observers during the emit that disconnects", calls)
	}
	if second.Connected() {
		t.Error("second should be disconnected")
	}
	sig.Emit()
	if len(calls) != 3 || sig.Len() != 1 {
		t.Errorf("calls = %v, Len = %d", calls, sig.Len())
	}
	second.Disconnect()
	Connection{}.Disconnect()
}

// --- Area ---

func TestAreaCoalescesRedraw(t *testing.T) {
	env, root := newTestTree(800, 600)
	a := NewArea(root, "a")
	env.Updates.Update(tick)
	before := a.draws

	rt := a.RectTransform()
	rt.SetAnchors(0, 0, 1, 1)
	rt.SetSizeDelta(-20, -20)
	rt.SetPivot(0, 0)
	rt.SetAnchoredPosition(5, 5)
	rt.SetAnchoredPosition(10, 10)

	if a.draws != before {
		t.Fatal("redraw must not run synchronously")
	}
	if !a.Scheduled() {
		t.Fatal("mutation should schedule a redraw")
	}

	env.Updates.Update(tick)
	if a.draws != before+1 {
		t.Fatalf("draws = %d, want %d", a.draws, before+1)
	}
	if c := a.Container(); c.X != 10 || c.Y != 10 {
		t.Errorf("container at (%v, %v), want (10, 10)", c.X, c.Y)
	}

	env.Updates.Update(tick)
	if a.draws != before+1 {
		t.Errorf("idle tick redrew, draws = %d", a.draws)
	}
	if env.Updates.Has(a.frame) {
		t.Error("frame should be deregistered after drawing")
	}
}

func TestAreaRedrawDuringDrawRunsNextTick(t *testing.T) {
	env, root := newTestTree(800, 600)
	a := NewArea(root, "a")

	first := true
	a.onDraw = func() {
		if first {
			first = false
			a.RectTransform().SetSizeDelta(1, 1)
		}
	}

	env.Updates.Update(tick)
	if a.draws != 1 || !a.Scheduled() {
		t.Fatalf("draws = %d, scheduled = %v; want 1, true", a.draws, a.Scheduled())
	}
	env.Updates.Update(tick)
	if a.draws != 2 || a.Scheduled() {
		t.Errorf("draws = %d, scheduled = %v; want 2, false", a.draws, a.Scheduled())
	}
}

func TestAreaReparent(t *testing.T) {
	env, root := newTestTree(800, 600)
	a := NewArea(root, "a")
	a.RectTransform().SetAnchoredPosition(10, 20)
	b := NewArea(root, "b")
	b.RectTransform().SetAnchoredPosition(100, 50)
	env.Updates.Update(tick)

	if c := a.Container(); c.X != 410 || c.Y != 320 {
		t.Fatalf("a at (%v, %v), want (410, 320)", c.X, c.Y)
	}

	a.SetParent(b)
	if a.Container().Parent != b.Container() {
		t.Error("container not moved under new parent")
	}
	if a.RectTransform().Parent() != b.RectTransform() {
		t.Error("rect transform not linked to new parent")
	}
	if a.Parent() != Anchored(b) {
		t.Error("Parent() not updated")
	}

	env.Updates.Update(tick)
	if c := a.Container(); !approx(c.X, 10) || !approx(c.Y, 20) {
		t.Errorf("a at (%v, %v) in b's space, want (10, 20)", c.X, c.Y)
	}
	g := a.Container().ToGlobal(jumplab.Vec2{})
	if !approx(g.X, 510) || !approx(g.Y, 370) {
		t.Errorf("a global (%v, %v), want (510, 370)", g.X, g.Y)
	}
}

func TestAreaParentDrawsFirst(t *testing.T) {
	env, root := newTestTree(800, 600)
	child := NewArea(root, "child")
	parent := NewArea(root, "parent")
	env.Updates.Update(tick)

	child.SetParent(parent)
	child.RectTransform().SetAnchoredPosition(5, 0)
	parent.RectTransform().SetAnchoredPosition(100, 0)
	env.Updates.Update(tick)

	g := child.Container().ToGlobal(jumplab.Vec2{})
	if !approx(g.X, 505) || !approx(g.Y, 300) {
		t.Errorf("child global (%v, %v), want (505, 300)", g.X, g.Y)
	}
}

type hook struct{ fn func() }

func (h *hook) Update(float64) {
	if h.fn != nil {
		h.fn()
	}
}

func TestAreaParentScheduledMidTickWaits(t *testing.T) {
	env, root := newTestTree(800, 600)
	parent := NewArea(root, "parent")
	child := NewArea(parent, "child")
	env.Updates.Update(tick)

	h := &hook{}
	env.Updates.Add(h)
	child.RectTransform().SetAnchoredPosition(5, 0)
	h.fn = func() { parent.RectTransform().SetAnchoredPosition(100, 0) }
	pd, cd := parent.draws, child.draws

	env.Updates.Update(tick)
	h.fn = nil
	if parent.draws != pd {
		t.Fatal("parent redrew in the tick its redraw was requested")
	}
	if child.draws != cd || !parent.Scheduled() || !child.Scheduled() {
		t.Fatalf("child draws = %d, parent scheduled = %v, child scheduled = %v",
			child.draws-cd, parent.Scheduled(), child.Scheduled())
	}

	env.Updates.Update(tick)
	if parent.draws != pd+1 || child.draws != cd+1 {
		t.Errorf("draws parent +%d child +%d, want +1 each", parent.draws-pd, child.draws-cd)
	}
	g := child.Container().ToGlobal(jumplab.Vec2{})
	if !approx(g.X, 505) || !approx(g.Y, 300) {
		t.Errorf("child global (%v, %v), want (505, 300)", g.X, g.Y)
	}
}

func TestRootResizeCascades(t *testing.T) {
	env, root := newTestTree(800, 600)
	a := NewArea(root, "a")
	a.RectTransform().SetAnchors(0, 0, 1, 1)
	a.RectTransform().SetSizeDelta(0, 0)
	env.Updates.Update(tick)

	root.Resize(1000, 500)
	if !a.Scheduled() {
		t.Fatal("resize should schedule descendants")
	}
	env.Updates.Update(tick)
	if c := a.Container(); c.X != 500 || c.Y != 250 {
		t.Errorf("container at (%v, %v), want (500, 250)", c.X, c.Y)
	}
}

func TestNewAreaNilParentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil parent")
		}
	}()
	NewArea(nil, "orphan")
}

// --- FilledArea ---

func TestFilledAreaDraw(t *testing.T) {
	env, root := newTestTree(800, 600)
	f := NewFilledArea(root, "f")
	env.Updates.Update(tick)

	shapes := f.Graphics().Graphics.Shapes()
	if len(shapes) != 1 {
		t.Fatalf("shapes = %d, want 1", len(shapes))
	}
	sh := shapes[0]
	if !sh.Filled || sh.FillColor != jumplab.ColorWhite || sh.LineWidth != 5 {
		t.Errorf("shape style = %+v", sh)
	}
	if p := sh.Points[0]; p.X != -50 || p.Y != -50 {
		t.Errorf("top-left = %+v, want (-50, -50)", p)
	}
	if !f.Graphics().HitShape.Contains(0, 0) || f.Graphics().HitShape.Contains(60, 0) {
		t.Error("hit rect should match the drawn rectangle")
	}
}

func TestFilledAreaDefaultNormalization(t *testing.T) {
	env, root := newTestTree(800, 600)
	f := NewFilledArea(root, "f")
	def := env.DefaultFill

	if f.UsedFillStyle() != def {
		t.Fatal("fresh area should draw the default fill")
	}

	f.SetFillStyle(def)
	got := f.FillStyle()
	if got == def {
		t.Fatal("FillStyle() returned the shared default instance")
	}
	if got.Color() != def.Color() || got.Alpha() != def.Alpha() {
		t.Errorf("clone = (%v, %v), want default values", got.Color(), got.Alpha())
	}
	if f.UsedFillStyle() != got {
		t.Error("lazily created override should become the used style")
	}

	f.SetLineStyle(env.DefaultLine)
	if f.UsedLineStyle() != env.DefaultLine {
		t.Error("setting the default line should clear the override")
	}
}

func TestFilledAreaSingleSubscription(t *testing.T) {
	env, root := newTestTree(800, 600)
	f := NewFilledArea(root, "f")
	custom := NewFillStyle(jumplab.RGB(0xFF0000), 1)
	other := NewFillStyle(jumplab.RGB(0x0000FF), 1)

	f.SetFillStyle(custom)
	env.Updates.Update(tick)
	f.SetFillStyle(nil)
	env.Updates.Update(tick)
	f.SetFillStyle(other)
	env.Updates.Update(tick)

	custom.SetAlpha(0.3)
	env.DefaultFill.SetColor(jumplab.RGB(0x123456))
	if f.Scheduled() {
		t.Fatal("discarded styles still trigger redraws")
	}
	if custom.Changed().Len() != 0 || env.DefaultFill.Changed().Len() != 0 {
		t.Errorf("stale subscriptions: custom=%d default=%d",
			custom.Changed().Len(), env.DefaultFill.Changed().Len())
	}
	if other.Changed().Len() != 1 {
		t.Errorf("used style subscriptions = %d, want 1", other.Changed().Len())
	}

	other.SetAlpha(0.5)
	if !f.Scheduled() {
		t.Error("used style change should schedule a redraw")
	}
}

func TestFilledAreaLazyOverrideSubscribes(t *testing.T) {
	env, root := newTestTree(800, 600)
	f := NewFilledArea(root, "f")
	env.Updates.Update(tick)

	line := f.LineStyle()
	env.Updates.Update(tick)

	env.DefaultLine.SetWidth(1)
	if f.Scheduled() {
		t.Error("default line change should not reach an area with an override")
	}
	line.SetWidth(2)
	if !f.Scheduled() {
		t.Error("override change should schedule a redraw")
	}
}

func TestStyleCopyFromEmitsOnce(t *testing.T) {
	a := NewLineStyle(1, jumplab.ColorBlack, 0.5)
	b := NewLineStyle(3, jumplab.ColorWhite, 1)
	b.SetAlignment(1)

	fired := 0
	a.Changed().Connect(func() { fired++ })
	a.CopyFrom(b)
	a.CopyFrom(b)
	if fired != 1 {
		t.Errorf("Changed fired %d times, want 1", fired)
	}
	if a.Width() != 3 || a.Alignment() != 1 || a.Color() != jumplab.ColorWhite {
		t.Errorf("CopyFrom left %+v", a)
	}
	if c := b.Clone(); c.Changed().Len() != 0 || c.MiterLimit() != b.MiterLimit() {
		t.Error("Clone should copy values only")
	}
}

// --- Text ---

func TestTextAnchorFollowsPivot(t *testing.T) {
	env, root := newTestTree(800, 600)
	txt := NewText(root, "hint", "press space", nil)
	txt.RectTransform().SetPivot(0, 1)
	env.Updates.Update(tick)

	tb := txt.Label().TextBlock
	if tb.AnchorX != 0 || tb.AnchorY != 1 {
		t.Errorf("anchor = (%v, %v), want (0, 1)", tb.AnchorX, tb.AnchorY)
	}
	if tb.Color != DefaultTextColor {
		t.Errorf("color = %+v, want green", tb.Color)
	}
	txt.SetText("go")
	if tb.Content != "go" {
		t.Errorf("content = %q", tb.Content)
	}
}
