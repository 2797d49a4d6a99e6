package player

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/phanxgames/jumplab"
	"github.com/phanxgames/jumplab/update"
)

const dt = 1.0 / 60

type fakeKeys struct {
	justDown, justUp bool
}

func (k *fakeKeys) IsJustDown(ebiten.Key) bool { return k.justDown }
func (k *fakeKeys) IsJustUp(ebiten.Key) bool   { return k.justUp }

func newTestPlayer(mode Mode, y float64) (*Player, *fakeKeys) {
	keys := &fakeKeys{}
	p := New(keys, DefaultTuning())
	p.SetPosition(-150, y)
	p.SetMode(mode)
	return p, keys
}

// tapJump holds the jump key for one tick and releases it on the next.
func tapJump(p *Player, keys *fakeKeys) {
	keys.justDown = true
	p.Update(dt)
	keys.justDown = false
	keys.justUp = true
	p.Update(dt)
	keys.justUp = false
}

// runUntil ticks until the player reaches phase, returning the tick count.
func runUntil(t *testing.T, p *Player, phase Phase, max int) int {
	t.Helper()
	for i := 1; i <= max; i++ {
		p.Update(dt)
		if p.Phase() == phase {
			return i
		}
	}
	t.Fatalf("phase %v not reached in %d ticks (stuck in %v)", phase, max, p.Phase())
	return 0
}

func TestTapEntersAscend(t *testing.T) {
	p, keys := newTestPlayer(ModeGravity, 0)
	keys.justDown = true
	p.Update(dt)
	if p.Phase() != PhaseJumpDown {
		t.Fatalf("phase = %v, want jump down", p.Phase())
	}
	keys.justDown = false
	p.Update(dt)
	if p.Phase() != PhaseJumpDown {
		t.Fatal("jump down should wait for the release")
	}
	keys.justUp = true
	p.Update(dt)
	if p.Phase() != PhaseAscend || p.VelocityY() != -750 {
		t.Errorf("phase = %v, velocity = %v; want ascend, -750", p.Phase(), p.VelocityY())
	}
}

func TestGravityLandsExactly(t *testing.T) {
	for _, mode := range []Mode{ModeGravity, ModeGravitySquash, ModeGravitySquashFX} {
		for _, y0 := range []float64{-50, 0, 123.456, -1000.125} {
			t.Run(mode.String(), func(t *testing.T) {
				p, keys := newTestPlayer(mode, y0)
				tapJump(p, keys)
				runUntil(t, p, PhaseFall, 200)
				if p.Y() >= y0 {
					t.Errorf("apex y = %v, want above %v", p.Y(), y0)
				}
				runUntil(t, p, PhaseReceipt, 200)
				if p.Y() != y0 {
					t.Errorf("landed at %v, want exactly %v", p.Y(), y0)
				}
				runUntil(t, p, PhaseNormal, 200)
				if p.Y() != y0 {
					t.Errorf("y after receipt = %v, want %v", p.Y(), y0)
				}
			})
		}
	}
}

func TestTeleportEndToEnd(t *testing.T) {
	const y0 = -50
	p, keys := newTestPlayer(ModeTeleport, y0)
	tapJump(p, keys)

	p.Update(dt)
	if p.Y() != y0-190 {
		t.Fatalf("ascend y = %v, want %v", p.Y(), y0-190)
	}

	ticks := 1 + runUntil(t, p, PhaseFall, 100)
	if got := float64(ticks) * dt; math.Abs(got-0.75) > 2*dt {
		t.Errorf("ascend dwell = %.4fs, want 0.75s", got)
	}

	fall := runUntil(t, p, PhaseReceipt, 100)
	if got := float64(fall) * dt; math.Abs(got-0.75) > 2*dt {
		t.Errorf("fall dwell = %.4fs, want 0.75s", got)
	}
	if p.Y() != y0 {
		t.Errorf("y after fall = %v, want %v", p.Y(), y0)
	}

	if n := runUntil(t, p, PhaseNormal, 5); n != 1 {
		t.Errorf("receipt took %d ticks, want 1", n)
	}
	if p.Y() != y0 {
		t.Errorf("final y = %v, want %v", p.Y(), y0)
	}
}

func TestLinearInterpolates(t *testing.T) {
	const y0 = 0
	p, keys := newTestPlayer(ModeLinear, y0)
	tapJump(p, keys)

	for i := 0; i <= 15; i++ {
		p.Update(dt)
	}
	// The last write used 15 ticks of elapsed time.
	want := -190 * (15 * dt / 0.5)
	if math.Abs(p.Y()-want) > 1e-6 {
		t.Errorf("mid ascend y = %v, want %v", p.Y(), want)
	}

	runUntil(t, p, PhaseFall, 100)
	if p.Y() != -190 {
		t.Errorf("apex y = %v, want -190", p.Y())
	}
	runUntil(t, p, PhaseReceipt, 100)
	if p.Y() != y0 {
		t.Errorf("landing y = %v, want %v", p.Y(), y0)
	}
}

func TestSquashCycle(t *testing.T) {
	p, keys := newTestPlayer(ModeGravitySquash, 0)

	keys.justDown = true
	p.Update(dt)
	keys.justDown = false
	for range 30 {
		p.Update(dt)
	}
	if p.Scale() != p.Tuning().SquashDown {
		t.Fatalf("charged scale = %v, want %v", p.Scale(), p.Tuning().SquashDown)
	}

	keys.justUp = true
	p.Update(dt)
	keys.justUp = false

	runUntil(t, p, PhaseReceipt, 200)
	runUntil(t, p, PhaseNormal, 200)
	if p.Scale() != p.Tuning().SquashReceipt {
		t.Errorf("scale leaving receipt = %v, want %v", p.Scale(), p.Tuning().SquashReceipt)
	}

	for range 60 {
		p.Update(dt)
	}
	if p.Scale() != (cp.Vector{X: 1, Y: 1}) {
		t.Errorf("rest scale = %v, want (1, 1)", p.Scale())
	}
	if n := p.Node(); n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("node scale = (%v, %v)", n.ScaleX, n.ScaleY)
	}
}

func TestNonSquashModesKeepScale(t *testing.T) {
	p, keys := newTestPlayer(ModeGravity, 0)
	tapJump(p, keys)
	runUntil(t, p, PhaseNormal, 300)
	if p.Scale() != (cp.Vector{X: 1, Y: 1}) {
		t.Errorf("scale = %v, want unchanged", p.Scale())
	}
}

func TestModeSwitchKeepsPhase(t *testing.T) {
	p, keys := newTestPlayer(ModeGravity, 0)
	tapJump(p, keys)
	for range 5 {
		p.Update(dt)
	}
	v := p.VelocityY()

	p.SetMode(ModeTeleport)
	if p.Phase() != PhaseAscend || p.VelocityY() != v {
		t.Errorf("mode switch reset state: phase %v, velocity %v", p.Phase(), p.VelocityY())
	}
	runUntil(t, p, PhaseNormal, 300)
	if p.Y() != 0 {
		t.Errorf("y = %v, want 0", p.Y())
	}
}

func TestHistoryLength(t *testing.T) {
	for _, ticks := range []int{0, 1, 1000} {
		p, keys := newTestPlayer(ModeGravitySquashFX, 0)
		for i := 0; i < ticks; i++ {
			keys.justDown = i%90 == 0
			keys.justUp = i%90 == 10
			p.Update(dt)
		}
		if n := len(p.History()); n != TrailSize {
			t.Errorf("after %d ticks history has %d entries, want %d", ticks, n, TrailSize)
		}
	}
}

func TestHistoryRecordsNewestLast(t *testing.T) {
	p, _ := newTestPlayer(ModeGravitySquashFX, 0)
	p.SetPosition(10, 20)
	p.Update(dt)
	h := p.History()
	if h[len(h)-1] != (cp.Vector{X: 10, Y: 20}) {
		t.Errorf("newest = %v, want (10, 20)", h[len(h)-1])
	}
	if h[0] != (cp.Vector{X: -150, Y: 0}) {
		t.Errorf("oldest = %v, want the previous position", h[0])
	}
}

func TestTrailOnlyInFXMode(t *testing.T) {
	p, _ := newTestPlayer(ModeGravitySquashFX, 0)
	p.Update(dt)
	shapes := p.Trail().Graphics.Shapes()
	if len(shapes) != TrailSize-1 {
		t.Fatalf("trail shapes = %d, want %d", len(shapes), TrailSize-1)
	}
	if a := shapes[len(shapes)-1].FillAlpha; a != 1 {
		t.Errorf("newest segment alpha = %v, want 1", a)
	}
	if a := shapes[0].FillAlpha; math.Abs(a-1.0/(TrailSize-1)) > 1e-12 {
		t.Errorf("oldest segment alpha = %v", a)
	}

	p.SetMode(ModeGravitySquash)
	if len(p.Trail().Graphics.Shapes()) != 0 {
		t.Error("leaving FX mode should clear the trail")
	}
	p.Update(dt)
	if len(p.Trail().Graphics.Shapes()) != 0 {
		t.Error("trail redrawn outside FX mode")
	}
}

func TestAttachToPutsTrailBelow(t *testing.T) {
	parent := jumplab.NewContainer("world")
	parent.AddChild(jumplab.NewContainer("platform"))

	p, _ := newTestPlayer(ModeGravitySquashFX, 0)
	p.AttachTo(parent)

	trail := parent.ChildIndex(p.Trail())
	body := parent.ChildIndex(p.Node())
	if trail != 1 || body != 2 {
		t.Errorf("trail at %d, body at %d; want 1, 2", trail, body)
	}
}

func TestAttachToTwiceKeepsTrailBelow(t *testing.T) {
	parent := jumplab.NewContainer("world")
	parent.AddChild(jumplab.NewContainer("platform"))

	p, _ := newTestPlayer(ModeGravitySquashFX, 0)
	p.AttachTo(parent)
	p.AttachTo(parent)

	if parent.NumChildren() != 3 {
		t.Fatalf("children = %d, want 3", parent.NumChildren())
	}
	trail := parent.ChildIndex(p.Trail())
	body := parent.ChildIndex(p.Node())
	if trail != 1 || body != 2 {
		t.Errorf("trail at %d, body at %d; want 1, 2", trail, body)
	}
}

func TestMotionMarksTransformDirty(t *testing.T) {
	for _, mode := range []Mode{ModeTeleport, ModeLinear, ModeGravity} {
		t.Run(mode.String(), func(t *testing.T) {
			scene := jumplab.NewScene()
			p, keys := newTestPlayer(mode, 0)
			p.AttachTo(scene.Root())
			tapJump(p, keys)
			p.Update(dt)

			scene.InjectMove(0, 0)
			scene.Update()
			if p.Node().TransformDirty() {
				t.Fatal("scene update left the transform dirty")
			}

			y := p.Y()
			for p.Y() == y {
				p.Update(dt)
				if p.Phase() == PhaseNormal {
					t.Fatal("landed without moving")
				}
			}
			if !p.Node().TransformDirty() {
				t.Errorf("y moved %v -> %v without marking the transform dirty", y, p.Y())
			}
		})
	}
}

func TestStartRegisters(t *testing.T) {
	s := update.NewService()
	p, _ := newTestPlayer(ModeTeleport, 0)
	p.Start(s)
	p.Start(s)
	if s.Len() != 1 || !s.Has(p) {
		t.Errorf("service Len = %d, Has = %v", s.Len(), s.Has(p))
	}
}

func TestModeCycle(t *testing.T) {
	tests := []struct {
		m, next, prev Mode
	}{
		{ModeTeleport, ModeLinear, ModeGravitySquashFX},
		{ModeGravitySquashFX, ModeTeleport, ModeGravitySquash},
	}
	for _, tt := range tests {
		if got := tt.m.Next(); got != tt.next {
			t.Errorf("%v.Next() = %v, want %v", tt.m, got, tt.next)
		}
		if got := tt.m.Prev(); got != tt.prev {
			t.Errorf("%v.Prev() = %v, want %v", tt.m, got, tt.prev)
		}
	}
}
