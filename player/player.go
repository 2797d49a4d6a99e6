// Package player implements the jumping character: a five-phase jump cycle
// whose motion math depends on the selected Mode, squash-and-stretch scaling
// and a fading trail ribbon.
package player

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/phanxgames/jumplab"
	"github.com/phanxgames/jumplab/update"
)

// Keys is the keyboard state the player reads. *keyboard.Controller
// satisfies it.
type Keys interface {
	IsJustDown(k ebiten.Key) bool
	IsJustUp(k ebiten.Key) bool
}

var (
	bodyColor  = jumplab.RGB(0xFF0000)
	trailColor = jumplab.RGB(0xBBBBBB)
	unitScale  = cp.Vector{X: 1, Y: 1}
)

// Player is a red 100x100 body with its origin at the bottom center.
type Player struct {
	// JumpKey charges on press and jumps on release.
	JumpKey ebiten.Key

	keys   Keys
	tuning Tuning
	mode   Mode
	phase  Phase

	elapsed   float64
	velocityY float64
	fromY     float64
	toY       float64
	scale     cp.Vector

	history []cp.Vector

	node  *jumplab.Node
	trail *jumplab.Node
}

// New creates a player in ModeGravitySquashFX, standing still.
func New(keys Keys, tuning Tuning) *Player {
	body := jumplab.NewGraphics("player")
	body.Graphics.BeginFill(bodyColor, 1)
	body.Graphics.DrawRect(-50, -100, 100, 100)
	body.Graphics.EndFill()

	p := &Player{
		JumpKey: ebiten.KeySpace,
		keys:    keys,
		tuning:  tuning,
		mode:    ModeGravitySquashFX,
		scale:   unitScale,
		history: make([]cp.Vector, TrailSize),
		node:    body,
		trail:   jumplab.NewGraphics("player.trail"),
	}
	p.resetHistory()
	return p
}

// Node returns the body node.
func (p *Player) Node() *jumplab.Node { return p.node }

// Trail returns the ribbon node.
func (p *Player) Trail() *jumplab.Node { return p.trail }

func (p *Player) Mode() Mode         { return p.mode }
func (p *Player) Phase() Phase       { return p.phase }
func (p *Player) Tuning() Tuning     { return p.tuning }
func (p *Player) X() float64         { return p.node.X }
func (p *Player) Y() float64         { return p.node.Y }
func (p *Player) VelocityY() float64 { return p.velocityY }
func (p *Player) Scale() cp.Vector   { return p.scale }

// SetTuning replaces the motion constants, also mid-jump.
func (p *Player) SetTuning(t Tuning) {
	p.tuning = t
}

// SetMode switches the motion math. Leaving the FX mode clears the ribbon;
// entering it restarts the history at the current position.
func (p *Player) SetMode(m Mode) {
	if m != ModeGravitySquashFX {
		p.trail.Graphics.Clear()
	} else {
		p.resetHistory()
	}
	p.mode = m
}

// SetPosition moves the player.
func (p *Player) SetPosition(x, y float64) {
	p.node.SetPosition(x, y)
}

// AttachTo adds the player to parent with the trail directly below it.
func (p *Player) AttachTo(parent *jumplab.Node) {
	p.trail.RemoveFromParent()
	parent.AddChild(p.node)
	parent.AddChildAt(p.trail, parent.ChildIndex(p.node))
	p.resetHistory()
}

// Start registers the player with the update service.
func (p *Player) Start(s *update.Service) {
	s.Add(p)
}

// History returns the recorded positions, oldest first.
func (p *Player) History() []cp.Vector {
	out := make([]cp.Vector, len(p.history))
	copy(out, p.history)
	return out
}

func (p *Player) position() cp.Vector {
	return cp.Vector{X: p.node.X, Y: p.node.Y}
}

func (p *Player) resetHistory() {
	pos := p.position()
	for i := range p.history {
		p.history[i] = pos
	}
}

// Update advances the jump cycle by dt seconds, records the position and
// rebuilds the ribbon in FX mode.
func (p *Player) Update(dt float64) {
	switch p.phase {
	case PhaseNormal:
		p.updateNormal(dt)
	case PhaseJumpDown:
		p.updateJumpDown(dt)
	case PhaseAscend:
		p.updateAscend(dt)
	case PhaseFall:
		p.updateFall(dt)
	case PhaseReceipt:
		p.updateReceipt(dt)
	}
	if p.node.ScaleX != p.scale.X || p.node.ScaleY != p.scale.Y {
		p.node.SetScale(p.scale.X, p.scale.Y)
	}

	copy(p.history, p.history[1:])
	p.history[len(p.history)-1] = p.position()

	if p.mode == ModeGravitySquashFX {
		p.drawTrail()
	}
}

func (p *Player) enter(ph Phase) {
	p.phase = ph
	p.elapsed = 0
}

func (p *Player) updateNormal(dt float64) {
	if p.mode.squash() {
		p.scale = moveTowards(p.scale, unitScale, p.tuning.SquashNormalSpeed*dt)
	}
	if p.keys.IsJustDown(p.JumpKey) {
		p.enter(PhaseJumpDown)
	}
}

func (p *Player) updateJumpDown(dt float64) {
	if p.mode.squash() {
		p.scale = moveTowards(p.scale, p.tuning.SquashDown, p.tuning.SquashDownSpeed*dt)
	}
	if p.keys.IsJustUp(p.JumpKey) {
		p.velocityY = p.tuning.Impulse
		p.fromY = p.node.Y
		p.toY = p.node.Y - p.tuning.JumpHeight
		p.enter(PhaseAscend)
	}
}

func (p *Player) updateAscend(dt float64) {
	switch {
	case p.mode == ModeTeleport:
		p.setY(p.toY)
		if p.elapsed >= p.tuning.TeleportDuration {
			p.enter(PhaseFall)
			return
		}
	case p.mode == ModeLinear:
		d := p.tuning.LinearUpDuration
		p.setY(lerp(p.fromY, p.toY, ratio(p.elapsed, d)))
		if p.elapsed >= d {
			p.setY(p.toY)
			p.enter(PhaseFall)
			return
		}
	default:
		if p.mode.squash() {
			t := inverseLerp(p.velocityY, p.tuning.Impulse, 0)
			p.scale = moveTowards(p.scale, p.tuning.SquashUp.Lerp(unitScale, t), p.tuning.SquashUpSpeed*dt)
		}
		p.integrate(dt)
		if p.velocityY >= 0 {
			p.enter(PhaseFall)
			return
		}
	}
	p.elapsed += dt
}

func (p *Player) updateFall(dt float64) {
	switch {
	case p.mode == ModeTeleport:
		if p.elapsed >= p.tuning.TeleportDuration {
			p.setY(p.fromY)
			p.enter(PhaseReceipt)
			return
		}
	case p.mode == ModeLinear:
		d := p.tuning.LinearDownDuration
		p.setY(lerp(p.toY, p.fromY, ratio(p.elapsed, d)))
		if p.elapsed >= d {
			p.setY(p.fromY)
			p.enter(PhaseReceipt)
			return
		}
	default:
		if p.mode.squash() {
			t := inverseLerp(math.Abs(p.velocityY), -p.tuning.Impulse, p.tuning.LandingSpeed)
			p.scale = moveTowards(p.scale, p.tuning.SquashUp.Lerp(unitScale, t), p.tuning.SquashUpSpeed*dt)
		}
		p.integrate(dt)
		if p.node.Y >= p.fromY {
			p.setY(p.fromY)
			p.enter(PhaseReceipt)
			return
		}
	}
	p.elapsed += dt
}

func (p *Player) updateReceipt(dt float64) {
	if p.mode.squash() {
		p.scale = moveTowards(p.scale, p.tuning.SquashReceipt, p.tuning.SquashReceiptSpeed*dt)
		if p.scale == p.tuning.SquashReceipt {
			p.enter(PhaseNormal)
		}
		return
	}
	// Zero-length landing: back to normal on the first receipt tick.
	p.enter(PhaseNormal)
}

func (p *Player) setY(y float64) {
	p.node.SetPosition(p.node.X, y)
}

func (p *Player) integrate(dt float64) {
	p.setY(p.node.Y + p.velocityY*dt)
	p.velocityY += p.tuning.Gravity * dt
}

// drawTrail rebuilds the ribbon from the history. Width and alpha grow
// linearly from zero at the oldest sample to full at the newest.
func (p *Player) drawTrail() {
	g := p.trail.Graphics
	g.Clear()
	last := float64(len(p.history) - 1)
	for i := 1; i < len(p.history); i++ {
		cur, prev := p.history[i], p.history[i-1]
		wc := p.tuning.TrailWidth * float64(i) / last
		wp := p.tuning.TrailWidth * float64(i-1) / last

		g.BeginFill(trailColor, float64(i)/last)
		g.MoveTo(cur.X+wc, cur.Y)
		g.LineTo(cur.X-wc, cur.Y)
		g.LineTo(prev.X-wp, prev.Y)
		g.LineTo(prev.X+wp, prev.Y)
		g.ClosePath()
	}
	g.EndFill()
}

// moveTowards steps from toward to by at most maxDelta and lands exactly on
// to once within reach.
func moveTowards(from, to cp.Vector, maxDelta float64) cp.Vector {
	d := to.Sub(from)
	dist := d.Length()
	if dist <= maxDelta || dist == 0 {
		return to
	}
	return from.Add(d.Mult(maxDelta / dist))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func inverseLerp(v, a, b float64) float64 {
	return (v - a) / (b - a)
}

func ratio(elapsed, d float64) float64 {
	if d <= 0 {
		return 1
	}
	return math.Min(elapsed/d, 1)
}
