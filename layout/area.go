package layout

import (
	"github.com/phanxgames/jumplab"
	"github.com/phanxgames/jumplab/update"
)

// Env is the process-scoped state shared by every area of one tree: the
// update service that runs scheduled redraws and the default styles.
type Env struct {
	Updates     *update.Service
	DefaultFill *FillStyle
	DefaultLine *LineStyle
}

// NewEnv returns an env with an opaque white fill and a 5px white line as
// defaults.
func NewEnv(updates *update.Service) *Env {
	return &Env{
		Updates:     updates,
		DefaultFill: NewFillStyle(jumplab.ColorWhite, 1),
		DefaultLine: NewLineStyle(5, jumplab.ColorWhite, 1),
	}
}

// Anchored is anything an Area can be parented to.
type Anchored interface {
	Parent() Anchored
	Container() *jumplab.Node
	RectTransform() *RectTransform
	Env() *Env
}

// RootArea spans the whole screen. Its container is supplied by the caller,
// usually the scene root.
type RootArea struct {
	env       *Env
	container *jumplab.Node
	rt        *RectTransform
}

// NewRootArea wraps stage as the root of an area tree.
func NewRootArea(env *Env, stage *jumplab.Node) *RootArea {
	rt := NewRectTransform()
	rt.SetAnchors(0, 0, 1, 1)
	rt.SetSizeDelta(0, 0)
	return &RootArea{env: env, container: stage, rt: rt}
}

func (r *RootArea) Parent() Anchored               { return nil }
func (r *RootArea) Container() *jumplab.Node       { return r.container }
func (r *RootArea) RectTransform() *RectTransform { return r.rt }
func (r *RootArea) Env() *Env                      { return r.env }

// Resize sets the screen size. Every descendant area redraws on the next
// tick.
func (r *RootArea) Resize(w, h float64) {
	r.rt.SetScreenRect(jumplab.Rect{Width: w, Height: h})
}

// Area owns a rect transform and a container inserted into its parent's
// container. Mutations are coalesced into one redraw per tick.
type Area struct {
	env       *Env
	parent    Anchored
	container *jumplab.Node
	rt        *RectTransform

	scheduled bool
	frame     *frame
	draws     int

	// scheduledAt is the service tick count when the pending redraw was
	// requested.
	scheduledAt uint64

	// onDraw runs after the container has been positioned.
	onDraw func()
}

// frame is the entry registered with the update service while a redraw is
// pending.
type frame struct {
	a *Area
}

func (f *frame) Update(float64) {
	f.a.nextFrame()
}

// NewArea creates an area under parent. It panics if parent is nil.
func NewArea(parent Anchored, name string) *Area {
	return newArea(parent, name)
}

func newArea(parent Anchored, name string) *Area {
	if parent == nil {
		panic("layout: area parent must not be nil")
	}
	c := jumplab.NewContainer(name)
	// Containers pass hit testing through to their children.
	c.Interactable = true

	a := &Area{
		env:       parent.Env(),
		container: c,
		rt:        NewRectTransform(),
	}
	a.frame = &frame{a: a}
	a.rt.Changed().Connect(a.ScheduleDraw)
	a.SetParent(parent)
	return a
}

func (a *Area) Parent() Anchored               { return a.parent }
func (a *Area) Container() *jumplab.Node       { return a.container }
func (a *Area) RectTransform() *RectTransform { return a.rt }
func (a *Area) Env() *Env                      { return a.env }

// SetParent moves the area under p. The container and the rect transform are
// relinked together before SetParent returns. It panics if p is nil or a
// descendant of a.
func (a *Area) SetParent(p Anchored) {
	if p == nil {
		panic("layout: area parent must not be nil")
	}
	if a.rt.wouldCycle(p.RectTransform()) {
		panic("layout: area parent would create a cycle")
	}
	p.Container().AddChild(a.container)
	a.parent = p
	a.rt.SetParent(p.RectTransform())
	a.ScheduleDraw()
}

// ScheduleDraw requests a redraw on the next tick. Further requests before
// then are ignored.
func (a *Area) ScheduleDraw() {
	if a.scheduled {
		return
	}
	a.scheduled = true
	a.scheduledAt = a.env.Updates.Ticks()
	a.env.Updates.Add(a.frame)
}

// Scheduled reports whether a redraw is pending.
func (a *Area) Scheduled() bool {
	return a.scheduled
}

// nextFrame clears the request before drawing so the draw itself may
// schedule the following one.
func (a *Area) nextFrame() {
	if !a.scheduled {
		return
	}
	a.scheduled = false
	a.env.Updates.Remove(a.frame)
	a.draw()
}

func (a *Area) area() *Area { return a }

// draw places the container so its origin sits on the rect's pivot point.
// The container's own parent may be deeper than the area parent's container,
// so the point goes through global space.
//
// A parent redraw requested before this tick is run first. One requested
// during this tick belongs to the next tick, so this draw follows it there.
func (a *Area) draw() {
	if p, ok := a.parent.(interface{ area() *Area }); ok {
		if pa := p.area(); pa.scheduled {
			if pa.scheduledAt == a.env.Updates.Ticks() {
				a.ScheduleDraw()
				return
			}
			pa.nextFrame()
		}
	}
	a.draws++
	r := a.rt.Rect()
	pv := a.rt.Pivot()
	pos := jumplab.Vec2{X: r.X + r.Width*pv.X, Y: r.Y + r.Height*pv.Y}
	if p := a.container.Parent; p != nil {
		pos = p.ToLocal(pos, nil)
	}
	a.container.SetPosition(pos.X, pos.Y)
	if a.onDraw != nil {
		a.onDraw()
	}
}
