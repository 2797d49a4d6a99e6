package jumplab

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates one or two float64 fields together. Create one via
// the convenience constructors and call Update(dt) each frame. The group
// writes values into the bound fields and marks the target node dirty.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	target *Node
	Done   bool

	// OnUpdate, when set, runs after every write, including the last.
	OnUpdate func()
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
	if g.OnUpdate != nil {
		g.OnUpdate()
	}
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(node.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &node.ScaleX
	g.fields[1] = &node.ScaleY
	return g
}

// TweenValue creates a TweenGroup over a single field that is not owned by a
// node, such as a style channel or a transition's progress.
func TweenValue(field *float64, from, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(from), float32(to), duration, fn)
	g.fields[0] = field
	*field = from
	return g
}
