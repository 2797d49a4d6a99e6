// Package keyboard tracks key state with per-tick edges.
package keyboard

import "github.com/hajimehoshi/ebiten/v2"

// Controller records which keys are held and which changed this tick.
// Edges stay visible until EndTick, so register the controller with the
// update service after every consumer that reads them.
type Controller struct {
	watched  []ebiten.Key
	down     map[ebiten.Key]bool
	justDown map[ebiten.Key]bool
	justUp   map[ebiten.Key]bool
}

// New returns a controller that polls the given keys.
func New(keys ...ebiten.Key) *Controller {
	return &Controller{
		watched:  keys,
		down:     make(map[ebiten.Key]bool),
		justDown: make(map[ebiten.Key]bool),
		justUp:   make(map[ebiten.Key]bool),
	}
}

// KeyDown records a press. Repeated presses of a held key are not edges.
func (c *Controller) KeyDown(k ebiten.Key) {
	if !c.down[k] {
		c.justDown[k] = true
	}
	c.down[k] = true
}

// KeyUp records a release.
func (c *Controller) KeyUp(k ebiten.Key) {
	if c.down[k] {
		c.justUp[k] = true
	}
	c.down[k] = false
}

func (c *Controller) IsDown(k ebiten.Key) bool     { return c.down[k] }
func (c *Controller) IsUp(k ebiten.Key) bool       { return !c.down[k] }
func (c *Controller) IsJustDown(k ebiten.Key) bool { return c.justDown[k] }
func (c *Controller) IsJustUp(k ebiten.Key) bool   { return c.justUp[k] }

// EndTick clears the edges.
func (c *Controller) EndTick() {
	clear(c.justDown)
	clear(c.justUp)
}

// Update implements update.Updatable by ending the tick.
func (c *Controller) Update(float64) {
	c.EndTick()
}

// Poll samples every watched key. Pass ebiten.IsKeyPressed in the game loop.
func (c *Controller) Poll(pressed func(ebiten.Key) bool) {
	for _, k := range c.watched {
		switch p := pressed(k); {
		case p && !c.down[k]:
			c.KeyDown(k)
		case !p && c.down[k]:
			c.KeyUp(k)
		}
	}
}
