package jumplab

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool

	// Resizable lets the user resize the window. The scene's resize callback
	// receives the new logical size.
	Resizable bool
}

// SetUpdateFunc sets a callback invoked once per tick after input has been
// processed. Returning an error stops Run.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetResizeFunc sets a callback invoked whenever the outside size of the
// window changes, including once before the first tick.
func (s *Scene) SetResizeFunc(fn func(w, h int)) {
	s.resizeFunc = fn
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene   *Scene
	showFPS bool
	w, h    int
}

func (g *game) Update() error {
	g.scene.Update()
	if g.scene.updateFunc != nil {
		return g.scene.updateFunc()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.1f  TPS: %0.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		if g.scene.resizeFunc != nil {
			g.scene.resizeFunc(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives the scene until the window closes or the
// update callback returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("jumplab: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(&game{scene: scene, showFPS: cfg.ShowFPS})
}
