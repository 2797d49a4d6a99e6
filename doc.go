// Package jumplab is a small retained-mode 2D scene graph for [Ebitengine],
// built for the jump lab demo: a squash-and-stretch player, anchored layout
// areas and a stateful button.
//
// # Quick start
//
// [Run] creates a window and game loop for you:
//
//	scene := jumplab.NewScene()
//	// ... add nodes ...
//	jumplab.Run(scene, jumplab.RunConfig{
//		Title: "Jump Lab", Width: 1280, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]. Children inherit their parent's transform and alpha.
// Create nodes with [NewContainer], [NewGraphics] or [NewText].
//
// Graphics nodes record vector paths on their [Graphics] field:
//
//	box := jumplab.NewGraphics("box")
//	box.Graphics.BeginFill(jumplab.RGB(0xFF0000), 1)
//	box.Graphics.DrawRect(-50, -100, 100, 100)
//	box.Graphics.EndFill()
//
// # Input
//
// Set [Node.HitShape] and [Node.Interactable] to receive pointer callbacks.
// A release over the node that was pressed fires pointer up and then click.
// A release elsewhere fires pointer up outside on the pressed node.
//
// # Tweens
//
// [TweenGroup] wraps [gween] tweens and writes into node fields or any
// float64 via [TweenValue].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package jumplab
