package main

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/jumplab"
	"github.com/phanxgames/jumplab/button"
	"github.com/phanxgames/jumplab/config"
	"github.com/phanxgames/jumplab/keyboard"
	"github.com/phanxgames/jumplab/layout"
	"github.com/phanxgames/jumplab/player"
	"github.com/phanxgames/jumplab/sound"
	"github.com/phanxgames/jumplab/timeline"
	"github.com/phanxgames/jumplab/update"
)

var (
	backgroundColor = jumplab.RGB(0x1E1E2E)
	flashColor      = jumplab.ColorWhite
	platformFill    = jumplab.RGB(0x888888)
	platformLine    = jumplab.RGB(0x333333)
	buttonFill      = jumplab.RGB(0x3A3A5A)
	buttonLine      = jumplab.RGB(0xDDDDDD)
)

const (
	flashDuration  = 0.3
	revealDuration = 0.4

	keyJump     = ebiten.KeySpace
	keyModeNext = ebiten.KeyArrowRight
	keyModePrev = ebiten.KeyArrowLeft
	keyLock     = ebiten.KeyL
)

// game owns the scene and the update service. Nothing moves until the first
// pointer release, which plays the reveal and then starts the player.
type game struct {
	cfg     config.Config
	scene   *jumplab.Scene
	updates *update.Service
	keys    *keyboard.Controller
	pops    *sound.Pool

	root       *layout.RootArea
	background *layout.FilledArea
	world      *layout.Area
	platform   *layout.FilledArea
	player     *player.Player
	modeArea   *layout.FilledArea
	modeLabel  *layout.Text
	modeButton *button.Button

	reveal  *timeline.Timeline
	flash   *timeline.Timeline
	flashT  float64
	started bool
}

func newGame(cfg config.Config, sink sound.Sink, font *jumplab.Font) *game {
	g := &game{
		cfg:     cfg,
		scene:   jumplab.NewScene(),
		updates: update.NewService(),
		pops:    sound.NewPool(sink, nil, sound.PopSounds(cfg.Audio.Volume)...),
	}
	g.scene.ClearColor = backgroundColor
	g.scene.SetDebugMode(cfg.Debug)

	g.keys = keyboard.New(keyJump, keyModeNext, keyModePrev, keyLock)

	env := layout.NewEnv(g.updates)
	g.root = layout.NewRootArea(env, g.scene.Root())
	g.root.Resize(float64(cfg.Window.Width), float64(cfg.Window.Height))

	g.background = layout.NewFilledArea(g.root, "background")
	g.background.RectTransform().SetAnchors(0, 0, 1, 1)
	g.background.RectTransform().SetSizeDelta(0, 0)
	g.background.SetFillStyle(layout.NewFillStyle(backgroundColor, 1))
	g.background.SetLineStyle(layout.NewLineStyle(0, backgroundColor, 0))

	g.world = layout.NewArea(g.root, "world")
	g.world.RectTransform().SetSizeDelta(0, 0)

	g.platform = layout.NewFilledArea(g.world, "platform")
	prt := g.platform.RectTransform()
	prt.SetSizeDelta(600, 40)
	prt.SetPivot(0.5, 0)
	prt.SetAnchoredPosition(0, -50)
	g.platform.SetFillStyle(layout.NewFillStyle(platformFill, 1))
	g.platform.SetLineStyle(layout.NewLineStyle(4, platformLine, 1))

	g.player = player.New(g.keys, cfg.Player)
	g.player.JumpKey = keyJump
	g.player.SetPosition(-150, -50)
	g.player.SetMode(player.ModeTeleport)
	g.player.AttachTo(g.world.Container())

	g.modeArea = layout.NewFilledArea(g.root, "mode")
	mrt := g.modeArea.RectTransform()
	mrt.SetAnchors(1, 0, 1, 0)
	mrt.SetPivot(1, 0)
	mrt.SetSizeDelta(200, 40)
	mrt.SetAnchoredPosition(-25, 25)
	g.modeArea.SetFillStyle(layout.NewFillStyle(buttonFill, 1))
	g.modeArea.SetLineStyle(layout.NewLineStyle(2, buttonLine, 1))

	g.modeLabel = layout.NewText(g.modeArea, "mode.text", g.player.Mode().String(), font)
	g.modeLabel.RectTransform().SetAnchors(0, 0, 1, 1)
	g.modeLabel.RectTransform().SetSizeDelta(0, 0)

	g.modeButton = button.NewFilledAreaButton(g.modeArea, cfg.Button.TransitionDuration)
	g.modeButton.OnClick = func() { g.setMode(g.player.Mode().Next()) }

	pop := func() { g.pops.Play() }
	g.reveal = timeline.New(g.updates).
		Call(pop).
		FromScale(g.platform.Container(), 0, revealDuration, ease.OutBack).OnComplete(pop).
		FromScale(g.player.Node(), 0, revealDuration, ease.OutBack).OnComplete(pop)
	g.reveal.Finished().Then(func(err error) {
		if err == nil {
			g.begin()
		}
	})

	var first jumplab.CallbackHandle
	first = g.scene.OnPointerUp(func(jumplab.PointerContext) {
		first.Remove()
		g.reveal.Play()
	})
	return g
}

// begin hands the player and the keyboard to the update service. The key
// handler and the controller go last so edges stay visible to the player.
func (g *game) begin() {
	if g.started {
		return
	}
	g.started = true
	g.player.Start(g.updates)
	g.updates.Add(g)
	g.updates.Add(g.keys)
}

// Update implements update.Updatable for the demo keys.
func (g *game) Update(float64) {
	switch {
	case g.keys.IsJustDown(keyModeNext):
		g.setMode(g.player.Mode().Next())
	case g.keys.IsJustDown(keyModePrev):
		g.setMode(g.player.Mode().Prev())
	}
	if g.keys.IsJustDown(keyLock) {
		g.modeButton.SetInteractable(!g.modeButton.Interactable())
	}
}

func (g *game) setMode(m player.Mode) {
	g.player.SetMode(m)
	g.modeLabel.SetText(m.String())
	g.flashBackground()
}

// flashBackground fades the background from white back to its color. A new
// flash replaces one still running.
func (g *game) flashBackground() {
	if g.flash != nil {
		g.flash.Pause()
	}
	fill := g.background.FillStyle()
	g.flashT = 1
	g.flash = timeline.New(g.updates).
		From(&g.flashT, 0, flashDuration, ease.OutQuad).
		OnUpdate(func() { fill.SetColor(flashColor.Lerp(backgroundColor, g.flashT)) })
	fill.SetColor(flashColor)
	g.flash.Play()
}

// tick runs once per frame after pointer input.
func (g *game) tick() error {
	g.keys.Poll(ebiten.IsKeyPressed)
	g.updates.Update(1 / float64(ebiten.TPS()))
	return nil
}

func (g *game) resize(w, h int) {
	g.root.Resize(float64(w), float64(h))
}

// reload applies a changed config file. Only the player tuning and the debug
// flag are live. A missing file is skipped so a delete or rename keeps the
// live tuning.
func (g *game) reload(path, changed string) {
	if filepath.Base(changed) != filepath.Base(path) {
		return
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("reload %s: %v", path, err)
		return
	}
	g.cfg.Player = cfg.Player
	g.cfg.Debug = cfg.Debug
	g.player.SetTuning(cfg.Player)
	g.scene.SetDebugMode(cfg.Debug)
	log.Printf("reloaded %s", path)
}
