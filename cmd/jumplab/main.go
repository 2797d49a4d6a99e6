// Command jumplab opens the jump demo: a player on a platform, five motion
// modes and a mode button. Click anywhere to start. Space jumps, the arrow
// keys or the button switch modes, L locks the button.
package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/phanxgames/jumplab"
	"github.com/phanxgames/jumplab/config"
	"github.com/phanxgames/jumplab/sound"
)

func main() {
	configPath := flag.String("config", "jumplab.yaml", "path to the YAML settings file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	font, err := jumplab.DefaultFont(18)
	if err != nil {
		log.Fatalf("failed to load font: %v", err)
	}

	var sink sound.Sink = sound.Silent{}
	if cfg.Audio.Enabled {
		if s, err := sound.NewSpeakerSink(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			sink = s
		}
	}

	g := newGame(cfg, sink, font)

	var watcher *config.Watcher
	if w, err := config.NewWatcher(filepath.Dir(*configPath)); err != nil {
		log.Printf("config watch disabled: %v", err)
	} else {
		watcher = w
		defer watcher.Close()
	}

	g.scene.SetUpdateFunc(func() error {
		if watcher != nil {
			select {
			case changed, ok := <-watcher.Events:
				if ok {
					g.reload(*configPath, changed)
				}
			case err, ok := <-watcher.Errors:
				if ok {
					log.Printf("config watch: %v", err)
				}
			default:
			}
		}
		return g.tick()
	})
	g.scene.SetResizeFunc(g.resize)

	if err := jumplab.Run(g.scene, jumplab.RunConfig{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		ShowFPS:   cfg.Window.ShowFPS,
		Resizable: cfg.Window.Resizable,
	}); err != nil {
		log.Fatal(err)
	}
}
