// Command playground opens a window with one character on a stage.
//
// Keys: A/D or arrows move, W/Space jump, P pause, N single step, R reset,
// L next layer, F9 save recording.
package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/slopewalk/internal/application/game"
	"github.com/younwookim/slopewalk/internal/application/replay"
	"github.com/younwookim/slopewalk/internal/application/scene"
	"github.com/younwookim/slopewalk/internal/application/scene/playing"
	"github.com/younwookim/slopewalk/internal/application/system"
	"github.com/younwookim/slopewalk/internal/domain/collision"
	"github.com/younwookim/slopewalk/internal/infrastructure/chipmunk"
	"github.com/younwookim/slopewalk/internal/infrastructure/config"
	"github.com/younwookim/slopewalk/internal/infrastructure/tiled"
)

//go:embed configs
var configFS embed.FS

const (
	screenW = 480
	screenH = 270
	scale   = 2
)

func newLoader(dir string, ppu float64) (*config.Loader, error) {
	var loader *config.Loader
	if dir == "" {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			return nil, fmt.Errorf("failed to get config subfs: %w", err)
		}
		loader = config.NewFSLoader(fsys, "configs")
	} else {
		loader = config.NewLoader(dir)
	}
	tiled.NewDecoder(ppu).Register(loader)
	return loader, nil
}

// hotReload reloads character tuning when a watched file changes
func hotReload(loader *config.Loader, w *config.Watcher) func(scene.Scene) error {
	return func(current scene.Scene) error {
		for {
			select {
			case path, ok := <-w.Events:
				if !ok {
					return nil
				}
				if !strings.HasPrefix(filepath.Base(path), "character.") {
					log.Printf("Changed %s; stages load at startup only", path)
					continue
				}
				cfg, err := loader.LoadCharacter()
				if err != nil {
					log.Printf("Reload failed: %v", err)
					continue
				}
				if p, ok := current.(*playing.Playing); ok {
					p.ApplyConfig(cfg)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				log.Printf("Watcher error: %v", err)
			default:
				return nil
			}
		}
	}
}

func main() {
	configDir := flag.String("config", "", "Config directory to load and watch (default: embedded configs)")
	stageName := flag.String("stage", "demo", "Stage name under stages/")
	replayFlag := flag.String("replay", "", "Replay file to play back")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	useChipmunk := flag.Bool("chipmunk", false, "Cast against a chipmunk space instead of the built-in world")
	ppu := flag.Float64("ppu", 0, "Pixels per world unit for .tmx stages (default: tile width)")
	zoom := flag.Float64("zoom", 16, "Screen pixels per world unit")
	flag.Parse()

	loader, err := newLoader(*configDir, *ppu)
	if err != nil {
		log.Fatal(err)
	}

	var data *replay.ReplayData
	if *replayFlag != "" {
		data, err = replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		if data.Stage != "" {
			*stageName = data.Stage
		}
	}

	cfg, err := loader.LoadAll(*stageName)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	stage, err := system.LoadStage(cfg.Stage)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	var caster system.Caster = collision.NewWorld(stage)
	if *useChipmunk {
		caster = chipmunk.NewCaster(stage)
	}

	scn := playing.New(playing.Options{
		StageName:     *stageName,
		Stage:         stage,
		Character:     cfg.Character,
		Caster:        caster,
		Replay:        data,
		RecordPath:    *recordFlag,
		ScreenW:       screenW,
		ScreenH:       screenH,
		PixelsPerUnit: *zoom,
	})
	g := game.New(scn, screenW, screenH, cfg.Character.Physics.Framerate)
	defer g.Close()

	if *configDir != "" {
		w, err := config.NewWatcher(*configDir, filepath.Join(*configDir, "stages"))
		if err != nil {
			log.Fatalf("Failed to watch %s: %v", *configDir, err)
		}
		defer w.Close()
		g.OnFrame(hotReload(loader, w))
		log.Printf("Watching %s for changes", *configDir)
	}

	ebiten.SetWindowSize(screenW*scale, screenH*scale)
	ebiten.SetWindowTitle("slopewalk playground - " + *stageName)
	ebiten.SetTPS(cfg.Character.Physics.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
