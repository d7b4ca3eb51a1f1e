package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/slopewalk/internal/application/scene/playing"
	"github.com/younwookim/slopewalk/internal/application/system"
	"github.com/younwookim/slopewalk/internal/domain/collision"
	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
	"github.com/younwookim/slopewalk/internal/infrastructure/config"
)

func TestNewLoader_Embedded(t *testing.T) {
	loader, err := newLoader("", 0)
	require.NoError(t, err)

	for _, name := range []string{"demo", "hills"} {
		cfg, err := loader.LoadAll(name)
		require.NoError(t, err, name)
		_, err = system.LoadStage(cfg.Stage)
		assert.NoError(t, err, name)
	}
}

func newScene(cfg *config.CharacterConfig) *playing.Playing {
	st := &entity.Stage{Name: "flat", Spawn: geom.V(0, 1)}
	st.AddSegment(geom.V(-10, 0), geom.V(10, 0), 0)
	return playing.New(playing.Options{
		StageName: st.Name,
		Stage:     st,
		Character: cfg,
		Caster:    collision.NewWorld(st),
		ScreenW:   screenW,
		ScreenH:   screenH,
		Input:     func() system.InputState { return system.InputState{} },
	})
}

func TestHotReload_AppliesCharacterConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "character.yaml")
	require.NoError(t, os.WriteFile(path, []byte("movement:\n  moveScale: 8\n"), 0o644))

	loader, err := newLoader(dir, 0)
	require.NoError(t, err)
	w, err := config.NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	p := newScene(config.DefaultCharacterConfig())
	hook := hotReload(loader, w)

	require.NoError(t, os.WriteFile(path, []byte("movement:\n  moveScale: 20\n"), 0o644))

	assert.Eventually(t, func() bool {
		_ = hook(p)
		return p.Config().Movement.MoveScale == 20
	}, 2*time.Second, 20*time.Millisecond)
}

func TestHotReload_ClosedWatcher(t *testing.T) {
	w, err := config.NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	loader, err := newLoader("", 0)
	require.NoError(t, err)
	hook := hotReload(loader, w)

	assert.NoError(t, hook(newScene(config.DefaultCharacterConfig())))
}
