package main

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// app holds what every command needs: the scene config and the level list.
type app struct {
	cfg    config.PlatformerConfig
	levels []levels.Level
}

// loadApp reads the config, applies the difficulty preset and loads the
// built-in and directory levels.
func loadApp() (*app, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	config.ApplyPreset(&cfg, preset)

	all, err := levels.All(flagLevelsDir, cfg.Tiles.IDs(), logger)
	if err != nil {
		return nil, fmt.Errorf("loading levels: %w", err)
	}
	if len(all) == 0 {
		return nil, levels.ErrLevelNotFound
	}
	logger.Debug("levels loaded", "count", len(all), "dir", flagLevelsDir)

	return &app{cfg: cfg, levels: all}, nil
}

// level finds a level by ID. An empty ID selects the first level.
func (a *app) level(id string) (levels.Level, error) {
	lvl, err := levels.Resolve(a.levels, id)
	if err != nil {
		return levels.Level{}, fmt.Errorf("%w (run 'platformer levels' to see available levels)", err)
	}
	return lvl, nil
}

// newScene builds a fresh scene for a level. It satisfies tui.SceneFactory.
func (a *app) newScene(id string) (tui.Scene, error) {
	lvl, err := a.level(id)
	if err != nil {
		return nil, err
	}
	return platformer.New(a.cfg, lvl), nil
}

// levelInfos lists the levels for the menus.
func (a *app) levelInfos() []tui.LevelInfo {
	infos := make([]tui.LevelInfo, len(a.levels))
	for i, lvl := range a.levels {
		infos[i] = tui.LevelInfo{ID: lvl.ID, Title: lvl.Name}
	}
	return infos
}

// runtimeConfig creates the runtime config for a screen of the given size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

// openStore opens the scores database. The game still works without it,
// so a failure is only a warning and yields nil.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// storeAs converts the store to one of the front-end interfaces.
// A nil store becomes a nil interface rather than a typed nil.
func storeAs[T any](store *storage.Store) T {
	var zero T
	if store == nil {
		return zero
	}
	if v, ok := any(store).(T); ok {
		return v
	}
	return zero
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("closing scores database", "err", err)
	}
}
