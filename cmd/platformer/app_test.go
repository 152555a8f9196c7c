package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

func TestStoreAsKeepsNilStoreNil(t *testing.T) {
	var store *storage.Store

	if saver := storeAs[tui.ScoreSaver](store); saver != nil {
		t.Errorf("storeAs(nil) = %v, expected a nil interface", saver)
	}
}

func TestStoreAsWrapsOpenStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	if storeAs[tui.ScoreReader](store) == nil {
		t.Error("storeAs() should return the store as a ScoreReader")
	}
}

func TestLoadAppFindsBuiltinLevels(t *testing.T) {
	flagDifficulty, flagConfig, flagLevelsDir = "", "", ""

	a, err := loadApp()
	if err != nil {
		t.Fatalf("loadApp() error: %v", err)
	}

	first, err := a.level("")
	if err != nil || first.ID != a.levels[0].ID {
		t.Errorf("level(\"\") = %q, %v; expected the first level", first.ID, err)
	}

	scene, err := a.newScene("meadow")
	if err != nil {
		t.Fatalf("newScene(meadow) error: %v", err)
	}
	if scene.ID() != "meadow" {
		t.Errorf("scene ID = %q, expected meadow", scene.ID())
	}

	if _, err := a.level("nowhere"); !errors.Is(err, levels.ErrLevelNotFound) {
		t.Errorf("level(nowhere) error = %v, expected ErrLevelNotFound", err)
	}

	if got := len(a.levelInfos()); got != len(a.levels) {
		t.Errorf("levelInfos() has %d entries, expected %d", got, len(a.levels))
	}
}

func TestLoadAppRejectsUnknownDifficulty(t *testing.T) {
	flagDifficulty, flagConfig, flagLevelsDir = "brutal", "", ""
	defer func() { flagDifficulty = "" }()

	if _, err := loadApp(); err == nil {
		t.Error("loadApp() should fail on an unknown difficulty")
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"localhost:2222": "2222",
		"[::1]:22":       "22",
		"nonsense":       "nonsense",
	}
	for addr, expected := range tests {
		if got := portOf(addr); got != expected {
			t.Errorf("portOf(%q) = %q, expected %q", addr, got, expected)
		}
	}
}
