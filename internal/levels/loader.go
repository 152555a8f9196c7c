package levels

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Loader loads levels from a directory tree.
type Loader struct {
	Root   string
	IDs    tilemap.IDs
	Logger *log.Logger // Receives skipped files; nil discards
}

// NewLoader creates a new level loader.
func NewLoader(root string, ids tilemap.IDs, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{Root: root, IDs: ids, Logger: logger}
}

// LoadAll recursively scans and loads all valid level files.
// Invalid files are logged and skipped. Levels are sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			l.Logger.Warn("skipping level file", "path", path, "error", err)
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortByID(levels)
	return levels, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	level, err := ParseYAML(data, l.IDs)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if err := Validate(level, l.IDs); err != nil {
		return Level{}, err
	}
	level.FilePath = path
	return level, nil
}

// Builtin parses the levels embedded in the binary, sorted by ID.
func Builtin(ids tilemap.IDs) ([]Level, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("reading builtin levels: %w", err)
	}

	levels := make([]Level, 0, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading builtin level %s: %w", e.Name(), err)
		}
		level, err := ParseYAML(data, ids)
		if err != nil {
			return nil, fmt.Errorf("builtin level %s: %w", e.Name(), err)
		}
		if err := Validate(level, ids); err != nil {
			return nil, fmt.Errorf("builtin level %s: %w", e.Name(), err)
		}
		levels = append(levels, level)
	}

	sortByID(levels)
	return levels, nil
}

// All returns the built-in levels followed by the levels found in dir.
// A directory level with the same ID as a built-in one replaces it.
// An empty dir means built-ins only; a missing dir is not an error.
func All(dir string, ids tilemap.IDs, logger *log.Logger) ([]Level, error) {
	builtin, err := Builtin(ids)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return builtin, nil
	}

	custom, err := NewLoader(dir, ids, logger).LoadAll()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return builtin, nil
		}
		return nil, err
	}

	byID := make(map[string]Level, len(builtin)+len(custom))
	for _, lvl := range builtin {
		byID[lvl.ID] = lvl
	}
	for _, lvl := range custom {
		byID[lvl.ID] = lvl
	}

	merged := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		merged = append(merged, lvl)
	}
	sortByID(merged)
	return merged, nil
}

// Resolve finds a level by ID in a list returned by All. An empty ID
// selects the first level.
func Resolve(all []Level, id string) (Level, error) {
	if id == "" {
		if len(all) == 0 {
			return Level{}, ErrLevelNotFound
		}
		return all[0], nil
	}
	for _, lvl := range all {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

func sortByID(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}

func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
