// Package levels loads authored level layouts from YAML files, either
// embedded in the binary or from a directory on disk.
package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

var (
	// ErrLevelNotFound is returned when no level has the requested ID.
	ErrLevelNotFound = errors.New("level not found")
	// ErrInvalidLevel is wrapped by every parse or validation failure.
	ErrInvalidLevel = errors.New("invalid level")
)

// Level is a parsed level definition.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Tiles    [][]int // Level layer, row-major, tilemap.Empty for no tile
	Metadata map[string]string
	FilePath string // Empty for built-in levels
}

// Builtin reports whether the level ships with the binary.
func (l Level) Builtin() bool {
	return l.FilePath == ""
}

// Validate checks that the level can be played with the given tile IDs:
// the grid matches the declared size, there is exactly one player start,
// at least one enemy start and at least one item.
func Validate(l Level, ids tilemap.IDs) error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: %s has size %dx%d", ErrInvalidLevel, l.ID, l.Width, l.Height)
	}
	if len(l.Tiles) != l.Height {
		return fmt.Errorf("%w: %s has %d rows, size says %d", ErrInvalidLevel, l.ID, len(l.Tiles), l.Height)
	}

	var players, enemies, items int
	for y, row := range l.Tiles {
		if len(row) != l.Width {
			return fmt.Errorf("%w: %s row %d has %d tiles, size says %d", ErrInvalidLevel, l.ID, y, len(row), l.Width)
		}
		for _, index := range row {
			switch index {
			case ids.Player:
				players++
			case ids.Enemy:
				enemies++
			case ids.Coin, ids.Bomb:
				items++
			}
		}
	}

	switch {
	case players != 1:
		return fmt.Errorf("%w: %s needs exactly one player start, found %d", ErrInvalidLevel, l.ID, players)
	case enemies == 0:
		return fmt.Errorf("%w: %s has no enemy start", ErrInvalidLevel, l.ID)
	case items == 0:
		return fmt.Errorf("%w: %s has no coins or bombs", ErrInvalidLevel, l.ID)
	}
	return nil
}
