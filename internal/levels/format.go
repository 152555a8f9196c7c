package levels

import (
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// YAMLLevel is the on-disk structure of a level file.
// A level is authored either as legend rows or as raw tile indices.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     YAMLSize          `yaml:"size"`
	Rows     []string          `yaml:"rows,omitempty"`
	Tiles    [][]int           `yaml:"tiles,omitempty"`
	Legend   map[string]int    `yaml:"legend,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// DefaultLegend maps row characters to tile indices for the given IDs.
// '.' and ' ' are empty; '#', '=', '[' and ']' pick walls spread across
// the configured wall list.
func DefaultLegend(ids tilemap.IDs) map[rune]int {
	legend := map[rune]int{
		'.': tilemap.Empty,
		' ': tilemap.Empty,
		'P': ids.Player,
		'E': ids.Enemy,
		'C': ids.Coin,
		'B': ids.Bomb,
	}
	if n := len(ids.Walls); n > 0 {
		legend['#'] = ids.Walls[0]
		legend['='] = ids.Walls[n/4]
		legend['['] = ids.Walls[n/2]
		legend[']'] = ids.Walls[3*n/4]
	}
	return legend
}

// ParseYAML parses a level file into tile rows.
func ParseYAML(data []byte, ids tilemap.IDs) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("%w: missing id", ErrInvalidLevel)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Width:    yl.Size.W,
		Height:   yl.Size.H,
		Metadata: yl.Metadata,
	}
	if level.Name == "" {
		level.Name = level.ID
	}

	switch {
	case len(yl.Rows) > 0 && len(yl.Tiles) > 0:
		return Level{}, fmt.Errorf("%w: %s sets both rows and tiles", ErrInvalidLevel, yl.ID)
	case len(yl.Rows) > 0:
		legend, err := mergeLegend(DefaultLegend(ids), yl.Legend)
		if err != nil {
			return Level{}, fmt.Errorf("%s: %w", yl.ID, err)
		}
		tiles, err := decodeRows(yl.Rows, legend)
		if err != nil {
			return Level{}, fmt.Errorf("%s: %w", yl.ID, err)
		}
		level.Tiles = tiles
	case len(yl.Tiles) > 0:
		level.Tiles = yl.Tiles
	default:
		return Level{}, fmt.Errorf("%w: %s has no rows or tiles", ErrInvalidLevel, yl.ID)
	}

	// Size may be omitted and taken from the grid itself.
	if level.Height == 0 {
		level.Height = len(level.Tiles)
	}
	if level.Width == 0 && len(level.Tiles) > 0 {
		level.Width = len(level.Tiles[0])
	}

	return level, nil
}

func mergeLegend(base map[rune]int, overrides map[string]int) (map[rune]int, error) {
	for key, index := range overrides {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("%w: legend key %q must be a single character", ErrInvalidLevel, key)
		}
		r, _ := utf8.DecodeRuneInString(key)
		base[r] = index
	}
	return base, nil
}

func decodeRows(rows []string, legend map[rune]int) ([][]int, error) {
	tiles := make([][]int, len(rows))
	for y, row := range rows {
		tiles[y] = make([]int, 0, len(row))
		x := 0
		for _, r := range row {
			index, ok := legend[r]
			if !ok {
				return nil, fmt.Errorf("%w: unknown character %q at (%d, %d)", ErrInvalidLevel, r, x, y)
			}
			tiles[y] = append(tiles[y], index)
			x++
		}
	}
	return tiles, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
