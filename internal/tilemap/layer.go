// Package tilemap holds the scene's tile grid: a decorative ground layer
// filled from a weighted palette and an authored level layer whose marker
// tiles are turned into entity placements.
package tilemap

import "math/rand"

// Empty marks a cell with no tile.
const Empty = -1

// Layer is a named width×height grid of tile indices.
type Layer struct {
	Name   string
	Width  int
	Height int
	tiles  []int
}

// NewLayer creates a layer with every cell Empty.
func NewLayer(name string, width, height int) *Layer {
	l := &Layer{
		Name:   name,
		Width:  max(width, 0),
		Height: max(height, 0),
	}
	l.tiles = make([]int, l.Width*l.Height)
	l.Fill(Empty, 0, 0, l.Width, l.Height)
	return l
}

func (l *Layer) inBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// At returns the tile index at (x, y). The bool is false for cells outside
// the layer; callers skip those.
func (l *Layer) At(x, y int) (int, bool) {
	if !l.inBounds(x, y) {
		return Empty, false
	}
	return l.tiles[y*l.Width+x], true
}

// Set stores a tile index. Out-of-bounds writes are ignored.
func (l *Layer) Set(x, y, index int) {
	if !l.inBounds(x, y) {
		return
	}
	l.tiles[y*l.Width+x] = index
}

// Fill sets every cell of the given region, clipped to the layer.
func (l *Layer) Fill(index, x, y, w, h int) {
	for ty := y; ty < y+h; ty++ {
		for tx := x; tx < x+w; tx++ {
			l.Set(tx, ty, index)
		}
	}
}

// Rows returns a copy of the layer as rows of tile indices.
func (l *Layer) Rows() [][]int {
	rows := make([][]int, l.Height)
	for y := range rows {
		rows[y] = append([]int(nil), l.tiles[y*l.Width:(y+1)*l.Width]...)
	}
	return rows
}

// Count returns how many cells hold the given index.
func (l *Layer) Count(index int) int {
	n := 0
	for _, t := range l.tiles {
		if t == index {
			n++
		}
	}
	return n
}

// Palette is a list of tile indices for random fills.
// Repeating an index raises its weight.
type Palette []int

// Pick returns a random entry, favouring earlier ones.
// An empty palette yields Empty.
func (p Palette) Pick(rng *rand.Rand) int {
	if len(p) == 0 {
		return Empty
	}
	return p[pickIndex(rng.Float64(), len(p))]
}

// pickIndex maps a uniform r in [0, 1) to floor(r² · (n − 0.5) + 0.5), so
// the first and last entries get half a slot each.
func pickIndex(r float64, n int) int {
	i := int(r*r*(float64(n)-0.5) + 0.5)
	return min(i, n-1)
}
