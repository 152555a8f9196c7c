package tilemap

import (
	"fmt"
	"math/rand"

	"github.com/kamstrup/intmap"
)

// IDs are the level-layer tile indices with special meaning.
type IDs struct {
	Player int
	Enemy  int
	Coin   int
	Bomb   int
	Walls  []int
}

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// ItemKind distinguishes collectible items.
type ItemKind int

const (
	ItemCoin ItemKind = iota
	ItemBomb
)

func (k ItemKind) String() string {
	switch k {
	case ItemCoin:
		return "coin"
	case ItemBomb:
		return "bomb"
	default:
		return fmt.Sprintf("item(%d)", int(k))
	}
}

// ItemPlacement is a collectible found in the level layer.
type ItemPlacement struct {
	Kind ItemKind
	At   Point
}

// Placements is the result of scanning the level layer.
type Placements struct {
	PlayerStart Point
	EnemyStart  Point
	HasPlayer   bool
	HasEnemy    bool
	Items       []ItemPlacement // In scan order
}

// Map is the scene's tile map.
type Map struct {
	Width    int
	Height   int
	TileSize int

	Ground *Layer
	Level  *Layer

	// wall tile index -> position in the configured wall list
	walls *intmap.Map[int, int]
}

// New creates a map with empty layers. walls lists the tile indices that
// collide, in the order reported by WallIndex.
func New(width, height, tileSize int, walls []int) *Map {
	m := &Map{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		Ground:   NewLayer("ground", width, height),
		Level:    NewLayer("level", width, height),
		walls:    intmap.New[int, int](len(walls)),
	}
	for i := len(walls) - 1; i >= 0; i-- {
		// Walk backwards so the first occurrence of a duplicate wins.
		m.walls.Put(walls[i], i)
	}
	return m
}

// GenerateGround fills the background layer: every cell is set to 0 and
// then replaced by a weighted pick from the palette.
func (m *Map) GenerateGround(rng *rand.Rand, palette Palette) {
	m.Ground.Fill(0, 0, 0, m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.Ground.Set(x, y, palette.Pick(rng))
		}
	}
}

// LoadLevel copies authored tile rows into the level layer. Cells the rows
// do not cover stay Empty; cells beyond the map are ignored.
func (m *Map) LoadLevel(rows [][]int) {
	m.Level.Fill(Empty, 0, 0, m.Width, m.Height)
	for y, row := range rows {
		for x, index := range row {
			m.Level.Set(x, y, index)
		}
	}
}

// Scan walks the level layer top to bottom, left to right and consumes the
// marker tiles: the player and enemy markers set the start tiles (the last
// one found wins), coin and bomb markers become item placements. Every
// consumed marker is cleared to Empty.
func (m *Map) Scan(ids IDs) Placements {
	var p Placements
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			index, ok := m.Level.At(x, y)
			if !ok {
				continue
			}

			switch index {
			case ids.Player:
				m.Level.Set(x, y, Empty)
				p.PlayerStart = Point{X: x, Y: y}
				p.HasPlayer = true
			case ids.Enemy:
				m.Level.Set(x, y, Empty)
				p.EnemyStart = Point{X: x, Y: y}
				p.HasEnemy = true
			case ids.Coin:
				m.Level.Set(x, y, Empty)
				p.Items = append(p.Items, ItemPlacement{Kind: ItemCoin, At: Point{X: x, Y: y}})
			case ids.Bomb:
				m.Level.Set(x, y, Empty)
				p.Items = append(p.Items, ItemPlacement{Kind: ItemBomb, At: Point{X: x, Y: y}})
			}
		}
	}
	return p
}

// HasMarkers reports whether any player, enemy, coin or bomb marker is
// still present in the level layer.
func (m *Map) HasMarkers(ids IDs) bool {
	for _, id := range []int{ids.Player, ids.Enemy, ids.Coin, ids.Bomb} {
		if m.Level.Count(id) > 0 {
			return true
		}
	}
	return false
}

// WallIndex returns the position of the level tile at (x, y) in the wall
// list, or -1 if the tile is not a wall or is outside the map.
func (m *Map) WallIndex(x, y int) int {
	index, ok := m.Level.At(x, y)
	if !ok || index == Empty {
		return -1
	}
	if i, found := m.walls.Get(index); found {
		return i
	}
	return -1
}

// IsSolid reports whether an entity may not enter tile (x, y).
// Everything outside the map is solid.
func (m *Map) IsSolid(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return true
	}
	return m.WallIndex(x, y) >= 0
}

// Offset returns the screen cell of the map's top-left corner when the map
// is centred on a screen of screenW x screenH cells, each tile taking
// cellW x cellH cells. The result is negative when the map is larger than
// the screen.
func (m *Map) Offset(screenW, screenH, cellW, cellH int) (int, int) {
	return (screenW - m.Width*cellW) / 2, (screenH - m.Height*cellH) / 2
}
