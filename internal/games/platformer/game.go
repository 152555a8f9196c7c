// Package platformer implements the single-scene tile platformer: a level
// with a player, periodically spawned enemies, coins and bombs.
//
// Collecting every item ends the run with a win; touching an enemy ends it
// with a loss. Coins add points, bombs destroy every enemy on screen.
package platformer

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/anim"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// Game is one scene instance. It is not safe for concurrent use; every
// front-end session owns its own Game.
type Game struct {
	cfg        config.PlatformerConfig
	level      levels.Level
	ids        tilemap.IDs
	anims      *anim.Registry
	difficulty *config.DifficultyManager

	runtime core.RuntimeConfig
	rng     *rand.Rand

	tilemap     *tilemap.Map
	world       *world
	playerStart tilemap.Point
	enemyStart  tilemap.Point
	player      *Player
	enemies     []*Enemy
	items       []*Item

	score        int
	started      bool
	gameOver     bool
	won          bool
	paused       bool
	spawnCounter int
	tickCount    int
}

// New creates a scene for the level. Reset must be called before Step.
func New(cfg config.PlatformerConfig, level levels.Level) *Game {
	return &Game{
		cfg:        cfg,
		level:      level,
		ids:        cfg.Tiles.IDs(),
		anims:      anim.Defaults(),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// ID returns the level ID.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level name.
func (g *Game) Title() string {
	return g.level.Name
}

// Reset rebuilds the scene from the level with a fresh background.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.restart(runtime.Seed)
}

func (g *Game) restart(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))

	g.score = 0
	g.started = false
	g.gameOver = false
	g.won = false
	g.paused = false
	g.spawnCounter = 0
	g.tickCount = 0

	g.initMap()
	g.player = newPlayer(g.world, g.playerStart, g.anims)
}

// initMap builds both layers and the collision space of the walls, then
// consumes the level markers: start tiles for the player and enemies, and
// the items.
func (g *Game) initMap() {
	width, height := g.level.Width, g.level.Height
	if width <= 0 || height <= 0 {
		width, height = g.cfg.Map.Width, g.cfg.Map.Height
	}

	g.tilemap = tilemap.New(width, height, g.cfg.Map.TileSize, g.ids.Walls)
	g.tilemap.GenerateGround(g.rng, tilemap.Palette(g.cfg.Tiles.Palette))
	g.tilemap.LoadLevel(g.level.Tiles)

	placements := g.tilemap.Scan(g.ids)
	g.world = newWorld(g.tilemap)
	g.playerStart = placements.PlayerStart
	g.enemyStart = placements.EnemyStart

	g.enemies = g.enemies[:0]
	g.items = g.items[:0]
	for _, p := range placements.Items {
		g.items = append(g.items, newItem(g.world, p, g.anims))
	}
}

// Step advances the scene by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.animate()

	if !g.started {
		switch {
		case g.gameOver && in.Has(core.ActionRestart):
			g.restart(g.rng.Int63())
		case !g.gameOver && in.Has(core.ActionStart):
			g.started = true
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.TickMillis() / 1000
	g.tickCount++
	g.player.Update(dt, in, g.cfg.Physics)
	g.addEnemy()

	speed := g.difficulty.EnemySpeed(g.cfg.Physics.EnemySpeed, g.score, g.tickCount)
	for _, e := range g.enemies {
		e.Update(dt, speed, g.cfg.Physics)
	}

	g.checkOverlaps()
	return core.StepResult{State: g.State()}
}

// animate advances every animation by one tick.
func (g *Game) animate() {
	if g.paused {
		return
	}
	dt := g.runtime.TickMillis()
	g.player.anim.Update(dt)
	for _, e := range g.enemies {
		e.anim.Update(dt)
	}
	for _, it := range g.items {
		it.anim.Update(dt)
	}
}

// addEnemy counts down and spawns an enemy at the enemy start when the
// counter runs out, so the first enemy appears on the first live tick.
func (g *Game) addEnemy() {
	if g.spawnCounter > 0 {
		g.spawnCounter--
		return
	}
	g.spawnCounter = g.difficulty.SpawnInterval(g.cfg.Spawner.EnemyRate, g.score, g.tickCount)

	if g.cfg.Spawner.MaxEnemies > 0 && len(g.enemies) >= g.cfg.Spawner.MaxEnemies {
		return
	}
	dir := 1.0
	if g.rng.Intn(2) == 0 {
		dir = -1
	}
	g.enemies = append(g.enemies, newEnemy(g.world, g.enemyStart, dir, g.anims))
}

// checkOverlaps resolves player contacts: enemies first, then items in
// level order.
func (g *Game) checkOverlaps() {
	if len(g.world.touching(g.player.obj, tagEnemy)) > 0 {
		g.hitPlayer()
		return
	}

	touched := make(map[*Item]bool)
	for _, o := range g.world.touching(g.player.obj, tagItem) {
		if it, ok := o.Data.(*Item); ok {
			touched[it] = true
		}
	}
	if len(touched) == 0 {
		return
	}

	remaining := g.items[:0]
	collected := 0
	for _, it := range g.items {
		if touched[it] {
			g.world.space.Remove(it.obj)
			g.collectItem(it)
			collected++
			continue
		}
		remaining = append(remaining, it)
	}
	g.items = remaining

	if collected > 0 && len(g.items) == 0 {
		g.won = true
		g.endGame()
	}
}

func (g *Game) collectItem(it *Item) {
	switch it.Kind {
	case tilemap.ItemCoin:
		g.updateScore(g.cfg.Scoring.Coin)
	case tilemap.ItemBomb:
		g.destroyEnemies()
	}
}

// destroyEnemies removes every enemy, scoring each one.
func (g *Game) destroyEnemies() {
	g.updateScore(g.cfg.Scoring.EnemyDestroyed * len(g.enemies))
	for _, e := range g.enemies {
		e.remove()
	}
	g.enemies = g.enemies[:0]
}

func (g *Game) hitPlayer() {
	g.player.Hit()
	g.endGame()
}

func (g *Game) updateScore(points int) {
	if points > 0 {
		g.score += points
	}
}

func (g *Game) endGame() {
	g.started = false
	g.gameOver = true
}

// State returns the current scene state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Started:  g.started,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// MapOffset locates the map on the screen.
type MapOffset struct {
	X, Y     int // Screen cell of the centre of the top-left tile
	Width    int // Map width in tiles
	Height   int // Map height in tiles
	TileSize int // Tile edge in pixels
}

// GetMapOffset returns where the map is drawn on the runtime screen.
func (g *Game) GetMapOffset() MapOffset {
	cw, ch := g.cfg.Map.CellW, g.cfg.Map.CellH
	x, y := g.tilemap.Offset(g.runtime.ScreenW, g.runtime.ScreenH, cw, ch)
	return MapOffset{
		X:        x + cw/2,
		Y:        y + ch/2,
		Width:    g.tilemap.Width,
		Height:   g.tilemap.Height,
		TileSize: g.tilemap.TileSize,
	}
}

// GetTileAt returns the wall-list index of the level tile under the world
// position (x, y) in tiles, or -1 when there is no wall there.
func (g *Game) GetTileAt(x, y float64) int {
	return g.tilemap.WallIndex(int(math.Floor(x)), int(math.Floor(y)))
}

// Enemies returns the number of live enemies.
func (g *Game) Enemies() int {
	return len(g.enemies)
}

// ItemsLeft returns the number of items still to collect.
func (g *Game) ItemsLeft() int {
	return len(g.items)
}
