package platformer

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// Collision tags
const (
	tagSolid  = "solid"
	tagPlayer = "player"
	tagEnemy  = "enemy"
	tagItem   = "item"
)

// world is the collision space of one scene. Objects live at whole pixel
// positions, one tile per space cell, with a frame of solid tiles around
// the map: tile (x, y) starts at pixel ((x+1)*ts, (y+1)*ts).
type world struct {
	space    *resolv.Space
	tileSize int
}

// newWorld adds one solid object per wall tile of the level layer and for
// every tile of the surrounding frame.
func newWorld(m *tilemap.Map) *world {
	ts := m.TileSize
	w := &world{
		space:    resolv.NewSpace((m.Width+2)*ts, (m.Height+2)*ts, ts, ts),
		tileSize: ts,
	}
	for y := -1; y <= m.Height; y++ {
		for x := -1; x <= m.Width; x++ {
			if m.IsSolid(x, y) {
				w.space.Add(resolv.NewObject(w.tileX(x), w.tileY(y), float64(ts), float64(ts), tagSolid))
			}
		}
	}
	return w
}

func (w *world) tileX(x int) float64 { return float64((x + 1) * w.tileSize) }
func (w *world) tileY(y int) float64 { return float64((y + 1) * w.tileSize) }

// pixels converts a length in tiles to whole pixels, at least one.
func (w *world) pixels(tiles float64) float64 {
	return math.Max(1, math.Round(tiles*float64(w.tileSize)))
}

// box returns the object's bounds in tiles.
func (w *world) box(obj *resolv.Object) core.Box {
	ts := float64(w.tileSize)
	return core.NewBox(obj.X/ts-1, obj.Y/ts-1, obj.W/ts, obj.H/ts)
}

// addOnTile creates a tagged object standing on the floor of tile at,
// centred horizontally.
func (w *world) addOnTile(at tilemap.Point, width, height float64, tag string) *resolv.Object {
	pw, ph := w.pixels(width), w.pixels(height)
	x := w.tileX(at.X) + math.Floor((float64(w.tileSize)-pw)/2)
	y := w.tileY(at.Y+1) - ph
	obj := resolv.NewObject(x, y, pw, ph, tag)
	w.space.Add(obj)
	return obj
}

// addInTile creates a tagged object centred in tile at.
func (w *world) addInTile(at tilemap.Point, width, height float64, tag string) *resolv.Object {
	pw, ph := w.pixels(width), w.pixels(height)
	x := w.tileX(at.X) + math.Floor((float64(w.tileSize)-pw)/2)
	y := w.tileY(at.Y) + math.Floor((float64(w.tileSize)-ph)/2)
	obj := resolv.NewObject(x, y, pw, ph, tag)
	w.space.Add(obj)
	return obj
}

// move shifts obj by whole pixels along one axis, at most a tile at a time
// so no wall is skipped. It stops in contact with the first solid object
// and reports whether one was hit.
func (w *world) move(obj *resolv.Object, dx, dy float64) bool {
	limit := float64(w.tileSize)
	for dx != 0 || dy != 0 {
		sx := core.ClampF(dx, -limit, limit)
		sy := core.ClampF(dy, -limit, limit)

		if c := obj.Check(sx, sy, tagSolid); c != nil {
			if cx, cy, hit := contact(c, sx, sy); hit {
				obj.X += cx
				obj.Y += cy
				obj.Update()
				return true
			}
		}

		obj.X += sx
		obj.Y += sy
		obj.Update()
		dx -= sx
		dy -= sy
	}
	return false
}

// contact returns the shortest move towards (dx, dy) that ends touching
// one of the collided objects. Objects behind the mover are ignored.
func contact(c *resolv.Collision, dx, dy float64) (float64, float64, bool) {
	cx, cy := dx, dy
	hit := false
	for _, o := range c.Objects {
		v := c.ContactWithObject(o)
		switch {
		case dx > 0 && v.X() >= 0 && v.X() < cx,
			dx < 0 && v.X() <= 0 && v.X() > cx:
			cx, hit = v.X(), true
		case dy > 0 && v.Y() >= 0 && v.Y() < cy,
			dy < 0 && v.Y() <= 0 && v.Y() > cy:
			cy, hit = v.Y(), true
		}
	}
	return cx, cy, hit
}

// touching returns the objects with tag whose bounds overlap obj by a
// non-zero area. The space narrows the search to obj's cells.
func (w *world) touching(obj *resolv.Object, tag string) []*resolv.Object {
	c := obj.Check(0, 0, tag)
	if c == nil {
		return nil
	}
	var hits []*resolv.Object
	for _, o := range c.Objects {
		if pixelRect(obj).Intersects(pixelRect(o)) {
			hits = append(hits, o)
		}
	}
	return hits
}

func pixelRect(o *resolv.Object) core.Rect {
	return core.NewRect(int(o.X), int(o.Y), int(o.W), int(o.H))
}

// Body is an axis-aligned hitbox moving through the collision space.
// Velocities are in tiles per second.
type Body struct {
	Box      core.Box // Bounds in tiles, updated after every step
	VX, VY   float64
	OnGround bool // Standing on a solid tile after the last step
	BlockedX bool // The last horizontal move was stopped by a wall

	obj        *resolv.Object
	world      *world
	remX, remY float64 // Sub-pixel movement carried to the next step
}

// newBody places a w x h body on the floor of tile at, centred horizontally.
func newBody(wd *world, at tilemap.Point, w, h float64, tag string) Body {
	b := Body{obj: wd.addOnTile(at, w, h, tag), world: wd}
	b.Box = wd.box(b.obj)
	return b
}

// Step applies gravity and moves the body by its velocity over dt seconds,
// first along x and then along y, stopping at solid tiles.
func (b *Body) Step(dt, gravity, maxFall float64) {
	b.moveX(b.VX * dt)
	b.VY = math.Min(b.VY+gravity*dt, maxFall)
	b.moveY(b.VY * dt)
	b.Box = b.world.box(b.obj)
}

func (b *Body) moveX(dx float64) {
	b.BlockedX = false
	px := b.remX + dx*float64(b.world.tileSize)
	steps := math.Round(px)
	b.remX = px - steps
	if steps != 0 && b.world.move(b.obj, steps, 0) {
		b.BlockedX = true
		b.remX = 0
	}
}

func (b *Body) moveY(dy float64) {
	b.OnGround = false
	py := b.remY + dy*float64(b.world.tileSize)
	steps := math.Round(py)
	b.remY = py - steps
	if steps != 0 && b.world.move(b.obj, 0, steps) {
		b.OnGround = steps > 0
		b.VY = 0
		b.remY = 0
		return
	}
	if b.VY >= 0 {
		b.OnGround = b.obj.Check(0, 1, tagSolid) != nil
	}
}

// remove takes the body out of the collision space.
func (b *Body) remove() {
	b.world.space.Remove(b.obj)
}
