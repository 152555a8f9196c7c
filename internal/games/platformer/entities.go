package platformer

import (
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/anim"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// Hitbox sizes in tiles
const (
	playerW = 0.8
	playerH = 0.9
	enemyW  = 0.8
	enemyH  = 0.8
	itemW   = 0.6
	itemH   = 0.6
)

// Player is the controllable character.
type Player struct {
	Body
	anim   *anim.Player
	facing float64 // -1 left, 1 right
	hit    bool
}

func newPlayer(w *world, at tilemap.Point, anims *anim.Registry) *Player {
	p := &Player{
		Body:   newBody(w, at, playerW, playerH, tagPlayer),
		anim:   anim.NewPlayer(anims),
		facing: 1,
	}
	p.anim.Play(anim.PlayerIdle)
	return p
}

// Update walks and jumps according to the input and moves the player over
// dt seconds.
func (p *Player) Update(dt float64, in core.InputFrame, phys config.PhysicsConfig) {
	p.VX = 0
	if in.Has(core.ActionLeft) {
		p.VX -= phys.MoveSpeed
	}
	if in.Has(core.ActionRight) {
		p.VX += phys.MoveSpeed
	}
	if p.VX != 0 {
		p.facing = p.VX / phys.MoveSpeed
	}

	if in.Has(core.ActionJump) && p.OnGround {
		p.VY = phys.JumpImpulse
		p.OnGround = false
	}

	p.Step(dt, phys.Gravity, phys.MaxFallSpeed)

	switch {
	case !p.OnGround:
		p.anim.Play(anim.PlayerJump)
	case p.VX != 0:
		p.anim.Play(anim.PlayerWalk)
	default:
		p.anim.Play(anim.PlayerIdle)
	}
}

// Hit marks the player as struck by an enemy.
func (p *Player) Hit() {
	p.hit = true
	p.VX, p.VY = 0, 0
	p.anim.Play(anim.PlayerHit)
}

// IsHit reports whether an enemy reached the player.
func (p *Player) IsHit() bool {
	return p.hit
}

// Enemy walks back and forth, turning at walls and falling off ledges.
type Enemy struct {
	Body
	dir  float64
	anim *anim.Player
}

func newEnemy(w *world, at tilemap.Point, dir float64, anims *anim.Registry) *Enemy {
	e := &Enemy{
		Body: newBody(w, at, enemyW, enemyH, tagEnemy),
		dir:  dir,
		anim: anim.NewPlayer(anims),
	}
	e.anim.Play(anim.EnemyWalk)
	return e
}

// Update moves the enemy over dt seconds at speed tiles per second.
func (e *Enemy) Update(dt, speed float64, phys config.PhysicsConfig) {
	e.VX = e.dir * speed
	e.Step(dt, phys.Gravity, phys.MaxFallSpeed)
	if e.BlockedX {
		e.dir = -e.dir
	}
}

// Item is a collectible placed from the level layer.
type Item struct {
	Kind tilemap.ItemKind
	At   tilemap.Point
	Box  core.Box
	anim *anim.Player
	obj  *resolv.Object
}

func newItem(w *world, p tilemap.ItemPlacement, anims *anim.Registry) *Item {
	it := &Item{
		Kind: p.Kind,
		At:   p.At,
		anim: anim.NewPlayer(anims),
		obj:  w.addInTile(p.At, itemW, itemH, tagItem),
	}
	it.Box = w.box(it.obj)
	it.obj.Data = it
	if p.Kind == tilemap.ItemBomb {
		it.anim.Play(anim.BombFuse)
	} else {
		it.anim.Play(anim.CoinSpin)
	}
	return it
}
