package anim

// Keys of the built-in animations.
const (
	PlayerIdle = "player-idle"
	PlayerWalk = "player-walk"
	PlayerJump = "player-jump"
	PlayerHit  = "player-hit"
	EnemyWalk  = "enemy-walk"
	CoinSpin   = "coin-spin"
	BombFuse   = "bomb-fuse"
)

// Defaults returns a registry with the player, enemy and item animations.
// Frames are two cells wide to match one terminal tile.
func Defaults() *Registry {
	r := NewRegistry()
	for _, a := range []Animation{
		{Key: PlayerIdle, Frames: []string{"☺ ", " ☺"}, FrameRate: 2, Repeat: RepeatForever},
		{Key: PlayerWalk, Frames: []string{"☺╱", "☺╲"}, FrameRate: 8, Repeat: RepeatForever},
		{Key: PlayerJump, Frames: []string{"☻^"}, FrameRate: 1, Repeat: RepeatForever},
		{Key: PlayerHit, Frames: []string{"✖✖", "  ", "✖✖"}, FrameRate: 6, Repeat: 0},
		{Key: EnemyWalk, Frames: []string{"ᴥ<", "ᴥ>"}, FrameRate: 4, Repeat: RepeatForever},
		{Key: CoinSpin, Frames: []string{"()", "||", "()"}, FrameRate: 3, Repeat: RepeatForever},
		{Key: BombFuse, Frames: []string{"ó*", "ó."}, FrameRate: 4, Repeat: RepeatForever},
	} {
		// Keys above are unique and frames non-empty.
		_ = r.Create(a)
	}
	return r
}
