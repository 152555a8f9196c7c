package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Create(Animation{Key: "a", Frames: []string{"x"}, FrameRate: 1}))
	assert.Error(t, r.Create(Animation{Key: "a", Frames: []string{"y"}, FrameRate: 1}), "duplicate key")
	assert.Error(t, r.Create(Animation{Key: "b", FrameRate: 1}), "no frames")
	assert.Error(t, r.Create(Animation{Key: "c", Frames: []string{"z"}}), "no frame rate")
	assert.Error(t, r.Create(Animation{Frames: []string{"z"}, FrameRate: 1}), "empty key")

	assert.Equal(t, []string{"a"}, r.Keys())
}

func TestPlayerLoops(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Create(Animation{Key: "walk", Frames: []string{"1", "2", "3"}, FrameRate: 10, Repeat: RepeatForever}))

	p := NewPlayer(r)
	assert.Equal(t, "", p.Frame())
	require.True(t, p.Play("walk"))

	assert.Equal(t, "1", p.Frame())
	p.Update(100)
	assert.Equal(t, "2", p.Frame())
	p.Update(250)
	assert.Equal(t, "1", p.Frame(), "wrapped after the last frame")
	assert.False(t, p.Finished())
}

func TestPlayerStopsOnLastFrame(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Create(Animation{Key: "hit", Frames: []string{"a", "b"}, FrameRate: 10, Repeat: 1}))

	p := NewPlayer(r)
	p.Play("hit")
	p.Update(300)
	assert.False(t, p.Finished(), "one repeat left")
	p.Update(1000)
	assert.True(t, p.Finished())
	assert.Equal(t, "b", p.Frame())
}

func TestPlaySameKeyDoesNotRestart(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Create(Animation{Key: "walk", Frames: []string{"1", "2"}, FrameRate: 10, Repeat: RepeatForever}))

	p := NewPlayer(r)
	p.Play("walk")
	p.Update(100)
	p.Play("walk")
	assert.Equal(t, "2", p.Frame())

	assert.False(t, p.Play("missing"))
	assert.Equal(t, "walk", p.Key())
}

func TestDefaults(t *testing.T) {
	r := Defaults()
	for _, key := range []string{PlayerIdle, PlayerWalk, PlayerJump, PlayerHit, EnemyWalk, CoinSpin, BombFuse} {
		a, ok := r.Get(key)
		require.True(t, ok, key)
		for _, f := range a.Frames {
			assert.Equal(t, 2, len([]rune(f)), "%s frame %q is one tile wide", key, f)
		}
	}
}
