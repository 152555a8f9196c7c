// Package anim registers named frame animations and plays them back in
// simulation time. Frames are short glyph strings drawn left to right.
package anim

import (
	"fmt"
	"sort"
)

// RepeatForever makes an animation loop until another one is played.
const RepeatForever = -1

// Animation is a named sequence of frames.
type Animation struct {
	Key       string
	Frames    []string
	FrameRate float64 // Frames per second
	Repeat    int     // Extra loops after the first; RepeatForever loops endlessly
}

// Registry holds animations by key.
type Registry struct {
	anims map[string]Animation
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{anims: make(map[string]Animation)}
}

// Create registers an animation. Keys are unique and frames must not be empty.
func (r *Registry) Create(a Animation) error {
	if a.Key == "" {
		return fmt.Errorf("anim: empty key")
	}
	if len(a.Frames) == 0 {
		return fmt.Errorf("anim: %q has no frames", a.Key)
	}
	if a.FrameRate <= 0 {
		return fmt.Errorf("anim: %q has frame rate %.2f", a.Key, a.FrameRate)
	}
	if _, exists := r.anims[a.Key]; exists {
		return fmt.Errorf("anim: %q already registered", a.Key)
	}
	r.anims[a.Key] = a
	return nil
}

// Get returns the animation registered under key.
func (r *Registry) Get(key string) (Animation, bool) {
	a, ok := r.anims[key]
	return a, ok
}

// Keys returns all registered keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.anims))
	for k := range r.anims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Player plays one animation at a time from a registry.
type Player struct {
	registry *Registry
	current  Animation
	frame    int
	elapsed  float64 // ms spent on the current frame
	loops    int
	finished bool
}

// NewPlayer creates a player with nothing playing.
func NewPlayer(r *Registry) *Player {
	return &Player{registry: r}
}

// Play switches to the animation under key. Playing the animation that is
// already running does not restart it. Unknown keys are ignored and
// reported as false.
func (p *Player) Play(key string) bool {
	if p.current.Key == key && !p.finished {
		return true
	}
	a, ok := p.registry.Get(key)
	if !ok {
		return false
	}
	p.current = a
	p.frame = 0
	p.elapsed = 0
	p.loops = 0
	p.finished = false
	return true
}

// Update advances playback by dt milliseconds.
func (p *Player) Update(dt float64) {
	if p.current.Key == "" || p.finished {
		return
	}

	frameMs := 1000.0 / p.current.FrameRate
	p.elapsed += dt
	for p.elapsed >= frameMs {
		p.elapsed -= frameMs
		p.frame++
		if p.frame < len(p.current.Frames) {
			continue
		}
		if p.current.Repeat != RepeatForever && p.loops >= p.current.Repeat {
			p.frame = len(p.current.Frames) - 1
			p.finished = true
			p.elapsed = 0
			return
		}
		p.loops++
		p.frame = 0
	}
}

// Key returns the key of the current animation.
func (p *Player) Key() string {
	return p.current.Key
}

// Frame returns the current frame, or "" when nothing is playing.
func (p *Player) Frame() string {
	if len(p.current.Frames) == 0 {
		return ""
	}
	return p.current.Frames[p.frame]
}

// Finished reports whether a non-looping animation reached its last frame.
func (p *Player) Finished() bool {
	return p.finished
}
