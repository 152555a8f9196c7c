package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// KeyMapper translates Bubble Tea key messages to scene actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "left", "a":
		return core.ActionLeft, false
	case "right", "d":
		return core.ActionRight, false
	case "up", "w":
		return core.ActionJump, false
	case "down", "s":
		return core.ActionDown, false
	case " ":
		return core.ActionStart, false
	case "esc":
		return core.ActionRestart, false
	case "p":
		return core.ActionPause, false
	case "b":
		return core.ActionBack, false
	case "enter":
		return core.ActionConfirm, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

// heldKeys turns terminal key presses into held walking input.
// Terminals send repeats while a key is down but never a release, so a
// press keeps its direction active for a fixed number of ticks; each
// repeat renews it.
type heldKeys struct {
	holdTicks int
	left      int
	right     int
}

func newHeldKeys(holdTicks int) heldKeys {
	if holdTicks < 1 {
		holdTicks = 1
	}
	return heldKeys{holdTicks: holdTicks}
}

// Press renews a walking direction. The opposite direction is released.
func (h *heldKeys) Press(a core.Action) {
	switch a {
	case core.ActionLeft:
		h.left, h.right = h.holdTicks, 0
	case core.ActionRight:
		h.right, h.left = h.holdTicks, 0
	}
}

// Apply adds the held directions to the frame and counts one tick down.
func (h *heldKeys) Apply(frame *core.InputFrame) {
	if h.left > 0 {
		frame.Set(core.ActionLeft)
		h.left--
	}
	if h.right > 0 {
		frame.Set(core.ActionRight)
		h.right--
	}
}

// Release drops every held direction.
func (h *heldKeys) Release() {
	h.left, h.right = 0, 0
}
