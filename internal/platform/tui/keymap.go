package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// gameKeys binds key names, as reported by tea.KeyMsg.String, to actions.
var gameKeys = map[string]core.Action{
	"left":   core.ActionRotateLeft,
	"a":      core.ActionRotateLeft,
	"right":  core.ActionRotateRight,
	"d":      core.ActionRotateRight,
	"up":     core.ActionThrust,
	"w":      core.ActionThrust,
	" ":      core.ActionFire,
	"enter":  core.ActionConfirm,
	"p":      core.ActionPause,
	"esc":    core.ActionPause,
	"r":      core.ActionRestart,
	"b":      core.ActionBack,
	"q":      core.ActionQuit,
	"ctrl+c": core.ActionQuit,
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionJournal
	MenuActionBack
	MenuActionQuit
)

var menuKeys = map[string]MenuAction{
	"up":     MenuActionUp,
	"w":      MenuActionUp,
	"k":      MenuActionUp,
	"down":   MenuActionDown,
	"s":      MenuActionDown,
	"j":      MenuActionDown,
	"enter":  MenuActionSelect,
	" ":      MenuActionSelect,
	"tab":    MenuActionJournal,
	"b":      MenuActionBack,
	"esc":    MenuActionBack,
	"q":      MenuActionQuit,
	"ctrl+c": MenuActionQuit,
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey returns the game action bound to msg (ActionNone if unbound) and
// whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action = gameKeys[msg.String()]
	return action, action == core.ActionQuit
}

// MapKeyToMenuAction returns the menu action bound to msg.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return menuKeys[msg.String()]
}
