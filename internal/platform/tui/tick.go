// Package tui provides the Bubble Tea integration: the fixed-tick game loop,
// held-key emulation, menus, the round journal view and SSH hosting.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// maxTickRate bounds --fps; past it tea.Tick cannot keep up anyway.
const maxTickRate = 240

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// TickInterval is the wall-clock time between ticks at rate. Rates outside
// (0, maxTickRate] fall back to the default or the cap.
func TickInterval(rate int) time.Duration {
	switch {
	case rate <= 0:
		rate = core.DefaultConfig().TickRate
	case rate > maxTickRate:
		rate = maxTickRate
	}
	return time.Second / time.Duration(rate)
}

// tickCmd schedules the next tick. One tick is in flight at a time, so a
// slow frame delays the simulation instead of queueing ticks.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(TickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
