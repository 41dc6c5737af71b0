package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-asteroids/internal/audio"
	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

// phaseReady is the phase name games report before a round is launched.
const phaseReady = "ready"

// GameModel is the Bubble Tea model that runs one game: it feeds the held
// input emulation into fixed ticks, forwards cues to the audio player and
// records finished rounds in the journal.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	player     audio.Player
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	hold       *HoldTracker
	gameState  core.GameState
	standalone bool // back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	roundSaved *bool // shared across value copies of the model
}

// NewGameModel creates a game model. store and player may be nil.
func NewGameModel(game registry.Game, store *storage.Store, player audio.Player, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if player == nil {
		player = audio.NopPlayer{}
	}

	saved := false
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		player:     player,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		hold:       NewHoldTracker(cfg.HoldTicks),
		roundSaved: &saved,
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// World coordinates do not depend on the terminal, so a resize only
		// changes the viewport.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			log.Warn("screenshot failed", "err", err)
		} else {
			log.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveAbandoned()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu from the title card, pause or game over
	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused || m.gameState.Phase == phaseReady || m.gameState.Phase == "" {
			m.saveAbandoned()
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, nil
	}

	m.hold.Observe(action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	frame := m.hold.Frame()

	if frame.Pressed(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		*m.roundSaved = false
		m.hold.Reset()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(frame)
	m.gameState = result.State

	for _, c := range result.Cues {
		m.player.Play(c)
	}

	if m.gameState.GameOver {
		m.saveRound()
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRound writes the current round to the journal once.
func (m GameModel) saveRound() {
	if *m.roundSaved {
		return
	}
	*m.roundSaved = true

	if m.store == nil {
		return
	}
	s, ok := m.game.(registry.Summarizer)
	if !ok {
		return
	}
	sum := s.Summary()
	if _, err := m.store.SaveRound(m.game.ID(), sum); err != nil {
		log.Warn("could not save round", "game", m.game.ID(), "err", err)
		return
	}
	log.Debug("round saved", "game", m.game.ID(), "outcome", sum.Outcome, "wave", sum.Wave)
}

// saveAbandoned records a round that was left before it ended.
func (m GameModel) saveAbandoned() {
	if m.gameState.Phase == "" || m.gameState.Phase == phaseReady {
		return
	}
	m.saveRound()
}

// saveScreenshot writes the current screen as plain text.
func (m GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := config.UserPath("screenshots")
	if dir == "" {
		return "", fmt.Errorf("tui: no home directory for screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: create screenshot dir: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the local terminal until the user quits or
// goes back.
func Run(game registry.Game, store *storage.Store, player audio.Player, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, player, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
