// Package tui implements the terminal front end: a Bubble Tea program whose
// screens (menu, map, inventory, shop, battle, help, end) mirror the engine's
// cooperative state machine. Exactly one screen is active; screens hand
// control to each other through the root model.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nathoo/ringquest/config"
	"github.com/nathoo/ringquest/engine"
	"github.com/nathoo/ringquest/types"
)

// screen is the contract each game screen implements. handleKey may mutate
// the model and switch the active screen.
type screen interface {
	handleKey(m *Model, msg tea.KeyMsg) tea.Cmd
	view(m *Model) string
}

// Model is the root Bubble Tea model.
type Model struct {
	defs *types.Defs
	cfg  *config.Config
	log  *zap.Logger
	seed int64

	session *engine.Session
	screen  screen

	width  int
	height int
	ready  bool

	toast   string
	toastID int

	quitting bool
}

type toastExpireMsg struct{ id int }

// battleTickMsg paces the battle: monster turns and the end-of-battle hold.
type battleTickMsg struct{}

// New creates the root model, opening on the main menu.
func New(defs *types.Defs, cfg *config.Config, seed int64, log *zap.Logger) Model {
	m := Model{defs: defs, cfg: cfg, log: log, seed: seed}
	m.screen = newMenuScreen(&m, false)
	return m
}

// Run starts the Bubble Tea program.
func Run(defs *types.Defs, cfg *config.Config, seed int64, log *zap.Logger) error {
	p := tea.NewProgram(New(defs, cfg, seed, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if h, ok := m.screen.(*helpScreen); ok {
			h.resize(&m)
		}
		return m, nil

	case toastExpireMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case battleTickMsg:
		if b, ok := m.screen.(*battleScreen); ok {
			return m, b.tick(&m)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		cmd := m.screen.handleKey(&m, msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.screen.view(&m)
}

// showToast displays a transient notice for two seconds.
func (m *Model) showToast(text string) tea.Cmd {
	m.toast = text
	m.toastID++
	id := m.toastID
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return toastExpireMsg{id}
	})
}

// newSession starts a fresh game.
func (m *Model) newSession() error {
	s, err := engine.NewGame(m.defs, m.seed, m.log)
	if err != nil {
		return err
	}
	m.session = s
	return nil
}

// applyResult routes an engine step result to the right screen. Prompts stay
// pending on the session; the map screen renders and resolves them.
func (m *Model) applyResult(res engine.Result) tea.Cmd {
	switch {
	case res.Battle:
		b := newBattleScreen(m)
		m.screen = b
		return b.start(m)
	case res.Shop:
		m.screen = newShopScreen()
	case res.EndScreen:
		m.screen = newEndScreen(m)
	}
	if res.Toast != "" {
		return m.showToast(res.Toast)
	}
	return nil
}
