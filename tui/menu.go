package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const gameTitle = "Ring Quest"

// noSaveMap is the final dungeon: no saving past the point of no return.
const noSaveMap = "dungeon"

// menuScreen is the main/pause menu. Entries depend on whether a game is in
// progress and whether saving is allowed on the current map.
type menuScreen struct {
	items  []string
	index  int
	paused bool // opened from the map, not at boot
}

func newMenuScreen(m *Model, paused bool) *menuScreen {
	s := &menuScreen{paused: paused}
	if paused {
		s.items = append(s.items, "Resume Game")
	}
	s.items = append(s.items, "New Game", "Load Game")
	if paused && m.session.Hero.MapName != noSaveMap {
		s.items = append(s.items, "Save Game")
	}
	s.items = append(s.items, "Help", "Close Game")
	return s
}

func (s *menuScreen) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "w":
		s.index = (s.index - 1 + len(s.items)) % len(s.items)
	case "down", "s":
		s.index = (s.index + 1) % len(s.items)
	case "esc", "backspace":
		if s.paused {
			m.screen = newMapScreen()
		}
	case "enter", " ":
		return s.activate(m, s.items[s.index])
	}
	return nil
}

func (s *menuScreen) activate(m *Model, item string) tea.Cmd {
	switch item {
	case "Resume Game":
		m.screen = newMapScreen()

	case "New Game":
		if err := m.newSession(); err != nil {
			m.log.Error("new game failed", zap.Error(err))
			return m.showToast("Could not start game.")
		}
		m.screen = newMapScreen()

	case "Load Game":
		if m.session == nil {
			if err := m.newSession(); err != nil {
				m.log.Error("new game failed", zap.Error(err))
				return m.showToast("Could not start game.")
			}
		}
		data, err := os.ReadFile(m.cfg.Game.SavePath)
		if err != nil {
			return m.showToast("No save file found!")
		}
		if err := m.session.LoadBytes(data); err != nil {
			m.log.Warn("load failed", zap.Error(err))
			return m.showToast("Save file is corrupt.")
		}
		m.screen = newMapScreen()
		return m.showToast("Game loaded.")

	case "Save Game":
		data, err := m.session.SaveBytes()
		if err == nil {
			err = os.WriteFile(m.cfg.Game.SavePath, data, 0o644)
		}
		if err != nil {
			m.log.Warn("save failed", zap.Error(err))
			return m.showToast(fmt.Sprintf("Save failed: %v", err))
		}
		m.screen = newMapScreen()
		return m.showToast("Game saved.")

	case "Help":
		m.screen = newHelpScreen(m, s)

	case "Close Game":
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (s *menuScreen) view(m *Model) string {
	var b strings.Builder

	title := gameTitle
	if s.paused {
		title = "PAUSE"
	}
	b.WriteString("\n  " + styleTitle.Render(title) + "\n\n")

	for i, item := range s.items {
		if i == s.index {
			b.WriteString("  " + styleSelected.Render("• "+item+" •") + "\n")
		} else {
			b.WriteString("    " + styleItem.Render(item) + "\n")
		}
	}

	b.WriteString("\n  " + styleHint.Render("↑/↓/w/s — navigate • Enter/Space — select") + "\n")
	if m.toast != "" {
		b.WriteString("\n  " + styleToast.Render(m.toast) + "\n")
	}
	return b.String()
}
