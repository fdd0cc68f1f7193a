package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// helpScreen shows the manual in a scrollable viewport.
type helpScreen struct {
	vp   viewport.Model
	back screen
}

func newHelpScreen(m *Model, back screen) *helpScreen {
	s := &helpScreen{back: back}
	s.vp = viewport.New(max(20, m.width-4), max(5, m.height-4))
	s.vp.SetContent(helpText(m))
	return s
}

func helpText(m *Model) string {
	if text := m.defs.Text("help.txt"); text != "" {
		return text
	}
	return "No help available."
}

// resize refits the viewport after a terminal resize.
func (s *helpScreen) resize(m *Model) {
	s.vp.Width = max(20, m.width-4)
	s.vp.Height = max(5, m.height-4)
}

func (s *helpScreen) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.screen = s.back
		return nil
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd
}

func (s *helpScreen) view(m *Model) string {
	return "\n " + styleTitle.Render("Help") + "\n\n" +
		s.vp.View() + "\n\n " +
		styleHint.Render("↑/↓/PgUp/PgDn — scroll • Esc — back") + "\n"
}
