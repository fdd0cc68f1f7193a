package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/ringquest/engine/bonus"
)

// endScreen is the victory screen: final score and the bonus code earned for
// the next playthrough.
type endScreen struct {
	score int
	code  int
}

func newEndScreen(m *Model) *endScreen {
	score := 0
	if m.session != nil {
		score = m.session.Hero.Score
	}
	return &endScreen{score: score, code: bonus.CodeForScore(score)}
}

func (s *endScreen) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", " ", "esc":
		m.session = nil
		m.screen = newMenuScreen(m, false)
	}
	return nil
}

func (s *endScreen) view(m *Model) string {
	var b strings.Builder
	b.WriteString("\n\n  " + styleTitle.Render("The End") + "\n\n")
	fmt.Fprintf(&b, "  Final score: %d\n\n", s.score)
	b.WriteString("  Your bonus code for the next quest:\n")
	b.WriteString("  " + styleSelected.Render(fmt.Sprintf("%05d", s.code)) + "\n\n")
	b.WriteString("  " + styleHint.Render("Enter — back to the main menu") + "\n")
	return b.String()
}
