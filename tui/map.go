package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/ringquest/engine"
	"github.com/nathoo/ringquest/engine/hero"
	"github.com/nathoo/ringquest/types"
)

// mapScreen renders the active map with the HUD and resolves pending
// dialogue prompts.
type mapScreen struct {
	promptFocus int
	lastPrompt  *engine.Prompt
	sheet       bool // character sheet overlay open
}

func newMapScreen() *mapScreen {
	return &mapScreen{}
}

func (s *mapScreen) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	if s.sheet {
		switch msg.String() {
		case "esc", "backspace", "enter", " ", "c":
			s.sheet = false
		}
		return nil
	}

	if p := m.session.Pending(); p != nil {
		return s.handlePromptKey(m, p, msg)
	}

	switch msg.String() {
	case "up", "w":
		return m.applyResult(m.session.Step(engine.FaceUp))
	case "left", "a":
		return m.applyResult(m.session.Step(engine.FaceLeft))
	case "right", "d":
		return m.applyResult(m.session.Step(engine.FaceRight))
	case "down", "s":
		return m.applyResult(m.session.Step(engine.FaceDown))
	case "i":
		m.screen = newInventoryScreen()
	case "c":
		s.sheet = true
	case "p", "esc":
		m.screen = newMenuScreen(m, true)
	}
	return nil
}

func (s *mapScreen) handlePromptKey(m *Model, p *engine.Prompt, msg tea.KeyMsg) tea.Cmd {
	if p != s.lastPrompt {
		s.lastPrompt = p
		s.promptFocus = 0
	}

	if len(p.Buttons) < 2 {
		switch msg.String() {
		case "enter", " ", "esc", "backspace":
			return m.applyResult(m.session.Choose(""))
		}
		return nil
	}

	switch msg.String() {
	case "left", "a":
		s.promptFocus = (s.promptFocus - 1 + len(p.Buttons)) % len(p.Buttons)
	case "right", "d":
		s.promptFocus = (s.promptFocus + 1) % len(p.Buttons)
	case "enter", " ":
		return m.applyResult(m.session.Choose(p.Buttons[s.promptFocus]))
	}
	return nil
}

func (s *mapScreen) view(m *Model) string {
	h := m.session.Hero
	w := m.session.World

	var b strings.Builder
	b.WriteString(s.renderHUD(m) + "\n")

	if s.sheet {
		b.WriteString(s.renderSheet(m))
		return b.String()
	}

	cols := m.width / 2
	rows := m.height - 4
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	camX := clamp(h.X-cols/2, 0, max(0, w.W-cols))
	camY := clamp(h.Y-rows/2, 0, max(0, w.H-rows))

	radar := h.HasItem(hero.ItemRadar) > 0
	cells := w.Window(camX, camY, cols, rows, radar)
	grid := map[[2]int]string{}
	for _, wc := range cells {
		g := cellGlyph(wc.Cell)
		if wc.Reward {
			g = styleReward.Render(g)
		}
		grid[[2]int{wc.X, wc.Y}] = g
	}
	grid[[2]int{h.X, h.Y}] = styleHero.Render(facingGlyph(h.Facing))

	for y := camY; y < camY+rows && y < w.H; y++ {
		for x := camX; x < camX+cols && x < w.W; x++ {
			if g, ok := grid[[2]int{x, y}]; ok {
				b.WriteString(g)
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	if p := m.session.Pending(); p != nil {
		b.WriteString(s.renderPrompt(p))
	} else if m.toast != "" {
		b.WriteString(styleToast.Render(m.toast) + "\n")
	} else {
		b.WriteString(styleHint.Render(
			"arrows/wasd — move • i — inventory • c — character • p/Esc — menu") + "\n")
	}
	return b.String()
}

func (s *mapScreen) renderHUD(m *Model) string {
	h := m.session.Hero
	hud := fmt.Sprintf(" HP %d/%d | MP %d/%d | Gold %d | Keys %d ",
		h.HP, h.MaxHP(), h.MP, h.MaxMP(), h.Gold, h.HasItem(hero.ItemKey))
	return styleHUD.Render(hud)
}

func (s *mapScreen) renderPrompt(p *engine.Prompt) string {
	var b strings.Builder
	if p.Title != "" {
		b.WriteString(styleTitle.Render(p.Title) + "\n")
	}
	b.WriteString(p.Text + "\n")

	if len(p.Buttons) >= 2 {
		labels := make([]string, len(p.Buttons))
		for i, btn := range p.Buttons {
			if i == s.promptFocus {
				labels[i] = styleSelected.Render("[" + btn + "]")
			} else {
				labels[i] = styleItem.Render(" " + btn + " ")
			}
		}
		b.WriteString(strings.Join(labels, "  ") + "\n")
		b.WriteString(styleHint.Render("←/→/a/d — choose • Enter/Space — confirm"))
	} else {
		b.WriteString(styleHint.Render("Enter/Space — continue"))
	}
	return stylePromptBox.Render(b.String()) + "\n"
}

func (s *mapScreen) renderSheet(m *Model) string {
	h := m.session.Hero
	defs := m.defs

	var b strings.Builder
	b.WriteString("\n " + styleTitle.Render(h.Name) + "\n\n")
	fmt.Fprintf(&b, " Level: %d\n", h.Level())
	fmt.Fprintf(&b, " Next Level Exp: %d\n", h.NextLevelExp())
	fmt.Fprintf(&b, " HP: %d/%d\n", h.HP, h.MaxHP())
	fmt.Fprintf(&b, " MP: %d/%d\n", h.MP, h.MaxMP())
	fmt.Fprintf(&b, " STR: %d\n", h.Strength(defs))
	fmt.Fprintf(&b, " ATK: %d\n", h.Attack(defs))
	fmt.Fprintf(&b, " DEF: %d\n", h.Defense(defs))
	fmt.Fprintf(&b, " Gold: %d\n", h.Gold)
	fmt.Fprintf(&b, " Keys: %d\n", h.HasItem(hero.ItemKey))

	for _, slot := range []string{hero.SlotSword, hero.SlotArmor, hero.SlotRing} {
		if id := h.Equip[slot]; id > 0 {
			fmt.Fprintf(&b, " Equipped %s: %s\n", slot, defs.Items[id].Name)
		}
	}

	if len(h.Spells) > 0 {
		b.WriteString(" Spells:\n")
		var ice, fire []string
		for _, sid := range h.Spells {
			sp := defs.Spells[sid]
			if sp.Kind == "ice" {
				ice = append(ice, sp.Name)
			} else {
				fire = append(fire, sp.Name)
			}
		}
		if len(ice) > 0 {
			b.WriteString("  * " + strings.Join(ice, ", ") + "\n")
		}
		if len(fire) > 0 {
			b.WriteString("  * " + strings.Join(fire, ", ") + "\n")
		}
	}

	fmt.Fprintf(&b, "\n Score: %d\n", h.Score)
	if h.BonusCode != 0 {
		fmt.Fprintf(&b, " Bonus Code: %d\n", h.BonusCode)
	}
	b.WriteString("\n " + styleHint.Render("Esc/Enter — close") + "\n")
	return b.String()
}

// itemName is a shared display helper tolerating unknown ids.
func itemName(defs *types.Defs, id int) string {
	if item, ok := defs.Items[id]; ok {
		return item.Name
	}
	return fmt.Sprintf("#%d", id)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
