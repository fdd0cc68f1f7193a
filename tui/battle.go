package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/ringquest/engine/battle"
)

const (
	monsterTurnDelay = 700 * time.Millisecond
	battleEndDelay   = 3 * time.Second
)

var battleMenu = []string{"Attack", "Item", "Cast", "Flee"}

type battleLine struct {
	text string
	hero bool
}

// battleScreen drives one encounter: the 2×2 action menu, the cast/item
// submenus, and the paced monster turns.
type battleScreen struct {
	menuIndex int
	submenu   string // "" | "cast" | "item"
	subIndex  int
	log       []battleLine
}

func newBattleScreen(m *Model) *battleScreen {
	return &battleScreen{}
}

func (s *battleScreen) start(m *Model) tea.Cmd {
	s.appendReady(m)
	return nil
}

func (s *battleScreen) appendReady(m *Model) {
	s.log = append(s.log, battleLine{
		text: fmt.Sprintf("%s is ready for the command.", m.session.Hero.Name),
		hero: true,
	})
}

func battleTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return battleTickMsg{} })
}

// tick advances the non-interactive phases.
func (s *battleScreen) tick(m *Model) tea.Cmd {
	b := m.session.Battle
	if b == nil {
		return nil
	}

	switch b.Phase {
	case battle.PhaseMonster:
		s.log = append(s.log, battleLine{text: b.MonsterAttack()})
		if b.CheckLose() {
			return battleTick(battleEndDelay)
		}
		b.Phase = battle.PhasePlayer
		s.appendReady(m)
		return nil

	case battle.PhaseEnd:
		return s.finish(m)
	}
	return nil
}

func (s *battleScreen) finish(m *Model) tea.Cmd {
	res, err := m.session.FinishBattle()
	if err != nil {
		return nil
	}
	m.screen = newMapScreen()
	return m.applyResult(res)
}

func (s *battleScreen) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	b := m.session.Battle
	if b == nil || b.Phase != battle.PhasePlayer {
		return nil
	}
	if s.submenu == "" {
		return s.handleMenuKey(m, msg)
	}
	return s.handleSubmenuKey(m, msg)
}

func (s *battleScreen) handleMenuKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	b := m.session.Battle

	switch msg.String() {
	case "left", "a":
		s.menuIndex = (s.menuIndex + 3) % 4
	case "right", "d":
		s.menuIndex = (s.menuIndex + 1) % 4
	case "up", "w", "down", "s":
		s.menuIndex = (s.menuIndex + 2) % 4

	case "enter", " ":
		switch battleMenu[s.menuIndex] {
		case "Attack":
			s.log = append(s.log, battleLine{text: b.HeroAttack(), hero: true})
			if b.CheckWin() {
				return battleTick(battleEndDelay)
			}
			b.Phase = battle.PhaseMonster
			return battleTick(monsterTurnDelay)

		case "Item":
			if len(b.AvailableItems()) == 0 {
				return m.showToast("No items can be used.")
			}
			s.submenu = "item"
			s.subIndex = 0

		case "Cast":
			if len(b.AvailableSpells()) == 0 {
				return m.showToast("No spells can be cast.")
			}
			s.submenu = "cast"
			s.subIndex = 0

		case "Flee":
			b.Flee()
			return s.finish(m)
		}
	}
	return nil
}

func (s *battleScreen) handleSubmenuKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	b := m.session.Battle

	var entries []int
	if s.submenu == "cast" {
		entries = b.AvailableSpells()
	} else {
		entries = b.AvailableItems()
	}
	if len(entries) == 0 {
		s.submenu = ""
		return nil
	}

	switch msg.String() {
	case "esc", "backspace":
		s.submenu = ""
		s.subIndex = 0

	case "up", "w":
		s.subIndex = (s.subIndex - 1 + len(entries)) % len(entries)
	case "down", "s":
		s.subIndex = (s.subIndex + 1) % len(entries)

	case "enter", " ":
		id := entries[s.subIndex]
		wasCast := s.submenu == "cast"
		s.submenu = ""
		s.subIndex = 0
		s.menuIndex = 0
		if wasCast {
			return s.castSpell(m, id)
		}
		return s.useItem(m, id)
	}
	return nil
}

func (s *battleScreen) view(m *Model) string {
	b := m.session.Battle
	if b == nil {
		return ""
	}
	h := m.session.Hero

	var out strings.Builder
	fmt.Fprintf(&out, " %s\n", styleTitle.Render(b.Monster.Name))
	fmt.Fprintf(&out, " %s HP %03d/%03d\n", percentBar(30, b.HP, b.MaxHP), b.HP, b.MaxHP)
	out.WriteString("\n")
	fmt.Fprintf(&out, " %s\n", styleTitle.Render(h.Name))
	fmt.Fprintf(&out, " %s HP %04d/%04d • MP %04d/%04d\n",
		percentBar(30, h.HP, h.MaxHP()), h.HP, h.MaxHP(), h.MP, h.MaxMP())
	out.WriteString("\n")

	logStart := 0
	if len(s.log) > 10 {
		logStart = len(s.log) - 10
	}
	for _, line := range s.log[logStart:] {
		if line.hero {
			out.WriteString(" " + styleHeroMsg.Render(line.text) + "\n")
		} else {
			out.WriteString(" " + styleMonsterMsg.Render(line.text) + "\n")
		}
	}
	out.WriteString("\n")

	if b.Phase == battle.PhasePlayer {
		if s.submenu == "" {
			out.WriteString(s.renderMenu())
		} else {
			out.WriteString(s.renderSubmenu(m))
		}
	}
	if m.toast != "" {
		out.WriteString("\n " + styleToast.Render(m.toast) + "\n")
	}
	return out.String()
}

func (s *battleScreen) renderMenu() string {
	cell := func(i int) string {
		label := fmt.Sprintf("%-8s", battleMenu[i])
		if i == s.menuIndex {
			return styleSelected.Render("▸ " + label)
		}
		return styleItem.Render("  " + label)
	}
	return " " + cell(0) + "  " + cell(1) + "\n " + cell(2) + "  " + cell(3) + "\n" +
		" " + styleHint.Render("arrows/wasd — move • Enter/Space — select") + "\n"
}

func (s *battleScreen) renderSubmenu(m *Model) string {
	b := m.session.Battle
	var out strings.Builder

	if s.submenu == "cast" {
		for i, sid := range b.AvailableSpells() {
			var label string
			if sid == 0 {
				mod, _ := m.session.Hero.RingMod(m.defs)
				summon := m.defs.Summons[mod]
				label = fmt.Sprintf("%-14s (MP%02d)", summon.Name, summon.MPCost)
			} else {
				sp := m.defs.Spells[sid]
				label = fmt.Sprintf("%-14s (MP%02d)", sp.Name, sp.MPCost)
			}
			out.WriteString(" " + s.cursor(i) + label + "\n")
		}
	} else {
		for i, iid := range b.AvailableItems() {
			label := fmt.Sprintf("%-14s x%02d", itemName(m.defs, iid), m.session.Hero.HasItem(iid))
			out.WriteString(" " + s.cursor(i) + label + "\n")
		}
	}
	out.WriteString(" " + styleHint.Render("↑/↓ — move • Enter — select • Esc — back") + "\n")
	return out.String()
}

func (s *battleScreen) cursor(i int) string {
	if i == s.subIndex {
		return styleSelected.Render("▸ ")
	}
	return "  "
}

// castSpell resolves a cast submenu choice, including the ring summon.
func (s *battleScreen) castSpell(m *Model, id int) tea.Cmd {
	b := m.session.Battle
	msg, err := b.Cast(id)
	if err != nil {
		if errors.Is(err, battle.ErrNotEnoughMP) {
			return m.showToast("Not enough MP.")
		}
		return m.showToast("Nothing happens.")
	}
	s.log = append(s.log, battleLine{text: msg, hero: true})

	// The summon only powers up; it never decides the battle.
	if id != 0 && b.CheckWin() {
		return battleTick(battleEndDelay)
	}
	b.Phase = battle.PhaseMonster
	return battleTick(monsterTurnDelay)
}

// useItem resolves an item submenu choice. Using an item forfeits the turn.
func (s *battleScreen) useItem(m *Model, id int) tea.Cmd {
	b := m.session.Battle
	msg, ok := b.UseItem(id)
	if !ok {
		return m.showToast("Nothing happens.")
	}
	s.log = append(s.log, battleLine{text: msg, hero: true})
	b.Phase = battle.PhaseMonster
	return battleTick(monsterTurnDelay)
}
