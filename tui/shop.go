package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/ringquest/engine/hero"
	"github.com/nathoo/ringquest/types"
)

var shopMenu = []string{"Buy", "Sell", "Learn Spell", "Exit"}

// buyPages groups the buyable catalog by item kind; left/right cycles pages.
var buyPages = []string{types.ItemConsumable, types.ItemSword, types.ItemArmor}

// shopScreen is the merchant screen: buying, selling at half price, and
// learning spells for gold.
type shopScreen struct {
	mode string // root|buy|sell|learn

	index   int
	page    int
	scroll  int
	entries []int // item ids, or spell ids in learn mode

	confirm     bool
	confirmText string
	action      string // Buy|Sell|Learn
	actionID    int
}

func newShopScreen() *shopScreen {
	return &shopScreen{mode: "root"}
}

func (s *shopScreen) buildBuy(m *Model) {
	kind := buyPages[s.page]
	s.entries = s.entries[:0]
	for id, item := range m.defs.Items {
		if item.Kind == kind && item.Price > 0 {
			s.entries = append(s.entries, id)
		}
	}
	sort.Ints(s.entries)
	s.index, s.scroll = 0, 0
}

// buildSell lists held items with a resale value. Equipped items are not
// listed; only inventory stacks can be sold.
func (s *shopScreen) buildSell(m *Model) {
	h := m.session.Hero
	s.entries = s.entries[:0]
	for id, n := range h.Inventory {
		if n > 0 && m.defs.Items[id].Price > 0 {
			s.entries = append(s.entries, id)
		}
	}
	sort.Ints(s.entries)
	s.index, s.scroll = 0, 0
}

func (s *shopScreen) buildLearn(m *Model) {
	h := m.session.Hero
	s.entries = s.entries[:0]
	for id, sp := range m.defs.Spells {
		if sp.Price > 0 && !h.KnowsSpell(id) {
			s.entries = append(s.entries, id)
		}
	}
	sort.Ints(s.entries)
	s.index, s.scroll = 0, 0
}

func (s *shopScreen) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	if s.confirm {
		return s.handleConfirmKey(m, msg)
	}
	if s.mode == "root" {
		return s.handleRootKey(m, msg)
	}
	return s.handleListKey(m, msg)
}

func (s *shopScreen) handleRootKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "w":
		s.index = (s.index - 1 + len(shopMenu)) % len(shopMenu)
	case "down", "s":
		s.index = (s.index + 1) % len(shopMenu)
	case "esc", "backspace":
		m.screen = newMapScreen()
	case "enter", " ":
		switch shopMenu[s.index] {
		case "Buy":
			s.mode = "buy"
			s.page = 0
			s.buildBuy(m)
		case "Sell":
			s.mode = "sell"
			s.buildSell(m)
		case "Learn Spell":
			s.mode = "learn"
			s.buildLearn(m)
		case "Exit":
			m.screen = newMapScreen()
		}
	}
	return nil
}

func (s *shopScreen) handleListKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "backspace":
		s.mode = "root"
		s.index = 0

	case "up", "w":
		s.index = max(0, s.index-1)
	case "down", "s":
		s.index = min(max(0, len(s.entries)-1), s.index+1)

	case "left", "a":
		if s.mode == "buy" {
			s.page = (s.page - 1 + len(buyPages)) % len(buyPages)
			s.buildBuy(m)
		}
	case "right", "d":
		if s.mode == "buy" {
			s.page = (s.page + 1) % len(buyPages)
			s.buildBuy(m)
		}

	case "enter", " ":
		if len(s.entries) == 0 {
			return nil
		}
		return s.openConfirm(m, s.entries[s.index])
	}
	s.syncScroll()
	return nil
}

func (s *shopScreen) syncScroll() {
	if s.index < s.scroll {
		s.scroll = s.index
	} else if s.index > s.scroll+pageSize-1 {
		s.scroll = s.index - (pageSize - 1)
	}
	s.scroll = clamp(s.scroll, 0, max(0, len(s.entries)-pageSize))
}

func (s *shopScreen) openConfirm(m *Model, id int) tea.Cmd {
	h := m.session.Hero
	s.actionID = id

	switch s.mode {
	case "buy":
		item := m.defs.Items[id]
		if h.Gold < item.Price {
			return m.showToast("Not enough gold.")
		}
		if h.HasItem(id) >= hero.MaxItemCount {
			return m.showToast("Max 99 per item.")
		}
		s.action = "Buy"
		s.confirmText = fmt.Sprintf("Buy %s for %d gold?", item.Name, item.Price)

	case "sell":
		item := m.defs.Items[id]
		s.action = "Sell"
		s.confirmText = fmt.Sprintf("Sell %s for %d gold?", item.Name, item.Price/2)

	case "learn":
		sp := m.defs.Spells[id]
		if h.Gold < sp.Price {
			return m.showToast("Not enough gold.")
		}
		s.action = "Learn"
		s.confirmText = fmt.Sprintf("Learn %s for %d gold?", sp.Name, sp.Price)
	}
	s.confirm = true
	return nil
}

func (s *shopScreen) handleConfirmKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "backspace":
		s.confirm = false
	case "enter", " ":
		s.confirm = false
		return s.runAction(m)
	}
	return nil
}

func (s *shopScreen) runAction(m *Model) tea.Cmd {
	h := m.session.Hero

	switch s.action {
	case "Buy":
		item := m.defs.Items[s.actionID]
		if h.Gold < item.Price || h.HasItem(s.actionID) >= hero.MaxItemCount {
			return nil
		}
		h.Gold -= item.Price
		h.AddItem(s.actionID, 1)
		return m.showToast(fmt.Sprintf("Bought %s.", item.Name))

	case "Sell":
		item := m.defs.Items[s.actionID]
		if !h.ConsumeItem(s.actionID, 1) {
			return nil
		}
		h.AddGold(item.Price / 2)
		s.buildSell(m)
		return m.showToast(fmt.Sprintf("Sold %s.", item.Name))

	case "Learn":
		sp := m.defs.Spells[s.actionID]
		if h.Gold < sp.Price {
			return nil
		}
		h.Gold -= sp.Price
		h.LearnSpell(s.actionID)
		s.buildLearn(m)
		return m.showToast(fmt.Sprintf("Learned %s!", sp.Name))
	}
	return nil
}

func (s *shopScreen) view(m *Model) string {
	h := m.session.Hero

	var b strings.Builder
	b.WriteString("\n " + styleTitle.Render("Shop") + "\n")
	b.WriteString(" " + styleHUD.Render(fmt.Sprintf(" Gold: %d ", h.Gold)) + "\n\n")

	if s.confirm {
		b.WriteString(" " + s.confirmText + "\n\n")
		b.WriteString(" " + styleHint.Render("Enter — confirm • Esc — cancel") + "\n")
		return b.String()
	}

	switch s.mode {
	case "root":
		for i, label := range shopMenu {
			if i == s.index {
				b.WriteString(" " + styleSelected.Render("• "+label+" •") + "\n")
			} else {
				b.WriteString("   " + styleItem.Render(label) + "\n")
			}
		}
		b.WriteString("\n " + styleHint.Render("↑/↓ — move • Enter — select • Esc — leave") + "\n")

	case "buy":
		b.WriteString(" " + styleTitle.Render("Buy — "+titleCase(buyPages[s.page])+"s") + "\n\n")
		b.WriteString(s.viewEntries(m))
		b.WriteString(" " + styleHint.Render("←/→ — category • Enter — buy • Esc — back") + "\n")

	case "sell":
		b.WriteString(" " + styleTitle.Render("Sell") + "\n\n")
		b.WriteString(s.viewEntries(m))
		b.WriteString(" " + styleHint.Render("Enter — sell • Esc — back") + "\n")

	case "learn":
		b.WriteString(" " + styleTitle.Render("Learn Spell") + "\n\n")
		b.WriteString(s.viewEntries(m))
		b.WriteString(" " + styleHint.Render("Enter — learn • Esc — back") + "\n")
	}

	if m.toast != "" {
		b.WriteString("\n " + styleToast.Render(m.toast) + "\n")
	}
	return b.String()
}

func (s *shopScreen) viewEntries(m *Model) string {
	var b strings.Builder
	if len(s.entries) == 0 {
		b.WriteString(" (nothing available)\n\n")
		return b.String()
	}

	end := min(len(s.entries), s.scroll+pageSize)
	for i := s.scroll; i < end; i++ {
		id := s.entries[i]
		var line string
		switch s.mode {
		case "buy":
			item := m.defs.Items[id]
			line = fmt.Sprintf("%-24s %6d gold", item.Name, item.Price)
		case "sell":
			item := m.defs.Items[id]
			line = fmt.Sprintf("%-24s x%02d %6d gold", item.Name,
				m.session.Hero.HasItem(id), item.Price/2)
		case "learn":
			sp := m.defs.Spells[id]
			line = fmt.Sprintf("%-24s %6d gold", sp.Name, sp.Price)
		}
		if i == s.index {
			b.WriteString(" " + styleSelected.Render(line) + "\n")
		} else {
			b.WriteString(" " + styleItem.Render(line) + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}
