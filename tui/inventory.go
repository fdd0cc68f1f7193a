package tui

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/ringquest/engine/bonus"
	"github.com/nathoo/ringquest/engine/hero"
	"github.com/nathoo/ringquest/types"
)

const pageSize = 14

var invMenu = []string{
	"Stats", "Spells", "Inventory", "Equipment",
	"Change Name", "Enter Bonus Code", "Back",
}

var equipSlots = []string{hero.SlotSword, hero.SlotArmor, hero.SlotRing}

// invEntry is one list row. A negative id marks the "(unequip)" row for the
// currently equipped item.
type invEntry struct {
	id    int
	count int
}

// inventoryScreen is the hero management screen: stats, spells, item usage,
// equipment, renaming, and bonus-code entry.
type inventoryScreen struct {
	mode string // root|stats|spells|inventory|equip|change_name|bonus_code

	index   int
	slot    int
	scroll  int
	selSlot bool
	entries []invEntry

	// confirm modal
	selected    bool
	confirmText string
	descText    string
	buttons     []string
	buttonI     int

	input textinput.Model
}

func newInventoryScreen() *inventoryScreen {
	ti := textinput.New()
	ti.Prompt = "> "
	return &inventoryScreen{mode: "root", input: ti}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func validName(s string) error {
	for _, r := range s {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ' ' || r == '\''
		if !ok {
			return errors.New("letters, space and apostrophe only")
		}
	}
	return nil
}

func validCode(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return errors.New("digits only")
		}
	}
	return nil
}

func (s *inventoryScreen) buildInventory(m *Model) {
	h := m.session.Hero
	s.entries = s.entries[:0]
	ids := make([]int, 0, len(h.Inventory))
	for id, n := range h.Inventory {
		if n > 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	for _, id := range ids {
		s.entries = append(s.entries, invEntry{id: id, count: h.Inventory[id]})
	}
	if s.index > len(s.entries)-1 {
		s.index = max(0, len(s.entries)-1)
	}
	s.scroll = 0
}

func (s *inventoryScreen) buildEquipList(m *Model) {
	h := m.session.Hero
	slot := equipSlots[s.slot]
	kind := map[string]string{
		hero.SlotSword: types.ItemSword,
		hero.SlotArmor: types.ItemArmor,
		hero.SlotRing:  types.ItemRing,
	}[slot]

	s.entries = s.entries[:0]
	ids := make([]int, 0, len(h.Inventory))
	for id, n := range h.Inventory {
		if n > 0 && m.defs.Items[id].Kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	for _, id := range ids {
		s.entries = append(s.entries, invEntry{id: id, count: h.Inventory[id]})
	}
	if eq := h.Equip[slot]; eq > 0 {
		s.entries = append(s.entries, invEntry{id: -eq})
	}
	s.index = 0
	s.scroll = 0
}

func (s *inventoryScreen) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch s.mode {
	case "stats", "spells":
		switch msg.String() {
		case "esc", "backspace":
			s.mode = "root"
		}
		return nil
	case "root":
		return s.handleRootKey(m, msg)
	case "change_name":
		return s.handleNameKey(m, msg)
	case "bonus_code":
		return s.handleCodeKey(m, msg)
	}
	if s.selected {
		return s.handleConfirmKey(m, msg)
	}
	if s.mode == "equip" && !s.selSlot {
		return s.handleSlotKey(m, msg)
	}
	return s.handleListKey(m, msg)
}

func (s *inventoryScreen) handleRootKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "w":
		s.index = (s.index - 1 + len(invMenu)) % len(invMenu)
	case "down", "s":
		s.index = (s.index + 1) % len(invMenu)
	case "esc", "backspace":
		m.screen = newMapScreen()
	case "enter", " ":
		switch invMenu[s.index] {
		case "Stats":
			s.mode = "stats"
		case "Spells":
			s.mode = "spells"
		case "Inventory":
			s.index = 0
			s.buildInventory(m)
			s.mode = "inventory"
		case "Equipment":
			s.index = 0
			s.slot = 0
			s.mode = "equip"
			s.selSlot = false
		case "Change Name":
			s.mode = "change_name"
			s.input.SetValue(m.session.Hero.Name)
			s.input.CharLimit = 16
			s.input.Validate = validName
			s.input.Focus()
			return textinput.Blink
		case "Enter Bonus Code":
			if m.session.Hero.BonusCode != 0 {
				return m.showToast("Bonus already claimed.")
			}
			s.mode = "bonus_code"
			s.input.SetValue("")
			s.input.CharLimit = 5
			s.input.Validate = validCode
			s.input.Focus()
			return textinput.Blink
		case "Back":
			m.screen = newMapScreen()
		}
	}
	return nil
}

func (s *inventoryScreen) handleSlotKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "backspace":
		s.mode = "root"
		s.index = 3
	case "up", "w":
		s.slot = max(0, s.slot-1)
	case "down", "s":
		s.slot = min(len(equipSlots)-1, s.slot+1)
	case "enter", " ":
		s.buildEquipList(m)
		s.selSlot = true
	}
	return nil
}

func (s *inventoryScreen) handleListKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "backspace":
		if s.mode == "equip" {
			s.selSlot = false
			return nil
		}
		s.mode = "root"
		s.index = 2

	case "up", "w":
		s.index = max(0, s.index-1)
	case "down", "s":
		s.index = min(max(0, len(s.entries)-1), s.index+1)
	case "left", "a":
		s.index = max(0, s.index-pageSize)
	case "right", "d":
		s.index = min(max(0, len(s.entries)-1), s.index+pageSize)

	case "enter", " ":
		if len(s.entries) == 0 {
			return m.showToast("Nothing here.")
		}
		return s.openConfirm(m)
	}
	s.syncScroll()
	return nil
}

func (s *inventoryScreen) syncScroll() {
	if s.index < s.scroll {
		s.scroll = s.index
	} else if s.index > s.scroll+pageSize-1 {
		s.scroll = s.index - (pageSize - 1)
	}
	s.scroll = clamp(s.scroll, 0, max(0, len(s.entries)-pageSize))
}

func (s *inventoryScreen) openConfirm(m *Model) tea.Cmd {
	e := s.entries[s.index]
	id := e.id
	if id < 0 {
		id = -id
	}
	item := m.defs.Items[id]

	s.buttonI = 0
	s.descText = fmt.Sprintf("%s • %s", titleCase(item.Kind), item.Description)

	switch {
	case s.mode == "inventory" && item.Kind == types.ItemSpecial:
		return m.showToast("Might be useful later.")

	case s.mode == "inventory" && item.Kind == types.ItemConsumable:
		s.confirmText = fmt.Sprintf("Action for %s:", item.Name)
		s.buttons = []string{"Use", "Drop"}

	case s.mode == "inventory":
		s.confirmText = fmt.Sprintf("Action for %s:", item.Name)
		s.buttons = []string{"Equip", "Drop"}

	case e.id > 0: // equip mode, inventory row
		s.confirmText = fmt.Sprintf("Equip %s?", item.Name)
		s.buttons = []string{"Equip"}

	default: // equip mode, unequip row
		s.confirmText = fmt.Sprintf("Unequip %s?", item.Name)
		s.buttons = []string{"Unequip"}
	}
	s.selected = true
	return nil
}

func (s *inventoryScreen) handleConfirmKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "backspace":
		s.selected = false
	case "left", "a":
		s.buttonI = max(0, s.buttonI-1)
	case "right", "d":
		s.buttonI = min(len(s.buttons)-1, s.buttonI+1)
	case "enter", " ":
		s.selected = false
		return s.runAction(m, s.buttons[s.buttonI])
	}
	return nil
}

func (s *inventoryScreen) runAction(m *Model, action string) tea.Cmd {
	h := m.session.Hero
	e := s.entries[s.index]

	var cmd tea.Cmd
	switch action {
	case "Use":
		if msg, ok := h.UseConsumable(e.id, m.defs); ok {
			cmd = m.showToast(msg)
		}
	case "Drop":
		h.ConsumeItem(e.id, 1)
		cmd = m.showToast("Dropped 1 item.")
	case "Equip":
		cmd = s.equip(m, e.id)
	case "Unequip":
		err := h.UnequipSlot(equipSlots[s.slot])
		if errors.Is(err, hero.ErrInventoryFull) {
			cmd = m.showToast(fmt.Sprintf("Can't unequip %s.", itemName(m.defs, -e.id)))
		} else if err == nil {
			cmd = m.showToast(fmt.Sprintf("Unequipped %s.", itemName(m.defs, -e.id)))
			s.selSlot = false
		}
	}

	if s.mode == "inventory" {
		s.buildInventory(m)
	} else if s.selSlot {
		s.buildEquipList(m)
	}
	return cmd
}

func (s *inventoryScreen) equip(m *Model, id int) tea.Cmd {
	h := m.session.Hero
	switch err := h.EquipItem(id, m.defs); {
	case errors.Is(err, hero.ErrAlreadyEquipped):
		return m.showToast("Already equipped.")
	case errors.Is(err, hero.ErrInventoryFull):
		return m.showToast("Can't unequip previous item.")
	case err != nil:
		return m.showToast("Can't equip that.")
	default:
		s.selSlot = false
		return m.showToast(fmt.Sprintf("Equipped %s.", itemName(m.defs, id)))
	}
}

func (s *inventoryScreen) handleNameKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.mode = "root"
		return nil
	case "enter":
		if name := strings.TrimSpace(s.input.Value()); name != "" {
			m.session.Hero.Name = name
		}
		s.mode = "root"
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *inventoryScreen) handleCodeKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.mode = "root"
		return nil
	case "enter":
		code := s.input.Value()
		if len(code) != 5 {
			return m.showToast("Enter a 5-digit code.")
		}
		n, err := strconv.Atoi(code)
		if err != nil || !bonus.Valid(n) {
			return m.showToast("Invalid code.")
		}
		if !bonus.Apply(m.session.Hero, n) {
			return m.showToast("Bonus already claimed.")
		}
		s.mode = "root"
		return m.showToast("Bonus unlocked!")
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *inventoryScreen) view(m *Model) string {
	var b strings.Builder
	h := m.session.Hero

	switch s.mode {
	case "root":
		b.WriteString("\n " + styleTitle.Render("- "+h.Name+" -") + "\n\n")
		for i, label := range invMenu {
			if i == s.index {
				b.WriteString(" " + styleSelected.Render("• "+label+" •") + "\n")
			} else {
				b.WriteString("   " + styleItem.Render(label) + "\n")
			}
		}
		b.WriteString("\n " + styleHint.Render("↑/↓ — move • Enter — select • Esc — back") + "\n")

	case "stats":
		b.WriteString("\n " + styleTitle.Render("Stats") + "\n\n")
		fmt.Fprintf(&b, " Level:          %d\n", h.Level())
		fmt.Fprintf(&b, " Next Level Exp: %d\n", h.NextLevelExp())
		fmt.Fprintf(&b, " HP:             %04d/%04d\n", h.HP, h.MaxHP())
		fmt.Fprintf(&b, " MP:             %04d/%04d\n", h.MP, h.MaxMP())
		fmt.Fprintf(&b, " STR:            %d\n", h.Strength(m.defs))
		fmt.Fprintf(&b, " ATK:            %d\n", h.Attack(m.defs))
		fmt.Fprintf(&b, " DEF:            %d\n", h.Defense(m.defs))
		fmt.Fprintf(&b, " Gold:           %d\n", h.Gold)
		fmt.Fprintf(&b, " Keys:           %d\n", h.HasItem(hero.ItemKey))
		b.WriteString("\n " + styleHint.Render("Esc — back") + "\n")

	case "spells":
		b.WriteString("\n " + styleTitle.Render("Spells") + "\n\n")
		if len(h.Spells) == 0 {
			b.WriteString(" (no known spells)\n")
		}
		for _, sid := range h.Spells {
			sp := m.defs.Spells[sid]
			fmt.Fprintf(&b, " %-15s MP %02d PWR %02d\n", sp.Name, sp.MPCost, sp.Power)
		}
		b.WriteString("\n " + styleHint.Render("Esc — back") + "\n")

	case "inventory", "equip":
		b.WriteString(s.viewLists(m))

	case "change_name":
		b.WriteString("\n " + styleTitle.Render("Change Name") + "\n\n")
		b.WriteString(" " + s.input.View() + "\n\n")
		b.WriteString(" " + styleHint.Render("Only A–Z, a–z, apostrophe, and space allowed") + "\n")
		b.WriteString(" " + styleHint.Render("Enter — confirm • Esc — cancel") + "\n")

	case "bonus_code":
		b.WriteString("\n " + styleTitle.Render("Enter Bonus Code") + "\n\n")
		b.WriteString(" " + s.input.View() + "\n\n")
		b.WriteString(" " + styleHint.Render("Enter a 5-digit code (0–9 only).") + "\n")
		b.WriteString(" " + styleHint.Render("Only one code can be redeemed per save.") + "\n")
		b.WriteString(" " + styleHint.Render("Enter — confirm • Esc — cancel") + "\n")
	}

	if m.toast != "" {
		b.WriteString("\n " + styleToast.Render(m.toast) + "\n")
	}
	return b.String()
}

func (s *inventoryScreen) viewLists(m *Model) string {
	var b strings.Builder

	if s.selected {
		b.WriteString("\n " + styleTitle.Render("Action") + "\n\n")
		b.WriteString(" " + s.confirmText + "\n\n ")
		for i, btn := range s.buttons {
			if i == s.buttonI {
				b.WriteString(styleSelected.Render("["+btn+"]") + "  ")
			} else {
				b.WriteString(styleItem.Render(" "+btn+" ") + "  ")
			}
		}
		b.WriteString("\n\n " + styleHint.Render(s.descText) + "\n")
		b.WriteString(" " + styleHint.Render("Enter — confirm • Esc — cancel") + "\n")
		return b.String()
	}

	if s.mode == "equip" && !s.selSlot {
		b.WriteString("\n " + styleTitle.Render("Equipment") + "\n\n")
		for i, slot := range equipSlots {
			name := "(empty)"
			if id := m.session.Hero.Equip[slot]; id > 0 {
				name = itemName(m.defs, id)
			}
			line := fmt.Sprintf("%-5s: %s", slot, name)
			if i == s.slot {
				b.WriteString(" " + styleSelected.Render(line) + "\n")
			} else {
				b.WriteString(" " + styleItem.Render(line) + "\n")
			}
		}
		b.WriteString("\n " + styleHint.Render("↑/↓ — move • Enter — select • Esc — back") + "\n")
		return b.String()
	}

	title := "Inventory"
	if s.mode == "equip" {
		title = "Equip " + equipSlots[s.slot]
	}
	b.WriteString("\n " + styleTitle.Render(title) + "\n\n")

	if len(s.entries) == 0 {
		b.WriteString(" (No items)\n")
	}
	end := min(len(s.entries), s.scroll+pageSize)
	for i := s.scroll; i < end; i++ {
		e := s.entries[i]
		var line string
		if e.id > 0 {
			line = fmt.Sprintf("%-30s x%02d", itemName(m.defs, e.id), e.count)
		} else {
			line = "(unequip)"
		}
		if i == s.index {
			b.WriteString(" " + styleSelected.Render(line) + "\n")
		} else {
			b.WriteString(" " + styleItem.Render(line) + "\n")
		}
	}

	if len(s.entries) > 0 {
		id := s.entries[s.index].id
		if id < 0 {
			id = -id
		}
		item := m.defs.Items[id]
		b.WriteString("\n " + styleHint.Render(
			fmt.Sprintf("%s • %s", titleCase(item.Kind), item.Description)) + "\n")
		b.WriteString(" " + styleHint.Render(
			fmt.Sprintf("Item %02d/%02d • arrows — move", s.index+1, len(s.entries))) + "\n")
	}
	b.WriteString(" " + styleHint.Render("Enter — select • Esc — back") + "\n")
	return b.String()
}
