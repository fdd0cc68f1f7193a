// Package hero models the player combatant: progression, resources,
// inventory, and equipment. Derived stats are pure functions over the stored
// fields and are recomputed on every call, so they can never go stale after
// an equipment change.
package hero

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nathoo/ringquest/types"
)

// Progression and cap constants.
const (
	perLevelExp = 600 // exp required for level 2
	levelStep   = 200 // threshold growth per level

	hpPerLevel = 4
	mpPerLevel = 2

	multHPMPBonus = 8 // max HP/MP per multiplier point
	multStrBonus  = 2 // strength per multiplier point

	defaultHP = 20
	defaultMP = 10 // also the base strength at level 1

	MaxLevel = 990
	MaxExp   = 98_306_600
	MaxGold  = 999_999_900

	maxResource = 9999 // HP/MP cap
	maxStat     = 999  // STR/ATK/DEF cap

	MaxItemCount = 99

	defaultScore = 10000
)

// Well-known item ids the engine treats specially.
const (
	ItemSoulStone  = 6  // mult_str +1
	ItemBloodStone = 7  // mult_str +2
	ItemLifeStone  = 8  // mult_hp +1
	ItemMagicStone = 9  // mult_mp +1
	ItemKey        = 10 // opens doors
	ItemRadar      = 11 // treasure radar
	ItemCloak      = 12 // wall-pass
)

// Equipment slot names, matching the save format.
const (
	SlotSword = "sword"
	SlotArmor = "armor"
	SlotRing  = "ring"
)

var (
	ErrNotOwned        = errors.New("item not in inventory")
	ErrAlreadyEquipped = errors.New("already equipped")
	ErrInventoryFull   = errors.New("inventory full for bumped item")
	ErrSlotEmpty       = errors.New("slot is empty")
)

// Hero is the player's mutable state. All fields are plain data; the derived
// stat methods apply the caps and equipment math.
type Hero struct {
	Name string

	MapName string
	X, Y    int
	Facing  int

	HP    int
	MP    int
	Exp   int
	Gold  int
	Power int // temporary attack charges, reset when a battle ends

	MultHP  int
	MultMP  int
	MultStr int

	Inventory map[int]int    // item id → count, 1..99
	Equip     map[string]int // slot → item id, 0 = empty
	Spells    []int          // learned spell ids, kept sorted

	Score     int
	BonusCode int
}

// New creates a fresh hero at the start position encoded in event id 0.
func New(defs *types.Defs) (*Hero, error) {
	h := &Hero{}
	if err := h.Reset(defs); err != nil {
		return nil, err
	}
	return h, nil
}

// Reset restores the hero to New Game defaults. The starting map, position,
// and facing come from the start-position event (id 0).
func (h *Hero) Reset(defs *types.Defs) error {
	start, ok := defs.Events[0]
	if !ok {
		return errors.New("event table has no start position (id 0)")
	}
	warp, ok := start.Payload.(types.WarpPayload)
	if !ok {
		return fmt.Errorf("start position event has %T payload", start.Payload)
	}

	h.Name = "Eric"
	h.MapName = warp.Map
	h.X, h.Y, h.Facing = warp.X, warp.Y, warp.Facing

	h.HP = defaultHP
	h.MP = defaultMP
	h.Exp = 0
	h.Gold = 0
	h.Power = 0

	h.MultHP, h.MultMP, h.MultStr = 0, 0, 0

	h.Inventory = map[int]int{}
	h.Equip = map[string]int{SlotSword: 0, SlotArmor: 0, SlotRing: 0}
	h.Spells = nil

	h.Score = defaultScore
	h.BonusCode = 0
	return nil
}

// Level derives the hero level from cumulative experience. Thresholds start
// at 600 exp for level 2 and grow by 200 per level.
func (h *Hero) Level() int {
	if h.Exp >= MaxExp {
		return MaxLevel
	}
	exp := h.Exp
	level := 1
	need := perLevelExp
	for exp >= need {
		level++
		exp -= need
		need += levelStep
	}
	return level
}

// NextLevelExp returns the experience still required for the next level,
// or 0 at the experience cap.
func (h *Hero) NextLevelExp() int {
	if h.Exp >= MaxExp {
		return 0
	}
	exp := h.Exp
	need := perLevelExp
	for exp >= need {
		exp -= need
		need += levelStep
	}
	return need - exp
}

// MaxHP is 20 at level 1, +4 per level, +8 per mult_hp point, capped at 9999.
func (h *Hero) MaxHP() int {
	v := defaultHP + (h.Level()-1)*hpPerLevel + multHPMPBonus*h.MultHP
	return min(v, maxResource)
}

// MaxMP is 10 at level 1, +2 per level, +8 per mult_mp point, capped at 9999.
func (h *Hero) MaxMP() int {
	v := defaultMP + (h.Level()-1)*mpPerLevel + multHPMPBonus*h.MultMP
	return min(v, maxResource)
}

// ringMod returns the equipped ring id mod 300 if a catalog ring is equipped.
func (h *Hero) ringMod(defs *types.Defs) (int, bool) {
	rid := h.Equip[SlotRing]
	item, ok := defs.Items[rid]
	if !ok || item.Kind != types.ItemRing {
		return 0, false
	}
	return rid % 300, true
}

// RingMod exposes the equipped ring's id mod 300 (0, false when bare).
func (h *Hero) RingMod(defs *types.Defs) (int, bool) { return h.ringMod(defs) }

// Strength is 10 at level 1, +1 per level, +2 per mult_str point. A ring
// with mod-300 == 5 adds the hero level. Capped at 999.
func (h *Hero) Strength(defs *types.Defs) int {
	v := defaultMP + (h.Level() - 1) + multStrBonus*h.MultStr
	if mod, ok := h.ringMod(defs); ok && mod == 5 {
		v += h.Level()
	}
	return min(v, maxStat)
}

// Attack is strength plus the equipped sword's value; a ring with
// mod-300 == 4 adds the hero level. Capped at 999.
func (h *Hero) Attack(defs *types.Defs) int {
	v := h.Strength(defs)
	if item, ok := defs.Items[h.Equip[SlotSword]]; ok && item.Kind == types.ItemSword {
		v += item.Value
	}
	if mod, ok := h.ringMod(defs); ok && mod == 4 {
		v += h.Level()
	}
	return min(v, maxStat)
}

// Defense is strength plus the equipped armor's value; a ring with
// mod-300 == 3 adds the hero level. Capped at 999.
func (h *Hero) Defense(defs *types.Defs) int {
	v := h.Strength(defs)
	if item, ok := defs.Items[h.Equip[SlotArmor]]; ok && item.Kind == types.ItemArmor {
		v += item.Value
	}
	if mod, ok := h.ringMod(defs); ok && mod == 3 {
		v += h.Level()
	}
	return min(v, maxStat)
}

// AddExp adds experience, clamping at the cap.
func (h *Hero) AddExp(n int) {
	h.Exp += n
	if h.Exp > MaxExp {
		h.Exp = MaxExp
	}
}

// AddGold adds gold, clamping at the cap.
func (h *Hero) AddGold(n int) {
	h.Gold += n
	if h.Gold > MaxGold {
		h.Gold = MaxGold
	}
}

// AddItem adds count units of an item, clamping the stack at 99.
// Counts below 1 are treated as 1.
func (h *Hero) AddItem(id, count int) {
	if count < 1 {
		count = 1
	}
	h.Inventory[id] = min(MaxItemCount, h.Inventory[id]+count)
}

// HasItem returns the held count for an item id (0 when absent).
func (h *Hero) HasItem(id int) int { return h.Inventory[id] }

// ConsumeItem removes count units. Consuming an absent item fails without
// mutating state; a stack that reaches zero is removed from the map.
func (h *Hero) ConsumeItem(id, count int) bool {
	if h.Inventory[id] <= 0 {
		return false
	}
	h.Inventory[id] -= count
	if h.Inventory[id] <= 0 {
		delete(h.Inventory, id)
	}
	return true
}

// UseConsumable applies a consumable's effect and spends one unit.
// Returns ok=false (no effect, no mutation) when the item is not held.
func (h *Hero) UseConsumable(id int, defs *types.Defs) (string, bool) {
	item, ok := defs.Items[id]
	if !ok || !h.ConsumeItem(id, 1) {
		return "", false
	}
	maxHP, maxMP := h.MaxHP(), h.MaxMP()
	switch id {
	case 1, 4: // healing potions
		h.HP = min(maxHP, h.HP+item.Value)
	case 2: // magic vial
		h.MP = min(maxMP, h.MP+item.Value)
	case 3: // rainbow oil
		h.Power++
	case 5: // elixir
		h.HP = maxHP
		h.MP = maxMP
	}
	return fmt.Sprintf("%s uses %s.", h.Name, item.Name), true
}

// SlotFor maps an equippable item id to its slot name ("" for others).
func SlotFor(id int, defs *types.Defs) string {
	switch defs.Items[id].Kind {
	case types.ItemSword:
		return SlotSword
	case types.ItemArmor:
		return SlotArmor
	case types.ItemRing:
		return SlotRing
	default:
		return ""
	}
}

// EquipItem moves one unit of id from inventory into its slot, returning any
// previous occupant to inventory. The operation is all-or-nothing: when the
// bumped occupant cannot fit back (stack already at 99) nothing changes.
func (h *Hero) EquipItem(id int, defs *types.Defs) error {
	slot := SlotFor(id, defs)
	if slot == "" || h.HasItem(id) <= 0 {
		return ErrNotOwned
	}
	prev := h.Equip[slot]
	if prev == id {
		return ErrAlreadyEquipped
	}
	if prev != 0 && h.HasItem(prev) >= MaxItemCount {
		return ErrInventoryFull
	}
	h.ConsumeItem(id, 1)
	if prev != 0 {
		h.AddItem(prev, 1)
	}
	h.Equip[slot] = id
	return nil
}

// UnequipSlot empties a slot, returning the item to inventory.
// Fails atomically when the stack is already full.
func (h *Hero) UnequipSlot(slot string) error {
	id := h.Equip[slot]
	if id == 0 {
		return ErrSlotEmpty
	}
	if h.HasItem(id) >= MaxItemCount {
		return ErrInventoryFull
	}
	h.AddItem(id, 1)
	h.Equip[slot] = 0
	return nil
}

// LearnSpell records a spell id, keeping the set sorted and duplicate-free.
func (h *Hero) LearnSpell(id int) {
	for _, s := range h.Spells {
		if s == id {
			return
		}
	}
	h.Spells = append(h.Spells, id)
	sort.Ints(h.Spells)
}

// KnowsSpell reports whether a spell id has been learned.
func (h *Hero) KnowsSpell(id int) bool {
	for _, s := range h.Spells {
		if s == id {
			return true
		}
	}
	return false
}

// MoveTo places the hero on a cell and charges the per-step score cost.
func (h *Hero) MoveTo(x, y int) {
	h.X, h.Y = x, y
	h.Score--
	if h.Score < 0 {
		h.Score = 0
	}
}
