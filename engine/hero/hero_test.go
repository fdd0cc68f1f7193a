package hero

import (
	"errors"
	"testing"

	"github.com/nathoo/ringquest/types"
)

func testDefs() *types.Defs {
	return &types.Defs{
		Items: map[int]types.ItemDef{
			1:   {Name: "Potion", Kind: types.ItemConsumable, Value: 20},
			2:   {Name: "Magic Vial", Kind: types.ItemConsumable, Value: 20},
			3:   {Name: "Rainbow Oil", Kind: types.ItemConsumable, Value: 1},
			5:   {Name: "Elixir", Kind: types.ItemConsumable},
			10:  {Name: "Key", Kind: types.ItemSpecial},
			101: {Name: "Short Sword", Kind: types.ItemSword, Value: 2},
			102: {Name: "Sword", Kind: types.ItemSword, Value: 5},
			201: {Name: "Leather Armor", Kind: types.ItemArmor, Value: 2},
			303: {Name: "Titan Ring", Kind: types.ItemRing},
			304: {Name: "Odin Ring", Kind: types.ItemRing},
			305: {Name: "Phoenix Ring", Kind: types.ItemRing},
		},
		Events: map[int]types.EventDef{
			0: {ID: 0, Type: types.EvChangeMap,
				Payload: types.WarpPayload{Map: "overworld", X: 2, Y: 2, Facing: 3}},
		},
	}
}

func newTestHero(t *testing.T) *Hero {
	t.Helper()
	h, err := New(testDefs())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return h
}

func TestLevelCurve(t *testing.T) {
	tests := []struct {
		exp   int
		level int
		next  int
	}{
		{0, 1, 600},
		{599, 1, 1},
		{600, 2, 800},
		{1399, 2, 1},
		{1400, 3, 1000},
		{MaxExp, MaxLevel, 0},
		{MaxExp + 5, MaxLevel, 0},
	}
	for _, tt := range tests {
		h := &Hero{Exp: tt.exp}
		if got := h.Level(); got != tt.level {
			t.Errorf("Level(exp=%d) = %d, want %d", tt.exp, got, tt.level)
		}
		if got := h.NextLevelExp(); got != tt.next {
			t.Errorf("NextLevelExp(exp=%d) = %d, want %d", tt.exp, got, tt.next)
		}
	}
}

func TestLevelMonotonic(t *testing.T) {
	prev := 0
	for exp := 0; exp <= 100_000; exp += 100 {
		h := &Hero{Exp: exp}
		lvl := h.Level()
		if lvl < prev {
			t.Fatalf("level decreased at exp=%d: %d < %d", exp, lvl, prev)
		}
		prev = lvl
	}
}

func TestResourceAndStatFormulas(t *testing.T) {
	h := newTestHero(t)
	defs := testDefs()

	if got := h.MaxHP(); got != 20 {
		t.Errorf("fresh MaxHP = %d, want 20", got)
	}
	if got := h.MaxMP(); got != 10 {
		t.Errorf("fresh MaxMP = %d, want 10", got)
	}
	if got := h.Strength(defs); got != 10 {
		t.Errorf("fresh Strength = %d, want 10", got)
	}

	h.Exp = 600 // level 2
	h.MultHP, h.MultMP, h.MultStr = 1, 2, 3
	if got := h.MaxHP(); got != 20+4+8 {
		t.Errorf("MaxHP = %d, want %d", got, 20+4+8)
	}
	if got := h.MaxMP(); got != 10+2+16 {
		t.Errorf("MaxMP = %d, want %d", got, 10+2+16)
	}
	if got := h.Strength(defs); got != 10+1+6 {
		t.Errorf("Strength = %d, want %d", got, 10+1+6)
	}
}

func TestStatCaps(t *testing.T) {
	h := newTestHero(t)
	h.Exp = MaxExp
	h.MultHP, h.MultMP, h.MultStr = 5000, 5000, 5000
	if got := h.MaxHP(); got != 9999 {
		t.Errorf("MaxHP cap = %d, want 9999", got)
	}
	if got := h.MaxMP(); got != 9999 {
		t.Errorf("MaxMP cap = %d, want 9999", got)
	}
	if got := h.Strength(testDefs()); got != 999 {
		t.Errorf("Strength cap = %d, want 999", got)
	}
}

func TestRingStatBonuses(t *testing.T) {
	defs := testDefs()
	h := newTestHero(t)
	h.Exp = 1400 // level 3

	base := h.Strength(defs)

	// mod 5: strength bonus cascades into attack and defense.
	h.Equip[SlotRing] = 305
	if got := h.Strength(defs); got != base+3 {
		t.Errorf("Phoenix Strength = %d, want %d", got, base+3)
	}

	// mod 4: attack only.
	h.Equip[SlotRing] = 304
	if got, want := h.Attack(defs), base+3; got != want {
		t.Errorf("Odin Attack = %d, want %d", got, want)
	}
	if got := h.Defense(defs); got != base {
		t.Errorf("Odin Defense = %d, want %d", got, base)
	}

	// mod 3: defense only.
	h.Equip[SlotRing] = 303
	if got, want := h.Defense(defs), base+3; got != want {
		t.Errorf("Titan Defense = %d, want %d", got, want)
	}
	if got := h.Attack(defs); got != base {
		t.Errorf("Titan Attack = %d, want %d", got, base)
	}
}

func TestEquipmentValues(t *testing.T) {
	defs := testDefs()
	h := newTestHero(t)
	h.Equip[SlotSword] = 102
	h.Equip[SlotArmor] = 201

	str := h.Strength(defs)
	if got := h.Attack(defs); got != str+5 {
		t.Errorf("Attack = %d, want %d", got, str+5)
	}
	if got := h.Defense(defs); got != str+2 {
		t.Errorf("Defense = %d, want %d", got, str+2)
	}
}

func TestAddCaps(t *testing.T) {
	h := newTestHero(t)
	h.AddExp(MaxExp + 1000)
	if h.Exp != MaxExp {
		t.Errorf("Exp = %d, want cap %d", h.Exp, MaxExp)
	}
	h.AddGold(MaxGold + 1000)
	if h.Gold != MaxGold {
		t.Errorf("Gold = %d, want cap %d", h.Gold, MaxGold)
	}
	h.AddItem(1, 200)
	if h.HasItem(1) != MaxItemCount {
		t.Errorf("item count = %d, want cap %d", h.HasItem(1), MaxItemCount)
	}
}

func TestConsumeItem(t *testing.T) {
	h := newTestHero(t)
	if h.ConsumeItem(1, 1) {
		t.Error("consuming an absent item should fail")
	}
	h.AddItem(1, 2)
	if !h.ConsumeItem(1, 1) || h.HasItem(1) != 1 {
		t.Errorf("after consume: count = %d, want 1", h.HasItem(1))
	}
	h.ConsumeItem(1, 1)
	if _, present := h.Inventory[1]; present {
		t.Error("empty stack should be removed from the map")
	}
}

func TestEquipItem_Atomic(t *testing.T) {
	defs := testDefs()
	h := newTestHero(t)

	if err := h.EquipItem(101, defs); !errors.Is(err, ErrNotOwned) {
		t.Fatalf("equip unowned = %v, want ErrNotOwned", err)
	}

	h.AddItem(101, 2)
	if err := h.EquipItem(101, defs); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if h.Equip[SlotSword] != 101 || h.HasItem(101) != 1 {
		t.Fatalf("after equip: slot=%d count=%d", h.Equip[SlotSword], h.HasItem(101))
	}
	if err := h.EquipItem(101, defs); !errors.Is(err, ErrAlreadyEquipped) {
		t.Fatalf("re-equip = %v, want ErrAlreadyEquipped", err)
	}

	// Swapping must fail atomically when the bumped occupant cannot return.
	h.AddItem(102, 1)
	h.Inventory[101] = MaxItemCount
	if err := h.EquipItem(102, defs); !errors.Is(err, ErrInventoryFull) {
		t.Fatalf("swap with full stack = %v, want ErrInventoryFull", err)
	}
	if h.Equip[SlotSword] != 101 || h.HasItem(102) != 1 || h.HasItem(101) != MaxItemCount {
		t.Error("failed swap must leave all state unchanged")
	}
}

func TestEquipItem_Swap(t *testing.T) {
	defs := testDefs()
	h := newTestHero(t)
	h.AddItem(101, 1)
	h.AddItem(102, 1)
	if err := h.EquipItem(101, defs); err != nil {
		t.Fatal(err)
	}
	if err := h.EquipItem(102, defs); err != nil {
		t.Fatal(err)
	}
	if h.Equip[SlotSword] != 102 || h.HasItem(101) != 1 || h.HasItem(102) != 0 {
		t.Errorf("swap: slot=%d, old count=%d", h.Equip[SlotSword], h.HasItem(101))
	}
}

func TestUnequipSlot(t *testing.T) {
	h := newTestHero(t)
	if err := h.UnequipSlot(SlotSword); !errors.Is(err, ErrSlotEmpty) {
		t.Fatalf("unequip empty = %v, want ErrSlotEmpty", err)
	}

	h.Equip[SlotSword] = 101
	h.Inventory[101] = MaxItemCount
	if err := h.UnequipSlot(SlotSword); !errors.Is(err, ErrInventoryFull) {
		t.Fatalf("unequip into full stack = %v, want ErrInventoryFull", err)
	}
	if h.Equip[SlotSword] != 101 {
		t.Error("failed unequip must keep the slot")
	}

	h.Inventory[101] = 1
	if err := h.UnequipSlot(SlotSword); err != nil {
		t.Fatal(err)
	}
	if h.Equip[SlotSword] != 0 || h.HasItem(101) != 2 {
		t.Errorf("after unequip: slot=%d count=%d", h.Equip[SlotSword], h.HasItem(101))
	}
}

func TestUseConsumable(t *testing.T) {
	defs := testDefs()
	h := newTestHero(t)
	h.HP, h.MP = 1, 1

	if _, ok := h.UseConsumable(1, defs); ok {
		t.Error("using an absent consumable should fail")
	}

	h.AddItem(1, 1)
	if _, ok := h.UseConsumable(1, defs); !ok || h.HP != 20 {
		t.Errorf("potion: HP = %d, want 20 (capped)", h.HP)
	}

	h.AddItem(3, 1)
	h.UseConsumable(3, defs)
	if h.Power != 1 {
		t.Errorf("oil: Power = %d, want 1", h.Power)
	}

	h.HP, h.MP = 1, 1
	h.AddItem(5, 1)
	h.UseConsumable(5, defs)
	if h.HP != h.MaxHP() || h.MP != h.MaxMP() {
		t.Errorf("elixir: HP=%d MP=%d, want full", h.HP, h.MP)
	}
}

func TestLearnSpell(t *testing.T) {
	h := newTestHero(t)
	h.LearnSpell(5)
	h.LearnSpell(1)
	h.LearnSpell(5)
	if len(h.Spells) != 2 || h.Spells[0] != 1 || h.Spells[1] != 5 {
		t.Errorf("Spells = %v, want [1 5]", h.Spells)
	}
	if !h.KnowsSpell(1) || h.KnowsSpell(2) {
		t.Error("KnowsSpell mismatch")
	}
}

func TestMoveToScoreDrain(t *testing.T) {
	h := newTestHero(t)
	h.Score = 1
	h.MoveTo(3, 3)
	h.MoveTo(4, 3)
	if h.Score != 0 {
		t.Errorf("Score = %d, want floor 0", h.Score)
	}
	if h.X != 4 || h.Y != 3 {
		t.Errorf("position = (%d,%d), want (4,3)", h.X, h.Y)
	}
}

func TestReset(t *testing.T) {
	defs := testDefs()
	h := newTestHero(t)
	h.Gold = 500
	h.AddItem(1, 3)
	if err := h.Reset(defs); err != nil {
		t.Fatal(err)
	}
	if h.Gold != 0 || len(h.Inventory) != 0 || h.Score != 10000 {
		t.Errorf("Reset left state: gold=%d inv=%v score=%d", h.Gold, h.Inventory, h.Score)
	}
	if h.MapName != "overworld" || h.X != 2 || h.Y != 2 || h.Facing != 3 {
		t.Errorf("start position = %s (%d,%d) facing %d", h.MapName, h.X, h.Y, h.Facing)
	}
}
