package battle

import (
	"errors"
	"testing"

	"github.com/nathoo/ringquest/engine/hero"
	"github.com/nathoo/ringquest/engine/rng"
	"github.com/nathoo/ringquest/types"
)

func testDefs() *types.Defs {
	return &types.Defs{
		Items: map[int]types.ItemDef{
			1:   {Name: "Potion", Kind: types.ItemConsumable, Value: 20},
			10:  {Name: "Key", Kind: types.ItemSpecial},
			305: {Name: "Phoenix Ring", Kind: types.ItemRing},
		},
		Spells: map[int]types.SpellDef{
			1: {Name: "Ice Arrow", Kind: "ice", MPCost: 3, Power: 6},
			4: {Name: "Ice Meteor", Kind: "ice", MPCost: 12, Power: 24},
			5: {Name: "Fire Arrow", Kind: "fire", MPCost: 3, Power: 6},
		},
		Summons: map[int]types.SummonDef{
			5: {Name: "Summon Phoenix", MPCost: 5},
		},
		Enemies: map[int]types.EnemyDef{
			1: {Name: "Bat", HP: 12, Atk: 8, Def: 8, ResFire: 100, ResIce: 100,
				CritChance: 20, Exp: 50, Gold: 50},
			2: {Name: "Golem", HP: 100000, Atk: 8, Def: 999, ResFire: 100, ResIce: 100,
				CritChance: 20},
		},
		Events: map[int]types.EventDef{
			0: {ID: 0, Type: types.EvChangeMap,
				Payload: types.WarpPayload{Map: "m", X: 1, Y: 1, Facing: 3}},
		},
	}
}

func newBattle(t *testing.T, monsterID int, seed int64) (*Battle, *hero.Hero) {
	t.Helper()
	defs := testDefs()
	h, err := hero.New(defs)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(defs, h, rng.New(seed), monsterID, 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	return b, h
}

func TestNewUnknownMonster(t *testing.T) {
	defs := testDefs()
	h, _ := hero.New(defs)
	if _, err := New(defs, h, rng.New(1), 99, 0, 0); !errors.Is(err, ErrUnknownMonster) {
		t.Fatalf("err = %v, want ErrUnknownMonster", err)
	}
}

func TestHeroAttack_MatchesFormula(t *testing.T) {
	const seed = 42
	b, h := newBattle(t, 1, seed)

	before := b.HP
	b.HeroAttack()

	// Replay the formula with a twin RNG: no ring, so the rolls are the
	// extension roll followed by the crit roll.
	twin := rng.New(seed)
	dmg := h.Attack(testDefs()) - b.Monster.Def
	if dmg < 1 {
		dmg = 1
	}
	ext := dmg * twin.Roll() / 99
	if ext < 1 {
		ext = 1
	}
	dmg += ext
	if dmg%2 > 0 {
		dmg++
	}
	if twin.Roll() < 20*(h.Power+1) {
		dmg += h.Power * 2
	} else {
		dmg /= 2
	}
	if dmg > MaxDamage {
		dmg = MaxDamage
	}
	if before-b.HP != dmg {
		t.Errorf("damage = %d, want %d", before-b.HP, dmg)
	}
}

func TestHeroAttack_FloorAgainstHighDefense(t *testing.T) {
	b, _ := newBattle(t, 2, 7)
	for i := 0; i < 200; i++ {
		before := b.HP
		b.HeroAttack()
		dealt := before - b.HP
		if dealt < 1 || dealt > MaxDamage {
			t.Fatalf("attack %d dealt %d, want 1..%d", i, dealt, MaxDamage)
		}
	}
}

func TestMonsterAttack_BoundsAndFloor(t *testing.T) {
	b, h := newBattle(t, 1, 3)
	h.HP = 9999
	for i := 0; i < 200 && h.HP > 0; i++ {
		before := h.HP
		b.MonsterAttack()
		dealt := before - h.HP
		if dealt < 1 || dealt > MaxDamage {
			t.Fatalf("attack %d dealt %d, want 1..%d", i, dealt, MaxDamage)
		}
	}
	if h.HP < 0 {
		t.Fatalf("hero HP went negative: %d", h.HP)
	}
}

func TestDeterministicStreams(t *testing.T) {
	b1, _ := newBattle(t, 1, 99)
	b2, _ := newBattle(t, 1, 99)
	for i := 0; i < 10; i++ {
		if m1, m2 := b1.HeroAttack(), b2.HeroAttack(); m1 != m2 {
			t.Fatalf("attack %d differs: %q vs %q", i, m1, m2)
		}
		b1.HP, b2.HP = 50, 50 // keep the monster alive
	}
}

func TestCast_Damage(t *testing.T) {
	b, h := newBattle(t, 1, 5)

	// Level 1, STR 10, Ice Arrow power 6, Bat DEF 8 at 100% resistance:
	// 16 - 8 = 8 damage, 3 MP spent.
	before := b.HP
	if _, err := b.Cast(1); err != nil {
		t.Fatal(err)
	}
	if got := before - b.HP; got != 8 {
		t.Errorf("spell damage = %d, want 8", got)
	}
	if h.MP != 7 {
		t.Errorf("MP = %d, want 7", h.MP)
	}
}

func TestCast_MPGate(t *testing.T) {
	b, h := newBattle(t, 1, 5)
	if _, err := b.Cast(4); !errors.Is(err, ErrNotEnoughMP) {
		t.Fatalf("err = %v, want ErrNotEnoughMP", err)
	}
	if h.MP != 10 || b.HP != 12 {
		t.Error("failed cast must not mutate state")
	}
}

func TestCast_UnknownSpell(t *testing.T) {
	b, _ := newBattle(t, 1, 5)
	if _, err := b.Cast(77); !errors.Is(err, ErrUnknownSpell) {
		t.Fatalf("err = %v, want ErrUnknownSpell", err)
	}
}

func TestSummon(t *testing.T) {
	b, h := newBattle(t, 1, 5)

	// No ring equipped: the summon is unavailable.
	if _, err := b.Cast(0); !errors.Is(err, ErrUnknownSpell) {
		t.Fatalf("bare-handed summon = %v, want ErrUnknownSpell", err)
	}

	h.Equip[hero.SlotRing] = 305
	before := b.HP
	if _, err := b.Cast(0); err != nil {
		t.Fatal(err)
	}
	if b.Buffs != 1 {
		t.Errorf("Buffs = %d, want 1", b.Buffs)
	}
	if h.MP != 5 {
		t.Errorf("MP = %d, want 5", h.MP)
	}
	if b.HP != before {
		t.Error("the summon must not damage the monster")
	}
}

func TestFlee(t *testing.T) {
	b, h := newBattle(t, 1, 5)
	h.Power = 2
	h.Score = 10000
	b.Flee()

	if b.Phase != PhaseEnd {
		t.Errorf("phase = %v, want PhaseEnd", b.Phase)
	}
	res := b.Result()
	if res.Won || !res.Fled {
		t.Errorf("result = %+v, want fled loss", res)
	}
	if h.Score != 9800 {
		t.Errorf("score = %d, want 9800", h.Score)
	}
	if h.Power != 0 {
		t.Errorf("power = %d, want 0", h.Power)
	}
}

func TestCheckWin(t *testing.T) {
	b, h := newBattle(t, 1, 5)
	h.Power = 1
	if b.CheckWin() {
		t.Fatal("win reported with the monster standing")
	}
	b.HP = 0
	if !b.CheckWin() {
		t.Fatal("win not reported")
	}
	res := b.Result()
	if !res.Won || res.X != 3 || res.Y != 4 {
		t.Errorf("result = %+v, want win at (3,4)", res)
	}
	if h.Power != 0 {
		t.Error("power must reset when the battle ends")
	}
}

func TestCheckLose(t *testing.T) {
	b, h := newBattle(t, 1, 5)
	h.Score = 100
	if b.CheckLose() {
		t.Fatal("loss reported with the hero standing")
	}
	h.HP = 0
	if !b.CheckLose() {
		t.Fatal("loss not reported")
	}
	if b.Result().Won {
		t.Error("loss must not report a win")
	}
	if h.Score != 0 {
		t.Errorf("score = %d, want floor 0", h.Score)
	}
}

func TestAvailableLists(t *testing.T) {
	b, h := newBattle(t, 1, 5)

	if got := b.AvailableItems(); len(got) != 0 {
		t.Errorf("items = %v, want none", got)
	}
	h.AddItem(1, 2)
	h.AddItem(10, 1) // specials never show in battle
	if got := b.AvailableItems(); len(got) != 1 || got[0] != 1 {
		t.Errorf("items = %v, want [1]", got)
	}

	h.LearnSpell(5)
	h.LearnSpell(1)
	if got := b.AvailableSpells(); len(got) != 2 || got[0] != 1 || got[1] != 5 {
		t.Errorf("spells = %v, want [1 5]", got)
	}
	h.Equip[hero.SlotRing] = 305
	got := b.AvailableSpells()
	if len(got) != 3 || got[2] != 0 {
		t.Errorf("spells with ring = %v, want summon appended", got)
	}
}
