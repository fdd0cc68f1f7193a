// Package battle implements the turn-based battle resolver: strict
// player → action → monster alternation, the damage formulas, and win/lose
// detection. The resolver owns no rendering; the UI drives it and displays
// the returned messages.
package battle

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/nathoo/ringquest/engine/hero"
	"github.com/nathoo/ringquest/engine/rng"
	"github.com/nathoo/ringquest/types"
)

// MaxDamage caps any single hit.
const MaxDamage = 999

const fleePenalty = 200

// Phase is the resolver's state.
type Phase int

const (
	PhasePlayer  Phase = iota // waiting for the player's menu choice
	PhaseAction               // an action is being resolved
	PhaseMonster              // the monster's turn is pending
	PhaseEnd                  // battle decided, holding before returning to map
)

var (
	ErrUnknownMonster = errors.New("unknown monster id")
	ErrNotEnoughMP    = errors.New("not enough MP")
	ErrUnknownSpell   = errors.New("unknown spell id")
)

// Result is the payload handed back to the map when the battle ends.
// Won is false for a loss and for a flee.
type Result struct {
	X, Y int
	Won  bool
	Fled bool
}

// Battle is one running encounter against a single monster.
type Battle struct {
	defs *types.Defs
	hero *hero.Hero
	rng  *rng.RNG

	MonsterID int
	Monster   types.EnemyDef
	HP        int // monster's current hp
	MaxHP     int

	Buffs int // summon buff counter, reset per battle
	Phase Phase

	x, y int // trigger cell, for the post-battle map branch
	won  bool
	fled bool
}

// New starts a battle at the trigger cell (x, y) against monster id.
func New(defs *types.Defs, h *hero.Hero, r *rng.RNG, monsterID, x, y int) (*Battle, error) {
	mon, ok := defs.Enemies[monsterID]
	if !ok {
		return nil, ErrUnknownMonster
	}
	return &Battle{
		defs: defs, hero: h, rng: r,
		MonsterID: monsterID, Monster: mon,
		HP: mon.HP, MaxHP: mon.HP,
		Phase: PhasePlayer,
		x:     x, y: y,
	}, nil
}

// Result returns the end payload. Only meaningful once Phase is PhaseEnd
// (or after Flee).
func (b *Battle) Result() Result {
	return Result{X: b.x, Y: b.y, Won: b.won, Fled: b.fled}
}

// HeroAttack resolves a physical attack against the monster and returns the
// log message. The caller advances the phase via CheckWin.
func (b *Battle) HeroAttack() string {
	h := b.hero
	dmg := h.Attack(b.defs) - b.Monster.Def
	if dmg < 1 {
		dmg = 1
	}

	// Offensive ring bonus, scaled by accumulated summon buffs.
	if mod, ok := h.RingMod(b.defs); ok && (mod == 4 || mod == 5) && b.Buffs > 0 {
		dmg += h.Level() * b.Buffs * b.rng.Roll() / 99
	}

	ext := dmg * b.rng.Roll() / 99
	if ext < 1 {
		ext = 1
	}
	dmg += ext
	if dmg%2 > 0 {
		dmg++
	}

	deadly := ""
	if b.rng.Roll() < 20*(h.Power+1) {
		deadly = " deadly"
		dmg += h.Power * 2
	} else {
		dmg /= 2
	}

	if dmg > MaxDamage {
		dmg = MaxDamage
	}
	b.HP -= dmg
	if b.HP < 0 {
		b.HP = 0
	}
	return fmt.Sprintf("%s%s attacks: deals %d dmg.", h.Name, deadly, dmg)
}

// Cast resolves a spell by id. Id 0 is the summon bound to the equipped
// ring: it spends MP and increments the buff counter instead of dealing
// damage.
func (b *Battle) Cast(spellID int) (string, error) {
	h := b.hero

	if spellID == 0 {
		mod, ok := h.RingMod(b.defs)
		summon, have := b.defs.Summons[mod]
		if !ok || !have {
			return "", ErrUnknownSpell
		}
		if h.MP < summon.MPCost {
			return "", ErrNotEnoughMP
		}
		h.MP -= summon.MPCost
		b.Buffs++
		return fmt.Sprintf("%s cast %s to power up.", h.Name, summon.Name), nil
	}

	spell, ok := b.defs.Spells[spellID]
	if !ok {
		return "", ErrUnknownSpell
	}
	if h.MP < spell.MPCost {
		return "", ErrNotEnoughMP
	}
	h.MP -= spell.MPCost

	base := h.Strength(b.defs) + spell.Power

	// Elemental ring amplifies its own element, scaled by buffs.
	if mod, hasRing := h.RingMod(b.defs); hasRing {
		if (mod == 1 && spell.Kind == "ice") || (mod == 2 && spell.Kind == "fire") {
			base += h.Level() * (1 + b.Buffs)
		}
	}

	res := b.Monster.ResIce
	if spell.Kind == "fire" {
		res = b.Monster.ResFire
	}
	v := float64(base) - float64(b.Monster.Def)*float64(res)/100
	if v < 1 {
		v = 1
	}
	dmg := int(math.Round(v))
	if dmg > MaxDamage {
		dmg = MaxDamage
	}

	b.HP -= dmg
	if b.HP < 0 {
		b.HP = 0
	}
	return fmt.Sprintf("%s cast %s: deals %d dmg.", h.Name, spell.Name, dmg), nil
}

// MonsterAttack mirrors the hero formula with the defensive ring providing
// mitigation instead of an offensive bonus.
func (b *Battle) MonsterAttack() string {
	h := b.hero
	dmg := b.Monster.Atk - h.Defense(b.defs)

	if mod, ok := h.RingMod(b.defs); ok && (mod == 3 || mod == 5) && b.Buffs > 0 {
		dmg -= h.Level() * b.Buffs * b.rng.Roll() / 99
	}
	if dmg < 1 {
		dmg = 1
	}

	ext := dmg * b.rng.Roll() / 99
	if ext < 1 {
		ext = 1
	}
	dmg += ext
	if dmg%2 > 0 {
		dmg++
	}

	deadly := ""
	if b.rng.Roll() < b.Monster.CritChance {
		deadly = " deadly"
	} else {
		dmg /= 2
	}

	if dmg > MaxDamage {
		dmg = MaxDamage
	}
	h.HP -= dmg
	if h.HP < 0 {
		h.HP = 0
	}
	return fmt.Sprintf("%s%s attacks: deals %d dmg.", b.Monster.Name, deadly, dmg)
}

// UseItem spends one consumable through the hero and returns the message.
func (b *Battle) UseItem(id int) (string, bool) {
	return b.hero.UseConsumable(id, b.defs)
}

// Flee ends the battle immediately: the power charge is lost and the score
// penalty applies. Flee always succeeds.
func (b *Battle) Flee() {
	b.hero.Power = 0
	b.scorePenalty()
	b.fled = true
	b.Phase = PhaseEnd
}

// CheckWin transitions to PhaseEnd when the monster is down.
func (b *Battle) CheckWin() bool {
	if b.HP < 1 {
		b.hero.Power = 0
		b.won = true
		b.Phase = PhaseEnd
		return true
	}
	return false
}

// CheckLose transitions to PhaseEnd when the hero is down, applying the
// score penalty.
func (b *Battle) CheckLose() bool {
	if b.hero.HP < 1 {
		b.hero.Power = 0
		b.scorePenalty()
		b.won = false
		b.Phase = PhaseEnd
		return true
	}
	return false
}

func (b *Battle) scorePenalty() {
	b.hero.Score -= fleePenalty
	if b.hero.Score < 0 {
		b.hero.Score = 0
	}
}

// AvailableItems lists the consumables the hero can use right now,
// in ascending id order.
func (b *Battle) AvailableItems() []int {
	var ids []int
	for id, n := range b.hero.Inventory {
		if n > 0 && b.defs.Items[id].Kind == types.ItemConsumable {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// AvailableSpells lists castable spell ids; id 0 (the summon) is appended
// when the equipped ring binds one.
func (b *Battle) AvailableSpells() []int {
	var ids []int
	for _, sid := range b.hero.Spells {
		if _, ok := b.defs.Spells[sid]; ok {
			ids = append(ids, sid)
		}
	}
	if mod, ok := b.hero.RingMod(b.defs); ok {
		if _, have := b.defs.Summons[mod]; have {
			ids = append(ids, 0)
		}
	}
	return ids
}
