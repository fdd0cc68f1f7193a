// Package bonus implements the score-tier bonus codes: the end-screen code
// selection and the one-shot reward bundles a code redeems into.
package bonus

import "github.com/nathoo/ringquest/engine/hero"

// tier maps a minimum score (exclusive) to the code shown on the end screen.
var tiers = []struct {
	above int
	code  int
}{
	{6000, 95009},
	{5000, 88268},
	{4000, 78751},
	{3000, 61021},
	{2500, 50578},
	{2000, 45620},
	{1500, 33086},
	{1000, 29591},
}

// CodeForScore returns the bonus code earned for a final score.
func CodeForScore(score int) int {
	for _, t := range tiers {
		if score > t.above {
			return t.code
		}
	}
	return 11911
}

type grant struct {
	id    int
	count int
}

type bundle struct {
	exp     int
	gold    int
	multHP  int
	multMP  int
	multStr int
	items   []grant
}

// bundles holds the reward for each known code. 13168 is the developer code.
var bundles = map[int]bundle{
	13168: {exp: 1_000_000, gold: 1_000_000, multHP: 1250, multMP: 1250, multStr: 1250,
		items: []grant{{hero.ItemKey, 5}, {hero.ItemRadar, 1}, {hero.ItemCloak, 1}}},
	11911: {gold: 1000},
	29591: {gold: 1000, multStr: 1},
	33086: {gold: 1000, multStr: 1, items: []grant{{hero.ItemKey, 1}}},
	45620: {gold: 1000, multHP: 1, multStr: 1, items: []grant{{hero.ItemKey, 1}}},
	50578: {gold: 1000, multHP: 1, multStr: 2, items: []grant{{hero.ItemKey, 1}}},
	61021: {gold: 1000, multHP: 1, multMP: 1, multStr: 2, items: []grant{{hero.ItemKey, 1}}},
	78751: {gold: 10000, multHP: 1, multMP: 1, multStr: 2, items: []grant{{hero.ItemKey, 1}}},
	88268: {exp: 10000, gold: 10000, multHP: 1, multMP: 1, multStr: 2, items: []grant{{hero.ItemKey, 1}}},
	95009: {exp: 10000, gold: 10000, multHP: 1, multMP: 1, multStr: 2,
		items: []grant{{hero.ItemKey, 1}, {hero.ItemRadar, 1}}},
}

// Valid reports whether a code is in the known set.
func Valid(code int) bool {
	_, ok := bundles[code]
	return ok
}

// Apply grants a code's bundle to the hero and flags the code as redeemed.
// Unknown codes, and heroes that already redeemed a code, return false
// without mutating state.
func Apply(h *hero.Hero, code int) bool {
	b, ok := bundles[code]
	if !ok || h.BonusCode != 0 {
		return false
	}
	if b.exp > 0 {
		h.AddExp(b.exp)
	}
	if b.gold > 0 {
		h.AddGold(b.gold)
	}
	h.MultHP += b.multHP
	h.MultMP += b.multMP
	h.MultStr += b.multStr
	for _, g := range b.items {
		h.AddItem(g.id, g.count)
	}
	h.BonusCode = code
	return true
}
