package bonus

import (
	"testing"

	"github.com/nathoo/ringquest/engine/hero"
)

func TestCodeForScore(t *testing.T) {
	tests := []struct {
		score int
		code  int
	}{
		{10000, 95009},
		{6001, 95009},
		{6000, 88268},
		{5500, 88268},
		{4200, 78751},
		{3001, 61021},
		{2600, 50578},
		{2400, 45620},
		{1600, 33086},
		{1001, 29591},
		{1000, 11911},
		{0, 11911},
	}
	for _, tt := range tests {
		if got := CodeForScore(tt.score); got != tt.code {
			t.Errorf("CodeForScore(%d) = %d, want %d", tt.score, got, tt.code)
		}
	}
}

func TestCodeForScoreAlwaysValid(t *testing.T) {
	for score := 0; score <= 10000; score += 250 {
		if !Valid(CodeForScore(score)) {
			t.Fatalf("score %d produced unknown code %d", score, CodeForScore(score))
		}
	}
}

func TestValid(t *testing.T) {
	if !Valid(11911) || !Valid(13168) {
		t.Error("known codes reported invalid")
	}
	if Valid(12345) || Valid(0) {
		t.Error("unknown codes reported valid")
	}
}

func TestApply(t *testing.T) {
	h := &hero.Hero{Inventory: map[int]int{}}
	if Apply(h, 99999) {
		t.Fatal("unknown code applied")
	}
	if h.BonusCode != 0 {
		t.Fatal("failed apply must not mark the code redeemed")
	}

	if !Apply(h, 11911) {
		t.Fatal("known code rejected")
	}
	if h.Gold != 1000 || h.BonusCode != 11911 {
		t.Errorf("gold=%d code=%d, want 1000/11911", h.Gold, h.BonusCode)
	}
}

func TestApplyIsOneShot(t *testing.T) {
	h := &hero.Hero{Inventory: map[int]int{}}
	if !Apply(h, 11911) {
		t.Fatal("first code rejected")
	}
	if Apply(h, 29591) {
		t.Fatal("second code applied after redemption")
	}
	if h.Gold != 1000 || h.MultStr != 0 {
		t.Errorf("gold=%d multStr=%d, second bundle leaked in", h.Gold, h.MultStr)
	}
	if h.BonusCode != 11911 {
		t.Errorf("code = %d, want the first redemption kept", h.BonusCode)
	}
	// Even the same code does not stack.
	if Apply(h, 11911) {
		t.Fatal("re-applying the redeemed code must fail")
	}
	if h.Gold != 1000 {
		t.Errorf("gold = %d after re-apply, want 1000", h.Gold)
	}
}

func TestApply_TopTier(t *testing.T) {
	h := &hero.Hero{Inventory: map[int]int{}}
	Apply(h, 95009)
	if h.Exp != 10000 || h.Gold != 10000 {
		t.Errorf("exp=%d gold=%d, want 10000/10000", h.Exp, h.Gold)
	}
	if h.MultHP != 1 || h.MultMP != 1 || h.MultStr != 2 {
		t.Errorf("mults = %d/%d/%d, want 1/1/2", h.MultHP, h.MultMP, h.MultStr)
	}
	if h.HasItem(hero.ItemKey) != 1 || h.HasItem(hero.ItemRadar) != 1 {
		t.Error("top-tier bundle must grant a key and the radar")
	}
}
