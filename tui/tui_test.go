package tui

import (
	"strings"
	"testing"

	"github.com/nathoo/ringquest/types"
)

func TestPercentBar(t *testing.T) {
	full := percentBar(10, 10, 10)
	if !strings.Contains(full, strings.Repeat("█", 10)) {
		t.Errorf("full bar = %q", full)
	}
	empty := percentBar(10, 0, 10)
	if !strings.Contains(empty, strings.Repeat("░", 10)) {
		t.Errorf("empty bar = %q", empty)
	}
	half := percentBar(10, 5, 10)
	if !strings.Contains(half, "█████░░░░░") {
		t.Errorf("half bar = %q", half)
	}

	// Degenerate inputs must not panic or overflow the width.
	if got := percentBar(10, -5, 10); !strings.Contains(got, strings.Repeat("░", 10)) {
		t.Errorf("negative value bar = %q", got)
	}
	if got := percentBar(10, 50, 10); !strings.Contains(got, strings.Repeat("█", 10)) {
		t.Errorf("overfull bar = %q", got)
	}
	if got := percentBar(10, 5, 0); got != strings.Repeat(" ", 10) {
		t.Errorf("zero max bar = %q", got)
	}
}

func TestCellGlyph(t *testing.T) {
	tests := []struct {
		name string
		cell types.Cell
		want string
	}{
		{"grass", types.Cell{Tile: 1}, ". "},
		{"wall", types.Cell{Tile: 19}, "# "},
		{"item box", types.Cell{Tile: 22}, "? "},
		{"opened box", types.Cell{Tile: 23}, "- "},
		{"npc over wall", types.Cell{Tile: 19, Object: 44}, "@ "},
		{"monster over grass", types.Cell{Tile: 1, Object: 11}, "m "},
		{"unknown solid tile", types.Cell{Tile: 42}, "# "},
		{"unknown ground tile", types.Cell{Tile: 7}, ". "},
		{"unknown object", types.Cell{Tile: 1, Object: 9}, "o "},
	}
	for _, tt := range tests {
		if got := cellGlyph(tt.cell); got != tt.want {
			t.Errorf("%s: cellGlyph(%+v) = %q, want %q", tt.name, tt.cell, got, tt.want)
		}
	}
}

func TestFacingGlyph(t *testing.T) {
	seen := map[string]bool{}
	for facing := 0; facing < 4; facing++ {
		g := facingGlyph(facing)
		if seen[g] {
			t.Errorf("facing %d reuses glyph %q", facing, g)
		}
		seen[g] = true
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, lo, hi, want int }{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%d,%d,%d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestItemName(t *testing.T) {
	defs := &types.Defs{Items: map[int]types.ItemDef{7: {Name: "Blood Stone"}}}
	if got := itemName(defs, 7); got != "Blood Stone" {
		t.Errorf("itemName = %q", got)
	}
	if got := itemName(defs, 99); got != "#99" {
		t.Errorf("unknown itemName = %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"sword", "Sword"},
		{"", ""},
		{"Ring", "Ring"},
	}
	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNameAndCodeValidation(t *testing.T) {
	if err := validName("Sir O'Malley the Bold"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	for _, bad := range []string{"Eric1", "a_b", "héro"} {
		if err := validName(bad); err == nil {
			t.Errorf("validName(%q) should fail", bad)
		}
	}

	if err := validCode("13168"); err != nil {
		t.Errorf("valid code rejected: %v", err)
	}
	for _, bad := range []string{"12a45", " 1234", "12-34"} {
		if err := validCode(bad); err == nil {
			t.Errorf("validCode(%q) should fail", bad)
		}
	}
}
