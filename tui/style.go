package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/ringquest/types"
)

// Styles used throughout the TUI.
var (
	styleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")).
			Bold(true)

	styleSelected = lipgloss.NewStyle().
			Foreground(lipgloss.Color("221")).
			Bold(true)

	styleItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleHint = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleHUD = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))

	styleToast = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true)

	stylePromptBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	styleHeroMsg = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	styleMonsterMsg = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleBarFill = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40"))

	styleBarEmpty = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleHero = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// Terrain glyphs by tile id. The terrain heuristic treats tiles above 18 as
// solid, so the map reads correctly even for tiles not listed here.
var tileGlyphs = map[int]string{
	0:  "  ", // void
	1:  ". ", // grass
	2:  ", ", // path
	3:  "~ ", // shallow water
	4:  "_ ", // sand
	8:  "= ", // carpet
	19: "# ", // wall
	20: "^ ", // mountain
	21: "≈ ", // deep water
	22: "? ", // item box, closed
	23: "- ", // item box, opened
}

// Object glyphs drawn over the terrain.
var objectGlyphs = map[int]string{
	1:  "* ", // decoration
	11: "m ", // tile monster
	41: "M ", // tile monster, large
	44: "@ ", // NPC
}

func cellGlyph(c types.Cell) string {
	if c.Object > 1 && c.Object != 44 {
		if g, ok := objectGlyphs[c.Object]; ok {
			return g
		}
		return "o "
	}
	if g, ok := objectGlyphs[c.Object]; ok {
		return g
	}
	if g, ok := tileGlyphs[c.Tile]; ok {
		return g
	}
	if c.Tile <= 18 {
		return ". "
	}
	return "# "
}

// facingGlyph is the hero marker per facing direction.
func facingGlyph(facing int) string {
	switch facing {
	case 0:
		return "▲ "
	case 1:
		return "◀ "
	case 2:
		return "▶ "
	default:
		return "▼ "
	}
}

// percentBar renders a fixed-width text gauge.
func percentBar(width, value, maxv int) string {
	if width < 2 {
		width = 2
	}
	if maxv <= 0 {
		return strings.Repeat(" ", width)
	}
	if value < 0 {
		value = 0
	}
	if value > maxv {
		value = maxv
	}
	fill := width * value / maxv
	return styleBarFill.Render(strings.Repeat("█", fill)) +
		styleBarEmpty.Render(strings.Repeat("░", width-fill))
}
