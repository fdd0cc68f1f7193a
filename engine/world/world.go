// Package world implements the map engine: an immutable per-map template
// grid layered under a session-scoped override store. Effective cell values
// are override-if-present, else template.
package world

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/ringquest/types"
)

// rewardRanges are the event-id ranges the treasure radar reports:
// gold drops, item pickups, rings, and equipment.
var rewardRanges = [][2]int{
	{34, 38},  // gold
	{38, 43},  // items 6–10
	{43, 47},  // rings 1–4
	{47, 55},  // swords and armors
	{55, 57},  // items 1–2
	{96, 97},  // legendary ring
}

// RewardEvent reports whether an event id is a treasure the radar shows.
func RewardEvent(id int) bool {
	for _, r := range rewardRanges {
		if id >= r[0] && id < r[1] {
			return true
		}
	}
	return false
}

// Map is the active session map: a deep copy of a template grid plus a
// reference to the session's override store. Overrides are keyed by
// "name,xx,yy" and encoded "tt:oo:eee" so they round-trip through the save
// file unchanged.
type Map struct {
	defs  *types.Defs
	flags map[string]string

	Name string
	W, H int
	grid [][]types.Cell // column-major: grid[x][y]
}

// New creates a map engine bound to the given definitions and override
// store. Load must be called before any cell query.
func New(defs *types.Defs, flags map[string]string) *Map {
	return &Map{defs: defs, flags: flags}
}

// Load deep-copies the named template grid into the active map. The override
// store is left untouched: overrides persist across map switches and are
// keyed per map name.
func (m *Map) Load(name string) error {
	def, ok := m.defs.Maps[name]
	if !ok {
		return fmt.Errorf("unknown map %q", name)
	}
	m.Name = name
	m.W, m.H = def.W, def.H
	m.grid = make([][]types.Cell, def.W)
	for x := range m.grid {
		m.grid[x] = make([]types.Cell, def.H)
		copy(m.grid[x], def.Grid[x])
	}
	return nil
}

func (m *Map) flagKey(x, y int) string {
	return fmt.Sprintf("%s,%02d,%02d", m.Name, x, y)
}

// CellAt returns the effective cell: the override when one exists for
// (map, x, y), else the template value.
func (m *Map) CellAt(x, y int) types.Cell {
	if enc, ok := m.flags[m.flagKey(x, y)]; ok {
		if c, ok := decodeCell(enc); ok {
			return c
		}
	}
	return m.grid[x][y]
}

// SetOverride writes a permanent cell replacement into the override store.
func (m *Map) SetOverride(x, y int, c types.Cell) {
	m.flags[m.flagKey(x, y)] = encodeCell(c)
}

// SetEventID overrides only the event id, preserving the current template
// tile and object. The change is permanent (override store).
func (m *Map) SetEventID(x, y, eventID int) {
	c := m.grid[x][y]
	c.Event = eventID
	m.SetOverride(x, y, c)
}

// SetEventIDTemp mutates the in-memory grid directly, bypassing the override
// store. The change does not survive a map reload — used for defeated
// overworld monsters that should reappear on revisit.
func (m *Map) SetEventIDTemp(x, y, eventID int) {
	m.grid[x][y].Event = eventID
}

// IsWalkable applies the documented precedence: out-of-bounds is never
// walkable; the wall-pass item overrides everything; event semantics beat
// the terrain heuristic; the heuristic falls back to tile/object ids.
func (m *Map) IsWalkable(x, y int, wallPass bool) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	if wallPass {
		return true
	}
	c := m.CellAt(x, y)
	if ev, ok := m.defs.Event(c.Event); ok {
		switch ev.Type {
		case types.EvChangeMap, types.EvUnwalkable, types.EvDoor:
			return false
		case types.EvWalkable, types.EvWalkableButton, types.EvWalkableDialogue:
			return true
		}
	}
	if c.Object == 0 {
		return c.Tile <= 18
	}
	return c.Object <= 1 || c.Object == 44
}

// WindowCell is one visible cell reported to the renderer.
type WindowCell struct {
	X, Y   int
	Cell   types.Cell
	Reward bool // set when the treasure radar flags this cell
}

// Window returns the cells overlapping a cols×rows viewport anchored at
// (camX, camY). With radar set, cells holding reward events are flagged.
func (m *Map) Window(camX, camY, cols, rows int, radar bool) []WindowCell {
	x0, y0 := max(0, camX), max(0, camY)
	x1, y1 := min(m.W, camX+cols), min(m.H, camY+rows)

	out := make([]WindowCell, 0, (x1-x0)*(y1-y0))
	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			c := m.CellAt(x, y)
			out = append(out, WindowCell{
				X: x, Y: y, Cell: c,
				Reward: radar && c.Event > 0 && RewardEvent(c.Event),
			})
		}
	}
	return out
}

func encodeCell(c types.Cell) string {
	return fmt.Sprintf("%02d:%02d:%03d", c.Tile, c.Object, c.Event)
}

func decodeCell(s string) (types.Cell, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return types.Cell{}, false
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return types.Cell{}, false
		}
		vals[i] = v
	}
	return types.Cell{Tile: vals[0], Object: vals[1], Event: vals[2]}, true
}
