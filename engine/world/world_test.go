package world

import (
	"testing"

	"github.com/nathoo/ringquest/types"
)

// testDefs builds a 5x4 map exercising every walkability rule:
//
//	y=0: wall row, except a warp at (2,0)
//	y=1: open ground with a sign object at (3,1)
//	y=2: wall tile carrying a walkable event at (1,2), an NPC at (3,2)
//	y=3: open ground, item box at (4,3)
func testDefs() *types.Defs {
	const w, h = 5, 4
	grid := make([][]types.Cell, w)
	for x := range grid {
		grid[x] = make([]types.Cell, h)
		for y := range grid[x] {
			grid[x][y] = types.Cell{Tile: 1}
		}
		grid[x][0] = types.Cell{Tile: 19}
	}
	grid[2][0] = types.Cell{Tile: 19, Event: 10} // warp
	grid[3][1] = types.Cell{Tile: 1, Object: 21} // sign
	grid[1][2] = types.Cell{Tile: 19, Event: 1}  // walkable event beats tile
	grid[3][2] = types.Cell{Tile: 1, Object: 44} // NPC
	grid[4][3] = types.Cell{Tile: 22, Event: 40} // item box

	return &types.Defs{
		Maps: map[string]types.MapDef{
			"m": {Name: "m", W: w, H: h, Grid: grid},
		},
		Events: map[int]types.EventDef{
			1:  {ID: 1, Type: types.EvWalkable},
			10: {ID: 10, Type: types.EvChangeMap},
			40: {ID: 40, Type: types.EvItem, Payload: types.ItemPayload{ItemID: 8}},
		},
	}
}

func loadTestMap(t *testing.T, flags map[string]string) *Map {
	t.Helper()
	m := New(testDefs(), flags)
	if err := m.Load("m"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func TestLoadUnknownMap(t *testing.T) {
	m := New(testDefs(), map[string]string{})
	if err := m.Load("nowhere"); err == nil {
		t.Fatal("loading an unknown map must fail")
	}
}

func TestIsWalkable(t *testing.T) {
	m := loadTestMap(t, map[string]string{})

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"out of bounds negative", -1, 0, false},
		{"out of bounds x", 5, 1, false},
		{"out of bounds y", 1, 4, false},
		{"plain ground", 1, 1, true},
		{"wall tile", 1, 0, false},
		{"warp cell", 2, 0, false}, // change_map events are not walkable
		{"walkable event on wall tile", 1, 2, true},
		{"sign object", 3, 1, false},
		{"npc object", 3, 2, true},
		{"item box tile", 4, 3, false}, // tile 22 > 18
	}
	for _, tt := range tests {
		if got := m.IsWalkable(tt.x, tt.y, false); got != tt.want {
			t.Errorf("%s: IsWalkable(%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestWallPassOverridesEverythingButBounds(t *testing.T) {
	m := loadTestMap(t, map[string]string{})
	if !m.IsWalkable(1, 0, true) {
		t.Error("wall-pass must cross wall tiles")
	}
	if !m.IsWalkable(2, 0, true) {
		t.Error("wall-pass must cross warp cells")
	}
	if m.IsWalkable(-1, 0, true) {
		t.Error("wall-pass must not leave the map")
	}
}

func TestOverridePrecedenceAndEncoding(t *testing.T) {
	flags := map[string]string{}
	m := loadTestMap(t, flags)

	m.SetOverride(4, 3, types.Cell{Tile: 23})
	if got := m.CellAt(4, 3); got != (types.Cell{Tile: 23}) {
		t.Errorf("CellAt after override = %+v", got)
	}

	// The store keys and values are the wire format the save file carries.
	if got, ok := flags["m,04,03"]; !ok || got != "23:00:000" {
		t.Errorf("flag entry = %q (present=%v), want \"23:00:000\"", got, ok)
	}
}

func TestOverridesSurviveReload(t *testing.T) {
	flags := map[string]string{}
	m := loadTestMap(t, flags)
	m.SetEventID(1, 1, 97)

	if err := m.Load("m"); err != nil {
		t.Fatal(err)
	}
	if got := m.CellAt(1, 1).Event; got != 97 {
		t.Errorf("override lost on reload: event = %d, want 97", got)
	}
}

func TestSetEventIDTempDoesNotPersist(t *testing.T) {
	flags := map[string]string{}
	m := loadTestMap(t, flags)
	m.SetEventIDTemp(4, 3, 0)
	if got := m.CellAt(4, 3).Event; got != 0 {
		t.Fatalf("temp change not visible: event = %d", got)
	}
	if len(flags) != 0 {
		t.Fatal("temp change leaked into the override store")
	}

	if err := m.Load("m"); err != nil {
		t.Fatal(err)
	}
	if got := m.CellAt(4, 3).Event; got != 40 {
		t.Errorf("temp change survived reload: event = %d, want 40", got)
	}
}

func TestCorruptOverrideFallsBack(t *testing.T) {
	flags := map[string]string{"m,01,01": "not-a-cell"}
	m := loadTestMap(t, flags)
	if got := m.CellAt(1, 1); got != (types.Cell{Tile: 1}) {
		t.Errorf("corrupt override should fall back to template, got %+v", got)
	}
}

func TestRewardEvent(t *testing.T) {
	for _, id := range []int{34, 38, 43, 47, 55, 96} {
		if !RewardEvent(id) {
			t.Errorf("event %d should be a reward", id)
		}
	}
	for _, id := range []int{0, 33, 57, 95, 97, 139} {
		if RewardEvent(id) {
			t.Errorf("event %d should not be a reward", id)
		}
	}
}

func TestWindow(t *testing.T) {
	m := loadTestMap(t, map[string]string{})

	cells := m.Window(0, 0, 100, 100, false)
	if len(cells) != 5*4 {
		t.Fatalf("full window = %d cells, want 20", len(cells))
	}

	cells = m.Window(3, 2, 2, 2, true)
	if len(cells) != 4 {
		t.Fatalf("clipped window = %d cells, want 4", len(cells))
	}
	found := false
	for _, c := range cells {
		if c.X == 4 && c.Y == 3 {
			found = true
			if !c.Reward {
				t.Error("radar should flag the item box")
			}
		}
	}
	if !found {
		t.Fatal("window missed the item box cell")
	}
}
