package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/ringquest/types"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// compile converts the collected Lua tables into typed catalog entries.
// Duplicate ids within a catalog are an error.
func compile(coll *collector) (*types.Defs, error) {
	defs := &types.Defs{
		Items:   map[int]types.ItemDef{},
		Spells:  map[int]types.SpellDef{},
		Summons: map[int]types.SummonDef{},
		Enemies: map[int]types.EnemyDef{},
	}

	for _, raw := range coll.items {
		if _, dup := defs.Items[raw.id]; dup {
			return nil, fmt.Errorf("duplicate item id %d", raw.id)
		}
		defs.Items[raw.id] = types.ItemDef{
			Name:        getString(raw.table, "name"),
			Kind:        getString(raw.table, "type"),
			Price:       getInt(raw.table, "price"),
			Value:       getInt(raw.table, "value"),
			Description: getString(raw.table, "description"),
		}
	}

	for _, raw := range coll.spells {
		if _, dup := defs.Spells[raw.id]; dup {
			return nil, fmt.Errorf("duplicate spell id %d", raw.id)
		}
		defs.Spells[raw.id] = types.SpellDef{
			Name:        getString(raw.table, "name"),
			Kind:        getString(raw.table, "type"),
			Price:       getInt(raw.table, "price"),
			MPCost:      getInt(raw.table, "mp_cost"),
			Power:       getInt(raw.table, "power"),
			Description: getString(raw.table, "description"),
		}
	}

	for _, raw := range coll.summons {
		if _, dup := defs.Summons[raw.id]; dup {
			return nil, fmt.Errorf("duplicate summon id %d", raw.id)
		}
		defs.Summons[raw.id] = types.SummonDef{
			Name:   getString(raw.table, "name"),
			MPCost: getInt(raw.table, "mp_cost"),
		}
	}

	for _, raw := range coll.enemies {
		if _, dup := defs.Enemies[raw.id]; dup {
			return nil, fmt.Errorf("duplicate enemy id %d", raw.id)
		}
		defs.Enemies[raw.id] = types.EnemyDef{
			Name:       getString(raw.table, "name"),
			HP:         getInt(raw.table, "hp"),
			Atk:        getInt(raw.table, "atk"),
			Def:        getInt(raw.table, "def"),
			ResFire:    getInt(raw.table, "res_fire"),
			ResIce:     getInt(raw.table, "res_ice"),
			CritChance: getInt(raw.table, "crit_chance"),
			Exp:        getInt(raw.table, "exp"),
			Gold:       getInt(raw.table, "gold"),
		}
	}

	return defs, nil
}
