package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// rawDef holds one catalog entry before compilation.
type rawDef struct {
	id    int
	table *lua.LTable
}

// registerAPI registers the catalog constructors as Lua globals. Each is
// curried: Item(6) returns a function that takes the attribute table, so
// catalog files read as `Item(6) { name = "...", ... }`.
func registerAPI(L *lua.LState, coll *collector) {
	curried := func(sink *[]rawDef) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			id := L.CheckInt(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				tbl := L.CheckTable(1)
				*sink = append(*sink, rawDef{id: id, table: tbl})
				return 0
			}))
			return 1
		})
	}

	L.SetGlobal("Item", curried(&coll.items))
	L.SetGlobal("Spell", curried(&coll.spells))
	L.SetGlobal("Summon", curried(&coll.summons))
	L.SetGlobal("Enemy", curried(&coll.enemies))
}
