// Package loader reads the static game data: Lua catalogs (items, spells,
// summons, enemies), the map and event tables, and the text assets. The Lua
// VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/nathoo/ringquest/types"
)

const (
	mapsFile   = "maps.txt"
	eventsFile = "events.txt"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	items   []rawDef
	spells  []rawDef
	summons []rawDef
	enemies []rawDef
}

// Load reads all game data from dir, compiles it, validates references, and
// returns the immutable Defs. Malformed maps.txt or events.txt is fatal;
// missing text assets are logged and substituted with "".
func Load(dir string, log *zap.Logger) (*types.Defs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory %s: %w", dir, err)
	}

	var luaFiles, textFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch {
		case strings.HasSuffix(e.Name(), ".lua"):
			luaFiles = append(luaFiles, e.Name())
		case strings.HasSuffix(e.Name(), ".txt") &&
			e.Name() != mapsFile && e.Name() != eventsFile:
			textFiles = append(textFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua catalog files found in %s", dir)
	}

	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling catalogs: %w", err)
	}

	mapsData, err := os.ReadFile(filepath.Join(dir, mapsFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", mapsFile, err)
	}
	defs.Maps, err = parseMaps(string(mapsData))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", mapsFile, err)
	}

	eventsData, err := os.ReadFile(filepath.Join(dir, eventsFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", eventsFile, err)
	}
	defs.Events = parseEvents(string(eventsData), log)

	// Text assets: missing or unreadable files degrade to "".
	defs.Texts = map[string]string{}
	for _, f := range textFiles {
		data, err := os.ReadFile(filepath.Join(dir, f))
		if err != nil {
			log.Warn("text asset unreadable, substituting empty",
				zap.String("file", f), zap.Error(err))
			defs.Texts[f] = ""
			continue
		}
		defs.Texts[f] = string(data)
	}

	if err := validate(defs, log); err != nil {
		return nil, err
	}

	log.Info("game data loaded",
		zap.Int("items", len(defs.Items)),
		zap.Int("spells", len(defs.Spells)),
		zap.Int("enemies", len(defs.Enemies)),
		zap.Int("events", len(defs.Events)),
		zap.Int("maps", len(defs.Maps)))
	return defs, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
