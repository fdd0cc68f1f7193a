package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/ringquest/types"
)

// sentinelCell replaces cells that fail to parse: an obviously-wrong marker
// tile with no event attached.
var sentinelCell = types.Cell{Tile: 99, Object: 99, Event: 0}

// parseMaps reads the map table: blank-line-separated blocks, each a name
// line, a "size: W,H" line, and H rows of W comma-separated cells encoded
// "tile:object:event". The file is row-major; storage is column-major
// (Grid[x][y]). Structural problems are fatal; malformed cells degrade to
// the sentinel.
func parseMaps(data string) (map[string]types.MapDef, error) {
	maps := map[string]types.MapDef{}

	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
	i := 0
	for i < len(lines) {
		// Skip blank lines between blocks.
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}

		name := strings.TrimSpace(lines[i])
		i++
		if i >= len(lines) {
			return nil, fmt.Errorf("map %q: missing size line", name)
		}
		w, h, err := parseSize(lines[i])
		if err != nil {
			return nil, fmt.Errorf("map %q: %w", name, err)
		}
		i++

		grid := make([][]types.Cell, w)
		for x := range grid {
			grid[x] = make([]types.Cell, h)
		}
		for y := 0; y < h; y++ {
			if i >= len(lines) || strings.TrimSpace(lines[i]) == "" {
				return nil, fmt.Errorf("map %q: expected %d rows, got %d", name, h, y)
			}
			cells := strings.Split(lines[i], ",")
			for x := 0; x < w; x++ {
				c := sentinelCell
				if x < len(cells) {
					if parsed, ok := parseCell(cells[x]); ok {
						c = parsed
					}
				}
				grid[x][y] = c
			}
			i++
		}

		if _, dup := maps[name]; dup {
			return nil, fmt.Errorf("duplicate map %q", name)
		}
		maps[name] = types.MapDef{Name: name, W: w, H: h, Grid: grid}
	}

	if len(maps) == 0 {
		return nil, fmt.Errorf("no map blocks found")
	}
	return maps, nil
}

func parseSize(line string) (w, h int, err error) {
	s := strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(s, "size:")
	if !ok {
		return 0, 0, fmt.Errorf("expected size line, got %q", s)
	}
	parts := strings.Split(rest, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad size %q", rest)
	}
	w, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err == nil {
		h, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	if err != nil || w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("bad size %q", rest)
	}
	return w, h, nil
}

func parseCell(s string) (types.Cell, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return types.Cell{}, false
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return types.Cell{}, false
		}
		vals[i] = v
	}
	return types.Cell{Tile: vals[0], Object: vals[1], Event: vals[2]}, true
}
