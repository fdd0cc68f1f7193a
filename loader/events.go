package loader

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nathoo/ringquest/types"
)

// parseEvents reads the event table: one "id@type@data" line per event,
// data may be empty or contain further @-joined sub-fields. Malformed lines
// are skipped with a warning. Payloads are parsed into their typed form
// here, once, so the dispatcher never re-parses data strings.
func parseEvents(data string, log *zap.Logger) map[int]types.EventDef {
	events := map[int]types.EventDef{}

	for n, line := range strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n") {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		parts := strings.SplitN(s, "@", 3)
		if len(parts) < 2 {
			log.Warn("skipping malformed event line", zap.Int("line", n+1))
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || id < 0 {
			log.Warn("skipping event with bad id", zap.Int("line", n+1))
			continue
		}
		evType := strings.TrimSpace(parts[1])
		evData := ""
		if len(parts) == 3 {
			evData = parts[2]
		}

		payload, err := compilePayload(evType, evData)
		if err != nil {
			log.Warn("skipping event with bad payload",
				zap.Int("id", id), zap.String("type", evType), zap.Error(err))
			continue
		}
		if _, dup := events[id]; dup {
			log.Warn("duplicate event id, keeping first", zap.Int("id", id))
			continue
		}
		events[id] = types.EventDef{ID: id, Type: evType, Data: evData, Payload: payload}
	}
	return events
}

// compilePayload parses an event's data string into its typed payload.
// Types without a secondary payload return nil.
func compilePayload(evType, data string) (types.Payload, error) {
	switch evType {
	case types.EvChangeMap:
		return parseWarp(data)

	case types.EvWalkableButton:
		// "dx,dy@tile:object:event"
		pos, cell, ok := strings.Cut(data, "@")
		if !ok {
			return nil, fmt.Errorf("button data %q missing cell part", data)
		}
		dx, dy, err := parsePair(pos)
		if err != nil {
			return nil, err
		}
		c, cellOK := parseCell(cell)
		if !cellOK {
			return nil, fmt.Errorf("bad button cell %q", cell)
		}
		return types.ButtonPayload{DX: dx, DY: dy, Cell: c}, nil

	case types.EvBattle, types.EvBoss:
		id, err := strconv.Atoi(strings.TrimSpace(data))
		if err != nil {
			return nil, fmt.Errorf("bad monster id %q", data)
		}
		return types.BattlePayload{MonsterID: id}, nil

	case types.EvGold:
		n, err := strconv.Atoi(strings.TrimSpace(data))
		if err != nil {
			return nil, fmt.Errorf("bad gold amount %q", data)
		}
		return types.GoldPayload{Amount: n}, nil

	case types.EvItem:
		id, err := strconv.Atoi(strings.TrimSpace(data))
		if err != nil {
			return nil, fmt.Errorf("bad item id %q", data)
		}
		return types.ItemPayload{ItemID: id}, nil

	case types.EvInn:
		dx, dy, err := parsePair(data)
		if err != nil {
			return nil, err
		}
		return types.OffsetPayload{DX: dx, DY: dy}, nil

	case types.EvTalk:
		name, file, ok := strings.Cut(data, "@")
		if !ok {
			return nil, fmt.Errorf("talk data %q missing file part", data)
		}
		return types.TalkPayload{
			Name: strings.TrimSpace(name),
			File: strings.TrimSpace(file),
		}, nil
	}
	return nil, nil
}

func parseWarp(data string) (types.Payload, error) {
	parts := strings.Split(data, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("warp data %q needs map,x,y,facing", data)
	}
	var vals [3]int
	for i, p := range parts[1:] {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad warp field %q", p)
		}
		vals[i] = v
	}
	return types.WarpPayload{
		Map:    strings.TrimSpace(parts[0]),
		X:      vals[0],
		Y:      vals[1],
		Facing: vals[2],
	}, nil
}

func parsePair(s string) (a, b int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected two comma-separated ints, got %q", s)
	}
	a, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err == nil {
		b, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	if err != nil {
		return 0, 0, fmt.Errorf("bad pair %q", s)
	}
	return a, b, nil
}
