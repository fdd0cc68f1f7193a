package loader

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nathoo/ringquest/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled defs for referential integrity. Broken
// references that would crash the dispatcher are errors; suspicious but
// survivable data is a logged warning.
func validate(defs *types.Defs, log *zap.Logger) error {
	ve := &ValidationError{}

	// Start-position event must exist with a warp payload into a known map.
	start, ok := defs.Events[0]
	if !ok {
		ve.Errors = append(ve.Errors, "event table has no start position (id 0)")
	} else if warp, ok := start.Payload.(types.WarpPayload); !ok {
		ve.Errors = append(ve.Errors, "start position event is not a warp")
	} else if _, ok := defs.Maps[warp.Map]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start map %q not found in map table", warp.Map))
	}

	for id, ev := range defs.Events {
		switch p := ev.Payload.(type) {
		case types.WarpPayload:
			if _, ok := defs.Maps[p.Map]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %d warps to unknown map %q", id, p.Map))
			}
		case types.BattlePayload:
			if _, ok := defs.Enemies[p.MonsterID]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %d references unknown monster %d", id, p.MonsterID))
			}
		case types.ItemPayload:
			if _, ok := defs.Items[p.ItemID]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %d references unknown item %d", id, p.ItemID))
			}
		case types.TalkPayload:
			if _, ok := defs.Texts[p.File]; !ok {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"event %d references missing text asset %q", id, p.File))
			}
		}
	}

	// Map cells pointing at undefined events dispatch as no-ops; warn so
	// data bugs surface during development.
	for name, m := range defs.Maps {
		for x := 0; x < m.W; x++ {
			for y := 0; y < m.H; y++ {
				evID := m.Grid[x][y].Event
				if evID == 0 {
					continue
				}
				if _, ok := defs.Events[evID]; !ok {
					ve.Warnings = append(ve.Warnings, fmt.Sprintf(
						"map %q cell (%d,%d) references undefined event %d",
						name, x, y, evID))
				}
			}
		}
	}

	for _, w := range ve.Warnings {
		log.Warn("data validation", zap.String("issue", w))
	}
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
