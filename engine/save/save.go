// Package save implements JSON serialization and deserialization of game state.
package save

import (
	"encoding/json"

	"github.com/nathoo/ringquest/engine/hero"
)

// SaveData is the JSON-serializable save format. Map overrides travel as the
// raw "name,xx,yy" → "tt:oo:eee" strings so they round-trip byte-for-byte.
type SaveData struct {
	Name      string            `json:"name"`
	Map       string            `json:"map"`
	X         int               `json:"x"`
	Y         int               `json:"y"`
	Z         int               `json:"z"` // facing direction
	HP        int               `json:"hp"`
	MP        int               `json:"mp"`
	Exp       int               `json:"exp"`
	Gold      int               `json:"gold"`
	Power     int               `json:"power"`
	MultHP    int               `json:"mult_hp"`
	MultMP    int               `json:"mult_mp"`
	MultStr   int               `json:"mult_str"`
	Inventory map[int]int       `json:"inventory"`
	Equip     map[string]int    `json:"equip"`
	Spells    []int             `json:"spells"`
	Score     int               `json:"score"`
	BonusCode int               `json:"bonus_code"`
	MapFlags  map[string]string `json:"map_flags"`
}

// Capture snapshots the hero and the session's override store.
func Capture(h *hero.Hero, flags map[string]string) SaveData {
	inv := make(map[int]int, len(h.Inventory))
	for id, n := range h.Inventory {
		inv[id] = n
	}
	eq := make(map[string]int, len(h.Equip))
	for slot, id := range h.Equip {
		eq[slot] = id
	}
	mf := make(map[string]string, len(flags))
	for k, v := range flags {
		mf[k] = v
	}
	return SaveData{
		Name: h.Name,
		Map:  h.MapName,
		X:    h.X, Y: h.Y, Z: h.Facing,
		HP: h.HP, MP: h.MP,
		Exp: h.Exp, Gold: h.Gold, Power: h.Power,
		MultHP: h.MultHP, MultMP: h.MultMP, MultStr: h.MultStr,
		Inventory: inv,
		Equip:     eq,
		Spells:    append([]int{}, h.Spells...),
		Score:     h.Score,
		BonusCode: h.BonusCode,
		MapFlags:  mf,
	}
}

// Encode serializes save data to indented JSON bytes.
func Encode(sd SaveData) ([]byte, error) {
	return json.MarshalIndent(sd, "", "  ")
}

// Decode deserializes JSON bytes field by field: a field that is missing or
// fails to parse keeps its value in dst, so a partially corrupt save still
// loads what it can. Only a top-level parse failure is an error.
func Decode(data []byte, dst *SaveData) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	field(raw, "name", &dst.Name)
	field(raw, "map", &dst.Map)
	field(raw, "x", &dst.X)
	field(raw, "y", &dst.Y)
	field(raw, "z", &dst.Z)
	field(raw, "hp", &dst.HP)
	field(raw, "mp", &dst.MP)
	field(raw, "exp", &dst.Exp)
	field(raw, "gold", &dst.Gold)
	field(raw, "power", &dst.Power)
	field(raw, "mult_hp", &dst.MultHP)
	field(raw, "mult_mp", &dst.MultMP)
	field(raw, "mult_str", &dst.MultStr)
	field(raw, "inventory", &dst.Inventory)
	field(raw, "equip", &dst.Equip)
	field(raw, "spells", &dst.Spells)
	field(raw, "score", &dst.Score)
	field(raw, "bonus_code", &dst.BonusCode)
	field(raw, "map_flags", &dst.MapFlags)

	// Ensure maps are never nil after load.
	if dst.Inventory == nil {
		dst.Inventory = map[int]int{}
	}
	if dst.Equip == nil {
		dst.Equip = map[string]int{}
	}
	if dst.MapFlags == nil {
		dst.MapFlags = map[string]string{}
	}
	return nil
}

func field[T any](raw map[string]json.RawMessage, key string, dst *T) {
	b, ok := raw[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(b, &v); err == nil {
		*dst = v
	}
}

// Apply writes loaded save data onto the hero and returns the override store
// for the session. Unknown equip slots are dropped; the three known slots are
// always present afterwards.
func Apply(sd *SaveData, h *hero.Hero) map[string]string {
	h.Name = sd.Name
	h.MapName = sd.Map
	h.X, h.Y, h.Facing = sd.X, sd.Y, sd.Z
	h.HP, h.MP = sd.HP, sd.MP
	h.Exp, h.Gold, h.Power = sd.Exp, sd.Gold, sd.Power
	h.MultHP, h.MultMP, h.MultStr = sd.MultHP, sd.MultMP, sd.MultStr

	h.Inventory = map[int]int{}
	for id, n := range sd.Inventory {
		if n > 0 {
			h.Inventory[id] = min(n, hero.MaxItemCount)
		}
	}

	h.Equip = map[string]int{hero.SlotSword: 0, hero.SlotArmor: 0, hero.SlotRing: 0}
	for _, slot := range []string{hero.SlotSword, hero.SlotArmor, hero.SlotRing} {
		if id, ok := sd.Equip[slot]; ok {
			h.Equip[slot] = id
		}
	}

	h.Spells = nil
	for _, id := range sd.Spells {
		h.LearnSpell(id)
	}

	h.Score = sd.Score
	h.BonusCode = sd.BonusCode

	flags := make(map[string]string, len(sd.MapFlags))
	for k, v := range sd.MapFlags {
		flags[k] = v
	}
	return flags
}
