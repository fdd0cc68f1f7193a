// Package types defines the shared data structures for the RingQuest engine.
// This package contains only type definitions — no logic beyond trivial
// accessors.
package types

// Cell is one map cell: terrain tile, object overlay, and event id.
type Cell struct {
	Tile   int
	Object int
	Event  int
}

// Event type tags as they appear in the events file.
const (
	EvWalkable         = "walkable"
	EvWalkableButton   = "walkable_button"
	EvWalkableDialogue = "walkable_dialogue_box"
	EvUnwalkable       = "unwalkable"
	EvChangeMap        = "change_map"
	EvDoor             = "door"
	EvSign             = "sign"
	EvDialogueBox      = "dialogue_box"
	EvOneTimeDialogue  = "one_time_dialogue_box"
	EvBattle           = "battle"
	EvBoss             = "boss"
	EvTavern           = "tavern"
	EvQueen            = "queen"
	EvPrincess         = "princess"
	EvShop             = "shop"
	EvGold             = "gold"
	EvItem             = "item"
	EvInn              = "inn"
	EvEndScreen        = "end_screen"
	EvTalk             = "talk" // titled long-form dialogue, referenced by id
)

// Payload is the typed form of an event's data string, parsed once at load
// time. The concrete type depends on the event type tag.
type Payload interface{ isPayload() }

// WarpPayload is a destination: map name, coordinates, facing.
// Used by change_map events and the start-position event (id 0).
type WarpPayload struct {
	Map    string
	X, Y   int
	Facing int
}

// ButtonPayload rewrites a second cell at an offset from the button cell.
type ButtonPayload struct {
	DX, DY int
	Cell   Cell
}

// BattlePayload carries the monster id of a battle or boss trigger.
type BattlePayload struct {
	MonsterID int
}

// GoldPayload is a gold pickup amount.
type GoldPayload struct {
	Amount int
}

// ItemPayload is an item pickup by catalog id.
type ItemPayload struct {
	ItemID int
}

// OffsetPayload is a relative player relocation (inn events).
type OffsetPayload struct {
	DX, DY int
}

// TalkPayload is a titled long-form dialogue: speaker name plus the text
// asset holding the speech.
type TalkPayload struct {
	Name string
	File string
}

func (WarpPayload) isPayload()   {}
func (ButtonPayload) isPayload() {}
func (BattlePayload) isPayload() {}
func (GoldPayload) isPayload()   {}
func (ItemPayload) isPayload()   {}
func (OffsetPayload) isPayload() {}
func (TalkPayload) isPayload()   {}

// EventDef is one entry of the event table: type tag, the raw data string as
// loaded, and the typed payload (nil for purely textual events).
type EventDef struct {
	ID      int
	Type    string
	Data    string
	Payload Payload
}

// Item categories.
const (
	ItemConsumable = "consumable"
	ItemSpecial    = "special"
	ItemSword      = "sword"
	ItemArmor      = "armor"
	ItemRing       = "ring"
)

// ItemDef is a static catalog entry for an item.
type ItemDef struct {
	Name        string
	Kind        string
	Price       int
	Value       int
	Description string
}

// SpellDef is a static catalog entry for a castable spell.
// Kind is the element: "ice" or "fire".
type SpellDef struct {
	Name        string
	Kind        string
	Price       int
	MPCost      int
	Power       int
	Description string
}

// SummonDef is a ring-bound summon (selectable as spell id 0 in battle).
type SummonDef struct {
	Name   string
	MPCost int
}

// EnemyDef is a static catalog entry for a monster.
type EnemyDef struct {
	Name       string
	HP         int
	Atk        int
	Def        int
	ResFire    int
	ResIce     int
	CritChance int
	Exp        int
	Gold       int
}

// MapDef is an immutable map template. Grid is column-major: Grid[x][y].
type MapDef struct {
	Name string
	W, H int
	Grid [][]Cell
}

// Defs holds all immutable game definitions loaded at startup.
type Defs struct {
	Items   map[int]ItemDef
	Spells  map[int]SpellDef
	Summons map[int]SummonDef
	Enemies map[int]EnemyDef
	Events  map[int]EventDef
	Maps    map[string]MapDef
	Texts   map[string]string // text assets keyed by file name; missing → ""
}

// Event returns the event definition for id, or ok=false for id 0 and
// unknown ids.
func (d *Defs) Event(id int) (EventDef, bool) {
	if id <= 0 {
		return EventDef{}, false
	}
	ev, ok := d.Events[id]
	return ev, ok
}

// Text returns a loaded text asset, or "" when the asset was missing.
func (d *Defs) Text(name string) string {
	return d.Texts[name]
}
