// Package engine ties the subsystems into one playable session: movement,
// the map event dispatcher, battle lifecycle, and save/load. Dialogue is
// modeled as prompt continuations — the UI shows the prompt, then feeds the
// chosen button back through Choose, which resumes the interrupted event.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nathoo/ringquest/engine/battle"
	"github.com/nathoo/ringquest/engine/hero"
	"github.com/nathoo/ringquest/engine/rng"
	"github.com/nathoo/ringquest/engine/save"
	"github.com/nathoo/ringquest/engine/world"
	"github.com/nathoo/ringquest/types"
)

// Facing direction codes, as stored in the save file.
const (
	FaceUp = iota
	FaceLeft
	FaceRight
	FaceDown
)

// Well-known event ids: reserved cell markers and the message table.
const (
	evCleared     = 97 // walkable marker left behind by consumed buttons
	evQueenQuest  = 81 // replaces the queen event once the quest is accepted
	evRingRescue  = 96 // legendary ring revealed by freeing the princess
	tileItemBox   = 22
	monsterRobot  = 14
	innPrice      = 100
	gossipCount   = 8
	textInnAsk    = 108
	textShopAsk   = 109
	textDoorNoKey = 110
	textDoorAsk   = 111
	textQueenAsk  = 112
	textPrincess  = 113
	textTavernAsk = 114
	textQuestAsk  = 115
	textGossip    = 120 // first of gossipCount rotating entries
	textGoldFound = 128
	textBagFull   = 129
	textItemFound = 130
	textBattleAsk = 131
	textPrize     = 132
	textPrizeStr  = 133
	talkQueen     = 134
	talkPrincess  = 135
	textInnPoor   = 136
	talkBossIntro = 137
	talkBossDown  = 138
	evThroneTalk  = 139
)

// Prompt is a modal dialogue awaiting player input. Empty Buttons means a
// single acknowledge. The resume closure, when set, continues the event that
// raised the prompt once a button is chosen.
type Prompt struct {
	Title   string
	Text    string
	Buttons []string

	resume func(choice string) Result
}

// Result is what one engine step hands the UI.
type Result struct {
	Prompt     *Prompt
	Toast      string // transient message, no acknowledgment needed
	Battle     bool   // a battle just started; Session.Battle is live
	Shop       bool   // the player agreed to enter the shop
	EndScreen  bool   // the end screen should be shown
	MapChanged bool   // the active map was swapped, re-center the camera
}

// Session is one running game: definitions plus all mutable state.
type Session struct {
	Defs  *types.Defs
	Hero  *hero.Hero
	World *world.Map
	RNG   *rng.RNG

	Battle *battle.Battle

	flags    map[string]string
	pending  *Prompt
	gossipID int
	log      *zap.Logger
}

// NewGame starts a fresh session at the start-position event.
func NewGame(defs *types.Defs, seed int64, log *zap.Logger) (*Session, error) {
	h, err := hero.New(defs)
	if err != nil {
		return nil, err
	}
	s := &Session{
		Defs:  defs,
		Hero:  h,
		RNG:   rng.New(seed),
		flags: map[string]string{},
		log:   log,
	}
	s.World = world.New(defs, s.flags)
	if err := s.World.Load(h.MapName); err != nil {
		return nil, err
	}
	log.Info("new game", zap.String("map", h.MapName), zap.Int64("seed", seed))
	return s, nil
}

// SaveBytes snapshots the session into the save document.
func (s *Session) SaveBytes() ([]byte, error) {
	return save.Encode(save.Capture(s.Hero, s.flags))
}

// LoadBytes restores a session from save bytes. Fields that fail to parse
// keep their current values; an unknown map name is an error.
func (s *Session) LoadBytes(data []byte) error {
	sd := save.Capture(s.Hero, s.flags)
	if err := save.Decode(data, &sd); err != nil {
		return err
	}
	s.flags = save.Apply(&sd, s.Hero)
	s.World = world.New(s.Defs, s.flags)
	if err := s.World.Load(s.Hero.MapName); err != nil {
		return err
	}
	s.Battle = nil
	s.pending = nil
	s.gossipID = 0
	s.log.Info("game loaded", zap.String("map", s.Hero.MapName))
	return nil
}

// Pending returns the prompt awaiting input, if any.
func (s *Session) Pending() *Prompt { return s.pending }

// Choose feeds the chosen button label back into the pending prompt and
// resumes the interrupted event. Choosing with no pending prompt is a no-op.
func (s *Session) Choose(choice string) Result {
	p := s.pending
	s.pending = nil
	if p == nil || p.resume == nil {
		return Result{}
	}
	return p.resume(choice)
}

// Step handles one movement key. The first press in a new direction only
// turns the hero; a press along the current facing attempts the move. The
// target cell's event triggers whether or not the move succeeded, so signs
// and doors work from the adjacent cell.
func (s *Session) Step(dir int) Result {
	if s.pending != nil || s.Battle != nil {
		return Result{}
	}
	if s.Hero.Facing != dir {
		s.Hero.Facing = dir
		return Result{}
	}

	dx, dy := 0, 0
	switch dir {
	case FaceUp:
		dy = -1
	case FaceLeft:
		dx = -1
	case FaceRight:
		dx = 1
	case FaceDown:
		dy = 1
	}

	nx, ny := s.Hero.X+dx, s.Hero.Y+dy
	if s.World.IsWalkable(nx, ny, s.Hero.HasItem(hero.ItemCloak) > 0) {
		s.Hero.MoveTo(nx, ny)
	}
	return s.Trigger(nx, ny)
}

// Trigger dispatches the event on cell (x, y). Out-of-bounds cells and
// cells without an event are no-ops.
func (s *Session) Trigger(x, y int) Result {
	if x < 0 || y < 0 || x >= s.World.W || y >= s.World.H {
		return Result{}
	}
	c := s.World.CellAt(x, y)
	ev, ok := s.Defs.Event(c.Event)
	if !ok {
		return Result{}
	}

	switch ev.Type {
	case types.EvWalkable:
		return Result{}

	case types.EvWalkableButton:
		p, ok := ev.Payload.(types.ButtonPayload)
		if !ok {
			return Result{}
		}
		s.World.SetOverride(x+p.DX, y+p.DY, p.Cell)
		s.World.SetEventID(x, y, evCleared)
		return Result{}

	case types.EvWalkableDialogue:
		s.World.SetEventID(x, y, evCleared)
		return s.say(ev.Data)

	case types.EvChangeMap:
		p, ok := ev.Payload.(types.WarpPayload)
		if !ok {
			return Result{}
		}
		return s.warp(p)

	case types.EvDoor:
		return s.triggerDoor(x, y)

	case types.EvSign, types.EvDialogueBox:
		return s.say(ev.Data)

	case types.EvOneTimeDialogue:
		s.World.SetEventID(x, y, 0)
		return s.say(ev.Data)

	case types.EvBattle, types.EvBoss:
		return s.triggerBattle(x, y, ev)

	case types.EvTavern:
		return s.triggerTavern()

	case types.EvQueen:
		return s.triggerQueen(x, y)

	case types.EvPrincess:
		return s.triggerPrincess(x, y)

	case types.EvShop:
		return s.ask(s.eventText(textShopAsk), func(choice string) Result {
			return Result{Shop: choice == "Yes"}
		})

	case types.EvGold:
		p, ok := ev.Payload.(types.GoldPayload)
		if !ok {
			return Result{}
		}
		s.Hero.AddGold(p.Amount)
		s.World.SetEventID(x, y, 0)
		return s.say(format(s.eventText(textGoldFound), "gold", fmt.Sprint(p.Amount)))

	case types.EvItem:
		return s.triggerItem(x, y, c, ev)

	case types.EvInn:
		return s.triggerInn(ev)

	case types.EvEndScreen:
		s.log.Info("end screen reached", zap.Int("score", s.Hero.Score))
		return Result{EndScreen: true}
	}

	return Result{Toast: "Not Ready Yet"}
}

func (s *Session) warp(p types.WarpPayload) Result {
	if err := s.World.Load(p.Map); err != nil {
		s.log.Warn("warp to unknown map", zap.String("map", p.Map), zap.Error(err))
		return Result{}
	}
	s.Hero.MapName = p.Map
	s.Hero.X, s.Hero.Y, s.Hero.Facing = p.X, p.Y, p.Facing
	s.gossipID = 0
	return Result{MapChanged: true}
}

func (s *Session) triggerDoor(x, y int) Result {
	if s.Hero.HasItem(hero.ItemKey) <= 0 {
		return s.say(s.eventText(textDoorNoKey))
	}
	return s.ask(s.eventText(textDoorAsk), func(choice string) Result {
		if choice == "Yes" {
			s.World.SetEventID(x, y, 0)
			s.Hero.ConsumeItem(hero.ItemKey, 1)
		}
		return Result{}
	})
}

func (s *Session) triggerBattle(x, y int, ev types.EventDef) Result {
	p, ok := ev.Payload.(types.BattlePayload)
	if !ok {
		return Result{}
	}
	mon, ok := s.Defs.Enemies[p.MonsterID]
	if !ok {
		return Result{}
	}
	if s.Hero.HP == 0 {
		return Result{Toast: "I need to rest..."}
	}

	askText := format(s.eventText(textBattleAsk),
		"name", mon.Name, "hp", fmt.Sprint(mon.HP))
	start := func() Result {
		b, err := battle.New(s.Defs, s.Hero, s.RNG, p.MonsterID, x, y)
		if err != nil {
			return Result{}
		}
		s.Battle = b
		s.log.Info("battle started",
			zap.Int("monster", p.MonsterID), zap.String("name", mon.Name))
		return Result{Battle: true}
	}

	return s.ask(askText, func(choice string) Result {
		if choice != "Yes" {
			return Result{}
		}
		if ev.Type == types.EvBoss {
			name, text := s.talk(talkBossIntro)
			return s.sayThen(name, text, start)
		}
		return start()
	})
}

func (s *Session) triggerTavern() Result {
	return s.ask(s.eventText(textTavernAsk), func(choice string) Result {
		if choice != "Yes" {
			return Result{}
		}
		if s.gossipID >= gossipCount {
			s.gossipID = 0
		}
		r := s.say(s.eventText(textGossip + s.gossipID))
		s.gossipID++
		return r
	})
}

func (s *Session) triggerQueen(x, y int) Result {
	return s.ask(s.eventText(textQueenAsk), func(choice string) Result {
		if choice != "Yes" {
			return Result{}
		}
		name, text := s.talk(talkQueen)
		return s.sayThen(name, text, func() Result {
			return s.ask(s.eventText(textQuestAsk), func(choice string) Result {
				if choice != "Yes" {
					return Result{}
				}
				s.Hero.AddItem(hero.ItemKey, 1)
				s.World.SetEventID(x, y, evQueenQuest)
				return s.Trigger(x, y)
			})
		})
	})
}

func (s *Session) triggerPrincess(x, y int) Result {
	return s.ask(s.eventText(textPrincess), func(choice string) Result {
		if choice != "Yes" {
			return Result{}
		}
		name, text := s.talk(talkPrincess)
		return s.sayThen(name, text, func() Result {
			s.World.SetOverride(x, y, types.Cell{Tile: tileItemBox, Object: 0, Event: evRingRescue})
			return Result{}
		})
	})
}

func (s *Session) triggerItem(x, y int, c types.Cell, ev types.EventDef) Result {
	p, ok := ev.Payload.(types.ItemPayload)
	if !ok {
		return Result{}
	}
	item, ok := s.Defs.Items[p.ItemID]
	if !ok {
		return Result{}
	}

	if s.Hero.HasItem(p.ItemID) >= hero.MaxItemCount {
		return s.say(format(s.eventText(textBagFull), "name", item.Name))
	}

	// Opened item boxes flip to the opened tile; loose pickups just lose
	// their event.
	if c.Tile == tileItemBox && c.Object == 0 {
		s.World.SetOverride(x, y, types.Cell{Tile: c.Tile + 1})
	} else {
		s.World.SetEventID(x, y, 0)
	}

	desc := ""
	if item.Kind == types.ItemSpecial && p.ItemID != hero.ItemKey {
		switch p.ItemID {
		case hero.ItemSoulStone:
			s.Hero.MultStr++
		case hero.ItemBloodStone:
			s.Hero.MultStr += 2
		case hero.ItemLifeStone:
			s.Hero.MultHP++
		case hero.ItemMagicStone:
			s.Hero.MultMP++
		}
		desc = item.Description
	} else {
		s.Hero.AddItem(p.ItemID, 1)
	}
	return s.say(format(s.eventText(textItemFound),
		"name", item.Name, "description", desc))
}

func (s *Session) triggerInn(ev types.EventDef) Result {
	return s.ask(s.eventText(textInnAsk), func(choice string) Result {
		if choice != "Yes" {
			return Result{}
		}
		if s.Hero.Gold < innPrice {
			return s.say(s.eventText(textInnPoor))
		}
		s.Hero.Gold -= innPrice
		s.Hero.HP = s.Hero.MaxHP()
		s.Hero.MP = s.Hero.MaxMP()

		// Step aside so the hero doesn't wake up inside the innkeeper.
		if p, ok := ev.Payload.(types.OffsetPayload); ok {
			nx, ny := s.Hero.X+p.DX, s.Hero.Y+p.DY
			if s.World.IsWalkable(nx, ny, s.Hero.HasItem(hero.ItemCloak) > 0) {
				s.Hero.X, s.Hero.Y = nx, ny
			}
		}
		return Result{}
	})
}

// FinishBattle applies the battle outcome to the map and clears the battle.
// Call once the battle reaches its end phase.
func (s *Session) FinishBattle() (Result, error) {
	if s.Battle == nil {
		return Result{}, errors.New("no battle in progress")
	}
	b := s.Battle
	s.Battle = nil
	res := b.Result()
	mon := b.Monster

	s.log.Info("battle finished",
		zap.Int("monster", b.MonsterID),
		zap.Bool("won", res.Won), zap.Bool("fled", res.Fled))

	if !res.Won {
		return Result{}, nil
	}

	c := s.World.CellAt(res.X, res.Y)
	ev, ok := s.Defs.Event(c.Event)
	if !ok {
		return Result{}, nil
	}

	switch ev.Type {
	case types.EvBattle:
		s.Hero.AddExp(mon.Exp)
		s.Hero.AddGold(mon.Gold)
		prize := s.eventText(textPrize)
		if b.MonsterID == monsterRobot {
			s.Hero.MultStr += 2
			prize = s.eventText(textPrizeStr)
		}

		// Tile-drawn enemies leave clear ground; sprite encounters respawn
		// on the next map load.
		if c.Object == 11 || c.Object == 41 {
			s.World.SetOverride(res.X, res.Y, types.Cell{Tile: c.Tile})
		} else {
			s.World.SetEventIDTemp(res.X, res.Y, 0)
		}
		return s.say(format(prize,
			"name", mon.Name, "exp", fmt.Sprint(mon.Exp), "gold", fmt.Sprint(mon.Gold))), nil

	case types.EvBoss:
		name, text := s.talk(talkBossDown)
		return s.sayThen(name, text, func() Result {
			s.World.SetOverride(6, 3, types.Cell{Tile: 8})
			s.World.SetOverride(6, 4, types.Cell{Tile: 8, Object: 44, Event: evThroneTalk})
			return Result{}
		}), nil
	}
	return Result{}, nil
}

// eventText returns the message-table entry for an event id.
func (s *Session) eventText(id int) string {
	if ev, ok := s.Defs.Event(id); ok {
		return ev.Data
	}
	s.log.Warn("missing message entry", zap.Int("event", id))
	return ""
}

// talk resolves a titled long-form dialogue: speaker name plus the text asset.
func (s *Session) talk(id int) (name, text string) {
	ev, ok := s.Defs.Event(id)
	if !ok {
		return "", ""
	}
	if p, ok := ev.Payload.(types.TalkPayload); ok {
		return p.Name, s.Defs.Text(p.File)
	}
	return "", ev.Data
}

func (s *Session) say(text string) Result {
	s.pending = &Prompt{Text: text}
	return Result{Prompt: s.pending}
}

// sayThen shows a titled dialogue whose acknowledgment runs next.
func (s *Session) sayThen(title, text string, next func() Result) Result {
	s.pending = &Prompt{
		Title: title,
		Text:  text,
		resume: func(string) Result {
			return next()
		},
	}
	return Result{Prompt: s.pending}
}

func (s *Session) ask(text string, resume func(choice string) Result) Result {
	s.pending = &Prompt{Text: text, Buttons: []string{"Yes", "No"}, resume: resume}
	return Result{Prompt: s.pending}
}

// format substitutes {key} placeholders in message-table text.
func format(tpl string, pairs ...string) string {
	oldnew := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		oldnew = append(oldnew, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(oldnew...).Replace(tpl)
}
