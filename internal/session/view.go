package session

import (
	"github.com/peterkuimelis/deckclash/internal/game"
	"github.com/peterkuimelis/deckclash/internal/log"
)

// StateView is a battle as seen by the player. It is a detached copy that is
// safe to encode after the session lock is released.
type StateView struct {
	ID         string        `json:"id"`
	Round      int           `json:"round"`
	Turn       string        `json:"turn"`
	IsYourTurn bool          `json:"is_your_turn"`
	Difficulty string        `json:"difficulty,omitempty"`
	You        CombatantView `json:"you"`
	Opponent   CombatantView `json:"opponent"`
	Over       bool          `json:"over"`
	Winner     string        `json:"winner,omitempty"`
	Result     string        `json:"result,omitempty"`
	Log        []string      `json:"log"`
}

// CombatantView shows one side. Only the player's hand is listed.
type CombatantView struct {
	Name         string       `json:"name"`
	HP           int          `json:"hp"`
	MaxHP        int          `json:"max_hp"`
	Energy       int          `json:"energy"`
	MaxEnergy    int          `json:"max_energy"`
	Block        int          `json:"block"`
	Statuses     []StatusView `json:"statuses,omitempty"`
	Passives     []string     `json:"passives,omitempty"`
	Hand         []CardView   `json:"hand,omitempty"`
	HandCount    int          `json:"hand_count"`
	DeckCount    int          `json:"deck_count"`
	DiscardCount int          `json:"discard_count"`
	BurnedCount  int          `json:"burned_count"`
}

// StatusView is one active status modifier.
type StatusView struct {
	Type     string `json:"type"`
	Stacks   int    `json:"stacks"`
	Duration int    `json:"duration"`
}

// CardView describes a card; Index is its hand position when listed in a hand.
type CardView struct {
	Index       int      `json:"index"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Cost        int      `json:"cost"`
	Attack      int      `json:"attack,omitempty"`
	Defense     int      `json:"defense,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Rarity      string   `json:"rarity"`
	Playable    bool     `json:"playable"`
}

// BuildCardView converts a card definition.
func BuildCardView(index int, card *game.Card) CardView {
	var tags []string
	for _, t := range card.Tags.List() {
		tags = append(tags, t.String())
	}
	return CardView{
		Index:       index,
		ID:          card.ID,
		Name:        card.Name,
		Description: card.Description,
		Cost:        card.Cost,
		Attack:      card.Attack,
		Defense:     card.Defense,
		Tags:        tags,
		Rarity:      card.Rarity.String(),
	}
}

// BuildStateView snapshots a battle from the player's perspective, keeping
// the last logTail log lines (all of them when logTail <= 0).
func BuildStateView(id string, bs *game.BattleState, conds game.Conditions, logTail int) *StateView {
	p, o := bs.Player(), bs.Opponent()
	v := &StateView{
		ID:         id,
		Round:      bs.Round,
		Turn:       bs.Turn.String(),
		IsYourTurn: bs.Turn == game.PlayerTurn && !bs.Over,
		Difficulty: bs.Difficulty.String(),
		You:        buildCombatantView(p),
		Opponent:   buildCombatantView(o),
		Over:       bs.Over,
		Result:     bs.Result,
	}
	if bs.Over {
		v.Winner = bs.Side(bs.Winner).Name
	}
	if logTail > 0 {
		v.Log = log.Tail(bs.Log, logTail)
	} else {
		v.Log = append([]string(nil), bs.Log...)
	}

	for i, ci := range p.Hand.Cards() {
		cv := BuildCardView(i, ci.Card)
		cv.Playable = v.IsYourTurn && !ci.Card.Unplayable && ci.Card.Cost <= p.Energy &&
			conds.Enabled(game.ConditionContext{State: bs, Self: p, Target: o, Card: ci})
		v.You.Hand = append(v.You.Hand, cv)
	}
	return v
}

func buildCombatantView(c *game.Combatant) CombatantView {
	v := CombatantView{
		Name:         c.Name,
		HP:           c.Health,
		MaxHP:        c.MaxHealth,
		Energy:       c.Energy,
		MaxEnergy:    c.MaxEnergy,
		Block:        c.Block,
		HandCount:    c.Hand.Len(),
		DeckCount:    c.Deck.Draw.Len(),
		DiscardCount: c.Deck.Discard.Len(),
		BurnedCount:  c.Burned.Len(),
	}
	for _, m := range c.Statuses.Mods() {
		v.Statuses = append(v.Statuses, StatusView{Type: m.Type.String(), Stacks: m.Stacks, Duration: m.Duration})
	}
	for _, p := range c.Passives {
		v.Passives = append(v.Passives, p.Name)
	}
	return v
}
