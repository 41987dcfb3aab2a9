package game

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoOpponent is returned when no opponent in the pool matches a difficulty.
var ErrNoOpponent = errors.New("no opponent for difficulty")

// CombatantDef is the static description of one side of a battle.
type CombatantDef struct {
	ID        string
	Name      string
	MaxHealth int
	MaxEnergy int
	Deck      []*Card
	Passives  []*Passive
}

// OpponentDef is an AI opponent in the roster.
type OpponentDef struct {
	CombatantDef
	Difficulty Difficulty
}

// ConditionContext is what a card condition predicate can inspect.
type ConditionContext struct {
	State  *BattleState
	Self   *Combatant
	Target *Combatant
	Card   *CardInstance
}

// Condition is a per-card predicate.
type Condition func(ctx ConditionContext) bool

// Conditions holds enabling predicates (card may only be played when true)
// and empowering predicates (AI strongly prefers the card when true), keyed
// by card ID.
type Conditions struct {
	Enabling   map[string]Condition
	Empowering map[string]Condition
}

// Enabled reports whether a card's enabling condition holds. Cards without
// one are always enabled.
func (c Conditions) Enabled(ctx ConditionContext) bool {
	cond, ok := c.Enabling[ctx.Card.Card.ID]
	return !ok || cond(ctx)
}

// Empowered reports whether a card's empowering condition holds.
func (c Conditions) Empowered(ctx ConditionContext) bool {
	cond, ok := c.Empowering[ctx.Card.Card.ID]
	return ok && cond(ctx)
}

// DefaultConditions returns the condition table for the bundled content.
func DefaultConditions() Conditions {
	return Conditions{
		Enabling: map[string]Condition{
			// only playable if an attack was evaded since our last turn
			"riposte": func(ctx ConditionContext) bool {
				return ctx.Self.EvadedSinceOwnTurn
			},
			"last-stand": func(ctx ConditionContext) bool {
				return ctx.Self.HealthPercent() <= 50
			},
		},
		Empowering: map[string]Condition{
			"hemorrhage": func(ctx ConditionContext) bool {
				return ctx.Target.Statuses.Has(StatusBleeding)
			},
			"execute": func(ctx ConditionContext) bool {
				return ctx.Target.HealthPercent() <= 30
			},
			"expose": func(ctx ConditionContext) bool {
				return !ctx.Target.Statuses.Has(StatusVulnerable)
			},
		},
	}
}

// Catalog is the immutable content registry: card stat blocks, passives,
// opponent roster and starter loadouts. It is built once at startup and
// passed explicitly to the engine.
type Catalog struct {
	cards      map[string]*Card
	passives   map[string]*Passive
	opponents  []*OpponentDef
	starters   map[string]*CombatantDef
	conditions Conditions
}

// NewCatalog validates and indexes content tables.
func NewCatalog(cards []*Card, passives []*Passive, opponents []*OpponentDef, starters []*CombatantDef, conds Conditions) (*Catalog, error) {
	c := &Catalog{
		cards:      make(map[string]*Card, len(cards)),
		passives:   make(map[string]*Passive, len(passives)),
		starters:   make(map[string]*CombatantDef, len(starters)),
		conditions: conds,
	}
	for _, card := range cards {
		if card.ID == "" {
			return nil, fmt.Errorf("card %q has no id", card.Name)
		}
		if _, dup := c.cards[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		c.cards[card.ID] = card
	}
	for _, p := range passives {
		if _, dup := c.passives[p.ID]; dup {
			return nil, fmt.Errorf("duplicate passive id %q", p.ID)
		}
		c.passives[p.ID] = p
	}
	seen := make(map[string]bool)
	for _, o := range opponents {
		if seen[o.ID] {
			return nil, fmt.Errorf("duplicate opponent id %q", o.ID)
		}
		if len(o.Deck) == 0 {
			return nil, fmt.Errorf("opponent %q has an empty deck", o.ID)
		}
		seen[o.ID] = true
		c.opponents = append(c.opponents, o)
	}
	for _, s := range starters {
		if _, dup := c.starters[s.ID]; dup {
			return nil, fmt.Errorf("duplicate starter id %q", s.ID)
		}
		c.starters[s.ID] = s
	}
	return c, nil
}

// Card looks up a card definition by ID.
func (c *Catalog) Card(id string) (*Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// LookupCard looks up a card by ID.
// Panics if the card is not found.
func (c *Catalog) LookupCard(id string) *Card {
	card, ok := c.cards[id]
	if !ok {
		panic(fmt.Sprintf("card not found in catalog: %q", id))
	}
	return card
}

// Cards returns all card definitions sorted by ID.
func (c *Catalog) Cards() []*Card {
	out := make([]*Card, 0, len(c.cards))
	for _, card := range c.cards {
		out = append(out, card)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Passive looks up a passive by ID.
func (c *Catalog) Passive(id string) (*Passive, bool) {
	p, ok := c.passives[id]
	return p, ok
}

// Opponents returns the full opponent roster.
func (c *Catalog) Opponents() []*OpponentDef {
	out := make([]*OpponentDef, len(c.opponents))
	copy(out, c.opponents)
	return out
}

// Starter looks up a player loadout by ID.
func (c *Catalog) Starter(id string) (*CombatantDef, bool) {
	s, ok := c.starters[id]
	return s, ok
}

// Starters returns all player loadouts sorted by ID.
func (c *Catalog) Starters() []*CombatantDef {
	out := make([]*CombatantDef, 0, len(c.starters))
	for _, s := range c.starters {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Conditions returns the card condition table.
func (c *Catalog) Conditions() Conditions {
	return c.conditions
}
