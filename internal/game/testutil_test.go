package game

import (
	"testing"

	"github.com/peterkuimelis/deckclash/internal/log"
)

// --- Card builders ---

func attackCard(name string, cost, attack int, tags ...Tag) *Card {
	if len(tags) == 0 {
		tags = []Tag{TagAttack, TagMelee}
	}
	return &Card{ID: name, Name: name, Cost: cost, Attack: attack, Tags: Tags(tags...)}
}

func defendCard(name string, cost, defense int) *Card {
	return &Card{ID: name, Name: name, Cost: cost, Defense: defense, Tags: Tags(TagSkill)}
}

func skillCard(name string, cost int, effects ...EffectInstance) *Card {
	return &Card{ID: name, Name: name, Cost: cost, Tags: Tags(TagSkill), Effects: effects}
}

func applyStatusEffect(target Target, status StatusType, stacks, duration int) EffectInstance {
	return EffectInstance{
		Code:   EffectApplyStatus,
		Params: EffectParams{Target: target, Status: status, Stacks: stacks, Duration: duration},
	}
}

// topFirst lists a deck in draw order. With NoShuffle the last element of a
// deck definition is drawn first, so the slice is reversed.
func topFirst(cards ...*Card) []*Card {
	out := make([]*Card, len(cards))
	for i, c := range cards {
		out[len(cards)-1-i] = c
	}
	return out
}

// padded returns top (in draw order) followed by filler copies up to size.
func padded(top []*Card, filler *Card, size int) []*Card {
	deck := append([]*Card(nil), top...)
	for len(deck) < size {
		deck = append(deck, filler)
	}
	return topFirst(deck...)
}

func combatant(name string, health int, deck []*Card, passives ...*Passive) *CombatantDef {
	return &CombatantDef{ID: name, Name: name, MaxHealth: health, MaxEnergy: 3, Deck: deck, Passives: passives}
}

// --- Engine helpers ---

func newTestEngine(t *testing.T, conds Conditions) (*Engine, *log.MemoryLogger) {
	t.Helper()
	cat, err := NewCatalog(nil, nil, nil, nil, conds)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	logger := log.NewMemoryLogger()
	return NewEngine(cat, EngineConfig{Logger: logger, Seed: 42, NoShuffle: true}), logger
}

// startBattle runs a battle with no shuffle and a fixed seed. The test log is
// dumped on failure.
func startBattle(t *testing.T, player, opponent *CombatantDef) (*Engine, *BattleState, *log.MemoryLogger) {
	t.Helper()
	e, logger := newTestEngine(t, DefaultConditions())
	bs := e.NewBattle(player, opponent)
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("Battle log:\n%s", log.FormatAll(logger.Events()))
		}
	})
	return e, bs, logger
}

// inHand returns the first card in a combatant's hand with the given name.
func inHand(t *testing.T, c *Combatant, name string) *CardInstance {
	t.Helper()
	for _, ci := range c.Hand.Cards() {
		if ci.Card.Name == name {
			return ci
		}
	}
	t.Fatalf("%s has no %q in hand", c.Name, name)
	return nil
}

func instances(cards ...*Card) []*CardInstance {
	out := make([]*CardInstance, len(cards))
	for i, c := range cards {
		out[i] = &CardInstance{Card: c, ID: i + 1}
	}
	return out
}
