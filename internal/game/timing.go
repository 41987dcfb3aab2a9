package game

import (
	"fmt"

	"github.com/peterkuimelis/deckclash/internal/log"
)

// fireTriggers runs every passive, power and status-attached effect a side
// holds for the given phase, in the order they were gained.
func (e *Engine) fireTriggers(bs *BattleState, side Side, phase TriggerPhase) {
	c := bs.Side(side)

	// Snapshot: effects may append new powers or statuses while firing.
	passives := append([]*Passive(nil), c.Passives...)
	for _, p := range passives {
		if bs.Over {
			return
		}
		effects := p.effectsFor(phase)
		if len(effects) == 0 || !e.passiveReady(c, p) {
			continue
		}
		if p.Once {
			if c.firedOnce == nil {
				c.firedOnce = make(map[string]bool)
			}
			c.firedOnce[p.ID] = true
		}
		e.emit(bs, log.GameEvent{
			Round:   bs.Round,
			Actor:   c.Name,
			Type:    log.EventPassive,
			Card:    p.Name,
			Details: fmt.Sprintf("%s's %s activates", c.Name, p.Name),
		})
		ctx := &EffectContext{State: bs, Self: c, Foe: bs.Side(side.Other()), Related: p.Related, SourceName: p.Name, engine: e}
		for _, eff := range effects {
			Dispatch(ctx, eff)
			if e.settle(bs) {
				return
			}
		}
	}

	for _, m := range c.Statuses.Mods() {
		for _, eff := range m.Effects {
			if eff.Trigger != phase || bs.Over {
				continue
			}
			ctx := &EffectContext{State: bs, Self: c, Foe: bs.Side(side.Other()), SourceName: m.Type.String(), engine: e}
			Dispatch(ctx, eff)
			e.settle(bs)
		}
	}
}

// effectsFor returns the passive's effects that fire at a phase. An effect
// without its own trigger inherits the passive's.
func (p *Passive) effectsFor(phase TriggerPhase) []EffectInstance {
	var out []EffectInstance
	for _, eff := range p.Effects {
		t := eff.Trigger
		if t == TriggerNone {
			t = p.Trigger
		}
		if t == phase && phase != TriggerNone {
			out = append(out, eff)
		}
	}
	return out
}

func (e *Engine) passiveReady(c *Combatant, p *Passive) bool {
	if p.Once && c.firedOnce[p.ID] {
		return false
	}
	if p.HealthBelow > 0 && c.HealthPercent() > p.HealthBelow {
		return false
	}
	return true
}
