package game

import "github.com/peterkuimelis/deckclash/internal/log"

// EffectContext is everything an effect handler may read or mutate while
// one card, passive or status effect resolves.
type EffectContext struct {
	State  *BattleState
	Self   *Combatant
	Foe    *Combatant
	Source *CardInstance // nil for passives and status effects

	// Related are the templates AddToDiscard and AddToHand copy from.
	// Defaults to the source card's related cards.
	Related    []*Card
	SourceName string

	// AttackBonus accumulates StatusBonusDamage for the source card's attack.
	AttackBonus int

	engine *Engine
}

func (ctx *EffectContext) related() []*Card {
	if len(ctx.Related) == 0 && ctx.Source != nil {
		return ctx.Source.Card.Related
	}
	return ctx.Related
}

func (ctx *EffectContext) sourceName() string {
	if ctx.SourceName == "" && ctx.Source != nil {
		return ctx.Source.Card.Name
	}
	return ctx.SourceName
}

func (ctx *EffectContext) target(t Target) *Combatant {
	if t == TargetSelf {
		return ctx.Self
	}
	return ctx.Foe
}

func (ctx *EffectContext) emit(ev log.GameEvent) {
	if ctx.engine != nil {
		ctx.engine.emit(ctx.State, ev)
		return
	}
	ctx.State.Log = append(ctx.State.Log, ev.Details)
}

// Dispatch runs one effect. Unknown codes are ignored.
func Dispatch(ctx *EffectContext, eff EffectInstance) {
	p := eff.Params
	switch eff.Code {
	case EffectApplyStatus:
		applyStatus(ctx, ctx.target(p.Target), p.Status, p.Stacks, p.Duration, p.Attached)
	case EffectDirectDamage:
		directDamage(ctx, ctx.target(p.Target), p.Amount)
	case EffectAddToDiscard:
		addToDiscard(ctx, ctx.target(p.Target), p.Count)
	case EffectSelfStatusScaled:
		duration := p.Duration + ctx.Self.Statuses.Stacks(p.FromStatus)
		if duration <= 0 {
			return
		}
		applyStatus(ctx, ctx.Self, p.Status, p.Stacks, duration, p.Attached)
	case EffectModifyDraw:
		modifyDraw(ctx, ctx.target(p.Target), p.DrawKind, p.Amount, p.Duration)
	case EffectStatusBonusDamage:
		if ctx.Foe.Statuses.Has(p.Status) {
			ctx.AttackBonus += p.Amount
		}
	case EffectGainBlock:
		gainBlock(ctx, ctx.Self, p.Amount)
	case EffectHeal:
		c := ctx.target(p.Target)
		oldHP := c.Health
		if c.Heal(p.Amount) > 0 {
			ctx.emit(log.NewHPChangeEvent(ctx.State.Round, c.Name, oldHP, c.Health, ctx.sourceName()))
		}
	case EffectGainEnergy:
		ctx.Self.Energy = max(ctx.Self.Energy+p.Amount, 0)
		ctx.emit(log.NewEnergyEvent(ctx.State.Round, ctx.Self.Name, p.Amount, ctx.Self.Energy))
	case EffectDrawCards:
		if ctx.engine != nil {
			ctx.engine.drawCards(ctx.State, ctx.Self, max(p.Count, 0))
		}
	case EffectAddToHand:
		addToHand(ctx, ctx.Self, p.Count)
	case EffectPersistBlock:
		ctx.Self.PersistentBlock = true
	case EffectAmbush:
		// read by turn order at battle start
	}
}

func applyStatus(ctx *EffectContext, c *Combatant, t StatusType, stacks, duration int, attached []EffectInstance) {
	if t == StatusNone {
		return
	}
	m := c.Statuses.Add(t, stacks, duration, attached...)
	if m == nil {
		return
	}
	ctx.emit(log.NewStatusEvent(ctx.State.Round, c.Name, log.EventStatusApplied, t.String(), m.Stacks, m.Duration))
}

// directDamage deals fixed damage that bypasses the attack pipeline and
// damage triggers, but not block.
func directDamage(ctx *EffectContext, c *Combatant, amount int) {
	if amount <= 0 {
		return
	}
	oldHP := c.Health
	absorbed, lost := ApplyDamage(c, amount)
	ctx.emit(log.NewDamageEvent(ctx.State.Round, ctx.sourceName(), c.Name, amount, absorbed, ctx.sourceName()))
	if lost > 0 {
		ctx.emit(log.NewHPChangeEvent(ctx.State.Round, c.Name, oldHP, c.Health, ctx.sourceName()))
	}
}

func addToDiscard(ctx *EffectContext, c *Combatant, count int) {
	count = max(count, 1)
	for _, tmpl := range ctx.related() {
		for i := 0; i < count; i++ {
			c.Deck.Discard.Push(ctx.State.NewInstance(tmpl))
			ctx.emit(log.NewCardMoveEvent(ctx.State.Round, c.Name, log.EventAddCard, tmpl.Name))
		}
	}
}

func addToHand(ctx *EffectContext, c *Combatant, count int) {
	count = max(count, 1)
	for _, tmpl := range ctx.related() {
		for i := 0; i < count; i++ {
			c.Hand.Push(ctx.State.NewInstance(tmpl))
			ctx.emit(log.NewCardMoveEvent(ctx.State.Round, c.Name, log.EventAddCard, tmpl.Name))
		}
	}
	if ctx.engine != nil {
		ctx.engine.enforceHandSize(ctx.State, c)
	}
}

func modifyDraw(ctx *EffectContext, c *Combatant, kind DrawModKind, value, duration int) {
	turns := max(duration, 1)
	c.DrawMods = append(c.DrawMods, DrawModifier{
		Kind:      kind,
		Value:     value,
		Source:    ctx.sourceName(),
		Remaining: turns,
	})
	ctx.emit(log.NewDrawModifierEvent(ctx.State.Round, c.Name, kind.String(), value, turns))
}

func gainBlock(ctx *EffectContext, c *Combatant, amount int) {
	gain := BlockGain(amount, &c.Statuses)
	if gain <= 0 {
		return
	}
	c.AddBlock(gain)
	ctx.emit(log.NewBlockEvent(ctx.State.Round, c.Name, gain, c.Block))
}
