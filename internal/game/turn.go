package game

import "github.com/peterkuimelis/deckclash/internal/log"

// endTurn closes the active side's turn and opens the other side's.
//
// Closing any turn discards the hand (Volatile cards burn) and clears the
// play history. Closing the player's turn is the one point where both sides'
// status durations and draw modifiers tick. Closing the opponent's turn
// resets the opponent's block and starts a new round.
func (e *Engine) endTurn(bs *BattleState) {
	if bs.Over {
		return
	}
	side := bs.Turn.Side()
	actor := bs.Side(side)

	e.fireTriggers(bs, side, TriggerEndOfTurn)
	if e.settle(bs) {
		return
	}

	e.discardHand(bs, actor)
	actor.PlayedThisTurn = nil
	actor.EvadedSinceOwnTurn = false

	if side == SidePlayer {
		for _, c := range bs.Sides {
			for _, t := range c.Statuses.Tick() {
				e.emit(bs, log.NewStatusEvent(bs.Round, c.Name, log.EventStatusExpired, t.String(), 0, 0))
			}
			c.DrawMods = TickDrawModifiers(c.DrawMods)
		}
		bs.Turn = OpponentTurn
	} else {
		actor.Block = 0
		bs.Turn = PlayerTurn
		bs.Round++
	}

	e.startTurn(bs, bs.Turn.Side())
}

// startTurn opens a side's turn: block upkeep, energy refill, start-of-turn
// triggers, Bleeding, then the draw.
func (e *Engine) startTurn(bs *BattleState, side Side) {
	c := bs.Side(side)
	e.emit(bs, log.NewTurnEvent(bs.Round, c.Name))

	if side == SidePlayer {
		if c.PersistentBlock {
			c.PersistentBlock = false
		} else {
			c.Block = 0
		}
	}
	c.Energy = c.MaxEnergy

	e.fireTriggers(bs, side, TriggerStartOfTurn)
	if e.settle(bs) {
		return
	}

	if stacks := c.Statuses.Stacks(StatusBleeding); stacks > 0 {
		oldHP := c.Health
		c.LoseHealth(stacks * BleedingPerStack)
		e.emit(bs, log.NewHPChangeEvent(bs.Round, c.Name, oldHP, c.Health, StatusBleeding.String()))
		if e.settle(bs) {
			return
		}
	}

	e.fireTriggers(bs, side, TriggerBeforeDraw)
	if e.settle(bs) {
		return
	}

	e.drawCards(bs, c, e.DrawCount(c))
	e.settle(bs)
}

// DrawCount returns how many cards a combatant draws at the start of its turn.
func (e *Engine) DrawCount(c *Combatant) int {
	n := ResolveDrawCount(e.baseDraw, c.DrawMods)
	return max(n-c.Statuses.Stacks(StatusHandHex), 0)
}

// drawCards draws n cards into a combatant's hand, reshuffling when the deck
// runs out. Damage-on-draw minions hit their drawer immediately; the hand is
// trimmed to the maximum size afterwards.
func (e *Engine) drawCards(bs *BattleState, c *Combatant, n int) int {
	drawn := 0
	for i := 0; i < n && !bs.Over; i++ {
		res := c.Deck.DrawN(1, e.rng)
		if res.Reshuffled > 0 {
			e.emit(bs, log.NewReshuffleEvent(bs.Round, c.Name, res.Reshuffled))
		}
		if len(res.Cards) == 0 {
			break
		}
		ci := res.Cards[0]
		c.Hand.Push(ci)
		drawn++
		e.emit(bs, log.NewDrawEvent(bs.Round, c.Name, ci.Card.Name))

		if ci.Card.IsDamageOnDraw() {
			oldHP := c.Health
			absorbed, _ := ApplyDamage(c, ci.Card.Attack)
			e.emit(bs, log.NewDamageEvent(bs.Round, ci.Card.Name, c.Name, ci.Card.Attack, absorbed, ""))
			if c.Health != oldHP {
				e.emit(bs, log.NewHPChangeEvent(bs.Round, c.Name, oldHP, c.Health, ci.Card.Name))
			}
			if e.settle(bs) {
				break
			}
		}
		e.fireTriggers(bs, c.Side, TriggerOnCardDraw)
		e.settle(bs)
	}
	e.enforceHandSize(bs, c)
	return drawn
}

// enforceHandSize discards the newest cards beyond the hand limit.
func (e *Engine) enforceHandSize(bs *BattleState, c *Combatant) {
	for c.Hand.Len() > e.maxHand {
		ci := c.Hand.Pop()
		if ci.Card.Tags.Has(TagVolatile) {
			c.Burned.Push(ci)
			e.emit(bs, log.NewCardMoveEvent(bs.Round, c.Name, log.EventBurn, ci.Card.Name))
			continue
		}
		c.Deck.Discard.Push(ci)
		e.emit(bs, log.NewCardMoveEvent(bs.Round, c.Name, log.EventHandSizeDiscard, ci.Card.Name))
	}
}

// discardHand moves the whole hand to the discard pile; Volatile cards burn.
func (e *Engine) discardHand(bs *BattleState, c *Combatant) {
	for _, ci := range c.Hand.TakeAll() {
		if ci.Card.Tags.Has(TagVolatile) {
			c.Burned.Push(ci)
			e.emit(bs, log.NewCardMoveEvent(bs.Round, c.Name, log.EventBurn, ci.Card.Name))
			continue
		}
		c.Deck.Discard.Push(ci)
		e.emit(bs, log.NewCardMoveEvent(bs.Round, c.Name, log.EventDiscard, ci.Card.Name))
	}
}
