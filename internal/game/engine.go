package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/peterkuimelis/deckclash/internal/log"
)

// EngineConfig holds configuration for a battle engine.
type EngineConfig struct {
	Logger      log.EventLogger
	Seed        int64 // RNG seed (0 for random)
	NoShuffle   bool  // skip the battle-start deck shuffle (for deterministic tests)
	BaseDraw    int   // cards drawn per turn before modifiers (0 = BaseDrawCount)
	MaxHandSize int   // 0 = MaxHandSize
}

// Engine runs battles. It owns the RNG used for shuffles and opponent
// selection; every operation runs to completion synchronously and has
// exclusive access to the BattleState it is given.
type Engine struct {
	catalog   *Catalog
	logger    log.EventLogger
	rng       *rand.Rand
	noShuffle bool
	baseDraw  int
	maxHand   int
}

// Result is what a state-changing engine call returns: the mutated state and
// the log lines it appended.
type Result struct {
	State  *BattleState
	Log    []string
	Played []*CardInstance // cards that resolved during the call
}

// NewEngine creates an engine over a content catalog.
func NewEngine(catalog *Catalog, cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	baseDraw := cfg.BaseDraw
	if baseDraw == 0 {
		baseDraw = BaseDrawCount
	}
	maxHand := cfg.MaxHandSize
	if maxHand == 0 {
		maxHand = MaxHandSize
	}
	if catalog == nil {
		catalog = &Catalog{}
	}
	return &Engine{
		catalog:   catalog,
		logger:    logger,
		rng:       rand.New(rand.NewSource(seed)),
		noShuffle: cfg.NoShuffle,
		baseDraw:  baseDraw,
		maxHand:   maxHand,
	}
}

// Catalog returns the engine's content catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Logger returns the engine's event logger.
func (e *Engine) Logger() log.EventLogger {
	return e.logger
}

// CreateBattle picks an opponent of the given difficulty from the pool and
// starts a battle against it.
func (e *Engine) CreateBattle(player *CombatantDef, pool []*OpponentDef, difficulty Difficulty) (*BattleState, error) {
	var matches []*OpponentDef
	for _, o := range pool {
		if o.Difficulty == difficulty {
			matches = append(matches, o)
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoOpponent, difficulty)
	}
	opp := matches[e.rng.Intn(len(matches))]

	bs := e.NewBattle(player, &opp.CombatantDef)
	bs.OpponentID = opp.ID
	bs.Difficulty = difficulty
	return bs, nil
}

// NewBattle builds both sides, decides turn order and starts the first turn.
func (e *Engine) NewBattle(player, opponent *CombatantDef) *BattleState {
	p := NewCombatant(SidePlayer, player.Name, player.MaxHealth, player.MaxEnergy)
	o := NewCombatant(SideOpponent, opponent.Name, opponent.MaxHealth, opponent.MaxEnergy)
	bs := NewBattleState(p, o)

	for i, def := range []*CombatantDef{player, opponent} {
		c := bs.Sides[i]
		for _, card := range def.Deck {
			c.Deck.Draw.Push(bs.NewInstance(card))
		}
		if !e.noShuffle {
			c.Deck.Draw.Shuffle(e.rng)
		}
		c.Passives = append(c.Passives, def.Passives...)
	}

	e.emit(bs, log.NewBattleStartEvent(p.Name, o.Name))

	first, reason := turnOrder(p, o)
	e.emit(bs, log.NewTurnOrderEvent(bs.Side(first).Name, reason))

	e.fireTriggers(bs, first, TriggerBattleBegin)
	e.fireTriggers(bs, first.Other(), TriggerBattleBegin)
	bs.Turn = turnOf(first)
	if !e.settle(bs) {
		e.startTurn(bs, first)
	}
	return bs
}

// turnOrder decides who acts first: a side holding an ambush effect goes
// first; when both do, the opponent wins the tie.
func turnOrder(p, o *Combatant) (Side, string) {
	switch pa, oa := p.HasAmbush(), o.HasAmbush(); {
	case pa && oa:
		return SideOpponent, "both sides ambush; opponent wins the tie"
	case oa:
		return SideOpponent, "ambush"
	case pa:
		return SidePlayer, "ambush"
	default:
		return SidePlayer, "default"
	}
}

// PlayCard plays a card from a side's hand. An unaffordable, unplayable,
// disabled or misplaced card is rejected with a single log line and no state
// change.
func (e *Engine) PlayCard(bs *BattleState, side Side, card *CardInstance) Result {
	start := len(bs.Log)
	res := Result{State: bs}
	if e.playCard(bs, side, card) {
		res.Played = []*CardInstance{card}
	}
	res.Log = copyLines(bs.Log[start:])
	return res
}

// EndTurn ends the active side's turn and starts the other side's turn.
func (e *Engine) EndTurn(bs *BattleState) Result {
	start := len(bs.Log)
	e.endTurn(bs)
	return Result{State: bs, Log: copyLines(bs.Log[start:])}
}

// maxOpponentPlays bounds the opponent loop; every card is removed from hand
// when played, so this is only reached by runaway draw effects.
const maxOpponentPlays = 64

// OpponentAct lets the AI play cards until it has no affordable play left,
// then ends the opponent's turn.
func (e *Engine) OpponentAct(bs *BattleState) Result {
	start := len(bs.Log)
	res := Result{State: bs}
	if bs.Over || bs.Turn != OpponentTurn {
		res.Log = copyLines(bs.Log[start:])
		return res
	}

	opp, player := bs.Opponent(), bs.Player()
	for i := 0; i < maxOpponentPlays && !bs.Over; i++ {
		plays := SelectPlays(opp.Hand.Cards(), opp.Energy, bs, opp, player, e.catalog.conditions)
		if len(plays) == 0 {
			break
		}
		if !e.playCard(bs, SideOpponent, plays[0]) {
			break
		}
		res.Played = append(res.Played, plays[0])
	}
	if !bs.Over {
		e.endTurn(bs)
	}
	res.Log = copyLines(bs.Log[start:])
	return res
}

// playCard is the single play path shared by the player and the AI.
func (e *Engine) playCard(bs *BattleState, side Side, ci *CardInstance) bool {
	actor, foe := bs.Side(side), bs.Side(side.Other())
	name := "(unknown card)"
	if ci != nil && ci.Card != nil {
		name = ci.Card.Name
	}
	reject := func(reason string) bool {
		e.emit(bs, log.NewRejectedEvent(bs.Round, actor.Name, name, reason))
		return false
	}

	switch {
	case bs.Over:
		return reject("the battle is over")
	case bs.Turn.Side() != side:
		return reject("it is not their turn")
	case ci == nil || ci.Card == nil:
		return reject("no card given")
	}
	idx := actor.Hand.IndexOf(ci.ID)
	if idx < 0 {
		return reject("the card is not in hand")
	}
	card := ci.Card
	if card.Unplayable {
		return reject("the card is unplayable")
	}
	if card.Cost > actor.Energy {
		return reject(fmt.Sprintf("not enough energy (%d/%d)", actor.Energy, card.Cost))
	}
	if !e.catalog.conditions.Enabled(ConditionContext{State: bs, Self: actor, Target: foe, Card: ci}) {
		return reject("its condition is not met")
	}

	actor.SpendEnergy(card.Cost)
	actor.Hand.RemoveAt(idx)
	e.emit(bs, log.NewPlayEvent(bs.Round, actor.Name, card.Name, card.Cost))

	ctx := &EffectContext{
		State:  bs,
		Self:   actor,
		Foe:    foe,
		Source: ci,
		engine: e,
	}
	for _, eff := range card.Effects {
		if bs.Over {
			break
		}
		if eff.Trigger != TriggerNone {
			e.registerPower(actor, ci, eff)
			continue
		}
		Dispatch(ctx, eff)
		e.settle(bs)
	}

	if !bs.Over && card.IsAttack() {
		e.resolveAttack(bs, actor, foe, card.Attack+ctx.AttackBonus, card.Tags, card.Name)
	}
	if !bs.Over && card.Defense > 0 {
		gain := BlockGain(card.Defense, &actor.Statuses)
		actor.AddBlock(gain)
		e.emit(bs, log.NewBlockEvent(bs.Round, actor.Name, gain, actor.Block))
	}

	switch {
	case card.Tags.Has(TagVolatile), card.Tags.Has(TagPower):
		actor.Burned.Push(ci)
		e.emit(bs, log.NewCardMoveEvent(bs.Round, actor.Name, log.EventBurn, card.Name))
	default:
		actor.Deck.Discard.Push(ci)
	}
	actor.PlayedThisTurn = append(actor.PlayedThisTurn, ci)

	if !bs.Over {
		e.fireTriggers(bs, side, TriggerOnCardPlay)
	}
	e.settle(bs)
	return true
}

// resolveAttack runs an attack magnitude through the damage pipeline and
// applies the result.
func (e *Engine) resolveAttack(bs *BattleState, attacker, defender *Combatant, base int, tags TagSet, source string) {
	res := ResolveDamage(base, tags, &attacker.Statuses, &defender.Statuses)
	if res.Evaded {
		defender.EvadedSinceOwnTurn = true
		e.emit(bs, log.NewEvadeEvent(bs.Round, attacker.Name, defender.Name, source))
		e.emit(bs, log.NewStatusEvent(bs.Round, defender.Name, log.EventStatusConsumed,
			StatusEvasive.String(), defender.Statuses.Stacks(StatusEvasive), 0))
		return
	}

	oldHP := defender.Health
	absorbed, lost := ApplyDamage(defender, res.Damage)
	e.emit(bs, log.NewDamageEvent(bs.Round, attacker.Name, defender.Name, res.Damage, absorbed, source))
	if lost > 0 {
		e.emit(bs, log.NewHPChangeEvent(bs.Round, defender.Name, oldHP, defender.Health, source))
	}
	if e.settle(bs) || res.Damage == 0 {
		return
	}
	e.fireTriggers(bs, attacker.Side, TriggerOnDamageDealing)
	e.fireTriggers(bs, defender.Side, TriggerOnDamageIncoming)
}

// registerPower attaches a triggered card effect to its player for the rest
// of the battle.
func (e *Engine) registerPower(actor *Combatant, ci *CardInstance, eff EffectInstance) {
	actor.Passives = append(actor.Passives, &Passive{
		ID:      fmt.Sprintf("power:%s:%d", ci.Card.ID, ci.ID),
		Name:    ci.Card.Name,
		Trigger: eff.Trigger,
		Effects: []EffectInstance{eff},
		Related: ci.Card.Related,
	})
}

// settle checks for victory or defeat and announces the outcome once,
// clearing both sides' statuses. Returns true if the battle is over.
func (e *Engine) settle(bs *BattleState) bool {
	if bs.Over {
		return true
	}
	if !bs.checkOutcome() {
		return false
	}
	for _, c := range bs.Sides {
		c.Statuses.Clear()
	}
	e.emit(bs, log.NewWinEvent(bs.Round, bs.Side(bs.Winner).Name, bs.Result))
	return true
}

// emit appends an event to the battle log and the engine logger.
func (e *Engine) emit(bs *BattleState, ev log.GameEvent) {
	if ev.Round == 0 {
		ev.Round = bs.Round
	}
	bs.Log = append(bs.Log, ev.Details)
	e.logger.Log(ev)
}

func copyLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
