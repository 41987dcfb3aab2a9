package game

import "fmt"

const (
	BaseDrawCount = 3
	MaxHandSize   = 7
)

// Combatant is one side's entire battle state.
type Combatant struct {
	Side      Side
	Name      string
	Health    int
	MaxHealth int
	Energy    int
	MaxEnergy int
	Block     int

	Deck   *Deck
	Hand   *Pile
	Burned *Pile // removed from the game

	Statuses StatusList
	DrawMods []DrawModifier
	Passives []*Passive

	// PlayedThisTurn is the play history for the current turn.
	PlayedThisTurn []*CardInstance

	// PersistentBlock keeps the player's block through one extra round.
	PersistentBlock bool

	// EvadedSinceOwnTurn is set when this side evades an attack and cleared
	// at the end of its own turn.
	EvadedSinceOwnTurn bool

	firedOnce map[string]bool // passive IDs with Once already fired
}

// NewCombatant creates a combatant at full health with empty piles.
func NewCombatant(side Side, name string, maxHealth, maxEnergy int) *Combatant {
	return &Combatant{
		Side:      side,
		Name:      name,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		MaxEnergy: maxEnergy,
		Deck:      NewDeck(),
		Hand:      NewPile(),
		Burned:    NewPile(),
		firedOnce: make(map[string]bool),
	}
}

// HealthPercent returns current health as a percentage of max health.
func (c *Combatant) HealthPercent() int {
	if c.MaxHealth <= 0 {
		return 0
	}
	return c.Health * 100 / c.MaxHealth
}

// CardCount returns the number of cards this side owns across all zones,
// including burned cards and cards played this turn that are still in transit.
func (c *Combatant) CardCount() int {
	return c.Deck.Total() + c.Hand.Len() + c.Burned.Len()
}

// LoseHealth reduces health, floored at 0. Returns the health lost.
func (c *Combatant) LoseHealth(n int) int {
	if n <= 0 {
		return 0
	}
	lost := min(n, c.Health)
	c.Health -= lost
	return lost
}

// Heal restores health up to max health. Returns the health gained.
func (c *Combatant) Heal(n int) int {
	if n <= 0 {
		return 0
	}
	gained := min(n, c.MaxHealth-c.Health)
	if gained < 0 {
		gained = 0
	}
	c.Health += gained
	return gained
}

// SpendEnergy takes energy if enough is available.
func (c *Combatant) SpendEnergy(n int) bool {
	if n < 0 || n > c.Energy {
		return false
	}
	c.Energy -= n
	return true
}

// AddBlock increases block, never below 0.
func (c *Combatant) AddBlock(n int) {
	c.Block = max(c.Block+n, 0)
}

// HasAmbush reports whether any passive grants first-turn priority.
func (c *Combatant) HasAmbush() bool {
	for _, p := range c.Passives {
		if p.HasEffect(EffectAmbush) {
			return true
		}
	}
	return false
}

// --- BattleState ---

// BattleState holds the complete state of one encounter.
type BattleState struct {
	Sides      [2]*Combatant
	Turn       TurnState
	Round      int // 1-based; a round is one player turn and one opponent turn
	OpponentID string
	Difficulty Difficulty

	// Log is the append-only battle narration.
	Log []string

	Over   bool
	Winner Side
	Result string

	nextID int
}

// NewBattleState creates an empty battle between two named sides.
func NewBattleState(player, opponent *Combatant) *BattleState {
	player.Side = SidePlayer
	opponent.Side = SideOpponent
	return &BattleState{
		Sides: [2]*Combatant{player, opponent},
		Turn:  PlayerTurn,
		Round: 1,
	}
}

// Player returns the human side.
func (bs *BattleState) Player() *Combatant {
	return bs.Sides[SidePlayer]
}

// Opponent returns the AI side.
func (bs *BattleState) Opponent() *Combatant {
	return bs.Sides[SideOpponent]
}

// Side returns the combatant for a side.
func (bs *BattleState) Side(s Side) *Combatant {
	return bs.Sides[s]
}

// NextID generates a unique card instance ID.
func (bs *BattleState) NextID() int {
	bs.nextID++
	return bs.nextID
}

// NewInstance creates a runtime instance of a card definition.
func (bs *BattleState) NewInstance(card *Card) *CardInstance {
	return &CardInstance{Card: card, ID: bs.NextID()}
}

// CheckVictory reports whether the opponent has been defeated.
func CheckVictory(bs *BattleState) bool {
	return bs.Opponent().Health <= 0
}

// CheckDefeat reports whether the player has been defeated.
func CheckDefeat(bs *BattleState) bool {
	return bs.Player().Health <= 0
}

// checkOutcome marks the battle over when either side has fallen.
// Returns true if the battle is over.
func (bs *BattleState) checkOutcome() bool {
	if bs.Over {
		return true
	}
	switch {
	case CheckDefeat(bs):
		bs.Over = true
		bs.Winner = SideOpponent
		bs.Result = fmt.Sprintf("%s wins: %s's health reached 0", bs.Opponent().Name, bs.Player().Name)
	case CheckVictory(bs):
		bs.Over = true
		bs.Winner = SidePlayer
		bs.Result = fmt.Sprintf("%s wins: %s's health reached 0", bs.Player().Name, bs.Opponent().Name)
	}
	return bs.Over
}
