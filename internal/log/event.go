package log

// EventType enumerates all observable battle events.
type EventType int

const (
	EventBattleStart EventType = iota
	EventTurnOrder
	EventNewTurn
	EventDraw
	EventReshuffle
	EventPlay
	EventRejected
	EventDamage
	EventEvade
	EventBlock
	EventHPChange
	EventStatusApplied
	EventStatusExpired
	EventStatusConsumed
	EventDrawModifier
	EventEnergy
	EventDiscard
	EventBurn
	EventHandSizeDiscard
	EventAddCard
	EventPassive
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventBattleStart:
		return "BattleStart"
	case EventTurnOrder:
		return "TurnOrder"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventReshuffle:
		return "Reshuffle"
	case EventPlay:
		return "Play"
	case EventRejected:
		return "Rejected"
	case EventDamage:
		return "Damage"
	case EventEvade:
		return "Evade"
	case EventBlock:
		return "Block"
	case EventHPChange:
		return "HPChange"
	case EventStatusApplied:
		return "StatusApplied"
	case EventStatusExpired:
		return "StatusExpired"
	case EventStatusConsumed:
		return "StatusConsumed"
	case EventDrawModifier:
		return "DrawModifier"
	case EventEnergy:
		return "Energy"
	case EventDiscard:
		return "Discard"
	case EventBurn:
		return "Burn"
	case EventHandSizeDiscard:
		return "HandSizeDiscard"
	case EventAddCard:
		return "AddCard"
	case EventPassive:
		return "Passive"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a battle.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // which round (1-based; one player turn + one opponent turn)
	Actor   string    // acting side name ("Player", "Opponent")
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable line appended to the battle log
}
