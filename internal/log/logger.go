package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging battle events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	actor := e.Actor
	// Pad actor to 9 chars for alignment
	for len(actor) < 9 {
		actor += " "
	}
	return fmt.Sprintf("R%-2d %s| %s", e.Round, actor, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// highlightWords are bolded by Highlight.
var highlightWords = []string{
	"Bleeding", "Evasive", "Weak", "Vulnerable", "Strength", "Dexterity", "HandHex",
	"block", "damage", "burned", "evaded",
}

// Highlight wraps battle keywords in markdown bold markers. It is a pure
// display transform; the engine never reads its output back.
func Highlight(line string) string {
	for _, w := range highlightWords {
		line = strings.ReplaceAll(line, w, "**"+w+"**")
	}
	return line
}

// Tail returns the last n lines of a battle log.
func Tail(lines []string, n int) []string {
	if n <= 0 || len(lines) == 0 {
		return nil
	}
	if n > len(lines) {
		n = len(lines)
	}
	out := make([]string, n)
	copy(out, lines[len(lines)-n:])
	return out
}

// --- Helper constructors for common events ---

func NewBattleStartEvent(player, opponent string) GameEvent {
	return GameEvent{
		Type:    EventBattleStart,
		Details: fmt.Sprintf("Battle begins: %s vs %s", player, opponent),
	}
}

func NewTurnOrderEvent(first string, reason string) GameEvent {
	return GameEvent{
		Actor:   first,
		Type:    EventTurnOrder,
		Details: fmt.Sprintf("%s takes the first turn (%s)", first, reason),
	}
}

func NewTurnEvent(round int, actor string) GameEvent {
	return GameEvent{
		Round:   round,
		Actor:   actor,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Round %d: %s's turn ===", round, actor),
	}
}

func NewDrawEvent(round int, actor string, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Actor:   actor,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", actor, cardName),
	}
}

func NewReshuffleEvent(round int, actor string, count int) GameEvent {
	return GameEvent{
		Round:   round,
		Actor:   actor,
		Type:    EventReshuffle,
		Details: fmt.Sprintf("%s shuffles %d cards from the discard pile into the deck", actor, count),
	}
}

func NewPlayEvent(round int, actor string, cardName string, cost int) GameEvent {
	return GameEvent{
		Round:   round,
		Actor:   actor,
		Type:    EventPlay,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s (cost %d)", actor, cardName, cost),
	}
}

func NewRejectedEvent(round int, actor string, cardName string, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Actor:   actor,
		Type:    EventRejected,
		Card:    cardName,
		Details: fmt.Sprintf("%s cannot play %s: %s", actor, cardName, reason),
	}
}

func NewDamageEvent(round int, actor string, target string, amount, absorbed int, source string) GameEvent {
	details := fmt.Sprintf("%s deals %d damage to %s", actor, amount, target)
	if absorbed > 0 {
		details += fmt.Sprintf(" (%d absorbed by block)", absorbed)
	}
	if source != "" {
		details += " with " + source
	}
	return GameEvent{
		Round:   round,
		Actor:   actor,
		Type:    EventDamage,
		Card:    source,
		Details: details,
	}
}

func NewEvadeEvent(round int, actor string, defender string, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Actor:   actor,
		Type:    EventEvade,
		Card:    cardName,
		Details: fmt.Sprintf("%s evaded %s", defender, cardName),
	}
}

func NewBlockEvent(round int, actor string, gained, total int) GameEvent {
	return GameEvent{
		Round:   round,
		Actor:   actor,
		Type:    EventBlock,
		Details: fmt.Sprintf("%s gains %d block (now %d)", actor, gained, total),
	}
}

func NewHPChangeEvent(round int, actor string, oldHP, newHP int, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Actor:   actor,
		Type:    EventHPChange,
		Details: fmt.Sprintf("%s HP: %d → %d (%s)", actor, oldHP, newHP, reason),
	}
}

func NewStatusEvent(round int, actor string, typ EventType, status string, stacks, duration int) GameEvent {
	var details string
	switch typ {
	case EventStatusExpired:
		details = fmt.Sprintf("%s's %s wears off", actor, status)
	case EventStatusConsumed:
		details = fmt.Sprintf("%s's %s is consumed (%d left)", actor, status, stacks)
	default:
		details = fmt.Sprintf("%s gains %s %d (%d turns)", actor, status, stacks, duration)
	}
	return GameEvent{
		Round:   round,
		Actor:   actor,
		Type:    typ,
		Details: details,
	}
}

func NewCardMoveEvent(round int, actor string, typ EventType, cardName string) GameEvent {
	var details string
	switch typ {
	case EventBurn:
		details = fmt.Sprintf("%s is burned", cardName)
	case EventHandSizeDiscard:
		details = fmt.Sprintf("%s discards %s (hand full)", actor, cardName)
	case EventAddCard:
		details = fmt.Sprintf("%s is added for %s", cardName, actor)
	default:
		details = fmt.Sprintf("%s discards %s", actor, cardName)
	}
	return GameEvent{
		Round:   round,
		Actor:   actor,
		Type:    typ,
		Card:    cardName,
		Details: details,
	}
}

func NewWinEvent(round int, winner string, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Actor:   winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", winner, reason),
	}
}

func NewDrawModifierEvent(round int, actor string, kind string, value, turns int) GameEvent {
	return GameEvent{
		Round:   round,
		Actor:   actor,
		Type:    EventDrawModifier,
		Details: fmt.Sprintf("%s's draw is modified: %s %d (%d turns)", actor, kind, value, turns),
	}
}

func NewEnergyEvent(round int, actor string, gained, total int) GameEvent {
	return GameEvent{
		Round:   round,
		Actor:   actor,
		Type:    EventEnergy,
		Details: fmt.Sprintf("%s gains %d energy (%d)", actor, gained, total),
	}
}
