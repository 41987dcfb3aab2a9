package game

import (
	"fmt"
	"strings"
)

type StatusType int

const (
	StatusNone StatusType = iota
	StatusBleeding
	StatusEvasive
	StatusWeak
	StatusVulnerable
	StatusStrength
	StatusDexterity
	StatusHandHex
	statusTypeCount
)

var statusNames = [statusTypeCount]string{"", "Bleeding", "Evasive", "Weak", "Vulnerable", "Strength", "Dexterity", "HandHex"}

func (s StatusType) String() string {
	if s <= 0 || s >= statusTypeCount {
		return "None"
	}
	return statusNames[s]
}

func ParseStatus(name string) (StatusType, error) {
	if name == "" {
		return StatusNone, nil
	}
	for i := 1; i < int(statusTypeCount); i++ {
		if strings.EqualFold(statusNames[i], name) {
			return StatusType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", name)
}

// StackMode controls what happens when a status is applied to a holder that
// already has it.
type StackMode int

const (
	StackAdditive StackMode = iota // sum stacks, refresh duration
	StackReplace                   // keep stacks, refresh duration
)

const uncapped = 999

type statusRule struct {
	mode      StackMode
	maxStacks int
	// stackCapped types never expire by duration; they are only removed by
	// consumption or at battle end.
	stackCapped bool
}

var statusRules = [statusTypeCount]statusRule{
	StatusBleeding:   {mode: StackAdditive, maxStacks: 5, stackCapped: true},
	StatusEvasive:    {mode: StackAdditive, maxStacks: 3, stackCapped: true},
	StatusWeak:       {mode: StackReplace, maxStacks: uncapped},
	StatusVulnerable: {mode: StackReplace, maxStacks: uncapped},
	StatusStrength:   {mode: StackAdditive, maxStacks: uncapped},
	StatusDexterity:  {mode: StackAdditive, maxStacks: uncapped},
	StatusHandHex:    {mode: StackAdditive, maxStacks: uncapped},
}

// StackingMode returns the stacking mode of a status type.
func (s StatusType) StackingMode() StackMode {
	return statusRules[s].mode
}

// MaxStacks returns the stack cap of a status type.
func (s StatusType) MaxStacks() int {
	return statusRules[s].maxStacks
}

// StackCapped reports whether the type is bounded by stacks rather than duration.
func (s StatusType) StackCapped() bool {
	return statusRules[s].stackCapped
}

// StatusMod is one active modifier on a combatant.
type StatusMod struct {
	Type     StatusType
	Stacks   int
	Duration int              // remaining turns; ignored for stack-capped types
	Effects  []EffectInstance // fired for the holder on their trigger
}

func (m *StatusMod) String() string {
	if m.Type.StackCapped() {
		return fmt.Sprintf("%s %d", m.Type, m.Stacks)
	}
	return fmt.Sprintf("%s %d (%dt)", m.Type, m.Stacks, m.Duration)
}

// StatusList holds a combatant's active modifiers, at most one per type,
// in order of first application.
type StatusList struct {
	mods []*StatusMod
}

// Get returns the active modifier of the given type, or nil.
func (l *StatusList) Get(t StatusType) *StatusMod {
	for _, m := range l.mods {
		if m.Type == t {
			return m
		}
	}
	return nil
}

// Stacks returns the current stacks of a type (0 when absent).
func (l *StatusList) Stacks(t StatusType) int {
	if m := l.Get(t); m != nil {
		return m.Stacks
	}
	return 0
}

func (l *StatusList) Has(t StatusType) bool {
	return l.Stacks(t) > 0
}

// Mods returns a copy of the active modifiers.
func (l *StatusList) Mods() []StatusMod {
	out := make([]StatusMod, 0, len(l.mods))
	for _, m := range l.mods {
		out = append(out, *m)
	}
	return out
}

func (l *StatusList) Len() int {
	return len(l.mods)
}

// Add applies a status. An existing instance follows its type's stacking
// mode; the result is always capped. Returns the resulting modifier, or nil
// when nothing was applied.
func (l *StatusList) Add(t StatusType, stacks, duration int, attached ...EffectInstance) *StatusMod {
	if t <= StatusNone || t >= statusTypeCount {
		return nil
	}
	rule := statusRules[t]
	if duration < 1 {
		duration = 1
	}

	if m := l.Get(t); m != nil {
		if rule.mode == StackAdditive {
			m.Stacks += max(stacks, 0)
		}
		m.Duration = duration
		m.Stacks = min(m.Stacks, rule.maxStacks)
		if len(attached) > 0 {
			m.Effects = attached
		}
		return m
	}

	if stacks <= 0 {
		if rule.mode == StackAdditive {
			return nil
		}
		stacks = 1
	}
	m := &StatusMod{
		Type:     t,
		Stacks:   min(stacks, rule.maxStacks),
		Duration: duration,
		Effects:  attached,
	}
	l.mods = append(l.mods, m)
	return m
}

// Tick advances durations by one round. Stack-capped types keep their stacks
// (re-capped) and never expire here; all others lose one turn of duration and
// are removed at zero. Returns the expired types.
func (l *StatusList) Tick() []StatusType {
	var expired []StatusType
	kept := l.mods[:0]
	for _, m := range l.mods {
		rule := statusRules[m.Type]
		if rule.stackCapped {
			m.Stacks = min(m.Stacks, rule.maxStacks)
			kept = append(kept, m)
			continue
		}
		m.Duration--
		if m.Duration <= 0 {
			expired = append(expired, m.Type)
			continue
		}
		kept = append(kept, m)
	}
	clear(l.mods[len(kept):])
	l.mods = kept
	return expired
}

// Consume removes exactly one stack of a type, deleting the modifier when it
// reaches zero. Returns false when the type was not held.
func (l *StatusList) Consume(t StatusType) bool {
	for i, m := range l.mods {
		if m.Type != t {
			continue
		}
		m.Stacks--
		if m.Stacks <= 0 {
			l.remove(i)
		}
		return true
	}
	return false
}

// Remove deletes the modifier of a type if present.
func (l *StatusList) Remove(t StatusType) {
	for i, m := range l.mods {
		if m.Type == t {
			l.remove(i)
			return
		}
	}
}

// Clear drops all modifiers (battle end).
func (l *StatusList) Clear() {
	l.mods = nil
}

func (l *StatusList) remove(i int) {
	l.mods = append(l.mods[:i], l.mods[i+1:]...)
}
