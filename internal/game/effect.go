package game

import (
	"fmt"
	"strings"
)

// EffectCode names a registered effect handler.
type EffectCode int

const (
	EffectNone EffectCode = iota
	EffectApplyStatus
	EffectDirectDamage
	EffectAddToDiscard
	EffectSelfStatusScaled // self status whose duration is computed from current stacks
	EffectModifyDraw
	EffectStatusBonusDamage // bonus attack damage while the target holds a status
	EffectGainBlock
	EffectHeal
	EffectGainEnergy
	EffectDrawCards
	EffectAddToHand
	EffectPersistBlock
	EffectAmbush // marker: first-turn priority, no runtime action
	effectCodeCount
)

var effectCodeNames = [effectCodeCount]string{
	"None", "ApplyStatus", "DirectDamage", "AddToDiscard", "SelfStatusScaled", "ModifyDraw",
	"StatusBonusDamage", "GainBlock", "Heal", "GainEnergy", "DrawCards", "AddToHand", "PersistBlock", "Ambush",
}

func (c EffectCode) String() string {
	if c < 0 || c >= effectCodeCount {
		return fmt.Sprintf("EffectCode(%d)", int(c))
	}
	return effectCodeNames[c]
}

// ParseEffectCode resolves an effect code name. Unknown names map to an
// out-of-range code so that the effect is carried but ignored at runtime.
func ParseEffectCode(name string) EffectCode {
	for i, n := range effectCodeNames {
		if strings.EqualFold(n, name) {
			return EffectCode(i)
		}
	}
	return effectCodeCount
}

// Target selects which side an effect applies to, relative to its source.
type Target int

const (
	TargetOpponent Target = iota
	TargetSelf
)

func ParseTarget(name string) (Target, error) {
	switch strings.ToLower(name) {
	case "", "opponent", "enemy":
		return TargetOpponent, nil
	case "self":
		return TargetSelf, nil
	}
	return 0, fmt.Errorf("unknown effect target %q", name)
}

// EffectParams is the structured payload of an effect. Each handler reads
// only the fields it needs.
type EffectParams struct {
	Target     Target
	Status     StatusType
	FromStatus StatusType // SelfStatusScaled: duration comes from this status's stacks
	Stacks     int
	Duration   int
	Amount     int
	DrawKind   DrawModKind
	Count      int              // cards to add/draw
	Attached   []EffectInstance // effects attached to an applied status
}

// EffectInstance is one structured effect on a card, passive or status.
type EffectInstance struct {
	Code    EffectCode
	Params  EffectParams
	Trigger TriggerPhase // TriggerNone = fires immediately
}

func (e EffectInstance) String() string {
	if e.Trigger == TriggerNone {
		return e.Code.String()
	}
	return fmt.Sprintf("%s@%s", e.Code, e.Trigger)
}

// Passive is a set of effects a combatant carries for the whole battle,
// optionally gated by a trigger phase and a health threshold.
type Passive struct {
	ID          string
	Name        string
	Description string
	Trigger     TriggerPhase
	Effects     []EffectInstance
	Related     []*Card
	HealthBelow int  // percent of max health; 0 = ungated
	Once        bool // fires at most once per battle
}

// HasEffect reports whether the passive carries an effect with the given code.
func (p *Passive) HasEffect(code EffectCode) bool {
	for _, e := range p.Effects {
		if e.Code == code {
			return true
		}
	}
	return false
}
