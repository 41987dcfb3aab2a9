package game

// Damage pipeline constants.
const (
	StrengthPerStack = 3
	BleedingPerStack = 1
)

// DamageResult is the outcome of resolving one attack magnitude.
type DamageResult struct {
	Damage int  // final non-negative damage before block
	Evaded bool // attack fully prevented by Evasive
}

// ResolveDamage computes final attack damage from a base magnitude, the
// attacker's and defender's modifiers and the source card's tags. Steps run
// in a fixed order:
//
//  1. Evasive: a Melee/Attack card against an Evasive defender deals 0 and
//     consumes one Evasive stack; nothing else runs.
//  2. Weak (attacker, Attack cards only): ×0.5, floored.
//  3. Strength (attacker): +3 per stack.
//  4. Vulnerable (defender): ×1.5, floored.
//  5. Bleeding (attacker): −1 per stack, floored at 0.
//
// Strength is added before Vulnerable multiplies, so the bonus is amplified:
// a 6 attack with Strength 1 against a Vulnerable defender deals
// (6+3)×1.5 = 13. Applying Vulnerable ahead of Strength would give
// 6×1.5+3 = 12 instead.
//
// The defender's Evasive stack is consumed in place.
func ResolveDamage(base int, tags TagSet, attacker, defender *StatusList) DamageResult {
	dmg := max(base, 0)

	if defender.Has(StatusEvasive) && (tags.Has(TagMelee) || tags.Has(TagAttack)) {
		defender.Consume(StatusEvasive)
		return DamageResult{Evaded: true}
	}

	if attacker.Has(StatusWeak) && tags.Has(TagAttack) {
		dmg = dmg / 2
	}

	dmg += StrengthPerStack * attacker.Stacks(StatusStrength)

	if defender.Has(StatusVulnerable) {
		dmg = dmg * 3 / 2
	}

	dmg -= BleedingPerStack * attacker.Stacks(StatusBleeding)

	return DamageResult{Damage: max(dmg, 0)}
}

// ApplyDamage applies damage to block first (1:1), then health. Returns how
// much block absorbed and how much health was lost.
func ApplyDamage(defender *Combatant, dmg int) (absorbed, lost int) {
	if dmg <= 0 {
		return 0, 0
	}
	absorbed = min(defender.Block, dmg)
	defender.Block -= absorbed
	lost = defender.LoseHealth(dmg - absorbed)
	return absorbed, lost
}

// BlockGain returns the block a card's defense grants after Dexterity.
func BlockGain(defense int, holder *StatusList) int {
	if defense <= 0 {
		return 0
	}
	return max(defense+holder.Stacks(StatusDexterity), 0)
}
