package game

// AI scoring weights.
const (
	comboBonus       = 1000 // any play of more than one card
	energyWeight     = 10   // per energy spent
	mixedTypesBonus  = 50   // combination spans more than one primary type
	empoweredBonus   = 500
	specialTagBonus  = 5
	cheapCostWeight  = 2 // per energy below 3
	nonAttackBase    = 30
	effectAttackBase = 20
	plainAttackBase  = 10
)

// CardPriority is a card's intrinsic AI preference: non-attack cards over
// attacks that carry effects over plain attacks, weighted towards cheap and
// rare cards.
func CardPriority(card *Card) int {
	prio := plainAttackBase
	switch {
	case !card.IsAttack():
		prio = nonAttackBase
	case len(card.Effects) > 0:
		prio = effectAttackBase
	}
	prio += max(0, 3-card.Cost) * cheapCostWeight
	switch card.Rarity {
	case RarityUncommon:
		prio += 2
	case RarityRare:
		prio += 5
	case RaritySpecial:
		prio += 8
	}
	if card.Tags.Has(TagSpecial) {
		prio += specialTagBonus
	}
	return prio
}

// primaryType buckets a card by its dominant type tag for the mixed-types
// bonus: Power, then Skill, then Attack, with everything else (curses,
// minions) sharing one bucket. Delivery and modifier tags such as Melee,
// Ranged, Volatile and Special never count, so a Melee attack paired with a
// Ranged attack is not a mixed play.
func primaryType(card *Card) Tag {
	switch {
	case card.Tags.Has(TagPower):
		return TagPower
	case card.Tags.Has(TagSkill):
		return TagSkill
	case card.Tags.Has(TagAttack), card.Attack > 0:
		return TagAttack
	}
	return TagCurse
}

type candidate struct {
	ci   *CardInstance
	prio int
}

// SelectPlays picks the cards the opponent plays this turn, in play order.
// Every step searches all pairs that fit the remaining energy, then falls back
// to the best single card; chosen cards leave the simulated hand and their
// cost leaves the simulated energy until nothing affordable remains.
//
// The function is pure: it reads the battle state for conditions but never
// mutates it.
func SelectPlays(hand []*CardInstance, energy int, bs *BattleState, self, target *Combatant, conds Conditions) []*CardInstance {
	var pool []candidate
	for _, ci := range hand {
		card := ci.Card
		if card.Unplayable || card.Cost > energy {
			continue
		}
		ctx := ConditionContext{State: bs, Self: self, Target: target, Card: ci}
		if !conds.Enabled(ctx) {
			continue
		}
		prio := CardPriority(card)
		if conds.Empowered(ctx) {
			prio += empoweredBonus
		}
		pool = append(pool, candidate{ci: ci, prio: prio})
	}

	var empowered []candidate
	for _, c := range pool {
		if conds.Empowered(ConditionContext{State: bs, Self: self, Target: target, Card: c.ci}) {
			empowered = append(empowered, c)
		}
	}
	if len(empowered) > 0 {
		pool = empowered
	}

	var plays []*CardInstance
	for len(pool) > 0 {
		picked := bestCombination(pool, energy)
		if len(picked) == 0 {
			break
		}
		for _, i := range picked {
			plays = append(plays, pool[i].ci)
			energy -= pool[i].ci.Card.Cost
		}
		pool = without(pool, picked)
	}
	return plays
}

// bestCombination returns pool indexes of the best-scoring play within
// energy, highest priority first. Pairs always outscore singles; ties keep
// the earliest combination in hand order.
func bestCombination(pool []candidate, energy int) []int {
	best, bestScore := []int(nil), -1
	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			a, b := pool[i].ci.Card, pool[j].ci.Card
			cost := a.Cost + b.Cost
			if cost > energy {
				continue
			}
			score := comboBonus + pool[i].prio + pool[j].prio + energyWeight*cost
			if primaryType(a) != primaryType(b) {
				score += mixedTypesBonus
			}
			if score > bestScore {
				bestScore = score
				if pool[j].prio > pool[i].prio {
					best = []int{j, i}
				} else {
					best = []int{i, j}
				}
			}
		}
	}
	if best != nil {
		return best
	}

	for i, c := range pool {
		if c.ci.Card.Cost > energy {
			continue
		}
		if score := c.prio + energyWeight*c.ci.Card.Cost; score > bestScore {
			bestScore = score
			best = []int{i}
		}
	}
	return best
}

func without(pool []candidate, picked []int) []candidate {
	drop := make(map[int]bool, len(picked))
	for _, i := range picked {
		drop[i] = true
	}
	out := pool[:0:0]
	for i, c := range pool {
		if !drop[i] {
			out = append(out, c)
		}
	}
	return out
}
