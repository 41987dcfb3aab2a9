package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func aiSides() (*BattleState, *Combatant, *Combatant) {
	opp := NewCombatant(SideOpponent, "Goblin", 30, 3)
	player := NewCombatant(SidePlayer, "Hero", 40, 3)
	return NewBattleState(player, opp), opp, player
}

func names(cards []*CardInstance) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Card.Name
	}
	return out
}

// TestSelectPlaysPrefersTwoCards: two 1-cost cards beat one 2-cost card on
// 2 energy.
func TestSelectPlaysPrefersTwoCards(t *testing.T) {
	bs, opp, player := aiSides()
	hand := instances(attackCard("A", 1, 5), attackCard("B", 1, 5), attackCard("C", 2, 12))

	plays := SelectPlays(hand, 2, bs, opp, player, DefaultConditions())
	assert.Equal(t, []string{"A", "B"}, names(plays))
}

func TestSelectPlaysMixedTypes(t *testing.T) {
	bs, opp, player := aiSides()
	hand := instances(attackCard("A", 1, 5), attackCard("B", 1, 5), defendCard("Guard", 1, 5))

	plays := SelectPlays(hand, 2, bs, opp, player, DefaultConditions())
	assert.Equal(t, []string{"Guard", "A"}, names(plays))
}

func TestSelectPlaysMeleeAndRangedAreOneType(t *testing.T) {
	bs, opp, player := aiSides()
	hand := instances(
		attackCard("Cut", 1, 5, TagAttack, TagMelee),
		attackCard("Slash", 1, 5, TagAttack, TagMelee),
		attackCard("Shot", 1, 5, TagAttack, TagRanged))

	plays := SelectPlays(hand, 2, bs, opp, player, DefaultConditions())
	assert.Equal(t, []string{"Cut", "Slash"}, names(plays))
}

func TestPrimaryType(t *testing.T) {
	cases := []struct {
		card *Card
		want Tag
	}{
		{attackCard("Shot", 1, 5, TagAttack, TagRanged), TagAttack},
		{attackCard("Flare", 1, 4, TagAttack, TagVolatile), TagAttack},
		{&Card{Name: "Rat", Attack: 4, Tags: Tags(TagMinion)}, TagAttack},
		{defendCard("Guard", 1, 5), TagSkill},
		{&Card{Name: "Rage", Tags: Tags(TagPower, TagSkill)}, TagPower},
		{&Card{Name: "Dazed", Tags: Tags(TagCurse, TagVolatile)}, TagCurse},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, primaryType(tc.card), tc.card.Name)
	}
}

func TestSelectPlaysSpendsAllEnergy(t *testing.T) {
	bs, opp, player := aiSides()
	hand := instances(attackCard("A", 1, 5), attackCard("B", 1, 5), attackCard("C", 1, 5), attackCard("D", 1, 5))

	plays := SelectPlays(hand, 3, bs, opp, player, DefaultConditions())
	assert.Equal(t, []string{"A", "B", "C"}, names(plays))
}

func TestSelectPlaysSingleFallback(t *testing.T) {
	bs, opp, player := aiSides()
	hand := instances(attackCard("Big", 3, 20), attackCard("Mid", 2, 9))

	plays := SelectPlays(hand, 2, bs, opp, player, DefaultConditions())
	assert.Equal(t, []string{"Mid"}, names(plays))
}

func TestSelectPlaysSkipsUnplayable(t *testing.T) {
	bs, opp, player := aiSides()
	curse := &Card{ID: "hex", Name: "Hex", Tags: Tags(TagCurse), Unplayable: true}
	hand := instances(curse)

	assert.Empty(t, SelectPlays(hand, 3, bs, opp, player, DefaultConditions()))
}

func TestSelectPlaysEmpoweredRestriction(t *testing.T) {
	bs, opp, player := aiSides()
	hemorrhage := attackCard("hemorrhage", 1, 4)
	hand := instances(attackCard("Strike", 1, 6), hemorrhage)

	plays := SelectPlays(hand, 3, bs, opp, player, DefaultConditions())
	assert.Len(t, plays, 2)

	player.Statuses.Add(StatusBleeding, 2, 1)
	plays = SelectPlays(hand, 3, bs, opp, player, DefaultConditions())
	assert.Equal(t, []string{"hemorrhage"}, names(plays))
}

func TestSelectPlaysEnablingCondition(t *testing.T) {
	bs, opp, player := aiSides()
	hand := instances(attackCard("riposte", 1, 8))

	assert.Empty(t, SelectPlays(hand, 3, bs, opp, player, DefaultConditions()))

	opp.EvadedSinceOwnTurn = true
	assert.Len(t, SelectPlays(hand, 3, bs, opp, player, DefaultConditions()), 1)
}

func TestCardPriorityOrdering(t *testing.T) {
	skill := defendCard("Guard", 1, 5)
	effectAttack := &Card{Name: "Gash", Cost: 1, Attack: 6, Tags: Tags(TagAttack),
		Effects: []EffectInstance{applyStatusEffect(TargetOpponent, StatusBleeding, 1, 1)}}
	plain := attackCard("Strike", 1, 6)

	assert.Greater(t, CardPriority(skill), CardPriority(effectAttack))
	assert.Greater(t, CardPriority(effectAttack), CardPriority(plain))

	cheap := attackCard("Jab", 0, 3)
	assert.Greater(t, CardPriority(cheap), CardPriority(plain))

	rare := attackCard("Strike+", 1, 6)
	rare.Rarity = RarityRare
	assert.Equal(t, CardPriority(plain)+5, CardPriority(rare))
}
