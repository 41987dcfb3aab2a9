package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bareContext() *EffectContext {
	bs := NewBattleState(NewCombatant(SidePlayer, "Hero", 30, 3), NewCombatant(SideOpponent, "Rat", 30, 3))
	return &EffectContext{State: bs, Self: bs.Player(), Foe: bs.Opponent(), SourceName: "Test"}
}

func TestDispatchApplyStatus(t *testing.T) {
	ctx := bareContext()
	Dispatch(ctx, applyStatusEffect(TargetOpponent, StatusWeak, 1, 2))
	Dispatch(ctx, applyStatusEffect(TargetSelf, StatusStrength, 2, 3))

	weak := ctx.Foe.Statuses.Get(StatusWeak)
	require.NotNil(t, weak)
	assert.Equal(t, 2, weak.Duration)
	assert.Equal(t, 2, ctx.Self.Statuses.Stacks(StatusStrength))
	assert.Len(t, ctx.State.Log, 2)
}

func TestDispatchDirectDamageHitsBlockFirst(t *testing.T) {
	ctx := bareContext()
	ctx.Foe.Block = 3
	Dispatch(ctx, EffectInstance{Code: EffectDirectDamage, Params: EffectParams{Amount: 5}})

	assert.Equal(t, 0, ctx.Foe.Block)
	assert.Equal(t, 28, ctx.Foe.Health)
}

func TestDispatchAddToDiscard(t *testing.T) {
	ctx := bareContext()
	rat := &Card{ID: "rat", Name: "Rat", Attack: 3, Tags: Tags(TagMinion, TagVolatile), Unplayable: true}
	ctx.Related = []*Card{rat}
	Dispatch(ctx, EffectInstance{Code: EffectAddToDiscard, Params: EffectParams{Count: 2}})

	cards := ctx.Foe.Deck.Discard.Cards()
	require.Len(t, cards, 2)
	assert.Same(t, rat, cards[0].Card)
	assert.NotEqual(t, cards[0].ID, cards[1].ID)
}

func TestDispatchSelfStatusScaled(t *testing.T) {
	ctx := bareContext()
	ctx.Self.Statuses.Add(StatusBleeding, 2, 1)
	scaled := EffectInstance{Code: EffectSelfStatusScaled, Params: EffectParams{
		Status: StatusStrength, FromStatus: StatusBleeding, Stacks: 1, Duration: 1,
	}}
	Dispatch(ctx, scaled)

	str := ctx.Self.Statuses.Get(StatusStrength)
	require.NotNil(t, str)
	assert.Equal(t, 1, str.Stacks)
	assert.Equal(t, 3, str.Duration, "duration is base plus current Bleeding stacks")

	none := bareContext()
	scaled.Params.Duration = 0
	Dispatch(none, scaled)
	assert.Equal(t, 0, none.Self.Statuses.Len())
}

func TestDispatchModifyDraw(t *testing.T) {
	ctx := bareContext()
	Dispatch(ctx, EffectInstance{Code: EffectModifyDraw, Params: EffectParams{DrawKind: DrawSubtract, Amount: 1, Duration: 2}})

	require.Len(t, ctx.Foe.DrawMods, 1)
	mod := ctx.Foe.DrawMods[0]
	assert.Equal(t, DrawSubtract, mod.Kind)
	assert.Equal(t, 2, mod.Remaining)
	assert.Equal(t, "Test", mod.Source)
	assert.Equal(t, 2, ResolveDrawCount(BaseDrawCount, ctx.Foe.DrawMods))
}

func TestDispatchStatusBonusDamage(t *testing.T) {
	bonus := EffectInstance{Code: EffectStatusBonusDamage, Params: EffectParams{Status: StatusVulnerable, Amount: 4}}

	ctx := bareContext()
	Dispatch(ctx, bonus)
	assert.Equal(t, 0, ctx.AttackBonus)

	ctx.Foe.Statuses.Add(StatusVulnerable, 1, 2)
	Dispatch(ctx, bonus)
	assert.Equal(t, 4, ctx.AttackBonus)
}

func TestDispatchResources(t *testing.T) {
	ctx := bareContext()
	ctx.Self.Health = 20
	ctx.Self.Energy = 1
	ctx.Self.Statuses.Add(StatusDexterity, 1, 2)

	Dispatch(ctx, EffectInstance{Code: EffectHeal, Params: EffectParams{Target: TargetSelf, Amount: 50}})
	Dispatch(ctx, EffectInstance{Code: EffectGainEnergy, Params: EffectParams{Amount: 2}})
	Dispatch(ctx, EffectInstance{Code: EffectGainBlock, Params: EffectParams{Amount: 4}})
	Dispatch(ctx, EffectInstance{Code: EffectPersistBlock})

	assert.Equal(t, 30, ctx.Self.Health, "healing stops at max health")
	assert.Equal(t, 3, ctx.Self.Energy)
	assert.Equal(t, 5, ctx.Self.Block, "Dexterity adds to block gains")
	assert.True(t, ctx.Self.PersistentBlock)
}

func TestDispatchUnknownCodeIsNoOp(t *testing.T) {
	ctx := bareContext()
	Dispatch(ctx, EffectInstance{Code: ParseEffectCode("Teleport")})
	Dispatch(ctx, EffectInstance{Code: EffectAmbush})

	assert.Empty(t, ctx.State.Log)
	assert.Equal(t, 30, ctx.Foe.Health)
	assert.Equal(t, 0, ctx.Self.Statuses.Len())
}
