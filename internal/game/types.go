package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

func (s Side) String() string {
	if s == SidePlayer {
		return "Player"
	}
	return "Opponent"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	return 1 - s
}

// TurnState is the state of the turn state machine: whose turn it is.
type TurnState int

const (
	PlayerTurn TurnState = iota
	OpponentTurn
)

func (t TurnState) String() string {
	if t == PlayerTurn {
		return "PlayerTurn"
	}
	return "OpponentTurn"
}

// Side returns the side that acts in this state.
func (t TurnState) Side() Side {
	if t == PlayerTurn {
		return SidePlayer
	}
	return SideOpponent
}

func turnOf(s Side) TurnState {
	if s == SidePlayer {
		return PlayerTurn
	}
	return OpponentTurn
}

type Tag int

const (
	TagMelee Tag = iota
	TagAttack
	TagSkill
	TagPower
	TagCurse
	TagRanged
	TagMinion
	TagVolatile
	TagSpecial
	tagCount
)

var tagNames = [tagCount]string{"Melee", "Attack", "Skill", "Power", "Curse", "Ranged", "Minion", "Volatile", "Special"}

func (t Tag) String() string {
	if t < 0 || t >= tagCount {
		return "Unknown"
	}
	return tagNames[t]
}

// ParseTag resolves a tag name case-insensitively.
func ParseTag(name string) (Tag, error) {
	for i, n := range tagNames {
		if strings.EqualFold(n, name) {
			return Tag(i), nil
		}
	}
	return 0, fmt.Errorf("unknown card tag %q", name)
}

// TagSet is a set of card tags stored as a bitmask.
type TagSet uint32

// Tags builds a TagSet from the given tags.
func Tags(tags ...Tag) TagSet {
	var s TagSet
	for _, t := range tags {
		s |= 1 << uint(t)
	}
	return s
}

func (s TagSet) Has(t Tag) bool {
	return s&(1<<uint(t)) != 0
}

// Count returns the number of distinct tags in the set.
func (s TagSet) Count() int {
	n := 0
	for t := Tag(0); t < tagCount; t++ {
		if s.Has(t) {
			n++
		}
	}
	return n
}

func (s TagSet) List() []Tag {
	var out []Tag
	for t := Tag(0); t < tagCount; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s TagSet) String() string {
	var names []string
	for _, t := range s.List() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RaritySpecial
)

var rarityNames = []string{"Common", "Uncommon", "Rare", "Special"}

func (r Rarity) String() string {
	if r < 0 || int(r) >= len(rarityNames) {
		return "Unknown"
	}
	return rarityNames[r]
}

func ParseRarity(name string) (Rarity, error) {
	if name == "" {
		return RarityCommon, nil
	}
	for i, n := range rarityNames {
		if strings.EqualFold(n, name) {
			return Rarity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rarity %q", name)
}

// TriggerPhase names a point in the turn lifecycle at which gated effects fire.
type TriggerPhase int

const (
	TriggerNone TriggerPhase = iota // fires immediately when the card resolves
	TriggerBattleBegin
	TriggerBeforeDraw
	TriggerStartOfTurn
	TriggerOnCardDraw
	TriggerOnCardPlay
	TriggerOnDamageDealing
	TriggerOnDamageIncoming
	TriggerEndOfTurn
	triggerCount
)

var triggerNames = [triggerCount]string{"", "BattleBegin", "BeforeDraw", "StartOfTurn", "OnCardDraw", "OnCardPlay", "OnDamageDealing", "OnDamageIncoming", "EndOfTurn"}

func (p TriggerPhase) String() string {
	if p <= 0 || p >= triggerCount {
		return "Immediate"
	}
	return triggerNames[p]
}

func ParseTrigger(name string) (TriggerPhase, error) {
	if name == "" {
		return TriggerNone, nil
	}
	for i := 1; i < int(triggerCount); i++ {
		if strings.EqualFold(triggerNames[i], name) {
			return TriggerPhase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown trigger phase %q", name)
}

type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
	DifficultyBoss
)

var difficultyNames = []string{"Easy", "Normal", "Hard", "Boss"}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return "Unknown"
	}
	return difficultyNames[d]
}

func ParseDifficulty(name string) (Difficulty, error) {
	for i, n := range difficultyNames {
		if strings.EqualFold(n, name) {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", name)
}

// --- Card definition (static, from the content catalog) ---

type Card struct {
	ID          string
	Name        string
	Description string
	Cost        int
	Attack      int // 0 = no attack
	Defense     int // 0 = no block
	Tags        TagSet
	Rarity      Rarity
	Effects     []EffectInstance
	Related     []*Card // templates for derived cards (minion tokens etc.)
	Unplayable  bool
}

func (c *Card) String() string {
	return c.Name
}

// IsAttack reports whether the card resolves an attack through the damage pipeline.
func (c *Card) IsAttack() bool {
	return c.Attack > 0 && !c.Tags.Has(TagMinion)
}

// IsDamageOnDraw reports whether drawing this card damages the drawer.
func (c *Card) IsDamageOnDraw() bool {
	return c.Tags.Has(TagMinion) && c.Attack > 0
}

// --- CardInstance (runtime card in a pile) ---

type CardInstance struct {
	Card *Card
	ID   int // unique instance ID within a battle
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(none)"
	}
	return ci.Card.Name
}
