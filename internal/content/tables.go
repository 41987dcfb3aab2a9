package content

// CardFile is the top-level structure of cards.yaml.
type CardFile struct {
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry is one card stat block.
type CardEntry struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Cost        int           `yaml:"cost"`
	Attack      int           `yaml:"attack"`
	Defense     int           `yaml:"defense"`
	Tags        []string      `yaml:"tags"`
	Rarity      string        `yaml:"rarity"`
	Effects     []EffectEntry `yaml:"effects"`
	Related     []string      `yaml:"related"`
	Unplayable  bool          `yaml:"unplayable"`
}

// EffectEntry is one structured effect. Only the fields a code reads need to
// be set.
type EffectEntry struct {
	Code       string        `yaml:"code"`
	Trigger    string        `yaml:"trigger"`
	Target     string        `yaml:"target"`
	Status     string        `yaml:"status"`
	FromStatus string        `yaml:"from_status"`
	Stacks     int           `yaml:"stacks"`
	Duration   int           `yaml:"duration"`
	Amount     int           `yaml:"amount"`
	Draw       string        `yaml:"draw"`
	Count      int           `yaml:"count"`
	Attached   []EffectEntry `yaml:"attached"`
}

// PassiveFile is the top-level structure of passives.yaml.
type PassiveFile struct {
	Passives []PassiveEntry `yaml:"passives"`
}

type PassiveEntry struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Trigger     string        `yaml:"trigger"`
	HealthBelow int           `yaml:"health_below"`
	Once        bool          `yaml:"once"`
	Effects     []EffectEntry `yaml:"effects"`
	Related     []string      `yaml:"related"`
}

// DeckCard is a card and its count in a deck list.
type DeckCard struct {
	Card  string `yaml:"card"`
	Count int    `yaml:"count"`
}

// CombatantEntry describes a starter loadout or an opponent.
type CombatantEntry struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	Difficulty string     `yaml:"difficulty"`
	MaxHealth  int        `yaml:"max_health"`
	MaxEnergy  int        `yaml:"max_energy"`
	Passives   []string   `yaml:"passives"`
	Deck       []DeckCard `yaml:"deck"`
}

// OpponentFile is the top-level structure of opponents.yaml.
type OpponentFile struct {
	Opponents []CombatantEntry `yaml:"opponents"`
}

// StarterFile is the top-level structure of starters.yaml.
type StarterFile struct {
	Starters []CombatantEntry `yaml:"starters"`
}
