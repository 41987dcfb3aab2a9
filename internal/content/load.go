// Package content loads the static card, passive, opponent and starter
// tables into an immutable game.Catalog.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/deckclash/internal/game"
)

// ErrUnknownCard is returned when a deck list or related-card reference names
// a card that is not defined.
var ErrUnknownCard = errors.New("unknown card")

// ErrUnknownPassive is returned when a combatant references an undefined passive.
var ErrUnknownPassive = errors.New("unknown passive")

const (
	cardsFile     = "cards.yaml"
	passivesFile  = "passives.yaml"
	opponentsFile = "opponents.yaml"
	startersFile  = "starters.yaml"
)

//go:embed data/*.yaml
var defaultData embed.FS

// Default loads the bundled content tables.
func Default() (*game.Catalog, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// LoadDir loads content tables from a directory on disk.
func LoadDir(dir string) (*game.Catalog, error) {
	return Load(os.DirFS(dir))
}

// Load reads cards.yaml, passives.yaml, opponents.yaml and starters.yaml from
// fsys and builds a catalog with the default card conditions.
func Load(fsys fs.FS) (*game.Catalog, error) {
	var cf CardFile
	if err := readYAML(fsys, cardsFile, &cf); err != nil {
		return nil, err
	}
	var pf PassiveFile
	if err := readYAML(fsys, passivesFile, &pf); err != nil {
		return nil, err
	}
	var of OpponentFile
	if err := readYAML(fsys, opponentsFile, &of); err != nil {
		return nil, err
	}
	var sf StarterFile
	if err := readYAML(fsys, startersFile, &sf); err != nil {
		return nil, err
	}

	cards, err := buildCards(cf.Cards)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cardsFile, err)
	}
	passives, err := buildPassives(pf.Passives, cards)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", passivesFile, err)
	}

	var opponents []*game.OpponentDef
	for _, e := range of.Opponents {
		def, err := buildCombatant(e, cards, passives)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opponentsFile, err)
		}
		diff, err := game.ParseDifficulty(e.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("%s: opponent %q: %w", opponentsFile, e.ID, err)
		}
		opponents = append(opponents, &game.OpponentDef{CombatantDef: *def, Difficulty: diff})
	}

	var starters []*game.CombatantDef
	for _, e := range sf.Starters {
		def, err := buildCombatant(e, cards, passives)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", startersFile, err)
		}
		starters = append(starters, def)
	}

	cardList := make([]*game.Card, 0, len(cf.Cards))
	for _, e := range cf.Cards {
		cardList = append(cardList, cards[e.ID])
	}
	passiveList := make([]*game.Passive, 0, len(pf.Passives))
	for _, e := range pf.Passives {
		passiveList = append(passiveList, passives[e.ID])
	}
	return game.NewCatalog(cardList, passiveList, opponents, starters, game.DefaultConditions())
}

func readYAML(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// buildCards converts card entries in two passes so that related-card
// references may point forward in the file.
func buildCards(entries []CardEntry) (map[string]*game.Card, error) {
	cards := make(map[string]*game.Card, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("card %q has no id", e.Name)
		}
		if _, dup := cards[e.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", e.ID)
		}
		card, err := buildCard(e)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", e.ID, err)
		}
		cards[e.ID] = card
	}
	for _, e := range entries {
		related, err := resolveCards(e.Related, cards)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", e.ID, err)
		}
		cards[e.ID].Related = related
	}
	return cards, nil
}

func buildCard(e CardEntry) (*game.Card, error) {
	var tags []game.Tag
	for _, name := range e.Tags {
		t, err := game.ParseTag(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	rarity, err := game.ParseRarity(e.Rarity)
	if err != nil {
		return nil, err
	}
	effects, err := buildEffects(e.Effects)
	if err != nil {
		return nil, err
	}
	name := e.Name
	if name == "" {
		name = e.ID
	}
	return &game.Card{
		ID:          e.ID,
		Name:        name,
		Description: e.Description,
		Cost:        max(e.Cost, 0),
		Attack:      max(e.Attack, 0),
		Defense:     max(e.Defense, 0),
		Tags:        game.Tags(tags...),
		Rarity:      rarity,
		Effects:     effects,
		Unplayable:  e.Unplayable,
	}, nil
}

// buildEffects converts effect entries. Unknown effect codes are kept and
// ignored when they resolve.
func buildEffects(entries []EffectEntry) ([]game.EffectInstance, error) {
	var out []game.EffectInstance
	for _, e := range entries {
		eff, err := buildEffect(e)
		if err != nil {
			return nil, fmt.Errorf("effect %s: %w", e.Code, err)
		}
		out = append(out, eff)
	}
	return out, nil
}

func buildEffect(e EffectEntry) (game.EffectInstance, error) {
	trigger, err := game.ParseTrigger(e.Trigger)
	if err != nil {
		return game.EffectInstance{}, err
	}
	target, err := game.ParseTarget(e.Target)
	if err != nil {
		return game.EffectInstance{}, err
	}
	status, err := game.ParseStatus(e.Status)
	if err != nil {
		return game.EffectInstance{}, err
	}
	from, err := game.ParseStatus(e.FromStatus)
	if err != nil {
		return game.EffectInstance{}, err
	}
	kind, err := game.ParseDrawModKind(e.Draw)
	if err != nil {
		return game.EffectInstance{}, err
	}
	attached, err := buildEffects(e.Attached)
	if err != nil {
		return game.EffectInstance{}, err
	}
	return game.EffectInstance{
		Code:    game.ParseEffectCode(e.Code),
		Trigger: trigger,
		Params: game.EffectParams{
			Target:     target,
			Status:     status,
			FromStatus: from,
			Stacks:     e.Stacks,
			Duration:   e.Duration,
			Amount:     e.Amount,
			DrawKind:   kind,
			Count:      e.Count,
			Attached:   attached,
		},
	}, nil
}

func buildPassives(entries []PassiveEntry, cards map[string]*game.Card) (map[string]*game.Passive, error) {
	passives := make(map[string]*game.Passive, len(entries))
	for _, e := range entries {
		if _, dup := passives[e.ID]; dup {
			return nil, fmt.Errorf("duplicate passive id %q", e.ID)
		}
		trigger, err := game.ParseTrigger(e.Trigger)
		if err != nil {
			return nil, fmt.Errorf("passive %q: %w", e.ID, err)
		}
		effects, err := buildEffects(e.Effects)
		if err != nil {
			return nil, fmt.Errorf("passive %q: %w", e.ID, err)
		}
		related, err := resolveCards(e.Related, cards)
		if err != nil {
			return nil, fmt.Errorf("passive %q: %w", e.ID, err)
		}
		passives[e.ID] = &game.Passive{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Trigger:     trigger,
			Effects:     effects,
			Related:     related,
			HealthBelow: e.HealthBelow,
			Once:        e.Once,
		}
	}
	return passives, nil
}

func buildCombatant(e CombatantEntry, cards map[string]*game.Card, passives map[string]*game.Passive) (*game.CombatantDef, error) {
	def := &game.CombatantDef{
		ID:        e.ID,
		Name:      e.Name,
		MaxHealth: e.MaxHealth,
		MaxEnergy: e.MaxEnergy,
	}
	if def.MaxHealth <= 0 {
		return nil, fmt.Errorf("%q: max_health must be positive", e.ID)
	}
	for _, dc := range e.Deck {
		card, ok := cards[dc.Card]
		if !ok {
			return nil, fmt.Errorf("%q: %w %q", e.ID, ErrUnknownCard, dc.Card)
		}
		for i := 0; i < dc.Count; i++ {
			def.Deck = append(def.Deck, card)
		}
	}
	for _, id := range e.Passives {
		p, ok := passives[id]
		if !ok {
			return nil, fmt.Errorf("%q: %w %q", e.ID, ErrUnknownPassive, id)
		}
		def.Passives = append(def.Passives, p)
	}
	return def, nil
}

func resolveCards(ids []string, cards map[string]*game.Card) ([]*game.Card, error) {
	var out []*game.Card
	for _, id := range ids {
		card, ok := cards[id]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownCard, id)
		}
		out = append(out, card)
	}
	return out, nil
}
