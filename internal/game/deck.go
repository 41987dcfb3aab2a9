package game

import "math/rand"

// Pile is an owned, ordered container of card instances. The top of a pile
// is its last element. Accessors return copies so that callers never alias
// the backing slice.
type Pile struct {
	cards []*CardInstance
}

// NewPile creates a pile holding the given cards (last element on top).
func NewPile(cards ...*CardInstance) *Pile {
	p := &Pile{}
	p.cards = append(p.cards, cards...)
	return p
}

func (p *Pile) Len() int {
	return len(p.cards)
}

func (p *Pile) Empty() bool {
	return len(p.cards) == 0
}

// Cards returns a copy of the pile contents, bottom first.
func (p *Pile) Cards() []*CardInstance {
	out := make([]*CardInstance, len(p.cards))
	copy(out, p.cards)
	return out
}

// At returns the card at position i, or nil when out of range.
func (p *Pile) At(i int) *CardInstance {
	if i < 0 || i >= len(p.cards) {
		return nil
	}
	return p.cards[i]
}

// Push puts a card on top of the pile.
func (p *Pile) Push(c *CardInstance) {
	p.cards = append(p.cards, c)
}

// Pop removes and returns the top card, or nil when empty.
func (p *Pile) Pop() *CardInstance {
	if len(p.cards) == 0 {
		return nil
	}
	c := p.cards[len(p.cards)-1]
	p.cards[len(p.cards)-1] = nil
	p.cards = p.cards[:len(p.cards)-1]
	return c
}

// IndexOf returns the position of the card with the given instance ID, or -1.
func (p *Pile) IndexOf(id int) int {
	for i, c := range p.cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// RemoveAt removes and returns the card at position i, or nil.
func (p *Pile) RemoveAt(i int) *CardInstance {
	if i < 0 || i >= len(p.cards) {
		return nil
	}
	c := p.cards[i]
	p.cards = append(p.cards[:i], p.cards[i+1:]...)
	return c
}

// Remove removes the card with the given instance ID.
func (p *Pile) Remove(id int) *CardInstance {
	return p.RemoveAt(p.IndexOf(id))
}

// TakeAll empties the pile and returns its former contents.
func (p *Pile) TakeAll() []*CardInstance {
	out := p.cards
	p.cards = nil
	return out
}

// Shuffle randomizes the pile order with a Fisher–Yates shuffle.
func (p *Pile) Shuffle(rng *rand.Rand) {
	for i := len(p.cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	}
}

// Deck is one side's draw pile plus discard pile.
type Deck struct {
	Draw    *Pile
	Discard *Pile
}

// NewDeck creates a deck with the given draw order (last element drawn first)
// and an empty discard pile.
func NewDeck(cards ...*CardInstance) *Deck {
	return &Deck{Draw: NewPile(cards...), Discard: NewPile()}
}

// Reshuffle moves the whole discard pile into the draw pile and shuffles it.
// Returns the number of cards moved.
func (d *Deck) Reshuffle(rng *rand.Rand) int {
	moved := d.Discard.TakeAll()
	for _, c := range moved {
		d.Draw.Push(c)
	}
	d.Draw.Shuffle(rng)
	return len(moved)
}

// DrawResult describes what a draw produced.
type DrawResult struct {
	Cards      []*CardInstance
	Reshuffled int // cards moved from discard to deck (0 = no reshuffle)
}

// DrawN draws up to n cards. When the draw pile empties and the discard pile
// is not empty, the discard pile is reshuffled into the draw pile first. When
// both are empty the draw stops early.
func (d *Deck) DrawN(n int, rng *rand.Rand) DrawResult {
	var res DrawResult
	for i := 0; i < n; i++ {
		c, moved := d.drawOne(rng)
		res.Reshuffled += moved
		if c == nil {
			break
		}
		res.Cards = append(res.Cards, c)
	}
	return res
}

func (d *Deck) drawOne(rng *rand.Rand) (*CardInstance, int) {
	moved := 0
	if d.Draw.Empty() {
		if d.Discard.Empty() {
			return nil, 0
		}
		moved = d.Reshuffle(rng)
	}
	return d.Draw.Pop(), moved
}

// Total returns the number of cards across draw and discard piles.
func (d *Deck) Total() int {
	return d.Draw.Len() + d.Discard.Len()
}
