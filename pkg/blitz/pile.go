package blitz

import "fmt"

// pile capacity; an arena pile holding ten cards is complete and only scores.
const pileCap = 10

// Pile is an ordered stack of card indices with a designated color. The same
// type backs arena piles (ascending 1..10) and post piles (descending,
// alternating gender); the push rules differ.
type Pile struct {
	Cards []int
	Color Color
}

// NewPile creates a pile seeded with the given cards.
func NewPile(cards []int, color Color) Pile {
	return Pile{Cards: cards, Color: color}
}

// pushArena stacks a card onto an arena pile. The card must match the pile
// color and be the exact successor of the current height.
func (p *Pile) pushArena(cardIndex int, deck []Card) error {
	if len(p.Cards) == pileCap {
		return fmt.Errorf("arena pile is full")
	}
	card, err := deckCard(deck, cardIndex)
	if err != nil {
		return err
	}
	if card.Color != p.Color {
		return fmt.Errorf("card color %s does not match pile color %s", card.Color, p.Color)
	}
	if card.Number != len(p.Cards)+1 {
		return fmt.Errorf("card number %d does not continue pile of height %d", card.Number, len(p.Cards))
	}
	p.Cards = append(p.Cards, cardIndex)
	return nil
}

// pushPost stacks a card onto a post pile: same color, exactly one below the
// current top, gender alternating with the top.
func (p *Pile) pushPost(cardIndex int, deck []Card) error {
	if len(p.Cards) == pileCap {
		return fmt.Errorf("post pile is full")
	}
	card, err := deckCard(deck, cardIndex)
	if err != nil {
		return err
	}
	if card.Color != p.Color {
		return fmt.Errorf("card color %s does not match pile color %s", card.Color, p.Color)
	}
	top, err := deckCard(deck, p.Cards[len(p.Cards)-1])
	if err != nil {
		return err
	}
	if card.Gender == top.Gender {
		return fmt.Errorf("genders must alternate on a post pile")
	}
	if card.Number != top.Number-1 {
		return fmt.Errorf("card number %d does not descend from top card %d", card.Number, top.Number)
	}
	p.Cards = append(p.Cards, cardIndex)
	return nil
}

func deckCard(deck []Card, index int) (Card, error) {
	if index < 0 || index >= len(deck) {
		return Card{}, fmt.Errorf("card index %d out of bounds", index)
	}
	return deck[index], nil
}

// PostPiles is the set of descending piles in front of one player. Pile
// indices are dense: an emptied pile is removed and later piles shift down.
type PostPiles struct {
	Piles []Pile
}

// Add pushes a card onto the indicated post pile.
func (pp *PostPiles) Add(pileIndex, cardIndex int, deck []Card) error {
	if pileIndex < 0 || pileIndex >= len(pp.Piles) {
		return fmt.Errorf("post pile index %d out of bounds", pileIndex)
	}
	return pp.Piles[pileIndex].pushPost(cardIndex, deck)
}

// Play pops the top card from the indicated post pile, removing the pile when
// it empties.
func (pp *PostPiles) Play(pileIndex int) (int, error) {
	if pileIndex < 0 || pileIndex >= len(pp.Piles) {
		return 0, fmt.Errorf("post pile index %d out of bounds", pileIndex)
	}
	pile := &pp.Piles[pileIndex]
	if len(pile.Cards) == 0 {
		return 0, fmt.Errorf("post pile is empty")
	}
	card := pile.Cards[len(pile.Cards)-1]
	pile.Cards = pile.Cards[:len(pile.Cards)-1]
	if len(pile.Cards) == 0 {
		pp.Piles = append(pp.Piles[:pileIndex], pp.Piles[pileIndex+1:]...)
	}
	return card, nil
}

func (pp *PostPiles) clear() {
	pp.Piles = nil
}

// CardCount returns the total number of cards across all post piles.
func (pp *PostPiles) CardCount() int {
	n := 0
	for _, p := range pp.Piles {
		n += len(p.Cards)
	}
	return n
}

// BlitzPile is the pre-dealt ten-card pile each player races to empty.
type BlitzPile struct {
	Cards []int
}

// Play pops the top card from the blitz pile.
func (b *BlitzPile) Play() (int, error) {
	if len(b.Cards) == 0 {
		return 0, fmt.Errorf("blitz pile is empty")
	}
	card := b.Cards[len(b.Cards)-1]
	b.Cards = b.Cards[:len(b.Cards)-1]
	return card, nil
}

// Empty reports whether the pile has been played out, which is the condition
// for a valid blitz call.
func (b *BlitzPile) Empty() bool {
	return len(b.Cards) == 0
}

func (b *BlitzPile) clear() {
	b.Cards = nil
}
