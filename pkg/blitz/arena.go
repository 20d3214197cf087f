package blitz

import "fmt"

// Arena is the shared area where all players stack same-color ascending
// piles. Pile indices are dense and server-assigned: a number-1 card always
// appends a new pile, and the caller learns its index from the returned
// value.
type Arena struct {
	Piles []Pile
}

// Add places a card on the arena. A number-1 card starts a new pile of the
// card's color (the supplied pile index is ignored); any other card must
// extend the indicated existing pile. Returns the index of the pile the card
// ended up on.
func (a *Arena) Add(pileIndex, cardIndex int, deck []Card) (int, error) {
	card, err := deckCard(deck, cardIndex)
	if err != nil {
		return 0, err
	}
	if card.Number == 1 {
		a.Piles = append(a.Piles, NewPile([]int{cardIndex}, card.Color))
		return len(a.Piles) - 1, nil
	}
	if pileIndex < 0 || pileIndex >= len(a.Piles) {
		return 0, fmt.Errorf("arena pile index %d out of bounds for card %s", pileIndex, card)
	}
	if err := a.Piles[pileIndex].pushArena(cardIndex, deck); err != nil {
		return 0, err
	}
	return pileIndex, nil
}

func (a *Arena) clear() {
	a.Piles = nil
}

// CardCount returns the total number of cards played into the arena.
func (a *Arena) CardCount() int {
	n := 0
	for _, p := range a.Piles {
		n += len(p.Cards)
	}
	return n
}
