package blitz

import "fmt"

// PlayerHand is the two-part private hand: the face-down remnant the player
// cycles through (InHand, drawn from the front) and the face-up stack whose
// top is playable (Available, played from the back).
type PlayerHand struct {
	InHand    []int
	Available []int
}

// NewPlayerHand creates a hand holding the given cards with nothing available.
func NewPlayerHand(cards []int) PlayerHand {
	return PlayerHand{InHand: cards}
}

// Transfer moves up to count cards from the front of InHand onto the top of
// Available. Fewer than count remaining moves all of them.
func (h *PlayerHand) Transfer(count int) []int {
	if count > len(h.InHand) {
		count = len(h.InHand)
	}
	moved := h.InHand[:count]
	h.Available = append(h.Available, moved...)
	h.InHand = h.InHand[count:]
	return moved
}

// PlayAvailable pops the top card of the available stack.
func (h *PlayerHand) PlayAvailable() (int, error) {
	if len(h.Available) == 0 {
		return 0, fmt.Errorf("no available cards to play")
	}
	card := h.Available[len(h.Available)-1]
	h.Available = h.Available[:len(h.Available)-1]
	return card, nil
}

// Reset returns all available cards to the bottom of InHand, preserving their
// order, so the player can cycle through the deck again.
func (h *PlayerHand) Reset() {
	h.InHand = append(h.InHand, h.Available...)
	h.Available = nil
}

func (h *PlayerHand) clear() {
	h.InHand = nil
	h.Available = nil
}
