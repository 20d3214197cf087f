package blitz

import "fmt"

// Color is one of the four card colors.
type Color int

const (
	Red Color = iota
	Blue
	Green
	Yellow
)

// String returns a string representation of the color
func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Green:
		return "Green"
	case Yellow:
		return "Yellow"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// Gender alternates along each color run; post piles must alternate it.
type Gender int

const (
	Boy Gender = iota
	Girl
)

// String returns a string representation of the gender
func (g Gender) String() string {
	switch g {
	case Boy:
		return "Boy"
	case Girl:
		return "Girl"
	default:
		return fmt.Sprintf("Gender(%d)", int(g))
	}
}

// Card is an immutable card description. Cards are referenced everywhere else
// by their index in the session's global deck; the Owner field records which
// player's 40-card block the card was generated in, which is what scoring
// counts.
type Card struct {
	Owner  int
	Number int
	Color  Color
	Gender Gender
}

// String returns a string representation of the card
func (c Card) String() string {
	return fmt.Sprintf("%s %d (%s, p%d)", c.Color, c.Number, c.Gender, c.Owner)
}

// CardsPerPlayer is the size of each player's block in the global deck:
// ten cards of each of the four colors.
const CardsPerPlayer = 40

// GenerateDeck builds the global deck for the given player count. Player p
// owns indices [40p, 40p+40). Within a block, index n holds number n%10+1,
// color n/10, and gender by parity of n, so the generation order is fully
// deterministic and every client derives identical indices.
func GenerateDeck(players int) []Card {
	colors := []Color{Red, Blue, Green, Yellow}
	cards := make([]Card, 0, CardsPerPlayer*players)
	for p := 0; p < players; p++ {
		for n := 0; n < CardsPerPlayer; n++ {
			gender := Boy
			if n%2 == 1 {
				gender = Girl
			}
			cards = append(cards, Card{
				Owner:  p,
				Number: n%10 + 1,
				Color:  colors[n/10],
				Gender: gender,
			})
		}
	}
	return cards
}
