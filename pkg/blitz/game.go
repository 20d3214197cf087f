package blitz

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Default game preferences.
const (
	DefaultDrawRate       = 3
	DefaultPostPileSize   = 3
	DefaultScoreToWin     = 72
	DefaultBlitzDeduction = 10
)

// Prefs configures a game. Zero fields fall back to the defaults above.
type Prefs struct {
	DrawRate       int
	PostPileSize   int
	ScoreToWin     int
	BlitzDeduction int
}

// withDefaults returns a copy with zero fields replaced by defaults.
func (p Prefs) withDefaults() Prefs {
	if p.DrawRate == 0 {
		p.DrawRate = DefaultDrawRate
	}
	if p.PostPileSize == 0 {
		p.PostPileSize = DefaultPostPileSize
	}
	if p.ScoreToWin == 0 {
		p.ScoreToWin = DefaultScoreToWin
	}
	if p.BlitzDeduction == 0 {
		p.BlitzDeduction = DefaultBlitzDeduction
	}
	return p
}

// Player is one player's per-round card layout.
type Player struct {
	ID        int
	Hand      PlayerHand
	PostPiles PostPiles
	Blitz     BlitzPile
}

// CanCallBlitz reports whether this player's blitz pile is empty.
func (p *Player) CanCallBlitz() bool {
	return p.Blitz.Empty()
}

// GameState is the authoritative state machine for one game. It is not
// safe for concurrent use; callers serialize access through the owning
// session's lock.
type GameState struct {
	Round      int
	Scoreboard *Scoreboard
	Deck       []Card
	Players    []*Player
	Arena      Arena

	DrawRate       int
	PostPileSize   int
	ScoreToWin     int
	BlitzDeduction int

	defaultDrawRate int
	gameOver        bool
	rng             *rand.Rand
}

// New creates a game for the given player count, generating the global deck
// and dealing every player. A nil rng gets seeded from system entropy;
// tests inject a fixed-seed rng for deterministic deals.
func New(playerCount int, prefs Prefs, rng *rand.Rand) (*GameState, error) {
	prefs = prefs.withDefaults()
	if playerCount < 1 {
		return nil, fmt.Errorf("invalid config: need at least one player, got %d", playerCount)
	}
	if prefs.PostPileSize+10 > CardsPerPlayer {
		return nil, fmt.Errorf("invalid config: post pile size %d leaves no hand", prefs.PostPileSize)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(entropySeed()))
	}

	g := &GameState{
		Scoreboard:      NewScoreboard(playerCount),
		Deck:            GenerateDeck(playerCount),
		DrawRate:        prefs.DrawRate,
		PostPileSize:    prefs.PostPileSize,
		ScoreToWin:      prefs.ScoreToWin,
		BlitzDeduction:  prefs.BlitzDeduction,
		defaultDrawRate: prefs.DrawRate,
		rng:             rng,
	}
	g.Players = make([]*Player, playerCount)
	for i := range g.Players {
		g.Players[i] = g.dealPlayer(i)
	}
	return g, nil
}

func entropySeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("blitz: read entropy: %v", err))
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// dealPlayer shuffles player p's 40-card block and splits it into hand,
// blitz pile and single-card post piles.
func (g *GameState) dealPlayer(p int) *Player {
	indices := make([]int, CardsPerPlayer)
	for i := range indices {
		indices[i] = p*CardsPerPlayer + i
	}
	g.rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	// Copy each segment so later appends cannot clobber a neighbor
	// sharing the same backing array.
	handSize := CardsPerPlayer - g.PostPileSize - 10
	hand := append([]int(nil), indices[:handSize]...)
	blitz := append([]int(nil), indices[handSize:handSize+10]...)
	postCards := indices[handSize+10:]

	posts := make([]Pile, 0, g.PostPileSize)
	for _, c := range postCards {
		posts = append(posts, NewPile([]int{c}, g.Deck[c].Color))
	}
	return &Player{
		ID:        p,
		Hand:      NewPlayerHand(hand),
		PostPiles: PostPiles{Piles: posts},
		Blitz:     BlitzPile{Cards: blitz},
	}
}

// NewRound bumps the round counter, clears the arena and re-deals everyone.
func (g *GameState) NewRound() {
	g.Round++
	g.Arena.clear()
	for i, p := range g.Players {
		p.Hand.clear()
		p.PostPiles.clear()
		p.Blitz.clear()
		g.Players[i] = g.dealPlayer(i)
	}
}

// IsGameOver reports whether a player has reached the winning score.
func (g *GameState) IsGameOver() bool {
	return g.gameOver
}

// ChangeDrawRate sets the number of cards moved per transfer.
func (g *GameState) ChangeDrawRate(rate int) {
	g.DrawRate = rate
}

// ResetDrawRate restores the draw rate configured at game start.
func (g *GameState) ResetDrawRate() {
	g.DrawRate = g.defaultDrawRate
}

// MakePlay validates and applies one play, returning the delta a client must
// apply to its local view. On error no state has changed.
func (g *GameState) MakePlay(play Play) (*StateDelta, error) {
	if play.PlayerID < 0 || play.PlayerID >= len(g.Players) {
		return nil, fmt.Errorf("player id %d out of range", play.PlayerID)
	}
	switch {
	case play.Arena != nil:
		return g.applyArenaPlay(play.PlayerID, *play.Arena)
	case play.Player != nil:
		return g.applyPlayerPlay(play.PlayerID, *play.Player)
	case play.CallBlitz:
		return g.applyCallBlitz(play.PlayerID)
	default:
		return nil, fmt.Errorf("play has no variant set")
	}
}

// applyArenaPlay peeks the source card, validates the arena placement, and
// only pops the source once the placement succeeded, so a rejected play
// leaves state untouched.
func (g *GameState) applyArenaPlay(playerID int, ap ArenaPlay) (*StateDelta, error) {
	player := g.Players[playerID]

	var (
		card int
		kind ChangeKind
	)
	switch ap.Type {
	case FromAvailableHand:
		kind = ChangeAvailableHand
		if len(player.Hand.Available) == 0 {
			return nil, fmt.Errorf("no available cards to play")
		}
		card = player.Hand.Available[len(player.Hand.Available)-1]
	case FromBlitz:
		kind = ChangeBlitzPile
		if player.Blitz.Empty() {
			return nil, fmt.Errorf("blitz pile is empty")
		}
		card = player.Blitz.Cards[len(player.Blitz.Cards)-1]
	case FromPost:
		kind = ChangePostPile
		if ap.PostPile < 0 || ap.PostPile >= len(player.PostPiles.Piles) {
			return nil, fmt.Errorf("post pile index %d out of bounds", ap.PostPile)
		}
		top := player.PostPiles.Piles[ap.PostPile].Cards
		card = top[len(top)-1]
	default:
		return nil, fmt.Errorf("unknown arena play type %d", ap.Type)
	}

	pile, err := g.Arena.Add(ap.ArenaPile, card, g.Deck)
	if err != nil {
		return nil, err
	}

	switch ap.Type {
	case FromAvailableHand:
		_, err = player.Hand.PlayAvailable()
	case FromBlitz:
		_, err = player.Blitz.Play()
	case FromPost:
		_, err = player.PostPiles.Play(ap.PostPile)
	}
	if err != nil {
		// Cannot happen: the source was verified non-empty above.
		return nil, err
	}

	return &StateDelta{
		Arena: []ArenaChange{{Action: Add, Card: card, Pile: pile}},
		Players: []PlayerChange{
			{PlayerID: playerID, Kind: kind, Action: Remove, Card: card},
		},
	}, nil
}

func (g *GameState) applyPlayerPlay(playerID int, pp PlayerPlay) (*StateDelta, error) {
	player := g.Players[playerID]

	switch pp.Type {
	case BlitzToPost:
		card, err := player.Blitz.Play()
		if err != nil {
			return nil, err
		}
		if err := player.PostPiles.Add(pp.PostPile, card, g.Deck); err != nil {
			player.Blitz.Cards = append(player.Blitz.Cards, card)
			return nil, err
		}
		return &StateDelta{Players: []PlayerChange{
			{PlayerID: playerID, Kind: ChangeBlitzPile, Action: Remove, Card: card},
			{PlayerID: playerID, Kind: ChangePostPile, Action: Add, Card: card},
		}}, nil

	case AvailableHandToPost:
		card, err := player.Hand.PlayAvailable()
		if err != nil {
			return nil, err
		}
		if err := player.PostPiles.Add(pp.PostPile, card, g.Deck); err != nil {
			player.Hand.Available = append(player.Hand.Available, card)
			return nil, err
		}
		return &StateDelta{Players: []PlayerChange{
			{PlayerID: playerID, Kind: ChangeAvailableHand, Action: Remove, Card: card},
			{PlayerID: playerID, Kind: ChangePostPile, Action: Add, Card: card},
		}}, nil

	case TransferToAvailableHand:
		player.Hand.Transfer(g.DrawRate)
		return &StateDelta{Players: []PlayerChange{
			{PlayerID: playerID, Kind: ChangeTransferToAvailable, Action: Remove},
		}}, nil

	case ResetHand:
		player.Hand.Reset()
		return &StateDelta{Players: []PlayerChange{
			{PlayerID: playerID, Kind: ChangeResetHand, Action: Remove},
		}}, nil

	default:
		return nil, fmt.Errorf("unknown player play type %d", pp.Type)
	}
}

func (g *GameState) applyCallBlitz(playerID int) (*StateDelta, error) {
	caller := g.Players[playerID]

	if caller.CanCallBlitz() {
		g.ScoreRound()
		if g.gameOver {
			return &StateDelta{Outcome: OutcomeGameOver}, nil
		}
		g.NewRound()
		return &StateDelta{Outcome: OutcomeNewRound}, nil
	}

	// Penalty call: everyone else who could have called blitz but did not
	// loses BlitzDeduction points off this round's score.
	deductions := make([]int, len(g.Players))
	for i, p := range g.Players {
		if i != playerID && p.CanCallBlitz() {
			deductions[i] = g.BlitzDeduction
		}
	}
	g.scoreRound(deductions)
	g.gameOver = true
	return &StateDelta{Outcome: OutcomeGameOver}, nil
}

// ScoreRound tallies the finished round: each player earns one point per card
// they contributed to the arena, minus two per card left in their blitz pile.
// Sets the game-over flag when any total reaches the winning score.
func (g *GameState) ScoreRound() {
	g.scoreRound(nil)
}

func (g *GameState) scoreRound(deductions []int) {
	scores := make([]int, len(g.Players))
	for _, pile := range g.Arena.Piles {
		for _, c := range pile.Cards {
			scores[g.Deck[c].Owner]++
		}
	}
	for i, p := range g.Players {
		scores[i] -= 2 * len(p.Blitz.Cards)
		if deductions != nil {
			scores[i] -= deductions[i]
		}
	}
	g.Scoreboard.AddRound(scores)

	for _, total := range g.Scoreboard.Totals() {
		if total >= g.ScoreToWin {
			g.gameOver = true
			return
		}
	}
}
