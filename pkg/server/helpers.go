package server

import (
	"github.com/blitzgame/blitzserver/pkg/blitz"
	"github.com/blitzgame/blitzserver/pkg/blitzrpc"
)

// Conversions between the rules engine types and their wire counterparts.
// The engine uses plain ints; everything on the wire is sized and validated.

func deckToWire(deck []blitz.Card) []blitzrpc.Card {
	cards := make([]blitzrpc.Card, len(deck))
	for i, c := range deck {
		cards[i] = blitzrpc.Card{
			Owner:  int32(c.Owner),
			Number: int32(c.Number),
			Color:  blitzrpc.Color(c.Color),
			Gender: blitzrpc.Gender(c.Gender),
		}
	}
	return cards
}

func indicesToWire(indices []int) []uint32 {
	out := make([]uint32, len(indices))
	for i, n := range indices {
		out[i] = uint32(n)
	}
	return out
}

// dealToWire extracts one seat's deal for the start-game payload.
func dealToWire(p *blitz.Player) blitzrpc.PlayerCards {
	posts := make([][]uint32, len(p.PostPiles.Piles))
	for i, pile := range p.PostPiles.Piles {
		posts[i] = indicesToWire(pile.Cards)
	}
	return blitzrpc.PlayerCards{
		InHand:    indicesToWire(p.Hand.InHand),
		PostPiles: posts,
		BlitzPile: indicesToWire(p.Blitz.Cards),
	}
}

func prefsFromWire(p blitzrpc.GamePrefs) blitz.Prefs {
	return blitz.Prefs{
		DrawRate:       int(p.DrawRate),
		PostPileSize:   int(p.PostPileSize),
		ScoreToWin:     int(p.ScoreToWin),
		BlitzDeduction: int(p.BlitzDeduction),
	}
}

// effectivePrefs reports the values the game actually runs with, after
// zero-value defaults were applied.
func effectivePrefs(g *blitz.GameState) blitzrpc.GamePrefs {
	return blitzrpc.GamePrefs{
		DrawRate:       uint32(g.DrawRate),
		PostPileSize:   uint32(g.PostPileSize),
		ScoreToWin:     uint32(g.ScoreToWin),
		BlitzDeduction: uint32(g.BlitzDeduction),
	}
}

// playFromWire validates the wire play and translates it for the engine.
func playFromWire(playerID uint32, p *blitzrpc.Play) (blitz.Play, error) {
	play := blitz.Play{PlayerID: int(playerID)}

	set := 0
	if p.Arena != nil {
		set++
	}
	if p.Player != nil {
		set++
	}
	if p.CallBlitz {
		set++
	}
	if set != 1 {
		return play, Errorf(CodeInvalidArgument, "play carries %d variants, want exactly 1", set)
	}

	switch {
	case p.Arena != nil:
		if !p.Arena.Type.Valid() {
			return play, Errorf(CodeInvalidArgument, "unknown arena play type %d", p.Arena.Type)
		}
		play.Arena = &blitz.ArenaPlay{
			Type:      blitz.ArenaPlayType(p.Arena.Type),
			PostPile:  int(p.Arena.PostPile),
			ArenaPile: int(p.Arena.ArenaPile),
		}
	case p.Player != nil:
		if !p.Player.Type.Valid() {
			return play, Errorf(CodeInvalidArgument, "unknown player play type %d", p.Player.Type)
		}
		play.Player = &blitz.PlayerPlay{
			Type:     blitz.PlayerPlayType(p.Player.Type),
			PostPile: int(p.Player.PostPile),
		}
	default:
		play.CallBlitz = true
	}
	return play, nil
}

// deltaToWire converts an applied play's delta into the broadcast payload.
func deltaToWire(d *blitz.StateDelta) *blitzrpc.GameStateChange {
	out := &blitzrpc.GameStateChange{}
	for _, ac := range d.Arena {
		out.Arena = append(out.Arena, blitzrpc.ArenaStateChange{
			Action: blitzrpc.StateChangeAction(ac.Action),
			Card:   uint32(ac.Card),
			Pile:   uint32(ac.Pile),
		})
	}
	for _, pc := range d.Players {
		out.Players = append(out.Players, blitzrpc.PlayerStateChange{
			PlayerID: uint32(pc.PlayerID),
			Type:     blitzrpc.PlayerStateChangeType(pc.Kind),
			Action:   blitzrpc.StateChangeAction(pc.Action),
			Card:     uint32(pc.Card),
		})
	}
	return out
}

// startGamePayload builds the deal announcement shared by RequestStartGame
// and ConfirmGameStart.
func startGamePayload(g *blitz.GameState) *blitzrpc.StartGameEvent {
	cards := make([]blitzrpc.PlayerCards, len(g.Players))
	for i, p := range g.Players {
		cards[i] = dealToWire(p)
	}
	return &blitzrpc.StartGameEvent{
		Prefs:       effectivePrefs(g),
		GlobalDeck:  deckToWire(g.Deck),
		PlayerCards: cards,
	}
}

func pileTop(cards []int) *blitzrpc.PileTop {
	if len(cards) == 0 {
		return nil
	}
	return &blitzrpc.PileTop{
		Card: uint32(cards[len(cards)-1]),
		Size: uint32(len(cards)),
	}
}

// snapshot builds the compact pile-top resync view. Caller holds the session
// lock; requires a running game.
func snapshot(s *Session) *blitzrpc.SessionSnapshot {
	g := s.game
	snap := &blitzrpc.SessionSnapshot{
		SessionID: s.ID,
		Round:     uint32(g.Round),
		DrawRate:  uint32(g.DrawRate),
	}
	for _, pile := range g.Arena.Piles {
		if top := pileTop(pile.Cards); top != nil {
			snap.Arena = append(snap.Arena, *top)
		}
	}
	for i, p := range g.Players {
		ps := blitzrpc.PlayerSnapshot{
			PlayerGameID: uint32(i),
			Username:     s.seats[i].player.Username,
			BlitzPile:    pileTop(p.Blitz.Cards),
			InHandSize:   uint32(len(p.Hand.InHand)),
			AvailableTop: pileTop(p.Hand.Available),
		}
		for _, pile := range p.PostPiles.Piles {
			if top := pileTop(pile.Cards); top != nil {
				ps.PostPiles = append(ps.PostPiles, *top)
			}
		}
		snap.Players = append(snap.Players, ps)
	}
	for _, total := range g.Scoreboard.Totals() {
		snap.Scores = append(snap.Scores, int32(total))
	}
	return snap
}
