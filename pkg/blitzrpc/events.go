package blitzrpc

import "fmt"

// Card is a by-value card description shipped once inside the global deck.
// Everywhere else cards are referenced by their index into that deck.
type Card struct {
	Owner  int32  `json:"owner"`
	Number int32  `json:"number"`
	Color  Color  `json:"color"`
	Gender Gender `json:"gender"`
}

// GamePrefs configures a game at start. Zero values fall back to the server
// defaults (draw rate 3, post pile size 3, score to win 72, deduction 10).
type GamePrefs struct {
	DrawRate       uint32 `json:"draw_rate"`
	PostPileSize   uint32 `json:"post_pile_size"`
	ScoreToWin     uint32 `json:"score_to_win"`
	BlitzDeduction uint32 `json:"blitz_deduction"`
}

// ArenaPlay moves a card from one of the player's piles onto the arena.
type ArenaPlay struct {
	Type      ArenaPlayType `json:"type"`
	PostPile  uint32        `json:"post_pile,omitempty"`
	ArenaPile uint32        `json:"arena_pile,omitempty"`
}

// PlayerPlay rearranges the player's own cards.
type PlayerPlay struct {
	Type     PlayerPlayType `json:"type"`
	PostPile uint32         `json:"post_pile,omitempty"`
}

// Play is one requested move. Exactly one of Arena, Player and CallBlitz is
// set.
type Play struct {
	Arena     *ArenaPlay  `json:"arena,omitempty"`
	Player    *PlayerPlay `json:"player,omitempty"`
	CallBlitz bool        `json:"call_blitz,omitempty"`
}

// ArenaStateChange is one card added to an arena pile. Pile indices are
// server-assigned and dense.
type ArenaStateChange struct {
	Action StateChangeAction `json:"action"`
	Card   uint32            `json:"card"`
	Pile   uint32            `json:"pile"`
}

// PlayerStateChange is one card movement within a player's own layout.
type PlayerStateChange struct {
	PlayerID uint32                `json:"player_id"`
	Type     PlayerStateChangeType `json:"type"`
	Action   StateChangeAction     `json:"action"`
	Card     uint32                `json:"card,omitempty"`
}

// GameStateChange is the broadcast delta for one successful play.
type GameStateChange struct {
	Arena   []ArenaStateChange  `json:"arena,omitempty"`
	Players []PlayerStateChange `json:"players,omitempty"`
}

// Acknowledge is a client's receipt for a server event, or the server's
// terminal disposition of a client event.
type Acknowledge struct {
	EventID uint32  `json:"event_id"`
	Type    AckType `json:"type"`
	Reason  string  `json:"reason,omitempty"`
}

// GamePlayError carries the human-readable reason a play was rejected. It is
// delivered in-band to the sender only; the stream stays open.
type GamePlayError struct {
	EventID uint32 `json:"event_id"`
	Message string `json:"message"`
}

// PlayerCards is one seat's visible deal: card indices for the private hand,
// the post piles and the blitz pile.
type PlayerCards struct {
	InHand    []uint32   `json:"in_hand"`
	PostPiles [][]uint32 `json:"post_piles"`
	BlitzPile []uint32   `json:"blitz_pile"`
}

// StartGameEvent is the payload of both RequestStartGame (to non-admins) and
// ConfirmGameStart (to the admin): the effective prefs, the global deck and
// every seat's deal, keyed by player id.
type StartGameEvent struct {
	Prefs       GamePrefs     `json:"prefs"`
	GlobalDeck  []Card        `json:"global_deck"`
	PlayerCards []PlayerCards `json:"player_cards"`
}

// ChangeDrawRate carries a new draw rate, client to server or as the server's
// broadcast of the effective value.
type ChangeDrawRate struct {
	DrawRate uint32 `json:"draw_rate"`
}

// OpenStream is the mandatory first client message on a new stream,
// identifying which session seat it speaks for.
type OpenStream struct {
	SessionID    string `json:"session_id"`
	PlayerGameID uint32 `json:"player_game_id"`
}

// StartGame is the admin's request to start the game.
type StartGame struct {
	Prefs GamePrefs `json:"prefs"`
}

// StaticEvent is a client request for a game-level transition.
type StaticEvent struct {
	Action ClientGameStateAction `json:"action"`
}

// ServerAction is a broadcast game-level transition.
type ServerAction struct {
	Action ServerGameStateAction `json:"action"`
}

// ClientEvent is the client-to-server envelope. EventID is monotonic per
// client; exactly one payload field is set.
type ClientEvent struct {
	EventID      uint32 `json:"event_id"`
	PlayerGameID uint32 `json:"player_game_id"`

	Play           *Play           `json:"play,omitempty"`
	StaticEvent    *StaticEvent    `json:"static_event,omitempty"`
	OpenStream     *OpenStream     `json:"open_stream,omitempty"`
	StartGame      *StartGame      `json:"start_game,omitempty"`
	ChangeDrawRate *ChangeDrawRate `json:"change_draw_rate,omitempty"`
	Acknowledge    *Acknowledge    `json:"acknowledge,omitempty"`
}

// Validate checks that exactly one payload field is set.
func (e *ClientEvent) Validate() error {
	n := 0
	if e.Play != nil {
		n++
	}
	if e.StaticEvent != nil {
		n++
	}
	if e.OpenStream != nil {
		n++
	}
	if e.StartGame != nil {
		n++
	}
	if e.ChangeDrawRate != nil {
		n++
	}
	if e.Acknowledge != nil {
		n++
	}
	if n != 1 {
		return fmt.Errorf("client event %d carries %d payloads, want exactly 1", e.EventID, n)
	}
	return nil
}

// ServerEvent is the server-to-client envelope. EventID is monotonic per
// session; exactly one payload field is set.
type ServerEvent struct {
	EventID uint32 `json:"event_id"`

	GameStateChange  *GameStateChange `json:"game_state_change,omitempty"`
	Acknowledge      *Acknowledge     `json:"acknowledge,omitempty"`
	ServerAction     *ServerAction    `json:"server_action,omitempty"`
	RequestStartGame *StartGameEvent  `json:"request_start_game,omitempty"`
	ConfirmGameStart *StartGameEvent  `json:"confirm_game_start,omitempty"`
	ChangeDrawRate   *ChangeDrawRate  `json:"change_draw_rate,omitempty"`
	GamePlayError    *GamePlayError   `json:"game_play_error,omitempty"`
}

// NeedsAck reports whether the event must be acknowledged by the client, which
// is every payload except an Acknowledge itself.
func (e *ServerEvent) NeedsAck() bool {
	return e.Acknowledge == nil
}
