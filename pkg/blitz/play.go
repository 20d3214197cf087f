package blitz

// ArenaPlayType selects the source pile of an arena play.
type ArenaPlayType int

const (
	FromAvailableHand ArenaPlayType = iota
	FromBlitz
	FromPost
)

// PlayerPlayType selects a play that only rearranges the player's own cards.
type PlayerPlayType int

const (
	BlitzToPost PlayerPlayType = iota
	AvailableHandToPost
	TransferToAvailableHand
	ResetHand
)

// ArenaPlay moves a card from one of the player's piles onto the arena.
// PostPile is only meaningful for FromPost.
type ArenaPlay struct {
	Type      ArenaPlayType
	PostPile  int
	ArenaPile int
}

// PlayerPlay rearranges the player's own cards. PostPile is only meaningful
// for the two *ToPost variants.
type PlayerPlay struct {
	Type     PlayerPlayType
	PostPile int
}

// Play is one requested move by one player. Exactly one of Arena, Player and
// CallBlitz is set.
type Play struct {
	PlayerID  int
	Arena     *ArenaPlay
	Player    *PlayerPlay
	CallBlitz bool
}

// ChangeAction says whether a delta entry added or removed a card.
type ChangeAction int

const (
	Add ChangeAction = iota
	Remove
)

// ChangeKind identifies which part of a player's layout a delta entry
// touches. Blitz calls never appear here; their result rides Outcome.
type ChangeKind int

const (
	ChangeBlitzPile ChangeKind = iota
	ChangeAvailableHand
	ChangePostPile
	ChangeResetHand
	ChangeTransferToAvailable
)

// ArenaChange is one card added to (or removed from) an arena pile.
type ArenaChange struct {
	Action ChangeAction
	Card   int
	Pile   int
}

// PlayerChange is one card movement within a player's own layout.
type PlayerChange struct {
	PlayerID int
	Kind     ChangeKind
	Action   ChangeAction
	Card     int
}

// Outcome reports a round transition triggered by a play.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeNewRound
	OutcomeGameOver
)

// StateDelta describes what a successful play changed: which cards moved in
// the arena, which moved inside player layouts, and whether the play ended
// the round or the game.
type StateDelta struct {
	Arena   []ArenaChange
	Players []PlayerChange
	Outcome Outcome
}
