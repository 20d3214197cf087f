// Package blitzrpc defines the JSON wire types exchanged between clients and
// the server: the client/server event envelopes, play messages, state change
// deltas and the session service request/response bodies. All enum codes are
// wire-stable; do not renumber.
package blitzrpc

import "fmt"

// StateChangeAction says whether a delta entry added or removed a card.
type StateChangeAction int32

const (
	ActionAdd    StateChangeAction = 0
	ActionRemove StateChangeAction = 1
)

func (a StateChangeAction) Valid() bool {
	return a == ActionAdd || a == ActionRemove
}

func (a StateChangeAction) String() string {
	switch a {
	case ActionAdd:
		return "Add"
	case ActionRemove:
		return "Remove"
	default:
		return fmt.Sprintf("StateChangeAction(%d)", int32(a))
	}
}

// PlayerStateChangeType identifies which part of a player's layout a
// PlayerStateChange touches.
type PlayerStateChangeType int32

const (
	ChangeBlitzPile               PlayerStateChangeType = 0
	ChangeAvailableHand           PlayerStateChangeType = 1
	ChangePostPile                PlayerStateChangeType = 2
	ChangeResetPlayerHand         PlayerStateChangeType = 3
	ChangeTransferHandToAvailable PlayerStateChangeType = 4
	ChangePlayerCallBlitz         PlayerStateChangeType = 5
)

func (t PlayerStateChangeType) Valid() bool {
	return t >= ChangeBlitzPile && t <= ChangePlayerCallBlitz
}

func (t PlayerStateChangeType) String() string {
	switch t {
	case ChangeBlitzPile:
		return "BlitzPile"
	case ChangeAvailableHand:
		return "AvailableHand"
	case ChangePostPile:
		return "PostPile"
	case ChangeResetPlayerHand:
		return "ResetPlayerHand"
	case ChangeTransferHandToAvailable:
		return "TransferHandToAvailable"
	case ChangePlayerCallBlitz:
		return "PlayerCallBlitz"
	default:
		return fmt.Sprintf("PlayerStateChangeType(%d)", int32(t))
	}
}

// ServerGameStateAction is a broadcast game-level transition.
type ServerGameStateAction int32

const (
	ServerPauseGame  ServerGameStateAction = 0
	ServerResumeGame ServerGameStateAction = 1
	ServerGameOver   ServerGameStateAction = 3
	ServerNewRound   ServerGameStateAction = 4
)

func (a ServerGameStateAction) Valid() bool {
	switch a {
	case ServerPauseGame, ServerResumeGame, ServerGameOver, ServerNewRound:
		return true
	}
	return false
}

func (a ServerGameStateAction) String() string {
	switch a {
	case ServerPauseGame:
		return "ServerPauseGame"
	case ServerResumeGame:
		return "ServerResumeGame"
	case ServerGameOver:
		return "ServerGameOver"
	case ServerNewRound:
		return "ServerNewRound"
	default:
		return fmt.Sprintf("ServerGameStateAction(%d)", int32(a))
	}
}

// ClientGameStateAction is a client request for a game-level transition.
type ClientGameStateAction int32

const (
	ClientPauseGame     ClientGameStateAction = 0
	ClientResumeGame    ClientGameStateAction = 1
	ClientResetDrawRate ClientGameStateAction = 3
)

func (a ClientGameStateAction) Valid() bool {
	switch a {
	case ClientPauseGame, ClientResumeGame, ClientResetDrawRate:
		return true
	}
	return false
}

func (a ClientGameStateAction) String() string {
	switch a {
	case ClientPauseGame:
		return "PauseGame"
	case ClientResumeGame:
		return "ResumeGame"
	case ClientResetDrawRate:
		return "ResetDrawRate"
	default:
		return fmt.Sprintf("ClientGameStateAction(%d)", int32(a))
	}
}

// Color mirrors blitz.Color with wire-stable codes.
type Color int32

const (
	ColorRed    Color = 0
	ColorBlue   Color = 1
	ColorGreen  Color = 2
	ColorYellow Color = 3
)

func (c Color) Valid() bool {
	return c >= ColorRed && c <= ColorYellow
}

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "Red"
	case ColorBlue:
		return "Blue"
	case ColorGreen:
		return "Green"
	case ColorYellow:
		return "Yellow"
	default:
		return fmt.Sprintf("Color(%d)", int32(c))
	}
}

// Gender mirrors blitz.Gender with wire-stable codes.
type Gender int32

const (
	GenderBoy  Gender = 0
	GenderGirl Gender = 1
)

func (g Gender) Valid() bool {
	return g == GenderBoy || g == GenderGirl
}

func (g Gender) String() string {
	switch g {
	case GenderBoy:
		return "Boy"
	case GenderGirl:
		return "Girl"
	default:
		return fmt.Sprintf("Gender(%d)", int32(g))
	}
}

// ArenaPlayType selects the source pile of an arena play.
type ArenaPlayType int32

const (
	FromAvailableHand ArenaPlayType = 0
	FromBlitz         ArenaPlayType = 1
	FromPost          ArenaPlayType = 2
)

func (t ArenaPlayType) Valid() bool {
	return t >= FromAvailableHand && t <= FromPost
}

func (t ArenaPlayType) String() string {
	switch t {
	case FromAvailableHand:
		return "FromAvailableHand"
	case FromBlitz:
		return "FromBlitz"
	case FromPost:
		return "FromPost"
	default:
		return fmt.Sprintf("ArenaPlayType(%d)", int32(t))
	}
}

// PlayerPlayType selects a play that only rearranges the player's own cards.
type PlayerPlayType int32

const (
	BlitzToPost             PlayerPlayType = 0
	AvailableHandToPost     PlayerPlayType = 1
	TransferToAvailableHand PlayerPlayType = 2
	ResetHand               PlayerPlayType = 3
)

func (t PlayerPlayType) Valid() bool {
	return t >= BlitzToPost && t <= ResetHand
}

func (t PlayerPlayType) String() string {
	switch t {
	case BlitzToPost:
		return "BlitzToPost"
	case AvailableHandToPost:
		return "AvailableHandToPost"
	case TransferToAvailableHand:
		return "TransferToAvailableHand"
	case ResetHand:
		return "ResetHand"
	default:
		return fmt.Sprintf("PlayerPlayType(%d)", int32(t))
	}
}

// AckType is the terminal disposition of an acknowledged event.
type AckType int32

const (
	Accepted AckType = 0
	Rejected AckType = 1
)

func (t AckType) Valid() bool {
	return t == Accepted || t == Rejected
}

func (t AckType) String() string {
	switch t {
	case Accepted:
		return "Accepted"
	case Rejected:
		return "Rejected"
	default:
		return fmt.Sprintf("AckType(%d)", int32(t))
	}
}
