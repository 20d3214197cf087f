package server

import (
	"sync"

	"github.com/decred/slog"

	"github.com/blitzgame/blitzserver/pkg/blitz"
	"github.com/blitzgame/blitzserver/pkg/blitzrpc"
	"github.com/blitzgame/blitzserver/pkg/statemachine"
)

// EventSink is one player's egress endpoint. Send must not block; a sink
// that cannot accept the event returns an error and the broadcast skips it.
type EventSink interface {
	Send(*blitzrpc.ServerEvent) error
	Close()
}

// seat is one player slot in a session: the wire identity, the egress sink
// (nil until the player opens their stream) and the set of server event ids
// the player has not yet acknowledged.
type seat struct {
	player   blitzrpc.Player
	sink     EventSink
	inflight map[uint32]struct{}
}

func (st *seat) streamOpen() bool {
	return st.sink != nil
}

// detach drops the seat's egress endpoint and clears its in-flight set, so a
// pending start-game handshake is not blocked on a gone player.
func (st *seat) detach() {
	if st.sink != nil {
		st.sink.Close()
		st.sink = nil
	}
	st.inflight = make(map[uint32]struct{})
}

// Session is one table of players and, once started, its game. The session
// lock linearizes everything: seat changes, game mutation and broadcast
// enqueues all happen under sessionLock/sessionUnlock on the owning Server.
type Session struct {
	ID string

	// mu is the session's unit of exclusion. It must never be held
	// across a blocking send or a handshake sleep; egress enqueues are
	// non-blocking so broadcasting under the lock is fine.
	mu sync.Mutex

	log   slog.Logger
	seats []*seat

	game *blitz.GameState

	lifecycle *statemachine.StateMachine[Session]
	phase     phase

	// startEventID is the shared server event id of the in-progress
	// start-game handshake, zero when none is pending.
	startEventID uint32

	eventCounter uint32
}

func newSession(id string, log slog.Logger) *Session {
	s := &Session{ID: id, log: log}
	s.lifecycle = statemachine.New(s, sessionLobby)
	return s
}

// phase is the comparable lifecycle position recorded by the state functions.
type phase int

const (
	phaseLobby phase = iota
	phaseAwaitingAcks
	phasePlaying
	phaseOver
)

// Lifecycle states. Each state function records its phase on the session and
// stays put until the coordinator dispatches the next transition.

func sessionLobby(s *Session) statemachine.StateFn[Session] {
	s.phase = phaseLobby
	return nil
}

func sessionAwaitingAcks(s *Session) statemachine.StateFn[Session] {
	s.phase = phaseAwaitingAcks
	return nil
}

func sessionPlaying(s *Session) statemachine.StateFn[Session] {
	s.phase = phasePlaying
	return nil
}

func sessionOver(s *Session) statemachine.StateFn[Session] {
	s.phase = phaseOver
	return nil
}

func (s *Session) joinable() bool {
	return s.phase == phaseLobby
}

func (s *Session) midGame() bool {
	return s.phase == phaseAwaitingAcks || s.phase == phasePlaying
}

// nextEventID allocates the next monotonic server event id for this session.
func (s *Session) nextEventID() uint32 {
	s.eventCounter++
	return s.eventCounter
}

// addPlayer appends a new player slot. Fails when the session is no longer
// joinable or the username is already taken; a blank username never gets here
// (validated by the facade).
func (s *Session) addPlayer(username string, faceImageID uint32) (*blitzrpc.Player, error) {
	if !s.joinable() {
		return nil, Errorf(CodeFailedPrecondition, "session %s is not joinable", s.ID)
	}
	for _, st := range s.seats {
		if st.player.Username == username {
			return nil, Errorf(CodeInvalidArgument, "username %q already taken in session %s", username, s.ID)
		}
	}
	p := blitzrpc.Player{
		SessionID:      s.ID,
		PlayerGameID:   uint32(len(s.seats)),
		Username:       username,
		FaceImageID:    faceImageID,
		IsSessionAdmin: len(s.seats) == 0,
	}
	s.seats = append(s.seats, &seat{
		player:   p,
		inflight: make(map[uint32]struct{}),
	})
	return &p, nil
}

func (s *Session) seatByID(playerID uint32) (*seat, error) {
	if int(playerID) >= len(s.seats) {
		return nil, Errorf(CodeNotFound, "no player %d in session %s", playerID, s.ID)
	}
	return s.seats[playerID], nil
}

// hasSeat reports whether the seat is still a member of this session.
func (s *Session) hasSeat(target *seat) bool {
	for _, st := range s.seats {
		if st == target {
			return true
		}
	}
	return false
}

// removeSeat drops the slot at index id, reindexes the remaining seats and
// keeps seat 0 the admin. When a game is in progress it first broadcasts
// ServerGameOver and returns the session to the lobby, since the remaining
// players' deals no longer form a consistent game.
func (s *Session) removeSeat(id uint32) {
	if int(id) >= len(s.seats) {
		return
	}
	if s.midGame() {
		s.broadcast(&blitzrpc.ServerEvent{
			EventID:      s.nextEventID(),
			ServerAction: &blitzrpc.ServerAction{Action: blitzrpc.ServerGameOver},
		})
		s.game = nil
		s.startEventID = 0
		s.lifecycle.Dispatch(sessionLobby)
	}
	s.seats[id].detach()
	s.seats = append(s.seats[:id], s.seats[id+1:]...)
	for i, st := range s.seats {
		st.player.PlayerGameID = uint32(i)
		st.player.IsSessionAdmin = i == 0
	}
}

func (s *Session) empty() bool {
	return len(s.seats) == 0
}

// sendTo enqueues one event for one seat. Enqueue failures (no open stream,
// full outbox) are logged and skipped; the remaining recipients still get the
// event. Every non-Acknowledge payload joins the seat's in-flight set.
func (s *Session) sendTo(st *seat, ev *blitzrpc.ServerEvent) {
	if !st.streamOpen() {
		s.log.Debugf("session %s: player %d has no open stream, skipping event %d",
			s.ID, st.player.PlayerGameID, ev.EventID)
		return
	}
	if err := st.sink.Send(ev); err != nil {
		s.log.Warnf("session %s: dropping event %d for player %d: %v",
			s.ID, ev.EventID, st.player.PlayerGameID, err)
		return
	}
	if ev.NeedsAck() {
		st.inflight[ev.EventID] = struct{}{}
	}
}

// broadcast enqueues one event for every seat.
func (s *Session) broadcast(ev *blitzrpc.ServerEvent) {
	for _, st := range s.seats {
		s.sendTo(st, ev)
	}
}

// closeAll detaches every seat's egress endpoint.
func (s *Session) closeAll() {
	for _, st := range s.seats {
		st.detach()
	}
}

// descriptor builds the wire summary of this session.
func (s *Session) descriptor() blitzrpc.SessionDescriptor {
	players := make([]string, len(s.seats))
	for i, st := range s.seats {
		players[i] = st.player.Username
	}
	return blitzrpc.SessionDescriptor{
		ID:         s.ID,
		Players:    players,
		IsJoinable: s.joinable(),
		IsActive:   s.midGame(),
	}
}
