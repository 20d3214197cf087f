package server

import (
	"time"

	"github.com/blitzgame/blitzserver/pkg/blitz"
	"github.com/blitzgame/blitzserver/pkg/blitzrpc"
	"github.com/blitzgame/blitzserver/pkg/utils"
)

// startGamePollInterval is how often the handshake watcher re-checks the
// non-admin in-flight sets. The session lock is released between checks.
const startGamePollInterval = 100 * time.Millisecond

// accept sends the terminal Accepted ack for a client event.
func (s *Session) accept(st *seat, clientEventID uint32) {
	s.sendTo(st, &blitzrpc.ServerEvent{
		EventID:     s.nextEventID(),
		Acknowledge: &blitzrpc.Acknowledge{EventID: clientEventID, Type: blitzrpc.Accepted},
	})
}

// rejectEvent sends the terminal Rejected ack for a client event.
func (s *Session) rejectEvent(st *seat, clientEventID uint32, reason string) {
	s.sendTo(st, &blitzrpc.ServerEvent{
		EventID: s.nextEventID(),
		Acknowledge: &blitzrpc.Acknowledge{
			EventID: clientEventID,
			Type:    blitzrpc.Rejected,
			Reason:  reason,
		},
	})
}

// HandleClientEvent dispatches one inbound event addressed by player id.
// Every event gets exactly one terminal ack; rule violations additionally get
// an in-band GamePlayError. Rejections never terminate the stream.
func (s *Server) HandleClientEvent(sessionID string, playerID uint32, ev *blitzrpc.ClientEvent) {
	sess, err := s.sessionLock(sessionID)
	if err != nil {
		s.log.Warnf("Event %d for unknown session %s", ev.EventID, sessionID)
		return
	}
	defer sessionUnlock(sess)

	st, err := sess.seatByID(playerID)
	if err != nil {
		s.log.Warnf("Event %d for unknown player %d in session %s", ev.EventID, playerID, sessionID)
		return
	}
	s.dispatch(sess, st, ev)
}

// handleSeatEvent dispatches one inbound event addressed by seat. Player ids
// shift when an earlier seat is removed, so the stream read loop identifies
// itself by seat and membership is checked under the same lock acquisition
// as the dispatch; a concurrent removal can neither drop the event nor
// attribute it to the wrong player.
func (s *Server) handleSeatEvent(sessionID string, target *seat, ev *blitzrpc.ClientEvent) {
	sess, err := s.sessionLock(sessionID)
	if err != nil {
		s.log.Warnf("Event %d for unknown session %s", ev.EventID, sessionID)
		return
	}
	defer sessionUnlock(sess)

	if !sess.hasSeat(target) {
		// The seat was removed; its stream is already detached.
		s.log.Debugf("Event %d for removed seat in session %s", ev.EventID, sessionID)
		return
	}
	s.dispatch(sess, target, ev)
}

// dispatch routes one inbound event for a resolved seat. Caller holds the
// session lock.
func (s *Server) dispatch(sess *Session, st *seat, ev *blitzrpc.ClientEvent) {
	if err := ev.Validate(); err != nil {
		sess.rejectEvent(st, ev.EventID, err.Error())
		return
	}

	switch {
	case ev.Acknowledge != nil:
		// A client ack is itself never acknowledged.
		delete(st.inflight, ev.Acknowledge.EventID)

	case ev.OpenStream != nil:
		sess.rejectEvent(st, ev.EventID, "stream already open")

	case ev.Play != nil:
		s.handlePlay(sess, st, ev)

	case ev.ChangeDrawRate != nil:
		s.handleChangeDrawRate(sess, st, ev)

	case ev.StaticEvent != nil:
		s.handleStaticEvent(sess, st, ev)

	case ev.StartGame != nil:
		s.handleStartGame(sess, st, ev)
	}
}

// handlePlay applies one play. Success acks the sender first and then
// broadcasts the delta to everyone including the sender; failure delivers
// GamePlayError plus a Rejected ack to the sender only.
func (s *Server) handlePlay(sess *Session, st *seat, ev *blitzrpc.ClientEvent) {
	if sess.phase != phasePlaying {
		sess.rejectEvent(st, ev.EventID, "game not started")
		return
	}

	play, err := playFromWire(st.player.PlayerGameID, ev.Play)
	if err != nil {
		sess.rejectEvent(st, ev.EventID, err.Error())
		return
	}

	delta, err := sess.game.MakePlay(play)
	if err != nil {
		sess.sendTo(st, &blitzrpc.ServerEvent{
			EventID:       sess.nextEventID(),
			GamePlayError: &blitzrpc.GamePlayError{EventID: ev.EventID, Message: err.Error()},
		})
		sess.rejectEvent(st, ev.EventID, err.Error())
		return
	}

	sess.accept(st, ev.EventID)
	if len(delta.Arena) > 0 || len(delta.Players) > 0 {
		sess.broadcast(&blitzrpc.ServerEvent{
			EventID:         sess.nextEventID(),
			GameStateChange: deltaToWire(delta),
		})
	}

	switch delta.Outcome {
	case blitz.OutcomeNewRound:
		sess.broadcast(&blitzrpc.ServerEvent{
			EventID:      sess.nextEventID(),
			ServerAction: &blitzrpc.ServerAction{Action: blitzrpc.ServerNewRound},
		})
		// Clients cannot derive the fresh shuffle, so the new deals are
		// announced the same way the first ones were.
		sess.broadcast(&blitzrpc.ServerEvent{
			EventID:          sess.nextEventID(),
			RequestStartGame: startGamePayload(sess.game),
		})

	case blitz.OutcomeGameOver:
		sess.broadcast(&blitzrpc.ServerEvent{
			EventID:      sess.nextEventID(),
			ServerAction: &blitzrpc.ServerAction{Action: blitzrpc.ServerGameOver},
		})
		sess.lifecycle.Dispatch(sessionOver)
	}
}

// handleChangeDrawRate mutates the draw rate and announces the new value to
// everyone. Any player may change it.
func (s *Server) handleChangeDrawRate(sess *Session, st *seat, ev *blitzrpc.ClientEvent) {
	if sess.game == nil {
		sess.rejectEvent(st, ev.EventID, "game not started")
		return
	}
	sess.game.ChangeDrawRate(int(ev.ChangeDrawRate.DrawRate))
	sess.accept(st, ev.EventID)
	sess.broadcast(&blitzrpc.ServerEvent{
		EventID:        sess.nextEventID(),
		ChangeDrawRate: &blitzrpc.ChangeDrawRate{DrawRate: ev.ChangeDrawRate.DrawRate},
	})
}

// handleStaticEvent serves the admin-only game level transitions.
func (s *Server) handleStaticEvent(sess *Session, st *seat, ev *blitzrpc.ClientEvent) {
	if !st.player.IsSessionAdmin {
		sess.rejectEvent(st, ev.EventID, "only the session admin may do that")
		return
	}
	action := ev.StaticEvent.Action
	if !action.Valid() {
		sess.rejectEvent(st, ev.EventID, "unknown game state action")
		return
	}
	if sess.game == nil {
		sess.rejectEvent(st, ev.EventID, "game not started")
		return
	}

	sess.accept(st, ev.EventID)
	switch action {
	case blitzrpc.ClientPauseGame:
		sess.broadcast(&blitzrpc.ServerEvent{
			EventID:      sess.nextEventID(),
			ServerAction: &blitzrpc.ServerAction{Action: blitzrpc.ServerPauseGame},
		})
	case blitzrpc.ClientResumeGame:
		sess.broadcast(&blitzrpc.ServerEvent{
			EventID:      sess.nextEventID(),
			ServerAction: &blitzrpc.ServerAction{Action: blitzrpc.ServerResumeGame},
		})
	case blitzrpc.ClientResetDrawRate:
		// No dedicated server action exists for a reset; the restored
		// value is announced as a plain draw rate change.
		sess.game.ResetDrawRate()
		sess.broadcast(&blitzrpc.ServerEvent{
			EventID:        sess.nextEventID(),
			ChangeDrawRate: &blitzrpc.ChangeDrawRate{DrawRate: uint32(sess.game.DrawRate)},
		})
	}
}

// handleStartGame runs the admin's side of the start-game handshake: deal,
// announce to the non-admins under one shared event id, then hand off to the
// watcher goroutine that waits for their acks.
func (s *Server) handleStartGame(sess *Session, st *seat, ev *blitzrpc.ClientEvent) {
	if !st.player.IsSessionAdmin {
		sess.rejectEvent(st, ev.EventID, "only the session admin may start the game")
		return
	}
	if !sess.joinable() {
		sess.rejectEvent(st, ev.EventID, "game already started")
		return
	}

	prefs := prefsFromWire(ev.StartGame.Prefs)
	game, err := blitz.New(len(sess.seats), prefs, nil)
	if err != nil {
		sess.rejectEvent(st, ev.EventID, err.Error())
		return
	}
	sess.game = game
	sess.lifecycle.Dispatch(sessionAwaitingAcks)

	sess.accept(st, ev.EventID)

	payload := startGamePayload(game)
	startID := sess.nextEventID()
	for _, other := range sess.seats {
		if other.player.IsSessionAdmin {
			continue
		}
		sess.sendTo(other, &blitzrpc.ServerEvent{
			EventID:          startID,
			RequestStartGame: payload,
		})
	}
	sess.startEventID = startID
	s.log.Infof("Session %s: start requested, waiting for acks on event %d", sess.ID, startID)
	s.log.Tracef("Session %s global deck: %s", sess.ID, utils.FormatCards(payload.GlobalDeck))

	if sess.startGameAcked() {
		// Single-player session, or nobody reachable: complete at once.
		s.completeStartGame(sess)
		return
	}
	go s.watchStartGame(sess.ID, startID)
}

// startGameAcked reports whether no non-admin still holds the handshake
// event id. Caller holds the session lock.
func (s *Session) startGameAcked() bool {
	for _, st := range s.seats {
		if st.player.IsSessionAdmin {
			continue
		}
		if _, pending := st.inflight[s.startEventID]; pending {
			return false
		}
	}
	return true
}

// completeStartGame confirms the start to the admin and opens play. Caller
// holds the session lock.
func (s *Server) completeStartGame(sess *Session) {
	for _, st := range sess.seats {
		if !st.player.IsSessionAdmin {
			continue
		}
		sess.sendTo(st, &blitzrpc.ServerEvent{
			EventID:          sess.nextEventID(),
			ConfirmGameStart: startGamePayload(sess.game),
		})
	}
	sess.startEventID = 0
	sess.lifecycle.Dispatch(sessionPlaying)
	s.log.Infof("Session %s: game started with %d players", sess.ID, len(sess.seats))
}

// watchStartGame polls until every non-admin has acknowledged the deal. The
// lock is only held across each check, never across the sleep.
func (s *Server) watchStartGame(sessionID string, startID uint32) {
	for {
		time.Sleep(startGamePollInterval)

		sess, err := s.sessionLock(sessionID)
		if err != nil {
			return
		}
		if sess.phase != phaseAwaitingAcks || sess.startEventID != startID {
			sessionUnlock(sess)
			return
		}
		if sess.startGameAcked() {
			s.completeStartGame(sess)
			sessionUnlock(sess)
			return
		}
		sessionUnlock(sess)
	}
}
