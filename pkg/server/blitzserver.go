// Package server implements the Blitz session server: a registry of
// sessions, the unary session service, and the per-player event streams that
// carry the game protocol.
package server

import (
	"strings"
	"sync"

	"github.com/decred/slog"
	"github.com/google/uuid"

	"github.com/blitzgame/blitzserver/pkg/blitzrpc"
)

// Server holds every live session. The registry map has its own lock; each
// session is its own unit of exclusion, taken via sessionLock so registry
// reads never hold a session lock.
type Server struct {
	log slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewServer creates an empty server logging through the given logger.
func NewServer(log slog.Logger) *Server {
	return &Server{
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// getSession looks up a session without locking it.
func (s *Server) getSession(id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	return sess, ok
}

// sessionLock looks up a session and returns it with its lock held. The
// caller must call sessionUnlock when done.
func (s *Server) sessionLock(id string) (*Session, error) {
	sess, ok := s.getSession(id)
	if !ok {
		return nil, Errorf(CodeNotFound, "no session %s", id)
	}
	sess.mu.Lock()
	return sess, nil
}

func sessionUnlock(sess *Session) {
	sess.mu.Unlock()
}

// deleteSession drops a session from the registry.
func (s *Server) deleteSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.log.Infof("Session %s removed", id)
}

func validUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return Errorf(CodeInvalidArgument, "username must not be blank")
	}
	return nil
}

// StartSession creates a new session with the caller as its admin (seat 0).
func (s *Server) StartSession(username string, faceImageID uint32) (*blitzrpc.Player, error) {
	if err := validUsername(username); err != nil {
		return nil, err
	}

	sess := newSession(uuid.NewString(), s.log)
	sess.mu.Lock()
	player, err := sess.addPlayer(username, faceImageID)
	sess.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.log.Infof("Session %s created by %q", sess.ID, username)
	return player, nil
}

// JoinSession adds the caller to an existing joinable session.
func (s *Server) JoinSession(sessionID, username string, faceImageID uint32) (*blitzrpc.Player, error) {
	if err := validUsername(username); err != nil {
		return nil, err
	}
	sess, err := s.sessionLock(sessionID)
	if err != nil {
		return nil, err
	}
	defer sessionUnlock(sess)

	player, err := sess.addPlayer(username, faceImageID)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Player %q joined session %s as %d", username, sessionID, player.PlayerGameID)
	return player, nil
}

// GetActiveSessions lists the sessions that can still be joined.
func (s *Server) GetActiveSessions() *blitzrpc.SessionsRes {
	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.RUnlock()

	res := &blitzrpc.SessionsRes{Sessions: []blitzrpc.SessionDescriptor{}}
	for _, sess := range sessions {
		sess.mu.Lock()
		if sess.joinable() {
			res.Sessions = append(res.Sessions, sess.descriptor())
		}
		sess.mu.Unlock()
	}
	return res
}

// GetSession returns one session's descriptor regardless of joinability.
func (s *Server) GetSession(sessionID string) (*blitzrpc.SessionDescriptor, error) {
	sess, err := s.sessionLock(sessionID)
	if err != nil {
		return nil, err
	}
	defer sessionUnlock(sess)
	d := sess.descriptor()
	return &d, nil
}

// EndSession handles an explicit leave. The admin ending the session
// destroys it for everyone (ServerGameOver first when a game is running);
// any other player is only removed.
func (s *Server) EndSession(player blitzrpc.Player) error {
	sess, err := s.sessionLock(player.SessionID)
	if err != nil {
		return err
	}

	st, err := sess.seatByID(player.PlayerGameID)
	if err != nil {
		sessionUnlock(sess)
		return err
	}

	if st.player.IsSessionAdmin {
		if sess.midGame() {
			sess.broadcast(&blitzrpc.ServerEvent{
				EventID:      sess.nextEventID(),
				ServerAction: &blitzrpc.ServerAction{Action: blitzrpc.ServerGameOver},
			})
		}
		sess.lifecycle.Dispatch(sessionOver)
		sess.closeAll()
		sessionUnlock(sess)
		s.deleteSession(sess.ID)
		s.log.Infof("Session %s ended by admin %q", sess.ID, player.Username)
		return nil
	}

	sess.removeSeat(player.PlayerGameID)
	empty := sess.empty()
	sessionUnlock(sess)
	if empty {
		s.deleteSession(sess.ID)
	}
	s.log.Infof("Player %q left session %s", player.Username, player.SessionID)
	return nil
}

// RemovePlayer handles a disconnect. Mid-game the session survives as a
// lobby; a mid-game admin disconnect destroys the session like an explicit
// admin end. Pre-game the next seat is promoted when the admin departs.
func (s *Server) RemovePlayer(sessionID string, playerID uint32) {
	sess, err := s.sessionLock(sessionID)
	if err != nil {
		return
	}
	st, err := sess.seatByID(playerID)
	if err != nil {
		sessionUnlock(sess)
		return
	}
	s.removePlayer(sess, st)
}

// dropSeat handles a disconnect addressed by seat, resolving the current
// player id under the session lock since ids shift when an earlier seat
// leaves.
func (s *Server) dropSeat(sessionID string, target *seat) {
	sess, err := s.sessionLock(sessionID)
	if err != nil {
		return
	}
	if !sess.hasSeat(target) {
		sessionUnlock(sess)
		return
	}
	s.removePlayer(sess, target)
}

// removePlayer removes one resolved seat. Takes the session locked and
// releases it.
func (s *Server) removePlayer(sess *Session, st *seat) {
	sessionID := sess.ID
	playerID := st.player.PlayerGameID

	if !st.player.IsSessionAdmin && sess.phase == phaseAwaitingAcks {
		// A non-admin dropping during the start-game handshake must not
		// stall it: clearing their in-flight set lets the watcher
		// complete. The seat stays so engine player ids keep matching.
		st.detach()
		sessionUnlock(sess)
		s.log.Debugf("Player %d detached from session %s during start handshake", playerID, sessionID)
		return
	}

	if st.player.IsSessionAdmin && sess.midGame() {
		sess.broadcast(&blitzrpc.ServerEvent{
			EventID:      sess.nextEventID(),
			ServerAction: &blitzrpc.ServerAction{Action: blitzrpc.ServerGameOver},
		})
		sess.lifecycle.Dispatch(sessionOver)
		sess.closeAll()
		sessionUnlock(sess)
		s.deleteSession(sess.ID)
		s.log.Infof("Session %s destroyed: admin disconnected mid-game", sess.ID)
		return
	}

	sess.removeSeat(playerID)
	empty := sess.empty()
	sessionUnlock(sess)
	if empty {
		s.deleteSession(sess.ID)
		return
	}
	s.log.Debugf("Player %d removed from session %s", playerID, sessionID)
}
