package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/blitzgame/blitzserver/pkg/blitzrpc"
)

// Router builds the HTTP surface: the unary session service plus the
// websocket upgrade endpoint.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/sessions", s.httpListSessions).Methods(http.MethodGet)
	r.HandleFunc("/sessions", s.httpStartSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/join", s.httpJoinSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/end", s.httpEndSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}", s.httpGetSession).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/snapshot", s.httpSnapshot).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.HandleWS)
	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) writeErr(w http.ResponseWriter, err error) {
	code := ErrCode(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus(code))
	resp := struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{Code: code.String(), Message: err.Error()}
	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		s.log.Errorf("Encoding error response: %v", encErr)
	}
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return Errorf(CodeInvalidArgument, "malformed request body: %v", err)
	}
	return nil
}

func (s *Server) httpListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.GetActiveSessions())
}

func (s *Server) httpStartSession(w http.ResponseWriter, r *http.Request) {
	var req blitzrpc.StartSessionRq
	if err := decodeBody(r, &req); err != nil {
		s.writeErr(w, err)
		return
	}
	player, err := s.StartSession(req.Username, req.FaceImageID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, player)
}

func (s *Server) httpJoinSession(w http.ResponseWriter, r *http.Request) {
	var req blitzrpc.JoinSessionRq
	if err := decodeBody(r, &req); err != nil {
		s.writeErr(w, err)
		return
	}
	player, err := s.JoinSession(req.SessionID, req.Username, req.FaceImageID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, player)
}

func (s *Server) httpEndSession(w http.ResponseWriter, r *http.Request) {
	var req blitzrpc.Player
	if err := decodeBody(r, &req); err != nil {
		s.writeErr(w, err)
		return
	}
	if err := s.EndSession(req); err != nil {
		s.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) httpGetSession(w http.ResponseWriter, r *http.Request) {
	desc, err := s.GetSession(mux.Vars(r)["id"])
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, desc)
}

func (s *Server) httpSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Snapshot(mux.Vars(r)["id"])
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, snap)
}

// Snapshot returns the compact pile-top view of a running game.
func (s *Server) Snapshot(sessionID string) (*blitzrpc.SessionSnapshot, error) {
	sess, err := s.sessionLock(sessionID)
	if err != nil {
		return nil, err
	}
	defer sessionUnlock(sess)
	if sess.game == nil {
		return nil, Errorf(CodeFailedPrecondition, "session %s has no running game", sessionID)
	}
	return snapshot(sess), nil
}
