package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/blitzgame/blitzserver/pkg/blitzrpc"
)

// outboxSize bounds each player's egress queue. Pressure here means a slow
// client; overflowing events are logged and dropped rather than blocking the
// session.
const outboxSize = 64

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Session ids are unguessable; the browser origin carries no trust.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsSink pumps server events onto one player's websocket. Send never blocks;
// the pump goroutine is the only writer on the connection.
type wsSink struct {
	conn   *websocket.Conn
	outbox chan *blitzrpc.ServerEvent
	done   chan struct{}
	once   sync.Once
}

func newWSSink(conn *websocket.Conn) *wsSink {
	return &wsSink{
		conn:   conn,
		outbox: make(chan *blitzrpc.ServerEvent, outboxSize),
		done:   make(chan struct{}),
	}
}

func (w *wsSink) Send(ev *blitzrpc.ServerEvent) error {
	select {
	case <-w.done:
		return Errorf(CodeUnavailable, "stream closed")
	case w.outbox <- ev:
		return nil
	default:
		return Errorf(CodeInternal, "outbox full")
	}
}

func (w *wsSink) Close() {
	w.once.Do(func() { close(w.done) })
}

// pump writes queued events until the sink closes or the write fails.
func (w *wsSink) pump() {
	defer w.conn.Close()
	for {
		select {
		case <-w.done:
			return
		case ev := <-w.outbox:
			if err := w.conn.WriteJSON(ev); err != nil {
				w.Close()
				return
			}
		}
	}
}

// attachStream installs the sink on the identified seat. Fails when the seat
// already has an open stream.
func (s *Server) attachStream(open *blitzrpc.OpenStream, sink EventSink) (*seat, error) {
	sess, err := s.sessionLock(open.SessionID)
	if err != nil {
		return nil, err
	}
	defer sessionUnlock(sess)

	st, err := sess.seatByID(open.PlayerGameID)
	if err != nil {
		return nil, err
	}
	if st.streamOpen() {
		return nil, Errorf(CodeFailedPrecondition, "player %d already has an open stream", open.PlayerGameID)
	}
	st.sink = sink
	st.inflight = make(map[uint32]struct{})
	return st, nil
}

// HandleWS serves one player's bidirectional event stream. The first client
// message must be OpenStream; after the accepting ack every further inbound
// event goes through the coordinator, and a read error is a disconnect.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("Websocket upgrade failed: %v", err)
		return
	}

	var first blitzrpc.ClientEvent
	if err := conn.ReadJSON(&first); err != nil {
		conn.Close()
		return
	}
	if first.OpenStream == nil {
		s.log.Warnf("Stream from %s did not open with OpenStream", r.RemoteAddr)
		conn.Close()
		return
	}

	sink := newWSSink(conn)
	st, err := s.attachStream(first.OpenStream, sink)
	if err != nil {
		s.log.Warnf("Stream open rejected for %s: %v", r.RemoteAddr, err)
		conn.Close()
		return
	}
	go sink.pump()

	sessionID := first.OpenStream.SessionID
	sink.Send(&blitzrpc.ServerEvent{
		Acknowledge: &blitzrpc.Acknowledge{EventID: first.EventID, Type: blitzrpc.Accepted},
	})
	s.log.Infof("Stream open: session %s player %d", sessionID, first.OpenStream.PlayerGameID)

	// Inbound events are addressed by seat, not by player id: ids shift when
	// an earlier seat is removed, and the coordinator resolves the seat's
	// current id under the session lock.
	for {
		var ev blitzrpc.ClientEvent
		if err := conn.ReadJSON(&ev); err != nil {
			// Disconnect; the sink is detached by the removal.
			s.dropSeat(sessionID, st)
			sink.Close()
			return
		}
		s.handleSeatEvent(sessionID, st, &ev)
	}
}
