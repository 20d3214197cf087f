package server

import (
	"io"
	"testing"

	"github.com/decred/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blitzgame/blitzserver/pkg/blitzrpc"
)

func testLogger() slog.Logger {
	return slog.NewBackend(io.Discard).Logger("TEST")
}

// chanSink is an in-process egress endpoint collecting the events a player
// would receive on their websocket.
type chanSink struct {
	events chan *blitzrpc.ServerEvent
}

func newChanSink() *chanSink {
	return &chanSink{events: make(chan *blitzrpc.ServerEvent, 128)}
}

func (c *chanSink) Send(ev *blitzrpc.ServerEvent) error {
	select {
	case c.events <- ev:
		return nil
	default:
		return Errorf(CodeInternal, "outbox full")
	}
}

func (c *chanSink) Close() {}

// next pops the next queued event, failing the test when none is pending.
func (c *chanSink) next(t *testing.T) *blitzrpc.ServerEvent {
	t.Helper()
	select {
	case ev := <-c.events:
		return ev
	default:
		t.Fatal("no pending event")
		return nil
	}
}

func (c *chanSink) empty() bool {
	return len(c.events) == 0
}

func TestStartSession(t *testing.T) {
	srv := NewServer(testLogger())

	alice, err := srv.StartSession("alice", 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), alice.PlayerGameID)
	assert.True(t, alice.IsSessionAdmin)
	assert.Equal(t, "alice", alice.Username)
	assert.Equal(t, uint32(2), alice.FaceImageID)
	assert.NotEmpty(t, alice.SessionID)

	_, err = srv.StartSession("   ", 0)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidArgument, ErrCode(err))
}

func TestJoinSession(t *testing.T) {
	srv := NewServer(testLogger())
	alice, err := srv.StartSession("alice", 0)
	require.NoError(t, err)

	bob, err := srv.JoinSession(alice.SessionID, "bob", 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), bob.PlayerGameID)
	assert.False(t, bob.IsSessionAdmin)

	// Duplicate username must not mutate the session.
	_, err = srv.JoinSession(alice.SessionID, "bob", 3)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidArgument, ErrCode(err))
	desc, err := srv.GetSession(alice.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, desc.Players)

	_, err = srv.JoinSession("no-such-session", "carol", 0)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrCode(err))

	_, err = srv.JoinSession(alice.SessionID, "", 0)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidArgument, ErrCode(err))
}

func TestGetActiveSessionsOnlyJoinable(t *testing.T) {
	srv := NewServer(testLogger())
	alice, err := srv.StartSession("alice", 0)
	require.NoError(t, err)
	dave, err := srv.StartSession("dave", 0)
	require.NoError(t, err)

	res := srv.GetActiveSessions()
	assert.Len(t, res.Sessions, 2)

	// Starting dave's game removes it from the joinable listing.
	sink := newChanSink()
	_, err = srv.attachStream(&blitzrpc.OpenStream{SessionID: dave.SessionID, PlayerGameID: 0}, sink)
	require.NoError(t, err)
	srv.HandleClientEvent(dave.SessionID, 0, &blitzrpc.ClientEvent{
		EventID:   1,
		StartGame: &blitzrpc.StartGame{},
	})

	res = srv.GetActiveSessions()
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, alice.SessionID, res.Sessions[0].ID)

	desc, err := srv.GetSession(dave.SessionID)
	require.NoError(t, err)
	assert.False(t, desc.IsJoinable)
	assert.True(t, desc.IsActive)
}

func TestRemovePlayerPreGame(t *testing.T) {
	srv := NewServer(testLogger())
	alice, err := srv.StartSession("alice", 0)
	require.NoError(t, err)
	_, err = srv.JoinSession(alice.SessionID, "bob", 0)
	require.NoError(t, err)

	// Admin disconnects pre-game; bob is promoted and reindexed to seat 0.
	srv.RemovePlayer(alice.SessionID, 0)
	desc, err := srv.GetSession(alice.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, desc.Players)

	sess, ok := srv.getSession(alice.SessionID)
	require.True(t, ok)
	sess.mu.Lock()
	assert.True(t, sess.seats[0].player.IsSessionAdmin)
	assert.Equal(t, uint32(0), sess.seats[0].player.PlayerGameID)
	sess.mu.Unlock()

	// Last player leaving deletes the session.
	srv.RemovePlayer(alice.SessionID, 0)
	_, err = srv.GetSession(alice.SessionID)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrCode(err))
}

func TestEndSessionNonAdminLeaves(t *testing.T) {
	srv := NewServer(testLogger())
	alice, err := srv.StartSession("alice", 0)
	require.NoError(t, err)
	bob, err := srv.JoinSession(alice.SessionID, "bob", 0)
	require.NoError(t, err)

	require.NoError(t, srv.EndSession(*bob))
	desc, err := srv.GetSession(alice.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, desc.Players)
}

func TestEndSessionByAdminDestroys(t *testing.T) {
	srv := NewServer(testLogger())
	alice, err := srv.StartSession("alice", 0)
	require.NoError(t, err)
	_, err = srv.JoinSession(alice.SessionID, "bob", 0)
	require.NoError(t, err)

	require.NoError(t, srv.EndSession(*alice))
	_, err = srv.GetSession(alice.SessionID)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrCode(err))
}

func TestAttachStreamTwice(t *testing.T) {
	srv := NewServer(testLogger())
	alice, err := srv.StartSession("alice", 0)
	require.NoError(t, err)

	open := &blitzrpc.OpenStream{SessionID: alice.SessionID, PlayerGameID: 0}
	_, err = srv.attachStream(open, newChanSink())
	require.NoError(t, err)

	_, err = srv.attachStream(open, newChanSink())
	require.Error(t, err)
	assert.Equal(t, CodeFailedPrecondition, ErrCode(err))

	_, err = srv.attachStream(&blitzrpc.OpenStream{SessionID: alice.SessionID, PlayerGameID: 7}, newChanSink())
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrCode(err))
}

func TestSnapshotRequiresGame(t *testing.T) {
	srv := NewServer(testLogger())
	alice, err := srv.StartSession("alice", 0)
	require.NoError(t, err)

	_, err = srv.Snapshot(alice.SessionID)
	require.Error(t, err)
	assert.Equal(t, CodeFailedPrecondition, ErrCode(err))
}
