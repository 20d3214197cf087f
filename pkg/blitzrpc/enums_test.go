package blitzrpc

import (
	"encoding/json"
	"testing"
)

func TestEnumCodes(t *testing.T) {
	// Wire codes are frozen; a renumbering is a protocol break.
	tests := []struct {
		name string
		got  int32
		want int32
	}{
		{"ActionAdd", int32(ActionAdd), 0},
		{"ActionRemove", int32(ActionRemove), 1},
		{"ChangeBlitzPile", int32(ChangeBlitzPile), 0},
		{"ChangeAvailableHand", int32(ChangeAvailableHand), 1},
		{"ChangePostPile", int32(ChangePostPile), 2},
		{"ChangeResetPlayerHand", int32(ChangeResetPlayerHand), 3},
		{"ChangeTransferHandToAvailable", int32(ChangeTransferHandToAvailable), 4},
		{"ChangePlayerCallBlitz", int32(ChangePlayerCallBlitz), 5},
		{"ServerPauseGame", int32(ServerPauseGame), 0},
		{"ServerResumeGame", int32(ServerResumeGame), 1},
		{"ServerGameOver", int32(ServerGameOver), 3},
		{"ServerNewRound", int32(ServerNewRound), 4},
		{"ClientPauseGame", int32(ClientPauseGame), 0},
		{"ClientResumeGame", int32(ClientResumeGame), 1},
		{"ClientResetDrawRate", int32(ClientResetDrawRate), 3},
		{"ColorRed", int32(ColorRed), 0},
		{"ColorBlue", int32(ColorBlue), 1},
		{"ColorGreen", int32(ColorGreen), 2},
		{"ColorYellow", int32(ColorYellow), 3},
		{"GenderBoy", int32(GenderBoy), 0},
		{"GenderGirl", int32(GenderGirl), 1},
		{"FromAvailableHand", int32(FromAvailableHand), 0},
		{"FromBlitz", int32(FromBlitz), 1},
		{"FromPost", int32(FromPost), 2},
		{"BlitzToPost", int32(BlitzToPost), 0},
		{"AvailableHandToPost", int32(AvailableHandToPost), 1},
		{"TransferToAvailableHand", int32(TransferToAvailableHand), 2},
		{"ResetHand", int32(ResetHand), 3},
		{"Accepted", int32(Accepted), 0},
		{"Rejected", int32(Rejected), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	for _, a := range []ServerGameStateAction{ServerPauseGame, ServerResumeGame, ServerGameOver, ServerNewRound} {
		if !a.Valid() {
			t.Errorf("%s should be valid", a)
		}
	}
	// Code 2 is a hole in both game state action enums.
	if ServerGameStateAction(2).Valid() {
		t.Error("ServerGameStateAction(2) should be invalid")
	}
	if ClientGameStateAction(2).Valid() {
		t.Error("ClientGameStateAction(2) should be invalid")
	}
	if PlayerStateChangeType(6).Valid() {
		t.Error("PlayerStateChangeType(6) should be invalid")
	}
	if ArenaPlayType(3).Valid() {
		t.Error("ArenaPlayType(3) should be invalid")
	}
	if PlayerPlayType(4).Valid() {
		t.Error("PlayerPlayType(4) should be invalid")
	}
	if Color(4).Valid() {
		t.Error("Color(4) should be invalid")
	}
	if Gender(2).Valid() {
		t.Error("Gender(2) should be invalid")
	}
	if AckType(2).Valid() {
		t.Error("AckType(2) should be invalid")
	}
}

func TestClientEventValidate(t *testing.T) {
	tests := []struct {
		name    string
		event   ClientEvent
		wantErr bool
	}{
		{
			name:  "single payload",
			event: ClientEvent{EventID: 1, Play: &Play{CallBlitz: true}},
		},
		{
			name:    "no payload",
			event:   ClientEvent{EventID: 1},
			wantErr: true,
		},
		{
			name: "two payloads",
			event: ClientEvent{
				EventID:     1,
				Play:        &Play{CallBlitz: true},
				Acknowledge: &Acknowledge{EventID: 3},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	events := []ServerEvent{
		{EventID: 1, Acknowledge: &Acknowledge{EventID: 1, Type: Accepted}},
		{EventID: 2, GameStateChange: &GameStateChange{
			Arena:   []ArenaStateChange{{Action: ActionAdd, Card: 14, Pile: 0}},
			Players: []PlayerStateChange{{PlayerID: 1, Type: ChangeBlitzPile, Action: ActionRemove, Card: 14}},
		}},
		{EventID: 3, ServerAction: &ServerAction{Action: ServerNewRound}},
		{EventID: 4, ChangeDrawRate: &ChangeDrawRate{DrawRate: 1}},
		{EventID: 5, GamePlayError: &GamePlayError{EventID: 9, Message: "card color Red does not match pile color Blue"}},
	}
	for _, ev := range events {
		raw, err := json.Marshal(&ev)
		if err != nil {
			t.Fatalf("marshal event %d: %v", ev.EventID, err)
		}
		var got ServerEvent
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("unmarshal event %d: %v", ev.EventID, err)
		}
		if got.EventID != ev.EventID {
			t.Errorf("event id %d round-tripped to %d", ev.EventID, got.EventID)
		}
		if got.NeedsAck() != ev.NeedsAck() {
			t.Errorf("event %d: NeedsAck changed across round trip", ev.EventID)
		}
	}
}
