package blitzrpc

// Player identifies one seat in a session. It is returned by the session
// service and presented by the client when opening its event stream.
type Player struct {
	SessionID      string `json:"session_id"`
	PlayerGameID   uint32 `json:"player_game_id"`
	Username       string `json:"username"`
	FaceImageID    uint32 `json:"face_image_id"`
	IsSessionAdmin bool   `json:"is_session_admin"`
}

// StartSessionRq creates a new session with the caller as admin.
type StartSessionRq struct {
	Username    string `json:"username"`
	FaceImageID uint32 `json:"face_image_id"`
}

// JoinSessionRq adds the caller to an existing joinable session.
type JoinSessionRq struct {
	SessionID   string `json:"session_id"`
	Username    string `json:"username"`
	FaceImageID uint32 `json:"face_image_id"`
}

// SessionDescriptor summarizes one session for listings.
type SessionDescriptor struct {
	ID         string   `json:"id"`
	Players    []string `json:"players"`
	IsJoinable bool     `json:"is_joinable"`
	IsActive   bool     `json:"is_active"`
}

// SessionsRes lists the joinable sessions.
type SessionsRes struct {
	Sessions []SessionDescriptor `json:"sessions"`
}

// PileTop is a compact view of one pile: its top card index and height.
type PileTop struct {
	Card uint32 `json:"card"`
	Size uint32 `json:"size"`
}

// PlayerSnapshot is the table-visible portion of one seat's layout.
type PlayerSnapshot struct {
	PlayerGameID uint32    `json:"player_game_id"`
	Username     string    `json:"username"`
	PostPiles    []PileTop `json:"post_piles"`
	BlitzPile    *PileTop  `json:"blitz_pile,omitempty"`
	InHandSize   uint32    `json:"in_hand_size"`
	AvailableTop *PileTop  `json:"available_top,omitempty"`
}

// SessionSnapshot is a cheap resync view of a running game: pile tops and
// sizes only, no full card lists.
type SessionSnapshot struct {
	SessionID string           `json:"session_id"`
	Round     uint32           `json:"round"`
	DrawRate  uint32           `json:"draw_rate"`
	Arena     []PileTop        `json:"arena"`
	Players   []PlayerSnapshot `json:"players"`
	Scores    []int32          `json:"scores"`
}
