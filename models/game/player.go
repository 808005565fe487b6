package game

// Player is the ephemeral identity bound to one live socket connection.
// It is created when the client authenticates and destroyed on disconnect.
type Player struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	SocketID    string `json:"socketId"`
	CurrentRoom string `json:"currentRoom,omitempty"`
	IsSpectator bool   `json:"isSpectator,omitempty"`

	// Active analytics session, if the player started one. Not serialized
	// towards clients.
	AnalyticsSession *AnalyticsSession `json:"-"`
}

// RoomPlayer is the membership entry stored inside a Room.
type RoomPlayer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	SocketID string `json:"socketId"`
}
