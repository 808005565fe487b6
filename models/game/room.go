package game

import "time"

const (
	MinRoomPlayers = 2
	MaxRoomPlayers = 12

	// ChatHistoryLimit bounds the per-room chat log.
	ChatHistoryLimit = 50
)

// Room is a scoped multiplayer session instance for one game type. All room
// state lives in process memory and is lost on restart.
type Room struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Game    string `json:"game"`
	Host    string `json:"host"`
	HostID  string `json:"hostId"`
	Players []RoomPlayer `json:"players"`

	// TurnOrder holds the user ids occupying the active seats (the turn
	// seats for two-active-player games). Filled on join up to two seats,
	// compacted on leave.
	TurnOrder []string `json:"turnOrder"`

	MaxPlayers int    `json:"maxPlayers"`
	IsPrivate  bool   `json:"isPrivate"`
	Code       string `json:"code,omitempty"`

	// GameState is the free-form payload of the running game. Its shape
	// depends on Game and is opaque to the coordinator except for the
	// fields it validates.
	GameState interface{} `json:"gameState"`

	ChatHistory []ChatMessage `json:"chatHistory,omitempty"`
	Spectators  []Spectator   `json:"spectators,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Spectator is a watching, non-member participant of a room.
type Spectator struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ChatMessage is one entry of a room's bounded chat history.
type ChatMessage struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// IsMember reports whether the given user id is an active member.
func (r *Room) IsMember(userID string) bool {
	for _, p := range r.Players {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// HasActiveSeat reports whether the given user id holds one of the turn
// seats granted to the first two joiners.
func (r *Room) HasActiveSeat(userID string) bool {
	for _, id := range r.TurnOrder {
		if id == userID {
			return true
		}
	}
	return false
}
