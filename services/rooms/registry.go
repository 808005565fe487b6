package rooms

import (
	"errors"
	"strings"
	"sync"
	"time"

	"Gamenight/models/game"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is full")
	ErrNotHost         = errors.New("only host can change settings")
	ErrNotMember       = errors.New("player is not in the room")
	ErrMaxBelowMembers = errors.New("max players cannot be less than current players")
)

const activeSeats = 2

// Registry owns every live room. All room mutation goes through its mutex,
// so message handling within one room is serialized even though socket
// handlers run on independent goroutines. Every operation returns value
// snapshots so callers never touch shared state outside the lock.
type Registry struct {
	mutex sync.RWMutex
	rooms map[string]*game.Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*game.Room)}
}

// Settings is a partial settings update; nil fields are left untouched.
type Settings struct {
	Name       *string
	MaxPlayers *int
	IsPrivate  *bool
}

func snapshot(r *game.Room) game.Room {
	out := *r
	out.Players = append([]game.RoomPlayer(nil), r.Players...)
	out.TurnOrder = append([]string(nil), r.TurnOrder...)
	out.ChatHistory = append([]game.ChatMessage(nil), r.ChatHistory...)
	out.Spectators = append([]game.Spectator(nil), r.Spectators...)
	return out
}

// Create builds a new room with the creating player as sole member and
// first active seat. A join code is allocated iff the room is private.
func (reg *Registry) Create(host game.Player, name, gameType string, maxPlayers int, isPrivate bool) game.Room {
	reg.mutex.Lock()
	defer reg.mutex.Unlock()

	if maxPlayers < game.MinRoomPlayers {
		maxPlayers = game.MinRoomPlayers
	}
	if maxPlayers > game.MaxRoomPlayers {
		maxPlayers = game.MaxRoomPlayers
	}

	room := &game.Room{
		ID:         "room_" + uuid.NewString(),
		Name:       name,
		Game:       gameType,
		Host:       host.Username,
		HostID:     host.ID,
		Players:    []game.RoomPlayer{{ID: host.ID, Username: host.Username, SocketID: host.SocketID}},
		TurnOrder:  []string{host.ID},
		MaxPlayers: maxPlayers,
		IsPrivate:  isPrivate,
		CreatedAt:  time.Now(),
	}
	if isPrivate {
		room.Code = generateRoomCode()
	}
	reg.rooms[room.ID] = room
	return snapshot(room)
}

// Get returns a snapshot of the room with the given id.
func (reg *Registry) Get(roomID string) (game.Room, bool) {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	room, ok := reg.rooms[roomID]
	if !ok {
		return game.Room{}, false
	}
	return snapshot(room), true
}

// FindByCode resolves a private room by join code (trimmed, case
// insensitive, exact match).
func (reg *Registry) FindByCode(code string) (game.Room, bool) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return game.Room{}, false
	}
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	for _, room := range reg.rooms {
		if room.Code == normalized {
			return snapshot(room), true
		}
	}
	return game.Room{}, false
}

// ListJoinable returns the rooms that are public and have spare capacity.
// This is the payload broadcast to every client whenever room state changes.
func (reg *Registry) ListJoinable() []game.Room {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	out := []game.Room{}
	for _, room := range reg.rooms {
		if !room.IsPrivate && len(room.Players) < room.MaxPlayers {
			out = append(out, snapshot(room))
		}
	}
	return out
}

// CanJoin reports whether a room exists and has spare capacity, without
// mutating anything. Callers validate the join target with this before
// tearing down the player's existing membership.
func (reg *Registry) CanJoin(roomID string) error {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	room, ok := reg.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	if len(room.Players) >= room.MaxPlayers {
		return ErrRoomFull
	}
	return nil
}

// Join adds a player to a room. The caller is responsible for removing the
// player from any previous room first.
func (reg *Registry) Join(roomID string, p game.Player) (game.Room, error) {
	reg.mutex.Lock()
	defer reg.mutex.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return game.Room{}, ErrRoomNotFound
	}
	if len(room.Players) >= room.MaxPlayers {
		return game.Room{}, ErrRoomFull
	}

	room.Players = append(room.Players, game.RoomPlayer{ID: p.ID, Username: p.Username, SocketID: p.SocketID})
	if len(room.TurnOrder) < activeSeats {
		room.TurnOrder = append(room.TurnOrder, p.ID)
	}
	return snapshot(room), nil
}

// Leave removes a player from a room. The second return value reports
// whether the room became empty and was deleted. A freed active seat is
// handed to the earliest member without one.
func (reg *Registry) Leave(roomID, userID string) (game.Room, bool, error) {
	reg.mutex.Lock()
	defer reg.mutex.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return game.Room{}, false, ErrRoomNotFound
	}

	found := false
	players := room.Players[:0]
	for _, p := range room.Players {
		if p.ID == userID {
			found = true
			continue
		}
		players = append(players, p)
	}
	if !found {
		return game.Room{}, false, ErrNotMember
	}
	room.Players = players

	turn := room.TurnOrder[:0]
	for _, id := range room.TurnOrder {
		if id != userID {
			turn = append(turn, id)
		}
	}
	room.TurnOrder = turn
	for _, p := range room.Players {
		if len(room.TurnOrder) >= activeSeats {
			break
		}
		if !containsID(room.TurnOrder, p.ID) {
			room.TurnOrder = append(room.TurnOrder, p.ID)
		}
	}

	if len(room.Players) == 0 {
		delete(reg.rooms, roomID)
		return snapshot(room), true, nil
	}
	return snapshot(room), false, nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// UpdateSettings applies a host-only partial settings update. Each field is
// validated independently: an invalid maxPlayers (below current membership)
// is rejected while name and privacy changes from the same request still
// apply. The returned error is ErrMaxBelowMembers in that case, with the
// snapshot reflecting whatever did apply.
func (reg *Registry) UpdateSettings(roomID, actorID string, s Settings) (game.Room, error) {
	reg.mutex.Lock()
	defer reg.mutex.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return game.Room{}, ErrRoomNotFound
	}
	if room.HostID != actorID {
		return game.Room{}, ErrNotHost
	}

	var fieldErr error

	if s.Name != nil {
		if trimmed := strings.TrimSpace(*s.Name); trimmed != "" {
			room.Name = trimmed
		}
	}

	if s.MaxPlayers != nil {
		next := *s.MaxPlayers
		if next < game.MinRoomPlayers {
			next = game.MinRoomPlayers
		}
		if next > game.MaxRoomPlayers {
			next = game.MaxRoomPlayers
		}
		if next < len(room.Players) {
			fieldErr = ErrMaxBelowMembers
		} else {
			room.MaxPlayers = next
		}
	}

	if s.IsPrivate != nil {
		room.IsPrivate = *s.IsPrivate
		if room.IsPrivate && room.Code == "" {
			room.Code = generateRoomCode()
		}
		if !room.IsPrivate {
			room.Code = ""
		}
	}

	return snapshot(room), fieldErr
}

// AppendChat appends to the bounded chat history of a room.
func (reg *Registry) AppendChat(roomID string, msg game.ChatMessage) error {
	reg.mutex.Lock()
	defer reg.mutex.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	room.ChatHistory = append(room.ChatHistory, msg)
	if len(room.ChatHistory) > game.ChatHistoryLimit {
		room.ChatHistory = room.ChatHistory[len(room.ChatHistory)-game.ChatHistoryLimit:]
	}
	return nil
}

// GameState returns the stored game state of a room.
func (reg *Registry) GameState(roomID string) (interface{}, bool) {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	room, ok := reg.rooms[roomID]
	if !ok {
		return nil, false
	}
	return room.GameState, room.GameState != nil
}

// SetGameState stores a new game state for a room.
func (reg *Registry) SetGameState(roomID string, state interface{}) error {
	reg.mutex.Lock()
	defer reg.mutex.Unlock()
	room, ok := reg.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	room.GameState = state
	return nil
}

// UpdateGameState runs fn on the current game state under the registry
// lock, so validations that depend on the previous state (drawer identity,
// turn index, guess upserts) are atomic with the store. fn returns the next
// state and whether to store it; the room snapshot at the time of the
// decision is passed so authority checks see a consistent membership view.
func (reg *Registry) UpdateGameState(roomID string, fn func(prev interface{}, room game.Room) (interface{}, bool)) (interface{}, bool, error) {
	reg.mutex.Lock()
	defer reg.mutex.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return nil, false, ErrRoomNotFound
	}
	next, store := fn(room.GameState, snapshot(room))
	if store {
		room.GameState = next
	}
	return next, store, nil
}

// AddSpectator adds a spectator to a room, idempotently.
func (reg *Registry) AddSpectator(roomID, userID, username string) (game.Room, error) {
	reg.mutex.Lock()
	defer reg.mutex.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return game.Room{}, ErrRoomNotFound
	}
	for _, s := range room.Spectators {
		if s.ID == userID {
			return snapshot(room), nil
		}
	}
	room.Spectators = append(room.Spectators, game.Spectator{ID: userID, Username: username})
	return snapshot(room), nil
}

// RemoveSpectator removes a spectator from a room.
func (reg *Registry) RemoveSpectator(roomID, userID string) (game.Room, error) {
	reg.mutex.Lock()
	defer reg.mutex.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return game.Room{}, ErrRoomNotFound
	}
	specs := room.Spectators[:0]
	for _, s := range room.Spectators {
		if s.ID != userID {
			specs = append(specs, s)
		}
	}
	room.Spectators = specs
	return snapshot(room), nil
}

