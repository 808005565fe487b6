package connections

import (
	"sync"
	"time"

	"Gamenight/models/game"
)

// ChatInterval is the minimum spacing between chat messages per connection.
const ChatInterval = 800 * time.Millisecond

// Registry maps transient socket ids to authenticated players. It also owns
// the per-connection chat rate-limit timestamps so that disconnect cleanup
// clears everything a connection left behind in one place. Entirely rebuilt
// from zero on process restart.
type Registry struct {
	mutex      sync.RWMutex
	players    map[string]*game.Player
	lastChatAt map[string]time.Time
	now        func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		players:    make(map[string]*game.Player),
		lastChatAt: make(map[string]time.Time),
		now:        time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (r *Registry) SetClock(now func() time.Time) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.now = now
}

// Authenticate creates (or overwrites) the player bound to a connection.
func (r *Registry) Authenticate(socketID, userID, username string) game.Player {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	p := &game.Player{
		ID:       userID,
		Username: username,
		SocketID: socketID,
	}
	r.players[socketID] = p
	return *p
}

// Lookup returns a snapshot of the player bound to a connection.
func (r *Registry) Lookup(socketID string) (game.Player, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	p, ok := r.players[socketID]
	if !ok {
		return game.Player{}, false
	}
	return *p, true
}

// Forget drops the player and the rate-limit timestamp for a connection.
// Room-leave and spectator cleanup are cascaded by the disconnect handler
// before this is called.
func (r *Registry) Forget(socketID string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.players, socketID)
	delete(r.lastChatAt, socketID)
}

// SetCurrentRoom updates the room pointer and spectator flag of a player.
func (r *Registry) SetCurrentRoom(socketID, roomID string, spectator bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if p, ok := r.players[socketID]; ok {
		p.CurrentRoom = roomID
		p.IsSpectator = spectator
	}
}

// SetAnalyticsSession attaches an active analytics session to the player.
func (r *Registry) SetAnalyticsSession(socketID string, s *game.AnalyticsSession) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if p, ok := r.players[socketID]; ok {
		p.AnalyticsSession = s
	}
}

// TakeAnalyticsSession detaches and returns the active analytics session.
func (r *Registry) TakeAnalyticsSession(socketID string) (*game.AnalyticsSession, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	p, ok := r.players[socketID]
	if !ok || p.AnalyticsSession == nil {
		return nil, false
	}
	s := p.AnalyticsSession
	p.AnalyticsSession = nil
	return s, true
}

// AllowChat applies the per-connection chat rate limit. It records the
// attempt timestamp only when the message is allowed through.
func (r *Registry) AllowChat(socketID string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	t := r.now()
	if last, ok := r.lastChatAt[socketID]; ok && t.Sub(last) < ChatInterval {
		return false
	}
	r.lastChatAt[socketID] = t
	return true
}
