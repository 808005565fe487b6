package social

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"Gamenight/models/game"

	"github.com/google/uuid"
)

// RecentTTL is the window within which a co-player counts as recent. It is
// the sole gate for sending friend requests.
const RecentTTL = 24 * time.Hour

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSelfRequest     = errors.New("cannot add yourself")
	ErrNotRecent       = errors.New("you can only add players you recently played with (24h)")
	ErrAlreadyFriends  = errors.New("already friends")
	ErrRequestPending  = errors.New("friend request already pending")
	ErrRequestNotFound = errors.New("request not found")
	ErrNotAllowed      = errors.New("not allowed")
)

// Store holds the in-memory social graph: users, symmetric friendships,
// friend requests and recent-co-player tracking with lazy 24h expiry.
type Store struct {
	mutex sync.RWMutex

	usersByID        map[string]game.BasicUser
	userIDByUsername map[string]string
	friendsByUserID  map[string]map[string]struct{}
	requests         map[string]*game.FriendRequest

	// userID -> (otherUserID -> entry)
	recentByUserID map[string]map[string]game.RecentPlayer

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		usersByID:        make(map[string]game.BasicUser),
		userIDByUsername: make(map[string]string),
		friendsByUserID:  make(map[string]map[string]struct{}),
		requests:         make(map[string]*game.FriendRequest),
		recentByUserID:   make(map[string]map[string]game.RecentPlayer),
		now:              time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.now = now
}

func normalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

// UpsertUser registers (or refreshes) an identity in the user table, keyed
// by id and by normalized username for reverse lookup. Idempotent.
func (s *Store) UpsertUser(id, username string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.usersByID[id] = game.BasicUser{ID: id, Username: username}
	s.userIDByUsername[normalizeUsername(username)] = id
}

func (s *Store) friendsSet(userID string) map[string]struct{} {
	set, ok := s.friendsByUserID[userID]
	if !ok {
		set = make(map[string]struct{})
		s.friendsByUserID[userID] = set
	}
	return set
}

// TouchRecent marks two users as having just played together. Symmetric:
// both users' maps receive an entry with an identical timestamp.
func (s *Store) TouchRecent(aID, bID, gameType string) {
	if aID == bID {
		return
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()

	a, okA := s.usersByID[aID]
	b, okB := s.usersByID[bID]
	if !okA || !okB {
		return
	}
	ts := s.now().UnixMilli()

	mapA, ok := s.recentByUserID[a.ID]
	if !ok {
		mapA = make(map[string]game.RecentPlayer)
		s.recentByUserID[a.ID] = mapA
	}
	mapA[b.ID] = game.RecentPlayer{UserID: b.ID, Username: b.Username, Game: gameType, LastSeenAt: ts}

	mapB, ok := s.recentByUserID[b.ID]
	if !ok {
		mapB = make(map[string]game.RecentPlayer)
		s.recentByUserID[b.ID] = mapB
	}
	mapB[a.ID] = game.RecentPlayer{UserID: a.ID, Username: a.Username, Game: gameType, LastSeenAt: ts}
}

// pruneRecentLocked drops entries older than RecentTTL. Caller holds the lock.
func (s *Store) pruneRecentLocked(userID string) {
	entries, ok := s.recentByUserID[userID]
	if !ok {
		return
	}
	cutoff := s.now().Add(-RecentTTL).UnixMilli()
	for otherID, rec := range entries {
		if rec.LastSeenAt < cutoff {
			delete(entries, otherID)
		}
	}
}

// ListRecent returns the recent co-players of a user, newest first. Expired
// entries are pruned as a side effect of being read.
func (s *Store) ListRecent(userID string) []game.RecentPlayer {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.listRecentLocked(userID)
}

func (s *Store) listRecentLocked(userID string) []game.RecentPlayer {
	s.pruneRecentLocked(userID)
	out := []game.RecentPlayer{}
	for _, rec := range s.recentByUserID[userID] {
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastSeenAt > out[j].LastSeenAt })
	return out
}

// ListFriends returns a user's friends sorted by username.
func (s *Store) ListFriends(userID string) []game.BasicUser {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.listFriendsLocked(userID)
}

func (s *Store) listFriendsLocked(userID string) []game.BasicUser {
	out := []game.BasicUser{}
	for friendID := range s.friendsByUserID[userID] {
		if u, ok := s.usersByID[friendID]; ok {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// ListRequests returns a user's pending requests split by direction,
// newest first.
func (s *Store) ListRequests(userID string) game.RequestBundle {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.listRequestsLocked(userID)
}

func (s *Store) listRequestsLocked(userID string) game.RequestBundle {
	bundle := game.RequestBundle{Incoming: []game.FriendRequest{}, Outgoing: []game.FriendRequest{}}
	for _, req := range s.requests {
		if req.Status != game.RequestPending {
			continue
		}
		if req.ToID == userID {
			bundle.Incoming = append(bundle.Incoming, *req)
		}
		if req.FromID == userID {
			bundle.Outgoing = append(bundle.Outgoing, *req)
		}
	}
	sort.SliceStable(bundle.Incoming, func(i, j int) bool { return bundle.Incoming[i].CreatedAt > bundle.Incoming[j].CreatedAt })
	sort.SliceStable(bundle.Outgoing, func(i, j int) bool { return bundle.Outgoing[i].CreatedAt > bundle.Outgoing[j].CreatedAt })
	return bundle
}

// StateBundle builds the full social snapshot for one user.
func (s *Store) StateBundle(userID string) game.FriendsState {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return game.FriendsState{
		Friends:  s.listFriendsLocked(userID),
		Requests: s.listRequestsLocked(userID),
		Recent:   s.listRecentLocked(userID),
	}
}

// SendRequest creates a pending friend request from one user towards a
// username. The target must be a known user, not the sender, a recent
// co-player within the TTL window, not already a friend, and there must be
// no pending request between the pair in either direction.
func (s *Store) SendRequest(fromID, toUsername string) (game.FriendRequest, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	from, ok := s.usersByID[fromID]
	if !ok {
		return game.FriendRequest{}, ErrUserNotFound
	}
	toID, ok := s.userIDByUsername[normalizeUsername(toUsername)]
	if !ok {
		return game.FriendRequest{}, ErrUserNotFound
	}
	if toID == from.ID {
		return game.FriendRequest{}, ErrSelfRequest
	}

	s.pruneRecentLocked(from.ID)
	if _, recent := s.recentByUserID[from.ID][toID]; !recent {
		return game.FriendRequest{}, ErrNotRecent
	}

	if _, friends := s.friendsSet(from.ID)[toID]; friends {
		return game.FriendRequest{}, ErrAlreadyFriends
	}

	for _, req := range s.requests {
		if req.Status != game.RequestPending {
			continue
		}
		samePair := (req.FromID == from.ID && req.ToID == toID) || (req.FromID == toID && req.ToID == from.ID)
		if samePair {
			return game.FriendRequest{}, ErrRequestPending
		}
	}

	to, ok := s.usersByID[toID]
	if !ok {
		return game.FriendRequest{}, ErrUserNotFound
	}

	req := &game.FriendRequest{
		ID:           "fr_" + uuid.NewString(),
		FromID:       from.ID,
		FromUsername: from.Username,
		ToID:         to.ID,
		ToUsername:   to.Username,
		CreatedAt:    s.now().UnixMilli(),
		Status:       game.RequestPending,
	}
	s.requests[req.ID] = req
	return *req, nil
}

// Respond resolves a pending request. Only the addressed user may respond.
// Accepting adds both directions of the friendship; either outcome marks
// the request terminal.
func (s *Store) Respond(responderID, requestID string, accept bool) (game.FriendRequest, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	req, ok := s.requests[requestID]
	if !ok || req.Status != game.RequestPending {
		return game.FriendRequest{}, ErrRequestNotFound
	}
	if req.ToID != responderID {
		return game.FriendRequest{}, ErrNotAllowed
	}

	if accept {
		req.Status = game.RequestAccepted
		s.friendsSet(req.FromID)[req.ToID] = struct{}{}
		s.friendsSet(req.ToID)[req.FromID] = struct{}{}
	} else {
		req.Status = game.RequestDeclined
	}
	return *req, nil
}

// AreFriends reports whether two users are friends.
func (s *Store) AreFriends(aID, bID string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	_, ok := s.friendsByUserID[aID][bID]
	return ok
}
