package points

import (
	"sort"
	"strings"
	"sync"

	"Gamenight/models/game"
)

type entry struct {
	userID   string
	username string
	points   int
	order    int
}

// Store tracks cumulative points per user, partitioned by global, per-game
// and per-region scopes. Totals only ever move by signed deltas and are
// never reset. Insertion order is remembered so leaderboard ties stay
// stable across recomputations.
type Store struct {
	mutex    sync.RWMutex
	global   map[string]*entry
	byGame   map[string]map[string]*entry
	byRegion map[string]map[string]*entry
	seq      int
}

func NewStore() *Store {
	return &Store{
		global:   make(map[string]*entry),
		byGame:   make(map[string]map[string]*entry),
		byRegion: make(map[string]map[string]*entry),
	}
}

// NormalizeRegion canonicalizes a region key (trimmed, uppercased).
func NormalizeRegion(region string) string {
	return strings.ToUpper(strings.TrimSpace(region))
}

func (s *Store) upsert(scope map[string]*entry, award game.PointsAward) {
	e, ok := scope[award.UserID]
	if !ok {
		s.seq++
		e = &entry{userID: award.UserID, order: s.seq}
		scope[award.UserID] = e
	}
	e.username = award.Username
	e.points += award.Delta
}

// Award applies a delta to the global scope, plus the per-game scope if a
// game is named and the per-region scope if a region is named. A region
// that is empty after normalization is skipped.
func (s *Store) Award(award game.PointsAward) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.upsert(s.global, award)

	if award.Game != "" {
		perGame, ok := s.byGame[award.Game]
		if !ok {
			perGame = make(map[string]*entry)
			s.byGame[award.Game] = perGame
		}
		s.upsert(perGame, award)
	}

	if key := NormalizeRegion(award.Region); key != "" {
		perRegion, ok := s.byRegion[key]
		if !ok {
			perRegion = make(map[string]*entry)
			s.byRegion[key] = perRegion
		}
		s.upsert(perRegion, award)
	}
}

func rows(scope map[string]*entry) []game.LeaderboardRow {
	entries := make([]*entry, 0, len(scope))
	for _, e := range scope {
		entries = append(entries, e)
	}
	// Descending by points; ties keep insertion order.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].points != entries[j].points {
			return entries[i].points > entries[j].points
		}
		return entries[i].order < entries[j].order
	})
	out := make([]game.LeaderboardRow, len(entries))
	for i, e := range entries {
		out[i] = game.LeaderboardRow{UserID: e.userID, Username: e.username, Points: e.points}
	}
	return out
}

// Global returns the sorted global leaderboard.
func (s *Store) Global() []game.LeaderboardRow {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return rows(s.global)
}

// ForGame returns the sorted leaderboard of one game.
func (s *Store) ForGame(gameType string) []game.LeaderboardRow {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return rows(s.byGame[gameType])
}

// ForRegion returns the sorted leaderboard of one region.
func (s *Store) ForRegion(region string) []game.LeaderboardRow {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return rows(s.byRegion[NormalizeRegion(region)])
}

// FriendsFiltered intersects the global rows with a caller-supplied id set.
// The friends scope is computed query-side, never stored.
func (s *Store) FriendsFiltered(friendIDs []string) []game.LeaderboardRow {
	allowed := make(map[string]struct{}, len(friendIDs))
	for _, id := range friendIDs {
		allowed[id] = struct{}{}
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	filtered := make(map[string]*entry)
	for id, e := range s.global {
		if _, ok := allowed[id]; ok {
			filtered[id] = e
		}
	}
	return rows(filtered)
}
