package rooms

import (
	"strings"
	"testing"

	"Gamenight/models/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlayer(id, username string) game.Player {
	return game.Player{ID: id, Username: username, SocketID: "sock_" + id}
}

func TestCreateRoom(t *testing.T) {
	reg := NewRegistry()

	t.Run("Public room has no code", func(t *testing.T) {
		room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 4, false)
		assert.False(t, room.IsPrivate)
		assert.Empty(t, room.Code)
		assert.Equal(t, "u1", room.HostID)
		assert.Equal(t, []string{"u1"}, room.TurnOrder)
		require.Len(t, room.Players, 1)
		assert.Equal(t, "alice", room.Players[0].Username)
	})

	t.Run("Private room gets a six char code", func(t *testing.T) {
		room := reg.Create(testPlayer("u2", "bob"), "Secret", "drawing", 4, true)
		assert.True(t, room.IsPrivate)
		require.Len(t, room.Code, 6)
		for _, ch := range room.Code {
			assert.Contains(t, codeAlphabet, string(ch))
		}
	})

	t.Run("Max players is clamped to the allowed range", func(t *testing.T) {
		low := reg.Create(testPlayer("u3", "carol"), "Low", "chess", 1, false)
		assert.Equal(t, game.MinRoomPlayers, low.MaxPlayers)

		high := reg.Create(testPlayer("u4", "dave"), "High", "chess", 99, false)
		assert.Equal(t, game.MaxRoomPlayers, high.MaxPlayers)
	})
}

func TestJoinRoom(t *testing.T) {
	t.Run("Join succeeds until the room is full", func(t *testing.T) {
		reg := NewRegistry()
		room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 2, false)

		joined, err := reg.Join(room.ID, testPlayer("u2", "bob"))
		require.NoError(t, err)
		assert.Len(t, joined.Players, 2)
		assert.LessOrEqual(t, len(joined.Players), joined.MaxPlayers)

		_, err = reg.Join(room.ID, testPlayer("u3", "carol"))
		assert.Equal(t, ErrRoomFull, err)
	})

	t.Run("Join on a missing room fails", func(t *testing.T) {
		reg := NewRegistry()
		_, err := reg.Join("nope", testPlayer("u1", "alice"))
		assert.Equal(t, ErrRoomNotFound, err)
	})

	t.Run("First two joiners hold the active seats", func(t *testing.T) {
		reg := NewRegistry()
		room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 4, false)
		joined, err := reg.Join(room.ID, testPlayer("u2", "bob"))
		require.NoError(t, err)
		joined, err = reg.Join(room.ID, testPlayer("u3", "carol"))
		require.NoError(t, err)

		assert.Equal(t, []string{"u1", "u2"}, joined.TurnOrder)
		assert.True(t, joined.HasActiveSeat("u1"))
		assert.True(t, joined.HasActiveSeat("u2"))
		assert.False(t, joined.HasActiveSeat("u3"))
	})
}

func TestCanJoin(t *testing.T) {
	reg := NewRegistry()
	room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 2, false)

	t.Run("Open room is joinable", func(t *testing.T) {
		assert.NoError(t, reg.CanJoin(room.ID))
	})

	t.Run("Missing room", func(t *testing.T) {
		assert.Equal(t, ErrRoomNotFound, reg.CanJoin("nope"))
	})

	t.Run("Full room, and the check mutates nothing", func(t *testing.T) {
		_, err := reg.Join(room.ID, testPlayer("u2", "bob"))
		require.NoError(t, err)

		assert.Equal(t, ErrRoomFull, reg.CanJoin(room.ID))
		snap, _ := reg.Get(room.ID)
		assert.Len(t, snap.Players, 2)
	})
}

func TestLeaveRoom(t *testing.T) {
	t.Run("Leaving last member deletes the room", func(t *testing.T) {
		reg := NewRegistry()
		room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 2, false)

		_, deleted, err := reg.Leave(room.ID, "u1")
		require.NoError(t, err)
		assert.True(t, deleted)

		_, exists := reg.Get(room.ID)
		assert.False(t, exists)
	})

	t.Run("Leaving a non-last member keeps the room", func(t *testing.T) {
		reg := NewRegistry()
		room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 4, false)
		_, err := reg.Join(room.ID, testPlayer("u2", "bob"))
		require.NoError(t, err)

		snap, deleted, err := reg.Leave(room.ID, "u1")
		require.NoError(t, err)
		assert.False(t, deleted)
		require.Len(t, snap.Players, 1)
		assert.Equal(t, "u2", snap.Players[0].ID)
	})

	t.Run("A freed active seat passes to the next member", func(t *testing.T) {
		reg := NewRegistry()
		room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 4, false)
		_, err := reg.Join(room.ID, testPlayer("u2", "bob"))
		require.NoError(t, err)
		_, err = reg.Join(room.ID, testPlayer("u3", "carol"))
		require.NoError(t, err)

		snap, _, err := reg.Leave(room.ID, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"u2", "u3"}, snap.TurnOrder)
	})

	t.Run("Leaving a room the player is not in fails", func(t *testing.T) {
		reg := NewRegistry()
		room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 2, false)
		_, _, err := reg.Leave(room.ID, "stranger")
		assert.Equal(t, ErrNotMember, err)
	})
}

func TestFindByCode(t *testing.T) {
	reg := NewRegistry()
	room := reg.Create(testPlayer("u1", "alice"), "Secret", "chess", 2, true)

	t.Run("Lookup is trimmed and case insensitive", func(t *testing.T) {
		found, ok := reg.FindByCode("  " + strings.ToLower(room.Code) + " ")
		require.True(t, ok)
		assert.Equal(t, room.ID, found.ID)
	})

	t.Run("Empty and unknown codes miss", func(t *testing.T) {
		_, ok := reg.FindByCode("   ")
		assert.False(t, ok)
		_, ok = reg.FindByCode("ZZZZZZ")
		assert.False(t, ok)
	})
}

func TestListJoinable(t *testing.T) {
	reg := NewRegistry()
	public := reg.Create(testPlayer("u1", "alice"), "Open", "chess", 2, false)
	reg.Create(testPlayer("u2", "bob"), "Hidden", "chess", 2, true)
	full := reg.Create(testPlayer("u3", "carol"), "Full", "chess", 2, false)
	_, err := reg.Join(full.ID, testPlayer("u4", "dave"))
	require.NoError(t, err)

	joinable := reg.ListJoinable()
	require.Len(t, joinable, 1)
	assert.Equal(t, public.ID, joinable[0].ID)
}

func TestUpdateSettings(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	intPtr := func(n int) *int { return &n }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("Only the host may update", func(t *testing.T) {
		reg := NewRegistry()
		room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 4, false)
		_, err := reg.UpdateSettings(room.ID, "u2", Settings{Name: strPtr("Stolen")})
		assert.Equal(t, ErrNotHost, err)
	})

	t.Run("Fields validate independently", func(t *testing.T) {
		reg := NewRegistry()
		room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 4, false)
		_, err := reg.Join(room.ID, testPlayer("u2", "bob"))
		require.NoError(t, err)
		_, err = reg.Join(room.ID, testPlayer("u3", "carol"))
		require.NoError(t, err)

		// maxPlayers below membership is rejected, name still applies.
		snap, err := reg.UpdateSettings(room.ID, "u1", Settings{
			Name:       strPtr("Renamed"),
			MaxPlayers: intPtr(2),
		})
		assert.Equal(t, ErrMaxBelowMembers, err)
		assert.Equal(t, "Renamed", snap.Name)
		assert.Equal(t, 4, snap.MaxPlayers)
	})

	t.Run("Privacy toggle allocates and clears the code", func(t *testing.T) {
		reg := NewRegistry()
		room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 4, false)

		snap, err := reg.UpdateSettings(room.ID, "u1", Settings{IsPrivate: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, snap.IsPrivate)
		assert.Len(t, snap.Code, 6)

		snap, err = reg.UpdateSettings(room.ID, "u1", Settings{IsPrivate: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, snap.IsPrivate)
		assert.Empty(t, snap.Code)
	})

	t.Run("Blank name is ignored", func(t *testing.T) {
		reg := NewRegistry()
		room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 4, false)
		snap, err := reg.UpdateSettings(room.ID, "u1", Settings{Name: strPtr("   ")})
		require.NoError(t, err)
		assert.Equal(t, "Game1", snap.Name)
	})
}

func TestChatHistoryBound(t *testing.T) {
	reg := NewRegistry()
	room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 2, false)

	for i := 0; i < game.ChatHistoryLimit+10; i++ {
		err := reg.AppendChat(room.ID, game.ChatMessage{ID: "m", Username: "alice", Message: "hi"})
		require.NoError(t, err)
	}
	snap, _ := reg.Get(room.ID)
	assert.Len(t, snap.ChatHistory, game.ChatHistoryLimit)
}

func TestGameState(t *testing.T) {
	reg := NewRegistry()
	room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 2, false)

	_, has := reg.GameState(room.ID)
	assert.False(t, has)

	require.NoError(t, reg.SetGameState(room.ID, map[string]interface{}{"fen": "X"}))
	state, has := reg.GameState(room.ID)
	require.True(t, has)
	assert.Equal(t, map[string]interface{}{"fen": "X"}, state)

	next, stored, err := reg.UpdateGameState(room.ID, func(prev interface{}, snap game.Room) (interface{}, bool) {
		assert.Equal(t, map[string]interface{}{"fen": "X"}, prev)
		assert.Equal(t, room.ID, snap.ID)
		return map[string]interface{}{"fen": "Y"}, true
	})
	require.NoError(t, err)
	assert.True(t, stored)
	assert.Equal(t, map[string]interface{}{"fen": "Y"}, next)
}

func TestSpectators(t *testing.T) {
	reg := NewRegistry()
	room := reg.Create(testPlayer("u1", "alice"), "Game1", "chess", 2, false)

	snap, err := reg.AddSpectator(room.ID, "u9", "watcher")
	require.NoError(t, err)
	assert.Len(t, snap.Spectators, 1)

	// Idempotent add
	snap, err = reg.AddSpectator(room.ID, "u9", "watcher")
	require.NoError(t, err)
	assert.Len(t, snap.Spectators, 1)

	snap, err = reg.RemoveSpectator(room.ID, "u9")
	require.NoError(t, err)
	assert.Empty(t, snap.Spectators)
}
