package connections

import (
	"testing"
	"time"

	"Gamenight/models/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateAndLookup(t *testing.T) {
	reg := NewRegistry()

	t.Run("Lookup misses before authenticate", func(t *testing.T) {
		_, ok := reg.Lookup("sock1")
		assert.False(t, ok)
	})

	t.Run("Authenticate binds the connection", func(t *testing.T) {
		p := reg.Authenticate("sock1", "u1", "alice")
		assert.Equal(t, "u1", p.ID)
		assert.Equal(t, "alice", p.Username)
		assert.Equal(t, "sock1", p.SocketID)

		found, ok := reg.Lookup("sock1")
		require.True(t, ok)
		assert.Equal(t, p, found)
	})

	t.Run("Re-authenticate overwrites the binding", func(t *testing.T) {
		reg.SetCurrentRoom("sock1", "room_x", false)
		reg.Authenticate("sock1", "u2", "bob")
		found, ok := reg.Lookup("sock1")
		require.True(t, ok)
		assert.Equal(t, "u2", found.ID)
		assert.Empty(t, found.CurrentRoom)
	})
}

func TestForget(t *testing.T) {
	reg := NewRegistry()
	reg.Authenticate("sock1", "u1", "alice")
	reg.Forget("sock1")

	_, ok := reg.Lookup("sock1")
	assert.False(t, ok)

	// The rate-limit slot is dropped too, so a fresh connection under the
	// same socket id starts clean.
	assert.True(t, reg.AllowChat("sock1"))
}

func TestSetCurrentRoom(t *testing.T) {
	reg := NewRegistry()
	reg.Authenticate("sock1", "u1", "alice")

	reg.SetCurrentRoom("sock1", "room_x", true)
	p, ok := reg.Lookup("sock1")
	require.True(t, ok)
	assert.Equal(t, "room_x", p.CurrentRoom)
	assert.True(t, p.IsSpectator)

	reg.SetCurrentRoom("sock1", "", false)
	p, _ = reg.Lookup("sock1")
	assert.Empty(t, p.CurrentRoom)
	assert.False(t, p.IsSpectator)

	// Unknown socket is a no-op.
	reg.SetCurrentRoom("ghost", "room_x", false)
	_, ok = reg.Lookup("ghost")
	assert.False(t, ok)
}

func TestAnalyticsSession(t *testing.T) {
	reg := NewRegistry()
	reg.Authenticate("sock1", "u1", "alice")

	_, ok := reg.TakeAnalyticsSession("sock1")
	assert.False(t, ok)

	session := &game.AnalyticsSession{UserID: "u1", Username: "alice", Game: "chess", RoomID: "room_x"}
	reg.SetAnalyticsSession("sock1", session)

	taken, ok := reg.TakeAnalyticsSession("sock1")
	require.True(t, ok)
	assert.Equal(t, session, taken)

	// Take is one-shot.
	_, ok = reg.TakeAnalyticsSession("sock1")
	assert.False(t, ok)
}

func TestAllowChat(t *testing.T) {
	reg := NewRegistry()
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	reg.SetClock(func() time.Time { return current })

	assert.True(t, reg.AllowChat("sock1"))

	current = current.Add(ChatInterval / 2)
	assert.False(t, reg.AllowChat("sock1"))

	// A blocked attempt does not push the window forward.
	current = current.Add(ChatInterval / 2)
	assert.True(t, reg.AllowChat("sock1"))

	// Limits are per connection.
	assert.True(t, reg.AllowChat("sock2"))
}
