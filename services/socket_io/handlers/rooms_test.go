package handlers

import (
	"testing"

	"Gamenight/models/game"

	"github.com/stretchr/testify/assert"
)

func TestResyncTarget(t *testing.T) {
	t.Run("Member re-requesting its own room resyncs", func(t *testing.T) {
		member := game.Player{ID: "u1", Username: "alice", CurrentRoom: "room_a"}
		assert.True(t, resyncTarget(member, "room_a"))
	})

	t.Run("Requesting a different room runs the full join flow", func(t *testing.T) {
		member := game.Player{ID: "u1", Username: "alice", CurrentRoom: "room_a"}
		assert.False(t, resyncTarget(member, "room_b"))
	})

	t.Run("Spectator of the room is not a member rejoin", func(t *testing.T) {
		spectator := game.Player{ID: "u1", Username: "alice", CurrentRoom: "room_a", IsSpectator: true}
		assert.False(t, resyncTarget(spectator, "room_a"))
	})

	t.Run("Roomless player always joins", func(t *testing.T) {
		fresh := game.Player{ID: "u1", Username: "alice"}
		assert.False(t, resyncTarget(fresh, "room_a"))
	})
}
