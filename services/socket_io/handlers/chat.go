package handlers

import (
	"Gamenight/models/game"
	"Gamenight/services/actions"
	"Gamenight/services/connections"
	"Gamenight/services/rooms"
	socketio_types "Gamenight/services/socket_io/types"

	"github.com/google/uuid"
	"github.com/zishang520/socket.io/v2/socket"
)

// handleChatMessage validates, rate-limits and stores a room chat message,
// then broadcasts it to the room.
func handleChatMessage(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry, player game.Player, roomID, raw string) {
	message, ok := actions.SanitizeChatMessage(raw)
	if !ok {
		return
	}
	if !conns.AllowChat(string(client.Id())) {
		return
	}

	msg := game.ChatMessage{
		ID:        uuid.NewString(),
		Username:  player.Username,
		Message:   message,
		Timestamp: nowMillis(),
	}
	if roomsReg.AppendChat(roomID, msg) != nil {
		return
	}
	sio.Sio_server.To(socket.Room(roomID)).Emit("chat-message", msg)
}
