package handlers

import (
	"log"

	"Gamenight/models/game"
	"Gamenight/services/connections"
	"Gamenight/services/rooms"
	socketio_types "Gamenight/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleSpectateJoin is the top-level spectate-join event; the same flow is
// reachable as a game-action type variant.
func HandleSpectateJoin(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		payload, ok := args[0].(map[string]interface{})
		if !ok {
			return
		}
		player, ok := conns.Lookup(string(client.Id()))
		if !ok {
			return
		}
		spectateJoin(client, sio, conns, roomsReg, player, payload)
	}
}

// HandleSpectateLeave is the top-level spectate-leave event.
func HandleSpectateLeave(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		player, ok := conns.Lookup(string(client.Id()))
		if !ok {
			return
		}
		spectateLeave(client, sio, conns, roomsReg, player)
	}
}

// spectateJoin moves an authenticated non-member into the spectator list of
// a target room, switching rooms if the player already spectates elsewhere,
// and replays the chat history to the new spectator.
func spectateJoin(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry, player game.Player, payload map[string]interface{}) {
	roomID, ok := payload["roomId"].(string)
	if !ok {
		return
	}
	target, exists := roomsReg.Get(roomID)
	if !exists {
		return
	}

	// Active room members may not spectate.
	if player.CurrentRoom != "" && !player.IsSpectator {
		return
	}

	// Already spectating this room: just resynchronize.
	if player.CurrentRoom == roomID && player.IsSpectator {
		client.Emit("spectate-joined", gin.H{
			"roomId":     target.ID,
			"game":       target.Game,
			"spectators": target.Spectators,
		})
		if len(target.ChatHistory) > 0 {
			client.Emit("chat-history", target.ChatHistory)
		}
		return
	}

	// Switching spectated rooms: drop out of the previous one first.
	if player.CurrentRoom != "" && player.IsSpectator {
		prevID := player.CurrentRoom
		if prev, err := roomsReg.RemoveSpectator(prevID, player.ID); err == nil {
			sio.Sio_server.To(socket.Room(prevID)).Emit("spectators-update", prev.Spectators)
		}
		client.Leave(socket.Room(prevID))
	}

	conns.SetCurrentRoom(string(client.Id()), roomID, true)
	client.Join(socket.Room(roomID))

	target, err := roomsReg.AddSpectator(roomID, player.ID, player.Username)
	if err != nil {
		return
	}

	log.Printf("[SPECTATE] Player %s spectating room %s", player.Username, roomID)
	client.Emit("spectate-joined", gin.H{
		"roomId":     target.ID,
		"game":       target.Game,
		"spectators": target.Spectators,
	})
	if len(target.ChatHistory) > 0 {
		client.Emit("chat-history", target.ChatHistory)
	}
	sio.Sio_server.To(socket.Room(roomID)).Emit("spectators-update", target.Spectators)
}

// spectateLeave removes the player from the spectator list of the room they
// are watching.
func spectateLeave(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry, player game.Player) {
	if player.CurrentRoom == "" || !player.IsSpectator {
		return
	}
	roomID := player.CurrentRoom
	if room, err := roomsReg.RemoveSpectator(roomID, player.ID); err == nil {
		sio.Sio_server.To(socket.Room(roomID)).Emit("spectators-update", room.Spectators)
	}
	client.Leave(socket.Room(roomID))
	client.Emit("spectate-left")
	conns.SetCurrentRoom(string(client.Id()), "", false)
}
