package handlers

import (
	"log"

	"Gamenight/models/postgres"
	"Gamenight/services/connections"
	"Gamenight/services/rooms"
	"Gamenight/services/social"
	socketio_types "Gamenight/services/socket_io/types"
	socketio_utils "Gamenight/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleAuthenticate binds an identity to the connection. Identity comes
// from the event payload ({id, username} guest auth); a valid JWT in the
// handshake auth data takes precedence when present. On success the client
// receives the joinable room list and its initial friends-state bundle.
func HandleAuthenticate(client *socket.Socket, db *gorm.DB, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry, socialStore *social.Store) func(args ...interface{}) {
	return func(args ...interface{}) {
		socketID := string(client.Id())

		userID, username := "", ""
		if ok, jwtID, jwtName := socketio_utils.VerifyUserConnection(client, db); ok {
			userID, username = jwtID, jwtName
		} else if len(args) >= 1 {
			if data, ok := args[0].(map[string]interface{}); ok {
				userID, _ = data["id"].(string)
				username, _ = data["username"].(string)
			}
		}
		if userID == "" || username == "" {
			log.Printf("[AUTH-ERROR] Missing identity for socket %s", socketID)
			client.Emit("error", gin.H{"error": "Authentication failed: missing id or username"})
			return
		}

		conns.Authenticate(socketID, userID, username)
		sio.AddConnection(userID, client)
		socialStore.UpsertUser(userID, username)

		// Best-effort upsert of the persistent user record; the in-memory
		// coordination must keep working when the store is unreachable.
		if db != nil {
			user := postgres.User{ID: userID, Username: username}
			if err := db.Where("id = ?", userID).FirstOrCreate(&user).Error; err != nil {
				log.Printf("[AUTH-WARN] user record upsert failed for %s: %v", username, err)
			}
		}

		log.Printf("[AUTH-SUCCESS] Player %s authenticated (socket %s)", username, socketID)

		client.Emit("rooms-available", roomsReg.ListJoinable())
		client.Emit("friends-state", socialStore.StateBundle(userID))
	}
}

// HandleDisconnecting cascades the full cleanup for a dropping connection:
// room leave (or spectator removal), rate-limit state and connection map
// entry, all before the handler returns.
func HandleDisconnecting(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		socketID := string(client.Id())
		player, ok := conns.Lookup(socketID)
		if !ok {
			return
		}
		log.Printf("[DISCONNECT] Player %s disconnecting (socket %s)", player.Username, socketID)

		if player.CurrentRoom != "" {
			leaveCurrentRoom(client, sio, conns, roomsReg)
		}

		conns.Forget(socketID)
		sio.RemoveConnection(player.ID)
		log.Printf("[DISCONNECT-DONE] Player disconnected: %s", player.Username)
	}
}
