package handlers

import (
	"log"
	"time"

	"Gamenight/models/game"
	"Gamenight/services/connections"
	"Gamenight/services/rooms"
	"Gamenight/services/social"
	socketio_types "Gamenight/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// BroadcastAvailableRooms pushes the joinable room list to every connected
// client. Called after every room state change (push-on-change model).
func BroadcastAvailableRooms(sio *socketio_types.SocketServer, roomsReg *rooms.Registry) {
	sio.Sio_server.Emit("rooms-available", roomsReg.ListJoinable())
}

// HandleCreateRoom creates a room with the sender as host and sole member.
func HandleCreateRoom(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		socketID := string(client.Id())
		player, ok := conns.Lookup(socketID)
		if !ok {
			return
		}
		if len(args) < 1 {
			return
		}
		data, ok := args[0].(map[string]interface{})
		if !ok {
			return
		}

		name, _ := data["name"].(string)
		gameType, _ := data["game"].(string)
		isPrivate, _ := data["isPrivate"].(bool)
		maxPlayers := game.MinRoomPlayers
		if n, ok := data["maxPlayers"].(float64); ok {
			maxPlayers = int(n)
		}

		// Creating a room implicitly leaves the previous one so no stale
		// membership survives.
		if player.CurrentRoom != "" {
			leaveCurrentRoom(client, sio, conns, roomsReg)
		}

		room := roomsReg.Create(player, name, gameType, maxPlayers, isPrivate)
		conns.SetCurrentRoom(socketID, room.ID, false)
		client.Join(socket.Room(room.ID))

		log.Printf("[CREATE] Player %s created room %s (%s)", player.Username, room.ID, room.Game)
		client.Emit("room-created", room)
		BroadcastAvailableRooms(sio, roomsReg)
	}
}

// joinRoomInternal runs the shared join flow: leave the previous room,
// add membership, touch recent co-players, notify everyone.
func joinRoomInternal(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry, socialStore *social.Store, roomID string) {
	socketID := string(client.Id())
	player, ok := conns.Lookup(socketID)
	if !ok {
		client.Emit("error", gin.H{"error": "Room not found"})
		return
	}

	// The target must be joinable before the previous membership is torn
	// down; a rejected join leaves the player exactly where they were.
	switch roomsReg.CanJoin(roomID) {
	case rooms.ErrRoomNotFound:
		client.Emit("error", gin.H{"error": "Room not found"})
		return
	case rooms.ErrRoomFull:
		client.Emit("error", gin.H{"error": "Room is full"})
		return
	}

	if player.CurrentRoom != "" {
		leaveCurrentRoom(client, sio, conns, roomsReg)
	}

	room, err := roomsReg.Join(roomID, player)
	if err == rooms.ErrRoomFull {
		client.Emit("error", gin.H{"error": "Room is full"})
		return
	}
	if err != nil {
		client.Emit("error", gin.H{"error": "Room not found"})
		return
	}
	conns.SetCurrentRoom(socketID, roomID, false)

	// Recently-played bookkeeping between the joiner and every other member,
	// then push refreshed recent lists to every member connection.
	for _, other := range room.Players {
		if other.ID == player.ID {
			continue
		}
		socialStore.TouchRecent(player.ID, other.ID, room.Game)
	}
	for _, member := range room.Players {
		if conn, online := sio.GetConnection(member.ID); online {
			conn.Emit("recent-players", gin.H{"recent": socialStore.ListRecent(member.ID)})
		}
	}

	client.Join(socket.Room(roomID))
	client.Emit("room-joined", room)

	var joined game.RoomPlayer
	for _, p := range room.Players {
		if p.ID == player.ID {
			joined = p
		}
	}
	sio.Sio_server.To(socket.Room(roomID)).Emit("player-joined", gin.H{
		"player": joined,
		"room":   room,
	})

	log.Printf("[JOIN-SUCCESS] Player %s joined room %s", player.Username, roomID)
	BroadcastAvailableRooms(sio, roomsReg)
}

// resyncTarget reports whether a join request targets the room the player
// already occupies as an active member. Such requests only resynchronize
// the client: no duplicate membership, no recent-player touches, no
// room-wide notifications.
func resyncTarget(player game.Player, roomID string) bool {
	return player.CurrentRoom == roomID && !player.IsSpectator
}

// HandleJoinRoom joins a room by id. Re-requesting the room the player
// already occupies resynchronizes the client instead of re-running the join
// flow: no duplicate membership, no duplicate recent-player touches.
func HandleJoinRoom(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry, socialStore *social.Store) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		roomID, ok := args[0].(string)
		if !ok {
			return
		}
		player, ok := conns.Lookup(string(client.Id()))
		if !ok {
			return
		}

		if resyncTarget(player, roomID) {
			room, exists := roomsReg.Get(roomID)
			if !exists {
				client.Emit("error", gin.H{"error": "Room not found"})
				return
			}
			log.Printf("[REJOIN] Player %s rejoining room %s, restoring state", player.Username, roomID)
			client.Emit("room-joined", room)
			client.Emit("room-updated", room)
			if state, has := roomsReg.GameState(roomID); has {
				client.Emit("game-action", gin.H{
					"playerId":  player.ID,
					"action":    state,
					"timestamp": time.Now().UnixMilli(),
				})
			}
			return
		}

		joinRoomInternal(client, sio, conns, roomsReg, socialStore, roomID)
	}
}

// HandleJoinRoomByCode resolves a private room by its join code.
func HandleJoinRoomByCode(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry, socialStore *social.Store) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		code, ok := args[0].(string)
		if !ok {
			return
		}
		if _, authenticated := conns.Lookup(string(client.Id())); !authenticated {
			return
		}
		if rooms.NormalizeCode(code) == "" {
			client.Emit("error", gin.H{"error": "Invalid code"})
			return
		}
		room, found := roomsReg.FindByCode(code)
		if !found {
			client.Emit("error", gin.H{"error": "Room not found"})
			return
		}
		joinRoomInternal(client, sio, conns, roomsReg, socialStore, room.ID)
	}
}

// HandleUpdateRoomSettings applies a host-only partial settings update.
// Each field validates independently; a rejected maxPlayers surfaces an
// error while the remaining fields still apply.
func HandleUpdateRoomSettings(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		data, ok := args[0].(map[string]interface{})
		if !ok {
			return
		}
		player, ok := conns.Lookup(string(client.Id()))
		if !ok {
			return
		}
		roomID, _ := data["roomId"].(string)

		var settings rooms.Settings
		if name, ok := data["name"].(string); ok {
			settings.Name = &name
		}
		if n, ok := data["maxPlayers"].(float64); ok {
			maxPlayers := int(n)
			settings.MaxPlayers = &maxPlayers
		}
		if private, ok := data["isPrivate"].(bool); ok {
			settings.IsPrivate = &private
		}

		room, err := roomsReg.UpdateSettings(roomID, player.ID, settings)
		switch err {
		case rooms.ErrRoomNotFound:
			client.Emit("error", gin.H{"error": "Room not found"})
			return
		case rooms.ErrNotHost:
			client.Emit("error", gin.H{"error": "Only host can change settings"})
			return
		case rooms.ErrMaxBelowMembers:
			client.Emit("error", gin.H{"error": "Max players cannot be less than current players"})
		}

		sio.Sio_server.To(socket.Room(room.ID)).Emit("room-updated", room)
		BroadcastAvailableRooms(sio, roomsReg)
	}
}

// HandleLeaveRoom leaves the sender's current room.
func HandleLeaveRoom(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		leaveCurrentRoom(client, sio, conns, roomsReg)
	}
}

// leaveCurrentRoom is the single implementation of room cleanup, invoked
// from explicit leave-room handling, implicit room switching and the
// disconnect cascade. Handles both active members and spectators.
func leaveCurrentRoom(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry) {
	socketID := string(client.Id())
	player, ok := conns.Lookup(socketID)
	if !ok || player.CurrentRoom == "" {
		return
	}
	roomID := player.CurrentRoom

	if player.IsSpectator {
		if room, err := roomsReg.RemoveSpectator(roomID, player.ID); err == nil {
			sio.Sio_server.To(socket.Room(roomID)).Emit("spectators-update", room.Spectators)
		}
		client.Leave(socket.Room(roomID))
		client.Emit("spectate-left")
		conns.SetCurrentRoom(socketID, "", false)
		return
	}

	room, deleted, err := roomsReg.Leave(roomID, player.ID)
	if err != nil {
		conns.SetCurrentRoom(socketID, "", false)
		return
	}
	if !deleted {
		sio.Sio_server.To(socket.Room(roomID)).Emit("player-left", gin.H{
			"playerId": player.ID,
			"room":     room,
		})
	} else {
		log.Printf("[LEAVE] Room %s deleted (last member %s left)", roomID, player.Username)
	}

	client.Leave(socket.Room(roomID))
	conns.SetCurrentRoom(socketID, "", false)
	BroadcastAvailableRooms(sio, roomsReg)
}
