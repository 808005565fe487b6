package handlers

import (
	"time"

	"Gamenight/models/game"
	"Gamenight/services/actions"
	"Gamenight/services/analytics"
	"Gamenight/services/connections"
	"Gamenight/services/rooms"
	socketio_types "Gamenight/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func actionEnvelope(playerID string, action interface{}) gin.H {
	return gin.H{
		"playerId":  playerID,
		"action":    action,
		"timestamp": nowMillis(),
	}
}

// HandleGameAction is the validation and authorization brain: it resolves
// the sender, computes the authority booleans and dispatches per action
// type. Malformed or unauthorized payloads are dropped without any signal
// so probing clients get no oracle for the validation rules.
func HandleGameAction(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, roomsReg *rooms.Registry, analyticsLog *analytics.Log) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		action, ok := args[0].(map[string]interface{})
		if !ok {
			return
		}
		player, ok := conns.Lookup(string(client.Id()))
		if !ok {
			return
		}

		actionType, _ := action["type"].(string)

		// Spectate and analytics actions are not bound to an active room
		// membership.
		switch actionType {
		case "spectate-join":
			if payload, ok := action["payload"].(map[string]interface{}); ok {
				spectateJoin(client, sio, conns, roomsReg, player, payload)
			}
			return
		case "spectate-leave":
			spectateLeave(client, sio, conns, roomsReg, player)
			return
		case "analytics-session-start", "analytics-session-end", "analytics-round":
			handleAnalyticsAction(client, conns, analyticsLog, player, actionType, action)
			return
		}

		if player.CurrentRoom == "" || player.IsSpectator {
			return
		}
		roomID := player.CurrentRoom
		room, ok := roomsReg.Get(roomID)
		if !ok {
			return
		}

		isMember := room.IsMember(player.ID)
		isHost := room.HostID == player.ID
		isActiveSeat := room.HasActiveSeat(player.ID)

		switch actionType {
		case "chess-fen":
			fen, ok := action["fen"].(string)
			if !ok || !isMember || !isActiveSeat {
				return
			}
			sio.Sio_server.To(socket.Room(roomID)).Emit("game-action",
				actionEnvelope(player.ID, gin.H{"type": "chess-fen", "fen": fen}))

		case "chess-state":
			payload, ok := action["payload"].(map[string]interface{})
			if !ok || !isMember || !isActiveSeat {
				return
			}
			next, stored, err := roomsReg.UpdateGameState(roomID, func(prev interface{}, _ game.Room) (interface{}, bool) {
				return actions.ApplyChessState(prev, payload, isHost)
			})
			if err != nil || !stored {
				return
			}
			sio.Sio_server.To(socket.Room(roomID)).Emit("game-action",
				actionEnvelope(player.ID, gin.H{"type": "chess-state", "payload": next}))

		case "chess-event":
			payload, ok := action["payload"].(map[string]interface{})
			if !ok || !isMember || !isActiveSeat {
				return
			}
			event, ok := actions.ValidateChessEvent(payload, player.ID)
			if !ok {
				return
			}
			sio.Sio_server.To(socket.Room(roomID)).Emit("game-action",
				actionEnvelope(player.ID, gin.H{"type": "chess-event", "payload": event}))

		case "drawing-state":
			payload, ok := action["payload"].(map[string]interface{})
			if !ok || !isMember || !isHost {
				return
			}
			if roomsReg.SetGameState(roomID, payload) != nil {
				return
			}
			sio.Sio_server.To(socket.Room(roomID)).Emit("game-action",
				actionEnvelope(player.ID, gin.H{"type": "drawing-state", "payload": payload}))

		case "drawing-canvas":
			canvasData, ok := action["canvasData"].(string)
			if !ok || !isMember {
				return
			}
			state, _ := roomsReg.GameState(roomID)
			if !actions.CanBroadcastCanvas(state, player.ID, canvasData) {
				return
			}
			// Everyone but the drawer; the sender already has the canvas.
			client.To(socket.Room(roomID)).Emit("game-action",
				actionEnvelope(player.ID, gin.H{"type": "drawing-canvas", "canvasData": canvasData}))

		case "drawing-guess":
			guess, ok := action["guess"].(string)
			if !ok || !isMember {
				return
			}
			next, stored, err := roomsReg.UpdateGameState(roomID, func(prev interface{}, _ game.Room) (interface{}, bool) {
				return actions.ApplyGuess(prev, player.ID, player.Username, guess)
			})
			if err != nil || !stored {
				return
			}
			sio.Sio_server.To(socket.Room(roomID)).Emit("game-action",
				actionEnvelope(player.ID, gin.H{"type": "drawing-state", "payload": next}))

		case "garticphone-state":
			payload, ok := action["payload"].(map[string]interface{})
			if !ok || !isMember {
				return
			}
			next, stored, err := roomsReg.UpdateGameState(roomID, func(prev interface{}, snap game.Room) (interface{}, bool) {
				if !actions.CanUpdateRelayState(prev, snap.Players, player.ID, isHost) {
					return nil, false
				}
				if !actions.SanitizeRelayState(payload) {
					return nil, false
				}
				return payload, true
			})
			if err != nil || !stored {
				return
			}
			sio.Sio_server.To(socket.Room(roomID)).Emit("game-action",
				actionEnvelope(player.ID, gin.H{"type": "garticphone-state", "payload": next}))

		case "geoguessr-state":
			payload, ok := action["payload"].(map[string]interface{})
			if !ok || !isMember {
				return
			}
			next, stored, err := roomsReg.UpdateGameState(roomID, func(prev interface{}, _ game.Room) (interface{}, bool) {
				return actions.ApplyGeoState(prev, payload, player.ID, player.Username, isHost)
			})
			if err != nil || !stored {
				return
			}
			sio.Sio_server.To(socket.Room(roomID)).Emit("game-action",
				actionEnvelope(player.ID, gin.H{"type": "geoguessr-state", "payload": next}))

		case "codenames-state":
			// Deliberately permissive: any member may replace the state.
			payload, ok := action["payload"].(map[string]interface{})
			if !ok || !isMember {
				return
			}
			if roomsReg.SetGameState(roomID, payload) != nil {
				return
			}
			sio.Sio_server.To(socket.Room(roomID)).Emit("game-action",
				actionEnvelope(player.ID, gin.H{"type": "codenames-state", "payload": payload}))

		case "chat-message":
			payload, ok := action["payload"].(map[string]interface{})
			if !ok || !isMember {
				return
			}
			raw, ok := payload["message"].(string)
			if !ok {
				return
			}
			handleChatMessage(client, sio, conns, roomsReg, player, roomID, raw)

		default:
			// Unknown types are relayed to the rest of the room untouched,
			// never stored.
			client.To(socket.Room(roomID)).Emit("game-action",
				actionEnvelope(player.ID, args[0]))
		}
	}
}
