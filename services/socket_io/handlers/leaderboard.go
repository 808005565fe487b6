package handlers

import (
	"Gamenight/models/game"
	"Gamenight/services/connections"
	"Gamenight/services/points"
	socketio_types "Gamenight/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleAwardPoints applies a points delta and broadcasts a recomputed
// leaderboard snapshot for every scope the award touched.
func HandleAwardPoints(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, pointsStore *points.Store) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		data, ok := args[0].(map[string]interface{})
		if !ok {
			return
		}
		if _, authenticated := conns.Lookup(string(client.Id())); !authenticated {
			return
		}

		userID, okID := data["userId"].(string)
		username, okName := data["username"].(string)
		delta, okDelta := data["pointsDelta"].(float64)
		if !okID || !okName || !okDelta {
			return
		}
		gameType, _ := data["game"].(string)
		region, _ := data["region"].(string)

		pointsStore.Award(game.PointsAward{
			UserID:   userID,
			Username: username,
			Delta:    int(delta),
			Game:     gameType,
			Region:   region,
		})

		sio.Sio_server.Emit("leaderboard", gin.H{
			"scope": "global",
			"rows":  pointsStore.Global(),
		})
		if gameType != "" {
			sio.Sio_server.Emit("leaderboard", gin.H{
				"scope": "game",
				"game":  gameType,
				"rows":  pointsStore.ForGame(gameType),
			})
		}
		if key := points.NormalizeRegion(region); key != "" {
			sio.Sio_server.Emit("leaderboard", gin.H{
				"scope":  "region",
				"region": key,
				"rows":   pointsStore.ForRegion(key),
			})
		}
	}
}

// HandleRequestLeaderboard replies with the current sorted rows for the
// requested scope. The friends scope intersects the global rows with the
// caller-supplied friend id set.
func HandleRequestLeaderboard(client *socket.Socket, conns *connections.Registry,
	pointsStore *points.Store) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		data, ok := args[0].(map[string]interface{})
		if !ok {
			return
		}
		if _, authenticated := conns.Lookup(string(client.Id())); !authenticated {
			return
		}

		scope, _ := data["scope"].(string)
		switch scope {
		case "game":
			gameType, _ := data["game"].(string)
			client.Emit("leaderboard", gin.H{
				"scope": "game",
				"game":  gameType,
				"rows":  pointsStore.ForGame(gameType),
			})
		case "region":
			region, _ := data["region"].(string)
			client.Emit("leaderboard", gin.H{
				"scope":  "region",
				"region": points.NormalizeRegion(region),
				"rows":   pointsStore.ForRegion(region),
			})
		case "friends":
			friendIDs := []string{}
			if raw, ok := data["friendIds"].([]interface{}); ok {
				for _, v := range raw {
					if id, ok := v.(string); ok {
						friendIDs = append(friendIDs, id)
					}
				}
			}
			client.Emit("leaderboard", gin.H{
				"scope": "friends",
				"rows":  pointsStore.FriendsFiltered(friendIDs),
			})
		default:
			client.Emit("leaderboard", gin.H{
				"scope": "global",
				"rows":  pointsStore.Global(),
			})
		}
	}
}
