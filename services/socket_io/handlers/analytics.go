package handlers

import (
	"Gamenight/models/game"
	"Gamenight/services/analytics"
	"Gamenight/services/connections"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// handleAnalyticsAction records analytics events into the process-wide
// append-only log. Sessions are keyed by the sending player; a client can
// only ever report its own session.
func handleAnalyticsAction(client *socket.Socket, conns *connections.Registry,
	analyticsLog *analytics.Log, player game.Player, actionType string, action map[string]interface{}) {
	payload, ok := action["payload"].(map[string]interface{})
	if !ok {
		return
	}

	switch actionType {
	case "analytics-session-start":
		gameType, okGame := payload["game"].(string)
		roomID, okRoom := payload["roomId"].(string)
		timestamp, okTime := payload["timestamp"].(float64)
		if !okGame || !okRoom || !okTime {
			return
		}
		conns.SetAnalyticsSession(string(client.Id()), &game.AnalyticsSession{
			UserID:    player.ID,
			Username:  player.Username,
			Game:      gameType,
			RoomID:    roomID,
			StartTime: int64(timestamp),
		})

	case "analytics-session-end":
		timestamp, okTime := payload["timestamp"].(float64)
		if !okTime {
			return
		}
		session, active := conns.TakeAnalyticsSession(string(client.Id()))
		if !active {
			return
		}
		record := map[string]interface{}{
			"userId":    session.UserID,
			"username":  session.Username,
			"game":      session.Game,
			"roomId":    session.RoomID,
			"startTime": session.StartTime,
			"endTime":   int64(timestamp),
		}
		if result, ok := payload["result"]; ok {
			record["result"] = result
		}
		analyticsLog.AppendSession(record)

	case "analytics-round":
		gameType, okGame := payload["game"].(string)
		timestamp, okTime := payload["timestamp"].(float64)
		if !okGame || !okTime {
			return
		}
		analyticsLog.AppendRound(map[string]interface{}{
			"game":      gameType,
			"roundData": payload["roundData"],
			"timestamp": int64(timestamp),
		})
	}
}

// HandleRequestAnalytics returns the full analytics log to the requester.
func HandleRequestAnalytics(client *socket.Socket, analyticsLog *analytics.Log) func(args ...interface{}) {
	return func(args ...interface{}) {
		sessions, rounds := analyticsLog.Snapshot()
		client.Emit("analytics-data", gin.H{
			"sessions": sessions,
			"rounds":   rounds,
		})
	}
}
