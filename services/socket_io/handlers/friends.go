package handlers

import (
	"log"

	"Gamenight/services/connections"
	"Gamenight/services/social"
	socketio_types "Gamenight/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleRequestFriends replies with the full social snapshot of the sender.
func HandleRequestFriends(client *socket.Socket, conns *connections.Registry,
	socialStore *social.Store) func(args ...interface{}) {
	return func(args ...interface{}) {
		player, ok := conns.Lookup(string(client.Id()))
		if !ok {
			return
		}
		client.Emit("friends-state", socialStore.StateBundle(player.ID))
	}
}

// HandleRequestRecentPlayers replies with the sender's recent co-players.
func HandleRequestRecentPlayers(client *socket.Socket, conns *connections.Registry,
	socialStore *social.Store) func(args ...interface{}) {
	return func(args ...interface{}) {
		player, ok := conns.Lookup(string(client.Id()))
		if !ok {
			return
		}
		client.Emit("recent-players", gin.H{"recent": socialStore.ListRecent(player.ID)})
	}
}

// HandleSendFriendRequest creates a pending friend request towards a
// username. Eligibility is gated on having recently played with the target.
// The created request is broadcast to all connections; clients filter by
// their own user id.
func HandleSendFriendRequest(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, socialStore *social.Store) func(args ...interface{}) {
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
		toUsername, _ := data["toUsername"].(string)

		req, err := socialStore.SendRequest(player.ID, toUsername)
		if err != nil {
			client.Emit("error", gin.H{"error": rejectionMessage(err)})
			return
		}

		log.Printf("[FRIEND-REQUEST] %s -> %s (%s)", req.FromUsername, req.ToUsername, req.ID)
		sio.Sio_server.Emit("friend-request-updated", req)
	}
}

// HandleRespondFriendRequest resolves a pending request. Only the addressed
// user may respond; both parties then receive refreshed social bundles.
func HandleRespondFriendRequest(client *socket.Socket, sio *socketio_types.SocketServer,
	conns *connections.Registry, socialStore *social.Store) func(args ...interface{}) {
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
		requestID, _ := data["requestId"].(string)
		accept, _ := data["accept"].(bool)

		req, err := socialStore.Respond(player.ID, requestID, accept)
		if err != nil {
			client.Emit("error", gin.H{"error": rejectionMessage(err)})
			return
		}

		sio.Sio_server.Emit("friend-request-updated", req)

		for _, userID := range []string{req.FromID, req.ToID} {
			bundle := socialStore.StateBundle(userID)
			sio.Sio_server.Emit("friends-state-updated", gin.H{
				"userId":   userID,
				"friends":  bundle.Friends,
				"requests": bundle.Requests,
				"recent":   bundle.Recent,
			})
		}
	}
}

// rejectionMessage maps store errors onto the human-readable strings shown
// in the clients' error toasts.
func rejectionMessage(err error) string {
	switch err {
	case social.ErrUserNotFound:
		return "User not found"
	case social.ErrSelfRequest:
		return "Cannot add yourself"
	case social.ErrNotRecent:
		return "You can only add players you recently played with (24h)."
	case social.ErrAlreadyFriends:
		return "Already friends"
	case social.ErrRequestPending:
		return "Friend request already pending"
	case social.ErrRequestNotFound:
		return "Request not found"
	case social.ErrNotAllowed:
		return "Not allowed"
	}
	return err.Error()
}
