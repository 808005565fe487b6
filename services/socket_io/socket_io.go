package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Gamenight/services/analytics"
	"Gamenight/services/connections"
	"Gamenight/services/points"
	"Gamenight/services/rooms"
	"Gamenight/services/social"
	"Gamenight/services/socket_io/handlers"
	socketio_types "Gamenight/services/socket_io/types"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

// Stores bundles the injected in-memory stores the coordinator runs on.
type Stores struct {
	Connections *connections.Registry
	Rooms       *rooms.Registry
	Social      *social.Store
	Points      *points.Store
	Analytics   *analytics.Log
}

func NewStores() *Stores {
	return &Stores{
		Connections: connections.NewRegistry(),
		Rooms:       rooms.NewRegistry(),
		Social:      social.NewStore(),
		Points:      points.NewStore(),
		Analytics:   analytics.NewLog(),
	}
}

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB, stores *Stores) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(4000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.UserConnections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		server := (*socketio_types.SocketServer)(sio)

		fmt.Println("An individual just connected!: ", client.Id())

		conns, roomsReg, socialStore := stores.Connections, stores.Rooms, stores.Social

		// Bind an identity to this connection
		client.On("authenticate", handlers.HandleAuthenticate(client, db, server, conns, roomsReg, socialStore))

		// Room lifecycle
		client.On("create-room", handlers.HandleCreateRoom(client, server, conns, roomsReg))
		client.On("join-room", handlers.HandleJoinRoom(client, server, conns, roomsReg, socialStore))
		client.On("join-room-by-code", handlers.HandleJoinRoomByCode(client, server, conns, roomsReg, socialStore))
		client.On("update-room-settings", handlers.HandleUpdateRoomSettings(client, server, conns, roomsReg))
		client.On("leave-room", handlers.HandleLeaveRoom(client, server, conns, roomsReg))

		// In-room game traffic (validated and relayed, never refereed)
		client.On("game-action", handlers.HandleGameAction(client, server, conns, roomsReg, stores.Analytics))

		// Spectating, also reachable as game-action type variants
		client.On("spectate-join", handlers.HandleSpectateJoin(client, server, conns, roomsReg))
		client.On("spectate-leave", handlers.HandleSpectateLeave(client, server, conns, roomsReg))

		// Social graph
		client.On("request-friends", handlers.HandleRequestFriends(client, conns, socialStore))
		client.On("request-recent-players", handlers.HandleRequestRecentPlayers(client, conns, socialStore))
		client.On("send-friend-request", handlers.HandleSendFriendRequest(client, server, conns, socialStore))
		client.On("respond-friend-request", handlers.HandleRespondFriendRequest(client, server, conns, socialStore))

		// Points and leaderboards
		client.On("award-points", handlers.HandleAwardPoints(client, server, conns, stores.Points))
		client.On("request-leaderboard", handlers.HandleRequestLeaderboard(client, conns, stores.Points))

		// Analytics log
		client.On("request-analytics", handlers.HandleRequestAnalytics(client, stores.Analytics))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(client, server, conns, roomsReg))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
