package game

// BasicUser is the identity record tracked for the friend system.
type BasicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// RecentPlayer records a co-player seen within the recent-players window.
type RecentPlayer struct {
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	Game       string `json:"game,omitempty"`
	LastSeenAt int64  `json:"lastSeenAt"`
}

type FriendRequestStatus string

const (
	RequestPending  FriendRequestStatus = "pending"
	RequestAccepted FriendRequestStatus = "accepted"
	RequestDeclined FriendRequestStatus = "declined"
)

// FriendRequest is a pending or resolved request between two users. Once the
// status leaves pending it is terminal.
type FriendRequest struct {
	ID           string              `json:"id"`
	FromID       string              `json:"fromId"`
	FromUsername string              `json:"fromUsername"`
	ToID         string              `json:"toId"`
	ToUsername   string              `json:"toUsername"`
	CreatedAt    int64               `json:"createdAt"`
	Status       FriendRequestStatus `json:"status"`
}

// RequestBundle splits a user's pending requests by direction.
type RequestBundle struct {
	Incoming []FriendRequest `json:"incoming"`
	Outgoing []FriendRequest `json:"outgoing"`
}

// FriendsState is the full social snapshot pushed to one client.
type FriendsState struct {
	Friends  []BasicUser    `json:"friends"`
	Requests RequestBundle  `json:"requests"`
	Recent   []RecentPlayer `json:"recent"`
}
