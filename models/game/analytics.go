package game

// AnalyticsSession is the snapshot attached to a player while a game
// session is being measured.
type AnalyticsSession struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Game      string `json:"game"`
	RoomID    string `json:"roomId"`
	StartTime int64  `json:"startTime"`
}

// AnalyticsRound is one round-level measurement, not tied to a session.
type AnalyticsRound struct {
	Game      string      `json:"game"`
	RoundData interface{} `json:"roundData,omitempty"`
	Timestamp int64       `json:"timestamp"`
}
