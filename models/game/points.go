package game

// LeaderboardRow is one entry of a sorted leaderboard snapshot.
type LeaderboardRow struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// PointsAward is a signed delta applied to one user's cumulative score.
// Game and Region select the additional scopes to update.
type PointsAward struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Delta    int    `json:"pointsDelta"`
	Game     string `json:"game,omitempty"`
	Region   string `json:"region,omitempty"`
}
