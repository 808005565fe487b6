package actions

import "Gamenight/models/game"

// CanUpdateRelayState decides who may replace a rotating-authority relay
// state (garticphone style): the host always may; otherwise the sender must
// occupy the seat the stored currentTurnIndex points at. With no stored
// turn index only the host may write.
func CanUpdateRelayState(state interface{}, players []game.RoomPlayer, senderID string, isHost bool) bool {
	if isHost {
		return true
	}
	m, ok := asMap(state)
	if !ok {
		return false
	}
	idx, ok := asNumber(m["currentTurnIndex"])
	if !ok {
		return false
	}
	i := int(idx)
	if i < 0 || i >= len(players) {
		return false
	}
	return players[i].ID == senderID
}

// SanitizeRelayState shape-checks a relay-game state payload: phase, round
// counters, turn index and the chains collection are all mandatory.
func SanitizeRelayState(payload map[string]interface{}) bool {
	if _, ok := asString(payload["phase"]); !ok {
		return false
	}
	if _, ok := asNumber(payload["currentRound"]); !ok {
		return false
	}
	if _, ok := asNumber(payload["maxRounds"]); !ok {
		return false
	}
	if _, ok := asNumber(payload["currentTurnIndex"]); !ok {
		return false
	}
	if _, ok := asSlice(payload["chains"]); !ok {
		return false
	}
	return true
}
