package actions

import "strings"

const (
	// CanvasDeltaLimit caps the serialized canvas payload size.
	CanvasDeltaLimit = 2_000_000

	// GuessLimit caps the length of one drawing guess.
	GuessLimit = 60

	// GuessLogLimit bounds the guess log kept inside the drawing state.
	GuessLogLimit = 200
)

// drawerID extracts the designated drawer from the current drawing state.
func drawerID(state interface{}) (string, bool) {
	m, ok := asMap(state)
	if !ok {
		return "", false
	}
	return asString(m["drawerId"])
}

// CanBroadcastCanvas reports whether a canvas delta from the given sender
// may be relayed: the payload must be within the size cap and the sender
// must be the drawer recorded in the current game state.
func CanBroadcastCanvas(state interface{}, senderID, canvasData string) bool {
	if len(canvasData) > CanvasDeltaLimit {
		return false
	}
	drawer, ok := drawerID(state)
	return ok && drawer == senderID
}

// ApplyGuess validates a guess, computes its correctness against the secret
// word server-side (case and whitespace insensitive) and appends it to the
// bounded guess log of the drawing state. The drawer may not guess.
func ApplyGuess(state interface{}, senderID, senderUsername, rawGuess string) (map[string]interface{}, bool) {
	drawing, ok := asMap(state)
	if !ok {
		drawing = map[string]interface{}{}
	}
	if drawer, hasDrawer := asString(drawing["drawerId"]); hasDrawer && drawer == senderID {
		return nil, false
	}

	guess := strings.TrimSpace(rawGuess)
	if guess == "" || len(guess) > GuessLimit {
		return nil, false
	}

	word, _ := asString(drawing["word"])
	normalizedWord := strings.ToLower(strings.TrimSpace(word))
	correct := normalizedWord != "" && strings.ToLower(guess) == normalizedWord

	entry := map[string]interface{}{
		"playerId": senderID,
		"username": senderUsername,
		"guess":    guess,
		"correct":  correct,
	}

	guesses, _ := asSlice(drawing["guesses"])
	guesses = append(append([]interface{}{}, guesses...), entry)
	if len(guesses) > GuessLogLimit {
		guesses = guesses[len(guesses)-GuessLogLimit:]
	}

	next := make(map[string]interface{}, len(drawing)+1)
	for k, v := range drawing {
		next[k] = v
	}
	next["guesses"] = guesses
	return next, true
}
