package actions

// readGeoGuess validates one guess entry and returns a copy holding only
// the known fields.
func readGeoGuess(v interface{}) (map[string]interface{}, bool) {
	m, ok := asMap(v)
	if !ok {
		return nil, false
	}
	playerID, ok := asString(m["playerId"])
	if !ok {
		return nil, false
	}
	username, ok := asString(m["username"])
	if !ok {
		return nil, false
	}
	lat, ok := asNumber(m["lat"])
	if !ok {
		return nil, false
	}
	lng, ok := asNumber(m["lng"])
	if !ok {
		return nil, false
	}
	distanceKm, ok := asNumber(m["distanceKm"])
	if !ok {
		return nil, false
	}
	pts, ok := asNumber(m["points"])
	if !ok {
		return nil, false
	}
	return map[string]interface{}{
		"playerId":   playerID,
		"username":   username,
		"lat":        lat,
		"lng":        lng,
		"distanceKm": distanceKm,
		"points":     pts,
	}, true
}

// upsertOwnGeoGuess is the non-host path: the sender may only insert or
// replace their own guess entry inside an already-existing state, and the
// claimed username must match their authenticated name. Everything else in
// the state is carried over untouched.
func upsertOwnGeoGuess(prev interface{}, payload map[string]interface{}, senderID, senderUsername string) (map[string]interface{}, bool) {
	existing, ok := asMap(prev)
	if !ok {
		return nil, false
	}
	prevGuesses, ok := asSlice(existing["guesses"])
	if !ok {
		return nil, false
	}
	incoming, ok := asSlice(payload["guesses"])
	if !ok {
		return nil, false
	}

	var mine map[string]interface{}
	for _, raw := range incoming {
		g, ok := readGeoGuess(raw)
		if !ok {
			continue
		}
		if g["playerId"] == senderID {
			mine = g
			break
		}
	}
	if mine == nil {
		return nil, false
	}
	if mine["username"] != senderUsername {
		return nil, false
	}

	nextGuesses := make([]interface{}, 0, len(prevGuesses)+1)
	for _, raw := range prevGuesses {
		if g, ok := asMap(raw); ok {
			if id, _ := asString(g["playerId"]); id == senderID {
				continue
			}
		}
		nextGuesses = append(nextGuesses, raw)
	}
	nextGuesses = append(nextGuesses, mine)

	next := make(map[string]interface{}, len(existing))
	for k, v := range existing {
		next[k] = v
	}
	next["guesses"] = nextGuesses
	return next, true
}

var geoPhases = map[string]struct{}{
	"waiting": {}, "guessing": {}, "reveal": {}, "ended": {},
}

// ApplyGeoState applies a scored-guess state update. The host may replace
// the full state, but every field is independently type-checked and falls
// back to the previous value when absent or malformed, so a partial host
// update never erases fields it did not touch. Non-hosts are restricted to
// upserting their own guess entry.
func ApplyGeoState(prev interface{}, payload map[string]interface{}, senderID, senderUsername string, isHost bool) (map[string]interface{}, bool) {
	if !isHost {
		return upsertOwnGeoGuess(prev, payload, senderID, senderUsername)
	}

	existing, _ := asMap(prev)

	round, okRound := asNumber(payload["round"])
	if !okRound {
		round, okRound = asNumber(existing["round"])
	}
	maxRounds, okMax := asNumber(payload["maxRounds"])
	if !okMax {
		maxRounds, okMax = asNumber(existing["maxRounds"])
	}
	guessesRaw, okGuesses := asSlice(payload["guesses"])
	if !okGuesses {
		guessesRaw, okGuesses = asSlice(existing["guesses"])
	}
	if !okRound || !okMax || !okGuesses {
		return nil, false
	}

	guesses := make([]interface{}, 0, len(guessesRaw))
	for _, raw := range guessesRaw {
		if g, ok := readGeoGuess(raw); ok {
			guesses = append(guesses, g)
		}
	}

	next := map[string]interface{}{
		"round":     round,
		"maxRounds": maxRounds,
		"guesses":   guesses,
	}

	location := existing["currentLocation"]
	if m, ok := asMap(payload["currentLocation"]); ok {
		name, okName := asString(m["name"])
		lat, okLat := asNumber(m["lat"])
		lng, okLng := asNumber(m["lng"])
		imageURL, okImg := asString(m["imageUrl"])
		if okName && okLat && okLng && okImg {
			sanitized := map[string]interface{}{
				"name": name, "lat": lat, "lng": lng, "imageUrl": imageURL,
			}
			if hint, ok := asString(m["hint"]); ok {
				sanitized["hint"] = hint
			}
			location = sanitized
		}
	}
	if location != nil {
		next["currentLocation"] = location
	}

	phase, _ := asString(existing["phase"])
	if p, ok := asString(payload["phase"]); ok {
		if _, valid := geoPhases[p]; valid {
			phase = p
		}
	}
	if phase != "" {
		next["phase"] = phase
	}

	totals := existing["totals"]
	if m, ok := asMap(payload["totals"]); ok {
		sanitized := map[string]interface{}{}
		for pid, raw := range m {
			e, ok := asMap(raw)
			if !ok {
				continue
			}
			username, okName := asString(e["username"])
			pts, okPts := asNumber(e["points"])
			if !okName || !okPts {
				continue
			}
			sanitized[pid] = map[string]interface{}{"username": username, "points": pts}
		}
		totals = sanitized
	}
	if totals != nil {
		next["totals"] = totals
	}

	awarded := existing["awardedRounds"]
	if s, ok := asSlice(payload["awardedRounds"]); ok {
		filtered := make([]interface{}, 0, len(s))
		for _, raw := range s {
			if n, ok := asNumber(raw); ok {
				filtered = append(filtered, n)
			}
		}
		awarded = filtered
	}
	if awarded != nil {
		next["awardedRounds"] = awarded
	}

	copyNumber(next, payload, existing, "revealTimeLeft")
	copyNumber(next, payload, existing, "roundDurationSeconds")
	copyNumber(next, payload, existing, "timeLeft")

	if hint, ok := asString(payload["hint"]); ok {
		next["hint"] = hint
	} else if hint, ok := asString(existing["hint"]); ok {
		next["hint"] = hint
	}

	if ended, ok := asBool(payload["gameEnded"]); ok {
		next["gameEnded"] = ended
	} else if ended, ok := asBool(existing["gameEnded"]); ok {
		next["gameEnded"] = ended
	}

	return next, true
}

func copyNumber(next, payload, existing map[string]interface{}, key string) {
	if n, ok := asNumber(payload[key]); ok {
		next[key] = n
	} else if n, ok := asNumber(existing[key]); ok {
		next[key] = n
	}
}
