package actions

// SanitizeChessState validates a full-state chess payload. The fen field is
// mandatory for everyone; result, draw-offer, reset counter, move history,
// undo request and clock fields are host-authoritative and are silently
// stripped when the sender is not the host. Explicit nulls are accepted for
// the clearable fields so the host can reset them.
func SanitizeChessState(payload map[string]interface{}, isHost bool) (map[string]interface{}, bool) {
	fen, ok := asString(payload["fen"])
	if !ok {
		return nil, false
	}

	out := map[string]interface{}{"fen": fen}
	if !isHost {
		return out, true
	}

	if v, present := payload["resultText"]; present {
		if _, isStr := asString(v); isStr || v == nil {
			out["resultText"] = v
		}
	}
	if v, present := payload["drawOfferedBy"]; present {
		if _, isStr := asString(v); isStr || v == nil {
			out["drawOfferedBy"] = v
		}
	}
	if v, ok := asNumber(payload["resetId"]); ok {
		out["resetId"] = v
	}
	if v, ok := asSlice(payload["moveHistory"]); ok {
		out["moveHistory"] = v
	}
	if v, present := payload["undoRequest"]; present {
		if v == nil {
			out["undoRequest"] = nil
		} else if m, isMap := asMap(v); isMap {
			playerID, okID := asString(m["playerId"])
			moveIndex, okIdx := asNumber(m["moveIndex"])
			if okID && okIdx {
				out["undoRequest"] = map[string]interface{}{"playerId": playerID, "moveIndex": moveIndex}
			}
		}
	}
	if v, ok := asNumber(payload["whiteTime"]); ok {
		out["whiteTime"] = v
	}
	if v, ok := asNumber(payload["blackTime"]); ok {
		out["blackTime"] = v
	}
	if v, ok := asBool(payload["clockEnabled"]); ok {
		out["clockEnabled"] = v
	}
	if v, ok := asBool(payload["clockRunning"]); ok {
		out["clockRunning"] = v
	}
	return out, true
}

// ApplyChessState folds a sanitized chess payload into the stored state.
// The host replaces the state wholesale. A non-host update carries only the
// mandatory position field after sanitization, which is merged over the
// previous state so stored host-authoritative fields survive.
func ApplyChessState(prev interface{}, payload map[string]interface{}, isHost bool) (map[string]interface{}, bool) {
	sanitized, ok := SanitizeChessState(payload, isHost)
	if !ok {
		return nil, false
	}
	if isHost {
		return sanitized, true
	}
	existing, _ := asMap(prev)
	next := make(map[string]interface{}, len(existing)+1)
	for k, v := range existing {
		next[k] = v
	}
	for k, v := range sanitized {
		next[k] = v
	}
	return next, true
}

// ValidateChessEvent checks a player-driven event (resign or draw offer).
// The claimed player id must match the authenticated sender; the host is
// expected to resolve the event into a full-state update.
func ValidateChessEvent(payload map[string]interface{}, senderID string) (map[string]interface{}, bool) {
	kind, ok := asString(payload["kind"])
	if !ok {
		return nil, false
	}
	playerID, ok := asString(payload["playerId"])
	if !ok || playerID != senderID {
		return nil, false
	}
	if kind != "resign" && kind != "draw-offer" {
		return nil, false
	}
	return map[string]interface{}{"kind": kind, "playerId": playerID}, true
}
