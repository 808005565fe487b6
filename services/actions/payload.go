// Package actions holds the per-game-type payload validation and
// sanitization rules applied to inbound game actions before they are stored
// or relayed. Payloads come from untrusted clients, so every rule fails
// closed: a payload that does not match its expected shape is dropped
// without effect.
package actions

import "strings"

// ChatMessageLimit caps the length of a room chat message.
const ChatMessageLimit = 300

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asBool(v interface{}) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func asSlice(v interface{}) ([]interface{}, bool) {
	s, ok := v.([]interface{})
	return s, ok
}

// SanitizeChatMessage trims a chat message and rejects empty or oversized
// input.
func SanitizeChatMessage(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || len(trimmed) > ChatMessageLimit {
		return "", false
	}
	return trimmed, true
}
