package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeChessState(t *testing.T) {
	t.Run("Fen is mandatory", func(t *testing.T) {
		_, ok := SanitizeChessState(map[string]interface{}{"resultText": "1-0"}, true)
		assert.False(t, ok)

		_, ok = SanitizeChessState(map[string]interface{}{"fen": 42}, true)
		assert.False(t, ok)
	})

	t.Run("Non-host keeps only the fen", func(t *testing.T) {
		out, ok := SanitizeChessState(map[string]interface{}{
			"fen":        "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			"resultText": "1-0",
			"resetId":    float64(3),
			"whiteTime":  float64(300),
		}, false)
		require.True(t, ok)
		assert.Equal(t, map[string]interface{}{
			"fen": "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		}, out)
	})

	t.Run("Host keeps the authoritative fields", func(t *testing.T) {
		out, ok := SanitizeChessState(map[string]interface{}{
			"fen":          "8/8/8/8/8/8/8/K6k w - - 0 1",
			"resultText":   "draw",
			"resetId":      float64(2),
			"moveHistory":  []interface{}{"e4", "e5"},
			"whiteTime":    float64(120),
			"blackTime":    float64(95),
			"clockEnabled": true,
			"clockRunning": false,
		}, true)
		require.True(t, ok)
		assert.Equal(t, "draw", out["resultText"])
		assert.Equal(t, float64(2), out["resetId"])
		assert.Equal(t, []interface{}{"e4", "e5"}, out["moveHistory"])
		assert.Equal(t, float64(120), out["whiteTime"])
		assert.Equal(t, true, out["clockEnabled"])
		assert.Equal(t, false, out["clockRunning"])
	})

	t.Run("Host can clear nullable fields", func(t *testing.T) {
		out, ok := SanitizeChessState(map[string]interface{}{
			"fen":           "8/8/8/8/8/8/8/K6k w - - 0 1",
			"resultText":    nil,
			"drawOfferedBy": nil,
			"undoRequest":   nil,
		}, true)
		require.True(t, ok)
		for _, key := range []string{"resultText", "drawOfferedBy", "undoRequest"} {
			v, present := out[key]
			assert.True(t, present, key)
			assert.Nil(t, v, key)
		}
	})

	t.Run("Malformed undo request is dropped, state still accepted", func(t *testing.T) {
		out, ok := SanitizeChessState(map[string]interface{}{
			"fen":         "8/8/8/8/8/8/8/K6k w - - 0 1",
			"undoRequest": map[string]interface{}{"playerId": "u1"},
		}, true)
		require.True(t, ok)
		_, present := out["undoRequest"]
		assert.False(t, present)
	})

	t.Run("Wrongly typed optional fields are dropped", func(t *testing.T) {
		out, ok := SanitizeChessState(map[string]interface{}{
			"fen":        "8/8/8/8/8/8/8/K6k w - - 0 1",
			"resultText": float64(1),
			"whiteTime":  "300",
		}, true)
		require.True(t, ok)
		_, present := out["resultText"]
		assert.False(t, present)
		_, present = out["whiteTime"]
		assert.False(t, present)
	})
}

func TestApplyChessState(t *testing.T) {
	t.Run("Non-host position update keeps stored host fields", func(t *testing.T) {
		prev := map[string]interface{}{"fen": "X", "resultText": "1-0"}
		next, ok := ApplyChessState(prev, map[string]interface{}{
			"fen":        "Y",
			"resultText": "ignored",
		}, false)
		require.True(t, ok)
		assert.Equal(t, "Y", next["fen"])
		assert.Equal(t, "1-0", next["resultText"])
	})

	t.Run("Non-host update works with no previous state", func(t *testing.T) {
		next, ok := ApplyChessState(nil, map[string]interface{}{"fen": "Y"}, false)
		require.True(t, ok)
		assert.Equal(t, map[string]interface{}{"fen": "Y"}, next)
	})

	t.Run("Host replaces the state wholesale", func(t *testing.T) {
		prev := map[string]interface{}{"fen": "X", "resultText": "1-0"}
		next, ok := ApplyChessState(prev, map[string]interface{}{"fen": "Z"}, true)
		require.True(t, ok)
		assert.Equal(t, "Z", next["fen"])
		_, present := next["resultText"]
		assert.False(t, present)
	})

	t.Run("Missing fen leaves the state untouched", func(t *testing.T) {
		_, ok := ApplyChessState(map[string]interface{}{"fen": "X"}, map[string]interface{}{
			"resultText": "1-0",
		}, false)
		assert.False(t, ok)
	})
}

func TestValidateChessEvent(t *testing.T) {
	t.Run("Resign and draw offer pass for the sender", func(t *testing.T) {
		for _, kind := range []string{"resign", "draw-offer"} {
			out, ok := ValidateChessEvent(map[string]interface{}{"kind": kind, "playerId": "u1"}, "u1")
			require.True(t, ok, kind)
			assert.Equal(t, map[string]interface{}{"kind": kind, "playerId": "u1"}, out)
		}
	})

	t.Run("Spoofed player id is rejected", func(t *testing.T) {
		_, ok := ValidateChessEvent(map[string]interface{}{"kind": "resign", "playerId": "u2"}, "u1")
		assert.False(t, ok)
	})

	t.Run("Unknown kind is rejected", func(t *testing.T) {
		_, ok := ValidateChessEvent(map[string]interface{}{"kind": "castle", "playerId": "u1"}, "u1")
		assert.False(t, ok)
	})

	t.Run("Missing fields are rejected", func(t *testing.T) {
		_, ok := ValidateChessEvent(map[string]interface{}{"kind": "resign"}, "u1")
		assert.False(t, ok)
		_, ok = ValidateChessEvent(map[string]interface{}{"playerId": "u1"}, "u1")
		assert.False(t, ok)
	})
}
