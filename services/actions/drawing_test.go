package actions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanBroadcastCanvas(t *testing.T) {
	state := map[string]interface{}{"drawerId": "u1", "word": "cat"}

	t.Run("Drawer within the size cap may broadcast", func(t *testing.T) {
		assert.True(t, CanBroadcastCanvas(state, "u1", "strokes..."))
	})

	t.Run("Non-drawer is blocked", func(t *testing.T) {
		assert.False(t, CanBroadcastCanvas(state, "u2", "strokes..."))
	})

	t.Run("Oversized payload is blocked even for the drawer", func(t *testing.T) {
		big := strings.Repeat("x", CanvasDeltaLimit+1)
		assert.False(t, CanBroadcastCanvas(state, "u1", big))
	})

	t.Run("No state means no drawer", func(t *testing.T) {
		assert.False(t, CanBroadcastCanvas(nil, "u1", "strokes..."))
	})
}

func TestApplyGuess(t *testing.T) {
	baseState := func() map[string]interface{} {
		return map[string]interface{}{"drawerId": "u1", "word": "Cat"}
	}

	t.Run("Correctness is computed server-side, case insensitive", func(t *testing.T) {
		next, ok := ApplyGuess(baseState(), "u2", "bob", "  cAt ")
		require.True(t, ok)
		guesses, isSlice := next["guesses"].([]interface{})
		require.True(t, isSlice)
		require.Len(t, guesses, 1)
		entry := guesses[0].(map[string]interface{})
		assert.Equal(t, "u2", entry["playerId"])
		assert.Equal(t, "bob", entry["username"])
		assert.Equal(t, "cAt", entry["guess"])
		assert.Equal(t, true, entry["correct"])
	})

	t.Run("Wrong word is marked incorrect", func(t *testing.T) {
		next, ok := ApplyGuess(baseState(), "u2", "bob", "dog")
		require.True(t, ok)
		entry := next["guesses"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, false, entry["correct"])
	})

	t.Run("Empty word never matches", func(t *testing.T) {
		state := map[string]interface{}{"drawerId": "u1"}
		next, ok := ApplyGuess(state, "u2", "bob", "anything")
		require.True(t, ok)
		entry := next["guesses"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, false, entry["correct"])
	})

	t.Run("Drawer cannot guess", func(t *testing.T) {
		_, ok := ApplyGuess(baseState(), "u1", "alice", "cat")
		assert.False(t, ok)
	})

	t.Run("Empty and oversized guesses are dropped", func(t *testing.T) {
		_, ok := ApplyGuess(baseState(), "u2", "bob", "   ")
		assert.False(t, ok)
		_, ok = ApplyGuess(baseState(), "u2", "bob", strings.Repeat("a", GuessLimit+1))
		assert.False(t, ok)
	})

	t.Run("Guess log stays bounded", func(t *testing.T) {
		state := interface{}(baseState())
		for i := 0; i < GuessLogLimit+25; i++ {
			next, ok := ApplyGuess(state, "u2", "bob", "dog")
			require.True(t, ok)
			state = next
		}
		guesses := state.(map[string]interface{})["guesses"].([]interface{})
		assert.Len(t, guesses, GuessLogLimit)
	})

	t.Run("Previous state is not mutated", func(t *testing.T) {
		prev := baseState()
		prev["guesses"] = []interface{}{}
		_, ok := ApplyGuess(prev, "u2", "bob", "dog")
		require.True(t, ok)
		assert.Empty(t, prev["guesses"].([]interface{}))
	})
}
