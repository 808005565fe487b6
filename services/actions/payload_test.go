package actions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeChatMessage(t *testing.T) {
	t.Run("Trims and accepts normal input", func(t *testing.T) {
		msg, ok := SanitizeChatMessage("  hello there  ")
		assert.True(t, ok)
		assert.Equal(t, "hello there", msg)
	})

	t.Run("Empty and whitespace-only are rejected", func(t *testing.T) {
		_, ok := SanitizeChatMessage("")
		assert.False(t, ok)
		_, ok = SanitizeChatMessage("   \t ")
		assert.False(t, ok)
	})

	t.Run("Length cap applies after trimming", func(t *testing.T) {
		msg, ok := SanitizeChatMessage(strings.Repeat("a", ChatMessageLimit))
		assert.True(t, ok)
		assert.Len(t, msg, ChatMessageLimit)

		_, ok = SanitizeChatMessage(strings.Repeat("a", ChatMessageLimit+1))
		assert.False(t, ok)
	})
}
