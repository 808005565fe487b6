package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog(t *testing.T) {
	l := NewLog()

	sessions, rounds := l.Snapshot()
	assert.Empty(t, sessions)
	assert.Empty(t, rounds)

	l.AppendSession(map[string]interface{}{"sessionId": "s1", "game": "chess"})
	l.AppendRound(map[string]interface{}{"sessionId": "s1", "round": float64(1)})
	l.AppendRound(map[string]interface{}{"sessionId": "s1", "round": float64(2)})

	sessions, rounds = l.Snapshot()
	require.Len(t, sessions, 1)
	require.Len(t, rounds, 2)
	assert.Equal(t, "s1", sessions[0]["sessionId"])
	assert.Equal(t, float64(2), rounds[1]["round"])
}

func TestSnapshotIsolation(t *testing.T) {
	l := NewLog()
	l.AppendSession(map[string]interface{}{"sessionId": "s1"})

	sessions, _ := l.Snapshot()
	l.AppendSession(map[string]interface{}{"sessionId": "s2"})

	assert.Len(t, sessions, 1)
	ongoing, _ := l.Snapshot()
	assert.Len(t, ongoing, 2)
}
