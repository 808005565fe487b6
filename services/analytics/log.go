package analytics

import (
	"sync"
)

// Log is the process-wide append-only analytics sink. Sessions and rounds
// are stored as the loosely-shaped maps the clients report; the coordinator
// only validates the typed fields before appending.
type Log struct {
	mutex    sync.RWMutex
	sessions []map[string]interface{}
	rounds   []map[string]interface{}
}

func NewLog() *Log {
	return &Log{}
}

// AppendSession records a completed analytics session.
func (l *Log) AppendSession(session map[string]interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.sessions = append(l.sessions, session)
}

// AppendRound records one round-level measurement.
func (l *Log) AppendRound(round map[string]interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.rounds = append(l.rounds, round)
}

// Snapshot returns copies of the session and round logs.
func (l *Log) Snapshot() (sessions, rounds []map[string]interface{}) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	sessions = make([]map[string]interface{}, len(l.sessions))
	copy(sessions, l.sessions)
	rounds = make([]map[string]interface{}, len(l.rounds))
	copy(rounds, l.rounds)
	return sessions, rounds
}
