// Package notify carries transient user-facing notices raised while handling
// one request.
package notify

import (
	"strings"
	"sync"
)

// Level classifies notice presentation.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case LevelSuccess, LevelInfo, LevelWarning, LevelError:
		return true
	default:
		return false
	}
}

// Notice is one already-translated message.
type Notice struct {
	Message string
	Level   Level
}

// Sink accepts notices. Adding never blocks and never fails.
type Sink interface {
	Add(message string, level Level)
}

// Queue is an append-only Sink safe for concurrent use. It does not
// deduplicate or expire notices.
type Queue struct {
	mu      sync.Mutex
	notices []Notice
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add appends one notice. Blank messages are dropped.
func (q *Queue) Add(message string, level Level) {
	if q == nil {
		return
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	if !level.Valid() {
		level = LevelInfo
	}
	q.mu.Lock()
	q.notices = append(q.notices, Notice{Message: message, Level: level})
	q.mu.Unlock()
}

// Len returns the number of pending notices.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.notices)
}

// Notices returns a copy of the pending notices in insertion order.
func (q *Queue) Notices() []Notice {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notice, len(q.notices))
	copy(out, q.notices)
	return out
}

// Drain returns the pending notices and empties the queue.
func (q *Queue) Drain() []Notice {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.notices
	q.notices = nil
	return out
}
