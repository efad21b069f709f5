package matchdayservice

import (
	"sync"
	"time"
)

const (
	// lockCleanupThreshold is the minimum map size before a cleanup pass runs.
	lockCleanupThreshold = 100
	// lockMaxIdleAge is the duration after which an idle lock entry is
	// eligible for cleanup.
	lockMaxIdleAge = 30 * time.Minute
)

type lockEntry struct {
	mu       sync.Mutex
	lastSeen time.Time
}

// matchdayLocks serializes mutations per matchday, pruning stale entries
// inline the same way the IP rate limiter prunes idle addresses.
type matchdayLocks struct {
	mu      sync.Mutex
	entries map[int64]*lockEntry
}

func newMatchdayLocks() *matchdayLocks {
	return &matchdayLocks{
		entries: make(map[int64]*lockEntry),
	}
}

// lock acquires the mutex for the given matchday and returns its unlock func.
func (l *matchdayLocks) lock(matchdayID int64) func() {
	l.mu.Lock()

	if len(l.entries) > lockCleanupThreshold {
		cutoff := time.Now().Add(-lockMaxIdleAge)
		for id, e := range l.entries {
			if e.lastSeen.Before(cutoff) && e.mu.TryLock() {
				e.mu.Unlock()
				delete(l.entries, id)
			}
		}
	}

	e, ok := l.entries[matchdayID]
	if !ok {
		e = &lockEntry{}
		l.entries[matchdayID] = e
	}
	e.lastSeen = time.Now()
	l.mu.Unlock()

	e.mu.Lock()
	return e.mu.Unlock
}
