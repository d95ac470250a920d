package service

import "sync"

// userLocks serializes game mutations per user. A user has at most one
// active session, so locking the user id is equivalent to locking the
// session while also covering session creation, where no session id exists
// yet. Locks are never removed; the map grows by one small entry per user
// seen by this process.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the user's mutex and returns the matching unlock.
func (l *userLocks) lock(userID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
