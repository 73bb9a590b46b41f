package storage

import "sync"

// Locker serializes mutations per session. Different sessions do not contend.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewLocker creates a new session locker
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*sessionLock)}
}

// Lock blocks until the session is free and returns the matching unlock.
func (l *Locker) Lock(session string) func() {
	l.mu.Lock()
	sl, ok := l.locks[session]
	if !ok {
		sl = &sessionLock{}
		l.locks[session] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()

	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, session)
		}
		l.mu.Unlock()
	}
}

// Len returns how many sessions currently hold or wait on a lock.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
