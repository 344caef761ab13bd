package usecase

import "sync"

// learnerLocks serializes work per learner within this process. Entries are
// dropped once nobody holds or waits for them.
type learnerLocks struct {
	mu    sync.Mutex
	locks map[string]*learnerLock
}

type learnerLock struct {
	mu   sync.Mutex
	refs int
}

func newLearnerLocks() *learnerLocks {
	return &learnerLocks{locks: make(map[string]*learnerLock)}
}

// lock blocks until the learner is free and returns the unlock function.
func (l *learnerLocks) lock(learnerID string) func() {
	l.mu.Lock()
	ll, ok := l.locks[learnerID]
	if !ok {
		ll = &learnerLock{}
		l.locks[learnerID] = ll
	}
	ll.refs++
	l.mu.Unlock()

	ll.mu.Lock()
	return func() {
		ll.mu.Unlock()

		l.mu.Lock()
		ll.refs--
		if ll.refs == 0 {
			delete(l.locks, learnerID)
		}
		l.mu.Unlock()
	}
}
