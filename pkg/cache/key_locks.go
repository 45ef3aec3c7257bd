package cache

import "sync"

type keyLock struct {
	sync.Mutex
	refs int
}

// keyLocks serializes access to single keys. Entries live only while
// somebody holds or waits for them.
type keyLocks struct {
	lock  sync.Mutex
	locks map[string]*keyLock
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*keyLock)}
}

func (l *keyLocks) acquire(key string) {
	l.lock.Lock()
	kl := l.reference(key)
	l.lock.Unlock()

	kl.Lock()
}

// tryAcquire does not wait for a key held by somebody else.
func (l *keyLocks) tryAcquire(key string) bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	kl := l.reference(key)
	if kl.TryLock() {
		return true
	}

	l.dereference(key, kl)
	return false
}

func (l *keyLocks) release(key string) {
	l.lock.Lock()
	defer l.lock.Unlock()

	kl := l.locks[key]
	kl.Unlock()
	l.dereference(key, kl)
}

func (l *keyLocks) reference(key string) *keyLock {
	kl, exists := l.locks[key]
	if !exists {
		kl = &keyLock{}
		l.locks[key] = kl
	}

	kl.refs++
	return kl
}

func (l *keyLocks) dereference(key string, kl *keyLock) {
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}
