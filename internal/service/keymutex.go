package service

import "sync"

// keyMutex serializes critical sections per string key. It backs the hard
// workload cap (keyed by technician id) and status transitions (keyed by
// ticket id), so concurrent check-then-act sequences on the same entity
// cannot interleave.
type keyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyMutex() *keyMutex {
	return &keyMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use. Entries are kept
// for the process lifetime; the key space (entity ids) is bounded in practice.
func (k *keyMutex) Lock(key string) {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()
	lock.Lock()
}

// Unlock releases the mutex for key.
func (k *keyMutex) Unlock(key string) {
	k.mu.Lock()
	lock, ok := k.locks[key]
	k.mu.Unlock()
	if ok {
		lock.Unlock()
	}
}
