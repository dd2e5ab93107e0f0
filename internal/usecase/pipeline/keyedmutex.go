package pipeline

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex serializes pipeline runs per meeting. Two runs for the
// same meeting never execute concurrently; runs for different meetings
// are independent.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*entry)}
}

// Lock acquires the mutex for a key, creating it on first use.
func (k *keyedMutex) Lock(key uuid.UUID) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for a key and frees it once no run is
// waiting on it.
func (k *keyedMutex) Unlock(key uuid.UUID) {
	k.mu.Lock()
	e := k.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
