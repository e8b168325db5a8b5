package booking

import "sync"

// providerLocks serializes conflict-check-and-insert per provider. Holding the
// provider's lock across the check and the write closes the check-then-act
// race between concurrent creates for the same slot; the partial unique index
// on the booking collection backs this up across processes.
type providerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newProviderLocks() *providerLocks {
	return &providerLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given provider, creating it on first use.
func (pl *providerLocks) Lock(providerID string) {
	pl.mu.Lock()
	lock, ok := pl.locks[providerID]
	if !ok {
		lock = &sync.Mutex{}
		pl.locks[providerID] = lock
	}
	pl.mu.Unlock()
	lock.Lock()
}

// Unlock releases the mutex for the given provider.
func (pl *providerLocks) Unlock(providerID string) {
	pl.mu.Lock()
	lock := pl.locks[providerID]
	pl.mu.Unlock()
	if lock != nil {
		lock.Unlock()
	}
}
