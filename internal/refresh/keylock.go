package refresh

import "sync"

// keyedLocks serializes work per client so concurrent triggers for the
// same client coalesce into freshest-wins re-scans instead of racing
// scan-then-replace cycles. Entries are reference-counted and removed
// when the last holder releases, so the map does not grow with the
// client population.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[int64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[int64]*lockEntry)}
}

// Lock blocks until the per-key lock is held and returns the matching
// unlock function.
func (k *keyedLocks) Lock(key int64) (unlock func()) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &lockEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
