// Package platelock serializes ticket operations per license plate so the
// "one OPEN ticket per plate" and "CLOSED is terminal" invariants hold under
// concurrent branch traffic.
package platelock

import (
	"sync"
)

type entry struct {
	mu   sync.Mutex
	refs int
}

// Keyed is a mutex set keyed by license plate. Entries are created on first
// use and removed once no goroutine holds or waits on them.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*entry
}

func New() *Keyed {
	return &Keyed{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for the given plate, blocking until available
func (k *Keyed) Lock(plate string) {
	k.mu.Lock()
	e, ok := k.locks[plate]
	if !ok {
		e = &entry{}
		k.locks[plate] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for the given plate
func (k *Keyed) Unlock(plate string) {
	k.mu.Lock()
	e, ok := k.locks[plate]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(k.locks, plate)
		}
	}
	k.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}

// Len returns the number of plates currently locked or contended
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
