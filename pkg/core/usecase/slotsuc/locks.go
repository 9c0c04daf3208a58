// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc

import (
	"sync"

	"github.com/google/uuid"
)

// areaLocks is a set of mutexes keyed by the parking area IDs.
// Entries are reference counted and dropped when no goroutine holds
// or waits for them, so the set does not grow with the number of
// visited areas.
type areaLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*areaLock
}

type areaLock struct {
	sync.Mutex
	refs int
}

// lock blocks until the id area is exclusively held by the caller.
// The returned function releases it and must be called exactly once.
func (al *areaLocks) lock(id uuid.UUID) (unlock func()) {
	al.mu.Lock()
	if al.locks == nil {
		al.locks = make(map[uuid.UUID]*areaLock)
	}
	l, ok := al.locks[id]
	if !ok {
		l = &areaLock{}
		al.locks[id] = l
	}
	l.refs++
	al.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		al.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(al.locks, id)
		}
		al.mu.Unlock()
	}
}
