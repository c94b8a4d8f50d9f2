// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"sync"
	"time"
)

// timermap is the id -> *timer lookup the scheduler maintains under its
// own mutex. An id's presence or absence here is the linearization point
// for cancellation: once remove has taken the entry out, no future fire
// of that id can be observed, no matter where its record still
// physically sits in pending or timers.
type timermap struct {
	mu      sync.Mutex
	entries *registryEntry
}

func (m *timermap) insert(id uint32, t *timer) {
	m.mu.Lock()
	e := &registryEntry{id: id, timer: t, next: m.entries}
	m.entries = e
	m.mu.Unlock()
}

func (m *timermap) remove(id uint32) *timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	var prev *registryEntry
	e := m.entries
	for e != nil {
		if e.id == id {
			if prev == nil {
				m.entries = e.next
			} else {
				prev.next = e.next
			}
			return e.timer
		}
		prev = e
		e = e.next
	}
	return nil
}

// popFreelist removes and returns the head of the freelist rooted at
// *head, or nil if it's empty.
func popFreelist(head **timer) *timer {
	t := *head
	if t != nil {
		*head = t.next
		t.next = nil
	}
	return t
}

// removeInternal unregisters id and marks its record canceled, so the
// worker recycles it the next time it would otherwise fire. Shared by the
// public RemoveTimer and the worker's own natural-expiry cleanup.
func (s *Scheduler) removeInternal(id uint32) *timer {
	t := s.timermap.remove(id)
	if t != nil {
		t.canceled.Store(true)
	}
	return t
}

// addTimer validates the request, reuses a freelist record when one is
// available, assigns a fresh id and publishes the record onto pending.
func (s *Scheduler) addTimer(intervalNS uint64, cbMS MSCallback, cbNS NSCallback, userdata interface{}) (uint32, error) {
	if (cbMS == nil) == (cbNS == nil) {
		return 0, ErrInvalidParameters
	}
	if !s.active.Load() {
		return 0, ErrNotRunning
	}

	s.spin.Lock()
	t := popFreelist(&s.freelist)
	s.spin.Unlock()

	if t != nil {
		// Defensive: a reused record's previous id should already be gone
		// from the registry (it was removed before being recycled), but
		// cancel it again in case a caller is still holding it (see
		// DESIGN.md Open Question).
		s.removeInternal(t.id)
		*t = timer{}
	} else {
		t = &timer{}
	}

	id := globalIDs.nextID()
	now := TicksNS()

	t.id = id
	t.callbackMS = cbMS
	t.callbackNS = cbNS
	t.userdata = userdata
	t.interval = intervalNS
	t.scheduled = NewTicks(now + intervalNS)

	s.timermap.insert(id, t)

	s.spin.Lock()
	pushFront(&s.pending, t)
	s.spin.Unlock()

	s.sem.post()
	return id, nil
}

// AddTimerMS registers a millisecond-resolution periodic/one-shot timer
// and returns its id, or 0 on failure (invalid parameters, or the
// scheduler isn't running).
func (s *Scheduler) AddTimerMS(intervalMS uint32, cb MSCallback, userdata interface{}) uint32 {
	if cb == nil {
		if ERRon() {
			ERR("AddTimerMS: invalid parameters\n")
		}
		return 0
	}
	id, err := s.addTimer(uint64(intervalMS)*uint64(time.Millisecond), cb, nil, userdata)
	if err != nil {
		if ERRon() {
			ERR("AddTimerMS: %s\n", err)
		}
		return 0
	}
	return id
}

// AddTimerNS is the nanosecond-resolution equivalent of AddTimerMS.
func (s *Scheduler) AddTimerNS(intervalNS uint64, cb NSCallback, userdata interface{}) uint32 {
	if cb == nil {
		if ERRon() {
			ERR("AddTimerNS: invalid parameters\n")
		}
		return 0
	}
	id, err := s.addTimer(intervalNS, nil, cb, userdata)
	if err != nil {
		if ERRon() {
			ERR("AddTimerNS: %s\n", err)
		}
		return 0
	}
	return id
}

// RemoveTimer cancels id. It reports whether id was still registered;
// RemoveTimer on an already-fired one-shot, an already-removed id, or an
// unknown id all return false.
func (s *Scheduler) RemoveTimer(id uint32) bool {
	return s.removeInternal(id) != nil
}
