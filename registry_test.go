// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"testing"
	"time"
)

func TestTimermapInsertRemove(t *testing.T) {
	var m timermap
	rec := &timer{id: 42}
	m.insert(42, rec)

	if got := m.remove(42); got != rec {
		t.Fatalf("remove returned %v, want %v", got, rec)
	}
	if got := m.remove(42); got != nil {
		t.Fatalf("second remove returned %v, want nil", got)
	}
}

func TestTimermapRemoveUnknown(t *testing.T) {
	var m timermap
	if got := m.remove(1); got != nil {
		t.Fatalf("remove on empty map = %v, want nil", got)
	}
}

func TestTimermapMultipleEntries(t *testing.T) {
	var m timermap
	a := &timer{id: 1}
	b := &timer{id: 2}
	c := &timer{id: 3}
	m.insert(1, a)
	m.insert(2, b)
	m.insert(3, c)

	if got := m.remove(2); got != b {
		t.Fatalf("remove(2) = %v, want %v", got, b)
	}
	if got := m.remove(1); got != a {
		t.Fatalf("remove(1) = %v, want %v", got, a)
	}
	if got := m.remove(3); got != c {
		t.Fatalf("remove(3) = %v, want %v", got, c)
	}
}

func TestAddTimerRejectsMissingCallback(t *testing.T) {
	s := NewScheduler(nil)
	s.active.Store(true)
	defer s.active.Store(false)

	if id := s.AddTimerMS(10, nil, nil); id != 0 {
		t.Errorf("AddTimerMS with nil callback = %d, want 0", id)
	}
}

// A zero interval is not an invalid parameter: spec.md's add_timer_ns only
// rejects a missing callback, and SDL_CreateTimer itself accepts
// interval == 0 as "fire immediately, once". Mirrors TestOneShotFiresOnce
// in scheduler_test.go but at interval 0.
func TestAddTimerAcceptsZeroInterval(t *testing.T) {
	s := newRunningScheduler(t)

	done := make(chan struct{})
	if id := s.AddTimerMS(0, func(interface{}, uint32, uint32) uint32 {
		close(done)
		return 0
	}, nil); id == 0 {
		t.Fatal("AddTimerMS with a zero interval was rejected")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("zero-interval timer never fired")
	}

	if id := s.AddTimerNS(0, func(interface{}, uint32, uint64) uint64 { return 0 }, nil); id == 0 {
		t.Error("AddTimerNS with a zero interval was rejected")
	}
}

func TestAddTimerNotRunning(t *testing.T) {
	s := NewScheduler(nil)
	id := s.AddTimerMS(10, func(interface{}, uint32, uint32) uint32 { return 0 }, nil)
	if id != 0 {
		t.Errorf("AddTimerMS on a scheduler that was never started = %d, want 0", id)
	}
}

func TestAddTimerAssignsDistinctNonZeroIDs(t *testing.T) {
	s := NewScheduler(nil)
	s.active.Store(true)
	defer s.active.Store(false)

	seen := map[uint32]bool{}
	for i := 0; i < 100; i++ {
		id, err := s.addTimer(uint64(time.Millisecond), nil, func(interface{}, uint32, uint64) uint64 { return 0 }, nil)
		if err != nil {
			t.Fatalf("addTimer: %v", err)
		}
		if id == 0 {
			t.Fatal("addTimer returned reserved id 0")
		}
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
}

func TestRemoveTimerUnknown(t *testing.T) {
	s := NewScheduler(nil)
	if s.RemoveTimer(12345) {
		t.Error("RemoveTimer on an unknown id returned true")
	}
}

func TestRemoveTimerTwice(t *testing.T) {
	s := NewScheduler(nil)
	s.active.Store(true)
	defer s.active.Store(false)

	id, err := s.addTimer(uint64(time.Hour), nil, func(interface{}, uint32, uint64) uint64 { return 0 }, nil)
	if err != nil {
		t.Fatalf("addTimer: %v", err)
	}
	if !s.RemoveTimer(id) {
		t.Fatal("first RemoveTimer returned false")
	}
	if s.RemoveTimer(id) {
		t.Fatal("second RemoveTimer on the same id returned true")
	}
}
