// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/kvtimer/timer/hints"
)

// cacheLinePad separates the registry's mutex-guarded fields from the
// producer-facing spinlock/semaphore fields below them, so a producer
// spinning on the lock never bounces the cache line the registry's mutex
// lives on back and forth.
const cacheLinePad = 64

// semaphore is a binary counting semaphore: post never blocks and never
// raises the count above one pending wakeup, and wait/waitTimeout consume
// at most one post per call. Built directly on a buffered channel rather
// than a library semaphore.
type semaphore struct {
	ch chan struct{}
}

func newSemaphore() *semaphore {
	return &semaphore{ch: make(chan struct{}, 1)}
}

// post wakes one waiter if one is sleeping, or leaves a single wakeup
// pending if none is. Never blocks.
func (s *semaphore) post() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// wait blocks until a post arrives.
func (s *semaphore) wait() {
	<-s.ch
}

// waitTimeout blocks until a post arrives or d elapses, whichever is
// first, and reports which happened. d <= 0 polls without blocking.
func (s *semaphore) waitTimeout(d time.Duration) bool {
	if d <= 0 {
		select {
		case <-s.ch:
			return true
		default:
			return false
		}
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-s.ch:
		return true
	case <-t.C:
		return false
	}
}

// Scheduler is a process-wide timer service: an intake side producers
// call concurrently (AddTimerMS/AddTimerNS/RemoveTimer), and a single
// background worker goroutine that fires due timers in deadline order.
// The zero value is not usable; construct one with NewScheduler.
type Scheduler struct {
	timermap timermap

	_ [cacheLinePad]byte

	spin     spinLock
	pending  *timer
	freelist *timer
	sem      *semaphore

	active atomic.Bool
	wg     sync.WaitGroup
	timers *timer // worker-private: only the worker goroutine ever touches it

	hintRegistry *hints.Registry
	resolution   *resolutionController
}

// NewScheduler builds an idle Scheduler watching r for resolution hints.
// r may be nil, in which case the scheduler never adjusts the platform
// timer resolution.
func NewScheduler(r *hints.Registry) *Scheduler {
	s := &Scheduler{sem: newSemaphore(), hintRegistry: r}
	return s
}

// start launches the worker goroutine. Callers must not call start twice
// on the same Scheduler without an intervening stop.
func (s *Scheduler) start() {
	if s.hintRegistry != nil {
		s.resolution = newResolutionController(s.hintRegistry)
	}
	s.active.Store(true)
	s.wg.Add(1)
	go s.run()
}

// stop signals the worker to exit, waits for it to do so, then frees
// every record reachable from pending, timers and freelist. Callbacks in
// the worker's current fire pass complete before stop returns; once the
// worker observes the stop it fires nothing more, and timers still queued
// at shutdown simply never run (see DESIGN.md).
func (s *Scheduler) stop() {
	s.active.Store(false)
	s.sem.post()
	s.wg.Wait()

	if s.resolution != nil {
		s.resolution.close()
		s.resolution = nil
	}

	s.spin.Lock()
	s.pending = nil
	s.freelist = nil
	s.spin.Unlock()
	s.timers = nil
}

func (s *Scheduler) run() {
	defer s.wg.Done()
	for {
		if !s.active.Load() {
			return
		}

		s.spin.Lock()
		incoming := detachAll(&s.pending)
		s.spin.Unlock()

		for incoming != nil {
			next := incoming.next
			incoming.next = nil
			insertSorted(&s.timers, incoming)
			incoming = next
		}

		now := TicksNS()
		var localFree *timer
		for s.timers != nil && s.timers.scheduled.Val() <= now {
			t := s.timers
			s.timers = t.next
			t.next = nil
			s.fire(t, now, &localFree)
		}
		if localFree != nil {
			s.spin.Lock()
			tail := localFree
			for tail.next != nil {
				tail = tail.next
			}
			tail.next = s.freelist
			s.freelist = localFree
			s.spin.Unlock()
		}

		if !s.active.Load() {
			return
		}

		if s.timers != nil {
			// The wait must account for time spent running callbacks
			// above: re-sample the clock rather than reuse the
			// pre-fire now, or a slow callback pushes every
			// subsequent wakeup late by its own running time.
			elapsed := TicksNS() - now
			deadline := s.timers.scheduled.Val()
			var d time.Duration
			if deadline > now+elapsed {
				d = time.Duration(deadline - now - elapsed)
			}
			s.sem.waitTimeout(d)
		} else {
			s.sem.wait()
		}
	}
}

// fire invokes t's callback, unless it was canceled after being popped
// from timers but before reaching here. Non-zero returns reschedule t
// in place (no lock needed: timers is worker-private); zero returns, or
// a cancellation observed either before or after the callback ran, hand
// t to localFree for later recycling.
func (s *Scheduler) fire(t *timer, now uint64, localFree **timer) {
	if t.canceled.Load() {
		pushFront(localFree, t)
		return
	}

	next := s.invoke(t)

	if next == 0 || t.canceled.Load() {
		s.removeInternal(t.id)
		pushFront(localFree, t)
		return
	}

	t.interval = next
	t.scheduled = NewTicks(now + next)
	insertSorted(&s.timers, t)
}

func (s *Scheduler) invoke(t *timer) uint64 {
	if t.callbackMS != nil {
		intervalMS := uint32(t.interval / uint64(time.Millisecond))
		ms := t.callbackMS(t.userdata, t.id, intervalMS)
		return uint64(ms) * uint64(time.Millisecond)
	}
	return t.callbackNS(t.userdata, t.id, t.interval)
}
