// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"sync/atomic"
)

// MSCallback is a millisecond-resolution timer handler. It receives the
// opaque userdata passed at registration, the timer's own id, and the
// interval (in milliseconds) it was last scheduled with, and returns the
// next interval: 0 unregisters the timer, any other value reschedules it
// relative to the tick at which it fired.
type MSCallback func(userdata interface{}, id uint32, intervalMS uint32) uint32

// NSCallback is the nanosecond-resolution equivalent of MSCallback.
type NSCallback func(userdata interface{}, id uint32, intervalNS uint64) uint64

// timer is the scheduler's internal record for one registered timer. Per
// contract, a live record is reachable from exactly one of the
// scheduler's three lists (pending, timers, freelist) at any time, or is
// transiently held on the worker's stack while firing; next is therefore
// always a single link, never shared across lists.
type timer struct {
	id uint32

	callbackMS MSCallback
	callbackNS NSCallback
	userdata   interface{}

	interval  uint64 // ns
	scheduled Ticks  // absolute monotonic deadline

	canceled atomic.Bool

	next *timer
}

// registryEntry is the registry's id -> timer mapping (registry.go). Its
// presence or absence in the registry is the linearization point for
// cancellation: once removed, no future fire can observe the id as live.
type registryEntry struct {
	id    uint32
	timer *timer
	next  *registryEntry
}
