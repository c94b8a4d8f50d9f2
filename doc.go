// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package timer provides a process-wide timer service: any number of
// producer goroutines may schedule one-shot or periodic callbacks at
// nanosecond-resolution monotonic deadlines, while a single background
// worker goroutine dispatches them in time order.
//
// Producers hand off new timers to the worker through a lock-free pending
// list guarded by a spinlock; the worker owns a sorted deadline list and is
// the only goroutine that ever mutates it. Cancellation never blocks: it
// detaches a timer's public registry entry and flips an atomic flag, and
// the worker reclaims the record (onto a freelist for reuse) the next time
// it walks past it.
//
// Package-level functions (AddTimerMS, AddTimerNS, RemoveTimer, ...) operate
// on a single process-wide Scheduler, mirroring the global timer facility
// this package is modeled after. The Scheduler type is also exported
// directly for tests and for callers that want an independent instance.
package timer

const NAME = "timer"
