// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"sync"

	"github.com/kvtimer/timer/hints"
)

// initState is a two-phase init/quit gate, the Go-sized equivalent of
// SDL_timer.c's SDL_InitState: InitTimers is idempotent (a second call
// while already initialized is a no-op success), and QuitTimers only
// tears down what a prior successful InitTimers actually built.
type initState struct {
	mu          sync.Mutex
	initialized bool
}

var defaultInit initState

// defaultScheduler and defaultHints back the package-level convenience
// API with a single process-wide instance; tests that need an isolated
// scheduler should build one with NewScheduler instead.
var (
	defaultHints     = hints.NewRegistry()
	defaultScheduler = NewScheduler(defaultHints)
)

// InitTimers starts the process-wide scheduler's worker goroutine.
// Calling it again while already initialized is a no-op that returns
// nil.
func InitTimers() error {
	defaultInit.mu.Lock()
	defer defaultInit.mu.Unlock()
	if defaultInit.initialized {
		return nil
	}
	defaultScheduler.start()
	defaultInit.initialized = true
	return nil
}

// QuitTimers stops the process-wide scheduler and releases every timer
// it was holding, without running any of their callbacks one last time.
// Calling it before InitTimers, or twice in a row, is a no-op.
func QuitTimers() {
	defaultInit.mu.Lock()
	defer defaultInit.mu.Unlock()
	if !defaultInit.initialized {
		return
	}
	defaultScheduler.stop()
	defaultInit.initialized = false
}

// AddTimerMS registers a millisecond-resolution timer on the process-wide
// scheduler. See (*Scheduler).AddTimerMS.
func AddTimerMS(intervalMS uint32, cb MSCallback, userdata interface{}) uint32 {
	return defaultScheduler.AddTimerMS(intervalMS, cb, userdata)
}

// AddTimerNS registers a nanosecond-resolution timer on the process-wide
// scheduler. See (*Scheduler).AddTimerNS.
func AddTimerNS(intervalNS uint64, cb NSCallback, userdata interface{}) uint32 {
	return defaultScheduler.AddTimerNS(intervalNS, cb, userdata)
}

// RemoveTimer cancels id on the process-wide scheduler. See
// (*Scheduler).RemoveTimer.
func RemoveTimer(id uint32) bool {
	return defaultScheduler.RemoveTimer(id)
}
