// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

//go:build !linux && !darwin

package timer

import (
	"runtime"
	"time"
)

// sysDelay is the portable fallback sleep primitive for platforms without
// a unix.Nanosleep. time.Sleep's own granularity becomes DelayPrecise's
// effective floor on these platforms.
func sysDelay(ns uint64) {
	if ns == 0 {
		runtime.Gosched()
		return
	}
	time.Sleep(time.Duration(ns))
}
