// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

//go:build linux || darwin

package timer

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// sysDelay is the platform sleep primitive DelayPrecise builds on. ns == 0
// is a scheduler yield rather than a sleep request.
func sysDelay(ns uint64) {
	if ns == 0 {
		runtime.Gosched()
		return
	}
	ts := unix.NsecToTimespec(int64(ns))
	for {
		rem := unix.Timespec{}
		if err := unix.Nanosleep(&ts, &rem); err != unix.EINTR {
			return
		}
		ts = rem
	}
}
