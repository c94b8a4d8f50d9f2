// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

//go:build windows

package timer

import "golang.org/x/sys/windows"

var winmm = windows.NewLazySystemDLL("winmm.dll")

var (
	procTimeBeginPeriod = winmm.NewProc("timeBeginPeriod")
	procTimeEndPeriod   = winmm.NewProc("timeEndPeriod")
)

// setSystemTimerResolution asks the OS scheduler for periodMS-granularity
// wakeups, the only platform in this package's support matrix where the
// default resolution (typically ~15.6ms) is coarse enough to matter.
func setSystemTimerResolution(periodMS int) error {
	r, _, _ := procTimeBeginPeriod.Call(uintptr(periodMS))
	if r != 0 {
		return ErrInitFailed
	}
	return nil
}

func revokeSystemTimerResolution(periodMS int) {
	procTimeEndPeriod.Call(uintptr(periodMS))
}
