// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

//go:build !windows

package timer

// setSystemTimerResolution is a no-op outside Windows: every other
// platform this package targets already schedules at sub-millisecond
// granularity, so there is nothing to request.
func setSystemTimerResolution(periodMS int) error { return nil }

func revokeSystemTimerResolution(periodMS int) {}
