// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"runtime"
	"sync/atomic"
)

// spinLock guards the pending and freelist heads (see scheduler.go).
// Hold times are a handful of pointer writes, so spinning is cheaper than
// parking a goroutine on a mutex, and producers never block for long
// regardless of how busy the worker is.
type spinLock struct {
	state uint32
}

const spinMaxBackoff = 16

func (sl *spinLock) Lock() {
	backoff := 1
	for !atomic.CompareAndSwapUint32(&sl.state, 0, 1) {
		for i := 0; i < backoff; i++ {
			runtime.Gosched()
		}
		if backoff < spinMaxBackoff {
			backoff <<= 1
		}
	}
}

func (sl *spinLock) Unlock() {
	atomic.StoreUint32(&sl.state, 0)
}
