// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"strconv"
	"sync"
	"time"
)

// nsPerSecond and msPerSecond are the fixed-point units the performance
// counter frequency gets rescaled against.
const (
	nsPerSecond = 1_000_000_000
	msPerSecond = 1_000

	// maxCounterFreq is the contract of the platform performance counter
	// collaborator: its frequency must fit in 32 bits.
	maxCounterFreq = 1<<32 - 1
)

// Ticks is an absolute monotonic nanosecond timestamp, measured from this
// package's own reference point (clock.init). Two Ticks values are only
// meaningful relative to each other, never to wall-clock time.
type Ticks uint64

// NewTicks wraps a raw nanosecond count.
func NewTicks(ns uint64) Ticks { return Ticks(ns) }

// Val returns the raw nanosecond count.
func (t Ticks) Val() uint64 { return uint64(t) }

func (t Ticks) LT(u Ticks) bool { return t < u }
func (t Ticks) LE(u Ticks) bool { return t <= u }
func (t Ticks) GT(u Ticks) bool { return t > u }
func (t Ticks) GE(u Ticks) bool { return t >= u }
func (t Ticks) EQ(u Ticks) bool { return t == u }

// Add adds a nanosecond delta.
func (t Ticks) Add(d uint64) Ticks { return t + Ticks(d) }

// Sub returns the nanosecond difference t - u. The result is only
// meaningful when t >= u.
func (t Ticks) Sub(u Ticks) uint64 {
	if t < u {
		return 0
	}
	return uint64(t - u)
}

func (t Ticks) String() string { return strconv.FormatUint(uint64(t), 10) }

// clock holds the rational scalers used to convert raw performance-counter
// ticks into nanoseconds/milliseconds without overflowing 64 bits: num/den
// are reduced by their gcd with the counter frequency before being applied.
type clock struct {
	once      sync.Once
	tickStart uint64 // perfNow() sample at init, never zero
	numNS     uint64
	denNS     uint64
	numMS     uint64
	denMS     uint64
}

var defaultClock clock

// perfBase is the reference point perfNow measures from. It carries the
// runtime's monotonic clock reading, so time.Since(perfBase) is immune to
// wall-clock adjustments.
var perfBase = time.Now()

// perfNow stands in for the platform performance counter collaborator:
// the nanoseconds elapsed since perfBase on the runtime's monotonic clock,
// which is exactly the contract perf_now()/perf_freq() need: a monotonic
// integer counter with a fixed, known frequency (here, always nanoseconds,
// so perfFreq is always nsPerSecond).
func perfNow() uint64 { return uint64(time.Since(perfBase)) }

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// init is idempotent. It is safe to call from multiple goroutines:
// sync.Once guarantees every field below is written before any caller's
// Do returns, including concurrent callers that arrive while the first
// is still running.
func (c *clock) init() {
	c.once.Do(func() {
		const perfFreq = nsPerSecond
		if perfFreq > maxCounterFreq {
			// perf_freq() must fit in 32 bits. Unreachable with the fixed
			// nsPerSecond frequency used here, kept as a guard documenting
			// the invariant rather than silently trusting it.
			PANIC("performance counter frequency %d exceeds 32 bits\n", perfFreq)
		}

		g := gcd(nsPerSecond, perfFreq)
		c.numNS = nsPerSecond / g
		c.denNS = perfFreq / g

		g = gcd(msPerSecond, perfFreq)
		c.numMS = msPerSecond / g
		c.denMS = perfFreq / g

		start := perfNow()
		if start == 0 {
			start = 1
		}
		c.tickStart = start
	})
}

func (c *clock) nowNS() uint64 {
	c.init()
	elapsed := perfNow() - c.tickStart
	value := elapsed * c.numNS
	if value < elapsed {
		PANIC("tick-to-ns conversion overflowed: elapsed=%d num=%d\n",
			elapsed, c.numNS)
	}
	return value / c.denNS
}

func (c *clock) nowMS() uint64 {
	c.init()
	elapsed := perfNow() - c.tickStart
	value := elapsed * c.numMS
	if value < elapsed {
		PANIC("tick-to-ms conversion overflowed: elapsed=%d num=%d\n",
			elapsed, c.numMS)
	}
	return value / c.denMS
}

// TicksNS returns the current monotonic time in nanoseconds since this
// package was first used. It never goes backwards.
func TicksNS() uint64 { return defaultClock.nowNS() }

// TicksMS returns the current monotonic time in milliseconds since this
// package was first used.
func TicksMS() uint64 { return defaultClock.nowMS() }
