// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import "time"

// shortSleep is the minimum sleep duration guaranteed to produce a real
// sleep (rather than a spin) on every platform this package supports.
const shortSleep = uint64(time.Millisecond)

// Delay sleeps for at least ms milliseconds. Best effort: the platform
// sleep primitive may oversleep by an arbitrary, platform-dependent amount.
func Delay(ms uint32) { sysDelay(uint64(ms) * uint64(time.Millisecond)) }

// DelayNS sleeps for at least ns nanoseconds. Best effort, see Delay.
func DelayNS(ns uint64) { sysDelay(ns) }

// DelayPrecise sleeps for at least ns nanoseconds using an adaptive
// algorithm that trades CPU for accuracy as the deadline approaches: long
// coarse sleeps while there's plenty of time to spare, shrinking to 1ms
// sleeps, then zero-duration yields, then a tight busy spin for the last
// fraction of a millisecond.
func DelayPrecise(ns uint64) {
	current := TicksNS()
	target := current + ns

	if ns <= 2*shortSleep {
		spinToDeadline(current, target)
		return
	}

	// Step 1: coarse, iteratively-shrinking undershoot sleeps. Tracks the
	// largest overshoot seen this loop (reset whenever it would exceed the
	// current target, since long-term overshoot isn't a stable quantity).
	targetSleep := ns / 10
	maxOvershoot := uint64(0)
	if targetSleep >= 10*shortSleep {
		currentSleep := targetSleep - shortSleep
		for currentSleep >= 10*shortSleep && current+targetSleep+10*shortSleep < target {
			sysDelay(currentSleep)
			now := TicksNS()
			if now >= target {
				return
			}
			overshoot := (now - current) - currentSleep
			if overshoot > maxOvershoot {
				maxOvershoot = overshoot
			}
			if maxOvershoot >= targetSleep {
				maxOvershoot = 0
			}
			current = now
			if current+targetSleep+10*shortSleep > target {
				for targetSleep > shortSleep && current+targetSleep+10*shortSleep > target {
					targetSleep /= 10
				}
				if targetSleep <= shortSleep {
					break
				}
				if maxOvershoot >= targetSleep {
					maxOvershoot = 0
				}
			}
			currentSleep = targetSleep - maxOvershoot
		}
	}

	// Step 2: 1ms sleeps, trying to undershoot the deadline. Retains
	// maxSleep across iterations (the only step that does) so the loop
	// knows when the deadline is within one observed sleep's reach.
	maxSleep := shortSleep
	if maxOvershoot < maxSleep {
		maxSleep += maxOvershoot
	}
	for current+maxSleep < target {
		sysDelay(shortSleep)
		now := TicksNS()
		if now >= target {
			return
		}
		if next := now - current; next > maxSleep {
			maxSleep = next
		}
		current = now
	}

	// Step 3: 1ms sleeps, accepting that we may now overshoot.
	for current+2*shortSleep < target {
		sysDelay(shortSleep)
		current = TicksNS()
		if current >= target {
			return
		}
	}

	spinToDeadline(current, target)
}

// spinToDeadline runs steps 4 (yield spin) and 5 (busy spin).
func spinToDeadline(current, target uint64) {
	for current+shortSleep < target {
		sysDelay(0)
		current = TicksNS()
	}
	for current < target {
		current = TicksNS()
	}
}
