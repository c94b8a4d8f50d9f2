// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"strconv"
	"sync"

	"github.com/intuitivelabs/timestamp"
	"github.com/kvtimer/timer/hints"
)

// HintTimerResolution is the hint name the resolution controller watches.
// Its value is the requested scheduler wakeup period in milliseconds;
// unset or empty requests the platform's finest available resolution (1ms).
const HintTimerResolution = "TIMER_RESOLUTION"

// resolutionController keeps the platform's timer resolution matched to
// the last value seen on HintTimerResolution, installing and revoking the
// platform request as the hint changes.
type resolutionController struct {
	registry *hints.Registry
	sub      hints.Subscription

	mu         sync.Mutex
	installed  int // currently installed period in ms, 0 = none installed
	lastChange timestamp.TS
	changed    bool
}

func newResolutionController(r *hints.Registry) *resolutionController {
	rc := &resolutionController{registry: r}
	rc.sub = r.Subscribe(HintTimerResolution, rc.onChange)
	return rc
}

func (rc *resolutionController) onChange(name, oldValue, newValue string) {
	period := parseResolutionHint(newValue)

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if period == rc.installed {
		return
	}

	now := timestamp.Now()
	if DBGon() && rc.changed {
		DBG("%s changing to %q, %s after the previous change\n",
			HintTimerResolution, newValue, now.Sub(rc.lastChange))
	}

	if rc.installed != 0 {
		revokeSystemTimerResolution(rc.installed)
		rc.installed = 0
	}
	if period != 0 {
		if err := setSystemTimerResolution(period); err != nil {
			if WARNon() {
				WARN("set system timer resolution to %dms failed: %s\n", period, err)
			}
			rc.lastChange = now
			rc.changed = true
			return
		}
		rc.installed = period
	}
	rc.lastChange = now
	rc.changed = true
}

// close revokes any currently installed resolution request and stops
// watching the hint. Called once at shutdown.
func (rc *resolutionController) close() {
	rc.registry.Unsubscribe(rc.sub)
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.installed != 0 {
		revokeSystemTimerResolution(rc.installed)
		rc.installed = 0
	}
}

// parseResolutionHint parses a HintTimerResolution value, defaulting to
// 1ms on empty or unparseable input.
func parseResolutionHint(v string) int {
	if v == "" {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 1
	}
	return n
}
