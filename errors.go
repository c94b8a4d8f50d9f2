// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"errors"
)

var ErrInvalidParameters = errors.New("invalid parameters")
var ErrAllocFailed = errors.New("timer allocation failed")
var ErrNotFound = errors.New("timer not found")
var ErrAlreadyCanceled = errors.New("timer already canceled")
var ErrInitFailed = errors.New("timer service initialization failed")
var ErrNotRunning = errors.New("timer service not running")
