// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"github.com/intuitivelabs/slog"
)

// Log is this package's logger instance. Use slog.SetLevel(&Log, ...) to
// change the reporting level at runtime (e.g. from a test).
var Log slog.Log

func DBGon() bool  { return Log.DBGon() }
func WARNon() bool { return Log.WARNon() }
func ERRon() bool  { return Log.ERRon() }

func DBG(f string, args ...interface{})  { Log.DBG(f, args...) }
func WARN(f string, args ...interface{}) { Log.WARN(f, args...) }
func ERR(f string, args ...interface{})  { Log.ERR(f, args...) }

// BUG logs an internal-invariant violation and continues; it never panics.
func BUG(f string, args ...interface{}) { Log.BUG(f, args...) }

// PANIC logs an internal-invariant violation and then panics.
func PANIC(f string, args ...interface{}) { Log.PANIC(f, args...) }
