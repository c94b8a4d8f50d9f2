// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"
)

var seed = flag.Int64("seed", 0, "seed for the random number generator (0: use current time)")

func TestMain(m *testing.M) {
	flag.Parse()
	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rand.Seed(s)
	fmt.Fprintf(os.Stderr, "using random seed %d (-seed=%d to reproduce)\n", s, s)
	os.Exit(m.Run())
}
