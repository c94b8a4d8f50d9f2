// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import (
	"math/rand"
	"sync"
	"testing"
	"time"
)

func TestTicksOps(t *testing.T) {
	testCases := []struct {
		a, b Ticks
	}{
		{NewTicks(0), NewTicks(0)},
		{NewTicks(1), NewTicks(2)},
		{NewTicks(100), NewTicks(50)},
		{NewTicks(1 << 40), NewTicks(1<<40 + 1)},
	}
	for _, tc := range testCases {
		if tc.a.LT(tc.b) != (tc.a.Val() < tc.b.Val()) {
			t.Errorf("LT(%v,%v) disagrees with Val comparison", tc.a, tc.b)
		}
		if tc.a.LE(tc.b) != (tc.a.Val() <= tc.b.Val()) {
			t.Errorf("LE(%v,%v) disagrees with Val comparison", tc.a, tc.b)
		}
		if tc.a.GT(tc.b) != (tc.a.Val() > tc.b.Val()) {
			t.Errorf("GT(%v,%v) disagrees with Val comparison", tc.a, tc.b)
		}
		if tc.a.GE(tc.b) != (tc.a.Val() >= tc.b.Val()) {
			t.Errorf("GE(%v,%v) disagrees with Val comparison", tc.a, tc.b)
		}
		if tc.a.EQ(tc.b) != (tc.a.Val() == tc.b.Val()) {
			t.Errorf("EQ(%v,%v) disagrees with Val comparison", tc.a, tc.b)
		}
	}
}

func TestTicksAddSubRandom(t *testing.T) {
	for i := 0; i < 1000; i++ {
		base := rand.Uint64() % (1 << 50)
		delta := rand.Uint64() % (1 << 40)
		a := NewTicks(base)
		b := a.Add(delta)
		if got := b.Sub(a); got != delta {
			t.Fatalf("Add/Sub roundtrip: base=%d delta=%d got=%d", base, delta, got)
		}
	}
}

func TestTicksSubSaturatesAtZero(t *testing.T) {
	a := NewTicks(5)
	b := NewTicks(10)
	if got := a.Sub(b); got != 0 {
		t.Errorf("Sub on a < b = %d, want 0", got)
	}
}

func TestGCD(t *testing.T) {
	cases := []struct {
		a, b, want uint64
	}{
		{12, 8, 4},
		{1_000_000_000, 1_000_000_000, 1_000_000_000},
		{1_000_000_000, 1, 1},
		{17, 5, 1},
	}
	for _, c := range cases {
		if got := gcd(c.a, c.b); got != c.want {
			t.Errorf("gcd(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

// TestTicksNSMonotonic checks that conversion never overflows and the
// clock never runs backwards under concurrent readers.
func TestTicksNSMonotonic(t *testing.T) {
	prev := TicksNS()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10000; i++ {
			TicksNS()
		}
	}()
	for i := 0; i < 10000; i++ {
		now := TicksNS()
		if now < prev {
			t.Fatalf("TicksNS went backwards: %d then %d", prev, now)
		}
		prev = now
	}
	<-done
}

// TestClockInitConcurrentFirstCall exercises a fresh clock (not
// defaultClock, which is initialized at most once per process) with many
// goroutines racing to be the one that runs init's body. Every goroutine
// must observe fully-populated scalers and a non-zero tickStart, never a
// half-initialized struct.
func TestClockInitConcurrentFirstCall(t *testing.T) {
	for i := 0; i < 50; i++ {
		var c clock
		var wg sync.WaitGroup
		results := make([]uint64, 20)
		for g := 0; g < 20; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				results[g] = c.nowNS()
			}(g)
		}
		wg.Wait()

		if c.tickStart == 0 {
			t.Fatal("tickStart still zero after concurrent init")
		}
		if c.numNS == 0 || c.denNS == 0 || c.numMS == 0 || c.denMS == 0 {
			t.Fatal("scalers still zero after concurrent init")
		}
	}
}

func TestTicksMSTracksNS(t *testing.T) {
	ns := TicksNS()
	ms := TicksMS()
	wantMS := ns / uint64(time.Millisecond)
	// Allow a small window for the two calls racing against real elapsed
	// time; they're not taken atomically together.
	diff := int64(ms) - int64(wantMS)
	if diff < -1 || diff > 1 {
		t.Errorf("TicksMS=%d far from TicksNS/1e6=%d", ms, wantMS)
	}
}
