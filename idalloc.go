// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

import "sync/atomic"

// idAllocator stands in for the external object-id allocator collaborator:
// a source of fresh, non-zero 32-bit identifiers. It is a plain monotonic
// counter rather than a UUID generator (see DESIGN.md): ids only need to
// be dense, small, and non-zero, and a timer registry of a few hundred
// million entries would already be pathological.
type idAllocator struct {
	next atomic.Uint32
}

// nextID returns a fresh non-zero id. Wraparound (after ~4 billion ids)
// skips 0, the reserved sentinel; per spec this can never observably alias
// a still-live id in practice, since a registry's working set is always
// vastly smaller than 2^32.
func (a *idAllocator) nextID() uint32 {
	for {
		id := a.next.Add(1)
		if id != 0 {
			return id
		}
	}
}

var globalIDs idAllocator
