// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package timer

// This file holds the singly-linked list primitives used by the scheduler's
// three timer lists (pending, timers, freelist). Unlike the doubly-linked,
// wheel-indexed lists this package's ancestor used, these lists carry only
// a next pointer: a live record is never on more than one of them at a
// time, so there is nothing a prev pointer would ever need to unlink
// concurrently.

// pushFront prepends t to the list rooted at *head. Used for the producer
// intake list and, within the worker, batches of reclaimed records.
func pushFront(head **timer, t *timer) {
	t.next = *head
	*head = t
}

// detachAll removes every element from the list rooted at *head and
// returns it as a standalone list, leaving *head empty.
func detachAll(head **timer) *timer {
	l := *head
	*head = nil
	return l
}

// insertSorted inserts t into the ascending-by-scheduled list rooted at
// *head. Ties are resolved FIFO: t is placed after every existing entry
// with an equal or earlier deadline.
func insertSorted(head **timer, t *timer) {
	var prev *timer
	curr := *head
	for curr != nil && curr.scheduled.LE(t.scheduled) {
		prev = curr
		curr = curr.next
	}
	t.next = curr
	if prev == nil {
		*head = t
	} else {
		prev.next = t
	}
}
