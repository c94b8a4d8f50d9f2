// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package hints implements a small key/value string registry with
// change-callback subscription, standing in for this timer service's
// external hint subsystem collaborator.
package hints

import "sync"

// ChangeFunc is invoked whenever a hint's value changes, or once
// immediately upon Subscribe, with name, its previous value (equal to
// newValue on the initial call) and its new value.
type ChangeFunc func(name, oldValue, newValue string)

type subscription struct {
	id int
	cb ChangeFunc
}

// Subscription identifies a registered callback so it can later be
// removed with Unsubscribe.
type Subscription struct {
	name string
	id   int
}

// Registry is a key/value string store with per-key change notification.
// The zero value is not usable; construct one with NewRegistry.
type Registry struct {
	mu     sync.Mutex
	values map[string]string
	subs   map[string][]subscription
	nextID int
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		values: make(map[string]string),
		subs:   make(map[string][]subscription),
	}
}

// Get returns name's current value, or "" if it has never been set.
func (r *Registry) Get(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[name]
}

// Set updates name's value and synchronously runs every subscriber
// registered for it. A Set that doesn't change the value is a no-op.
func (r *Registry) Set(name, value string) {
	r.mu.Lock()
	old := r.values[name]
	if old == value {
		r.mu.Unlock()
		return
	}
	r.values[name] = value
	subs := append([]subscription(nil), r.subs[name]...)
	r.mu.Unlock()

	for _, s := range subs {
		s.cb(name, old, value)
	}
}

// Subscribe registers cb to run whenever name's value changes. cb also
// runs once immediately, synchronously, with the value current at
// registration time (old == new), so a subscriber never has to special
// case "value not set yet".
func (r *Registry) Subscribe(name string, cb ChangeFunc) Subscription {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[name] = append(r.subs[name], subscription{id: id, cb: cb})
	current := r.values[name]
	r.mu.Unlock()

	cb(name, current, current)
	return Subscription{name: name, id: id}
}

// Unsubscribe removes a previously registered callback. Unsubscribing an
// already-removed or zero Subscription is a no-op.
func (r *Registry) Unsubscribe(s Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.subs[s.name]
	for i, sub := range list {
		if sub.id == s.id {
			r.subs[s.name] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}
