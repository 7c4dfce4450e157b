// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"sync"

	"github.com/ava-labs/avalanchego/utils/maybe"
)

// TState accumulates the changes of committed views until they are written
// out to the database in a single batch.
type TState struct {
	l           sync.RWMutex
	changedKeys map[string]maybe.Maybe[[]byte]
	ops         int
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(changedSize int) *TState {
	return &TState{
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) getChangedValue(key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// PendingChanges returns the number of keys changed by committed views.
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// OpIndex returns the number of operations committed into [TState].
func (ts *TState) OpIndex() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return ts.ops
}

// ChangedKeys returns a copy of every change committed into [TState]. A
// [maybe.Nothing] value marks a deleted key.
func (ts *TState) ChangedKeys() map[string]maybe.Maybe[[]byte] {
	ts.l.RLock()
	defer ts.l.RUnlock()

	out := make(map[string]maybe.Maybe[[]byte], len(ts.changedKeys))
	for k, v := range ts.changedKeys {
		out[k] = v
	}
	return out
}
