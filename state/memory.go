// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
)

var _ Mutable = (*Memory)(nil)

// Memory is a map backed store. It backs the ledger when no data directory
// is configured and is the base state for most tests.
type Memory struct {
	l       sync.RWMutex
	storage map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{storage: make(map[string][]byte)}
}

func (m *Memory) GetValue(_ context.Context, key []byte) ([]byte, error) {
	m.l.RLock()
	defer m.l.RUnlock()

	v, ok := m.storage[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return v, nil
}

func (m *Memory) Insert(_ context.Context, key []byte, value []byte) error {
	m.l.Lock()
	defer m.l.Unlock()

	m.storage[string(key)] = value
	return nil
}

func (m *Memory) Remove(_ context.Context, key []byte) error {
	m.l.Lock()
	defer m.l.Unlock()

	delete(m.storage, string(key))
	return nil
}

// Commit applies [changes] in one step.
func (m *Memory) Commit(_ context.Context, changes map[string]maybe.Maybe[[]byte]) error {
	m.l.Lock()
	defer m.l.Unlock()

	for k, v := range changes {
		if v.IsNothing() {
			delete(m.storage, k)
			continue
		}
		m.storage[k] = v.Value()
	}
	return nil
}

// Snapshot returns a copy of the stored key/values.
func (m *Memory) Snapshot() map[string][]byte {
	m.l.RLock()
	defer m.l.RUnlock()

	out := make(map[string][]byte, len(m.storage))
	for k, v := range m.storage {
		out[k] = v
	}
	return out
}

func (*Memory) Close() error {
	return nil
}
