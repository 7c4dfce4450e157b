// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/trace"

	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/event"
	"github.com/zkarb/zkarbvm/oracle"
	"github.com/zkarb/zkarbvm/transfer"
)

type Option func(*VM)

// WithDatabase replaces the database selected by the config.
func WithDatabase(db chain.Database) Option {
	return func(vm *VM) {
		vm.db = db
	}
}

func WithClock(clock oracle.Clock) Option {
	return func(vm *VM) {
		vm.clock = clock
	}
}

// WithOracles replaces the placeholder collaborators built from the config.
func WithOracles(oracles oracle.Oracles) Option {
	return func(vm *VM) {
		vm.oracles = &oracles
	}
}

func WithTokens(tokens transfer.Service) Option {
	return func(vm *VM) {
		vm.tokens = tokens
	}
}

func WithSubscriptions(subs ...event.Subscription[*chain.EventRecord]) Option {
	return func(vm *VM) {
		vm.subs = append(vm.subs, subs...)
	}
}

// WithTracer replaces the tracer built from the config. It is closed with
// the vm.
func WithTracer(tracer trace.Tracer) Option {
	return func(vm *VM) {
		vm.tracer = tracer
	}
}
