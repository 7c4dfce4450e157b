// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/oracle"
	"github.com/zkarb/zkarbvm/state"
	"github.com/zkarb/zkarbvm/transfer"
)

// Rules are the deployment level identities. They never change once the
// ledger is running.
type Rules interface {
	GetProgramID() codec.Address
	GetPoolAddress() codec.Address
	GetTokenMint() codec.Address
}

// Runtime is what an executing [Action] may ask of its host.
type Runtime interface {
	Rules() Rules

	// Signer returns the authority of [addr] if [addr] signed the
	// operation, otherwise [ErrMissingSigner].
	Signer(addr codec.Address) (transfer.Authority, error)

	Tokens() transfer.Service
	Oracles() oracle.Oracles

	// Emit appends [e] to the operation's events. Events are delivered only
	// if the operation commits.
	Emit(e Event)
}

type Action interface {
	// GetTypeID uniquely identifies each supported [Action].
	GetTypeID() uint8

	// StateKeys is the full footprint of the action. Any access outside of
	// it fails.
	//
	// All keys specified must be suffixed with the number of chunks that
	// could ever be read from that key (formatted as a big-endian uint16).
	StateKeys(actor codec.Address, rules Rules) (state.Keys, error)

	// Execute applies the action on [mu]. If it returns an error every
	// change it made is discarded together with the events it emitted.
	Execute(
		ctx context.Context,
		rt Runtime,
		mu state.Mutable,
		timestamp int64,
		actor codec.Address,
	) error
}

type Event interface {
	GetTypeID() uint8
	Name() string
}

// Database is the persistent store the processor commits to.
type Database interface {
	state.Immutable

	Commit(ctx context.Context, changes map[string]maybe.Maybe[[]byte]) error
}
