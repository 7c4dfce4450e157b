// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/oracle"
	"github.com/zkarb/zkarbvm/transfer"
)

// Operation is a single invocation of the ledger. The actor always signs;
// [Signers] lists the additional accounts that signed it.
type Operation struct {
	Action  Action
	Actor   codec.Address
	Signers []codec.Address
}

// Result describes a committed [Operation].
type Result struct {
	Index        uint64         `json:"index"`
	Timestamp    int64          `json:"timestamp"`
	StateChanges int            `json:"stateChanges"`
	Events       []*EventRecord `json:"events"`
}

// EventRecord is an [Event] together with the operation that emitted it.
type EventRecord struct {
	Index     uint64        `json:"index"`
	Action    uint8         `json:"action"`
	Actor     codec.Address `json:"actor"`
	Timestamp int64         `json:"timestamp"`
	Event     Event         `json:"event"`
}

// VerifySigner rejects addresses nobody holds a key for, such as the
// derived vault addresses.
func VerifySigner(addr codec.Address) error {
	if !codec.IsOnCurve(addr) {
		return fmt.Errorf("%w: %s", ErrDerivedSigner, addr)
	}
	return nil
}

var _ Runtime = (*runtime)(nil)

type runtime struct {
	p       *Processor
	signers set.Set[codec.Address]
	events  []Event
}

func newRuntime(p *Processor, op *Operation) *runtime {
	signers := set.NewSet[codec.Address](len(op.Signers) + 1)
	signers.Add(op.Actor)
	signers.Add(op.Signers...)
	return &runtime{p: p, signers: signers}
}

func (r *runtime) Rules() Rules {
	return r.p.cfg.Rules
}

func (r *runtime) Signer(addr codec.Address) (transfer.Authority, error) {
	if !r.signers.Contains(addr) {
		return nil, ErrMissingSigner
	}
	if err := VerifySigner(addr); err != nil {
		return nil, err
	}
	return transfer.NewSigner(addr), nil
}

func (r *runtime) Tokens() transfer.Service {
	return r.p.cfg.Tokens
}

func (r *runtime) Oracles() oracle.Oracles {
	return r.p.cfg.Oracles
}

func (r *runtime) Emit(e Event) {
	r.events = append(r.events, e)
}
