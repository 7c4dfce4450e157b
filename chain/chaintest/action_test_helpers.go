// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/stretchr/testify/require"

	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/consts"
	"github.com/zkarb/zkarbvm/oracle"
	"github.com/zkarb/zkarbvm/state"
	"github.com/zkarb/zkarbvm/transfer"
	"github.com/zkarb/zkarbvm/tstate"
)

var (
	_ chain.Rules   = (*Rules)(nil)
	_ chain.Runtime = (*Runtime)(nil)
)

// Rules is a fixed set of deployment identities.
type Rules struct {
	ProgramID codec.Address
	Pool      codec.Address
	Mint      codec.Address
}

// NewRules uses the default program identity with synthetic pool and mint
// addresses.
func NewRules() *Rules {
	return &Rules{
		ProgramID: codec.MustParseAddress(consts.ProgramID),
		Pool:      codec.Address{0xaa, 0x01},
		Mint:      codec.Address{0xbb, 0x01},
	}
}

func (r *Rules) GetProgramID() codec.Address   { return r.ProgramID }
func (r *Rules) GetPoolAddress() codec.Address { return r.Pool }
func (r *Rules) GetTokenMint() codec.Address   { return r.Mint }

// Runtime is an in-process [chain.Runtime] recording emitted events.
type Runtime struct {
	R            chain.Rules
	Signers      set.Set[codec.Address]
	TokenService transfer.Service
	OracleSet    oracle.Oracles
	Events       []chain.Event
}

func NewRuntime(rules chain.Rules, oracles oracle.Oracles, signers ...codec.Address) *Runtime {
	return &Runtime{
		R:            rules,
		Signers:      set.Of(signers...),
		TokenService: transfer.Program{},
		OracleSet:    oracles,
	}
}

func (r *Runtime) Rules() chain.Rules { return r.R }

func (r *Runtime) Signer(addr codec.Address) (transfer.Authority, error) {
	if !r.Signers.Contains(addr) {
		return nil, chain.ErrMissingSigner
	}
	if err := chain.VerifySigner(addr); err != nil {
		return nil, err
	}
	return transfer.NewSigner(addr), nil
}

func (r *Runtime) Tokens() transfer.Service { return r.TokenService }
func (r *Runtime) Oracles() oracle.Oracles  { return r.OracleSet }
func (r *Runtime) Emit(e chain.Event)       { r.Events = append(r.Events, e) }

// ActionTest is a single parameterized test. It executes the action inside
// a view restricted to the action's declared footprint, applies the
// resulting changes to [State] only on success and checks that all
// assertions pass.
type ActionTest struct {
	Name string

	Action chain.Action

	Rules     chain.Rules
	State     state.Mutable
	Timestamp int64
	Actor     codec.Address
	// Signers in addition to [Actor]
	Signers []codec.Address
	// Oracles default to [oracle.Defaults]
	Oracles *oracle.Oracles

	ExpectedEvents []chain.Event
	ExpectedErr    error

	Assertion func(context.Context, *testing.T, state.Mutable)
}

// Run executes the [ActionTest] and make sure all assertions pass.
func (test *ActionTest) Run(ctx context.Context, t *testing.T) {
	t.Run(test.Name, func(t *testing.T) {
		require := require.New(t)

		rules := test.Rules
		if rules == nil {
			rules = NewRules()
		}
		oracles := oracle.Defaults()
		if test.Oracles != nil {
			oracles = *test.Oracles
		}
		rt := NewRuntime(rules, oracles, append([]codec.Address{test.Actor}, test.Signers...)...)

		err := Execute(ctx, test.Action, rt, test.State, test.Timestamp, test.Actor)
		require.ErrorIs(err, test.ExpectedErr)
		if test.ExpectedErr != nil {
			require.Empty(rt.Events)
		} else {
			require.Equal(test.ExpectedEvents, rt.Events)
		}

		if test.Assertion != nil {
			test.Assertion(ctx, t, test.State)
		}
	})
}

// Execute runs [action] the way the processor does: within its declared
// footprint, committing to [mu] only if it succeeds.
func Execute(
	ctx context.Context,
	action chain.Action,
	rt *Runtime,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
) error {
	if err := chain.VerifySigner(actor); err != nil {
		return err
	}
	stateKeys, err := action.StateKeys(actor, rt.Rules())
	if err != nil {
		return err
	}
	storage := make(map[string][]byte, len(stateKeys))
	for k := range stateKeys {
		v, err := mu.GetValue(ctx, []byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		storage[k] = v
	}
	ts := tstate.New(len(stateKeys))
	view := ts.NewView(stateKeys, storage)
	emitted := len(rt.Events)
	if err := action.Execute(ctx, rt, view, timestamp, actor); err != nil {
		rt.Events = rt.Events[:emitted]
		return err
	}
	view.Commit()
	for k, v := range ts.ChangedKeys() {
		if v.IsNothing() {
			if err := mu.Remove(ctx, []byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := mu.Insert(ctx, []byte(k), v.Value()); err != nil {
			return err
		}
	}
	return nil
}
