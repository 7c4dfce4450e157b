// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/chain/chaintest"
	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/oracle"
	"github.com/zkarb/zkarbvm/state"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/vault"
)

const (
	testSupply   uint64 = 1_000_000
	testLamports uint64 = 1_000
	startTime    int64  = 1_700_000_000
)

var (
	admin    = codec.Address{0xac}
	alice    = codec.Address{0xa1}
	bob      = codec.Address{0xb0}
	outsider = codec.Address{0xee}
)

// env is a pool initialized by [admin] with funded [alice] and [bob].
type env struct {
	t     *testing.T
	rules *chaintest.Rules
	mu    *state.Memory
}

func newEnv(t *testing.T, multiplier uint64) *env {
	e := newBareEnv(t)
	require.NoError(t, e.run(admin, &Initialize{FeeMultiplier: multiplier}, startTime))
	return e
}

// newBareEnv funds the users but leaves the pool uninitialized.
func newBareEnv(t *testing.T) *env {
	require := require.New(t)
	ctx := context.Background()
	rules := chaintest.NewRules()
	mu := state.NewMemory()

	require.NoError(storage.SetMintSupply(ctx, mu, rules.Mint, testSupply))
	for _, user := range []codec.Address{admin, alice, bob, outsider} {
		require.NoError(storage.SetTokenBalance(ctx, mu, rules.Mint, user, testSupply/4))
		require.NoError(storage.SetLamports(ctx, mu, user, testLamports))
	}
	return &env{t: t, rules: rules, mu: mu}
}

func (e *env) runtime(signers ...codec.Address) *chaintest.Runtime {
	return chaintest.NewRuntime(e.rules, oracle.Defaults(), signers...)
}

func (e *env) run(actor codec.Address, action chain.Action, timestamp int64, signers ...codec.Address) error {
	_, err := e.runWithEvents(actor, action, timestamp, signers...)
	return err
}

func (e *env) runWithEvents(actor codec.Address, action chain.Action, timestamp int64, signers ...codec.Address) ([]chain.Event, error) {
	rt := e.runtime(append([]codec.Address{actor}, signers...)...)
	err := chaintest.Execute(context.Background(), action, rt, e.mu, timestamp, actor)
	return rt.Events, err
}

func (e *env) pool() *storage.Pool {
	p, err := storage.GetPool(context.Background(), e.mu, e.rules.Pool)
	require.NoError(e.t, err)
	return p
}

func (e *env) stakeRecordAddr(owner codec.Address) codec.Address {
	addr, err := storage.StakeRecordAddress(e.rules.ProgramID, owner)
	require.NoError(e.t, err)
	return addr
}

func (e *env) lpRecordAddr(owner codec.Address) codec.Address {
	addr, err := storage.LiquidityRecordAddress(e.rules.ProgramID, owner)
	require.NoError(e.t, err)
	return addr
}

func (e *env) stakeRecord(owner codec.Address) *storage.StakeRecord {
	r, exists, err := storage.GetStakeRecord(context.Background(), e.mu, e.stakeRecordAddr(owner))
	require.NoError(e.t, err)
	require.True(e.t, exists)
	return r
}

func (e *env) lpRecord(owner codec.Address) *storage.LiquidityRecord {
	r, exists, err := storage.GetLiquidityRecord(context.Background(), e.mu, e.lpRecordAddr(owner))
	require.NoError(e.t, err)
	require.True(e.t, exists)
	return r
}

func (e *env) vault(role vault.Role) codec.Address {
	b, err := vault.Derive(e.rules.ProgramID, e.rules.Pool, role)
	require.NoError(e.t, err)
	return b.Address
}

func (e *env) tokens(holder codec.Address) uint64 {
	bal, exists, err := storage.GetTokenBalance(context.Background(), e.mu, e.rules.Mint, holder)
	require.NoError(e.t, err)
	require.True(e.t, exists)
	return bal
}

func (e *env) lamports(holder codec.Address) uint64 {
	bal, exists, err := storage.GetLamports(context.Background(), e.mu, holder)
	require.NoError(e.t, err)
	require.True(e.t, exists)
	return bal
}

func (e *env) supply() uint64 {
	s, exists, err := storage.GetMintSupply(context.Background(), e.mu, e.rules.Mint)
	require.NoError(e.t, err)
	require.True(e.t, exists)
	return s
}

// setPool overwrites the pool, e.g. to push counters to their limits.
func (e *env) setPool(f func(*storage.Pool)) {
	p := e.pool()
	f(p)
	require.NoError(e.t, storage.SetPool(context.Background(), e.mu, e.rules.Pool, p))
}
