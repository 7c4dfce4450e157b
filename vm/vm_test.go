// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/zkarb/zkarbvm/actions"
	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/config"
	"github.com/zkarb/zkarbvm/genesis"
	"github.com/zkarb/zkarbvm/oracle"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/vault"
)

const startTime int64 = 1_700_000_000

var (
	admin = codec.Address{0xac}
	alice = codec.Address{0xa1}
)

func testGenesis(t *testing.T) []byte {
	g := genesis.NewDefaultGenesis(
		[]*genesis.Allocation{
			{Address: admin.String(), Balance: 10_000},
			{Address: alice.String(), Balance: 10_000},
		},
		[]*genesis.Allocation{
			{Address: alice.String(), Balance: 1_000},
		},
	)
	b, err := json.Marshal(g)
	require.NoError(t, err)
	return b
}

func newTestVM(t *testing.T, cfg config.Config, opts ...Option) *VM {
	vm, err := New(context.Background(), logging.NoLog{}, cfg, testGenesis(t), opts...)
	require.NoError(t, err)
	return vm
}

func events(result *chain.Result) []chain.Event {
	out := make([]chain.Event, 0, len(result.Events))
	for _, e := range result.Events {
		out = append(out, e.Event)
	}
	return out
}

func TestStakeLockupScenario(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	clock := oracle.NewManualClock(startTime)
	vm := newTestVM(t, config.NewDefaultConfig(), WithClock(clock))
	defer vm.Close()

	_, err := vm.Pool(ctx)
	require.ErrorIs(err, ErrPoolNotInitialized)

	_, err = vm.Execute(ctx, admin, &actions.Initialize{FeeMultiplier: 100})
	require.NoError(err)
	_, err = vm.Execute(ctx, alice, &actions.StakeTokens{Amount: 1_000})
	require.NoError(err)

	record, _, exists, err := vm.StakeRecord(ctx, alice)
	require.NoError(err)
	require.True(exists)
	withdraw := &actions.WithdrawStake{Record: record, Amount: 500}

	clock.Advance(100)
	_, err = vm.Execute(ctx, alice, withdraw)
	require.ErrorIs(err, actions.ErrLockupPeriodNotExpired)
	require.Equal(actions.Temporal, actions.Classify(err))

	clock.Advance(200)
	result, err := vm.Execute(ctx, alice, withdraw)
	require.NoError(err)
	require.Equal(startTime+300, result.Timestamp)
	require.Equal([]chain.Event{&actions.StakeWithdrawn{User: alice, Amount: 500}}, events(result))

	_, r, _, err := vm.StakeRecord(ctx, alice)
	require.NoError(err)
	require.Equal(uint64(500), r.Amount)
	pool, err := vm.Pool(ctx)
	require.NoError(err)
	require.Equal(uint64(500), pool.TotalStaked)

	balance, _, err := vm.TokenBalance(ctx, alice)
	require.NoError(err)
	require.Equal(uint64(9_500), balance)

	// Failed operations are not counted
	require.Equal(uint64(3), vm.Executed())
	require.Len(vm.Events(), 2)
}

func TestArbitrageScenario(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	vm := newTestVM(t, config.NewDefaultConfig(), WithClock(oracle.NewManualClock(startTime)))
	defer vm.Close()

	_, err := vm.Execute(ctx, admin, &actions.Initialize{FeeMultiplier: 100})
	require.NoError(err)

	result, err := vm.Execute(ctx, alice, &actions.ExecuteArbitrage{Amount: 1_000, MinProfit: 50, Proof: []byte{0x01}})
	require.NoError(err)
	require.Equal([]chain.Event{&actions.ArbitrageExecuted{Trader: alice, Amount: 1_000, Profit: 90}}, events(result))

	vaults, err := vm.Vaults()
	require.NoError(err)
	native, _, err := vm.Lamports(ctx, vaults[vault.FeeNative].Address)
	require.NoError(err)
	require.Equal(uint64(10), native)
	lamports, _, err := vm.Lamports(ctx, alice)
	require.NoError(err)
	require.Equal(uint64(990), lamports)

	pool, err := vm.Pool(ctx)
	require.NoError(err)
	require.Equal(uint64(10), pool.AccumulatedFeeTokens)
}

func TestConfiguredOracles(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	cfg := config.NewDefaultConfig()
	cfg.ProfitDivisor = 5
	cfg.OptimalLiquidity = 42
	vm := newTestVM(t, cfg)
	defer vm.Close()

	_, err := vm.Execute(ctx, admin, &actions.Initialize{})
	require.NoError(err)
	result, err := vm.Execute(ctx, alice, &actions.ExecuteArbitrage{Amount: 1_000, Proof: []byte{0x01}})
	require.NoError(err)
	require.Equal([]chain.Event{&actions.ArbitrageExecuted{Trader: alice, Amount: 1_000, Profit: 200}}, events(result))

	_, err = vm.Execute(ctx, admin, &actions.RebalanceLiquidity{})
	require.NoError(err)
	pool, err := vm.Pool(ctx)
	require.NoError(err)
	require.Equal(uint64(42), pool.TotalLiquidity)
}

func TestPersistence(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	cfg := config.NewDefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.SyncWrites = false

	vm := newTestVM(t, cfg)
	_, err := vm.Execute(ctx, admin, &actions.Initialize{FeeMultiplier: 7})
	require.NoError(err)
	_, err = vm.Execute(ctx, alice, &actions.AddLiquidity{Amount: 250})
	require.NoError(err)
	require.NoError(vm.Close())
	require.NoError(vm.Close())

	_, err = vm.Execute(ctx, alice, &actions.AddLiquidity{Amount: 1})
	require.ErrorIs(err, ErrClosed)

	// The genesis is not applied a second time
	vm = newTestVM(t, cfg)
	defer vm.Close()

	pool, err := vm.Pool(ctx)
	require.NoError(err)
	require.Equal(uint64(7), pool.DynamicFeeMultiplier)
	require.Equal(uint64(250), pool.TotalLiquidity)

	balance, _, err := vm.TokenBalance(ctx, alice)
	require.NoError(err)
	require.Equal(uint64(9_750), balance)
	supply, err := vm.MintSupply(ctx)
	require.NoError(err)
	require.Equal(uint64(20_000), supply)

	_, record, exists, err := vm.LiquidityRecord(ctx, alice)
	require.NoError(err)
	require.True(exists)
	require.Equal(uint64(250), record.Amount)
}

func TestMetricsGathered(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	vm := newTestVM(t, config.NewDefaultConfig())
	defer vm.Close()

	_, err := vm.Execute(ctx, admin, &actions.Initialize{})
	require.NoError(err)
	_, err = vm.Execute(ctx, admin, &actions.Initialize{})
	require.ErrorIs(err, storage.ErrAccountAlreadyInUse)

	families, err := vm.Gatherer().Gather()
	require.NoError(err)
	values := map[string]float64{}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			if c := m.GetCounter(); c != nil {
				values[f.GetName()] = c.GetValue()
			}
		}
	}
	require.Equal(1.0, values["chain_ops_executed"])
	require.Equal(1.0, values["chain_ops_failed"])
}

func TestInvalidProgramID(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.ProgramID = "0"
	_, err := New(context.Background(), logging.NoLog{}, cfg, nil)
	require.ErrorIs(t, err, codec.ErrInvalidAddress)
}
