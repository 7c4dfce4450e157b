// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package oracle defines the off-ledger collaborators consulted during
// execution along with the placeholder implementations a deployment runs
// with until real ones are plugged in.
package oracle

import (
	"context"
	"sync"
	"time"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/state"
)

//go:generate go run go.uber.org/mock/mockgen -package=oraclemock -destination=oraclemock/mocks.go . Clock,ProofVerifier,ProfitEstimator,LiquidityOptimizer,DelaySource,RewardDistributor

const (
	DefaultDelay            uint64 = 2
	DefaultProfitDivisor    uint64 = 10
	DefaultOptimalLiquidity uint64 = 1_000_000
)

// Clock returns the current unix time in seconds.
type Clock interface {
	Now() int64
}

type ProofVerifier interface {
	Verify(ctx context.Context, proof []byte) bool
}

type ProfitEstimator interface {
	EstimateProfit(ctx context.Context, amount uint64) uint64
}

type LiquidityOptimizer interface {
	OptimalLiquidity(ctx context.Context) uint64
}

// DelaySource is consulted before settlement. Its answer has no effect on
// execution yet.
type DelaySource interface {
	Delay(ctx context.Context) uint64
}

// RewardDistributor receives the net profit of every settled arbitrage.
type RewardDistributor interface {
	Distribute(ctx context.Context, mu state.Mutable, pool codec.Address, amount uint64) error
}

// Oracles bundles every collaborator a runtime exposes.
type Oracles struct {
	Verifier    ProofVerifier
	Estimator   ProfitEstimator
	Optimizer   LiquidityOptimizer
	Delay       DelaySource
	Distributor RewardDistributor
}

// Defaults returns the placeholder collaborators.
func Defaults() Oracles {
	return Oracles{
		Verifier:    NonEmptyVerifier{},
		Estimator:   FixedRateEstimator{Divisor: DefaultProfitDivisor},
		Optimizer:   StaticOptimizer{Target: DefaultOptimalLiquidity},
		Delay:       StaticDelay{Value: DefaultDelay},
		Distributor: NoopDistributor{},
	}
}

type SystemClock struct{}

func (SystemClock) Now() int64 {
	return time.Now().Unix()
}

// ManualClock only moves when told to.
type ManualClock struct {
	l   sync.Mutex
	now int64
}

func NewManualClock(now int64) *ManualClock {
	return &ManualClock{now: now}
}

func (c *ManualClock) Now() int64 {
	c.l.Lock()
	defer c.l.Unlock()

	return c.now
}

func (c *ManualClock) Set(now int64) {
	c.l.Lock()
	defer c.l.Unlock()

	c.now = now
}

func (c *ManualClock) Advance(seconds int64) int64 {
	c.l.Lock()
	defer c.l.Unlock()

	c.now += seconds
	return c.now
}

// NonEmptyVerifier accepts any non-empty proof.
type NonEmptyVerifier struct{}

func (NonEmptyVerifier) Verify(_ context.Context, proof []byte) bool {
	return len(proof) > 0
}

// FixedRateEstimator estimates profit as amount / Divisor.
type FixedRateEstimator struct {
	Divisor uint64
}

func (f FixedRateEstimator) EstimateProfit(_ context.Context, amount uint64) uint64 {
	if f.Divisor == 0 {
		return 0
	}
	return amount / f.Divisor
}

type StaticOptimizer struct {
	Target uint64
}

func (s StaticOptimizer) OptimalLiquidity(context.Context) uint64 {
	return s.Target
}

type StaticDelay struct {
	Value uint64
}

func (s StaticDelay) Delay(context.Context) uint64 {
	return s.Value
}

type NoopDistributor struct{}

func (NoopDistributor) Distribute(context.Context, state.Mutable, codec.Address, uint64) error {
	return nil
}
