// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/zkarb/zkarbvm/actions"
	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/config"
	"github.com/zkarb/zkarbvm/event"
	"github.com/zkarb/zkarbvm/genesis"
	"github.com/zkarb/zkarbvm/oracle"
	"github.com/zkarb/zkarbvm/pebble"
	"github.com/zkarb/zkarbvm/state"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/transfer"

	zktrace "github.com/zkarb/zkarbvm/trace"
)

// VM hosts a single pool: it owns the ledger database, applies the genesis
// on first start and executes operations one at a time.
type VM struct {
	log     logging.Logger
	config  config.Config
	genesis *genesis.Genesis
	rules   *genesis.Rules

	db      chain.Database
	ownsDB  bool
	clock   oracle.Clock
	oracles *oracle.Oracles
	tokens  transfer.Service
	tracer  trace.Tracer
	subs    []event.Subscription[*chain.EventRecord]

	processor *chain.Processor
	recorder  *event.Recorder[*chain.EventRecord]
	gatherer  prometheus.Gatherers

	closeOnce sync.Once
	closeErr  error
}

func New(
	ctx context.Context,
	log logging.Logger,
	cfg config.Config,
	genesisBytes []byte,
	opts ...Option,
) (*VM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g, err := genesis.Load(genesisBytes)
	if err != nil {
		return nil, err
	}
	if len(cfg.ProgramID) > 0 {
		g.ProgramID = cfg.ProgramID
	}
	rules, err := g.Rules()
	if err != nil {
		return nil, err
	}

	vm := &VM{
		log:      log,
		config:   cfg,
		genesis:  g,
		rules:    rules,
		recorder: &event.Recorder[*chain.EventRecord]{},
	}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.oracles == nil {
		o := cfg.GetOracles()
		vm.oracles = &o
	}
	if vm.clock == nil {
		vm.clock = oracle.SystemClock{}
	}
	if vm.tokens == nil {
		vm.tokens = transfer.Program{}
	}
	if vm.tracer == nil {
		vm.tracer, err = zktrace.New(cfg.Trace)
		if err != nil {
			return nil, err
		}
	}
	if vm.db == nil {
		if err := vm.openDatabase(); err != nil {
			return nil, errors.Join(err, vm.tracer.Close())
		}
	}

	if err := vm.initializeState(ctx); err != nil {
		return nil, errors.Join(err, vm.closeDatabase(), vm.tracer.Close())
	}

	processor, registry, err := chain.NewProcessor(
		log,
		vm.db,
		chain.Config{
			Rules:    rules,
			Tokens:   vm.tokens,
			Oracles:  *vm.oracles,
			Clock:    vm.clock,
			Tracer:   vm.tracer,
			Classify: actions.ClassifyString,
		},
		append([]event.Subscription[*chain.EventRecord]{vm.recorder}, vm.subs...)...,
	)
	if err != nil {
		return nil, errors.Join(err, vm.closeDatabase(), vm.tracer.Close())
	}
	vm.processor = processor
	vm.gatherer = append(vm.gatherer, registry)

	log.Info("vm initialized",
		zap.Stringer("program", rules.GetProgramID()),
		zap.Stringer("pool", rules.GetPoolAddress()),
		zap.Stringer("mint", rules.GetTokenMint()),
		zap.Bool("persistent", len(cfg.DataDir) > 0 && vm.ownsDB),
	)
	return vm, nil
}

func (vm *VM) openDatabase() error {
	vm.ownsDB = true
	if len(vm.config.DataDir) == 0 {
		vm.db = state.NewMemory()
		return nil
	}
	pcfg := pebble.NewDefaultConfig()
	pcfg.Sync = vm.config.SyncWrites
	db, registry, err := pebble.New(vm.config.DataDir, pcfg)
	if err != nil {
		return fmt.Errorf("unable to open database at %s: %w", vm.config.DataDir, err)
	}
	vm.db = db
	vm.gatherer = append(vm.gatherer, registry)
	return nil
}

// initializeState writes the genesis allocations unless the mint already
// exists in the database.
func (vm *VM) initializeState(ctx context.Context) error {
	_, exists, err := storage.GetMintSupply(ctx, vm.db, vm.rules.GetTokenMint())
	if err != nil {
		return err
	}
	if exists {
		vm.log.Debug("genesis already applied")
		return nil
	}
	mu := state.NewMemory()
	if err := vm.genesis.InitializeState(ctx, mu, vm.rules); err != nil {
		return err
	}
	snapshot := mu.Snapshot()
	changes := make(map[string]maybe.Maybe[[]byte], len(snapshot))
	for k, v := range snapshot {
		changes[k] = maybe.Some(v)
	}
	if err := vm.db.Commit(ctx, changes); err != nil {
		return err
	}
	vm.log.Info("genesis applied",
		zap.Int("tokenAllocations", len(vm.genesis.TokenAllocations)),
		zap.Int("nativeAllocations", len(vm.genesis.NativeAllocations)),
	)
	return nil
}

// Execute runs [action] on behalf of [actor]. [signers] are the accounts,
// besides the actor, that signed the operation.
func (vm *VM) Execute(
	ctx context.Context,
	actor codec.Address,
	action chain.Action,
	signers ...codec.Address,
) (*chain.Result, error) {
	result, err := vm.processor.Execute(ctx, &chain.Operation{
		Action:  action,
		Actor:   actor,
		Signers: signers,
	})
	if errors.Is(err, chain.ErrProcessorShutdown) {
		return nil, ErrClosed
	}
	return result, err
}

func (vm *VM) Rules() chain.Rules {
	return vm.rules
}

func (vm *VM) Logger() logging.Logger {
	return vm.log
}

func (vm *VM) Genesis() *genesis.Genesis {
	return vm.genesis
}

// State is a read only view of the committed ledger.
func (vm *VM) State() state.Immutable {
	return vm.db
}

// Events returns every event committed since the vm started.
func (vm *VM) Events() []*chain.EventRecord {
	return vm.recorder.Events()
}

// Executed is the number of committed operations since the vm started.
func (vm *VM) Executed() uint64 {
	return vm.processor.Executed()
}

func (vm *VM) Gatherer() prometheus.Gatherer {
	return vm.gatherer
}

func (vm *VM) Close() error {
	vm.closeOnce.Do(func() {
		vm.closeErr = errors.Join(vm.processor.Close(), vm.closeDatabase(), vm.tracer.Close())
		vm.log.Info("vm closed", zap.Uint64("executed", vm.processor.Executed()))
	})
	return vm.closeErr
}

type closer interface {
	Close() error
}

func (vm *VM) closeDatabase() error {
	if !vm.ownsDB {
		return nil
	}
	if c, ok := vm.db.(closer); ok {
		return c.Close()
	}
	return nil
}
