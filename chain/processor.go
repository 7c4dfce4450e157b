// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/zkarb/zkarbvm/event"
	"github.com/zkarb/zkarbvm/keys"
	"github.com/zkarb/zkarbvm/oracle"
	"github.com/zkarb/zkarbvm/transfer"
	"github.com/zkarb/zkarbvm/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

type Config struct {
	Rules   Rules
	Tokens  transfer.Service
	Oracles oracle.Oracles
	Clock   oracle.Clock
	Tracer  oteltrace.Tracer

	// Classify names the kind of an execution error in logs. It is
	// optional.
	Classify func(error) string
}

// Processor executes one [Operation] at a time against [Database]. An
// operation either commits every change it made or none of them.
type Processor struct {
	l      sync.Mutex
	closed bool

	log     logging.Logger
	db      Database
	cfg     Config
	metrics *chainMetrics
	subs    []event.Subscription[*EventRecord]

	executed atomic.Uint64
}

func NewProcessor(
	log logging.Logger,
	db Database,
	cfg Config,
	subs ...event.Subscription[*EventRecord],
) (*Processor, *prometheus.Registry, error) {
	if cfg.Rules == nil {
		return nil, nil, errors.New("missing rules")
	}
	if cfg.Tokens == nil {
		cfg.Tokens = transfer.Program{}
	}
	if cfg.Clock == nil {
		cfg.Clock = oracle.SystemClock{}
	}
	if cfg.Tracer == nil {
		cfg.Tracer = oteltrace.NewNoopTracerProvider().Tracer("chain")
	}
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	return &Processor{
		log:     log,
		db:      db,
		cfg:     cfg,
		metrics: metrics,
		subs:    subs,
	}, registry, nil
}

// Execute runs [op] at the current clock time.
func (p *Processor) Execute(ctx context.Context, op *Operation) (*Result, error) {
	if op == nil || op.Action == nil {
		return nil, ErrNilAction
	}

	ctx, span := p.cfg.Tracer.Start(
		ctx, "Processor.Execute",
		oteltrace.WithAttributes(
			attribute.Int("action", int(op.Action.GetTypeID())),
			attribute.Stringer("actor", op.Actor),
		),
	)
	defer span.End()

	p.l.Lock()
	defer p.l.Unlock()

	if p.closed {
		return nil, ErrProcessorShutdown
	}

	if err := VerifySigner(op.Actor); err != nil {
		p.metrics.opsFailed.Inc()
		return nil, err
	}

	index := p.executed.Load()
	action := op.Action
	stateKeys, err := action.StateKeys(op.Actor, p.cfg.Rules)
	if err != nil {
		p.metrics.opsFailed.Inc()
		return nil, err
	}

	// Load the footprint in a stable order
	ordered := maps.Keys(stateKeys)
	slices.Sort(ordered)
	storage := make(map[string][]byte, len(ordered))
	for _, k := range ordered {
		if !keys.Valid([]byte(k)) {
			p.metrics.opsFailed.Inc()
			return nil, fmt.Errorf("%w: %x", ErrInvalidStateKey, k)
		}
		v, err := p.db.GetValue(ctx, []byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		storage[k] = v
	}

	var (
		ts        = tstate.New(len(stateKeys))
		view      = ts.NewView(stateKeys, storage)
		rt        = newRuntime(p, op)
		timestamp = p.cfg.Clock.Now()
	)
	if err := action.Execute(ctx, rt, view, timestamp, op.Actor); err != nil {
		view.Rollback(ctx, 0)
		p.metrics.opsFailed.Inc()
		span.RecordError(err)
		p.log.Debug("operation aborted",
			zap.Uint8("action", action.GetTypeID()),
			zap.Stringer("actor", op.Actor),
			zap.String("kind", p.classify(err)),
			zap.Error(err),
		)
		return nil, err
	}
	ops := view.OpIndex()
	view.Commit()

	changes := ts.ChangedKeys()
	if err := p.db.Commit(ctx, changes); err != nil {
		return nil, fmt.Errorf("unable to commit operation: %w", err)
	}
	p.metrics.opsExecuted.Inc()
	p.metrics.stateChanges.Add(float64(len(changes)))
	p.metrics.stateOperations.Add(float64(ops))

	result := &Result{
		Index:        index,
		Timestamp:    timestamp,
		StateChanges: len(changes),
		Events:       make([]*EventRecord, 0, len(rt.events)),
	}
	for _, e := range rt.events {
		record := &EventRecord{
			Index:     index,
			Action:    action.GetTypeID(),
			Actor:     op.Actor,
			Timestamp: timestamp,
			Event:     e,
		}
		result.Events = append(result.Events, record)
		if err := event.NotifyAll(ctx, record, p.subs...); err != nil {
			p.log.Warn("event subscriber failed",
				zap.String("event", e.Name()),
				zap.Error(err),
			)
		}
	}
	p.metrics.eventsEmitted.Add(float64(len(result.Events)))
	p.log.Debug("operation committed",
		zap.Uint64("index", index),
		zap.Uint8("action", action.GetTypeID()),
		zap.Stringer("actor", op.Actor),
		zap.Int("changes", len(changes)),
		zap.Int("events", len(result.Events)),
	)
	p.executed.Inc()
	return result, nil
}

// Executed is the number of committed operations.
func (p *Processor) Executed() uint64 {
	return p.executed.Load()
}

func (p *Processor) Rules() Rules {
	return p.cfg.Rules
}

// Close rejects further operations and closes every subscriber.
func (p *Processor) Close() error {
	p.l.Lock()
	defer p.l.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return event.CloseAll(p.subs...)
}

func (p *Processor) classify(err error) string {
	if p.cfg.Classify == nil {
		return "unknown"
	}
	return p.cfg.Classify(err)
}
