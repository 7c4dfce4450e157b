// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type chainMetrics struct {
	opsExecuted prometheus.Counter
	opsFailed   prometheus.Counter

	stateChanges    prometheus.Counter
	stateOperations prometheus.Counter
	eventsEmitted   prometheus.Counter
}

func newMetrics() (*prometheus.Registry, *chainMetrics, error) {
	r := prometheus.NewRegistry()

	m := &chainMetrics{
		opsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "ops_executed",
			Help:      "number of operations committed",
		}),
		opsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "ops_failed",
			Help:      "number of operations aborted",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_changes",
			Help:      "number of keys changed by committed operations",
		}),
		stateOperations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_operations",
			Help:      "number of state operations performed by committed operations",
		}),
		eventsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "events_emitted",
			Help:      "number of events delivered to subscribers",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.opsExecuted),
		r.Register(m.opsFailed),
		r.Register(m.stateChanges),
		r.Register(m.stateOperations),
		r.Register(m.eventsEmitted),
	)
	return r, m, errs.Err
}
