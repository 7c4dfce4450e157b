// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace       = "pebble"
	metricsInterval = 10 * time.Second

	opSet    = "set"
	opDelete = "delete"
)

// storeGauge is a point in time value sampled from [pebble.Metrics].
type storeGauge struct {
	gauge  prometheus.Gauge
	sample func(*pebble.Metrics) float64
}

type metrics struct {
	stallStart time.Time
	writeStall metric.Averager
	readTime   metric.Averager
	commitTime metric.Averager

	reads       prometheus.Counter
	writes      *prometheus.CounterVec
	commits     prometheus.Counter
	compactions *prometheus.CounterVec
	compacting  prometheus.Gauge

	store []storeGauge
}

func newGauge(name string, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	m := &metrics{
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reads",
			Help:      "number of ledger values read",
		}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writes",
			Help:      "number of ledger values written by kind",
		}, []string{"op"}),
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits",
			Help:      "number of committed operation batches",
		}),
		compactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compactions",
			Help:      "number of compactions by input level",
		}, []string{"level"}),
		compacting: newGauge("active_compactions", "number of running compactions"),
		store: []storeGauge{
			{
				gauge:  newGauge("tombstone_count", "approximate count of internal tombstones"),
				sample: func(m *pebble.Metrics) float64 { return float64(m.Keys.TombstoneCount) },
			},
			{
				gauge:  newGauge("obsolete_table_size", "bytes in tables no longer referenced"),
				sample: func(m *pebble.Metrics) float64 { return float64(m.Table.ObsoleteSize) },
			},
			{
				gauge:  newGauge("zombie_table_size", "bytes in unreferenced tables still held by iterators"),
				sample: func(m *pebble.Metrics) float64 { return float64(m.Table.ZombieSize) },
			},
			{
				gauge:  newGauge("obsolete_wal_size", "bytes of WAL no longer needed"),
				sample: func(m *pebble.Metrics) float64 { return float64(m.WAL.ObsoletePhysicalSize) },
			},
		},
	}

	var err error
	errs := wrappers.Errs{}
	m.writeStall, err = metric.NewAverager("pebble_write_stall", "time spent waiting for disk write", r)
	errs.Add(err)
	m.readTime, err = metric.NewAverager("pebble_read_latency", "time spent reading a ledger value", r)
	errs.Add(err)
	m.commitTime, err = metric.NewAverager("pebble_commit_latency", "time spent committing an operation", r)
	errs.Add(err)
	errs.Add(
		r.Register(m.reads),
		r.Register(m.writes),
		r.Register(m.commits),
		r.Register(m.compactions),
		r.Register(m.compacting),
	)
	for _, s := range m.store {
		errs.Add(r.Register(s.gauge))
	}
	return r, m, errs.Err
}

func (db *Database) onCompactionBegin(info pebble.CompactionInfo) {
	db.metrics.compacting.Inc()
	level := "other"
	if len(info.Input) > 0 && info.Input[0].Level == 0 {
		level = "l0"
	}
	db.metrics.compactions.WithLabelValues(level).Inc()
}

func (db *Database) onCompactionEnd(pebble.CompactionInfo) {
	db.metrics.compacting.Dec()
}

func (db *Database) onWriteStallBegin(pebble.WriteStallBeginInfo) {
	db.metrics.stallStart = time.Now()
}

func (db *Database) onWriteStallEnd() {
	db.metrics.writeStall.Observe(float64(time.Since(db.metrics.stallStart)))
}

// sampleStore refreshes the store gauges until the database closes.
func (db *Database) sampleStore() {
	t := time.NewTicker(metricsInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			snapshot := db.db.Metrics()
			for _, s := range db.metrics.store {
				s.gauge.Set(s.sample(snapshot))
			}
		case <-db.closing:
			return
		}
	}
}
