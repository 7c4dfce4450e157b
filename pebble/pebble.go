// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zkarb/zkarbvm/chain"
)

var _ chain.Database = (*Database)(nil)

type Config struct {
	CacheSize                   int64  `json:"cacheSize"`
	BytesPerSync                int    `json:"bytesPerSync"`
	WALBytesPerSync             int    `json:"walBytesPerSync"`
	MemTableStopWritesThreshold int    `json:"memTableStopWritesThreshold"`
	MemTableSize                uint64 `json:"memTableSize"`
	MaxOpenFiles                int    `json:"maxOpenFiles"`
	ConcurrentCompactions       int    `json:"concurrentCompactions"`
	Sync                        bool   `json:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   64 * 1024 * 1024,
		BytesPerSync:                1024 * 1024,
		WALBytesPerSync:             1024 * 1024,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                16 * 1024 * 1024,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database persists ledger state in a pebble instance. Every [Commit] is
// written as a single batch.
type Database struct {
	db      *pebble.DB
	cfg     Config
	metrics *metrics

	closing chan struct{}
	wg      sync.WaitGroup

	l      sync.RWMutex
	closed bool
}

func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d := &Database{
		cfg:     cfg,
		metrics: metrics,
		closing: make(chan struct{}),
	}
	opts := &pebble.Options{
		Cache:                       pebble.NewCache(cfg.CacheSize),
		BytesPerSync:                cfg.BytesPerSync,
		Comparer:                    pebble.DefaultComparer,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                cfg.MemTableSize,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
	}
	opts.Experimental.ReadSamplingMultiplier = -1 // explicitly disable seek compaction
	opts.EventListener = &pebble.EventListener{
		CompactionBegin: d.onCompactionBegin,
		CompactionEnd:   d.onCompactionEnd,
		WriteStallBegin: d.onWriteStallBegin,
		WriteStallEnd:   d.onWriteStallEnd,
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.sampleStore()
	}()
	return d, registry, nil
}

func (db *Database) GetValue(_ context.Context, key []byte) ([]byte, error) {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	start := time.Now()
	defer func() {
		db.metrics.readTime.Observe(float64(time.Since(start)))
	}()

	db.metrics.reads.Inc()
	data, closer, err := db.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()
	return slices.Clone(data), nil
}

// Commit writes [changes] atomically. Nothing values are deleted.
func (db *Database) Commit(_ context.Context, changes map[string]maybe.Maybe[[]byte]) error {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	start := time.Now()
	batch := db.db.NewBatch()
	defer batch.Close()

	var sets, deletes int
	for k, v := range changes {
		var err error
		if v.IsNothing() {
			err = batch.Delete([]byte(k), nil)
			deletes++
		} else {
			err = batch.Set([]byte(k), v.Value(), nil)
			sets++
		}
		if err != nil {
			return err
		}
	}
	opts := pebble.NoSync
	if db.cfg.Sync {
		opts = pebble.Sync
	}
	if err := batch.Commit(opts); err != nil {
		return err
	}
	db.metrics.commitTime.Observe(float64(time.Since(start)))
	db.metrics.commits.Inc()
	db.metrics.writes.WithLabelValues(opSet).Add(float64(sets))
	db.metrics.writes.WithLabelValues(opDelete).Add(float64(deletes))
	return nil
}

func (db *Database) Close() error {
	db.l.Lock()
	defer db.l.Unlock()

	if db.closed {
		return database.ErrClosed
	}
	db.closed = true
	close(db.closing)
	db.wg.Wait()
	return db.db.Close()
}
