// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	DefaultEndpoint = "http://localhost:9411/api/v2/spans"

	exportTimeout = 10 * time.Second
	// Longer than [exportTimeout] so in-flight exports finish first
	shutdownTimeout = 15 * time.Second
)

type Config struct {
	Enabled bool `json:"enabled"`

	// SampleRate is the fraction of operations traced. At or above 1 every
	// operation is sampled.
	SampleRate float64 `json:"sampleRate"`

	// Endpoint is the zipkin collector spans are exported to.
	Endpoint string `json:"endpoint"`
	AppName  string `json:"appName"`
	Version  string `json:"version"`
}

func NewDefaultConfig() Config {
	return Config{
		SampleRate: 0.1,
		Endpoint:   DefaultEndpoint,
		AppName:    "zkarb",
		Version:    "v0.0.1",
	}
}

type tracer struct {
	oteltrace.Tracer

	tp *sdktrace.TracerProvider
}

func (t *tracer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return t.tp.Shutdown(ctx)
}

// New returns a tracer exporting to zipkin, or one that records nothing
// when tracing is disabled.
func New(cfg Config) (trace.Tracer, error) {
	if !cfg.Enabled {
		return Noop(cfg.AppName), nil
	}

	exporter, err := zipkin.New(cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithExportTimeout(exportTimeout)),
		sdktrace.WithResource(
			resource.NewWithAttributes(
				semconv.SchemaURL,
				attribute.String("version", cfg.Version),
				semconv.ServiceNameKey.String(cfg.AppName),
			),
		),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRate)),
	)
	return &tracer{
		Tracer: tp.Tracer(cfg.AppName),
		tp:     tp,
	}, nil
}
