// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"

	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/mux"
	"github.com/gorilla/rpc/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const MetricsEndpoint = "/metrics"

var contentTypes = []string{
	"application/json",
	"application/json;charset=UTF-8",
}

// newJSONRPCHandler exposes the exported methods of [service] as
// "<name>.<method>".
func newJSONRPCHandler(name string, service any) (http.Handler, error) {
	server := rpc.NewServer()
	codec := json.NewCodec()
	for _, contentType := range contentTypes {
		server.RegisterCodec(codec, contentType)
	}
	return server, server.RegisterService(service, name)
}

// NewRouter serves the JSON-RPC service and, when [gatherer] is not nil,
// the prometheus metrics.
func NewRouter(vm VM, gatherer prometheus.Gatherer) (*mux.Router, error) {
	handler, err := newJSONRPCHandler(Name, NewJSONRPCServer(vm))
	if err != nil {
		return nil, err
	}
	r := mux.NewRouter()
	r.Handle(JSONRPCEndpoint, handler).Methods(http.MethodPost)
	if gatherer != nil {
		r.Handle(MetricsEndpoint, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	return r, nil
}
