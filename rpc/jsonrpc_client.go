// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"

	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/storage"
)

type JSONRPCClient struct {
	requester rpc.EndpointRequester
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	return &JSONRPCClient{requester: rpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		Name+".ping",
		nil,
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) Identities(ctx context.Context) (*IdentitiesReply, error) {
	resp := new(IdentitiesReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".identities",
		nil,
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Pool(ctx context.Context) (*storage.Pool, error) {
	resp := new(PoolReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".pool",
		nil,
		resp,
	)
	return resp.Pool, err
}

func (cli *JSONRPCClient) StakeRecord(ctx context.Context, owner codec.Address) (*StakeRecordReply, error) {
	resp := new(StakeRecordReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".stakeRecord",
		&OwnerArgs{Owner: owner},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) LiquidityRecord(ctx context.Context, owner codec.Address) (*LiquidityRecordReply, error) {
	resp := new(LiquidityRecordReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".liquidityRecord",
		&OwnerArgs{Owner: owner},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Balance(ctx context.Context, addr codec.Address) (uint64, uint64, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".balance",
		&BalanceArgs{Address: addr},
		resp,
	)
	return resp.Tokens, resp.Lamports, err
}

func (cli *JSONRPCClient) Supply(ctx context.Context) (uint64, error) {
	resp := new(SupplyReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".supply",
		nil,
		resp,
	)
	return resp.Supply, err
}

func (cli *JSONRPCClient) Events(ctx context.Context, from uint64) ([]*Event, error) {
	resp := new(EventsReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".events",
		&EventsArgs{From: from},
		resp,
	)
	return resp.Events, err
}
