// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/zkarb/zkarbvm/actions"
	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/vault"
)

// JSONRPCServer answers read only queries about the ledger.
type JSONRPCServer struct {
	vm VM
}

func NewJSONRPCServer(vm VM) *JSONRPCServer {
	return &JSONRPCServer{vm}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.vm.Logger().Info("ping")
	reply.Success = true
	return nil
}

type IdentitiesReply struct {
	ProgramID codec.Address   `json:"programID"`
	Pool      codec.Address   `json:"pool"`
	Mint      codec.Address   `json:"mint"`
	Vaults    []vault.Binding `json:"vaults"`
}

func (j *JSONRPCServer) Identities(_ *http.Request, _ *struct{}, reply *IdentitiesReply) error {
	vaults, err := j.vm.Vaults()
	if err != nil {
		return err
	}
	rules := j.vm.Rules()
	reply.ProgramID = rules.GetProgramID()
	reply.Pool = rules.GetPoolAddress()
	reply.Mint = rules.GetTokenMint()
	reply.Vaults = vaults
	return nil
}

type PoolReply struct {
	Pool *storage.Pool `json:"pool"`
}

func (j *JSONRPCServer) Pool(req *http.Request, _ *struct{}, reply *PoolReply) error {
	pool, err := j.vm.Pool(req.Context())
	if err != nil {
		return err
	}
	reply.Pool = pool
	return nil
}

type OwnerArgs struct {
	Owner codec.Address `json:"owner"`
}

type StakeRecordReply struct {
	Address codec.Address        `json:"address"`
	Record  *storage.StakeRecord `json:"record"`
}

func (j *JSONRPCServer) StakeRecord(req *http.Request, args *OwnerArgs, reply *StakeRecordReply) error {
	addr, record, exists, err := j.vm.StakeRecord(req.Context(), args.Owner)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: stake record of %s", ErrRecordNotFound, args.Owner)
	}
	reply.Address = addr
	reply.Record = record
	return nil
}

type LiquidityRecordReply struct {
	Address codec.Address            `json:"address"`
	Record  *storage.LiquidityRecord `json:"record"`
}

func (j *JSONRPCServer) LiquidityRecord(req *http.Request, args *OwnerArgs, reply *LiquidityRecordReply) error {
	addr, record, exists, err := j.vm.LiquidityRecord(req.Context(), args.Owner)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: liquidity record of %s", ErrRecordNotFound, args.Owner)
	}
	reply.Address = addr
	reply.Record = record
	return nil
}

type BalanceArgs struct {
	Address codec.Address `json:"address"`
}

// BalanceReply holds the pool token and native balances of an account.
// Missing accounts report zero.
type BalanceReply struct {
	Tokens   uint64 `json:"tokens"`
	Lamports uint64 `json:"lamports"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	ctx := req.Context()
	tokens, _, err := j.vm.TokenBalance(ctx, args.Address)
	if err != nil {
		return err
	}
	lamports, _, err := j.vm.Lamports(ctx, args.Address)
	if err != nil {
		return err
	}
	reply.Tokens = tokens
	reply.Lamports = lamports
	return nil
}

type SupplyReply struct {
	Supply uint64 `json:"supply"`
}

func (j *JSONRPCServer) Supply(req *http.Request, _ *struct{}, reply *SupplyReply) error {
	supply, err := j.vm.MintSupply(req.Context())
	if err != nil {
		return err
	}
	reply.Supply = supply
	return nil
}

type EventsArgs struct {
	// Operations with a lower index are skipped
	From uint64 `json:"from"`
}

type Event struct {
	Index     uint64          `json:"index"`
	Action    uint8           `json:"action"`
	Actor     codec.Address   `json:"actor"`
	Timestamp int64           `json:"timestamp"`
	Name      string          `json:"name"`
	Fields    json.RawMessage `json:"fields"`
	// Encoded is the Anchor event encoding
	Encoded []byte `json:"encoded"`
}

type EventsReply struct {
	Events []*Event `json:"events"`
}

func (j *JSONRPCServer) Events(_ *http.Request, args *EventsArgs, reply *EventsReply) error {
	records := j.vm.Events()
	reply.Events = make([]*Event, 0, len(records))
	for _, r := range records {
		if r.Index < args.From {
			continue
		}
		fields, err := json.Marshal(r.Event)
		if err != nil {
			return err
		}
		encoded, err := actions.EncodeEvent(r.Event)
		if err != nil {
			j.vm.Logger().Warn("unable to encode event",
				zap.String("event", r.Event.Name()),
				zap.Error(err),
			)
			return err
		}
		reply.Events = append(reply.Events, &Event{
			Index:     r.Index,
			Action:    r.Action,
			Actor:     r.Actor,
			Timestamp: r.Timestamp,
			Name:      r.Event.Name(),
			Fields:    fields,
			Encoded:   encoded,
		})
	}
	return nil
}
