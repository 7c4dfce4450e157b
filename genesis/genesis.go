// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/consts"
	"github.com/zkarb/zkarbvm/state"
	"github.com/zkarb/zkarbvm/storage"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	ErrDuplicateAllocation = errors.New("duplicate allocation")
	ErrStateInitialized    = errors.New("state already initialized")
)

// Seeds of the default pool and mint. Both are derived from the program so
// a genesis file only has to name them when deploying somewhere else.
var (
	poolSeed = []byte("pool")
	mintSeed = []byte("mint")
)

type Allocation struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

// Genesis describes the deployment identities and the balances present
// before the first operation.
type Genesis struct {
	ProgramID string `json:"programID"`
	Pool      string `json:"pool,omitempty"`
	Mint      string `json:"mint,omitempty"`

	// TokenAllocations are balances of [Mint]. Their sum becomes the mint
	// supply.
	TokenAllocations []*Allocation `json:"tokenAllocations"`
	// NativeAllocations are lamport balances.
	NativeAllocations []*Allocation `json:"nativeAllocations"`
}

func NewDefaultGenesis(tokens []*Allocation, native []*Allocation) *Genesis {
	return &Genesis{
		ProgramID:         consts.ProgramID,
		TokenAllocations:  tokens,
		NativeAllocations: native,
	}
}

// Load parses a JSON genesis. An empty [b] yields the default genesis
// without allocations.
func Load(b []byte) (*Genesis, error) {
	g := NewDefaultGenesis(nil, nil)
	if len(b) == 0 {
		return g, nil
	}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, fmt.Errorf("unable to parse genesis: %w", err)
	}
	return g, nil
}

// Rules resolves the identities of [g], deriving the pool and mint from the
// program when they are omitted.
func (g *Genesis) Rules() (*Rules, error) {
	programID, err := codec.ParseAddress(g.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("%w: program %q", err, g.ProgramID)
	}
	pool, err := resolve(g.Pool, poolSeed, programID)
	if err != nil {
		return nil, fmt.Errorf("%w: pool %q", err, g.Pool)
	}
	mint, err := resolve(g.Mint, mintSeed, programID)
	if err != nil {
		return nil, fmt.Errorf("%w: mint %q", err, g.Mint)
	}
	return New(programID, pool, mint), nil
}

func resolve(s string, seed []byte, programID codec.Address) (codec.Address, error) {
	if len(s) > 0 {
		return codec.ParseAddress(s)
	}
	addr, _, err := codec.FindProgramAddress([][]byte{seed}, programID)
	return addr, err
}

// InitializeState writes the allocations and the mint supply to [mu]. It
// fails if the mint already exists.
func (g *Genesis) InitializeState(ctx context.Context, mu state.Mutable, rules *Rules) error {
	mint := rules.GetTokenMint()
	if _, exists, err := storage.GetMintSupply(ctx, mu, mint); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("%w: mint %s", ErrStateInitialized, mint)
	}

	supply := uint64(0)
	tokens, err := parseAllocations(g.TokenAllocations)
	if err != nil {
		return err
	}
	for _, alloc := range tokens {
		supply, err = safemath.Add(supply, alloc.balance)
		if err != nil {
			return err
		}
		if err := storage.SetTokenBalance(ctx, mu, mint, alloc.addr, alloc.balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.addr, alloc.balance)
		}
	}
	if err := storage.SetMintSupply(ctx, mu, mint, supply); err != nil {
		return err
	}

	native, err := parseAllocations(g.NativeAllocations)
	if err != nil {
		return err
	}
	for _, alloc := range native {
		if err := storage.SetLamports(ctx, mu, alloc.addr, alloc.balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.addr, alloc.balance)
		}
	}
	return nil
}

type allocation struct {
	addr    codec.Address
	balance uint64
}

func parseAllocations(raw []*Allocation) ([]allocation, error) {
	seen := make(map[codec.Address]struct{}, len(raw))
	out := make([]allocation, 0, len(raw))
	for _, alloc := range raw {
		addr, err := codec.ParseAddress(alloc.Address)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, alloc.Address)
		}
		if _, ok := seen[addr]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAllocation, addr)
		}
		seen[addr] = struct{}{}
		out = append(out, allocation{addr: addr, balance: alloc.Balance})
	}
	return out, nil
}
