// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vault derives the addresses of the pool vaults and the signing
// capability the ledger presents to the token program to move funds out of
// them.
//
// A vault address is derived from (program, role seed, pool, bump). Nobody
// holds a private key for it: the address is guaranteed to be off the
// ed25519 curve. Anyone can recompute the relation, but only the ledger
// presents an [Authority] when it moves funds.
package vault

import (
	"errors"
	"fmt"

	"github.com/zkarb/zkarbvm/codec"
)

var ErrUnknownRole = errors.New("unknown vault role")

type Role uint8

const (
	Staking Role = iota
	Liquidity
	Fee
	FeeNative
)

// Roles lists every vault a pool owns.
var Roles = []Role{Staking, Liquidity, Fee, FeeNative}

func (r Role) Seed() []byte {
	switch r {
	case Staking:
		return []byte("staking_vault")
	case Liquidity:
		return []byte("liquidity_vault")
	case Fee:
		return []byte("fee_vault")
	case FeeNative:
		return []byte("fee_vault_sol")
	default:
		return nil
	}
}

func (r Role) String() string {
	switch r {
	case Staking:
		return "staking"
	case Liquidity:
		return "liquidity"
	case Fee:
		return "fee"
	case FeeNative:
		return "fee_native"
	default:
		return "unknown"
	}
}

// Binding ties a role to the derived vault address and the bump that
// produced it.
type Binding struct {
	Role    Role          `json:"role"`
	Address codec.Address `json:"address"`
	Bump    uint8         `json:"bump"`
}

func seeds(pool codec.Address, role Role) ([][]byte, error) {
	seed := role.Seed()
	if seed == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, role)
	}
	return [][]byte{seed, pool[:]}, nil
}

// Derive finds the canonical binding of [role] for [pool].
func Derive(program codec.Address, pool codec.Address, role Role) (Binding, error) {
	s, err := seeds(pool, role)
	if err != nil {
		return Binding{}, err
	}
	addr, bump, err := codec.FindProgramAddress(s, program)
	if err != nil {
		return Binding{}, err
	}
	return Binding{Role: role, Address: addr, Bump: bump}, nil
}

// DeriveAll derives the binding of every role, in [Roles] order.
func DeriveAll(program codec.Address, pool codec.Address) ([]Binding, error) {
	bindings := make([]Binding, 0, len(Roles))
	for _, role := range Roles {
		b, err := Derive(program, pool, role)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}

// Bind recomputes the binding of [role] from a stored [bump].
func Bind(program codec.Address, pool codec.Address, role Role, bump uint8) (Binding, error) {
	s, err := seeds(pool, role)
	if err != nil {
		return Binding{}, err
	}
	addr, err := codec.CreateProgramAddress(append(s, []byte{bump}), program)
	if err != nil {
		return Binding{}, err
	}
	return Binding{Role: role, Address: addr, Bump: bump}, nil
}

// Authority is the capability to debit a single vault. It can only be
// obtained through [NewAuthority], which proves the derivation.
type Authority struct {
	pool    codec.Address
	binding Binding
}

// NewAuthority builds the capability for the [role] vault of [pool] from
// the bump recorded at initialization.
func NewAuthority(program codec.Address, pool codec.Address, role Role, bump uint8) (*Authority, error) {
	b, err := Bind(program, pool, role, bump)
	if err != nil {
		return nil, err
	}
	return &Authority{pool: pool, binding: b}, nil
}

// Key is the vault address this capability signs for.
func (a *Authority) Key() codec.Address {
	return a.binding.Address
}

func (a *Authority) Role() Role {
	return a.binding.Role
}

func (a *Authority) Pool() codec.Address {
	return a.pool
}

func (a *Authority) String() string {
	return fmt.Sprintf("vault(%s:%s)", a.binding.Role, a.binding.Address)
}
