// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package transfer moves pool tokens between token accounts. It only
// honors a debit when the presented [Authority] is the key of the source
// account.
package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/state"
	"github.com/zkarb/zkarbvm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	ErrOwnerMismatch     = errors.New("authority does not own source account")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrMissingAuthority  = errors.New("missing authority")
	ErrSupplyUnderflow   = errors.New("burn exceeds mint supply")
)

// Authority signs for the account at Key.
type Authority interface {
	Key() codec.Address
}

// Signer is the authority of an account whose owner signed the current
// operation. Only the runtime hands these out.
type Signer struct {
	addr codec.Address
}

func NewSigner(addr codec.Address) Signer {
	return Signer{addr: addr}
}

func (s Signer) Key() codec.Address {
	return s.addr
}

func (s Signer) String() string {
	return "signer(" + s.addr.String() + ")"
}

// Service is the token program the ledger delegates movements to.
type Service interface {
	Transfer(
		ctx context.Context,
		mu state.Mutable,
		mint codec.Address,
		from codec.Address,
		to codec.Address,
		authority Authority,
		amount uint64,
	) error
	Burn(
		ctx context.Context,
		mu state.Mutable,
		mint codec.Address,
		from codec.Address,
		authority Authority,
		amount uint64,
	) error
}

var _ Service = Program{}

// Program keeps balances in token accounts keyed by (mint, holder). Both
// ends of a transfer must already exist.
type Program struct{}

func (Program) Transfer(
	ctx context.Context,
	mu state.Mutable,
	mint codec.Address,
	from codec.Address,
	to codec.Address,
	authority Authority,
	amount uint64,
) error {
	if err := authorize(authority, from); err != nil {
		return err
	}
	fromBal, err := balance(ctx, mu, mint, from)
	if err != nil {
		return err
	}
	toBal, err := balance(ctx, mu, mint, to)
	if err != nil {
		return err
	}
	if from == to {
		if fromBal < amount {
			return fmt.Errorf("%w: %d < %d", ErrInsufficientFunds, fromBal, amount)
		}
		return nil
	}
	newFrom, err := smath.Sub(fromBal, amount)
	if err != nil {
		return fmt.Errorf("%w: %d < %d", ErrInsufficientFunds, fromBal, amount)
	}
	newTo, err := smath.Add(toBal, amount)
	if err != nil {
		return fmt.Errorf("%w: crediting %s", err, to)
	}
	if err := storage.SetTokenBalance(ctx, mu, mint, from, newFrom); err != nil {
		return err
	}
	return storage.SetTokenBalance(ctx, mu, mint, to, newTo)
}

// Burn destroys [amount] from [from] and reduces the supply of [mint].
func (Program) Burn(
	ctx context.Context,
	mu state.Mutable,
	mint codec.Address,
	from codec.Address,
	authority Authority,
	amount uint64,
) error {
	if err := authorize(authority, from); err != nil {
		return err
	}
	bal, err := balance(ctx, mu, mint, from)
	if err != nil {
		return err
	}
	supply, exists, err := storage.GetMintSupply(ctx, mu, mint)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", storage.ErrMintNotFound, mint)
	}
	newBal, err := smath.Sub(bal, amount)
	if err != nil {
		return fmt.Errorf("%w: %d < %d", ErrInsufficientFunds, bal, amount)
	}
	newSupply, err := smath.Sub(supply, amount)
	if err != nil {
		return fmt.Errorf("%w: %d < %d", ErrSupplyUnderflow, supply, amount)
	}
	if err := storage.SetTokenBalance(ctx, mu, mint, from, newBal); err != nil {
		return err
	}
	return storage.SetMintSupply(ctx, mu, mint, newSupply)
}

func authorize(authority Authority, from codec.Address) error {
	if authority == nil {
		return ErrMissingAuthority
	}
	if authority.Key() != from {
		return fmt.Errorf("%w: %s signs for %s", ErrOwnerMismatch, authority.Key(), from)
	}
	return nil
}

func balance(ctx context.Context, im state.Immutable, mint codec.Address, holder codec.Address) (uint64, error) {
	bal, exists, err := storage.GetTokenBalance(ctx, im, mint, holder)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", storage.ErrTokenAccountNotFound, holder)
	}
	return bal, nil
}
