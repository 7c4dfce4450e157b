// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"errors"

	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/transfer"
)

var (
	ErrUnauthorized              = errors.New("unauthorized access")
	ErrLockupPeriodNotExpired    = errors.New("lockup period has not expired yet")
	ErrInsufficientStakedBalance = errors.New("insufficient staked balance for withdrawal")
	ErrInsufficientLiquidity     = errors.New("insufficient liquidity available")
	ErrMathOverflow              = errors.New("math overflow occurred")
	ErrInvalidProof              = errors.New("invalid proof provided")
	ErrSlippageTooHigh           = errors.New("slippage is too high; arbitrage not profitable")
)

// Kind groups execution errors by what went wrong.
type Kind uint8

const (
	Unknown Kind = iota
	Authorization
	Temporal
	Balance
	Arithmetic
	Verification
	Profitability
	NotFound
	AlreadyInitialized
)

func (k Kind) String() string {
	switch k {
	case Authorization:
		return "authorization"
	case Temporal:
		return "temporal"
	case Balance:
		return "balance"
	case Arithmetic:
		return "arithmetic"
	case Verification:
		return "verification"
	case Profitability:
		return "profitability"
	case NotFound:
		return "not_found"
	case AlreadyInitialized:
		return "already_initialized"
	default:
		return "unknown"
	}
}

// Classify returns the [Kind] of an error returned by Execute.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return Unknown
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, chain.ErrMissingSigner),
		errors.Is(err, transfer.ErrOwnerMismatch),
		errors.Is(err, transfer.ErrMissingAuthority):
		return Authorization
	case errors.Is(err, ErrLockupPeriodNotExpired):
		return Temporal
	case errors.Is(err, ErrInsufficientStakedBalance),
		errors.Is(err, ErrInsufficientLiquidity),
		errors.Is(err, transfer.ErrInsufficientFunds):
		return Balance
	case errors.Is(err, ErrMathOverflow):
		return Arithmetic
	case errors.Is(err, ErrInvalidProof):
		return Verification
	case errors.Is(err, ErrSlippageTooHigh):
		return Profitability
	case errors.Is(err, storage.ErrPoolNotFound),
		errors.Is(err, storage.ErrRecordNotFound),
		errors.Is(err, storage.ErrTokenAccountNotFound),
		errors.Is(err, storage.ErrMintNotFound),
		errors.Is(err, storage.ErrNativeAccountNotFound):
		return NotFound
	case errors.Is(err, storage.ErrAccountAlreadyInUse):
		return AlreadyInitialized
	default:
		return Unknown
	}
}

// ClassifyString is [Classify] in the form the processor logs.
func ClassifyString(err error) string {
	return Classify(err).String()
}
