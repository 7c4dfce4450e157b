// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/codec"
)

var _ chain.Rules = (*Rules)(nil)

type Rules struct {
	programID codec.Address
	pool      codec.Address
	mint      codec.Address
}

func New(programID codec.Address, pool codec.Address, mint codec.Address) *Rules {
	return &Rules{programID, pool, mint}
}

func (r *Rules) GetProgramID() codec.Address {
	return r.programID
}

func (r *Rules) GetPoolAddress() codec.Address {
	return r.pool
}

func (r *Rules) GetTokenMint() codec.Address {
	return r.mint
}
