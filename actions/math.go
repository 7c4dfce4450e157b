// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"fmt"

	"github.com/zkarb/zkarbvm/consts"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

func add(a, b uint64) (uint64, error) {
	v, err := smath.Add(a, b)
	if err != nil {
		return 0, fmt.Errorf("%w: %d + %d", ErrMathOverflow, a, b)
	}
	return v, nil
}

func sub(a, b uint64) (uint64, error) {
	v, err := smath.Sub(a, b)
	if err != nil {
		return 0, fmt.Errorf("%w: %d - %d", ErrMathOverflow, a, b)
	}
	return v, nil
}

func mul(a, b uint64) (uint64, error) {
	v, err := smath.Mul(a, b)
	if err != nil {
		return 0, fmt.Errorf("%w: %d * %d", ErrMathOverflow, a, b)
	}
	return v, nil
}

// addTime returns [t] + [d] for a non-negative [d].
func addTime(t int64, d int64) (int64, error) {
	if t > consts.MaxInt64-d {
		return 0, fmt.Errorf("%w: %d + %d", ErrMathOverflow, t, d)
	}
	return t + d, nil
}

func subTime(a, b int64) (int64, error) {
	v := a - b
	if (b > 0 && v > a) || (b < 0 && v < a) {
		return 0, fmt.Errorf("%w: %d - %d", ErrMathOverflow, a, b)
	}
	return v, nil
}

// fee is [profit] * [multiplier] / 1000, rounded down.
func fee(profit uint64, multiplier uint64) (uint64, error) {
	v, err := mul(profit, multiplier)
	if err != nil {
		return 0, err
	}
	return v / FeeDenominator, nil
}
