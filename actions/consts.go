// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

const (
	// LockupPeriod is how long (in seconds) a stake stays locked after the
	// latest deposit.
	LockupPeriod int64 = 300

	// BonusWindow is how long (in seconds) a stake must have been held for
	// a withdrawal to be bonus eligible.
	BonusWindow int64 = 604_800

	// BonusDivisor makes the bonus 5% of the withdrawn amount.
	BonusDivisor uint64 = 20

	// FeeDenominator makes the fee multiplier parts per thousand.
	FeeDenominator uint64 = 1_000
)
