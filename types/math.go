// SPDX-License-Identifier: BUSL-1.1
//
// Copyright (C) 2025, NASD Inc. All rights reserved.
// Use of this software is governed by the Business Source License included
// in the LICENSE file of this repository and at www.mariadb.com/bsl11.
//
// ANY USE OF THE LICENSED WORK IN VIOLATION OF THIS LICENSE WILL AUTOMATICALLY
// TERMINATE YOUR RIGHTS UNDER THIS LICENSE FOR THE CURRENT AND ALL OTHER
// VERSIONS OF THE LICENSED WORK.
//
// THIS LICENSE DOES NOT GRANT YOU ANY RIGHT IN ANY TRADEMARK OR LOGO OF
// LICENSOR OR ITS AFFILIATES (PROVIDED THAT YOU MAY USE A TRADEMARK OR LOGO OF
// LICENSOR AS EXPRESSLY REQUIRED BY THIS LICENSE).
//
// TO THE EXTENT PERMITTED BY APPLICABLE LAW, THE LICENSED WORK IS PROVIDED ON
// AN "AS IS" BASIS. LICENSOR HEREBY DISCLAIMS ALL WARRANTIES AND CONDITIONS,
// EXPRESS OR IMPLIED, INCLUDING (WITHOUT LIMITATION) WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE, NON-INFRINGEMENT, AND
// TITLE.

package types

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// MaxAmountBitLen bounds every share and reserve amount tracked by the vault.
const MaxAmountBitLen = 128

// CheckAmount returns ErrArithmeticOverflow if amount does not fit in an
// unsigned 128-bit integer.
func CheckAmount(amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return errors.Wrap(ErrArithmeticOverflow, "amount must be non-negative")
	}
	if amount.BigInt().BitLen() > MaxAmountBitLen {
		return errors.Wrapf(ErrArithmeticOverflow, "%s exceeds %d bits", amount, MaxAmountBitLen)
	}
	return nil
}

// MultiplyRatio computes floor(amount * numerator / denominator). The product
// is kept at full precision before dividing; only the result is bounded.
func MultiplyRatio(amount, numerator, denominator math.Int) (math.Int, error) {
	if denominator.IsNil() || denominator.IsZero() {
		return math.ZeroInt(), ErrDivisionByZero
	}

	product, err := amount.SafeMul(numerator)
	if err != nil {
		return math.ZeroInt(), errors.Wrap(ErrArithmeticOverflow, err.Error())
	}
	result, err := product.SafeQuo(denominator)
	if err != nil {
		return math.ZeroInt(), errors.Wrap(ErrArithmeticOverflow, err.Error())
	}

	if err := CheckAmount(result); err != nil {
		return math.ZeroInt(), err
	}
	return result, nil
}

// SafeAddAmount adds two vault amounts, enforcing the 128-bit bound.
func SafeAddAmount(a, b math.Int) (math.Int, error) {
	sum, err := a.SafeAdd(b)
	if err != nil {
		return math.ZeroInt(), errors.Wrap(ErrArithmeticOverflow, err.Error())
	}
	if err := CheckAmount(sum); err != nil {
		return math.ZeroInt(), err
	}
	return sum, nil
}

// SafeSubAmount subtracts b from a, failing when the result would go negative.
func SafeSubAmount(a, b math.Int) (math.Int, error) {
	diff, err := a.SafeSub(b)
	if err != nil || diff.IsNegative() {
		return math.ZeroInt(), errors.Wrapf(ErrArithmeticOverflow, "cannot subtract %s from %s", b, a)
	}
	return diff, nil
}
