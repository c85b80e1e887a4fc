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

package keeper

import (
	"context"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"vault.noble.xyz/v1/types"
)

// snapshotReserve reads the vault's reserve balance. Every operation takes
// exactly one snapshot and performs all of its arithmetic against it.
func (k *Keeper) snapshotReserve(ctx context.Context, config types.VaultConfig) math.Int {
	return k.bank.GetBalance(ctx, types.ModuleAddress, config.ReserveDenom).Amount
}

// effectiveReserve removes the reserve already owed to unlocking positions
// from a balance snapshot. Those tokens are still custodied by the vault but
// no longer back any outstanding share.
func (k *Keeper) effectiveReserve(ctx context.Context, totalReserve math.Int) (math.Int, error) {
	unlocking, err := k.GetTotalUnlocking(ctx)
	if err != nil {
		return math.ZeroInt(), errors.Wrap(err, "unable to fetch total unlocking amount")
	}
	if totalReserve.LTE(unlocking) {
		return math.ZeroInt(), nil
	}
	return totalReserve.Sub(unlocking), nil
}

// ConvertToShares returns the amount of shares minted for reserveAmount.
//
// When deductDeposit is set, reserveAmount is assumed to already be part of
// totalReserve and is subtracted to recover the pre-deposit baseline. The
// result is rounded down, so rounding always favours the vault.
func (k *Keeper) ConvertToShares(ctx context.Context, reserveAmount, totalReserve math.Int, deductDeposit bool) (math.Int, error) {
	totalShares, err := k.GetTotalShares(ctx)
	if err != nil {
		return math.ZeroInt(), errors.Wrap(err, "unable to fetch total share supply")
	}

	if deductDeposit {
		totalReserve, err = types.SafeSubAmount(totalReserve, reserveAmount)
		if err != nil {
			return math.ZeroInt(), errors.Wrap(err, "deposit exceeds reported reserve")
		}
	}
	reserve, err := k.effectiveReserve(ctx, totalReserve)
	if err != nil {
		return math.ZeroInt(), err
	}

	if totalShares.IsZero() || reserve.IsZero() {
		if err := types.CheckAmount(reserveAmount); err != nil {
			return math.ZeroInt(), err
		}
		return reserveAmount, nil
	}

	return types.MultiplyRatio(reserveAmount, totalShares, reserve)
}

// ConvertToReserve returns the reserve amount owed for shareAmount at the
// current exchange rate, rounded down.
func (k *Keeper) ConvertToReserve(ctx context.Context, shareAmount, totalReserve math.Int) (math.Int, error) {
	totalShares, err := k.GetTotalShares(ctx)
	if err != nil {
		return math.ZeroInt(), errors.Wrap(err, "unable to fetch total share supply")
	}

	reserve, err := k.effectiveReserve(ctx, totalReserve)
	if err != nil {
		return math.ZeroInt(), err
	}

	if totalShares.IsZero() || reserve.IsZero() {
		if err := types.CheckAmount(shareAmount); err != nil {
			return math.ZeroInt(), err
		}
		return shareAmount, nil
	}

	return types.MultiplyRatio(shareAmount, reserve, totalShares)
}

// ExchangeRate returns the reserve amount backing a single share. A vault
// without supply or reserve trades one to one.
func (k *Keeper) ExchangeRate(ctx context.Context, totalReserve math.Int) (math.LegacyDec, error) {
	totalShares, err := k.GetTotalShares(ctx)
	if err != nil {
		return math.LegacyZeroDec(), errors.Wrap(err, "unable to fetch total share supply")
	}

	reserve, err := k.effectiveReserve(ctx, totalReserve)
	if err != nil {
		return math.LegacyZeroDec(), err
	}

	if totalShares.IsZero() || reserve.IsZero() {
		return math.LegacyOneDec(), nil
	}

	return math.LegacyNewDecFromInt(reserve).QuoInt(totalShares), nil
}

func (k *Keeper) mintShares(ctx context.Context, amount math.Int) error {
	totalShares, err := k.GetTotalShares(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to fetch total share supply")
	}
	totalShares, err = types.SafeAddAmount(totalShares, amount)
	if err != nil {
		return errors.Wrap(err, "unable to update total share supply")
	}
	return k.SetTotalShares(ctx, totalShares)
}

func (k *Keeper) burnShares(ctx context.Context, amount math.Int) error {
	totalShares, err := k.GetTotalShares(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to fetch total share supply")
	}
	totalShares, err = types.SafeSubAmount(totalShares, amount)
	if err != nil {
		return errors.Wrap(err, "unable to update total share supply")
	}
	return k.SetTotalShares(ctx, totalShares)
}
