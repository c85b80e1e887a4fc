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
	"bytes"
	"context"
	"time"

	"cosmossdk.io/collections"
	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"vault.noble.xyz/v1/types"
)

// CreateUnlockingPosition burns shares from circulation and records an
// unlocking position whose payout is pinned at the current exchange rate.
// Later reserve or supply changes never alter the pinned amount.
func (k *Keeper) CreateUnlockingPosition(ctx context.Context, config types.VaultConfig, owner []byte, shares, totalReserve math.Int) (types.UnlockingPosition, error) {
	amount, err := k.ConvertToReserve(ctx, shares, totalReserve)
	if err != nil {
		return types.UnlockingPosition{}, errors.Wrap(err, "unable to compute unlocking amount")
	}

	if err := k.burnShares(ctx, shares); err != nil {
		return types.UnlockingPosition{}, err
	}

	id, err := k.NextUnlockingPositionID(ctx)
	if err != nil {
		return types.UnlockingPosition{}, errors.Wrap(err, "unable to allocate lockup id")
	}

	position := types.UnlockingPosition{
		ID:          id,
		Owner:       owner,
		ReleaseTime: k.header.GetHeaderInfo(ctx).Time.Add(config.LockupDuration),
		Amount:      amount,
	}
	if err := k.SetUnlockingPosition(ctx, position); err != nil {
		return types.UnlockingPosition{}, errors.Wrap(err, "unable to persist unlocking position")
	}
	if err := k.addTotalUnlocking(ctx, amount); err != nil {
		return types.UnlockingPosition{}, errors.Wrap(err, "unable to update total unlocking amount")
	}

	return position, nil
}

// WithdrawUnlockingPosition removes a matured position owned by caller and
// returns it so the pinned amount can be paid out.
func (k *Keeper) WithdrawUnlockingPosition(ctx context.Context, id uint64, caller []byte) (types.UnlockingPosition, error) {
	position, found, err := k.GetUnlockingPosition(ctx, id)
	if err != nil {
		return types.UnlockingPosition{}, errors.Wrap(err, "unable to fetch unlocking position")
	}
	if !found {
		return types.UnlockingPosition{}, errors.Wrapf(types.ErrNotFound, "lockup id %d", id)
	}

	now := k.header.GetHeaderInfo(ctx).Time
	if !position.IsMatured(now) {
		return types.UnlockingPosition{}, errors.Wrapf(types.ErrNotMatured, "lockup id %d releases at %s", id, position.ReleaseTime.Format(time.RFC3339))
	}
	if !bytes.Equal(caller, position.Owner) {
		return types.UnlockingPosition{}, errors.Wrapf(types.ErrUnauthorized, "lockup id %d does not belong to caller", id)
	}

	if err := k.removeUnlockingPosition(ctx, position); err != nil {
		return types.UnlockingPosition{}, err
	}

	return position, nil
}

// ForceWithdrawUnlockingPosition pays out an unlocking position regardless of
// its maturity. Without an amount the whole position is consumed; with one,
// only that amount is deducted and the remainder keeps its id and release
// time. A remainder of zero removes the position.
func (k *Keeper) ForceWithdrawUnlockingPosition(ctx context.Context, id uint64, amount *math.Int) (withdrawn math.Int, remaining math.Int, err error) {
	position, found, err := k.GetUnlockingPosition(ctx, id)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), errors.Wrap(err, "unable to fetch unlocking position")
	}
	if !found {
		return math.ZeroInt(), math.ZeroInt(), errors.Wrapf(types.ErrNotFound, "lockup id %d", id)
	}

	if amount == nil {
		if err := k.removeUnlockingPosition(ctx, position); err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		return position.Amount, math.ZeroInt(), nil
	}

	if amount.IsNil() || !amount.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), errors.Wrap(types.ErrInvalidRequest, "force withdraw amount must be positive")
	}
	if amount.GT(position.Amount) {
		return math.ZeroInt(), math.ZeroInt(), errors.Wrapf(types.ErrInsufficientPosition, "requested %s, lockup id %d holds %s", amount, id, position.Amount)
	}

	remaining = position.Amount.Sub(*amount)
	if remaining.IsZero() {
		if err := k.removeUnlockingPosition(ctx, position); err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		return *amount, remaining, nil
	}

	position.Amount = remaining
	if err := k.SetUnlockingPosition(ctx, position); err != nil {
		return math.ZeroInt(), math.ZeroInt(), errors.Wrap(err, "unable to persist unlocking position")
	}
	if err := k.subtractTotalUnlocking(ctx, *amount); err != nil {
		return math.ZeroInt(), math.ZeroInt(), errors.Wrap(err, "unable to update total unlocking amount")
	}

	return *amount, remaining, nil
}

func (k *Keeper) removeUnlockingPosition(ctx context.Context, position types.UnlockingPosition) error {
	if err := k.DeleteUnlockingPosition(ctx, position.ID); err != nil {
		return errors.Wrap(err, "unable to remove unlocking position")
	}
	if err := k.subtractTotalUnlocking(ctx, position.Amount); err != nil {
		return errors.Wrap(err, "unable to update total unlocking amount")
	}
	return nil
}

// GetUnlockingPositionsByOwner lists an owner's positions in ascending id
// order. startAfter is an exclusive lower bound on the id, so pages stay
// stable while new positions are created.
func (k *Keeper) GetUnlockingPositionsByOwner(ctx context.Context, owner []byte, startAfter *uint64, limit uint32) ([]types.UnlockingPosition, error) {
	ranger := collections.NewPrefixedPairRange[[]byte, uint64](owner)
	if startAfter != nil {
		ranger = ranger.StartExclusive(*startAfter)
	}

	iter, err := k.UnlockingPositions.Indexes.ByOwner.Iterate(ctx, ranger)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	positions := make([]types.UnlockingPosition, 0, limit)
	for ; iter.Valid() && uint32(len(positions)) < limit; iter.Next() {
		id, err := iter.PrimaryKey()
		if err != nil {
			return nil, err
		}
		position, err := k.UnlockingPositions.Get(ctx, id)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to fetch unlocking position %d", id)
		}
		positions = append(positions, position)
	}

	return positions, nil
}
