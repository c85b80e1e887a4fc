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
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"

	"vault.noble.xyz/v1/types"
)

// GetVaultConfig returns the vault configuration. Unlike the other getters a
// missing configuration is an error, since no operation is meaningful before
// the vault has been instantiated.
func (k *Keeper) GetVaultConfig(ctx context.Context) (types.VaultConfig, error) {
	config, err := k.Config.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.VaultConfig{}, types.ErrInvalidConfig.Wrap("vault has not been instantiated")
		}
		return types.VaultConfig{}, err
	}

	return config, nil
}

// GetTotalShares returns the total share supply, zero when unset.
func (k *Keeper) GetTotalShares(ctx context.Context) (math.Int, error) {
	shares, err := k.TotalShares.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}

	return shares, nil
}

// SetTotalShares persists the total share supply.
func (k *Keeper) SetTotalShares(ctx context.Context, shares math.Int) error {
	if err := types.CheckAmount(shares); err != nil {
		return err
	}
	return k.TotalShares.Set(ctx, shares)
}

// GetTotalUnlocking returns the reserve amount owed to live unlocking
// positions, zero when unset.
func (k *Keeper) GetTotalUnlocking(ctx context.Context) (math.Int, error) {
	amount, err := k.TotalUnlocking.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}

	return amount, nil
}

func (k *Keeper) addTotalUnlocking(ctx context.Context, amount math.Int) error {
	current, err := k.GetTotalUnlocking(ctx)
	if err != nil {
		return err
	}
	current, err = types.SafeAddAmount(current, amount)
	if err != nil {
		return err
	}
	return k.TotalUnlocking.Set(ctx, current)
}

func (k *Keeper) subtractTotalUnlocking(ctx context.Context, amount math.Int) error {
	current, err := k.GetTotalUnlocking(ctx)
	if err != nil {
		return err
	}
	current, err = types.SafeSubAmount(current, amount)
	if err != nil {
		return err
	}
	return k.TotalUnlocking.Set(ctx, current)
}

// NextUnlockingPositionID increments and returns the next unlocking position
// identifier. Identifiers start at one and are never reused, even after the
// position they were assigned to has been removed.
func (k *Keeper) NextUnlockingPositionID(ctx context.Context) (uint64, error) {
	next, err := k.NextLockupID.Get(ctx)
	if err != nil {
		if !errors.Is(err, collections.ErrNotFound) {
			return 0, err
		}

		next = 1
	} else {
		next++
	}

	if err := k.NextLockupID.Set(ctx, next); err != nil {
		return 0, err
	}

	return next, nil
}

// PeekUnlockingPositionID returns the last allocated unlocking position id
// without mutating state. Zero means no position has been created yet.
func (k *Keeper) PeekUnlockingPositionID(ctx context.Context) (uint64, error) {
	id, err := k.NextLockupID.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return id, nil
}

// GetUnlockingPosition fetches an unlocking position by id. The boolean flag
// indicates whether the position existed in state.
func (k *Keeper) GetUnlockingPosition(ctx context.Context, id uint64) (types.UnlockingPosition, bool, error) {
	position, err := k.UnlockingPositions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.UnlockingPosition{}, false, nil
		}
		return types.UnlockingPosition{}, false, err
	}

	return position, true, nil
}

// SetUnlockingPosition writes an unlocking position to state.
func (k *Keeper) SetUnlockingPosition(ctx context.Context, position types.UnlockingPosition) error {
	return k.UnlockingPositions.Set(ctx, position.ID, position)
}

// DeleteUnlockingPosition removes an unlocking position from state.
func (k *Keeper) DeleteUnlockingPosition(ctx context.Context, id uint64) error {
	return k.UnlockingPositions.Remove(ctx, id)
}

// IterateUnlockingPositions walks every unlocking position in ascending id
// order. Returning true from the callback stops the iteration early.
func (k *Keeper) IterateUnlockingPositions(ctx context.Context, fn func(id uint64, position types.UnlockingPosition) (bool, error)) error {
	return k.UnlockingPositions.Walk(ctx, nil, fn)
}
