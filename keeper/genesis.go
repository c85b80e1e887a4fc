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
	"fmt"

	"vault.noble.xyz/v1/types"
)

// InitGenesis instantiates the vault. Genesis must be valid; any failure is
// fatal to chain startup.
func (k *Keeper) InitGenesis(ctx context.Context, genesis types.GenesisState) {
	if err := genesis.Validate(k.address); err != nil {
		panic(fmt.Errorf("invalid vault genesis state: %w", err))
	}

	if err := k.Config.Set(ctx, genesis.Config); err != nil {
		panic(fmt.Errorf("unable to set vault config: %w", err))
	}

	if !genesis.TotalShares.IsNil() {
		if err := k.SetTotalShares(ctx, genesis.TotalShares); err != nil {
			panic(fmt.Errorf("unable to set total shares: %w", err))
		}
	}

	if genesis.NextLockupID > 0 {
		if err := k.NextLockupID.Set(ctx, genesis.NextLockupID); err != nil {
			panic(fmt.Errorf("unable to set next lockup id: %w", err))
		}
	}

	for _, position := range genesis.UnlockingPositions {
		if err := k.SetUnlockingPosition(ctx, position); err != nil {
			panic(fmt.Errorf("unable to set unlocking position %d: %w", position.ID, err))
		}
		if err := k.addTotalUnlocking(ctx, position.Amount); err != nil {
			panic(fmt.Errorf("unable to accumulate unlocking position %d: %w", position.ID, err))
		}
	}

	for _, address := range genesis.ForceWithdrawWhitelist {
		bz, err := k.address.StringToBytes(address)
		if err != nil {
			panic(fmt.Errorf("unable to decode whitelisted address %s: %w", address, err))
		}
		if err := k.ForceUnlockWhitelist.Set(ctx, bz); err != nil {
			panic(fmt.Errorf("unable to whitelist %s: %w", address, err))
		}
	}
}

// ExportGenesis returns the full vault state. The total unlocking amount is
// derived from the exported positions and is not exported on its own.
func (k *Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	config, err := k.GetVaultConfig(ctx)
	if err != nil {
		panic(err)
	}

	genesis := types.NewGenesisState(config)

	genesis.TotalShares, err = k.GetTotalShares(ctx)
	if err != nil {
		panic(err)
	}

	genesis.NextLockupID, err = k.PeekUnlockingPositionID(ctx)
	if err != nil {
		panic(err)
	}

	err = k.IterateUnlockingPositions(ctx, func(_ uint64, position types.UnlockingPosition) (bool, error) {
		genesis.UnlockingPositions = append(genesis.UnlockingPositions, position)
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	whitelisted, err := k.GetAllWhitelisted(ctx)
	if err != nil {
		panic(err)
	}
	for _, bz := range whitelisted {
		address, err := k.address.BytesToString(bz)
		if err != nil {
			panic(err)
		}
		genesis.ForceWithdrawWhitelist = append(genesis.ForceWithdrawWhitelist, address)
	}

	return genesis
}
