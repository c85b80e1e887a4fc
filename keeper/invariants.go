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
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"vault.noble.xyz/v1/types"
)

// RegisterInvariants registers the vault module invariants.
func RegisterInvariants(ir sdk.InvariantRegistry, k *Keeper) {
	ir.RegisterRoute(types.ModuleName, "total-unlocking", TotalUnlockingInvariant(k))
	ir.RegisterRoute(types.ModuleName, "lockup-ids", LockupIDInvariant(k))
}

// TotalUnlockingInvariant checks that the stored total unlocking amount equals
// the sum of all live unlocking positions.
func TotalUnlockingInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		sum := math.ZeroInt()
		err := k.IterateUnlockingPositions(ctx, func(_ uint64, position types.UnlockingPosition) (bool, error) {
			sum = sum.Add(position.Amount)
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "total-unlocking", err.Error()), true
		}

		total, err := k.GetTotalUnlocking(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "total-unlocking", err.Error()), true
		}

		broken := !sum.Equal(total)
		return sdk.FormatInvariant(
			types.ModuleName, "total-unlocking",
			fmt.Sprintf("\tsum of unlocking positions: %s\n\tstored total unlocking: %s\n", sum, total),
		), broken
	}
}

// LockupIDInvariant checks that no unlocking position carries an id that has
// not been allocated yet.
func LockupIDInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		last, err := k.PeekUnlockingPositionID(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "lockup-ids", err.Error()), true
		}

		var (
			msg    string
			broken bool
		)
		err = k.IterateUnlockingPositions(ctx, func(id uint64, position types.UnlockingPosition) (bool, error) {
			if id == 0 || id > last || position.ID != id {
				broken = true
				msg += fmt.Sprintf("\tunlocking position %d (stored id %d) outside allocated range [1, %d]\n", id, position.ID, last)
			}
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "lockup-ids", err.Error()), true
		}

		return sdk.FormatInvariant(types.ModuleName, "lockup-ids", msg), broken
	}
}
