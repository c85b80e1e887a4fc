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

package keeper_test

import (
	"math/big"
	"testing"
	"time"

	"cosmossdk.io/math"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault.noble.xyz/v1/keeper"
	"vault.noble.xyz/v1/types"
	"vault.noble.xyz/v1/utils"
	"vault.noble.xyz/v1/utils/mocks"
)

func TestGenesisRoundTrip(t *testing.T) {
	k, server, bank, ctx, admin := setupTest(t)
	bob, alice := utils.TestAccount(), utils.TestAccount()

	// ARRANGE: Shares, positions and a whitelist entry
	deposit(t, ctx, server, bank, bob, 50*ONE)
	unlock(t, ctx, server, bob, math.NewInt(10*ONE))
	unlock(t, ctx, server, bob, math.NewInt(5*ONE))
	_, err := server.UpdateForceWithdrawWhitelist(ctx, &types.MsgUpdateForceWithdrawWhitelist{
		Sender:       admin.Address,
		AddAddresses: []string{alice.Address},
	})
	require.NoError(t, err)

	// ACT: Export and import into a fresh keeper
	exported := k.ExportGenesis(ctx)
	k2, _, ctx2 := mocks.VaultKeeper(t)
	k2.InitGenesis(ctx2, *exported)

	// ASSERT: State carried over
	assert.Equal(t, exported, k2.ExportGenesis(ctx2))
	assert.Equal(t, uint64(2), exported.NextLockupID)
	assert.Len(t, exported.UnlockingPositions, 2)
	assert.Equal(t, []string{alice.Address}, exported.ForceWithdrawWhitelist)

	totalUnlocking, err := k2.GetTotalUnlocking(ctx2)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(15*ONE), totalUnlocking)

	// ASSERT: Identifiers continue after the imported ones
	id, err := k2.NextUnlockingPositionID(ctx2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)
}

func TestGenesisValidate(t *testing.T) {
	admin, bob := utils.TestAccount(), utils.TestAccount()

	valid := func() *types.GenesisState {
		genesis := types.NewGenesisState(types.VaultConfig{
			ReserveDenom:   ReserveDenom,
			ShareDenom:     ShareDenom,
			Admin:          admin.Address,
			LockupDuration: time.Hour,
			Extensions:     []types.Extension{types.ExtensionLockup},
		})
		genesis.NextLockupID = 1
		genesis.UnlockingPositions = []types.UnlockingPosition{{
			ID:          1,
			Owner:       bob.Bytes,
			ReleaseTime: startTime,
			Amount:      math.NewInt(ONE),
		}}
		return genesis
	}

	cdc := addresscodec.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix())
	require.NoError(t, valid().Validate(cdc))

	for name, tc := range map[string]struct {
		mutate func(*types.GenesisState)
		err    error
	}{
		"same denoms": {
			mutate: func(gs *types.GenesisState) { gs.Config.ShareDenom = ReserveDenom },
			err:    types.ErrInvalidConfig,
		},
		"invalid admin": {
			mutate: func(gs *types.GenesisState) { gs.Config.Admin = bob.Invalid },
			err:    types.ErrInvalidConfig,
		},
		"negative lockup": {
			mutate: func(gs *types.GenesisState) { gs.Config.LockupDuration = -time.Second },
			err:    types.ErrInvalidConfig,
		},
		"unknown extension": {
			mutate: func(gs *types.GenesisState) { gs.Config.Extensions = []types.Extension{"yield"} },
			err:    types.ErrInvalidConfig,
		},
		"duplicate extension": {
			mutate: func(gs *types.GenesisState) {
				gs.Config.Extensions = []types.Extension{types.ExtensionLockup, types.ExtensionLockup}
			},
			err: types.ErrInvalidConfig,
		},
		"unallocated position id": {
			mutate: func(gs *types.GenesisState) { gs.NextLockupID = 0 },
			err:    types.ErrInvalidRequest,
		},
		"duplicate position id": {
			mutate: func(gs *types.GenesisState) {
				gs.UnlockingPositions = append(gs.UnlockingPositions, gs.UnlockingPositions[0])
			},
			err: types.ErrInvalidRequest,
		},
		"oversized shares": {
			mutate: func(gs *types.GenesisState) {
				gs.TotalShares = math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), types.MaxAmountBitLen))
			},
			err: types.ErrArithmeticOverflow,
		},
		"duplicate whitelist entry": {
			mutate: func(gs *types.GenesisState) {
				gs.ForceWithdrawWhitelist = []string{bob.Address, bob.Address}
			},
			err: types.ErrInvalidRequest,
		},
	} {
		t.Run(name, func(t *testing.T) {
			genesis := valid()
			tc.mutate(genesis)
			require.ErrorIs(t, genesis.Validate(cdc), tc.err)
		})
	}
}

func TestInitGenesisPanicsOnInvalidState(t *testing.T) {
	k, _, ctx := mocks.VaultKeeper(t)

	require.Panics(t, func() {
		k.InitGenesis(ctx, types.GenesisState{})
	})
}

func TestInvariants(t *testing.T) {
	k, server, bank, ctx, _ := setupTest(t)
	bob := utils.TestAccount()
	deposit(t, ctx, server, bank, bob, 10*ONE)
	unlock(t, ctx, server, bob, math.NewInt(4*ONE))

	// ASSERT: Healthy state
	_, broken := keeper.TotalUnlockingInvariant(k)(ctx)
	assert.False(t, broken)
	_, broken = keeper.LockupIDInvariant(k)(ctx)
	assert.False(t, broken)

	// ACT: Corrupt the aggregate
	require.NoError(t, k.TotalUnlocking.Set(ctx, math.NewInt(ONE)))

	// ASSERT: Detected
	msg, broken := keeper.TotalUnlockingInvariant(k)(ctx)
	assert.True(t, broken)
	assert.Contains(t, msg, "total-unlocking")

	// ACT: Store a position with an id that was never allocated
	require.NoError(t, k.SetUnlockingPosition(ctx, types.UnlockingPosition{
		ID:          9,
		Owner:       bob.Bytes,
		ReleaseTime: startTime,
		Amount:      math.NewInt(ONE),
	}))

	// ASSERT: Detected
	_, broken = keeper.LockupIDInvariant(k)(ctx)
	assert.True(t, broken)
}
