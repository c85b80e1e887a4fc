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
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault.noble.xyz/v1/keeper"
	"vault.noble.xyz/v1/types"
	"vault.noble.xyz/v1/utils"
)

func TestQueryInfo(t *testing.T) {
	k, _, _, ctx, _ := setupTest(t)
	server := keeper.NewQueryServer(k)

	standard, err := server.VaultStandardInfo(ctx, &types.QueryVaultStandardInfoRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint16(1), standard.Version)
	assert.Equal(t, []string{"lockup", "force-unlock"}, standard.Extensions)

	info, err := server.Info(ctx, &types.QueryInfoRequest{})
	require.NoError(t, err)
	assert.Equal(t, ReserveDenom, info.BaseToken)
	assert.Equal(t, ShareDenom, info.VaultToken)

	duration, err := server.LockupDuration(ctx, &types.QueryLockupDurationRequest{})
	require.NoError(t, err)
	assert.Equal(t, LockupDuration, duration.Duration)

	_, err = server.Info(ctx, nil)
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestQueryConversions(t *testing.T) {
	k, msgServer, bank, ctx, _ := setupTest(t)
	server := keeper.NewQueryServer(k)
	bob := utils.TestAccount()

	// ARRANGE: 100 shares backed by 150 USDN, 20 more USDN owed to a position
	deposit(t, ctx, msgServer, bank, bob, 120*ONE)
	unlock(t, ctx, msgServer, bob, math.NewInt(20*ONE))
	accrue(t, ctx, bank, 50*ONE)

	// ASSERT: Totals exclude the unlocking reserve
	assets, err := server.TotalAssets(ctx, &types.QueryTotalAssetsRequest{})
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(150*ONE), assets.Amount)
	supply, err := server.TotalVaultTokenSupply(ctx, &types.QueryTotalVaultTokenSupplyRequest{})
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(100*ONE), supply.Amount)

	// ASSERT: Previews match conversions
	preview, err := server.PreviewDeposit(ctx, &types.QueryPreviewDepositRequest{Amount: math.NewInt(30 * ONE)})
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(20*ONE), preview.Amount)
	converted, err := server.ConvertToShares(ctx, &types.QueryConvertToSharesRequest{Amount: math.NewInt(30 * ONE)})
	require.NoError(t, err)
	assert.Equal(t, preview.Amount, converted.Amount)

	preview, err = server.PreviewRedeem(ctx, &types.QueryPreviewRedeemRequest{Amount: math.NewInt(10 * ONE)})
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(15*ONE), preview.Amount)
	converted, err = server.ConvertToAssets(ctx, &types.QueryConvertToAssetsRequest{Amount: math.NewInt(10 * ONE)})
	require.NoError(t, err)
	assert.Equal(t, preview.Amount, converted.Amount)

	// ASSERT: Exchange rate quoted in the reserve denom only
	rate, err := server.VaultTokenExchangeRate(ctx, &types.QueryVaultTokenExchangeRateRequest{QuoteDenom: ReserveDenom})
	require.NoError(t, err)
	assert.True(t, math.LegacyMustNewDecFromStr("1.5").Equal(rate.Rate), rate.Rate.String())
	_, err = server.VaultTokenExchangeRate(ctx, &types.QueryVaultTokenExchangeRateRequest{QuoteDenom: "uatom"})
	require.ErrorIs(t, err, types.ErrDenomUnsupported)

	// ASSERT: Invalid amounts rejected
	_, err = server.PreviewDeposit(ctx, &types.QueryPreviewDepositRequest{Amount: math.NewInt(-1)})
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestQueryEmptyVaultExchangeRate(t *testing.T) {
	k, _, _, ctx, _ := setupTest(t)
	server := keeper.NewQueryServer(k)

	rate, err := server.VaultTokenExchangeRate(ctx, &types.QueryVaultTokenExchangeRateRequest{QuoteDenom: ReserveDenom})
	require.NoError(t, err)
	assert.True(t, math.LegacyOneDec().Equal(rate.Rate), rate.Rate.String())
}

func TestQueryUnlockingPositions(t *testing.T) {
	k, msgServer, bank, ctx, _ := setupTest(t)
	server := keeper.NewQueryServer(k)
	bob, alice := utils.TestAccount(), utils.TestAccount()

	// ARRANGE: Bob owns positions 1, 2, 3, 5 and 6, Alice owns 4
	deposit(t, ctx, msgServer, bank, bob, 10*ONE)
	deposit(t, ctx, msgServer, bank, alice, 10*ONE)
	for _, owner := range []utils.Account{bob, bob, bob, alice, bob, bob} {
		unlock(t, ctx, msgServer, owner, math.NewInt(ONE))
	}

	ids := func(res *types.QueryUnlockingPositionsResponse) []uint64 {
		var ids []uint64
		for _, position := range res.Positions {
			assert.Equal(t, bob.Address, position.Owner)
			ids = append(ids, position.ID)
		}
		return ids
	}
	limit := uint32(2)

	// ACT + ASSERT: First page
	res, err := server.UnlockingPositions(ctx, &types.QueryUnlockingPositionsRequest{Owner: bob.Address, Limit: &limit})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, ids(res))

	// ACT + ASSERT: Second page skips Alice's position
	startAfter := uint64(2)
	res, err = server.UnlockingPositions(ctx, &types.QueryUnlockingPositionsRequest{Owner: bob.Address, StartAfter: &startAfter, Limit: &limit})
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 5}, ids(res))

	// ACT + ASSERT: Last page
	startAfter = 5
	res, err = server.UnlockingPositions(ctx, &types.QueryUnlockingPositionsRequest{Owner: bob.Address, StartAfter: &startAfter})
	require.NoError(t, err)
	assert.Equal(t, []uint64{6}, ids(res))

	// ACT + ASSERT: Default limit
	res, err = server.UnlockingPositions(ctx, &types.QueryUnlockingPositionsRequest{Owner: bob.Address})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 5, 6}, ids(res))

	// ACT + ASSERT: Single position
	single, err := server.UnlockingPosition(ctx, &types.QueryUnlockingPositionRequest{LockupID: 4})
	require.NoError(t, err)
	assert.Equal(t, alice.Address, single.Position.Owner)
	assert.Equal(t, math.NewInt(ONE), single.Position.BaseTokenAmount)
	assert.Equal(t, startTime.Add(LockupDuration), single.Position.ReleaseAt)

	_, err = server.UnlockingPosition(ctx, &types.QueryUnlockingPositionRequest{LockupID: 99})
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestQueryUnlockingPositionsDefaultLimit(t *testing.T) {
	k, msgServer, bank, ctx, _ := setupTest(t)
	server := keeper.NewQueryServer(k)
	bob := utils.TestAccount()

	// ARRANGE: More positions than fit a default page
	deposit(t, ctx, msgServer, bank, bob, 20*ONE)
	for i := 0; i < 12; i++ {
		unlock(t, ctx, msgServer, bob, math.NewInt(ONE))
	}

	// ACT
	res, err := server.UnlockingPositions(ctx, &types.QueryUnlockingPositionsRequest{Owner: bob.Address})

	// ASSERT
	require.NoError(t, err)
	require.Len(t, res.Positions, int(types.DefaultQueryLimit))
	assert.Equal(t, uint64(1), res.Positions[0].ID)
	assert.Equal(t, uint64(10), res.Positions[9].ID)
}

func TestQueryForceWithdrawWhitelist(t *testing.T) {
	k, msgServer, _, ctx, admin := setupTest(t)
	server := keeper.NewQueryServer(k)

	accounts := []utils.Account{utils.TestAccount(), utils.TestAccount(), utils.TestAccount()}
	var addresses []string
	for _, account := range accounts {
		addresses = append(addresses, account.Address)
	}
	_, err := msgServer.UpdateForceWithdrawWhitelist(ctx, &types.MsgUpdateForceWithdrawWhitelist{
		Sender:       admin.Address,
		AddAddresses: addresses,
	})
	require.NoError(t, err)

	// ACT: Page through the whitelist two at a time
	limit := uint32(2)
	first, err := server.ForceWithdrawWhitelist(ctx, &types.QueryForceWithdrawWhitelistRequest{Limit: &limit})
	require.NoError(t, err)
	require.Len(t, first.Addresses, 2)
	second, err := server.ForceWithdrawWhitelist(ctx, &types.QueryForceWithdrawWhitelistRequest{StartAfter: first.Addresses[1], Limit: &limit})
	require.NoError(t, err)
	require.Len(t, second.Addresses, 1)

	// ASSERT: Every address returned exactly once
	assert.ElementsMatch(t, addresses, append(first.Addresses, second.Addresses...))
}
