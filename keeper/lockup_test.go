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
	"time"

	"cosmossdk.io/core/header"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault.noble.xyz/v1/types"
	"vault.noble.xyz/v1/utils"
)

func TestCreateUnlockingPosition(t *testing.T) {
	k, _, _, ctx, _ := setupTest(t)
	bob := utils.TestAccount()
	config, err := k.GetVaultConfig(ctx)
	require.NoError(t, err)

	// ARRANGE: 100 shares backed by 250 reserve
	require.NoError(t, k.SetTotalShares(ctx, math.NewInt(100)))

	// ACT: Surrender 10 shares
	position, err := k.CreateUnlockingPosition(ctx, config, bob.Bytes, math.NewInt(10), math.NewInt(250))

	// ASSERT: Pinned at 2.5 per share and supply reduced
	require.NoError(t, err)
	assert.Equal(t, uint64(1), position.ID)
	assert.Equal(t, math.NewInt(25), position.Amount)
	assert.Equal(t, []byte(bob.Bytes), position.Owner)
	totalShares, err := k.GetTotalShares(ctx)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(90), totalShares)

	// ACT: Surrender more shares than exist
	_, err = k.CreateUnlockingPosition(ctx, config, bob.Bytes, math.NewInt(1000), math.NewInt(250))

	// ASSERT: Rejected
	require.ErrorIs(t, err, types.ErrArithmeticOverflow)
}

func TestUnlockingReserveExcludedFromRate(t *testing.T) {
	k, _, _, ctx, _ := setupTest(t)
	bob := utils.TestAccount()
	config, err := k.GetVaultConfig(ctx)
	require.NoError(t, err)
	require.NoError(t, k.SetTotalShares(ctx, math.NewInt(100)))

	// ARRANGE: Half of the supply is unlocked at a rate of two
	_, err = k.CreateUnlockingPosition(ctx, config, bob.Bytes, math.NewInt(50), math.NewInt(200))
	require.NoError(t, err)

	// ACT: Price the remaining supply against the same custodied balance
	reserve, err := k.ConvertToReserve(ctx, math.NewInt(50), math.NewInt(200))

	// ASSERT: Remaining holders keep a rate of two
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(100), reserve)

	rate, err := k.ExchangeRate(ctx, math.NewInt(200))
	require.NoError(t, err)
	assert.True(t, math.LegacyNewDec(2).Equal(rate), rate.String())
}

func TestForceWithdrawUnlockingPositionInvalidAmount(t *testing.T) {
	k, _, _, ctx, _ := setupTest(t)
	bob := utils.TestAccount()
	config, err := k.GetVaultConfig(ctx)
	require.NoError(t, err)
	require.NoError(t, k.SetTotalShares(ctx, math.NewInt(10)))
	position, err := k.CreateUnlockingPosition(ctx, config, bob.Bytes, math.NewInt(10), math.NewInt(10))
	require.NoError(t, err)

	for name, amount := range map[string]math.Int{
		"negative": math.NewInt(-1),
		"zero":     math.ZeroInt(),
		"nil":      {},
	} {
		// ACT: Withdraw an invalid amount
		_, _, err = k.ForceWithdrawUnlockingPosition(ctx, position.ID, &amount)

		// ASSERT: Rejected and position intact
		require.ErrorIs(t, err, types.ErrInvalidRequest, name)
		stored, found, err := k.GetUnlockingPosition(ctx, position.ID)
		require.NoError(t, err)
		require.True(t, found, name)
		assert.Equal(t, position.Amount, stored.Amount, name)
	}

	totalUnlocking, err := k.GetTotalUnlocking(ctx)
	require.NoError(t, err)
	assert.Equal(t, position.Amount, totalUnlocking)
}

func TestGetUnlockingPositionsByOwner(t *testing.T) {
	k, _, _, ctx, _ := setupTest(t)
	bob, alice := utils.TestAccount(), utils.TestAccount()
	config, err := k.GetVaultConfig(ctx)
	require.NoError(t, err)
	require.NoError(t, k.SetTotalShares(ctx, math.NewInt(100)))

	// ARRANGE: Interleaved positions created over time
	for i, owner := range []utils.Account{alice, bob, alice, bob} {
		ctx = ctx.WithHeaderInfo(header.Info{Time: startTime.Add(time.Duration(i) * time.Hour)})
		_, err := k.CreateUnlockingPosition(ctx, config, owner.Bytes, math.NewInt(1), math.NewInt(100))
		require.NoError(t, err)
	}

	// ACT
	positions, err := k.GetUnlockingPositionsByOwner(ctx, alice.Bytes, nil, types.DefaultQueryLimit)

	// ASSERT: Only Alice's positions, ascending
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, uint64(1), positions[0].ID)
	assert.Equal(t, uint64(3), positions[1].ID)
	assert.Equal(t, startTime.Add(2*time.Hour).Add(LockupDuration), positions[1].ReleaseTime)

	// ACT: Unknown owner
	positions, err = k.GetUnlockingPositionsByOwner(ctx, utils.TestAccount().Bytes, nil, types.DefaultQueryLimit)

	// ASSERT: Empty
	require.NoError(t, err)
	assert.Empty(t, positions)
}
