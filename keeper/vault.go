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
	sdk "github.com/cosmos/cosmos-sdk/types"

	"vault.noble.xyz/v1/types"
)

// validateFunds requires funds to hold exactly one positive coin of denom.
// When amount is set, the coin must also match it exactly.
func validateFunds(funds sdk.Coins, denom string, amount *math.Int) (sdk.Coin, error) {
	if len(funds) != 1 {
		return sdk.Coin{}, errors.Wrapf(types.ErrInvalidFunds, "expected exactly one coin of %s, got %s", denom, funds)
	}

	coin := funds[0]
	if coin.Denom != denom {
		return sdk.Coin{}, errors.Wrapf(types.ErrInvalidFunds, "expected %s, got %s", denom, coin.Denom)
	}
	if coin.Amount.IsNil() || !coin.Amount.IsPositive() {
		return sdk.Coin{}, errors.Wrap(types.ErrInvalidFunds, "amount must be positive")
	}
	if amount != nil && (amount.IsNil() || !coin.Amount.Equal(*amount)) {
		return sdk.Coin{}, errors.Wrapf(types.ErrInvalidFunds, "expected %s%s, got %s", *amount, denom, coin)
	}

	return coin, nil
}

// resolveRecipient decodes recipient, falling back to caller when it is empty.
func (k *Keeper) resolveRecipient(recipient string, caller sdk.AccAddress) (sdk.AccAddress, error) {
	if recipient == "" {
		return caller, nil
	}
	bz, err := k.address.StringToBytes(recipient)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid recipient address: %s", recipient)
	}
	return bz, nil
}

func (k *Keeper) deposit(ctx context.Context, config types.VaultConfig, caller sdk.AccAddress, msg *types.MsgDeposit, totalReserve math.Int) (*types.MsgDepositResponse, error) {
	coin, err := validateFunds(msg.Funds, config.ReserveDenom, nil)
	if err != nil {
		return nil, err
	}
	recipient, err := k.resolveRecipient(msg.Recipient, caller)
	if err != nil {
		return nil, err
	}

	shares, err := k.ConvertToShares(ctx, coin.Amount, totalReserve, true)
	if err != nil {
		return nil, errors.Wrap(err, "unable to compute shares to mint")
	}
	if !shares.IsPositive() {
		return nil, errors.Wrapf(types.ErrInvalidFunds, "deposit of %s is too small to mint shares", coin)
	}
	if err := k.mintShares(ctx, shares); err != nil {
		return nil, err
	}

	minted := sdk.NewCoin(config.ShareDenom, shares)
	return &types.MsgDepositResponse{
		SharesMinted: shares,
		Instructions: []types.Instruction{
			types.NewMintInstruction(minted),
			types.NewTransferInstruction(minted, recipient),
		},
	}, nil
}

// redeemShares burns amount shares attached in funds and pays the reserve
// they are worth to recipient.
func (k *Keeper) redeemShares(ctx context.Context, config types.VaultConfig, amount math.Int, funds sdk.Coins, recipient sdk.AccAddress, totalReserve math.Int) (math.Int, []types.Instruction, error) {
	shares, err := validateFunds(funds, config.ShareDenom, &amount)
	if err != nil {
		return math.ZeroInt(), nil, err
	}

	redeemed, err := k.ConvertToReserve(ctx, shares.Amount, totalReserve)
	if err != nil {
		return math.ZeroInt(), nil, errors.Wrap(err, "unable to compute redemption amount")
	}
	if err := k.burnShares(ctx, shares.Amount); err != nil {
		return math.ZeroInt(), nil, err
	}

	return redeemed, []types.Instruction{
		types.NewBurnInstruction(shares),
		types.NewTransferInstruction(sdk.NewCoin(config.ReserveDenom, redeemed), recipient),
	}, nil
}

func (k *Keeper) redeem(ctx context.Context, config types.VaultConfig, caller sdk.AccAddress, msg *types.MsgRedeem, totalReserve math.Int) (*types.MsgRedeemResponse, error) {
	recipient, err := k.resolveRecipient(msg.Recipient, caller)
	if err != nil {
		return nil, err
	}

	redeemed, instructions, err := k.redeemShares(ctx, config, msg.Amount, msg.Funds, recipient, totalReserve)
	if err != nil {
		return nil, err
	}

	return &types.MsgRedeemResponse{
		SharesBurned:   msg.Amount,
		AmountRedeemed: redeemed,
		Instructions:   instructions,
	}, nil
}

func (k *Keeper) unlock(ctx context.Context, config types.VaultConfig, caller sdk.AccAddress, amount math.Int, funds sdk.Coins, totalReserve math.Int) (*types.MsgUnlockResponse, error) {
	shares, err := validateFunds(funds, config.ShareDenom, &amount)
	if err != nil {
		return nil, err
	}

	position, err := k.CreateUnlockingPosition(ctx, config, caller, shares.Amount, totalReserve)
	if err != nil {
		return nil, err
	}

	return &types.MsgUnlockResponse{
		LockupID:     position.ID,
		Position:     position,
		Instructions: []types.Instruction{types.NewBurnInstruction(shares)},
	}, nil
}

func (k *Keeper) withdrawUnlocked(ctx context.Context, config types.VaultConfig, caller sdk.AccAddress, msg *types.MsgWithdrawUnlocked) (*types.MsgWithdrawUnlockedResponse, error) {
	recipient, err := k.resolveRecipient(msg.Recipient, caller)
	if err != nil {
		return nil, err
	}

	position, err := k.WithdrawUnlockingPosition(ctx, msg.LockupID, caller)
	if err != nil {
		return nil, err
	}

	return &types.MsgWithdrawUnlockedResponse{
		AmountWithdrawn: position.Amount,
		Instructions: []types.Instruction{
			types.NewTransferInstruction(sdk.NewCoin(config.ReserveDenom, position.Amount), recipient),
		},
	}, nil
}

func (k *Keeper) withdrawUnlockedToContract(ctx context.Context, config types.VaultConfig, caller sdk.AccAddress, msg *types.MsgWithdrawUnlockedToContract) (*types.MsgWithdrawUnlockedResponse, error) {
	contract, err := k.address.StringToBytes(msg.Contract)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid contract address: %s", msg.Contract)
	}

	position, err := k.WithdrawUnlockingPosition(ctx, msg.LockupID, caller)
	if err != nil {
		return nil, err
	}

	coin := sdk.NewCoin(config.ReserveDenom, position.Amount)
	return &types.MsgWithdrawUnlockedResponse{
		AmountWithdrawn: position.Amount,
		Instructions: []types.Instruction{
			types.NewTransferInstruction(coin, contract),
			types.NewReceiveWithdrawnInstruction(coin, contract, msg.Msg),
		},
	}, nil
}

// forceRedeem expects caller to have been checked against the whitelist
// before its funds were collected.
func (k *Keeper) forceRedeem(ctx context.Context, config types.VaultConfig, caller sdk.AccAddress, msg *types.MsgForceRedeem, totalReserve math.Int) (*types.MsgForceRedeemResponse, error) {
	for _, denom := range msg.RedeemInto {
		if denom != config.ReserveDenom {
			return nil, errors.Wrapf(types.ErrDenomUnsupported, "vault only redeems into %s, got %s", config.ReserveDenom, denom)
		}
	}

	recipient, err := k.resolveRecipient(msg.Recipient, caller)
	if err != nil {
		return nil, err
	}

	redeemed, instructions, err := k.redeemShares(ctx, config, msg.Amount, msg.Funds, recipient, totalReserve)
	if err != nil {
		return nil, err
	}

	return &types.MsgForceRedeemResponse{
		SharesBurned:   msg.Amount,
		AmountRedeemed: redeemed,
		Instructions:   instructions,
	}, nil
}

func (k *Keeper) forceWithdrawUnlocking(ctx context.Context, config types.VaultConfig, caller sdk.AccAddress, msg *types.MsgForceWithdrawUnlocking) (*types.MsgForceWithdrawUnlockingResponse, error) {
	if err := k.ensureWhitelisted(ctx, caller, msg.Sender); err != nil {
		return nil, err
	}

	recipient, err := k.resolveRecipient(msg.Recipient, caller)
	if err != nil {
		return nil, err
	}

	withdrawn, remaining, err := k.ForceWithdrawUnlockingPosition(ctx, msg.LockupID, msg.Amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgForceWithdrawUnlockingResponse{
		AmountWithdrawn: withdrawn,
		RemainingAmount: remaining,
		Instructions: []types.Instruction{
			types.NewTransferInstruction(sdk.NewCoin(config.ReserveDenom, withdrawn), recipient),
		},
	}, nil
}
