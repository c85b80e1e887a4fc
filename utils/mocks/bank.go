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

package mocks

import (
	"context"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/store"
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	errortypes "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"vault.noble.xyz/v1/types"
)

var _ types.BankKeeper = BankKeeper{}

// BankKeeper keeps balances in the same store as the vault, so balance
// changes are rolled back together with vault state when a cached context is
// discarded.
type BankKeeper struct {
	Balances collections.Map[collections.Pair[[]byte, string], math.Int]
	// Failing, when set, makes every movement of that denom fail.
	Failing map[string]bool
}

func NewBankKeeper(store store.KVStoreService) BankKeeper {
	builder := collections.NewSchemaBuilder(store)
	bank := BankKeeper{
		Balances: collections.NewMap(
			builder, collections.NewPrefix(255), "mock_balances",
			collections.PairKeyCodec(collections.BytesKey, collections.StringKey), sdk.IntValue,
		),
		Failing: make(map[string]bool),
	}

	if _, err := builder.Build(); err != nil {
		panic(err)
	}

	return bank
}

func (k BankKeeper) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	amount, err := k.Balances.Get(ctx, collections.Join([]byte(addr), denom))
	if err != nil {
		return sdk.NewCoin(denom, math.ZeroInt())
	}
	return sdk.NewCoin(denom, amount)
}

// Fund credits coins to addr out of thin air.
func (k BankKeeper) Fund(ctx context.Context, addr sdk.AccAddress, coins sdk.Coins) error {
	for _, coin := range coins {
		if err := k.add(ctx, addr, coin); err != nil {
			return err
		}
	}
	return nil
}

func (k BankKeeper) SendCoins(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	for _, coin := range amt {
		if err := k.sub(ctx, from, coin); err != nil {
			return err
		}
		if err := k.add(ctx, to, coin); err != nil {
			return err
		}
	}
	return nil
}

func (k BankKeeper) MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	return k.Fund(ctx, authtypes.NewModuleAddress(moduleName), amt)
}

func (k BankKeeper) BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	for _, coin := range amt {
		if err := k.sub(ctx, authtypes.NewModuleAddress(moduleName), coin); err != nil {
			return err
		}
	}
	return nil
}

func (k BankKeeper) add(ctx context.Context, addr sdk.AccAddress, coin sdk.Coin) error {
	if k.Failing[coin.Denom] {
		return sdkerrors.Wrapf(errortypes.ErrUnauthorized, "%s movements are disabled", coin.Denom)
	}
	balance := k.GetBalance(ctx, addr, coin.Denom)
	return k.Balances.Set(ctx, collections.Join([]byte(addr), coin.Denom), balance.Amount.Add(coin.Amount))
}

func (k BankKeeper) sub(ctx context.Context, addr sdk.AccAddress, coin sdk.Coin) error {
	if k.Failing[coin.Denom] {
		return sdkerrors.Wrapf(errortypes.ErrUnauthorized, "%s movements are disabled", coin.Denom)
	}
	balance := k.GetBalance(ctx, addr, coin.Denom)
	if balance.Amount.LT(coin.Amount) {
		return sdkerrors.Wrapf(errortypes.ErrInsufficientFunds, "spendable balance %s is smaller than %s", balance, coin)
	}
	return k.Balances.Set(ctx, collections.Join([]byte(addr), coin.Denom), balance.Amount.Sub(coin.Amount))
}
