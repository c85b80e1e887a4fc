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
	"cosmossdk.io/collections"
	"cosmossdk.io/collections/indexes"
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/event"
	"cosmossdk.io/core/header"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"vault.noble.xyz/v1/types"
)

type Keeper struct {
	authority string

	store store.KVStoreService

	logger  log.Logger
	header  header.Service
	event   event.Service
	address address.Codec
	bank    types.BankKeeper

	receiver types.WithdrawReceiver

	Config               collections.Item[types.VaultConfig]
	TotalShares          collections.Item[math.Int]
	NextLockupID         collections.Item[uint64]
	UnlockingPositions   *collections.IndexedMap[uint64, types.UnlockingPosition, UnlockingPositionIndexes]
	TotalUnlocking       collections.Item[math.Int]
	ForceUnlockWhitelist collections.KeySet[[]byte]
}

// UnlockingPositionIndexes indexes unlocking positions by owner so that an
// owner's positions can be listed in ascending id order.
type UnlockingPositionIndexes struct {
	ByOwner *indexes.Multi[[]byte, uint64, types.UnlockingPosition]
}

func (i UnlockingPositionIndexes) IndexesList() []collections.Index[uint64, types.UnlockingPosition] {
	return []collections.Index[uint64, types.UnlockingPosition]{i.ByOwner}
}

func NewUnlockingPositionIndexes(builder *collections.SchemaBuilder) UnlockingPositionIndexes {
	return UnlockingPositionIndexes{
		ByOwner: indexes.NewMulti(
			builder, types.UnlockingPositionByOwnerPrefix, "unlocking_positions_by_owner",
			collections.BytesKey, collections.Uint64Key,
			func(_ uint64, position types.UnlockingPosition) ([]byte, error) {
				return position.Owner, nil
			},
		),
	}
}

func NewKeeper(
	authority string,
	store store.KVStoreService,
	logger log.Logger,
	header header.Service,
	event event.Service,
	address address.Codec,
	bank types.BankKeeper,
) *Keeper {
	builder := collections.NewSchemaBuilder(store)

	keeper := &Keeper{
		authority: authority,

		store: store,

		logger:  logger.With("module", types.ModuleName),
		header:  header,
		event:   event,
		address: address,
		bank:    bank,

		Config:               collections.NewItem(builder, types.VaultConfigKey, "config", types.VaultConfigValue),
		TotalShares:          collections.NewItem(builder, types.TotalSharesKey, "total_shares", sdk.IntValue),
		NextLockupID:         collections.NewItem(builder, types.NextLockupIDKey, "next_lockup_id", collections.Uint64Value),
		UnlockingPositions:   collections.NewIndexedMap(builder, types.UnlockingPositionPrefix, "unlocking_positions", collections.Uint64Key, types.UnlockingPositionValue, NewUnlockingPositionIndexes(builder)),
		TotalUnlocking:       collections.NewItem(builder, types.TotalUnlockingKey, "total_unlocking", sdk.IntValue),
		ForceUnlockWhitelist: collections.NewKeySet(builder, types.ForceUnlockWhitelistPrefix, "force_unlock_whitelist", collections.BytesKey),
	}

	_, err := builder.Build()
	if err != nil {
		panic(err)
	}

	return keeper
}

// SetBankKeeper overwrites the bank keeper used in this module.
func (k *Keeper) SetBankKeeper(bankKeeper types.BankKeeper) {
	k.bank = bankKeeper
}

// SetWithdrawReceiver registers the collaborator that delivers positions
// withdrawn to contracts. Without one, contract withdrawals are rejected.
func (k *Keeper) SetWithdrawReceiver(receiver types.WithdrawReceiver) {
	k.receiver = receiver
}

// GetAuthority returns the governance authority, which may always act as
// vault admin.
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns the module scoped logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger
}
