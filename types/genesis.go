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

package types

import (
	"cosmossdk.io/core/address"
	"cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// GenesisState is the full persisted state of a vault.
type GenesisState struct {
	Config                 VaultConfig         `json:"config"`
	TotalShares            math.Int            `json:"total_shares"`
	NextLockupID           uint64              `json:"next_lockup_id"`
	UnlockingPositions     []UnlockingPosition `json:"unlocking_positions"`
	ForceWithdrawWhitelist []string            `json:"force_withdraw_whitelist"`
}

// NewGenesisState returns the genesis of a freshly instantiated vault.
func NewGenesisState(config VaultConfig) *GenesisState {
	return &GenesisState{
		Config:      config,
		TotalShares: math.ZeroInt(),
	}
}

func (gs *GenesisState) Validate(cdc address.Codec) error {
	if err := gs.Config.Validate(cdc); err != nil {
		return err
	}

	if !gs.TotalShares.IsNil() {
		if err := CheckAmount(gs.TotalShares); err != nil {
			return errors.Wrap(err, "invalid total shares")
		}
	}

	ids := make(map[uint64]bool, len(gs.UnlockingPositions))
	for _, position := range gs.UnlockingPositions {
		if position.ID == 0 || position.ID > gs.NextLockupID {
			return errors.Wrapf(ErrInvalidRequest, "unlocking position id %d outside allocated range [1, %d]", position.ID, gs.NextLockupID)
		}
		if ids[position.ID] {
			return errors.Wrapf(ErrInvalidRequest, "duplicate unlocking position id %d", position.ID)
		}
		ids[position.ID] = true

		if len(position.Owner) == 0 {
			return errors.Wrapf(ErrInvalidRequest, "unlocking position %d has no owner", position.ID)
		}
		if position.Amount.IsNil() {
			return errors.Wrapf(ErrInvalidRequest, "unlocking position %d has no amount", position.ID)
		}
		if err := CheckAmount(position.Amount); err != nil {
			return errors.Wrapf(err, "invalid amount for unlocking position %d", position.ID)
		}
	}

	whitelisted := make(map[string]bool, len(gs.ForceWithdrawWhitelist))
	for _, addr := range gs.ForceWithdrawWhitelist {
		if _, err := cdc.StringToBytes(addr); err != nil {
			return errors.Wrapf(ErrInvalidRequest, "invalid whitelisted address %s", addr)
		}
		if whitelisted[addr] {
			return errors.Wrapf(ErrInvalidRequest, "duplicate whitelisted address %s", addr)
		}
		whitelisted[addr] = true
	}

	return nil
}
