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
	sdk "github.com/cosmos/cosmos-sdk/types"

	"vault.noble.xyz/v1/types"
)

// Settle executes the instructions emitted by a vault operation against the
// bank keeper, in order. Mint and burn act on the module account; transfers
// always leave the module account. Zero amounts are skipped, except for
// receiver callbacks which are always delivered.
func (k *Keeper) Settle(ctx context.Context, instructions []types.Instruction) error {
	for _, instruction := range instructions {
		if instruction.Kind == types.InstructionReceiveWithdrawn {
			if err := k.deliverWithdrawn(ctx, instruction); err != nil {
				return err
			}
			continue
		}
		if !instruction.Coin.IsValid() || !instruction.Coin.IsPositive() {
			continue
		}
		coins := sdk.NewCoins(instruction.Coin)

		switch instruction.Kind {
		case types.InstructionMint:
			if err := k.bank.MintCoins(ctx, types.ModuleName, coins); err != nil {
				return errors.Wrapf(err, "unable to mint %s", coins)
			}
		case types.InstructionBurn:
			if err := k.bank.BurnCoins(ctx, types.ModuleName, coins); err != nil {
				return errors.Wrapf(err, "unable to burn %s", coins)
			}
		case types.InstructionTransfer:
			if len(instruction.Recipient) == 0 {
				return errors.Wrap(types.ErrInvalidRequest, "transfer instruction without recipient")
			}
			if err := k.bank.SendCoins(ctx, types.ModuleAddress, instruction.Recipient, coins); err != nil {
				return errors.Wrapf(err, "unable to transfer %s to %s", coins, instruction.Recipient)
			}
		default:
			return errors.Wrapf(types.ErrInvalidRequest, "unknown instruction kind %s", instruction.Kind)
		}
	}

	return nil
}

func (k *Keeper) deliverWithdrawn(ctx context.Context, instruction types.Instruction) error {
	if k.receiver == nil {
		return errors.Wrap(types.ErrInvalidRequest, "no withdraw receiver registered")
	}
	if len(instruction.Recipient) == 0 {
		return errors.Wrap(types.ErrInvalidRequest, "receive instruction without contract")
	}
	if err := k.receiver.ReceiveWithdrawn(ctx, instruction.Recipient, instruction.Coin, instruction.Msg); err != nil {
		return errors.Wrapf(err, "contract %s rejected withdrawal", instruction.Recipient)
	}
	return nil
}
