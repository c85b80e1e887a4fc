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
	"strconv"
	"strings"
	"time"

	"cosmossdk.io/core/event"
	"cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"vault.noble.xyz/v1/types"
)

var _ types.MsgServer = &msgServer{}

type msgServer struct {
	*Keeper
}

func NewMsgServer(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

// Execute dispatches msg to its handler. Every handler runs inside its own
// cached context, so a failed message leaves no trace.
func (m msgServer) Execute(ctx context.Context, msg types.ExecuteMsg) (types.ExecuteResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}

	var (
		res types.ExecuteResponse
		err error
	)
	switch msg := msg.(type) {
	case *types.MsgDeposit:
		res, err = m.Deposit(ctx, msg)
	case *types.MsgRedeem:
		res, err = m.Redeem(ctx, msg)
	case *types.MsgUnlock:
		res, err = m.Unlock(ctx, msg)
	case *types.MsgEmergencyUnlock:
		res, err = m.EmergencyUnlock(ctx, msg)
	case *types.MsgWithdrawUnlocked:
		res, err = m.WithdrawUnlocked(ctx, msg)
	case *types.MsgWithdrawUnlockedToContract:
		res, err = m.WithdrawUnlockedToContract(ctx, msg)
	case *types.MsgForceRedeem:
		res, err = m.ForceRedeem(ctx, msg)
	case *types.MsgForceWithdrawUnlocking:
		res, err = m.ForceWithdrawUnlocking(ctx, msg)
	case *types.MsgUpdateForceWithdrawWhitelist:
		res, err = m.UpdateForceWithdrawWhitelist(ctx, msg)
	default:
		return nil, errors.Wrapf(types.ErrInvalidRequest, "unrecognized message type %T", msg)
	}
	if err != nil {
		return nil, err
	}

	return res, nil
}

// cached runs fn against a cached copy of ctx and only writes the cache back
// when fn succeeds.
func cached[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	cacheCtx, commit := sdk.UnwrapSDKContext(ctx).CacheContext()

	res, err := fn(cacheCtx)
	if err != nil {
		var zero T
		return zero, err
	}

	commit()
	return res, nil
}

// prepare loads the vault configuration, checks that msg's extension is
// enabled and decodes the sender.
func (m msgServer) prepare(ctx context.Context, msg types.ExecuteMsg, sender string) (types.VaultConfig, sdk.AccAddress, error) {
	config, err := m.GetVaultConfig(ctx)
	if err != nil {
		return types.VaultConfig{}, nil, err
	}

	if ext, ok := types.RequiredExtension(msg); ok && !config.HasExtension(ext) {
		return types.VaultConfig{}, nil, errors.Wrapf(types.ErrExtensionDisabled, "%s extension is not enabled", ext)
	}

	bz, err := m.address.StringToBytes(sender)
	if err != nil {
		return types.VaultConfig{}, nil, errors.Wrapf(types.ErrInvalidRequest, "invalid sender address: %s", sender)
	}

	return config, bz, nil
}

// collectFunds moves the funds attached to a message into the module account.
func (m msgServer) collectFunds(ctx context.Context, sender sdk.AccAddress, funds sdk.Coins) error {
	if funds.Empty() {
		return nil
	}
	if err := funds.Validate(); err != nil {
		return errors.Wrap(types.ErrInvalidFunds, err.Error())
	}
	if err := m.bank.SendCoins(ctx, sender, types.ModuleAddress, funds); err != nil {
		return errors.Wrap(err, "unable to transfer funds into module account")
	}
	return nil
}

func (m msgServer) emit(ctx context.Context, eventType string, attrs ...event.Attribute) error {
	if err := m.event.EventManager(ctx).EmitKV(ctx, eventType, attrs...); err != nil {
		return errors.Wrapf(err, "unable to emit %s event", eventType)
	}
	return nil
}

func (m msgServer) Deposit(ctx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	return cached(ctx, func(ctx context.Context) (*types.MsgDepositResponse, error) {
		config, sender, err := m.prepare(ctx, msg, msg.Sender)
		if err != nil {
			return nil, err
		}
		if err := m.collectFunds(ctx, sender, msg.Funds); err != nil {
			return nil, err
		}

		res, err := m.deposit(ctx, config, sender, msg, m.snapshotReserve(ctx, config))
		if err != nil {
			return nil, err
		}
		if err := m.Settle(ctx, res.Instructions); err != nil {
			return nil, err
		}

		return res, m.emit(ctx, types.EventTypeDeposit,
			event.Attribute{Key: types.AttributeKeyCaller, Value: msg.Sender},
			event.Attribute{Key: types.AttributeKeyRecipient, Value: res.Instructions[1].Recipient.String()},
			event.Attribute{Key: types.AttributeKeyDepositAmount, Value: msg.Funds.String()},
			event.Attribute{Key: types.AttributeKeyMintAmount, Value: res.SharesMinted.String()},
		)
	})
}

func (m msgServer) Redeem(ctx context.Context, msg *types.MsgRedeem) (*types.MsgRedeemResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	return cached(ctx, func(ctx context.Context) (*types.MsgRedeemResponse, error) {
		config, sender, err := m.prepare(ctx, msg, msg.Sender)
		if err != nil {
			return nil, err
		}
		if err := m.collectFunds(ctx, sender, msg.Funds); err != nil {
			return nil, err
		}

		res, err := m.redeem(ctx, config, sender, msg, m.snapshotReserve(ctx, config))
		if err != nil {
			return nil, err
		}
		if err := m.Settle(ctx, res.Instructions); err != nil {
			return nil, err
		}

		return res, m.emit(ctx, types.EventTypeRedeem,
			event.Attribute{Key: types.AttributeKeyCaller, Value: msg.Sender},
			event.Attribute{Key: types.AttributeKeyRecipient, Value: res.Instructions[1].Recipient.String()},
			event.Attribute{Key: types.AttributeKeyShareAmount, Value: res.SharesBurned.String()},
			event.Attribute{Key: types.AttributeKeyRedeemAmount, Value: res.AmountRedeemed.String()},
		)
	})
}

func (m msgServer) Unlock(ctx context.Context, msg *types.MsgUnlock) (*types.MsgUnlockResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	return cached(ctx, func(ctx context.Context) (*types.MsgUnlockResponse, error) {
		return m.createUnlockingPosition(ctx, msg, msg.Sender, msg.Amount, msg.Funds, false)
	})
}

// EmergencyUnlock creates an unlocking position exactly like Unlock. The
// emitted event flags the request as an emergency.
func (m msgServer) EmergencyUnlock(ctx context.Context, msg *types.MsgEmergencyUnlock) (*types.MsgUnlockResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	return cached(ctx, func(ctx context.Context) (*types.MsgUnlockResponse, error) {
		return m.createUnlockingPosition(ctx, msg, msg.Sender, msg.Amount, msg.Funds, true)
	})
}

func (m msgServer) createUnlockingPosition(ctx context.Context, msg types.ExecuteMsg, senderAddr string, amount math.Int, funds sdk.Coins, emergency bool) (*types.MsgUnlockResponse, error) {
	config, sender, err := m.prepare(ctx, msg, senderAddr)
	if err != nil {
		return nil, err
	}
	if err := m.collectFunds(ctx, sender, funds); err != nil {
		return nil, err
	}

	res, err := m.unlock(ctx, config, sender, amount, funds, m.snapshotReserve(ctx, config))
	if err != nil {
		return nil, err
	}
	if err := m.Settle(ctx, res.Instructions); err != nil {
		return nil, err
	}

	m.logger.Info("created unlocking position",
		"lockup_id", res.LockupID,
		"owner", senderAddr,
		"amount", res.Position.Amount.String(),
		"release_at", res.Position.ReleaseTime.Format(time.RFC3339),
		"emergency", emergency,
	)

	return res, m.emit(ctx, types.EventTypeUnlockingPositionCreated,
		event.Attribute{Key: types.AttributeKeyLockupID, Value: strconv.FormatUint(res.LockupID, 10)},
		event.Attribute{Key: types.AttributeKeyCaller, Value: senderAddr},
		event.Attribute{Key: types.AttributeKeyShareAmount, Value: amount.String()},
		event.Attribute{Key: types.AttributeKeyRedeemAmount, Value: res.Position.Amount.String()},
		event.Attribute{Key: types.AttributeKeyReleaseAt, Value: res.Position.ReleaseTime.Format(time.RFC3339)},
		event.Attribute{Key: types.AttributeKeyEmergency, Value: strconv.FormatBool(emergency)},
	)
}

func (m msgServer) WithdrawUnlocked(ctx context.Context, msg *types.MsgWithdrawUnlocked) (*types.MsgWithdrawUnlockedResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	return cached(ctx, func(ctx context.Context) (*types.MsgWithdrawUnlockedResponse, error) {
		config, sender, err := m.prepare(ctx, msg, msg.Sender)
		if err != nil {
			return nil, err
		}

		res, err := m.withdrawUnlocked(ctx, config, sender, msg)
		if err != nil {
			return nil, err
		}
		if err := m.Settle(ctx, res.Instructions); err != nil {
			return nil, err
		}

		return res, m.emit(ctx, types.EventTypeWithdrawUnlocked,
			event.Attribute{Key: types.AttributeKeyLockupID, Value: strconv.FormatUint(msg.LockupID, 10)},
			event.Attribute{Key: types.AttributeKeyCaller, Value: msg.Sender},
			event.Attribute{Key: types.AttributeKeyRecipient, Value: res.Instructions[0].Recipient.String()},
			event.Attribute{Key: types.AttributeKeyRedeemAmount, Value: res.AmountWithdrawn.String()},
		)
	})
}

// WithdrawUnlockedToContract pays a matured position out to a contract and
// then hands the contract the attached payload. A failing receiver reverts
// the whole withdrawal.
func (m msgServer) WithdrawUnlockedToContract(ctx context.Context, msg *types.MsgWithdrawUnlockedToContract) (*types.MsgWithdrawUnlockedResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	return cached(ctx, func(ctx context.Context) (*types.MsgWithdrawUnlockedResponse, error) {
		config, sender, err := m.prepare(ctx, msg, msg.Sender)
		if err != nil {
			return nil, err
		}

		res, err := m.withdrawUnlockedToContract(ctx, config, sender, msg)
		if err != nil {
			return nil, err
		}
		if err := m.Settle(ctx, res.Instructions); err != nil {
			return nil, err
		}

		m.logger.Info("withdrew unlocking position to contract",
			"lockup_id", msg.LockupID,
			"owner", msg.Sender,
			"contract", msg.Contract,
			"amount", res.AmountWithdrawn.String(),
		)

		return res, m.emit(ctx, types.EventTypeWithdrawUnlockedToContract,
			event.Attribute{Key: types.AttributeKeyLockupID, Value: strconv.FormatUint(msg.LockupID, 10)},
			event.Attribute{Key: types.AttributeKeyCaller, Value: msg.Sender},
			event.Attribute{Key: types.AttributeKeyContract, Value: msg.Contract},
			event.Attribute{Key: types.AttributeKeyRedeemAmount, Value: res.AmountWithdrawn.String()},
		)
	})
}

func (m msgServer) ForceRedeem(ctx context.Context, msg *types.MsgForceRedeem) (*types.MsgForceRedeemResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	return cached(ctx, func(ctx context.Context) (*types.MsgForceRedeemResponse, error) {
		config, sender, err := m.prepare(ctx, msg, msg.Sender)
		if err != nil {
			return nil, err
		}
		if err := m.ensureWhitelisted(ctx, sender, msg.Sender); err != nil {
			return nil, err
		}
		if err := m.collectFunds(ctx, sender, msg.Funds); err != nil {
			return nil, err
		}

		res, err := m.forceRedeem(ctx, config, sender, msg, m.snapshotReserve(ctx, config))
		if err != nil {
			return nil, err
		}
		if err := m.Settle(ctx, res.Instructions); err != nil {
			return nil, err
		}

		recipient := res.Instructions[1].Recipient.String()
		m.logger.Info("force redeemed vault shares",
			"caller", msg.Sender,
			"recipient", recipient,
			"shares", res.SharesBurned.String(),
			"amount", res.AmountRedeemed.String(),
		)

		return res, m.emit(ctx, types.EventTypeForceRedeem,
			event.Attribute{Key: types.AttributeKeyCaller, Value: msg.Sender},
			event.Attribute{Key: types.AttributeKeyRecipient, Value: recipient},
			event.Attribute{Key: types.AttributeKeyShareAmount, Value: res.SharesBurned.String()},
			event.Attribute{Key: types.AttributeKeyRedeemAmount, Value: res.AmountRedeemed.String()},
		)
	})
}

func (m msgServer) ForceWithdrawUnlocking(ctx context.Context, msg *types.MsgForceWithdrawUnlocking) (*types.MsgForceWithdrawUnlockingResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	return cached(ctx, func(ctx context.Context) (*types.MsgForceWithdrawUnlockingResponse, error) {
		config, sender, err := m.prepare(ctx, msg, msg.Sender)
		if err != nil {
			return nil, err
		}

		res, err := m.forceWithdrawUnlocking(ctx, config, sender, msg)
		if err != nil {
			return nil, err
		}
		if err := m.Settle(ctx, res.Instructions); err != nil {
			return nil, err
		}

		recipient := res.Instructions[0].Recipient.String()
		m.logger.Info("force withdrew unlocking position",
			"lockup_id", msg.LockupID,
			"caller", msg.Sender,
			"recipient", recipient,
			"amount", res.AmountWithdrawn.String(),
			"remaining", res.RemainingAmount.String(),
		)

		return res, m.emit(ctx, types.EventTypeForceWithdrawUnlocking,
			event.Attribute{Key: types.AttributeKeyLockupID, Value: strconv.FormatUint(msg.LockupID, 10)},
			event.Attribute{Key: types.AttributeKeyCaller, Value: msg.Sender},
			event.Attribute{Key: types.AttributeKeyRecipient, Value: recipient},
			event.Attribute{Key: types.AttributeKeyRedeemAmount, Value: res.AmountWithdrawn.String()},
			event.Attribute{Key: types.AttributeKeyRemaining, Value: res.RemainingAmount.String()},
		)
	})
}

func (m msgServer) UpdateForceWithdrawWhitelist(ctx context.Context, msg *types.MsgUpdateForceWithdrawWhitelist) (*types.MsgUpdateForceWithdrawWhitelistResponse, error) {
	if msg == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "message cannot be nil")
	}
	return cached(ctx, func(ctx context.Context) (*types.MsgUpdateForceWithdrawWhitelistResponse, error) {
		config, _, err := m.prepare(ctx, msg, msg.Sender)
		if err != nil {
			return nil, err
		}

		if err := m.UpdateWhitelist(ctx, config, msg.Sender, msg.AddAddresses, msg.RemoveAddresses); err != nil {
			return nil, err
		}

		m.logger.Info("updated force withdraw whitelist",
			"added", len(msg.AddAddresses),
			"removed", len(msg.RemoveAddresses),
		)

		return &types.MsgUpdateForceWithdrawWhitelistResponse{}, m.emit(ctx, types.EventTypeUpdateWhitelist,
			event.Attribute{Key: types.AttributeKeyCaller, Value: msg.Sender},
			event.Attribute{Key: types.AttributeKeyAdded, Value: strings.Join(msg.AddAddresses, ",")},
			event.Attribute{Key: types.AttributeKeyRemoved, Value: strings.Join(msg.RemoveAddresses, ",")},
		)
	})
}
