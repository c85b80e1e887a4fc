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
	"context"
	"encoding/binary"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ExecuteMsg is the closed set of messages a vault accepts. Base messages
// implement only ExecuteMsg; extension messages additionally implement the
// marker interface of the capability they belong to.
type ExecuteMsg interface {
	executeMsg()
}

// LockupMsg is implemented by messages of the lockup extension.
type LockupMsg interface {
	ExecuteMsg
	lockupMsg()
}

// ForceUnlockMsg is implemented by messages of the force-unlock extension.
type ForceUnlockMsg interface {
	ExecuteMsg
	forceUnlockMsg()
}

// MsgServer handles every vault message. Execute is the single entry point
// that dispatches over the closed message set atomically.
type MsgServer interface {
	Execute(context.Context, ExecuteMsg) (ExecuteResponse, error)
	Deposit(context.Context, *MsgDeposit) (*MsgDepositResponse, error)
	Redeem(context.Context, *MsgRedeem) (*MsgRedeemResponse, error)
	Unlock(context.Context, *MsgUnlock) (*MsgUnlockResponse, error)
	EmergencyUnlock(context.Context, *MsgEmergencyUnlock) (*MsgUnlockResponse, error)
	WithdrawUnlocked(context.Context, *MsgWithdrawUnlocked) (*MsgWithdrawUnlockedResponse, error)
	WithdrawUnlockedToContract(context.Context, *MsgWithdrawUnlockedToContract) (*MsgWithdrawUnlockedResponse, error)
	ForceRedeem(context.Context, *MsgForceRedeem) (*MsgForceRedeemResponse, error)
	ForceWithdrawUnlocking(context.Context, *MsgForceWithdrawUnlocking) (*MsgForceWithdrawUnlockingResponse, error)
	UpdateForceWithdrawWhitelist(context.Context, *MsgUpdateForceWithdrawWhitelist) (*MsgUpdateForceWithdrawWhitelistResponse, error)
}

// ExecuteResponse is returned by every message handler.
type ExecuteResponse interface {
	GetInstructions() []Instruction
}

// MsgDeposit deposits the reserve coin attached in Funds and mints shares to
// Recipient, or to Sender when Recipient is empty.
type MsgDeposit struct {
	Sender    string    `json:"sender"`
	Funds     sdk.Coins `json:"funds"`
	Recipient string    `json:"recipient,omitempty"`
}

type MsgDepositResponse struct {
	SharesMinted math.Int      `json:"shares_minted"`
	Instructions []Instruction `json:"instructions"`
}

// MsgRedeem burns Amount shares, which must be attached exactly in Funds, and
// pays out the corresponding reserve immediately.
type MsgRedeem struct {
	Sender    string    `json:"sender"`
	Amount    math.Int  `json:"amount"`
	Funds     sdk.Coins `json:"funds"`
	Recipient string    `json:"recipient,omitempty"`
}

type MsgRedeemResponse struct {
	SharesBurned   math.Int      `json:"shares_burned"`
	AmountRedeemed math.Int      `json:"amount_redeemed"`
	Instructions   []Instruction `json:"instructions"`
}

// MsgUnlock surrenders Amount shares and creates an unlocking position.
type MsgUnlock struct {
	Sender string    `json:"sender"`
	Amount math.Int  `json:"amount"`
	Funds  sdk.Coins `json:"funds"`
}

// MsgEmergencyUnlock behaves like MsgUnlock but is flagged as an emergency in
// the emitted event.
type MsgEmergencyUnlock struct {
	Sender string    `json:"sender"`
	Amount math.Int  `json:"amount"`
	Funds  sdk.Coins `json:"funds"`
}

type MsgUnlockResponse struct {
	LockupID     uint64            `json:"lockup_id"`
	Position     UnlockingPosition `json:"position"`
	Instructions []Instruction     `json:"instructions"`
}

// Data returns the lockup id encoded as a big-endian uint64, suitable for
// consumption by automated callers.
func (r MsgUnlockResponse) Data() []byte {
	return binary.BigEndian.AppendUint64(nil, r.LockupID)
}

// MsgWithdrawUnlocked withdraws a matured unlocking position owned by Sender.
type MsgWithdrawUnlocked struct {
	Sender    string `json:"sender"`
	LockupID  uint64 `json:"lockup_id"`
	Recipient string `json:"recipient,omitempty"`
}

// MsgWithdrawUnlockedToContract withdraws a matured unlocking position owned
// by Sender to Contract, then delivers Msg to the contract together with the
// withdrawn amount.
type MsgWithdrawUnlockedToContract struct {
	Sender   string `json:"sender"`
	LockupID uint64 `json:"lockup_id"`
	Contract string `json:"contract"`
	Msg      []byte `json:"msg,omitempty"`
}

type MsgWithdrawUnlockedResponse struct {
	AmountWithdrawn math.Int      `json:"amount_withdrawn"`
	Instructions    []Instruction `json:"instructions"`
}

// MsgForceRedeem is the whitelisted, lock-bypassing variant of MsgRedeem.
type MsgForceRedeem struct {
	Sender    string    `json:"sender"`
	Amount    math.Int  `json:"amount"`
	Funds     sdk.Coins `json:"funds"`
	Recipient string    `json:"recipient,omitempty"`
	// RedeemInto optionally names the denoms the caller wants back. The vault
	// only pays out its reserve denom.
	RedeemInto []string `json:"redeem_into,omitempty"`
}

type MsgForceRedeemResponse struct {
	SharesBurned   math.Int      `json:"shares_burned"`
	AmountRedeemed math.Int      `json:"amount_redeemed"`
	Instructions   []Instruction `json:"instructions"`
}

// MsgForceWithdrawUnlocking pays out all of an unlocking position, or Amount of
// it when set, regardless of maturity.
type MsgForceWithdrawUnlocking struct {
	Sender    string    `json:"sender"`
	LockupID  uint64    `json:"lockup_id"`
	Amount    *math.Int `json:"amount,omitempty"`
	Recipient string    `json:"recipient,omitempty"`
}

type MsgForceWithdrawUnlockingResponse struct {
	AmountWithdrawn math.Int      `json:"amount_withdrawn"`
	RemainingAmount math.Int      `json:"remaining_amount"`
	Instructions    []Instruction `json:"instructions"`
}

// MsgUpdateForceWithdrawWhitelist adds and removes whitelisted addresses in a
// single update. An address present in both lists ends up removed.
type MsgUpdateForceWithdrawWhitelist struct {
	Sender          string   `json:"sender"`
	AddAddresses    []string `json:"add_addresses"`
	RemoveAddresses []string `json:"remove_addresses"`
}

type MsgUpdateForceWithdrawWhitelistResponse struct{}

func (*MsgDeposit) executeMsg()                      {}
func (*MsgRedeem) executeMsg()                       {}
func (*MsgUnlock) executeMsg()                       {}
func (*MsgEmergencyUnlock) executeMsg()              {}
func (*MsgWithdrawUnlocked) executeMsg()             {}
func (*MsgWithdrawUnlockedToContract) executeMsg()   {}
func (*MsgForceRedeem) executeMsg()                  {}
func (*MsgForceWithdrawUnlocking) executeMsg()       {}
func (*MsgUpdateForceWithdrawWhitelist) executeMsg() {}

func (*MsgUnlock) lockupMsg()                     {}
func (*MsgEmergencyUnlock) lockupMsg()            {}
func (*MsgWithdrawUnlocked) lockupMsg()           {}
func (*MsgWithdrawUnlockedToContract) lockupMsg() {}

func (*MsgForceRedeem) forceUnlockMsg()                  {}
func (*MsgForceWithdrawUnlocking) forceUnlockMsg()       {}
func (*MsgUpdateForceWithdrawWhitelist) forceUnlockMsg() {}

func (r *MsgDepositResponse) GetInstructions() []Instruction                { return r.Instructions }
func (r *MsgRedeemResponse) GetInstructions() []Instruction                 { return r.Instructions }
func (r *MsgUnlockResponse) GetInstructions() []Instruction                 { return r.Instructions }
func (r *MsgWithdrawUnlockedResponse) GetInstructions() []Instruction       { return r.Instructions }
func (r *MsgForceRedeemResponse) GetInstructions() []Instruction            { return r.Instructions }
func (r *MsgForceWithdrawUnlockingResponse) GetInstructions() []Instruction { return r.Instructions }
func (*MsgUpdateForceWithdrawWhitelistResponse) GetInstructions() []Instruction {
	return nil
}

// RequiredExtension returns the extension a message belongs to. Base
// messages report false.
func RequiredExtension(msg ExecuteMsg) (Extension, bool) {
	switch msg.(type) {
	case LockupMsg:
		return ExtensionLockup, true
	case ForceUnlockMsg:
		return ExtensionForceUnlock, true
	default:
		return "", false
	}
}
