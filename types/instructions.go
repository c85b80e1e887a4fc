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
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// InstructionKind tags an outbound token movement.
type InstructionKind uint8

const (
	InstructionMint InstructionKind = iota + 1
	InstructionBurn
	InstructionTransfer
	InstructionReceiveWithdrawn
)

func (k InstructionKind) String() string {
	switch k {
	case InstructionMint:
		return "mint"
	case InstructionBurn:
		return "burn"
	case InstructionTransfer:
		return "transfer"
	case InstructionReceiveWithdrawn:
		return "receive_withdrawn"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Instruction is a token movement emitted by the vault core. Instructions are
// computed optimistically against the pre-operation state and executed by
// the settlement collaborator after the core has returned.
//
// Mint and Burn always act on the vault's own account; Recipient is only set
// for transfers out of the vault and for receiver callbacks.
type Instruction struct {
	Kind      InstructionKind `json:"kind"`
	Coin      sdk.Coin        `json:"coin"`
	Recipient sdk.AccAddress  `json:"recipient,omitempty"`
	Msg       []byte          `json:"msg,omitempty"`
}

func NewMintInstruction(coin sdk.Coin) Instruction {
	return Instruction{Kind: InstructionMint, Coin: coin}
}

func NewBurnInstruction(coin sdk.Coin) Instruction {
	return Instruction{Kind: InstructionBurn, Coin: coin}
}

func NewTransferInstruction(coin sdk.Coin, recipient sdk.AccAddress) Instruction {
	return Instruction{Kind: InstructionTransfer, Coin: coin, Recipient: recipient}
}

// NewReceiveWithdrawnInstruction notifies contract that coin has been
// withdrawn to it, passing along msg untouched.
func NewReceiveWithdrawnInstruction(coin sdk.Coin, contract sdk.AccAddress, msg []byte) Instruction {
	return Instruction{Kind: InstructionReceiveWithdrawn, Coin: coin, Recipient: contract, Msg: msg}
}
