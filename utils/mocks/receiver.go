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

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	errortypes "github.com/cosmos/cosmos-sdk/types/errors"

	"vault.noble.xyz/v1/types"
)

var _ types.WithdrawReceiver = &WithdrawReceiver{}

// Withdrawal is a single delivery recorded by WithdrawReceiver.
type Withdrawal struct {
	Contract sdk.AccAddress
	Amount   sdk.Coin
	Msg      []byte
}

// WithdrawReceiver records every delivered withdrawal. Setting Reject makes
// the contract refuse deliveries.
type WithdrawReceiver struct {
	Received []Withdrawal
	Reject   bool
}

func (r *WithdrawReceiver) ReceiveWithdrawn(_ context.Context, contract sdk.AccAddress, amount sdk.Coin, msg []byte) error {
	if r.Reject {
		return sdkerrors.Wrapf(errortypes.ErrUnauthorized, "contract %s refused %s", contract, amount)
	}
	r.Received = append(r.Received, Withdrawal{Contract: contract, Amount: amount, Msg: msg})
	return nil
}
