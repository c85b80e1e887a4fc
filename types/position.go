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
	"time"

	"cosmossdk.io/math"
)

// UnlockingPosition is a pinned, time-delayed redemption claim created by
// surrendering shares. Only a force withdrawal may reduce Amount; nothing
// else ever modifies a stored position.
type UnlockingPosition struct {
	ID          uint64    `json:"id"`
	Owner       []byte    `json:"owner"`
	ReleaseTime time.Time `json:"release_time"`
	// Amount is the reserve amount fixed at unlock time.
	Amount math.Int `json:"base_token_amount"`
}

// IsMatured reports whether the position can be withdrawn at the given time.
func (p UnlockingPosition) IsMatured(now time.Time) bool {
	return !now.Before(p.ReleaseTime)
}

// UnlockingPositionView is the query representation of an unlocking position.
type UnlockingPositionView struct {
	ID              uint64    `json:"id"`
	Owner           string    `json:"owner"`
	ReleaseAt       time.Time `json:"release_at"`
	BaseTokenAmount math.Int  `json:"base_token_amount"`
}
