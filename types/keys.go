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
	"cosmossdk.io/collections"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

const (
	ModuleName = "vault"

	StoreKey = ModuleName
)

// StandardVersion is the vault standard version reported by the
// VaultStandardInfo query.
const StandardVersion uint16 = 1

var ModuleAddress = authtypes.NewModuleAddress(ModuleName)

var (
	VaultConfigKey = collections.NewPrefix(0)

	TotalSharesKey = collections.NewPrefix(1)

	// NextLockupIDKey holds the last allocated unlocking position id.
	NextLockupIDKey = collections.NewPrefix(2)

	UnlockingPositionPrefix        = collections.NewPrefix(3)
	UnlockingPositionByOwnerPrefix = collections.NewPrefix(4)

	// TotalUnlockingKey holds the reserve amount owed to all live
	// unlocking positions.
	TotalUnlockingKey = collections.NewPrefix(5)

	ForceUnlockWhitelistPrefix = collections.NewPrefix(6)
)
