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
	"slices"
	"time"

	"cosmossdk.io/core/address"
	"cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Extension names a capability set that can be enabled on a vault at
// instantiation. The set of enabled extensions never changes afterwards.
type Extension string

const (
	ExtensionLockup      Extension = "lockup"
	ExtensionForceUnlock Extension = "force-unlock"
)

// VaultConfig is the immutable configuration of a vault.
type VaultConfig struct {
	// ReserveDenom is the denom accepted for deposits and paid out on redemption.
	ReserveDenom string `json:"reserve_denom"`
	// ShareDenom is the denom of the vault token minted to depositors.
	ShareDenom string `json:"share_denom"`
	// Admin may update the force-unlock whitelist.
	Admin string `json:"admin"`
	// LockupDuration is how long an unlocking position waits before it can be
	// withdrawn.
	LockupDuration time.Duration `json:"lockup_duration"`
	Extensions     []Extension   `json:"extensions"`
}

// HasExtension reports whether the given capability is enabled.
func (c VaultConfig) HasExtension(ext Extension) bool {
	return slices.Contains(c.Extensions, ext)
}

// ExtensionNames returns the enabled extensions as plain strings.
func (c VaultConfig) ExtensionNames() []string {
	names := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		names = append(names, string(ext))
	}
	return names
}

// Validate performs stateless validation of the configuration.
func (c VaultConfig) Validate(cdc address.Codec) error {
	if err := sdk.ValidateDenom(c.ReserveDenom); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "invalid reserve denom: %s", err)
	}
	if err := sdk.ValidateDenom(c.ShareDenom); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "invalid share denom: %s", err)
	}
	if c.ReserveDenom == c.ShareDenom {
		return errors.Wrap(ErrInvalidConfig, "reserve and share denoms must differ")
	}
	if _, err := cdc.StringToBytes(c.Admin); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "invalid admin address %s: %s", c.Admin, err)
	}
	if c.LockupDuration < 0 {
		return errors.Wrap(ErrInvalidConfig, "lockup duration cannot be negative")
	}

	seen := make(map[Extension]bool, len(c.Extensions))
	for _, ext := range c.Extensions {
		switch ext {
		case ExtensionLockup, ExtensionForceUnlock:
		default:
			return errors.Wrapf(ErrInvalidConfig, "unknown extension %q", ext)
		}
		if seen[ext] {
			return errors.Wrapf(ErrInvalidConfig, "duplicate extension %q", ext)
		}
		seen[ext] = true
	}

	return nil
}
