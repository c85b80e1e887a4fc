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

	"cosmossdk.io/collections"
	"cosmossdk.io/errors"

	"vault.noble.xyz/v1/types"
)

// IsWhitelisted reports whether address may use the force-unlock operations.
func (k *Keeper) IsWhitelisted(ctx context.Context, address []byte) (bool, error) {
	return k.ForceUnlockWhitelist.Has(ctx, address)
}

// ensureAdmin fails with ErrUnauthorized unless caller is the configured vault
// admin or the module authority.
func (k *Keeper) ensureAdmin(config types.VaultConfig, caller string) error {
	if caller == config.Admin || caller == k.authority {
		return nil
	}
	return errors.Wrapf(types.ErrUnauthorized, "expected %s, got %s", config.Admin, caller)
}

// ensureWhitelisted fails with ErrUnauthorized unless caller is whitelisted.
func (k *Keeper) ensureWhitelisted(ctx context.Context, caller []byte, sender string) error {
	whitelisted, err := k.IsWhitelisted(ctx, caller)
	if err != nil {
		return errors.Wrap(err, "unable to check force withdraw whitelist")
	}
	if !whitelisted {
		return errors.Wrapf(types.ErrUnauthorized, "%s is not whitelisted for force withdrawals", sender)
	}
	return nil
}

// UpdateWhitelist applies additions before removals, so an address present
// in both lists ends up removed. Every address is decoded before any state is
// written.
func (k *Keeper) UpdateWhitelist(ctx context.Context, config types.VaultConfig, caller string, add, remove []string) error {
	if err := k.ensureAdmin(config, caller); err != nil {
		return err
	}

	decode := func(addresses []string) ([][]byte, error) {
		decoded := make([][]byte, 0, len(addresses))
		for _, address := range addresses {
			bz, err := k.address.StringToBytes(address)
			if err != nil {
				return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid address %s", address)
			}
			decoded = append(decoded, bz)
		}
		return decoded, nil
	}

	additions, err := decode(add)
	if err != nil {
		return err
	}
	removals, err := decode(remove)
	if err != nil {
		return err
	}

	for _, address := range additions {
		if err := k.ForceUnlockWhitelist.Set(ctx, address); err != nil {
			return errors.Wrap(err, "unable to add address to whitelist")
		}
	}
	for _, address := range removals {
		if err := k.ForceUnlockWhitelist.Remove(ctx, address); err != nil {
			return errors.Wrap(err, "unable to remove address from whitelist")
		}
	}

	return nil
}

// GetWhitelist returns whitelisted addresses in key order, starting strictly
// after startAfter when it is set.
func (k *Keeper) GetWhitelist(ctx context.Context, startAfter []byte, limit uint32) ([][]byte, error) {
	ranger := new(collections.Range[[]byte])
	if len(startAfter) > 0 {
		ranger = ranger.StartExclusive(startAfter)
	}

	iter, err := k.ForceUnlockWhitelist.Iterate(ctx, ranger)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	addresses := make([][]byte, 0, limit)
	for ; iter.Valid() && uint32(len(addresses)) < limit; iter.Next() {
		address, err := iter.Key()
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}

	return addresses, nil
}

// GetAllWhitelisted returns every whitelisted address.
func (k *Keeper) GetAllWhitelisted(ctx context.Context) ([][]byte, error) {
	var addresses [][]byte
	err := k.ForceUnlockWhitelist.Walk(ctx, nil, func(address []byte) (bool, error) {
		addresses = append(addresses, address)
		return false, nil
	})
	return addresses, err
}
