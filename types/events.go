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

const (
	EventTypeDeposit                    = "vault_deposit"
	EventTypeRedeem                     = "vault_redeem"
	EventTypeUnlockingPositionCreated   = "unlocking_position_created"
	EventTypeWithdrawUnlocked           = "vault_withdraw_unlocked"
	EventTypeWithdrawUnlockedToContract = "vault_withdraw_unlocked_to_contract"
	EventTypeForceRedeem                = "vault_force_redeem"
	EventTypeForceWithdrawUnlocking     = "vault_force_withdraw_unlocking"
	EventTypeUpdateWhitelist            = "vault_update_force_withdraw_whitelist"

	AttributeKeyLockupID      = "lockup_id"
	AttributeKeyCaller        = "caller"
	AttributeKeyRecipient     = "recipient"
	AttributeKeyContract      = "contract"
	AttributeKeyDepositAmount = "deposit_amount"
	AttributeKeyMintAmount    = "mint_amount"
	AttributeKeyShareAmount   = "vault_token_amount"
	AttributeKeyRedeemAmount  = "redeem_amount"
	AttributeKeyReleaseAt     = "release_at"
	AttributeKeyRemaining     = "remaining_amount"
	AttributeKeyEmergency     = "emergency"
	AttributeKeyAdded         = "added"
	AttributeKeyRemoved       = "removed"
)
