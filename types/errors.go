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

import "cosmossdk.io/errors"

var (
	ErrInvalidRequest       = errors.Register(ModuleName, 2, "invalid request")
	ErrInvalidFunds         = errors.Register(ModuleName, 3, "invalid funds")
	ErrArithmeticOverflow   = errors.Register(ModuleName, 4, "arithmetic overflow")
	ErrDivisionByZero       = errors.Register(ModuleName, 5, "division by zero")
	ErrUnauthorized         = errors.Register(ModuleName, 6, "unauthorized")
	ErrNotFound             = errors.Register(ModuleName, 7, "unlocking position not found")
	ErrNotMatured           = errors.Register(ModuleName, 8, "unlocking position has not matured")
	ErrInsufficientPosition = errors.Register(ModuleName, 9, "insufficient unlocking position")
	ErrDenomUnsupported     = errors.Register(ModuleName, 10, "denom not supported by vault")
	ErrExtensionDisabled    = errors.Register(ModuleName, 11, "vault extension not enabled")
	ErrInvalidConfig        = errors.Register(ModuleName, 12, "invalid vault config")
)
