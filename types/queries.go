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
	"time"

	"cosmossdk.io/math"
)

const (
	DefaultQueryLimit uint32 = 10
	MaxQueryLimit     uint32 = 30
)

type QueryServer interface {
	VaultStandardInfo(context.Context, *QueryVaultStandardInfoRequest) (*QueryVaultStandardInfoResponse, error)
	Info(context.Context, *QueryInfoRequest) (*QueryInfoResponse, error)
	PreviewDeposit(context.Context, *QueryPreviewDepositRequest) (*QueryAmountResponse, error)
	PreviewRedeem(context.Context, *QueryPreviewRedeemRequest) (*QueryAmountResponse, error)
	ConvertToShares(context.Context, *QueryConvertToSharesRequest) (*QueryAmountResponse, error)
	ConvertToAssets(context.Context, *QueryConvertToAssetsRequest) (*QueryAmountResponse, error)
	TotalAssets(context.Context, *QueryTotalAssetsRequest) (*QueryAmountResponse, error)
	TotalVaultTokenSupply(context.Context, *QueryTotalVaultTokenSupplyRequest) (*QueryAmountResponse, error)
	VaultTokenExchangeRate(context.Context, *QueryVaultTokenExchangeRateRequest) (*QueryVaultTokenExchangeRateResponse, error)
	UnlockingPositions(context.Context, *QueryUnlockingPositionsRequest) (*QueryUnlockingPositionsResponse, error)
	UnlockingPosition(context.Context, *QueryUnlockingPositionRequest) (*QueryUnlockingPositionResponse, error)
	LockupDuration(context.Context, *QueryLockupDurationRequest) (*QueryLockupDurationResponse, error)
	ForceWithdrawWhitelist(context.Context, *QueryForceWithdrawWhitelistRequest) (*QueryForceWithdrawWhitelistResponse, error)
}

// NormalizeLimit applies the default and maximum page size to a requested limit.
func NormalizeLimit(limit *uint32) uint32 {
	if limit == nil || *limit == 0 {
		return DefaultQueryLimit
	}
	return min(*limit, MaxQueryLimit)
}

type QueryVaultStandardInfoRequest struct{}

type QueryVaultStandardInfoResponse struct {
	Version    uint16   `json:"version"`
	Extensions []string `json:"extensions"`
}

type QueryInfoRequest struct{}

type QueryInfoResponse struct {
	BaseToken  string `json:"base_token"`
	VaultToken string `json:"vault_token"`
}

type QueryPreviewDepositRequest struct {
	Amount math.Int `json:"amount"`
}

type QueryPreviewRedeemRequest struct {
	Amount math.Int `json:"amount"`
}

type QueryConvertToSharesRequest struct {
	Amount math.Int `json:"amount"`
}

type QueryConvertToAssetsRequest struct {
	Amount math.Int `json:"amount"`
}

type QueryTotalAssetsRequest struct{}

type QueryTotalVaultTokenSupplyRequest struct{}

// QueryAmountResponse is shared by every query that answers with a single amount.
type QueryAmountResponse struct {
	Amount math.Int `json:"amount"`
}

type QueryVaultTokenExchangeRateRequest struct {
	QuoteDenom string `json:"quote_denom"`
}

type QueryVaultTokenExchangeRateResponse struct {
	Rate math.LegacyDec `json:"rate"`
}

type QueryUnlockingPositionsRequest struct {
	Owner      string  `json:"owner"`
	StartAfter *uint64 `json:"start_after,omitempty"`
	Limit      *uint32 `json:"limit,omitempty"`
}

type QueryUnlockingPositionsResponse struct {
	Positions []UnlockingPositionView `json:"positions"`
}

type QueryUnlockingPositionRequest struct {
	LockupID uint64 `json:"lockup_id"`
}

type QueryUnlockingPositionResponse struct {
	Position UnlockingPositionView `json:"position"`
}

type QueryLockupDurationRequest struct{}

type QueryLockupDurationResponse struct {
	Duration time.Duration `json:"duration"`
}

type QueryForceWithdrawWhitelistRequest struct {
	StartAfter string  `json:"start_after,omitempty"`
	Limit      *uint32 `json:"limit,omitempty"`
}

type QueryForceWithdrawWhitelistResponse struct {
	Addresses []string `json:"addresses"`
}
