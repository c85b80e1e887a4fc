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

	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"vault.noble.xyz/v1/types"
)

var _ types.QueryServer = &queryServer{}

type queryServer struct {
	*Keeper
}

func NewQueryServer(keeper *Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

func (q queryServer) VaultStandardInfo(ctx context.Context, req *types.QueryVaultStandardInfoRequest) (*types.QueryVaultStandardInfoResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	config, err := q.GetVaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &types.QueryVaultStandardInfoResponse{
		Version:    types.StandardVersion,
		Extensions: config.ExtensionNames(),
	}, nil
}

func (q queryServer) Info(ctx context.Context, req *types.QueryInfoRequest) (*types.QueryInfoResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	config, err := q.GetVaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &types.QueryInfoResponse{
		BaseToken:  config.ReserveDenom,
		VaultToken: config.ShareDenom,
	}, nil
}

func (q queryServer) PreviewDeposit(ctx context.Context, req *types.QueryPreviewDepositRequest) (*types.QueryAmountResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}
	return q.convertToShares(ctx, req.Amount)
}

func (q queryServer) ConvertToShares(ctx context.Context, req *types.QueryConvertToSharesRequest) (*types.QueryAmountResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}
	return q.convertToShares(ctx, req.Amount)
}

func (q queryServer) PreviewRedeem(ctx context.Context, req *types.QueryPreviewRedeemRequest) (*types.QueryAmountResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}
	return q.convertToAssets(ctx, req.Amount)
}

func (q queryServer) ConvertToAssets(ctx context.Context, req *types.QueryConvertToAssetsRequest) (*types.QueryAmountResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}
	return q.convertToAssets(ctx, req.Amount)
}

// convertToShares prices amount against the current reserve. The deposit is
// not yet part of the reserve, so nothing is deducted.
func (q queryServer) convertToShares(ctx context.Context, amount math.Int) (*types.QueryAmountResponse, error) {
	if err := types.CheckAmount(amount); err != nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, err.Error())
	}

	config, err := q.GetVaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	shares, err := q.Keeper.ConvertToShares(ctx, amount, q.snapshotReserve(ctx, config), false)
	if err != nil {
		return nil, err
	}

	return &types.QueryAmountResponse{Amount: shares}, nil
}

func (q queryServer) convertToAssets(ctx context.Context, amount math.Int) (*types.QueryAmountResponse, error) {
	if err := types.CheckAmount(amount); err != nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, err.Error())
	}

	config, err := q.GetVaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	reserve, err := q.ConvertToReserve(ctx, amount, q.snapshotReserve(ctx, config))
	if err != nil {
		return nil, err
	}

	return &types.QueryAmountResponse{Amount: reserve}, nil
}

// TotalAssets returns the reserve backing outstanding shares. Reserve owed
// to unlocking positions is excluded.
func (q queryServer) TotalAssets(ctx context.Context, req *types.QueryTotalAssetsRequest) (*types.QueryAmountResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	config, err := q.GetVaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	reserve, err := q.effectiveReserve(ctx, q.snapshotReserve(ctx, config))
	if err != nil {
		return nil, err
	}

	return &types.QueryAmountResponse{Amount: reserve}, nil
}

func (q queryServer) TotalVaultTokenSupply(ctx context.Context, req *types.QueryTotalVaultTokenSupplyRequest) (*types.QueryAmountResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	totalShares, err := q.GetTotalShares(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch total share supply")
	}

	return &types.QueryAmountResponse{Amount: totalShares}, nil
}

func (q queryServer) VaultTokenExchangeRate(ctx context.Context, req *types.QueryVaultTokenExchangeRateRequest) (*types.QueryVaultTokenExchangeRateResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	config, err := q.GetVaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	if req.QuoteDenom != config.ReserveDenom {
		return nil, errors.Wrapf(types.ErrDenomUnsupported, "exchange rate is only quoted in %s", config.ReserveDenom)
	}

	rate, err := q.ExchangeRate(ctx, q.snapshotReserve(ctx, config))
	if err != nil {
		return nil, err
	}

	return &types.QueryVaultTokenExchangeRateResponse{Rate: rate}, nil
}

func (q queryServer) UnlockingPositions(ctx context.Context, req *types.QueryUnlockingPositionsRequest) (*types.QueryUnlockingPositionsResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	owner, err := q.address.StringToBytes(req.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid owner address: %s", req.Owner)
	}

	positions, err := q.GetUnlockingPositionsByOwner(ctx, owner, req.StartAfter, types.NormalizeLimit(req.Limit))
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch unlocking positions")
	}

	views := make([]types.UnlockingPositionView, 0, len(positions))
	for _, position := range positions {
		view, err := q.positionView(position)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return &types.QueryUnlockingPositionsResponse{Positions: views}, nil
}

func (q queryServer) UnlockingPosition(ctx context.Context, req *types.QueryUnlockingPositionRequest) (*types.QueryUnlockingPositionResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	position, found, err := q.GetUnlockingPosition(ctx, req.LockupID)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch unlocking position")
	}
	if !found {
		return nil, errors.Wrapf(types.ErrNotFound, "lockup id %d", req.LockupID)
	}

	view, err := q.positionView(position)
	if err != nil {
		return nil, err
	}

	return &types.QueryUnlockingPositionResponse{Position: view}, nil
}

func (q queryServer) LockupDuration(ctx context.Context, req *types.QueryLockupDurationRequest) (*types.QueryLockupDurationResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	config, err := q.GetVaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &types.QueryLockupDurationResponse{Duration: config.LockupDuration}, nil
}

func (q queryServer) ForceWithdrawWhitelist(ctx context.Context, req *types.QueryForceWithdrawWhitelistRequest) (*types.QueryForceWithdrawWhitelistResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	var startAfter []byte
	if req.StartAfter != "" {
		bz, err := q.address.StringToBytes(req.StartAfter)
		if err != nil {
			return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid start address: %s", req.StartAfter)
		}
		startAfter = bz
	}

	whitelisted, err := q.GetWhitelist(ctx, startAfter, types.NormalizeLimit(req.Limit))
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch force withdraw whitelist")
	}

	addresses := make([]string, 0, len(whitelisted))
	for _, bz := range whitelisted {
		address, err := q.address.BytesToString(bz)
		if err != nil {
			return nil, errors.Wrap(err, "unable to encode whitelisted address")
		}
		addresses = append(addresses, address)
	}

	return &types.QueryForceWithdrawWhitelistResponse{Addresses: addresses}, nil
}

func (q queryServer) positionView(position types.UnlockingPosition) (types.UnlockingPositionView, error) {
	owner, err := q.address.BytesToString(position.Owner)
	if err != nil {
		return types.UnlockingPositionView{}, errors.Wrap(err, "unable to encode position owner")
	}

	return types.UnlockingPositionView{
		ID:              position.ID,
		Owner:           owner,
		ReleaseAt:       position.ReleaseTime,
		BaseTokenAmount: position.Amount,
	}, nil
}
