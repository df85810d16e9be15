package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/steak-hub/steak/x/hub/types"
)

// TransferOwnership nominates newOwner. The nomination takes effect once
// newOwner accepts it.
func (k Keeper) TransferOwnership(ctx context.Context, sender, newOwner string) error {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return err
	}

	if err := k.assertOwner(cfg, sender); err != nil {
		return err
	}

	cfg.NewOwner = newOwner
	if err := k.Config.Set(ctx, cfg); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeTransferOwnership,
		sdk.NewAttribute(types.AttributeKeyPreviousOwner, cfg.Owner),
		sdk.NewAttribute(types.AttributeKeyNewOwner, newOwner),
	))

	return nil
}

// AcceptOwnership completes a transfer started by TransferOwnership.
func (k Keeper) AcceptOwnership(ctx context.Context, sender string) error {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return err
	}

	if cfg.NewOwner == "" || sender != cfg.NewOwner {
		return errorsmod.Wrap(types.ErrUnauthorized, "sender is not new owner")
	}

	previous := cfg.Owner
	cfg.Owner, cfg.NewOwner = cfg.NewOwner, ""
	if err := k.Config.Set(ctx, cfg); err != nil {
		return err
	}

	k.Logger(ctx).Info("ownership accepted", "previous_owner", previous, "new_owner", cfg.Owner)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeAcceptOwnership,
		sdk.NewAttribute(types.AttributeKeyPreviousOwner, previous),
		sdk.NewAttribute(types.AttributeKeyNewOwner, cfg.Owner),
	))

	return nil
}

// TransferFeeAccount points the protocol fee at a new sink.
func (k Keeper) TransferFeeAccount(ctx context.Context, sender, feeAccountType, newFeeAccount string) error {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return err
	}

	if err := k.assertOwner(cfg, sender); err != nil {
		return err
	}

	feeType, err := types.ParseFeeType(feeAccountType)
	if err != nil {
		return err
	}

	cfg.FeeSink = types.FeeSink{Type: feeType, Address: newFeeAccount}
	if err := k.Config.Set(ctx, cfg); err != nil {
		return err
	}

	k.Logger(ctx).Info("fee account changed", "type", feeType.String(), "account", newFeeAccount)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeTransferFeeAccount,
		sdk.NewAttribute(types.AttributeKeyFeeType, feeType.String()),
		sdk.NewAttribute(types.AttributeKeyFeeAccount, newFeeAccount),
	))

	return nil
}

// UpdateFee changes the fee rate, which may not exceed the max fee rate.
func (k Keeper) UpdateFee(ctx context.Context, sender string, newFee math.LegacyDec) error {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return err
	}

	if err := k.assertOwner(cfg, sender); err != nil {
		return err
	}

	if newFee.IsNil() || newFee.IsNegative() {
		return errorsmod.Wrapf(types.ErrInvalidConfig, "invalid fee rate %s", newFee)
	}

	if newFee.GT(cfg.MaxFeeRate) {
		return errorsmod.Wrap(types.ErrFeeRateTooHigh, "refusing to set fee above maximum set")
	}

	cfg.FeeRate = newFee
	if err := k.Config.Set(ctx, cfg); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUpdateFee,
		sdk.NewAttribute(types.AttributeKeyFeeRate, newFee.String()),
	))

	return nil
}
