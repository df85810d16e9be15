package keeper

import (
	"context"
	"slices"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/steak-hub/steak/x/hub/types"
)

// AddValidator appends validator to the whitelist.
func (k Keeper) AddValidator(ctx context.Context, sender, validator string) error {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return err
	}

	if err := k.assertOwner(cfg, sender); err != nil {
		return err
	}

	validators, err := k.Validators.Get(ctx)
	if err != nil {
		return err
	}

	if slices.Contains(validators, validator) {
		return errorsmod.Wrap(types.ErrValidatorAlreadyWhitelisted, validator)
	}

	if err := k.Validators.Set(ctx, append(validators, validator)); err != nil {
		return err
	}

	if err := k.RetiredValidators.Remove(ctx, validator); err != nil {
		return err
	}

	k.Logger(ctx).Info("validator added", "validator", validator)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeAddValidator,
		sdk.NewAttribute(types.AttributeKeyValidator, validator),
	))

	return nil
}

// RemoveValidator drops validator from the whitelist and redelegates its
// stake to the remaining validators.
func (k Keeper) RemoveValidator(ctx context.Context, sender, validator string) (types.Response, error) {
	cfg, validators, err := k.unlistValidator(ctx, sender, validator)
	if err != nil {
		return types.Response{}, err
	}

	delegations, err := k.QueryDelegations(ctx, validators, cfg.Denom)
	if err != nil {
		return types.Response{}, err
	}

	removed, err := k.stakingKeeper.GetDelegatedAmount(ctx, k.hubAddress, validator, cfg.Denom)
	if err != nil {
		return types.Response{}, err
	}

	var res types.Response
	if !removed.IsNil() && removed.IsPositive() {
		if err := k.snapshotNativeBalance(ctx, cfg.Denom, math.ZeroInt()); err != nil {
			return types.Response{}, err
		}

		redelegations, err := types.ComputeRedelegationsForRemoval(types.NewDelegation(validator, removed, cfg.Denom), delegations, cfg.Denom)
		if err != nil {
			return types.Response{}, err
		}

		for _, r := range redelegations {
			res.Messages = append(res.Messages, types.NewSubMsgWithReply(r))
		}
	}

	k.Logger(ctx).Info("validator removed", "validator", validator, "redelegations", len(res.Messages))

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRemoveValidator,
		sdk.NewAttribute(types.AttributeKeyValidator, validator),
		sdk.NewAttribute(types.AttributeKeyRedelegations, strconv.Itoa(len(res.Messages))),
	))

	return res, nil
}

// RemoveValidatorEx drops validator from the whitelist and leaves its stake
// where it is. The stake keeps backing the receipt token and is moved off
// by the next Rebalance.
func (k Keeper) RemoveValidatorEx(ctx context.Context, sender, validator string) error {
	if _, _, err := k.unlistValidator(ctx, sender, validator); err != nil {
		return err
	}

	if err := k.RetiredValidators.Set(ctx, validator); err != nil {
		return err
	}

	k.Logger(ctx).Info("validator removed without redelegation", "validator", validator)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRemoveValidator,
		sdk.NewAttribute(types.AttributeKeyValidator, validator),
		sdk.NewAttribute(types.AttributeKeyRedelegations, "0"),
	))

	return nil
}

// unlistValidator removes validator and its mining power, returning the
// config and the surviving whitelist.
func (k Keeper) unlistValidator(ctx context.Context, sender, validator string) (types.Config, []string, error) {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return types.Config{}, nil, err
	}

	if err := k.assertOwner(cfg, sender); err != nil {
		return types.Config{}, nil, err
	}

	validators, err := k.Validators.Get(ctx)
	if err != nil {
		return types.Config{}, nil, err
	}

	idx := slices.Index(validators, validator)
	if idx < 0 {
		return types.Config{}, nil, errorsmod.Wrap(types.ErrValidatorNotWhitelisted, validator)
	}

	if len(validators) == 1 {
		return types.Config{}, nil, types.ErrLastValidator
	}

	validators = slices.Delete(slices.Clone(validators), idx, idx+1)
	if err := k.Validators.Set(ctx, validators); err != nil {
		return types.Config{}, nil, err
	}

	if err := k.setMiningPower(ctx, validator, math.ZeroInt()); err != nil {
		return types.Config{}, nil, err
	}

	return cfg, validators, nil
}

// Rebalance redelegates stake toward each validator's target: an even split
// or, once mining powers are recorded, a mining weighted split. Stake left
// on retired validators is drained onto the whitelist first, and the split
// among whitelisted validators waits until none is left. A nil or zero
// minimum uses the node default.
func (k Keeper) Rebalance(ctx context.Context, sender string, minimum math.Int) (types.Response, error) {
	cfg, delegations, err := k.loadDelegations(ctx)
	if err != nil {
		return types.Response{}, err
	}

	if err := k.assertOwner(cfg, sender); err != nil {
		return types.Response{}, err
	}

	if minimum.IsNil() || minimum.IsZero() {
		minimum = math.NewIntFromUint64(k.hubConfig.MinRedelegation)
	}

	if err := k.pruneRetired(ctx, delegations.Retired()); err != nil {
		return types.Response{}, err
	}

	var redelegations []types.Redelegation
	if retired := delegations.Retired(); len(retired) > 0 {
		redelegations, err = drainRetired(retired, delegations.Active(), cfg.Denom)
	} else {
		var targetFn types.TargetFunc
		targetFn, _, err = k.targetFunc(ctx, delegations.Active())
		if err != nil {
			return types.Response{}, err
		}

		redelegations, err = types.ComputeRedelegationsForRebalancing(delegations.Validators, delegations.Active(), minimum, targetFn)
	}
	if err != nil {
		return types.Response{}, err
	}

	if len(redelegations) > 0 {
		if err := k.snapshotNativeBalance(ctx, cfg.Denom, math.ZeroInt()); err != nil {
			return types.Response{}, err
		}
	}

	var res types.Response
	for _, r := range redelegations {
		res.Messages = append(res.Messages, types.NewSubMsgWithReply(r))
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRebalance,
		sdk.NewAttribute(types.AttributeKeyRedelegations, strconv.Itoa(len(redelegations))),
	))

	return res, nil
}

// drainRetired moves the stake of every retired validator onto the active
// ones, topping up the least delegated first.
func drainRetired(retired, active []types.Delegation, denom string) ([]types.Redelegation, error) {
	active = slices.Clone(active)

	var redelegations []types.Redelegation
	for _, r := range retired {
		moves, err := types.ComputeRedelegationsForRemoval(r, active, denom)
		if err != nil {
			return nil, err
		}

		for _, m := range moves {
			i := slices.IndexFunc(active, func(d types.Delegation) bool { return d.Validator == m.Dst })
			active[i].Amount = active[i].Amount.Add(m.Amount)
		}

		redelegations = append(redelegations, moves...)
	}

	return redelegations, nil
}

// pruneRetired forgets retired validators that no longer hold stake.
func (k Keeper) pruneRetired(ctx context.Context, holding []types.Delegation) error {
	var empty []string
	err := k.RetiredValidators.Walk(ctx, nil, func(validator string) (bool, error) {
		if !slices.ContainsFunc(holding, func(d types.Delegation) bool { return d.Validator == validator }) {
			empty = append(empty, validator)
		}

		return false, nil
	})
	if err != nil {
		return err
	}

	for _, validator := range empty {
		if err := k.RetiredValidators.Remove(ctx, validator); err != nil {
			return err
		}
	}

	return nil
}

// UpdateMiningPower sets the mining power of a whitelisted validator.
func (k Keeper) UpdateMiningPower(ctx context.Context, sender, validator string, power math.Int) error {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return err
	}

	if err := k.assertOwner(cfg, sender); err != nil {
		return err
	}

	validators, err := k.Validators.Get(ctx)
	if err != nil {
		return err
	}

	if !slices.Contains(validators, validator) {
		return errorsmod.Wrap(types.ErrValidatorNotWhitelisted, validator)
	}

	if power.IsNil() || power.IsNegative() {
		return errorsmod.Wrapf(types.ErrArithmetic, "negative mining power %s", power)
	}

	if err := k.setMiningPower(ctx, validator, power); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUpdateMiningPower,
		sdk.NewAttribute(types.AttributeKeyValidator, validator),
		sdk.NewAttribute(types.AttributeKeyMiningPower, power.String()),
	))

	return nil
}

// setMiningPower stores power for validator and keeps the total in step. A
// zero power removes the entry.
func (k Keeper) setMiningPower(ctx context.Context, validator string, power math.Int) error {
	prev, err := k.GetMiningPower(ctx, validator)
	if err != nil {
		return err
	}

	total, err := k.GetTotalMiningPower(ctx)
	if err != nil {
		return err
	}

	total, err = total.Sub(prev).SafeAdd(power)
	if err != nil {
		return errorsmod.Wrap(types.ErrArithmetic, err.Error())
	}

	if err := k.TotalMiningPower.Set(ctx, total); err != nil {
		return err
	}

	if power.IsZero() {
		return k.ValidatorMiningPowers.Remove(ctx, validator)
	}

	return k.ValidatorMiningPowers.Set(ctx, validator, power)
}
