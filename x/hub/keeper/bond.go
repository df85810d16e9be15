package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/steak-hub/steak/x/hub/types"
)

// Bond delegates a deposit of native token and mints receipt token to
// receiver at the current exchange rate.
func (k Keeper) Bond(ctx context.Context, receiver string, funds sdk.Coins) (types.Response, math.Int, error) {
	cfg, delegations, err := k.loadDelegations(ctx)
	if err != nil {
		return types.Response{}, math.Int{}, err
	}

	amount, err := types.ParseReceivedFund(funds, cfg.Denom)
	if err != nil {
		return types.Response{}, math.Int{}, err
	}

	supply, err := k.tokenKeeper.TotalSupply(ctx, cfg.SteakToken)
	if err != nil {
		return types.Response{}, math.Int{}, err
	}

	totalNative, err := types.SumDelegations(delegations.All)
	if err != nil {
		return types.Response{}, math.Int{}, err
	}

	minted, err := types.ComputeMintAmount(supply, amount, totalNative)
	if err != nil {
		return types.Response{}, math.Int{}, err
	}
	if !minted.IsPositive() {
		return types.Response{}, math.Int{}, errorsmod.Wrapf(types.ErrZeroAmount, "deposit of %s mints no %s", amount, cfg.SteakToken)
	}

	delegation, err := types.ComputeDelegation(amount, delegations.Active(), cfg.Denom)
	if err != nil {
		return types.Response{}, math.Int{}, err
	}

	if err := k.snapshotNativeBalance(ctx, cfg.Denom, amount); err != nil {
		return types.Response{}, math.Int{}, err
	}

	// delegating withdraws pending rewards, which must be registered
	res := types.Response{Messages: []types.SubMsg{
		types.NewSubMsgWithReply(delegation),
		types.NewSubMsg(types.Mint{Token: cfg.SteakToken, Recipient: receiver, Amount: minted}),
	}}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeBond,
			sdk.NewAttribute(types.AttributeKeyReceiver, receiver),
			sdk.NewAttribute(types.AttributeKeyValidator, delegation.Validator),
			sdk.NewAttribute(types.AttributeKeyBondAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyUsteakMinted, minted.String()),
		),
	})

	return res, minted, nil
}

// Harvest withdraws the rewards of every validator the hub delegates to
// and schedules their reinvestment.
func (k Keeper) Harvest(ctx context.Context) (types.Response, error) {
	cfg, delegations, err := k.loadDelegations(ctx)
	if err != nil {
		return types.Response{}, err
	}

	if err := k.snapshotNativeBalance(ctx, cfg.Denom, math.ZeroInt()); err != nil {
		return types.Response{}, err
	}

	var res types.Response
	for _, d := range delegations.All {
		if !d.Amount.IsPositive() {
			continue
		}

		res.Messages = append(res.Messages, types.NewSubMsgWithReply(types.RewardWithdrawal{Validator: d.Validator}))
	}

	res.Messages = append(res.Messages, types.NewSubMsg(types.Callback{Kind: types.CallbackReinvest}))

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeHarvest))

	return res, nil
}

// RegisterReceivedCoins merges coins confirmed to have reached the hub into
// the unlocked coins. When no native coin is reported the native balance
// growth since the snapshot taken by the handler that emitted the
// instruction, in the same block, is credited instead.
func (k Keeper) RegisterReceivedCoins(ctx context.Context, sender string, received sdk.Coins) error {
	if err := k.assertHub(sender); err != nil {
		return err
	}

	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return err
	}

	unlocked, err := k.GetUnlockedCoins(ctx)
	if err != nil {
		return err
	}

	unlocked, err = types.AddCoins(unlocked, received)
	if err != nil {
		return err
	}

	balance := k.bankKeeper.GetBalance(ctx, k.hubAddress, cfg.Denom).Amount
	if balance.IsNil() {
		balance = math.ZeroInt()
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	height := sdkCtx.BlockHeight()
	if !types.AmountOf(received, cfg.Denom).IsPositive() {
		prev, err := k.PrevNativeBalance.Get(ctx)
		switch {
		case errors.Is(err, collections.ErrNotFound):
		case err != nil:
			return err
		// a snapshot from an earlier block may predate unbonded funds
		case prev.Height == height && balance.GT(prev.Amount):
			unlocked, err = types.AddCoin(unlocked, sdk.NewCoin(cfg.Denom, balance.Sub(prev.Amount)))
			if err != nil {
				return err
			}
		}
	}

	if err := k.UnlockedCoins.Set(ctx, unlocked); err != nil {
		return err
	}

	if err := k.PrevNativeBalance.Set(ctx, types.BalanceSnapshot{Height: height, Amount: balance}); err != nil {
		return err
	}

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRegisterReceivedCoins,
		sdk.NewAttribute(types.AttributeKeyReceivedCoins, received.String()),
	))

	return nil
}

// Reinvest takes the protocol fee off the unlocked native coins and
// delegates the rest.
func (k Keeper) Reinvest(ctx context.Context, sender string) (types.Response, error) {
	if err := k.assertHub(sender); err != nil {
		return types.Response{}, err
	}

	cfg, delegations, err := k.loadDelegations(ctx)
	if err != nil {
		return types.Response{}, err
	}

	unlocked, err := k.GetUnlockedCoins(ctx)
	if err != nil {
		return types.Response{}, err
	}

	native := types.AmountOf(unlocked, cfg.Denom)
	if !native.IsPositive() {
		return types.Response{}, nil
	}

	fee, reinvest, err := types.ComputeFee(native, cfg.FeeRate, cfg.MaxFeeRate)
	if err != nil {
		return types.Response{}, err
	}

	validator, err := k.reinvestTarget(ctx, delegations.Active())
	if err != nil {
		return types.Response{}, err
	}

	var res types.Response
	if reinvest.IsPositive() {
		res.Messages = append(res.Messages, types.NewSubMsg(types.NewDelegation(validator, reinvest, cfg.Denom)))
	}
	if fee.IsPositive() {
		res.Messages = append(res.Messages, types.NewSubMsg(cfg.FeeSink.Instruction(sdk.NewCoin(cfg.Denom, fee))))
	}

	if err := k.UnlockedCoins.Set(ctx, types.RemoveDenom(unlocked, cfg.Denom)); err != nil {
		return types.Response{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeReinvest,
		sdk.NewAttribute(types.AttributeKeyValidator, validator),
		sdk.NewAttribute(types.AttributeKeyNativeAmount, reinvest.String()),
		sdk.NewAttribute(types.AttributeKeyFeeAmount, fee.String()),
	))

	return res, nil
}

// reinvestTarget returns the most underweight validator in mining mode and
// the least delegated one otherwise.
func (k Keeper) reinvestTarget(ctx context.Context, delegations []types.Delegation) (string, error) {
	targetFn, mining, err := k.targetFunc(ctx, delegations)
	if err != nil {
		return "", err
	}

	if mining {
		return types.MostUnderweight(delegations, targetFn)
	}

	d, err := types.ComputeDelegation(math.ZeroInt(), delegations, "")
	if err != nil {
		return "", err
	}

	return d.Validator, nil
}
