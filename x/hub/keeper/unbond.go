package keeper

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/steak-hub/steak/x/hub/types"
)

// QueueUnbond records amount of receipt token, delivered by token on behalf
// of receiver, against the pending batch. Once the batch is due a
// submission is scheduled.
func (k Keeper) QueueUnbond(ctx context.Context, token, receiver string, amount math.Int) (types.Response, error) {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return types.Response{}, err
	}

	if token != cfg.SteakToken {
		return types.Response{}, errorsmod.Wrapf(types.ErrUnexpectedToken, "expecting Steak token, received %s", token)
	}

	if amount.IsNil() || !amount.IsPositive() {
		return types.Response{}, errorsmod.Wrap(types.ErrZeroAmount, "unbond amount must be non-zero")
	}

	pending, err := k.PendingBatch.Get(ctx)
	if err != nil {
		return types.Response{}, err
	}

	key := collections.Join(pending.ID, receiver)
	request, err := k.UnbondRequests.Get(ctx, key)
	if errors.Is(err, collections.ErrNotFound) {
		request = types.UnbondRequest{ID: pending.ID, User: receiver, Shares: math.ZeroInt()}
	} else if err != nil {
		return types.Response{}, err
	}

	if request.Shares, err = request.Shares.SafeAdd(amount); err != nil {
		return types.Response{}, errorsmod.Wrap(types.ErrArithmetic, err.Error())
	}

	if pending.UsteakToBurn, err = pending.UsteakToBurn.SafeAdd(amount); err != nil {
		return types.Response{}, errorsmod.Wrap(types.ErrArithmetic, err.Error())
	}

	if err := k.SetUnbondRequest(ctx, request); err != nil {
		return types.Response{}, err
	}

	if err := k.PendingBatch.Set(ctx, pending); err != nil {
		return types.Response{}, err
	}

	var res types.Response
	if pending.Ready(blockTime(ctx)) {
		res.Messages = append(res.Messages, types.NewSubMsg(types.Callback{Kind: types.CallbackSubmitBatch}))
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeQueueUnbond,
		sdk.NewAttribute(types.AttributeKeyReceiver, receiver),
		sdk.NewAttribute(types.AttributeKeyBatchID, strconv.FormatUint(pending.ID, 10)),
		sdk.NewAttribute(types.AttributeKeyUsteakToBurn, amount.String()),
	))

	return res, nil
}

// SubmitBatch burns the receipt token of the pending batch, undelegates the
// native token it is worth and opens the next batch.
func (k Keeper) SubmitBatch(ctx context.Context) (types.Response, error) {
	now := blockTime(ctx)

	pending, err := k.PendingBatch.Get(ctx)
	if err != nil {
		return types.Response{}, err
	}

	if !pending.Ready(now) {
		return types.Response{}, errorsmod.Wrapf(types.ErrBatchNotReady, "batch can only be submitted for unbonding after %d", pending.EstUnbondStartTime)
	}

	if !pending.UsteakToBurn.IsPositive() {
		return types.Response{}, errorsmod.Wrapf(types.ErrEmptyBatch, "batch %d has no receipt token to burn", pending.ID)
	}

	cfg, delegations, err := k.loadDelegations(ctx)
	if err != nil {
		return types.Response{}, err
	}

	supply, err := k.tokenKeeper.TotalSupply(ctx, cfg.SteakToken)
	if err != nil {
		return types.Response{}, err
	}

	totalNative, err := types.SumDelegations(delegations.All)
	if err != nil {
		return types.Response{}, err
	}

	nativeToUnbond, err := types.ComputeUnbondAmount(supply, pending.UsteakToBurn, totalNative)
	if err != nil {
		return types.Response{}, err
	}

	var undelegations []types.Undelegation
	if nativeToUnbond.IsPositive() {
		unbondable, err := types.UnbondableDelegations(nativeToUnbond, delegations.Live())
		if err != nil {
			return types.Response{}, err
		}

		undelegations, err = types.ComputeUndelegations(nativeToUnbond, unbondable, cfg.Denom)
		if err != nil {
			return types.Response{}, err
		}
	}

	if err := k.snapshotNativeBalance(ctx, cfg.Denom, math.ZeroInt()); err != nil {
		return types.Response{}, err
	}

	batch := types.Batch{
		ID:               pending.ID,
		Reconciled:       false,
		TotalShares:      pending.UsteakToBurn,
		AmountUnclaimed:  nativeToUnbond,
		EstUnbondEndTime: now + cfg.UnbondPeriod,
	}
	if err := k.SetBatch(ctx, batch); err != nil {
		return types.Response{}, err
	}

	if err := k.PendingBatch.Set(ctx, types.NewPendingBatch(pending.ID+1, now+cfg.EpochPeriod)); err != nil {
		return types.Response{}, err
	}

	var res types.Response
	for _, u := range undelegations {
		res.Messages = append(res.Messages, types.NewSubMsgWithReply(u))
	}
	res.Messages = append(res.Messages, types.NewSubMsg(types.Burn{Token: cfg.SteakToken, Amount: pending.UsteakToBurn}))

	k.Logger(ctx).Info("batch submitted",
		"id", batch.ID,
		"usteak_burned", batch.TotalShares.String(),
		"native_unbonded", nativeToUnbond.String(),
	)

	telemetry.IncrCounter(1, types.ModuleName, "submit_batch")

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeSubmitBatch,
		sdk.NewAttribute(types.AttributeKeyBatchID, strconv.FormatUint(batch.ID, 10)),
		sdk.NewAttribute(types.AttributeKeyNativeUnbonded, nativeToUnbond.String()),
		sdk.NewAttribute(types.AttributeKeyUsteakToBurn, batch.TotalShares.String()),
	))

	return res, nil
}

// Reconcile compares the native token owed by matured batches with what
// the hub actually holds and spreads any shortfall over those batches.
func (k Keeper) Reconcile(ctx context.Context) error {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), "reconcile")

	now := blockTime(ctx)

	var batches []types.Batch
	err := k.BatchesByReconciled.Walk(ctx, collections.NewPrefixedPairRange[bool, uint64](false), func(key collections.Pair[bool, uint64], _ bool) (bool, error) {
		batch, err := k.Batches.Get(ctx, key.K2())
		if err != nil {
			return true, err
		}

		if batch.Matured(now) {
			batches = append(batches, batch)
		}

		return false, nil
	})
	if err != nil {
		return err
	}

	if len(batches) == 0 {
		return nil
	}

	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return err
	}

	unlocked, err := k.GetUnlockedCoins(ctx)
	if err != nil {
		return err
	}

	expected, err := types.SumUnclaimed(batches)
	if err != nil {
		return err
	}

	balance := k.bankKeeper.GetBalance(ctx, k.hubAddress, cfg.Denom).Amount
	if balance.IsNil() {
		balance = math.ZeroInt()
	}

	available := balance.Sub(types.AmountOf(unlocked, cfg.Denom))
	if available.IsNegative() {
		available = math.ZeroInt()
	}

	shortfall := math.ZeroInt()
	if expected.GT(available) {
		shortfall = expected.Sub(available)
	}

	if err := types.ApplyShortfall(batches, shortfall); err != nil {
		return err
	}

	ids := make([]string, len(batches))
	for i, batch := range batches {
		if err := k.BatchesByReconciled.Remove(ctx, collections.Join(false, batch.ID)); err != nil {
			return err
		}

		if err := k.SetBatch(ctx, batch); err != nil {
			return err
		}

		ids[i] = strconv.FormatUint(batch.ID, 10)
	}

	k.Logger(ctx).Info("batches reconciled", "ids", ids, "shortfall", shortfall.String())

	if shortfall.IsInt64() {
		telemetry.SetGauge(float32(shortfall.Int64()), types.ModuleName, "reconcile", "shortfall")
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeReconcile,
		sdk.NewAttribute(types.AttributeKeyBatchIDs, strings.Join(ids, ",")),
		sdk.NewAttribute(types.AttributeKeyShortfall, shortfall.String()),
	))

	return nil
}

// WithdrawUnbonded pays user's share of every reconciled batch to receiver
// in a single transfer and returns the amount paid.
func (k Keeper) WithdrawUnbonded(ctx context.Context, user, receiver string) (types.Response, math.Int, error) {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return types.Response{}, math.Int{}, err
	}

	var ids []uint64
	err = k.UnbondRequestsByUser.Walk(ctx, collections.NewPrefixedPairRange[string, uint64](user), func(key collections.Pair[string, uint64], _ bool) (bool, error) {
		ids = append(ids, key.K2())
		return false, nil
	})
	if err != nil {
		return types.Response{}, math.Int{}, err
	}

	total := math.ZeroInt()
	for _, id := range ids {
		batch, err := k.Batches.Get(ctx, id)
		if errors.Is(err, collections.ErrNotFound) {
			// still pending
			continue
		} else if err != nil {
			return types.Response{}, math.Int{}, err
		}

		if !batch.Reconciled {
			continue
		}

		request, err := k.UnbondRequests.Get(ctx, collections.Join(id, user))
		if err != nil {
			return types.Response{}, math.Int{}, err
		}

		payout, err := batch.Payout(request.Shares)
		if err != nil {
			return types.Response{}, math.Int{}, err
		}

		if err := batch.Settle(request.Shares, payout); err != nil {
			return types.Response{}, math.Int{}, err
		}

		if batch.TotalShares.IsZero() {
			err = k.RemoveBatch(ctx, batch)
		} else {
			err = k.SetBatch(ctx, batch)
		}
		if err != nil {
			return types.Response{}, math.Int{}, err
		}

		if err := k.RemoveUnbondRequest(ctx, request); err != nil {
			return types.Response{}, math.Int{}, err
		}

		if total, err = total.SafeAdd(payout); err != nil {
			return types.Response{}, math.Int{}, errorsmod.Wrap(types.ErrArithmetic, err.Error())
		}
	}

	if !total.IsPositive() {
		return types.Response{}, math.Int{}, types.ErrNothingToWithdraw
	}

	res := types.Response{Messages: []types.SubMsg{
		types.NewSubMsg(types.Send{ToAddress: receiver, Amount: sdk.NewCoins(sdk.NewCoin(cfg.Denom, total))}),
	}}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeWithdrawUnbonded,
		sdk.NewAttribute(types.AttributeKeyUser, user),
		sdk.NewAttribute(types.AttributeKeyReceiver, receiver),
		sdk.NewAttribute(types.AttributeKeyNativeAmount, total.String()),
	))

	return res, total, nil
}

func (k Keeper) SetBatch(ctx context.Context, batch types.Batch) error {
	if err := k.Batches.Set(ctx, batch.ID, batch); err != nil {
		return err
	}

	return k.BatchesByReconciled.Set(ctx, collections.Join(batch.Reconciled, batch.ID), true)
}

func (k Keeper) RemoveBatch(ctx context.Context, batch types.Batch) error {
	if err := k.Batches.Remove(ctx, batch.ID); err != nil {
		return err
	}

	return k.BatchesByReconciled.Remove(ctx, collections.Join(batch.Reconciled, batch.ID))
}

func (k Keeper) SetUnbondRequest(ctx context.Context, request types.UnbondRequest) error {
	if err := k.UnbondRequests.Set(ctx, collections.Join(request.ID, request.User), request); err != nil {
		return err
	}

	return k.UnbondRequestsByUser.Set(ctx, collections.Join(request.User, request.ID), true)
}

func (k Keeper) RemoveUnbondRequest(ctx context.Context, request types.UnbondRequest) error {
	if err := k.UnbondRequests.Remove(ctx, collections.Join(request.ID, request.User)); err != nil {
		return err
	}

	return k.UnbondRequestsByUser.Remove(ctx, collections.Join(request.User, request.ID))
}
