package keeper

import (
	"context"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/steak-hub/steak/x/hub/types"
)

// InitGenesis sets the hub state from genesis. A genesis without a pending
// batch opens batch 1, due one epoch after the genesis time.
func (k Keeper) InitGenesis(ctx context.Context, data *types.GenesisState) {
	if err := k.Config.Set(ctx, data.Config); err != nil {
		panic(err)
	}

	if err := k.Validators.Set(ctx, data.Validators); err != nil {
		panic(err)
	}

	pending := types.NewPendingBatch(1, blockTime(ctx)+data.Config.EpochPeriod)
	if data.PendingBatch != nil {
		pending = *data.PendingBatch
	}
	if err := k.PendingBatch.Set(ctx, pending); err != nil {
		panic(err)
	}

	for _, batch := range data.Batches {
		if err := k.SetBatch(ctx, batch); err != nil {
			panic(err)
		}
	}

	for _, request := range data.UnbondRequests {
		if err := k.SetUnbondRequest(ctx, request); err != nil {
			panic(err)
		}
	}

	unlocked := data.UnlockedCoins
	if unlocked == nil {
		unlocked = sdk.Coins{}
	}
	if err := k.UnlockedCoins.Set(ctx, unlocked); err != nil {
		panic(err)
	}

	prev := data.PrevNativeBalance
	if prev.IsNil() {
		prev = math.ZeroInt()
	}
	if err := k.PrevNativeBalance.Set(ctx, types.BalanceSnapshot{Amount: prev}); err != nil {
		panic(err)
	}

	if err := k.TotalMiningPower.Set(ctx, math.ZeroInt()); err != nil {
		panic(err)
	}

	for _, p := range data.MiningPowers {
		if err := k.setMiningPower(ctx, p.Validator, p.Power); err != nil {
			panic(err)
		}
	}

	for _, validator := range data.RetiredValidators {
		if err := k.RetiredValidators.Set(ctx, validator); err != nil {
			panic(err)
		}
	}
}

// ExportGenesis returns the hub state.
func (k Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		panic(err)
	}

	validators, err := k.Validators.Get(ctx)
	if err != nil {
		panic(err)
	}

	pending, err := k.PendingBatch.Get(ctx)
	if err != nil {
		panic(err)
	}

	batches := []types.Batch{}
	err = k.Batches.Walk(ctx, nil, func(_ uint64, batch types.Batch) (bool, error) {
		batches = append(batches, batch)
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	requests := []types.UnbondRequest{}
	err = k.UnbondRequests.Walk(ctx, nil, func(_ collections.Pair[uint64, string], request types.UnbondRequest) (bool, error) {
		requests = append(requests, request)
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	unlocked, err := k.GetUnlockedCoins(ctx)
	if err != nil {
		panic(err)
	}

	prev, err := k.PrevNativeBalance.Get(ctx)
	if err != nil {
		panic(err)
	}

	powers := []types.MiningPower{}
	err = k.ValidatorMiningPowers.Walk(ctx, nil, func(validator string, power math.Int) (bool, error) {
		powers = append(powers, types.MiningPower{Validator: validator, Power: power})
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	var retired []string
	err = k.RetiredValidators.Walk(ctx, nil, func(validator string) (bool, error) {
		retired = append(retired, validator)
		return false, nil
	})
	if err != nil {
		panic(err)
	}

	return &types.GenesisState{
		Config:            cfg,
		Validators:        validators,
		PendingBatch:      &pending,
		Batches:           batches,
		UnbondRequests:    requests,
		UnlockedCoins:     unlocked,
		PrevNativeBalance: prev.Amount,
		MiningPowers:      powers,
		RetiredValidators: retired,
	}
}
