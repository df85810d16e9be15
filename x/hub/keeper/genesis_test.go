package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/steak-hub/steak/x/hub/types"
)

func Test_Genesis(t *testing.T) {
	ctx, input := createTestInput(t)
	k := input.HubKeeper
	user := accAddr(t, "user_1")

	require.NoError(t, k.PendingBatch.Set(ctx, types.NewPendingBatch(2, 300000)))
	require.NoError(t, k.SetBatch(ctx, types.Batch{ID: 1, Reconciled: true, TotalShares: math.NewInt(100), AmountUnclaimed: math.NewInt(103), EstUnbondEndTime: 5000}))
	require.NoError(t, k.SetUnbondRequest(ctx, types.UnbondRequest{ID: 1, User: user, Shares: math.NewInt(100)}))
	require.NoError(t, k.UnlockedCoins.Set(ctx, sdk.NewCoins(sdk.NewInt64Coin("ukrw", 5))))
	require.NoError(t, k.UpdateMiningPower(ctx, input.Owner, input.Validators[1], math.NewInt(42)))

	dave := valAddr(t, "dave")
	require.NoError(t, k.AddValidator(ctx, input.Owner, dave))
	require.NoError(t, k.RemoveValidatorEx(ctx, input.Owner, dave))

	exported := k.ExportGenesis(ctx)
	require.NoError(t, types.ValidateGenesis(exported))
	require.Equal(t, input.Validators, exported.Validators)
	require.Equal(t, uint64(2), exported.PendingBatch.ID)
	require.Len(t, exported.Batches, 1)
	require.Len(t, exported.UnbondRequests, 1)
	require.Equal(t, "5ukrw", exported.UnlockedCoins.String())
	require.Len(t, exported.MiningPowers, 1)
	require.Equal(t, input.Validators[1], exported.MiningPowers[0].Validator)
	intEq(t, 42, exported.MiningPowers[0].Power)
	require.Equal(t, []string{dave}, exported.RetiredValidators)

	// import into a fresh store
	ctx2, input2 := createTestInput(t)
	input2.HubKeeper.InitGenesis(ctx2, exported)

	reexported := input2.HubKeeper.ExportGenesis(ctx2)
	require.Equal(t, exported.Config.String(), reexported.Config.String())
	require.Equal(t, exported.Batches[0].ID, reexported.Batches[0].ID)
	require.Equal(t, exported.UnbondRequests[0].User, reexported.UnbondRequests[0].User)
	require.Equal(t, uint64(2), reexported.PendingBatch.ID)
	require.Equal(t, uint64(300000), reexported.PendingBatch.EstUnbondStartTime)
	require.Equal(t, []string{dave}, reexported.RetiredValidators)

	total, err := input2.HubKeeper.GetTotalMiningPower(ctx2)
	require.NoError(t, err)
	intEq(t, 42, total)
}
