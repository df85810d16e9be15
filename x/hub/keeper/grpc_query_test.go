package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/steak-hub/steak/x/hub/keeper"
	"github.com/steak-hub/steak/x/hub/types"
)

func Test_QueryConfigAndState(t *testing.T) {
	ctx, input := createTestInput(t)
	q := keeper.NewQuerier(input.HubKeeper)

	res, err := q.Config(ctx, &types.QueryConfigRequest{})
	require.NoError(t, err)
	require.Equal(t, input.Owner, res.Config.Owner)
	require.Equal(t, testToken, res.Config.SteakToken)
	require.Equal(t, input.Validators, res.Validators)

	input.Staking.set(input.Validators[0], 341667)
	input.Staking.set(input.Validators[1], 341667)
	input.Staking.set(input.Validators[2], 341666)
	input.Token.supply = math.NewInt(1000000)
	require.NoError(t, input.HubKeeper.UnlockedCoins.Set(ctx, sdk.NewCoins(sdk.NewInt64Coin("ukrw", 123))))

	state, err := q.State(ctx, &types.QueryStateRequest{})
	require.NoError(t, err)
	intEq(t, 1000000, state.TotalUsteak)
	intEq(t, 1025000, state.TotalNative)
	require.Equal(t, "1.025000000000000000", state.ExchangeRate.String())
	require.Equal(t, "123ukrw", state.UnlockedCoins.String())

	pending, err := q.PendingBatch(ctx, &types.QueryPendingBatchRequest{})
	require.NoError(t, err)
	require.Equal(t, uint64(1), pending.Batch.ID)
	require.Equal(t, uint64(269200), pending.Batch.EstUnbondStartTime)
}

func batchIDs(batches []types.Batch) []uint64 {
	ids := make([]uint64, len(batches))
	for i, b := range batches {
		ids[i] = b.ID
	}
	return ids
}

func Test_QueryPreviousBatches(t *testing.T) {
	ctx, input := createTestInput(t)
	q := keeper.NewQuerier(input.HubKeeper)

	setBatches(t, ctx, input.HubKeeper,
		types.Batch{ID: 1, Reconciled: false, TotalShares: math.NewInt(123), AmountUnclaimed: math.NewInt(678), EstUnbondEndTime: 10000},
		types.Batch{ID: 2, Reconciled: true, TotalShares: math.NewInt(234), AmountUnclaimed: math.NewInt(789), EstUnbondEndTime: 15000},
		types.Batch{ID: 3, Reconciled: false, TotalShares: math.NewInt(345), AmountUnclaimed: math.NewInt(890), EstUnbondEndTime: 20000},
		types.Batch{ID: 4, Reconciled: true, TotalShares: math.NewInt(456), AmountUnclaimed: math.NewInt(999), EstUnbondEndTime: 25000},
	)

	one, err := q.PreviousBatch(ctx, &types.QueryPreviousBatchRequest{ID: 2})
	require.NoError(t, err)
	intEq(t, 789, one.Batch.AmountUnclaimed)

	_, err = q.PreviousBatch(ctx, &types.QueryPreviousBatchRequest{ID: 9})
	require.Equal(t, codes.NotFound, status.Code(err))

	res, err := q.PreviousBatches(ctx, &types.QueryPreviousBatchesRequest{})
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 3, 4}, batchIDs(res.Batches))

	res, err = q.PreviousBatches(ctx, &types.QueryPreviousBatchesRequest{StartAfter: 1, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, []uint64{2, 3}, batchIDs(res.Batches))

	res, err = q.PreviousBatches(ctx, &types.QueryPreviousBatchesRequest{StartAfter: 4})
	require.NoError(t, err)
	require.Empty(t, res.Batches)

	reconciled, unreconciled := true, false
	res, err = q.PreviousBatches(ctx, &types.QueryPreviousBatchesRequest{Reconciled: &reconciled})
	require.NoError(t, err)
	require.Equal(t, []uint64{2, 4}, batchIDs(res.Batches))

	res, err = q.PreviousBatches(ctx, &types.QueryPreviousBatchesRequest{Reconciled: &unreconciled, StartAfter: 1})
	require.NoError(t, err)
	require.Equal(t, []uint64{3}, batchIDs(res.Batches))
}

func Test_QueryUnbondRequests(t *testing.T) {
	ctx, input := createTestInput(t)
	q := keeper.NewQuerier(input.HubKeeper)
	k := input.HubKeeper

	alice, bob, charlie, dave := accAddr(t, "alice"), accAddr(t, "bob"), accAddr(t, "charlie"), accAddr(t, "dave")
	requests := []types.UnbondRequest{
		{ID: 1, User: alice, Shares: math.NewInt(123)},
		{ID: 1, User: bob, Shares: math.NewInt(234)},
		{ID: 1, User: charlie, Shares: math.NewInt(345)},
		{ID: 2, User: alice, Shares: math.NewInt(456)},
		{ID: 2, User: dave, Shares: math.NewInt(567)},
		{ID: 3, User: alice, Shares: math.NewInt(678)},
	}
	for _, r := range requests {
		require.NoError(t, k.SetUnbondRequest(ctx, r))
	}

	res, err := q.UnbondRequestsByBatch(ctx, &types.QueryUnbondRequestsByBatchRequest{ID: 1})
	require.NoError(t, err)
	require.Len(t, res.Requests, 3)
	for _, r := range res.Requests {
		require.Equal(t, uint64(1), r.ID)
	}

	// pages follow the stored order of users
	first, err := q.UnbondRequestsByBatch(ctx, &types.QueryUnbondRequestsByBatchRequest{ID: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, first.Requests, 1)

	rest, err := q.UnbondRequestsByBatch(ctx, &types.QueryUnbondRequestsByBatchRequest{ID: 1, StartAfter: first.Requests[0].User})
	require.NoError(t, err)
	require.Len(t, rest.Requests, 2)
	require.Equal(t, res.Requests[1:], rest.Requests)

	byUser, err := q.UnbondRequestsByUser(ctx, &types.QueryUnbondRequestsByUserRequest{User: alice})
	require.NoError(t, err)
	require.Len(t, byUser.Requests, 3)
	intEq(t, 123, byUser.Requests[0].Shares)
	intEq(t, 456, byUser.Requests[1].Shares)
	intEq(t, 678, byUser.Requests[2].Shares)

	byUser, err = q.UnbondRequestsByUser(ctx, &types.QueryUnbondRequestsByUserRequest{User: alice, StartAfter: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, byUser.Requests, 1)
	require.Equal(t, uint64(2), byUser.Requests[0].ID)

	_, err = q.UnbondRequestsByUser(ctx, &types.QueryUnbondRequestsByUserRequest{})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}
