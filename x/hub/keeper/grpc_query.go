package keeper

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cosmossdk.io/collections"

	"github.com/steak-hub/steak/x/hub/types"
)

// Querier is used as Keeper will have duplicate methods if used directly, and gRPC names take precedence over keeper
type Querier struct {
	*Keeper
}

var _ types.QueryServer = Querier{}

// NewQuerier returns a QueryServer backed by k.
func NewQuerier(k *Keeper) Querier {
	return Querier{k}
}

// Config returns the hub config and the validator whitelist
func (q Querier) Config(ctx context.Context, req *types.QueryConfigRequest) (*types.QueryConfigResponse, error) {
	cfg, err := q.Keeper.Config.Get(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	validators, err := q.Keeper.Validators.Get(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryConfigResponse{Config: cfg, Validators: validators}, nil
}

// State returns the receipt supply, the delegated native token and the
// exchange rate between them
func (q Querier) State(ctx context.Context, req *types.QueryStateRequest) (*types.QueryStateResponse, error) {
	cfg, delegations, err := q.loadDelegations(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	supply, err := q.tokenKeeper.TotalSupply(ctx, cfg.SteakToken)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	totalNative, err := types.SumDelegations(delegations.All)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	unlocked, err := q.GetUnlockedCoins(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryStateResponse{
		TotalUsteak:   supply,
		TotalNative:   totalNative,
		ExchangeRate:  types.ExchangeRate(totalNative, supply),
		UnlockedCoins: unlocked,
	}, nil
}

// PendingBatch returns the batch collecting unbond requests
func (q Querier) PendingBatch(ctx context.Context, req *types.QueryPendingBatchRequest) (*types.QueryPendingBatchResponse, error) {
	pending, err := q.Keeper.PendingBatch.Get(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryPendingBatchResponse{Batch: pending}, nil
}

// PreviousBatch returns a submitted batch by id
func (q Querier) PreviousBatch(ctx context.Context, req *types.QueryPreviousBatchRequest) (*types.QueryPreviousBatchResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	batch, err := q.Batches.Get(ctx, req.ID)
	if errors.Is(err, collections.ErrNotFound) {
		return nil, status.Errorf(codes.NotFound, "batch %d not found", req.ID)
	} else if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryPreviousBatchResponse{Batch: batch}, nil
}

// PreviousBatches pages through submitted batches, optionally only those
// with the given reconciled flag
func (q Querier) PreviousBatches(ctx context.Context, req *types.QueryPreviousBatchesRequest) (*types.QueryPreviousBatchesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	limit := q.hubConfig.PageLimit(req.Limit)
	batches := make([]types.Batch, 0, limit)

	var err error
	if req.Reconciled != nil {
		rng := collections.NewPrefixedPairRange[bool, uint64](*req.Reconciled)
		if req.StartAfter > 0 {
			rng = rng.StartExclusive(req.StartAfter)
		}

		err = q.BatchesByReconciled.Walk(ctx, rng, func(key collections.Pair[bool, uint64], _ bool) (bool, error) {
			batch, err := q.Batches.Get(ctx, key.K2())
			if err != nil {
				return true, err
			}

			batches = append(batches, batch)
			return len(batches) >= limit, nil
		})
	} else {
		var rng collections.Ranger[uint64]
		if req.StartAfter > 0 {
			rng = new(collections.Range[uint64]).StartExclusive(req.StartAfter)
		}

		err = q.Batches.Walk(ctx, rng, func(_ uint64, batch types.Batch) (bool, error) {
			batches = append(batches, batch)
			return len(batches) >= limit, nil
		})
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryPreviousBatchesResponse{Batches: batches}, nil
}

// UnbondRequestsByBatch pages through the requests of a batch by user
func (q Querier) UnbondRequestsByBatch(ctx context.Context, req *types.QueryUnbondRequestsByBatchRequest) (*types.QueryUnbondRequestsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	limit := q.hubConfig.PageLimit(req.Limit)
	requests := make([]types.UnbondRequest, 0, limit)

	rng := collections.NewPrefixedPairRange[uint64, string](req.ID)
	if req.StartAfter != "" {
		rng = rng.StartExclusive(req.StartAfter)
	}

	err := q.UnbondRequests.Walk(ctx, rng, func(_ collections.Pair[uint64, string], request types.UnbondRequest) (bool, error) {
		requests = append(requests, request)
		return len(requests) >= limit, nil
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryUnbondRequestsResponse{Requests: requests}, nil
}

// UnbondRequestsByUser pages through the requests of a user by batch id
func (q Querier) UnbondRequestsByUser(ctx context.Context, req *types.QueryUnbondRequestsByUserRequest) (*types.QueryUnbondRequestsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	if req.User == "" {
		return nil, status.Error(codes.InvalidArgument, "user address cannot be empty")
	}

	limit := q.hubConfig.PageLimit(req.Limit)
	requests := make([]types.UnbondRequest, 0, limit)

	rng := collections.NewPrefixedPairRange[string, uint64](req.User)
	if req.StartAfter > 0 {
		rng = rng.StartExclusive(req.StartAfter)
	}

	err := q.Keeper.UnbondRequestsByUser.Walk(ctx, rng, func(key collections.Pair[string, uint64], _ bool) (bool, error) {
		request, err := q.UnbondRequests.Get(ctx, collections.Join(key.K2(), key.K1()))
		if err != nil {
			return true, err
		}

		requests = append(requests, request)
		return len(requests) >= limit, nil
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryUnbondRequestsResponse{Requests: requests}, nil
}
