package types

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// QueryServer is the hub's query surface.
type QueryServer interface {
	Config(context.Context, *QueryConfigRequest) (*QueryConfigResponse, error)
	State(context.Context, *QueryStateRequest) (*QueryStateResponse, error)
	PendingBatch(context.Context, *QueryPendingBatchRequest) (*QueryPendingBatchResponse, error)
	PreviousBatch(context.Context, *QueryPreviousBatchRequest) (*QueryPreviousBatchResponse, error)
	PreviousBatches(context.Context, *QueryPreviousBatchesRequest) (*QueryPreviousBatchesResponse, error)
	UnbondRequestsByBatch(context.Context, *QueryUnbondRequestsByBatchRequest) (*QueryUnbondRequestsResponse, error)
	UnbondRequestsByUser(context.Context, *QueryUnbondRequestsByUserRequest) (*QueryUnbondRequestsResponse, error)
}

type QueryConfigRequest struct{}

// QueryConfigResponse is the config together with the validator whitelist.
type QueryConfigResponse struct {
	Config     Config   `json:"config"`
	Validators []string `json:"validators"`
}

type QueryStateRequest struct{}

type QueryStateResponse struct {
	TotalUsteak   math.Int       `json:"total_usteak"`
	TotalNative   math.Int       `json:"total_native"`
	ExchangeRate  math.LegacyDec `json:"exchange_rate"`
	UnlockedCoins sdk.Coins      `json:"unlocked_coins"`
}

type QueryPendingBatchRequest struct{}

type QueryPendingBatchResponse struct {
	Batch PendingBatch `json:"batch"`
}

type QueryPreviousBatchRequest struct {
	ID uint64 `json:"id"`
}

type QueryPreviousBatchResponse struct {
	Batch Batch `json:"batch"`
}

// QueryPreviousBatchesRequest pages through submitted batches by id.
// StartAfter zero starts from the beginning; a nil Reconciled lists both.
type QueryPreviousBatchesRequest struct {
	StartAfter uint64 `json:"start_after,omitempty"`
	Limit      uint32 `json:"limit,omitempty"`
	Reconciled *bool  `json:"reconciled,omitempty"`
}

type QueryPreviousBatchesResponse struct {
	Batches []Batch `json:"batches"`
}

// QueryUnbondRequestsByBatchRequest pages through a batch's requests by
// user address.
type QueryUnbondRequestsByBatchRequest struct {
	ID         uint64 `json:"id"`
	StartAfter string `json:"start_after,omitempty"`
	Limit      uint32 `json:"limit,omitempty"`
}

// QueryUnbondRequestsByUserRequest pages through a user's requests by
// batch id.
type QueryUnbondRequestsByUserRequest struct {
	User       string `json:"user"`
	StartAfter uint64 `json:"start_after,omitempty"`
	Limit      uint32 `json:"limit,omitempty"`
}

type QueryUnbondRequestsResponse struct {
	Requests []UnbondRequest `json:"requests"`
}
