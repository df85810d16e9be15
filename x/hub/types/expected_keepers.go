package types

//go:generate go run go.uber.org/mock/mockgen -source=expected_keepers.go -package testutil -destination ../testutil/expected_keepers_mocks.go

import (
	"context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// StakingKeeper reports the live delegations of the hub account.
type StakingKeeper interface {
	GetDelegatedAmount(ctx context.Context, delegator sdk.AccAddress, validator string, denom string) (math.Int, error)
}

// BankKeeper reports balances of the hub account.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
}

// TokenKeeper reports the supply of the receipt token.
type TokenKeeper interface {
	TotalSupply(ctx context.Context, token string) (math.Int, error)
}
