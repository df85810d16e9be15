package keeper_test

import (
	"context"
	"testing"
	"time"

	tmproto "github.com/cometbft/cometbft/proto/tendermint/types"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/steak-hub/steak/x/hub/config"
	"github.com/steak-hub/steak/x/hub/keeper"
	"github.com/steak-hub/steak/x/hub/types"
)

const (
	testDenom = "uxyz"
	testToken = "steak_token"
)

var (
	ac = address.NewBech32Codec("init")
	vc = address.NewBech32Codec("initvaloper")

	genesisTime = time.Unix(10000, 0).UTC()
)

func accAddr(t testing.TB, name string) string {
	addr, err := ac.BytesToString(padded(name))
	require.NoError(t, err)
	return addr
}

func valAddr(t testing.TB, name string) string {
	addr, err := vc.BytesToString(padded(name))
	require.NoError(t, err)
	return addr
}

func padded(name string) []byte {
	bz := make([]byte, 20)
	copy(bz, name)
	return bz
}

// mockStaking records the hub's delegation per validator.
type mockStaking struct {
	delegations map[string]math.Int
}

func (m *mockStaking) GetDelegatedAmount(_ context.Context, _ sdk.AccAddress, validator, _ string) (math.Int, error) {
	if amount, ok := m.delegations[validator]; ok {
		return amount, nil
	}

	return math.ZeroInt(), nil
}

func (m *mockStaking) set(validator string, amount int64) {
	m.delegations[validator] = math.NewInt(amount)
}

type mockBank struct {
	balances map[string]math.Int
}

func (m *mockBank) GetBalance(_ context.Context, _ sdk.AccAddress, denom string) sdk.Coin {
	if amount, ok := m.balances[denom]; ok {
		return sdk.NewCoin(denom, amount)
	}

	return sdk.NewCoin(denom, math.ZeroInt())
}

type mockToken struct {
	supply math.Int
}

func (m *mockToken) TotalSupply(context.Context, string) (math.Int, error) {
	return m.supply, nil
}

type TestKeepers struct {
	HubKeeper *keeper.Keeper
	Staking   *mockStaking
	Bank      *mockBank
	Token     *mockToken

	Owner      string
	FeeAccount string
	Validators []string
}

func defaultTestConfig(owner, feeAccount string) types.Config {
	return types.Config{
		Owner:        owner,
		SteakToken:   testToken,
		Denom:        testDenom,
		EpochPeriod:  259200,
		UnbondPeriod: 1814400,
		FeeRate:      math.LegacyNewDecWithPrec(1, 1),
		MaxFeeRate:   math.LegacyNewDecWithPrec(2, 1),
		FeeSink:      types.FeeSink{Type: types.FeeTypeWallet, Address: feeAccount},
	}
}

func createTestInput(t testing.TB) (sdk.Context, TestKeepers) {
	return _createTestInput(t, dbm.NewMemDB(), types.FeeTypeWallet)
}

func _createTestInputWithFee(t testing.TB, feeType types.FeeType) (sdk.Context, TestKeepers) {
	return _createTestInput(t, dbm.NewMemDB(), feeType)
}

func _createTestContext(t testing.TB, db dbm.DB) (sdk.Context, *storetypes.KVStoreKey) {
	keys := storetypes.NewKVStoreKeys(types.StoreKey)
	ms := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	for _, v := range keys {
		ms.MountStoreWithDB(v, storetypes.StoreTypeIAVL, db)
	}

	require.NoError(t, ms.LoadLatestVersion())

	ctx := sdk.NewContext(ms, tmproto.Header{
		Height: 1234567,
		Time:   genesisTime,
	}, false, log.NewNopLogger())

	return ctx, keys[types.StoreKey]
}

func _createTestInput(
	t testing.TB,
	db dbm.DB,
	feeType types.FeeType,
) (sdk.Context, TestKeepers) {
	ctx, key := _createTestContext(t, db)

	staking := &mockStaking{delegations: map[string]math.Int{}}
	bank := &mockBank{balances: map[string]math.Int{}}
	token := &mockToken{supply: math.ZeroInt()}

	hubKeeper := keeper.NewKeeper(
		runtime.NewKVStoreService(key),
		staking,
		bank,
		token,
		ac,
		vc,
		config.DefaultHubConfig(),
	)

	keepers := TestKeepers{
		HubKeeper:  hubKeeper,
		Staking:    staking,
		Bank:       bank,
		Token:      token,
		Owner:      accAddr(t, "larry"),
		FeeAccount: accAddr(t, "the_fee_man"),
		Validators: []string{valAddr(t, "alice"), valAddr(t, "bob"), valAddr(t, "charlie")},
	}

	cfg := defaultTestConfig(keepers.Owner, keepers.FeeAccount)
	cfg.FeeSink.Type = feeType
	genState := types.NewGenesisState(cfg, keepers.Validators)
	require.NoError(t, types.ValidateGenesis(genState))

	hubKeeper.InitGenesis(ctx, genState)

	return ctx, keepers
}

// withTime returns ctx with the block time set to unix seconds.
func withTime(ctx sdk.Context, unix int64) sdk.Context {
	return ctx.WithBlockTime(time.Unix(unix, 0).UTC())
}

func intEq(t testing.TB, expected int64, actual math.Int) {
	t.Helper()
	require.Equal(t, math.NewInt(expected).String(), actual.String())
}
