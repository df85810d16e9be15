package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/steak-hub/steak/x/hub/types"
)

func validConfig() types.Config {
	cfg := types.DefaultConfig()
	cfg.Owner = "larry"
	cfg.SteakToken = "steak_token"
	cfg.FeeSink = types.FeeSink{Type: types.FeeTypeWallet, Address: "the_fee_man"}
	return cfg
}

func Test_ConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cases := map[string]struct {
		mutate func(*types.Config)
		err    error
	}{
		"empty owner":       {func(c *types.Config) { c.Owner = "" }, types.ErrInvalidConfig},
		"empty token":       {func(c *types.Config) { c.SteakToken = "" }, types.ErrInvalidConfig},
		"zero epoch":        {func(c *types.Config) { c.EpochPeriod = 0 }, types.ErrInvalidConfig},
		"zero unbond":       {func(c *types.Config) { c.UnbondPeriod = 0 }, types.ErrInvalidConfig},
		"fee above max":     {func(c *types.Config) { c.FeeRate = math.LegacyNewDecWithPrec(3, 1) }, types.ErrFeeRateTooHigh},
		"empty fee account": {func(c *types.Config) { c.FeeSink.Address = "" }, types.ErrInvalidConfig},
		"negative fee":      {func(c *types.Config) { c.FeeRate = math.LegacyNewDec(-1) }, nil},
		"max fee above one": {func(c *types.Config) { c.MaxFeeRate = math.LegacyNewDec(2) }, nil},
		"invalid denom":     {func(c *types.Config) { c.Denom = "1" }, nil},
		"missing fee rate":  {func(c *types.Config) { c.FeeRate = math.LegacyDec{} }, nil},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func Test_ConfigString(t *testing.T) {
	out := validConfig().String()
	require.Contains(t, out, "owner: larry")
	require.Contains(t, out, "type: Wallet")
	require.NotContains(t, out, "new_owner")
}

func Test_ValidateGenesis(t *testing.T) {
	genState := types.NewGenesisState(validConfig(), []string{"alice", "bob"})
	require.NoError(t, types.ValidateGenesis(genState))

	pending := types.NewPendingBatch(3, 1000)
	genState.PendingBatch = &pending
	genState.Batches = []types.Batch{
		{ID: 1, TotalShares: math.NewInt(1), AmountUnclaimed: math.NewInt(1)},
		{ID: 2, TotalShares: math.NewInt(1), AmountUnclaimed: math.NewInt(1)},
	}
	genState.UnbondRequests = []types.UnbondRequest{
		{ID: 2, User: "user_1", Shares: math.NewInt(1)},
		{ID: 3, User: "user_2", Shares: math.NewInt(1)},
	}
	genState.MiningPowers = []types.MiningPower{{Validator: "alice", Power: math.NewInt(10)}}
	require.NoError(t, types.ValidateGenesis(genState))

	invalid := *genState
	invalid.Validators = nil
	require.ErrorIs(t, types.ValidateGenesis(&invalid), types.ErrNoValidators)

	invalid = *genState
	invalid.Validators = []string{"alice", "alice"}
	require.Error(t, types.ValidateGenesis(&invalid))

	invalid = *genState
	invalid.Batches = append([]types.Batch{}, genState.Batches[0], genState.Batches[0])
	require.Error(t, types.ValidateGenesis(&invalid))

	invalid = *genState
	invalid.Batches = []types.Batch{{ID: 3, TotalShares: math.NewInt(1), AmountUnclaimed: math.NewInt(1)}}
	require.Error(t, types.ValidateGenesis(&invalid))

	invalid = *genState
	invalid.UnbondRequests = []types.UnbondRequest{{ID: 7, User: "user_1", Shares: math.NewInt(1)}}
	require.Error(t, types.ValidateGenesis(&invalid))

	invalid = *genState
	invalid.UnlockedCoins = sdk.Coins{sdk.Coin{Denom: "ukrw", Amount: math.ZeroInt()}}
	require.Error(t, types.ValidateGenesis(&invalid))

	invalid = *genState
	invalid.MiningPowers = []types.MiningPower{{Validator: "alice", Power: math.NewInt(-1)}}
	require.Error(t, types.ValidateGenesis(&invalid))

	valid := *genState
	valid.RetiredValidators = []string{"charlie"}
	require.NoError(t, types.ValidateGenesis(&valid))

	invalid = *genState
	invalid.RetiredValidators = []string{"bob"}
	require.ErrorContains(t, types.ValidateGenesis(&invalid), "retired validator bob")

	invalid = *genState
	invalid.Config.Owner = ""
	require.ErrorIs(t, types.ValidateGenesis(&invalid), types.ErrInvalidConfig)
}
