package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/steak-hub/steak/x/hub/keeper"
	"github.com/steak-hub/steak/x/hub/types"
)

func Test_Bond(t *testing.T) {
	ctx, input := createTestInput(t)
	ms := keeper.NewMsgServerImpl(input.HubKeeper)
	alice, bob, charlie := input.Validators[0], input.Validators[1], input.Validators[2]
	user1 := accAddr(t, "user_1")
	user3 := accAddr(t, "user_3")

	// first deposit mints 1:1 on the first validator
	res, err := ms.Bond(ctx, &types.MsgBond{
		Sender: user1,
		Funds:  sdk.NewCoins(sdk.NewInt64Coin(testDenom, 1000000)),
	})
	require.NoError(t, err)
	require.Equal(t, []types.SubMsg{
		types.NewSubMsgWithReply(types.NewDelegation(alice, math.NewInt(1000000), testDenom)),
		types.NewSubMsg(types.Mint{Token: testToken, Recipient: user1, Amount: math.NewInt(1000000)}),
	}, res.Messages)

	// rewards have accrued; 1.025 native per receipt token
	input.Staking.set(alice, 341667)
	input.Staking.set(bob, 341667)
	input.Staking.set(charlie, 341666)
	input.Token.supply = math.NewInt(1000000)

	res, err = ms.Bond(ctx, &types.MsgBond{
		Sender:   user1,
		Receiver: user3,
		Funds:    sdk.NewCoins(sdk.NewInt64Coin(testDenom, 12345)),
	})
	require.NoError(t, err)

	// 12345 * 1000000 / 1025000 = 12043
	require.Equal(t, []types.SubMsg{
		types.NewSubMsgWithReply(types.NewDelegation(charlie, math.NewInt(12345), testDenom)),
		types.NewSubMsg(types.Mint{Token: testToken, Recipient: user3, Amount: math.NewInt(12043)}),
	}, res.Messages)
}

func Test_Bond_InvalidFunds(t *testing.T) {
	ctx, input := createTestInput(t)
	ms := keeper.NewMsgServerImpl(input.HubKeeper)
	user := accAddr(t, "user_1")

	_, err := ms.Bond(ctx, &types.MsgBond{Sender: user, Funds: sdk.Coins{}})
	require.ErrorIs(t, err, types.ErrInvalidDeposit)
	require.ErrorContains(t, err, "must deposit exactly one coin; received 0")

	_, err = ms.Bond(ctx, &types.MsgBond{
		Sender: user,
		Funds:  sdk.NewCoins(sdk.NewInt64Coin(testDenom, 12345), sdk.NewInt64Coin("ukrw", 69420)),
	})
	require.ErrorIs(t, err, types.ErrInvalidDeposit)
	require.ErrorContains(t, err, "must deposit exactly one coin; received 2")

	_, err = ms.Bond(ctx, &types.MsgBond{
		Sender: user,
		Funds:  sdk.NewCoins(sdk.NewInt64Coin("ukrw", 69420)),
	})
	require.ErrorIs(t, err, types.ErrInvalidDenom)
	require.ErrorContains(t, err, "expected uxyz deposit, received ukrw")

	_, err = ms.Bond(ctx, &types.MsgBond{Sender: "not_an_address", Funds: sdk.NewCoins(sdk.NewInt64Coin(testDenom, 1))})
	require.Error(t, err)
}

func Test_Harvest(t *testing.T) {
	ctx, input := createTestInput(t)
	ms := keeper.NewMsgServerImpl(input.HubKeeper)
	alice, bob, charlie := input.Validators[0], input.Validators[1], input.Validators[2]

	input.Staking.set(alice, 341667)
	input.Staking.set(charlie, 341666)

	res, err := ms.Harvest(ctx, &types.MsgHarvest{Sender: accAddr(t, "worker")})
	require.NoError(t, err)

	// bob holds nothing and is skipped
	require.Equal(t, []types.SubMsg{
		types.NewSubMsgWithReply(types.RewardWithdrawal{Validator: alice}),
		types.NewSubMsgWithReply(types.RewardWithdrawal{Validator: charlie}),
		types.NewSubMsg(types.Callback{Kind: types.CallbackReinvest}),
	}, res.Messages)
	require.NotContains(t, res.Instructions(), types.RewardWithdrawal{Validator: bob})
}

func Test_RegisterReceivedCoins(t *testing.T) {
	ctx, input := createTestInput(t)
	k := input.HubKeeper
	hub := k.HubAddressString()

	err := k.RegisterReceivedCoins(ctx, accAddr(t, "jake"), sdk.NewCoins(sdk.NewInt64Coin(testDenom, 1)))
	require.ErrorIs(t, err, types.ErrUnauthorized)

	received, err := types.ParseCoins("123ukrw,234uxyz,345uusd,69420ibc/0471F1C4E7AFD3F07702BEF6DC365268D64570F7C1FDC98EA6098DD6DE59817B")
	require.NoError(t, err)

	require.NoError(t, k.RegisterReceivedCoins(ctx, hub, received))
	unlocked, err := k.GetUnlockedCoins(ctx)
	require.NoError(t, err)
	require.Equal(t, received.String(), unlocked.String())

	// unbonded funds already held are not rewards
	input.Bank.balances[testDenom] = math.NewInt(1000)
	require.NoError(t, k.RegisterReceivedCoins(ctx, hub, sdk.NewCoins(sdk.NewInt64Coin("ukrw", 77))))

	unlocked, err = k.GetUnlockedCoins(ctx)
	require.NoError(t, err)
	intEq(t, 200, types.AmountOf(unlocked, "ukrw"))
	intEq(t, 234, types.AmountOf(unlocked, testDenom))

	// harvesting snapshots the balance; only the growth past it is credited
	_, err = k.Harvest(ctx)
	require.NoError(t, err)

	input.Bank.balances[testDenom] = math.NewInt(1005)
	require.NoError(t, k.RegisterReceivedCoins(ctx, hub, sdk.NewCoins(sdk.NewInt64Coin("ukrw", 1))))

	unlocked, err = k.GetUnlockedCoins(ctx)
	require.NoError(t, err)
	intEq(t, 201, types.AmountOf(unlocked, "ukrw"))
	intEq(t, 239, types.AmountOf(unlocked, testDenom))

	prev, err := k.PrevNativeBalance.Get(ctx)
	require.NoError(t, err)
	intEq(t, 1005, prev.Amount)
	require.Equal(t, ctx.BlockHeight(), prev.Height)

	// balance unchanged, nothing more is credited
	require.NoError(t, k.RegisterReceivedCoins(ctx, hub, sdk.Coins{}))
	unlocked, err = k.GetUnlockedCoins(ctx)
	require.NoError(t, err)
	intEq(t, 239, types.AmountOf(unlocked, testDenom))

	// a snapshot from an earlier block is not trusted
	input.Bank.balances[testDenom] = math.NewInt(2005)
	require.NoError(t, k.RegisterReceivedCoins(ctx.WithBlockHeight(ctx.BlockHeight()+1), hub, sdk.Coins{}))
	unlocked, err = k.GetUnlockedCoins(ctx)
	require.NoError(t, err)
	intEq(t, 239, types.AmountOf(unlocked, testDenom))
}

func Test_Bond_SnapshotExcludesDeposit(t *testing.T) {
	ctx, input := createTestInput(t)
	ms := keeper.NewMsgServerImpl(input.HubKeeper)
	k := input.HubKeeper
	hub := k.HubAddressString()

	// the deposit sits on the hub until the delegation moves it
	input.Bank.balances[testDenom] = math.NewInt(500 + 12345)
	_, err := ms.Bond(ctx, &types.MsgBond{
		Sender: accAddr(t, "user_1"),
		Funds:  sdk.NewCoins(sdk.NewInt64Coin(testDenom, 12345)),
	})
	require.NoError(t, err)

	// the delegation withdrew 7 of rewards
	input.Bank.balances[testDenom] = math.NewInt(507)
	require.NoError(t, k.RegisterReceivedCoins(ctx, hub, sdk.Coins{}))

	unlocked, err := k.GetUnlockedCoins(ctx)
	require.NoError(t, err)
	intEq(t, 7, types.AmountOf(unlocked, testDenom))
}

func setupReinvest(t *testing.T, feeType types.FeeType) (sdk.Context, TestKeepers) {
	ctx, input := _createTestInputWithFee(t, feeType)
	alice, bob, charlie := input.Validators[0], input.Validators[1], input.Validators[2]

	input.Staking.set(alice, 333334)
	input.Staking.set(bob, 333333)
	input.Staking.set(charlie, 333333)

	unlocked := sdk.NewCoins(
		sdk.NewInt64Coin("ukrw", 123),
		sdk.NewInt64Coin(testDenom, 234),
		sdk.NewInt64Coin("uusd", 345),
	)
	require.NoError(t, input.HubKeeper.UnlockedCoins.Set(ctx, unlocked))

	return ctx, input
}

func Test_Reinvest(t *testing.T) {
	ctx, input := setupReinvest(t, types.FeeTypeWallet)
	k := input.HubKeeper
	bob := input.Validators[1]

	_, err := k.Reinvest(ctx, accAddr(t, "worker"))
	require.ErrorIs(t, err, types.ErrUnauthorized)
	require.ErrorContains(t, err, "callbacks can only be invoked by the hub itself")

	res, err := k.Reinvest(ctx, k.HubAddressString())
	require.NoError(t, err)

	// 234 * 0.1 = 23 goes to the fee account, the rest to the least
	// delegated validator
	require.Equal(t, []types.SubMsg{
		types.NewSubMsg(types.NewDelegation(bob, math.NewInt(211), testDenom)),
		types.NewSubMsg(types.Send{ToAddress: input.FeeAccount, Amount: sdk.NewCoins(sdk.NewInt64Coin(testDenom, 23))}),
	}, res.Messages)

	unlocked, err := k.GetUnlockedCoins(ctx)
	require.NoError(t, err)
	require.Equal(t, "123ukrw,345uusd", unlocked.String())

	// nothing left to reinvest
	res, err = k.Reinvest(ctx, k.HubAddressString())
	require.NoError(t, err)
	require.Empty(t, res.Messages)
}

func Test_Reinvest_FeeSplit(t *testing.T) {
	ctx, input := setupReinvest(t, types.FeeTypeFeeSplit)
	k := input.HubKeeper
	bob := input.Validators[1]

	res, err := k.Reinvest(ctx, k.HubAddressString())
	require.NoError(t, err)
	require.Equal(t, []types.SubMsg{
		types.NewSubMsg(types.NewDelegation(bob, math.NewInt(211), testDenom)),
		types.NewSubMsg(types.FeeSplitDeposit{Contract: input.FeeAccount, Amount: sdk.NewCoins(sdk.NewInt64Coin(testDenom, 23)), Flush: false}),
	}, res.Messages)
}

func Test_Reinvest_MiningWeighted(t *testing.T) {
	testCases := []struct {
		name     string
		powers   [3]int64
		expected int
	}{
		{"equal powers", [3]int64{5, 5, 5}, 1},
		{"charlie heaviest", [3]int64{4, 4, 7}, 2},
		{"bob heaviest", [3]int64{1, 12, 2}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, input := setupReinvest(t, types.FeeTypeWallet)
			k := input.HubKeeper

			for i, v := range input.Validators {
				require.NoError(t, k.UpdateMiningPower(ctx, input.Owner, v, math.NewInt(tc.powers[i])))
			}

			total, err := k.GetTotalMiningPower(ctx)
			require.NoError(t, err)
			intEq(t, tc.powers[0]+tc.powers[1]+tc.powers[2], total)

			res, err := k.Reinvest(ctx, k.HubAddressString())
			require.NoError(t, err)
			require.Equal(t,
				types.NewSubMsg(types.NewDelegation(input.Validators[tc.expected], math.NewInt(211), testDenom)),
				res.Messages[0],
			)
		})
	}
}
