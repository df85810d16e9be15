package keeper_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/steak-hub/steak/x/hub/config"
	"github.com/steak-hub/steak/x/hub/keeper"
	"github.com/steak-hub/steak/x/hub/testutil"
	"github.com/steak-hub/steak/x/hub/types"
)

type mockedInput struct {
	HubKeeper *keeper.Keeper
	Staking   *testutil.MockStakingKeeper
	Bank      *testutil.MockBankKeeper
	Token     *testutil.MockTokenKeeper

	Owner      string
	Validators []string
}

func createMockedInput(t *testing.T) (sdk.Context, mockedInput) {
	ctrl := gomock.NewController(t)
	ctx, key := _createTestContext(t, dbm.NewMemDB())

	input := mockedInput{
		Staking:    testutil.NewMockStakingKeeper(ctrl),
		Bank:       testutil.NewMockBankKeeper(ctrl),
		Token:      testutil.NewMockTokenKeeper(ctrl),
		Owner:      accAddr(t, "larry"),
		Validators: []string{valAddr(t, "alice"), valAddr(t, "bob")},
	}

	input.HubKeeper = keeper.NewKeeper(
		runtime.NewKVStoreService(key),
		input.Staking,
		input.Bank,
		input.Token,
		ac,
		vc,
		config.DefaultHubConfig(),
	)

	genState := types.NewGenesisState(defaultTestConfig(input.Owner, accAddr(t, "the_fee_man")), input.Validators)
	input.HubKeeper.InitGenesis(ctx, genState)

	return ctx, input
}

func Test_MsgBond(t *testing.T) {
	ctx, input := createMockedInput(t)
	ms := keeper.NewMsgServerImpl(input.HubKeeper)
	user := accAddr(t, "user_1")
	hub := sdk.AccAddress(input.HubKeeper.HubAddress())

	input.Staking.EXPECT().GetDelegatedAmount(gomock.Any(), hub, input.Validators[0], testDenom).Return(math.NewInt(1000), nil)
	input.Staking.EXPECT().GetDelegatedAmount(gomock.Any(), hub, input.Validators[1], testDenom).Return(math.NewInt(900), nil)
	input.Token.EXPECT().TotalSupply(gomock.Any(), testToken).Return(math.NewInt(1900), nil)
	input.Bank.EXPECT().GetBalance(gomock.Any(), hub, testDenom).Return(sdk.NewInt64Coin(testDenom, 500))

	res, err := ms.Bond(ctx, &types.MsgBond{Sender: user, Funds: sdk.NewCoins(sdk.NewInt64Coin(testDenom, 500))})
	require.NoError(t, err)
	require.Len(t, res.Messages, 2)

	delegation, ok := res.Messages[0].Instruction.(types.Delegation)
	require.True(t, ok)
	require.True(t, res.Messages[0].ReplyOnSuccess)
	require.Equal(t, input.Validators[1], delegation.Validator)

	// receiver defaults to the sender
	mint, ok := res.Messages[1].Instruction.(types.Mint)
	require.True(t, ok)
	require.Equal(t, user, mint.Recipient)
	intEq(t, 500, mint.Amount)

	// the snapshot leaves the deposit out
	prev, err := input.HubKeeper.PrevNativeBalance.Get(ctx)
	require.NoError(t, err)
	require.True(t, prev.Amount.IsZero())
}

func Test_MsgBond_KeeperErrors(t *testing.T) {
	ctx, input := createMockedInput(t)
	ms := keeper.NewMsgServerImpl(input.HubKeeper)
	msg := &types.MsgBond{Sender: accAddr(t, "user_1"), Funds: sdk.NewCoins(sdk.NewInt64Coin(testDenom, 500))}

	stakingErr := errors.New("delegation query failed")
	input.Staking.EXPECT().GetDelegatedAmount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(math.Int{}, stakingErr)

	_, err := ms.Bond(ctx, msg)
	require.ErrorIs(t, err, stakingErr)

	tokenErr := errors.New("token query failed")
	input.Staking.EXPECT().GetDelegatedAmount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(math.NewInt(1000), nil).Times(2)
	input.Token.EXPECT().TotalSupply(gomock.Any(), testToken).Return(math.Int{}, tokenErr)

	_, err = ms.Bond(ctx, msg)
	require.ErrorIs(t, err, tokenErr)
}

func Test_MsgValidation(t *testing.T) {
	ctx, input := createMockedInput(t)
	ms := keeper.NewMsgServerImpl(input.HubKeeper)

	// stateless checks run before any keeper is consulted
	_, err := ms.Bond(ctx, &types.MsgBond{Sender: "invalid", Funds: sdk.NewCoins(sdk.NewInt64Coin(testDenom, 1))})
	require.ErrorIs(t, err, sdkerrors.ErrInvalidAddress)

	_, err = ms.QueueUnbond(ctx, &types.MsgQueueUnbond{Sender: testToken, User: accAddr(t, "user_1"), Amount: math.ZeroInt()})
	require.ErrorIs(t, err, types.ErrZeroAmount)

	_, err = ms.AddValidator(ctx, &types.MsgAddValidator{Sender: input.Owner, Validator: accAddr(t, "dave")})
	require.ErrorIs(t, err, sdkerrors.ErrInvalidAddress)

	_, err = ms.TransferOwnership(ctx, &types.MsgTransferOwnership{Sender: input.Owner, NewOwner: ""})
	require.ErrorIs(t, err, sdkerrors.ErrInvalidAddress)

	_, err = ms.UpdateFee(ctx, &types.MsgUpdateFee{Sender: input.Owner, NewFee: math.LegacyNewDec(2)})
	require.Error(t, err)
}
