package keeper

import (
	"context"
	"time"

	"github.com/hashicorp/go-metrics"

	"github.com/cosmos/cosmos-sdk/telemetry"

	"github.com/steak-hub/steak/x/hub/types"
)

type msgServer struct {
	*Keeper
}

// NewMsgServerImpl returns an implementation of the hub MsgServer interface
// for the provided Keeper.
func NewMsgServerImpl(k *Keeper) types.MsgServer {
	return &msgServer{Keeper: k}
}

var _ types.MsgServer = msgServer{}

func respond(res types.Response) *types.MsgResponse {
	return &types.MsgResponse{Response: res}
}

// Bond implements types.MsgServer
func (ms msgServer) Bond(ctx context.Context, msg *types.MsgBond) (*types.MsgResponse, error) {
	defer telemetry.MeasureSince(time.Now(), types.ModuleName, "msg", "bond")

	if err := msg.Validate(ms.addressCodec); err != nil {
		return nil, err
	}

	receiver := msg.Receiver
	if receiver == "" {
		receiver = msg.Sender
	}

	res, minted, err := ms.Keeper.Bond(ctx, receiver, msg.Funds)
	if err != nil {
		return nil, err
	}

	defer func() {
		telemetry.IncrCounter(1, types.ModuleName, "bond")

		for _, a := range msg.Funds {
			if a.Amount.IsInt64() {
				telemetry.SetGaugeWithLabels(
					[]string{"tx", "msg", "bond"},
					float32(a.Amount.Int64()),
					[]metrics.Label{telemetry.NewLabel("denom", a.Denom)},
				)
			}
		}

		if minted.IsInt64() {
			telemetry.IncrCounter(float32(minted.Int64()), types.ModuleName, "usteak_minted")
		}
	}()

	return respond(res), nil
}

// Harvest implements types.MsgServer
func (ms msgServer) Harvest(ctx context.Context, msg *types.MsgHarvest) (*types.MsgResponse, error) {
	res, err := ms.Keeper.Harvest(ctx)
	if err != nil {
		return nil, err
	}

	return respond(res), nil
}

// RegisterReceivedCoins implements types.MsgServer
func (ms msgServer) RegisterReceivedCoins(ctx context.Context, msg *types.MsgRegisterReceivedCoins) (*types.MsgResponse, error) {
	if err := ms.Keeper.RegisterReceivedCoins(ctx, msg.Sender, msg.Coins); err != nil {
		return nil, err
	}

	return respond(types.Response{}), nil
}

// Reinvest implements types.MsgServer
func (ms msgServer) Reinvest(ctx context.Context, msg *types.MsgReinvest) (*types.MsgResponse, error) {
	res, err := ms.Keeper.Reinvest(ctx, msg.Sender)
	if err != nil {
		return nil, err
	}

	return respond(res), nil
}

// QueueUnbond implements types.MsgServer
func (ms msgServer) QueueUnbond(ctx context.Context, msg *types.MsgQueueUnbond) (*types.MsgResponse, error) {
	if err := msg.Validate(ms.addressCodec); err != nil {
		return nil, err
	}

	receiver := msg.Receiver
	if receiver == "" {
		receiver = msg.User
	}

	res, err := ms.Keeper.QueueUnbond(ctx, msg.Sender, receiver, msg.Amount)
	if err != nil {
		return nil, err
	}

	defer func() {
		if msg.Amount.IsInt64() {
			telemetry.IncrCounter(float32(msg.Amount.Int64()), types.ModuleName, "usteak_queued")
		}
	}()

	return respond(res), nil
}

// SubmitBatch implements types.MsgServer
func (ms msgServer) SubmitBatch(ctx context.Context, msg *types.MsgSubmitBatch) (*types.MsgResponse, error) {
	res, err := ms.Keeper.SubmitBatch(ctx)
	if err != nil {
		return nil, err
	}

	return respond(res), nil
}

// Reconcile implements types.MsgServer
func (ms msgServer) Reconcile(ctx context.Context, msg *types.MsgReconcile) (*types.MsgResponse, error) {
	if err := ms.Keeper.Reconcile(ctx); err != nil {
		return nil, err
	}

	return respond(types.Response{}), nil
}

// WithdrawUnbonded implements types.MsgServer
func (ms msgServer) WithdrawUnbonded(ctx context.Context, msg *types.MsgWithdrawUnbonded) (*types.MsgResponse, error) {
	if err := msg.Validate(ms.addressCodec); err != nil {
		return nil, err
	}

	receiver := msg.Receiver
	if receiver == "" {
		receiver = msg.Sender
	}

	res, amount, err := ms.Keeper.WithdrawUnbonded(ctx, msg.Sender, receiver)
	if err != nil {
		return nil, err
	}

	defer func() {
		if amount.IsInt64() {
			telemetry.IncrCounter(float32(amount.Int64()), types.ModuleName, "withdrawn")
		}
	}()

	return respond(res), nil
}

// AddValidator implements types.MsgServer
func (ms msgServer) AddValidator(ctx context.Context, msg *types.MsgAddValidator) (*types.MsgResponse, error) {
	if err := msg.Validate(ms.addressCodec, ms.validatorAddressCodec); err != nil {
		return nil, err
	}

	if err := ms.Keeper.AddValidator(ctx, msg.Sender, msg.Validator); err != nil {
		return nil, err
	}

	return respond(types.Response{}), nil
}

// RemoveValidator implements types.MsgServer
func (ms msgServer) RemoveValidator(ctx context.Context, msg *types.MsgRemoveValidator) (*types.MsgResponse, error) {
	res, err := ms.Keeper.RemoveValidator(ctx, msg.Sender, msg.Validator)
	if err != nil {
		return nil, err
	}

	return respond(res), nil
}

// RemoveValidatorEx implements types.MsgServer
func (ms msgServer) RemoveValidatorEx(ctx context.Context, msg *types.MsgRemoveValidatorEx) (*types.MsgResponse, error) {
	if err := ms.Keeper.RemoveValidatorEx(ctx, msg.Sender, msg.Validator); err != nil {
		return nil, err
	}

	return respond(types.Response{}), nil
}

// Rebalance implements types.MsgServer
func (ms msgServer) Rebalance(ctx context.Context, msg *types.MsgRebalance) (*types.MsgResponse, error) {
	res, err := ms.Keeper.Rebalance(ctx, msg.Sender, msg.MinRedelegation)
	if err != nil {
		return nil, err
	}

	return respond(res), nil
}

// UpdateMiningPower implements types.MsgServer
func (ms msgServer) UpdateMiningPower(ctx context.Context, msg *types.MsgUpdateMiningPower) (*types.MsgResponse, error) {
	if err := msg.Validate(ms.addressCodec, ms.validatorAddressCodec); err != nil {
		return nil, err
	}

	if err := ms.Keeper.UpdateMiningPower(ctx, msg.Sender, msg.Validator, msg.Power); err != nil {
		return nil, err
	}

	return respond(types.Response{}), nil
}

// TransferOwnership implements types.MsgServer
func (ms msgServer) TransferOwnership(ctx context.Context, msg *types.MsgTransferOwnership) (*types.MsgResponse, error) {
	if err := msg.Validate(ms.addressCodec); err != nil {
		return nil, err
	}

	if err := ms.Keeper.TransferOwnership(ctx, msg.Sender, msg.NewOwner); err != nil {
		return nil, err
	}

	return respond(types.Response{}), nil
}

// AcceptOwnership implements types.MsgServer
func (ms msgServer) AcceptOwnership(ctx context.Context, msg *types.MsgAcceptOwnership) (*types.MsgResponse, error) {
	if err := ms.Keeper.AcceptOwnership(ctx, msg.Sender); err != nil {
		return nil, err
	}

	return respond(types.Response{}), nil
}

// TransferFeeAccount implements types.MsgServer
func (ms msgServer) TransferFeeAccount(ctx context.Context, msg *types.MsgTransferFeeAccount) (*types.MsgResponse, error) {
	if err := msg.Validate(ms.addressCodec); err != nil {
		return nil, err
	}

	if err := ms.Keeper.TransferFeeAccount(ctx, msg.Sender, msg.FeeAccountType, msg.NewFeeAccount); err != nil {
		return nil, err
	}

	return respond(types.Response{}), nil
}

// UpdateFee implements types.MsgServer
func (ms msgServer) UpdateFee(ctx context.Context, msg *types.MsgUpdateFee) (*types.MsgResponse, error) {
	if err := msg.Validate(ms.addressCodec); err != nil {
		return nil, err
	}

	if err := ms.Keeper.UpdateFee(ctx, msg.Sender, msg.NewFee); err != nil {
		return nil, err
	}

	return respond(types.Response{}), nil
}
