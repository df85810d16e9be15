package types

import (
	"context"
	"strings"

	"cosmossdk.io/core/address"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MsgServer is the hub's transaction surface.
type MsgServer interface {
	Bond(context.Context, *MsgBond) (*MsgResponse, error)
	Harvest(context.Context, *MsgHarvest) (*MsgResponse, error)
	RegisterReceivedCoins(context.Context, *MsgRegisterReceivedCoins) (*MsgResponse, error)
	Reinvest(context.Context, *MsgReinvest) (*MsgResponse, error)
	QueueUnbond(context.Context, *MsgQueueUnbond) (*MsgResponse, error)
	SubmitBatch(context.Context, *MsgSubmitBatch) (*MsgResponse, error)
	Reconcile(context.Context, *MsgReconcile) (*MsgResponse, error)
	WithdrawUnbonded(context.Context, *MsgWithdrawUnbonded) (*MsgResponse, error)
	AddValidator(context.Context, *MsgAddValidator) (*MsgResponse, error)
	RemoveValidator(context.Context, *MsgRemoveValidator) (*MsgResponse, error)
	RemoveValidatorEx(context.Context, *MsgRemoveValidatorEx) (*MsgResponse, error)
	Rebalance(context.Context, *MsgRebalance) (*MsgResponse, error)
	UpdateMiningPower(context.Context, *MsgUpdateMiningPower) (*MsgResponse, error)
	TransferOwnership(context.Context, *MsgTransferOwnership) (*MsgResponse, error)
	AcceptOwnership(context.Context, *MsgAcceptOwnership) (*MsgResponse, error)
	TransferFeeAccount(context.Context, *MsgTransferFeeAccount) (*MsgResponse, error)
	UpdateFee(context.Context, *MsgUpdateFee) (*MsgResponse, error)
}

// MsgResponse carries the instructions emitted by a handler.
type MsgResponse struct {
	Response
}

// MsgBond deposits native token in exchange for receipt token. An empty
// receiver means the sender.
type MsgBond struct {
	Sender   string    `json:"sender"`
	Receiver string    `json:"receiver,omitempty"`
	Funds    sdk.Coins `json:"funds"`
}

// MsgHarvest withdraws staking rewards and reinvests them.
type MsgHarvest struct {
	Sender string `json:"sender"`
}

// MsgRegisterReceivedCoins confirms funds sent back to the hub by a
// completed instruction. Only the hub itself may send it.
type MsgRegisterReceivedCoins struct {
	Sender string    `json:"sender"`
	Coins  sdk.Coins `json:"coins"`
}

// MsgReinvest restakes the unlocked native balance. Only the hub itself
// may send it.
type MsgReinvest struct {
	Sender string `json:"sender"`
}

// MsgQueueUnbond records receipt tokens sent to the hub for redemption.
// Sender is the token that delivered them and User their previous holder.
type MsgQueueUnbond struct {
	Sender   string   `json:"sender"`
	User     string   `json:"user"`
	Receiver string   `json:"receiver,omitempty"`
	Amount   math.Int `json:"amount"`
}

// MsgSubmitBatch submits the pending batch for unbonding.
type MsgSubmitBatch struct {
	Sender string `json:"sender"`
}

// MsgReconcile reconciles matured batches against the hub's balance.
type MsgReconcile struct {
	Sender string `json:"sender"`
}

// MsgWithdrawUnbonded pays out the sender's reconciled unbond requests.
type MsgWithdrawUnbonded struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver,omitempty"`
}

type MsgAddValidator struct {
	Sender    string `json:"sender"`
	Validator string `json:"validator"`
}

type MsgRemoveValidator struct {
	Sender    string `json:"sender"`
	Validator string `json:"validator"`
}

// MsgRemoveValidatorEx drops a validator from the whitelist without moving
// its stake.
type MsgRemoveValidatorEx struct {
	Sender    string `json:"sender"`
	Validator string `json:"validator"`
}

// MsgRebalance redistributes stake toward the current targets. A nil or
// zero MinRedelegation selects the node default.
type MsgRebalance struct {
	Sender          string   `json:"sender"`
	MinRedelegation math.Int `json:"min_redelegation"`
}

type MsgUpdateMiningPower struct {
	Sender    string   `json:"sender"`
	Validator string   `json:"validator"`
	Power     math.Int `json:"power"`
}

type MsgTransferOwnership struct {
	Sender   string `json:"sender"`
	NewOwner string `json:"new_owner"`
}

type MsgAcceptOwnership struct {
	Sender string `json:"sender"`
}

// MsgTransferFeeAccount changes the fee sink. FeeAccountType is "Wallet"
// or "FeeSplit".
type MsgTransferFeeAccount struct {
	Sender         string `json:"sender"`
	FeeAccountType string `json:"fee_account_type"`
	NewFeeAccount  string `json:"new_fee_account"`
}

type MsgUpdateFee struct {
	Sender string         `json:"sender"`
	NewFee math.LegacyDec `json:"new_fee"`
}

func validateAddress(ac address.Codec, addr, field string) error {
	if strings.TrimSpace(addr) == "" {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "missing %s address", field)
	}

	if _, err := ac.StringToBytes(addr); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "failed to parse %s address: %s", field, addr)
	}

	return nil
}

func validateOptionalAddress(ac address.Codec, addr, field string) error {
	if addr == "" {
		return nil
	}

	return validateAddress(ac, addr, field)
}

// Validate performs stateless checks of the message
func (msg MsgBond) Validate(ac address.Codec) error {
	if err := validateAddress(ac, msg.Sender, "sender"); err != nil {
		return err
	}

	if err := validateOptionalAddress(ac, msg.Receiver, "receiver"); err != nil {
		return err
	}

	return msg.Funds.Validate()
}

// Validate performs stateless checks of the message
func (msg MsgQueueUnbond) Validate(ac address.Codec) error {
	if strings.TrimSpace(msg.Sender) == "" {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "missing token address")
	}

	if err := validateAddress(ac, msg.User, "user"); err != nil {
		return err
	}

	if err := validateOptionalAddress(ac, msg.Receiver, "receiver"); err != nil {
		return err
	}

	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return errorsmod.Wrap(ErrZeroAmount, "unbond amount must be non-zero")
	}

	return nil
}

// Validate performs stateless checks of the message
func (msg MsgWithdrawUnbonded) Validate(ac address.Codec) error {
	if err := validateAddress(ac, msg.Sender, "sender"); err != nil {
		return err
	}

	return validateOptionalAddress(ac, msg.Receiver, "receiver")
}

// Validate performs stateless checks of the message
func (msg MsgAddValidator) Validate(ac, vc address.Codec) error {
	if err := validateAddress(ac, msg.Sender, "sender"); err != nil {
		return err
	}

	return validateAddress(vc, msg.Validator, "validator")
}

// Validate performs stateless checks of the message
func (msg MsgUpdateMiningPower) Validate(ac, vc address.Codec) error {
	if err := validateAddress(ac, msg.Sender, "sender"); err != nil {
		return err
	}

	if err := validateAddress(vc, msg.Validator, "validator"); err != nil {
		return err
	}

	if msg.Power.IsNil() || msg.Power.IsNegative() {
		return errorsmod.Wrap(ErrArithmetic, "mining power must not be negative")
	}

	return nil
}

// Validate performs stateless checks of the message
func (msg MsgTransferOwnership) Validate(ac address.Codec) error {
	if err := validateAddress(ac, msg.Sender, "sender"); err != nil {
		return err
	}

	return validateAddress(ac, msg.NewOwner, "new owner")
}

// Validate performs stateless checks of the message
func (msg MsgTransferFeeAccount) Validate(ac address.Codec) error {
	if err := validateAddress(ac, msg.Sender, "sender"); err != nil {
		return err
	}

	if _, err := ParseFeeType(msg.FeeAccountType); err != nil {
		return err
	}

	return validateAddress(ac, msg.NewFeeAccount, "fee account")
}

// Validate performs stateless checks of the message
func (msg MsgUpdateFee) Validate(ac address.Codec) error {
	if err := validateAddress(ac, msg.Sender, "sender"); err != nil {
		return err
	}

	return validateFeeRate(msg.NewFee)
}
