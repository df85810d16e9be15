package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/hub module sentinel errors
var (
	ErrUnauthorized                = errorsmod.Register(ModuleName, 2, "unauthorized")
	ErrInvalidDeposit              = errorsmod.Register(ModuleName, 3, "invalid deposit")
	ErrInvalidDenom                = errorsmod.Register(ModuleName, 4, "invalid denom")
	ErrZeroAmount                  = errorsmod.Register(ModuleName, 5, "amount must be non-zero")
	ErrValidatorAlreadyWhitelisted = errorsmod.Register(ModuleName, 6, "validator is already whitelisted")
	ErrValidatorNotWhitelisted     = errorsmod.Register(ModuleName, 7, "validator is not already whitelisted")
	ErrInvalidCoin                 = errorsmod.Register(ModuleName, 8, "failed to parse coin")
	ErrUnexpectedToken             = errorsmod.Register(ModuleName, 9, "unexpected token")
	ErrInvalidFeeType              = errorsmod.Register(ModuleName, 10, "Invalid Fee type: Wallet or FeeSplit only")
	ErrFeeRateTooHigh              = errorsmod.Register(ModuleName, 11, "fee rate exceeds max fee rate")
	ErrBatchNotReady               = errorsmod.Register(ModuleName, 12, "batch is not ready for submission")
	ErrEmptyBatch                  = errorsmod.Register(ModuleName, 13, "batch has nothing to unbond")
	ErrNoValidators                = errorsmod.Register(ModuleName, 14, "no whitelisted validators")
	ErrLastValidator               = errorsmod.Register(ModuleName, 15, "cannot remove the last validator")
	ErrInvalidConfig               = errorsmod.Register(ModuleName, 16, "invalid config")
	ErrArithmetic                  = errorsmod.Register(ModuleName, 17, "arithmetic error")
	ErrNothingToWithdraw           = errorsmod.Register(ModuleName, 18, "withdrawable amount is zero")
	ErrBatchNotFound               = errorsmod.Register(ModuleName, 19, "batch not found")
	ErrUnbondRequestNotFound       = errorsmod.Register(ModuleName, 20, "unbond request not found")
	ErrInvalidAddress              = errorsmod.Register(ModuleName, 21, "invalid address")
)
