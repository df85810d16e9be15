package types

import (
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// FeeType selects where the protocol fee is sent.
type FeeType uint8

const (
	// FeeTypeWallet sends the fee to a plain account.
	FeeTypeWallet FeeType = iota
	// FeeTypeFeeSplit deposits the fee into a fee splitting contract.
	FeeTypeFeeSplit
)

func (t FeeType) String() string {
	switch t {
	case FeeTypeWallet:
		return "Wallet"
	case FeeTypeFeeSplit:
		return "FeeSplit"
	default:
		return fmt.Sprintf("FeeType(%d)", uint8(t))
	}
}

// ParseFeeType parses "Wallet" or "FeeSplit".
func ParseFeeType(s string) (FeeType, error) {
	switch s {
	case "Wallet":
		return FeeTypeWallet, nil
	case "FeeSplit":
		return FeeTypeFeeSplit, nil
	default:
		return 0, ErrInvalidFeeType
	}
}

func (t FeeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *FeeType) UnmarshalJSON(bz []byte) error {
	var s string
	if err := json.Unmarshal(bz, &s); err != nil {
		return err
	}

	parsed, err := ParseFeeType(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t FeeType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// FeeSink is the destination of the protocol fee.
type FeeSink struct {
	Type    FeeType `json:"type" yaml:"type"`
	Address string  `json:"address" yaml:"address"`
}

// Instruction returns the message paying fee into the sink.
func (s FeeSink) Instruction(fee sdk.Coin) Instruction {
	if s.Type == FeeTypeFeeSplit {
		return FeeSplitDeposit{Contract: s.Address, Amount: sdk.Coins{fee}, Flush: false}
	}

	return Send{ToAddress: s.Address, Amount: sdk.Coins{fee}}
}

// ComputeFee splits amount into the protocol fee and the part to reinvest.
// The effective rate never exceeds maxFeeRate.
func ComputeFee(amount math.Int, feeRate, maxFeeRate math.LegacyDec) (fee math.Int, reinvest math.Int, err error) {
	if amount.IsNil() || amount.IsNegative() {
		return math.Int{}, math.Int{}, errorsmod.Wrapf(ErrArithmetic, "negative amount %s", amount)
	}

	rate := math.LegacyMinDec(feeRate, maxFeeRate)
	if rate.IsNegative() {
		rate = math.LegacyZeroDec()
	}

	fee = rate.MulInt(amount).TruncateInt()
	reinvest, err = amount.SafeSub(fee)
	if err != nil {
		return math.Int{}, math.Int{}, errorsmod.Wrap(ErrArithmetic, err.Error())
	}

	return fee, reinvest, nil
}
