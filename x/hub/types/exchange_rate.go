package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// ExchangeRate returns the amount of native token backing one unit of the
// receipt token. It is one while no receipt token exists.
func ExchangeRate(totalNative, totalSupply math.Int) math.LegacyDec {
	if !totalSupply.IsPositive() {
		return math.LegacyOneDec()
	}

	return math.LegacyNewDecFromInt(totalNative).QuoInt(totalSupply)
}

// ComputeMintAmount returns the receipt token amount minted for a deposit,
// rounded down.
func ComputeMintAmount(totalSupply, deposit, totalNative math.Int) (math.Int, error) {
	if !totalSupply.IsPositive() {
		return deposit, nil
	}

	if !totalNative.IsPositive() {
		return math.Int{}, errorsmod.Wrapf(ErrArithmetic, "receipt supply %s is backed by no native token", totalSupply)
	}

	return mulDiv(deposit, totalSupply, totalNative)
}

// ComputeUnbondAmount returns the native token amount released by burning
// usteak receipt tokens, rounded down.
func ComputeUnbondAmount(totalSupply, usteak, totalNative math.Int) (math.Int, error) {
	if !totalSupply.IsPositive() {
		return math.Int{}, errorsmod.Wrap(ErrArithmetic, "receipt supply is zero")
	}

	return mulDiv(totalNative, usteak, totalSupply)
}

// mulDiv computes floor(a * b / c).
func mulDiv(a, b, c math.Int) (math.Int, error) {
	prod, err := a.SafeMul(b)
	if err != nil {
		return math.Int{}, errorsmod.Wrap(ErrArithmetic, err.Error())
	}

	res, err := prod.SafeQuo(c)
	if err != nil {
		return math.Int{}, errorsmod.Wrap(ErrArithmetic, err.Error())
	}

	return res, nil
}
