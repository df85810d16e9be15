package types

import (
	"strings"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ParseCoin parses a single integer coin such as "12345uatom" or
// "23456ibc/0471F1C4...".
func ParseCoin(s string) (sdk.Coin, error) {
	s = strings.TrimSpace(s)

	// the amount must be an integer directly followed by the denom
	i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if i <= 0 || !isLetter(s[i]) {
		return sdk.Coin{}, errorsmod.Wrapf(ErrInvalidCoin, "failed to parse coin: %s", s)
	}

	coin, err := sdk.ParseCoinNormalized(s)
	if err != nil {
		return sdk.Coin{}, errorsmod.Wrapf(ErrInvalidCoin, "failed to parse coin: %s", s)
	}

	return coin, nil
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// BalanceSnapshot is the native balance of the hub observed at a block
// height.
type BalanceSnapshot struct {
	Height int64    `json:"height"`
	Amount math.Int `json:"amount"`
}

// ParseCoins parses a comma separated coin list, the format of the amount
// attribute of a coin_received event. An empty string is an empty list.
func ParseCoins(s string) (sdk.Coins, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return sdk.Coins{}, nil
	}

	var coins sdk.Coins
	for _, part := range strings.Split(s, ",") {
		coin, err := ParseCoin(part)
		if err != nil {
			return nil, err
		}

		coins, err = AddCoin(coins, coin)
		if err != nil {
			return nil, err
		}
	}

	return coins, nil
}

// AddCoin merges coin into ledger with overflow checked arithmetic. The
// returned ledger is sorted by denom and never holds zero entries.
func AddCoin(ledger sdk.Coins, coin sdk.Coin) (sdk.Coins, error) {
	if err := sdk.ValidateDenom(coin.Denom); err != nil {
		return nil, errorsmod.Wrap(ErrInvalidDenom, err.Error())
	}
	if coin.Amount.IsNil() || coin.Amount.IsNegative() {
		return nil, errorsmod.Wrapf(ErrInvalidCoin, "negative amount: %s", coin)
	}

	out := make(sdk.Coins, 0, len(ledger)+1)
	merged := false
	for _, c := range ledger {
		if c.Denom == coin.Denom {
			sum, err := c.Amount.SafeAdd(coin.Amount)
			if err != nil {
				return nil, errorsmod.Wrapf(ErrArithmetic, "adding %s to %s: %s", coin, c, err)
			}

			c = sdk.Coin{Denom: c.Denom, Amount: sum}
			merged = true
		}

		if c.Amount.IsPositive() {
			out = append(out, c)
		}
	}

	if !merged && coin.Amount.IsPositive() {
		out = append(out, coin)
	}

	return out.Sort(), nil
}

// AddCoins merges every coin of coins into ledger.
func AddCoins(ledger sdk.Coins, coins sdk.Coins) (sdk.Coins, error) {
	var err error
	for _, coin := range coins {
		ledger, err = AddCoin(ledger, coin)
		if err != nil {
			return nil, err
		}
	}

	if ledger == nil {
		return sdk.Coins{}, nil
	}

	return ledger, nil
}

// RemoveDenom drops every entry of denom from ledger.
func RemoveDenom(ledger sdk.Coins, denom string) sdk.Coins {
	out := make(sdk.Coins, 0, len(ledger))
	for _, c := range ledger {
		if c.Denom != denom {
			out = append(out, c)
		}
	}

	return out
}

// AmountOf returns the amount of denom held by ledger, zero if absent.
func AmountOf(ledger sdk.Coins, denom string) math.Int {
	for _, c := range ledger {
		if c.Denom == denom {
			return c.Amount
		}
	}

	return math.ZeroInt()
}

// ParseReceivedFund checks that funds carry exactly one non-zero coin of
// denom and returns its amount.
func ParseReceivedFund(funds sdk.Coins, denom string) (math.Int, error) {
	if len(funds) != 1 {
		return math.Int{}, errorsmod.Wrapf(ErrInvalidDeposit, "must deposit exactly one coin; received %d", len(funds))
	}

	fund := funds[0]
	if fund.Denom != denom {
		return math.Int{}, errorsmod.Wrapf(ErrInvalidDenom, "expected %s deposit, received %s", denom, fund.Denom)
	}

	if fund.Amount.IsNil() || !fund.Amount.IsPositive() {
		return math.Int{}, errorsmod.Wrap(ErrZeroAmount, "deposit amount must be non-zero")
	}

	return fund.Amount, nil
}
