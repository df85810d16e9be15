package types

import (
	"fmt"

	"cosmossdk.io/math"
	"gopkg.in/yaml.v3"

	"github.com/pkg/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Default config values
const (
	DefaultEpochPeriod  = uint64(259200)  // 3 days
	DefaultUnbondPeriod = uint64(1814400) // 21 days
)

var (
	DefaultFeeRate    = math.LegacyNewDecWithPrec(1, 1) // 10%
	DefaultMaxFeeRate = math.LegacyNewDecWithPrec(2, 1) // 20%
)

// Config is the hub's on-chain configuration.
type Config struct {
	Owner        string         `json:"owner" yaml:"owner"`
	NewOwner     string         `json:"new_owner,omitempty" yaml:"new_owner,omitempty"`
	SteakToken   string         `json:"steak_token" yaml:"steak_token"`
	Denom        string         `json:"denom" yaml:"denom"`
	EpochPeriod  uint64         `json:"epoch_period" yaml:"epoch_period"`
	UnbondPeriod uint64         `json:"unbond_period" yaml:"unbond_period"`
	FeeRate      math.LegacyDec `json:"fee_rate" yaml:"fee_rate"`
	MaxFeeRate   math.LegacyDec `json:"max_fee_rate" yaml:"max_fee_rate"`
	FeeSink      FeeSink        `json:"fee_sink" yaml:"fee_sink"`
}

// DefaultConfig returns a config with default periods and fees; owner,
// token and fee account are left for the deployer.
func DefaultConfig() Config {
	return Config{
		Denom:        sdk.DefaultBondDenom,
		EpochPeriod:  DefaultEpochPeriod,
		UnbondPeriod: DefaultUnbondPeriod,
		FeeRate:      DefaultFeeRate,
		MaxFeeRate:   DefaultMaxFeeRate,
	}
}

// String returns a human readable string representation of the config.
func (c Config) String() string {
	out, _ := yaml.Marshal(c)
	return string(out)
}

// Validate performs basic validation on the config
func (c Config) Validate() error {
	if c.Owner == "" {
		return errors.Wrap(ErrInvalidConfig, "empty owner")
	}

	if c.SteakToken == "" {
		return errors.Wrap(ErrInvalidConfig, "empty steak token")
	}

	if err := sdk.ValidateDenom(c.Denom); err != nil {
		return errors.Wrap(err, "invalid denom")
	}

	if c.EpochPeriod == 0 {
		return errors.Wrap(ErrInvalidConfig, "epoch period must be bigger than 0")
	}

	if c.UnbondPeriod == 0 {
		return errors.Wrap(ErrInvalidConfig, "unbond period must be bigger than 0")
	}

	if err := validateFeeRate(c.MaxFeeRate); err != nil {
		return errors.Wrap(err, "invalid max fee rate")
	}

	if err := validateFeeRate(c.FeeRate); err != nil {
		return errors.Wrap(err, "invalid fee rate")
	}

	if c.FeeRate.GT(c.MaxFeeRate) {
		return errors.Wrapf(ErrFeeRateTooHigh, "%s > %s", c.FeeRate, c.MaxFeeRate)
	}

	if c.FeeSink.Address == "" {
		return errors.Wrap(ErrInvalidConfig, "empty fee account")
	}

	return nil
}

func validateFeeRate(v math.LegacyDec) error {
	if v.IsNil() {
		return fmt.Errorf("fee rate must be set")
	}

	if v.IsNegative() {
		return fmt.Errorf("fee rate should be bigger than 0.0")
	}

	if v.GT(math.LegacyOneDec()) {
		return fmt.Errorf("fee rate should be smaller than 1.0")
	}

	return nil
}
