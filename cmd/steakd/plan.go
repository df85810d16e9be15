package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cosmossdk.io/math"

	"github.com/steak-hub/steak/x/hub/config"
	"github.com/steak-hub/steak/x/hub/types"
)

const (
	flagActive       = "active"
	flagMiningPowers = "mining-powers"
	flagFeeRate      = "fee-rate"
	flagMaxFeeRate   = "max-fee-rate"
)

// BondPlan is the placement of a deposit.
type BondPlan struct {
	Delegation types.Delegation `json:"delegation" yaml:"delegation"`
}

// UnbondPlan is the undelegations of a submitted batch.
type UnbondPlan struct {
	Undelegations []types.Undelegation `json:"undelegations" yaml:"undelegations"`
}

// RedelegationPlan is the redelegations of a removal or a rebalance.
type RedelegationPlan struct {
	Redelegations []types.Redelegation `json:"redelegations" yaml:"redelegations"`
}

// FeePlan splits harvested rewards.
type FeePlan struct {
	Fee      math.Int `json:"fee" yaml:"fee"`
	Reinvest math.Int `json:"reinvest" yaml:"reinvest"`
}

// ReinvestPlan is a fee split plus the placement of the reinvested part.
type ReinvestPlan struct {
	FeePlan    `yaml:",inline"`
	Delegation *types.Delegation `json:"delegation,omitempty" yaml:"delegation,omitempty"`
}

// BondCmd plans where a deposit is delegated.
func BondCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "bond [amount] [delegations]",
		Short: "Plan the delegation of a deposit",
		Long: `Plan the delegation of a deposit. Delegations are given as
validator=amount pairs in registry order, e.g. "alice=400,bob=300".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			current, err := parseDelegations(args[1], v.GetString(flagDenom))
			if err != nil {
				return err
			}

			delegation, err := types.ComputeDelegation(amount, current, v.GetString(flagDenom))
			if err != nil {
				return err
			}

			return printOutput(cmd, v, BondPlan{Delegation: delegation})
		},
	}
}

// UnbondCmd plans the undelegations of a batch.
func UnbondCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "unbond [amount] [delegations]",
		Short: "Plan the undelegations that release a native amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			current, err := parseDelegations(args[1], v.GetString(flagDenom))
			if err != nil {
				return err
			}

			unbondable, err := types.UnbondableDelegations(amount, types.LiveDelegations(current))
			if err != nil {
				return err
			}

			undelegations, err := types.ComputeUndelegations(amount, unbondable, v.GetString(flagDenom))
			if err != nil {
				return err
			}

			return printOutput(cmd, v, UnbondPlan{Undelegations: undelegations})
		},
	}
}

// RemoveValidatorCmd plans the redelegations away from a removed validator.
func RemoveValidatorCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-validator [validator] [delegations]",
		Short: "Plan the redelegations of a validator's stake to the rest",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := parseDelegations(args[1], v.GetString(flagDenom))
			if err != nil {
				return err
			}

			var (
				removed   *types.Delegation
				survivors []types.Delegation
			)
			for i, d := range current {
				if d.Validator == args[0] {
					removed = &current[i]
					continue
				}

				survivors = append(survivors, d)
			}
			if removed == nil {
				return errors.Wrap(types.ErrValidatorNotWhitelisted, args[0])
			}
			if len(survivors) == 0 {
				return types.ErrLastValidator
			}

			redelegations, err := types.ComputeRedelegationsForRemoval(*removed, survivors, v.GetString(flagDenom))
			if err != nil {
				return err
			}

			return printOutput(cmd, v, RedelegationPlan{Redelegations: redelegations})
		},
	}
}

// RebalanceCmd plans the redelegations moving stake towards the targets.
func RebalanceCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebalance [delegations]",
		Short: "Plan the redelegations that even out the delegations",
		Long: `Plan the redelegations that even out the delegations. With
--mining-powers each validator's target is weighted by its mining power.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := parseDelegations(args[0], v.GetString(flagDenom))
			if err != nil {
				return err
			}

			active := v.GetStringSlice(flagActive)
			if len(active) == 0 {
				for _, d := range current {
					active = append(active, d.Validator)
				}
			}

			targetFn, err := rebalanceTarget(v, current, len(active))
			if err != nil {
				return err
			}

			minimum := math.NewIntFromUint64(config.GetConfig(v).MinRedelegation)
			redelegations, err := types.ComputeRedelegationsForRebalancing(active, current, minimum, targetFn)
			if err != nil {
				return err
			}

			return printOutput(cmd, v, RedelegationPlan{Redelegations: redelegations})
		},
	}

	cmd.Flags().StringSlice(flagActive, nil, "Validators taking part in the rebalance (default all)")
	cmd.Flags().String(flagMiningPowers, "", "Mining powers as validator=power pairs")
	config.AddConfigFlags(cmd)

	return cmd
}

// FeeCmd plans the fee split of harvested rewards.
func FeeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fee [amount]",
		Short: "Split an amount of rewards into fee and reinvestment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := feePlan(v, args[0])
			if err != nil {
				return err
			}

			return printOutput(cmd, v, plan)
		},
	}

	addFeeFlags(cmd)
	return cmd
}

// ReinvestCmd plans a reinvestment: fee split and delegation of the rest.
func ReinvestCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reinvest [amount] [delegations]",
		Short: "Plan the reinvestment of harvested rewards",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := feePlan(v, args[0])
			if err != nil {
				return err
			}

			current, err := parseDelegations(args[1], v.GetString(flagDenom))
			if err != nil {
				return err
			}

			validator, err := reinvestTarget(v, current)
			if err != nil {
				return err
			}

			out := ReinvestPlan{FeePlan: plan}
			if plan.Reinvest.IsPositive() {
				delegation := types.NewDelegation(validator, plan.Reinvest, v.GetString(flagDenom))
				out.Delegation = &delegation
			}

			return printOutput(cmd, v, out)
		},
	}

	addFeeFlags(cmd)
	cmd.Flags().String(flagMiningPowers, "", "Mining powers as validator=power pairs")

	return cmd
}

func addFeeFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagFeeRate, types.DefaultFeeRate.String(), "Fee rate taken from rewards")
	cmd.Flags().String(flagMaxFeeRate, types.DefaultMaxFeeRate.String(), "Upper bound of the fee rate")
}

func feePlan(v *viper.Viper, arg string) (FeePlan, error) {
	amount, err := parseAmount(arg)
	if err != nil {
		return FeePlan{}, err
	}

	feeRate, err := parseDec(v.GetString(flagFeeRate))
	if err != nil {
		return FeePlan{}, err
	}

	maxFeeRate, err := parseDec(v.GetString(flagMaxFeeRate))
	if err != nil {
		return FeePlan{}, err
	}

	fee, reinvest, err := types.ComputeFee(amount, feeRate, maxFeeRate)
	if err != nil {
		return FeePlan{}, err
	}

	return FeePlan{Fee: fee, Reinvest: reinvest}, nil
}

// miningTarget returns the mining weighted target function, or nil when no
// mining power is given.
func miningTarget(v *viper.Viper, current []types.Delegation) (types.TargetFunc, error) {
	powers, totalPower, err := parseMiningPowers(v.GetString(flagMiningPowers))
	if err != nil {
		return nil, err
	}
	if !totalPower.IsPositive() {
		return nil, nil
	}

	total, err := types.SumDelegations(current)
	if err != nil {
		return nil, err
	}

	return func(d types.Delegation) (math.Int, error) {
		power, ok := powers[d.Validator]
		if !ok {
			power = math.ZeroInt()
		}

		return types.ComputeTargetDelegationFromMiningPower(total, power, totalPower)
	}, nil
}

func rebalanceTarget(v *viper.Viper, current []types.Delegation, active int) (types.TargetFunc, error) {
	targetFn, err := miningTarget(v, current)
	if err != nil || targetFn != nil {
		return targetFn, err
	}

	total, err := types.SumDelegations(current)
	if err != nil {
		return nil, err
	}

	return types.EvenTarget(total, active), nil
}

func reinvestTarget(v *viper.Viper, current []types.Delegation) (string, error) {
	targetFn, err := miningTarget(v, current)
	if err != nil {
		return "", err
	}

	if targetFn != nil {
		return types.MostUnderweight(current, targetFn)
	}

	d, err := types.ComputeDelegation(math.ZeroInt(), current, "")
	if err != nil {
		return "", err
	}

	return d.Validator, nil
}
