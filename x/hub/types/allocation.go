package types

import (
	"slices"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// TargetFunc returns the amount a validator should hold after rebalancing.
type TargetFunc func(d Delegation) (math.Int, error)

// FairShare splits total into n integer shares. The first total % n shares
// are one unit larger than the rest.
func FairShare(total math.Int, n int) ([]math.Int, error) {
	if n <= 0 {
		return nil, errorsmod.Wrap(ErrArithmetic, "fair share over an empty set")
	}
	if total.IsNil() || total.IsNegative() {
		return nil, errorsmod.Wrapf(ErrArithmetic, "fair share of negative amount %s", total)
	}

	count := math.NewInt(int64(n))
	base := total.Quo(count)
	remainder := total.Mod(count).Int64()

	shares := make([]math.Int, n)
	for i := range shares {
		if int64(i) < remainder {
			shares[i] = base.AddRaw(1)
		} else {
			shares[i] = base
		}
	}

	return shares, nil
}

// SumDelegations returns the total amount of delegations.
func SumDelegations(delegations []Delegation) (math.Int, error) {
	total := math.ZeroInt()
	for _, d := range delegations {
		var err error
		total, err = total.SafeAdd(d.Amount)
		if err != nil {
			return math.Int{}, errorsmod.Wrap(ErrArithmetic, err.Error())
		}
	}

	return total, nil
}

// ComputeDelegation places amount on the validator with the smallest current
// delegation. Ties go to the earliest entry.
func ComputeDelegation(amount math.Int, current []Delegation, denom string) (Delegation, error) {
	if len(current) == 0 {
		return Delegation{}, ErrNoValidators
	}

	least := current[0]
	for _, d := range current[1:] {
		if d.Amount.LT(least.Amount) {
			least = d
		}
	}

	return NewDelegation(least.Validator, amount, denom), nil
}

// ComputeUndelegations returns the undelegations that take amount out of
// current while leaving every validator with a fair share of the rest. The
// remainder of the split lands on the first entries of current, so callers
// normally pass delegations sorted by descending amount.
func ComputeUndelegations(amount math.Int, current []Delegation, denom string) ([]Undelegation, error) {
	total, err := SumDelegations(current)
	if err != nil {
		return nil, err
	}

	remaining, err := total.SafeSub(amount)
	if err != nil || remaining.IsNegative() {
		return nil, errorsmod.Wrapf(ErrArithmetic, "cannot undelegate %s out of %s", amount, total)
	}

	shares, err := FairShare(remaining, len(current))
	if err != nil {
		return nil, err
	}

	undelegations := make([]Undelegation, 0, len(current))
	for i, d := range current {
		diff := d.Amount.Sub(shares[i])
		if diff.IsNegative() {
			return nil, errorsmod.Wrapf(ErrArithmetic, "validator %s holds %s, below its share %s", d.Validator, d.Amount, shares[i])
		}
		if diff.IsZero() {
			continue
		}

		undelegations = append(undelegations, NewUndelegation(d.Validator, diff, denom))
	}

	return undelegations, nil
}

// LiveDelegations returns the non-zero entries of current, largest first.
// Ties keep their order.
func LiveDelegations(current []Delegation) []Delegation {
	live := make([]Delegation, 0, len(current))
	for _, d := range current {
		if d.Amount.IsPositive() {
			live = append(live, d)
		}
	}

	slices.SortStableFunc(live, func(a, b Delegation) int {
		return b.Amount.BigInt().Cmp(a.Amount.BigInt())
	})

	return live
}

// UnbondableDelegations narrows current, sorted by descending amount, to
// the entries that can each keep a fair share of what stays bonded once
// amount is taken out. An entry below its share keeps its whole stake and
// leaves the split, so ComputeUndelegations over the result never needs a
// negative move.
func UnbondableDelegations(amount math.Int, current []Delegation) ([]Delegation, error) {
	set := slices.Clone(current)
	for len(set) > 1 {
		total, err := SumDelegations(set)
		if err != nil {
			return nil, err
		}

		remaining := total.Sub(amount)
		if remaining.IsNegative() {
			return set, nil
		}

		shares, err := FairShare(remaining, len(set))
		if err != nil {
			return nil, err
		}

		short := -1
		for i := len(set) - 1; i >= 0; i-- {
			if set[i].Amount.LT(shares[i]) {
				short = i
				break
			}
		}
		if short < 0 {
			return set, nil
		}

		set = slices.Delete(set, short, short+1)
	}

	return set, nil
}

// ComputeRedelegationsForRemoval spreads the stake of a removed validator
// over the survivors so that each ends as close to a fair share as possible.
func ComputeRedelegationsForRemoval(removed Delegation, survivors []Delegation, denom string) ([]Redelegation, error) {
	total, err := SumDelegations(survivors)
	if err != nil {
		return nil, err
	}

	total, err = total.SafeAdd(removed.Amount)
	if err != nil {
		return nil, errorsmod.Wrap(ErrArithmetic, err.Error())
	}

	shares, err := FairShare(total, len(survivors))
	if err != nil {
		return nil, err
	}

	left := removed.Amount
	redelegations := make([]Redelegation, 0, len(survivors))
	for i, d := range survivors {
		if !left.IsPositive() {
			break
		}

		topUp := shares[i].Sub(d.Amount)
		if !topUp.IsPositive() {
			continue
		}
		if topUp.GT(left) {
			topUp = left
		}

		left = left.Sub(topUp)
		redelegations = append(redelegations, NewRedelegation(removed.Validator, d.Validator, topUp, denom))
	}

	return redelegations, nil
}

// ComputeTargetDelegationFromMiningPower returns floor(total * power / totalPower).
func ComputeTargetDelegationFromMiningPower(total, power, totalPower math.Int) (math.Int, error) {
	if !totalPower.IsPositive() {
		return math.ZeroInt(), nil
	}

	return mulDiv(total, power, totalPower)
}

// EvenTarget returns a TargetFunc giving every validator an equal share of
// total over n validators.
func EvenTarget(total math.Int, n int) TargetFunc {
	return func(Delegation) (math.Int, error) {
		if n <= 0 {
			return math.Int{}, errorsmod.Wrap(ErrArithmetic, "even target over an empty set")
		}

		return total.QuoRaw(int64(n)), nil
	}
}

type transfer struct {
	validator string
	amount    math.Int
}

// ComputeRedelegationsForRebalancing moves stake from validators above their
// target to validators below it. Validators outside active have a zero
// target and take no part in the moves. Surpluses and deficits of minimum or
// less are skipped.
func ComputeRedelegationsForRebalancing(
	active []string,
	current []Delegation,
	minimum math.Int,
	targetFn TargetFunc,
) ([]Redelegation, error) {
	if len(current) == 0 {
		return nil, nil
	}

	isActive := make(map[string]bool, len(active))
	for _, v := range active {
		isActive[v] = true
	}

	total, err := SumDelegations(current)
	if err != nil {
		return nil, err
	}

	targets := make([]math.Int, len(current))
	targetSum := math.ZeroInt()
	for i, d := range current {
		targets[i] = math.ZeroInt()
		if isActive[d.Validator] {
			target, err := targetFn(d)
			if err != nil {
				return nil, err
			}
			if target.IsNil() || target.IsNegative() {
				return nil, errorsmod.Wrapf(ErrArithmetic, "negative target %s for %s", target, d.Validator)
			}

			targets[i] = target
		}

		targetSum, err = targetSum.SafeAdd(targets[i])
		if err != nil {
			return nil, errorsmod.Wrap(ErrArithmetic, err.Error())
		}
	}

	residual, err := total.SafeSub(targetSum)
	if err != nil || residual.IsNegative() {
		return nil, errorsmod.Wrapf(ErrArithmetic, "targets %s exceed delegated %s", targetSum, total)
	}

	// one unit of the flooring residual per entry, in order
	for i := range targets {
		if !residual.IsPositive() {
			break
		}

		targets[i] = targets[i].AddRaw(1)
		residual = residual.SubRaw(1)
	}

	var srcs, dsts []transfer
	for i, d := range current {
		if !isActive[d.Validator] {
			continue
		}

		delta := d.Amount.Sub(targets[i])
		switch {
		case delta.GT(minimum):
			srcs = append(srcs, transfer{d.Validator, delta})
		case delta.Neg().GT(minimum):
			dsts = append(dsts, transfer{d.Validator, delta.Neg()})
		}
	}

	denom := current[0].Denom
	var redelegations []Redelegation
	for si, di := 0, 0; si < len(srcs) && di < len(dsts); {
		amount := math.MinInt(srcs[si].amount, dsts[di].amount)
		redelegations = append(redelegations, NewRedelegation(srcs[si].validator, dsts[di].validator, amount, denom))

		srcs[si].amount = srcs[si].amount.Sub(amount)
		dsts[di].amount = dsts[di].amount.Sub(amount)
		if srcs[si].amount.IsZero() {
			si++
		}
		if dsts[di].amount.IsZero() {
			di++
		}
	}

	return redelegations, nil
}

// MostUnderweight returns the validator whose target exceeds its current
// delegation by the most. Ties go to the earliest entry.
func MostUnderweight(current []Delegation, targetFn TargetFunc) (string, error) {
	if len(current) == 0 {
		return "", ErrNoValidators
	}

	var (
		best    string
		bestGap math.Int
	)
	for i, d := range current {
		target, err := targetFn(d)
		if err != nil {
			return "", err
		}

		gap := target.Sub(d.Amount)
		if i == 0 || gap.GT(bestGap) {
			best, bestGap = d.Validator, gap
		}
	}

	return best, nil
}
