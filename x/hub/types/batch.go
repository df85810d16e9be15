package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// PendingBatch collects the unbond requests of the current epoch.
type PendingBatch struct {
	ID                 uint64   `json:"id" yaml:"id"`
	UsteakToBurn       math.Int `json:"usteak_to_burn" yaml:"usteak_to_burn"`
	EstUnbondStartTime uint64   `json:"est_unbond_start_time" yaml:"est_unbond_start_time"`
}

// NewPendingBatch returns an empty pending batch.
func NewPendingBatch(id, startTime uint64) PendingBatch {
	return PendingBatch{ID: id, UsteakToBurn: math.ZeroInt(), EstUnbondStartTime: startTime}
}

// Ready reports whether the batch may be submitted at now.
func (b PendingBatch) Ready(now uint64) bool {
	return now >= b.EstUnbondStartTime
}

// Batch is a submitted batch awaiting withdrawal by its request holders.
type Batch struct {
	ID               uint64   `json:"id" yaml:"id"`
	Reconciled       bool     `json:"reconciled" yaml:"reconciled"`
	TotalShares      math.Int `json:"total_shares" yaml:"total_shares"`
	AmountUnclaimed  math.Int `json:"amount_unclaimed" yaml:"amount_unclaimed"`
	EstUnbondEndTime uint64   `json:"est_unbond_end_time" yaml:"est_unbond_end_time"`
}

// Matured reports whether the batch's unbonding period has ended at now.
func (b Batch) Matured(now uint64) bool {
	return b.EstUnbondEndTime <= now
}

// Payout returns the native amount owed for shares of the batch, rounded
// down.
func (b Batch) Payout(shares math.Int) (math.Int, error) {
	if !b.TotalShares.IsPositive() {
		return math.Int{}, errorsmod.Wrapf(ErrArithmetic, "batch %d has no shares", b.ID)
	}
	if shares.GT(b.TotalShares) {
		return math.Int{}, errorsmod.Wrapf(ErrArithmetic, "shares %s exceed batch %d total %s", shares, b.ID, b.TotalShares)
	}

	return mulDiv(b.AmountUnclaimed, shares, b.TotalShares)
}

// Settle removes shares and their payout from the batch.
func (b *Batch) Settle(shares, payout math.Int) error {
	totalShares, err := b.TotalShares.SafeSub(shares)
	if err != nil || totalShares.IsNegative() {
		return errorsmod.Wrapf(ErrArithmetic, "settling %s shares of batch %d", shares, b.ID)
	}

	unclaimed, err := b.AmountUnclaimed.SafeSub(payout)
	if err != nil || unclaimed.IsNegative() {
		return errorsmod.Wrapf(ErrArithmetic, "settling %s of batch %d", payout, b.ID)
	}

	b.TotalShares, b.AmountUnclaimed = totalShares, unclaimed
	return nil
}

// UnbondRequest is one user's claim on a batch.
type UnbondRequest struct {
	ID     uint64   `json:"id" yaml:"id"`
	User   string   `json:"user" yaml:"user"`
	Shares math.Int `json:"shares" yaml:"shares"`
}

// SumUnclaimed returns the total amount owed by batches.
func SumUnclaimed(batches []Batch) (math.Int, error) {
	total := math.ZeroInt()
	for _, b := range batches {
		var err error
		total, err = total.SafeAdd(b.AmountUnclaimed)
		if err != nil {
			return math.Int{}, errorsmod.Wrap(ErrArithmetic, err.Error())
		}
	}

	return total, nil
}

// ApplyShortfall marks batches reconciled after taking a fair share of
// shortfall off each. A batch never drops below zero; the remainder of the
// split falls on the earliest batches.
func ApplyShortfall(batches []Batch, shortfall math.Int) error {
	if len(batches) == 0 {
		return nil
	}

	if shortfall.IsPositive() {
		shares, err := FairShare(shortfall, len(batches))
		if err != nil {
			return err
		}

		for i := range batches {
			unclaimed := batches[i].AmountUnclaimed.Sub(shares[i])
			if unclaimed.IsNegative() {
				unclaimed = math.ZeroInt()
			}

			batches[i].AmountUnclaimed = unclaimed
		}
	}

	for i := range batches {
		batches[i].Reconciled = true
	}

	return nil
}
