package types

import (
	"fmt"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MiningPower is the mining power recorded for a validator.
type MiningPower struct {
	Validator string   `json:"validator"`
	Power     math.Int `json:"power"`
}

// GenesisState is the full hub state.
type GenesisState struct {
	Config            Config          `json:"config"`
	Validators        []string        `json:"validators"`
	PendingBatch      *PendingBatch   `json:"pending_batch,omitempty"`
	Batches           []Batch         `json:"batches"`
	UnbondRequests    []UnbondRequest `json:"unbond_requests"`
	UnlockedCoins     sdk.Coins       `json:"unlocked_coins"`
	PrevNativeBalance math.Int        `json:"prev_native_balance"`
	MiningPowers      []MiningPower   `json:"mining_powers"`
	RetiredValidators []string        `json:"retired_validators,omitempty"`
}

// NewGenesisState creates a genesis state for a fresh hub
func NewGenesisState(config Config, validators []string) *GenesisState {
	return &GenesisState{
		Config:            config,
		Validators:        validators,
		UnlockedCoins:     sdk.Coins{},
		PrevNativeBalance: math.ZeroInt(),
	}
}

// DefaultGenesisState returns the default parameters of a hub. The owner,
// receipt token, fee account and validators are set by the deployer.
func DefaultGenesisState() *GenesisState {
	return NewGenesisState(DefaultConfig(), []string{})
}

// ValidateGenesis performs basic validation of hub genesis data returning an
// error for any failed validation criteria.
func ValidateGenesis(data *GenesisState) error {
	if err := data.Config.Validate(); err != nil {
		return err
	}

	if len(data.Validators) == 0 {
		return ErrNoValidators
	}

	seen := make(map[string]bool, len(data.Validators))
	for _, v := range data.Validators {
		if seen[v] {
			return fmt.Errorf("duplicate validator %s", v)
		}
		seen[v] = true
	}

	for _, v := range data.RetiredValidators {
		if seen[v] {
			return fmt.Errorf("retired validator %s is whitelisted or listed twice", v)
		}
		seen[v] = true
	}

	batchIDs := make(map[uint64]bool, len(data.Batches))
	for _, b := range data.Batches {
		if batchIDs[b.ID] {
			return fmt.Errorf("duplicate batch %d", b.ID)
		}
		if data.PendingBatch != nil && b.ID >= data.PendingBatch.ID {
			return fmt.Errorf("batch %d is not older than the pending batch %d", b.ID, data.PendingBatch.ID)
		}
		batchIDs[b.ID] = true
	}

	for _, r := range data.UnbondRequests {
		if data.PendingBatch != nil && r.ID == data.PendingBatch.ID {
			continue
		}
		if !batchIDs[r.ID] {
			return fmt.Errorf("unbond request of %s refers to unknown batch %d", r.User, r.ID)
		}
	}

	if err := data.UnlockedCoins.Validate(); err != nil {
		return err
	}

	for _, p := range data.MiningPowers {
		if p.Power.IsNil() || p.Power.IsNegative() {
			return fmt.Errorf("negative mining power for %s", p.Validator)
		}
	}

	return nil
}
