package types

import (
	"cosmossdk.io/collections"
)

const (
	// ModuleName is the name of the liquid staking hub module
	ModuleName = "hub"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// QuerierRoute is the querier route for the hub module
	QuerierRoute = ModuleName

	// RouterKey is the msg router key for the hub module
	RouterKey = ModuleName
)

// Keys for hub store
// Items are stored with the following key: values
var (
	ConfigKey            = collections.NewPrefix(0x11) // key for the hub configuration
	ValidatorsKey        = collections.NewPrefix(0x12) // key for the ordered validator whitelist
	PendingBatchKey      = collections.NewPrefix(0x13) // key for the batch collecting unbond requests
	UnlockedCoinsKey     = collections.NewPrefix(0x14) // key for coins received but not yet reinvested
	PrevNativeBalanceKey = collections.NewPrefix(0x15) // key for the last observed native balance

	BatchesPrefix             = collections.NewPrefix(0x21) // prefix for submitted batches
	BatchesByReconciledPrefix = collections.NewPrefix(0x22) // prefix for the reconciled index of batches

	UnbondRequestsPrefix       = collections.NewPrefix(0x31) // prefix for unbond requests, by (batch id, user)
	UnbondRequestsByUserPrefix = collections.NewPrefix(0x32) // prefix for the user index of unbond requests

	TotalMiningPowerKey         = collections.NewPrefix(0x41) // key for the sum of validator mining powers
	ValidatorMiningPowersPrefix = collections.NewPrefix(0x42) // prefix for each validator's mining power

	RetiredValidatorsPrefix = collections.NewPrefix(0x51) // prefix for unlisted validators that may still hold stake
)
