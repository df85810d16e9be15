package config

import (
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	servertypes "github.com/cosmos/cosmos-sdk/server/types"
)

const (
	// DefaultQueryLimit - page size of list queries when none is given
	DefaultQueryLimit = uint32(10)
	// DefaultMaxQueryLimit - upper bound of the page size of list queries
	DefaultMaxQueryLimit = uint32(30)
	// DefaultMinRedelegation - smallest redelegation a rebalance emits when
	// the owner does not pick one
	DefaultMinRedelegation = uint64(10)
)

const (
	flagDefaultQueryLimit = "hub.default-query-limit"
	flagMaxQueryLimit     = "hub.max-query-limit"
	flagMinRedelegation   = "hub.min-redelegation"
)

// HubConfig is the extra config required for the hub
type HubConfig struct {
	DefaultQueryLimit uint32 `mapstructure:"default-query-limit"`
	MaxQueryLimit     uint32 `mapstructure:"max-query-limit"`
	MinRedelegation   uint64 `mapstructure:"min-redelegation"`
}

// DefaultHubConfig returns the default settings for HubConfig
func DefaultHubConfig() HubConfig {
	return HubConfig{
		DefaultQueryLimit: DefaultQueryLimit,
		MaxQueryLimit:     DefaultMaxQueryLimit,
		MinRedelegation:   DefaultMinRedelegation,
	}
}

// GetConfig load config values from the app options. Unset values fall
// back to their defaults.
func GetConfig(appOpts servertypes.AppOptions) HubConfig {
	cfg := HubConfig{
		DefaultQueryLimit: cast.ToUint32(appOpts.Get(flagDefaultQueryLimit)),
		MaxQueryLimit:     cast.ToUint32(appOpts.Get(flagMaxQueryLimit)),
		MinRedelegation:   cast.ToUint64(appOpts.Get(flagMinRedelegation)),
	}

	return cfg.withDefaults()
}

func (c HubConfig) withDefaults() HubConfig {
	if c.DefaultQueryLimit == 0 {
		c.DefaultQueryLimit = DefaultQueryLimit
	}
	if c.MaxQueryLimit == 0 {
		c.MaxQueryLimit = DefaultMaxQueryLimit
	}
	if c.DefaultQueryLimit > c.MaxQueryLimit {
		c.DefaultQueryLimit = c.MaxQueryLimit
	}
	if c.MinRedelegation == 0 {
		c.MinRedelegation = DefaultMinRedelegation
	}

	return c
}

// PageLimit returns the page size to use for a requested limit.
func (c HubConfig) PageLimit(requested uint32) int {
	if requested == 0 {
		return int(c.DefaultQueryLimit)
	}
	if requested > c.MaxQueryLimit {
		return int(c.MaxQueryLimit)
	}

	return int(requested)
}

// AddConfigFlags registers the hub flags on the start command.
func AddConfigFlags(startCmd *cobra.Command) {
	startCmd.Flags().Uint32(flagDefaultQueryLimit, DefaultQueryLimit, "Set the default page size of hub list queries")
	startCmd.Flags().Uint32(flagMaxQueryLimit, DefaultMaxQueryLimit, "Set the max page size of hub list queries")
	startCmd.Flags().Uint64(flagMinRedelegation, DefaultMinRedelegation, "Set the default minimum redelegation of a hub rebalance")
}

// DefaultConfigTemplate default config template for hub module
const DefaultConfigTemplate = `
###############################################################################
###                         Hub                                             ###
###############################################################################

[hub]
# The page size of list queries when the request gives none.
default-query-limit = "{{ .HubConfig.DefaultQueryLimit }}"

# The largest page size a list query may request.
max-query-limit = "{{ .HubConfig.MaxQueryLimit }}"

# The smallest redelegation a rebalance emits when the owner gives none.
min-redelegation = "{{ .HubConfig.MinRedelegation }}"
`
