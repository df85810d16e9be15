package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// EnvPrefix is the prefix of the environment variables read by steakd
	EnvPrefix = "STEAKD"

	flagOutput = "output"
	flagDenom  = "denom"
)

// NewRootCmd creates the steakd root command. Every subcommand plans hub
// instructions offline from delegations given on the command line.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:          "steakd",
		Short:        "Offline planner for the steak liquid staking hub",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			// flags override env
			return v.BindPFlags(cmd.Flags())
		},
	}

	rootCmd.PersistentFlags().StringP(flagOutput, "o", "json", "Output format (json|yaml)")
	rootCmd.PersistentFlags().String(flagDenom, sdk.DefaultBondDenom, "Native staking denom")

	rootCmd.AddCommand(
		BondCmd(v),
		UnbondCmd(v),
		RemoveValidatorCmd(v),
		RebalanceCmd(v),
		FeeCmd(v),
		ReinvestCmd(v),
	)

	return rootCmd
}

func printOutput(cmd *cobra.Command, v *viper.Viper, out any) error {
	var (
		bz  []byte
		err error
	)

	switch format := v.GetString(flagOutput); format {
	case "json":
		bz, err = json.MarshalIndent(out, "", "  ")
	case "yaml":
		bz, err = yaml.Marshal(out)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(bz)))
	return err
}
