package main

import (
	"github.com/spf13/cobra"
)

// rootFlags are shared by all subcommands.
type rootFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "archcost",
		Short: "Architecture diagram cost estimator",
		Long: `archcost analyzes architecture diagrams, estimates monthly AWS costs
from a built-in pricing table, and generates supporting documents.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to YAML config file")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newEstimateCmd(flags))

	return cmd
}
