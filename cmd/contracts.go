package cmd

import (
	"fmt"
	"sort"

	"github.com/naton1/taskforge/internal/configstore"
	"github.com/naton1/taskforge/internal/envfactory"
	"github.com/naton1/taskforge/internal/integrator"
	"github.com/naton1/taskforge/internal/observability"
	"github.com/spf13/cobra"
)

var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "Inspect and maintain environment contracts",
}

var contractsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the base environment contracts available on disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		factory := envfactory.New(appCfg.Paths.ContractsDir, observability.GetLogger())

		names := factory.ListContracts()
		sort.Strings(names)
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no base contracts found")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var contractsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a base environment contract as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		factory := envfactory.New(appCfg.Paths.ContractsDir, observability.GetLogger())

		contract := factory.Contract(args[0])
		if contract == nil {
			return fmt.Errorf("no base contract named %q", args[0])
		}
		out, err := json.MarshalIndent(contract, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode contract: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var contractsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove temporary contracts left behind by prepare",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()
		store, err := configstore.New(appCfg.Paths.ConfigDir, logger)
		if err != nil {
			return fmt.Errorf("failed to open config store: %w", err)
		}

		integ := integrator.New(store, appCfg.Paths.ContractsDir, logger)
		removed := integ.CleanupTempContracts()
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d temporary contract(s)\n", removed)
		return nil
	},
}

func init() {
	contractsCmd.AddCommand(contractsListCmd, contractsShowCmd, contractsCleanupCmd)
	rootCmd.AddCommand(contractsCmd)
}
