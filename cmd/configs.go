package cmd

import (
	"fmt"

	"github.com/naton1/taskforge/internal/configstore"
	"github.com/naton1/taskforge/internal/observability"
	"github.com/spf13/cobra"
)

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "Inspect stored training configuration profiles",
}

var configsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known configuration profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := configstore.New(appCfg.Paths.ConfigDir, observability.GetLogger())
		if err != nil {
			return fmt.Errorf("failed to open config store: %w", err)
		}

		names := store.List()
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no configuration profiles found")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var configsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a configuration profile as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := configstore.New(appCfg.Paths.ConfigDir, observability.GetLogger())
		if err != nil {
			return fmt.Errorf("failed to open config store: %w", err)
		}

		profile := store.Load(args[0], configstore.FormatJSON)
		out, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	configsCmd.AddCommand(configsListCmd, configsShowCmd)
	rootCmd.AddCommand(configsCmd)
}
