package cmd

import (
	"fmt"
	"strings"

	"github.com/naton1/taskforge/internal/configstore"
	"github.com/naton1/taskforge/internal/integrator"
	"github.com/naton1/taskforge/internal/observability"
	"github.com/naton1/taskforge/internal/tasks"
	"github.com/spf13/cobra"
)

var prepareBaseConfig string

var prepareCmd = &cobra.Command{
	Use:   "prepare <description>",
	Short: "Prepare training inputs for a task description",
	Long: `Prepare parses the description, generates a category-specialized environment
contract under the contracts directory, and derives a training configuration
from the base config. The resulting bundle is printed as JSON.

Example:
  taskforge prepare --base default "Mine 50 iron ore"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := strings.Join(args, " ")
		logger := observability.GetLogger()

		store, err := configstore.New(appCfg.Paths.ConfigDir, logger)
		if err != nil {
			return fmt.Errorf("failed to open config store: %w", err)
		}

		task := tasks.NewParser(logger).Parse(description)
		integ := integrator.New(store, appCfg.Paths.ContractsDir, logger)
		prep := integ.PrepareTraining(task, prepareBaseConfig)

		if prep.EnvironmentContractPath == "" {
			// Preparation still succeeded in memory; tell the operator the
			// contract never reached disk.
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: environment contract could not be written to disk")
		}

		out, err := json.MarshalIndent(prep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode training preparation: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	prepareCmd.Flags().StringVar(&prepareBaseConfig, "base", "default", "name of the base training configuration")
	rootCmd.AddCommand(prepareCmd)
}
