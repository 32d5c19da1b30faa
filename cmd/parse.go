package cmd

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/naton1/taskforge/internal/observability"
	"github.com/naton1/taskforge/internal/tasks"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var parseCmd = &cobra.Command{
	Use:   "parse <description>",
	Short: "Parse a natural language task description into a structured task",
	Long: `Parse converts a plain English task description into a structured task:
category, difficulty, objectives, and requirements. The result is printed as JSON.

Example:
  taskforge parse "Kill 10 goblins in Lumbridge"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := strings.Join(args, " ")

		parser := tasks.NewParser(observability.GetLogger())
		task := parser.Parse(description)

		out, err := json.MarshalIndent(task, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode task: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
