// Package commands implements notifyd's CLI using cobra.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the root command with every subcommand registered.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "notifyd",
		Short: "Run scheduled jobs and notify on their outcome",
		Long: `notifyd runs operator-defined jobs on a schedule, captures their
output, and delivers a notification through Discord, Slack, or a generic
webhook when a job fails or is otherwise worth reporting.

Examples:
  notifyd serve --config jobs.yaml --notifier-config notifier.yaml
  notifyd secrets set DISCORD_WEBHOOK_TOKEN
  notifyd secrets delete DISCORD_WEBHOOK_TOKEN`,
		Version: version,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newSecretsCmd(),
	)

	rootCmd.PersistentFlags().StringP("config", "c", "jobs.yaml", "path to the job definitions file")
	rootCmd.PersistentFlags().String("notifier-config", "", "path to the notifier configuration file")
	rootCmd.PersistentFlags().String("runlog", "run_log.txt", "path to the run log file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	return rootCmd
}
