package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"archivebot/internal/di"
	"archivebot/internal/structures"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:   "archivebot",
	Short: "Discussion page archiving bot for MediaWiki wikis",
	Long: `archivebot watches configured discussion pages and moves threads
that have gone quiet into archive subpages, following the per-page
configuration template found on each page.

Without a subcommand it runs as a daemon: batches run on a schedule
and a small HTTP API exposes health, reports and a manual trigger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := di.InitApp(&flags)
		return err
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one archiving batch and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := di.InitRunner(&flags)
		if err != nil {
			return err
		}
		return runner.Run(context.Background())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "log to stderr as well as to files")
	rootCmd.PersistentFlags().BoolVar(&flags.DryRun, "dry-run", false, "do not save any page, only log what would change")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
