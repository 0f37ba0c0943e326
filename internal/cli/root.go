// Package cli defines the ledger-admin command tree.
package cli

import (
	"fmt"
	"os"

	"ledger-admin/internal/config"
	"ledger-admin/internal/logger"

	"github.com/spf13/cobra"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:           "ledger-admin",
		Short:         "Ledger administration API",
		Long:          "FOBO account ownership and reference data listings for the ledger administration UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("database-url") {
				loaded.DatabaseURL, _ = cmd.Flags().GetString("database-url")
			}
			if cmd.Flags().Changed("log-level") {
				loaded.LogLevel, _ = cmd.Flags().GetString("log-level")
			}
			*cfg = *loaded
			logger.Setup(cfg.LogLevel, cfg.IsProduction())
			return nil
		},
	}

	rootCmd.PersistentFlags().String("database-url", "", "database URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newMigrateCmd(cfg))
	return rootCmd
}
