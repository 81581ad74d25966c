// Package cmd provides the CLI commands for meter-ledger.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"meter-ledger/ledger"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "meter-ledger",
	Short: "Record field meter replacements against an asset ledger",
	Long: `meter-ledger looks up customer/asset records in an Excel asset
ledger by asset-number suffix and keeps a per-day output workbook of
completed meter replacements.

Example:
  meter-ledger lookup 001234
  meter-ledger add --suffix 001234 --new-asset-id A900112 --meter-type single-phase
  meter-ledger list
  meter-ledger edit 0 --set seal_number=S-4411
  meter-ledger delete 2 --yes`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute runs the root command. Called once from main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML; env overrides apply)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func loadConfig() *ledger.Config {
	cfg, err := ledger.LoadConfig(cfgFile)
	exitOnError(err, "failed to load configuration")
	if debug {
		cfg.Debug = true
	}
	return cfg
}

// openStore builds the daily store, attaching the audit trail when one is
// configured. The returned closer is safe to defer unconditionally.
func openStore(cfg *ledger.Config) (*ledger.Store, func()) {
	var audit *ledger.AuditLog
	if cfg.Audit.DB != "" {
		var err error
		audit, err = ledger.OpenAuditLog(cfg.Audit.DB)
		exitOnError(err, "failed to open audit log")
	}
	store := ledger.NewStore(cfg.Output, cfg.Installers, ledger.WithAudit(audit))
	return store, func() {
		if err := audit.Close(); err != nil {
			slog.Warn("failed to close audit log", "error", err)
		}
	}
}

func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		os.Exit(1)
	}
}
