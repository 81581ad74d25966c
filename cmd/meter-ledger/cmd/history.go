package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"meter-ledger/ledger"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent ledger mutations from the audit trail",
	Run:   runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum events to show")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if cfg.Audit.DB == "" {
		slog.Error("no audit DB configured (audit.db in config or METER_LEDGER_AUDIT_DB)")
		os.Exit(1)
	}

	audit, err := ledger.OpenAuditLog(cfg.Audit.DB)
	exitOnError(err, "failed to open audit log")
	defer audit.Close()

	events, err := audit.Recent(historyLimit)
	exitOnError(err, "failed to read audit log")

	if len(events) == 0 {
		fmt.Println("no audit events recorded")
		return
	}
	for _, ev := range events {
		fmt.Printf("%s  %-6s row=%-3d %s  (%s)\n",
			ev.RecordedAt.Format("2006-01-02 15:04:05"), ev.Op, ev.RowIndex, ev.Summary, ev.FilePath)
	}
}
