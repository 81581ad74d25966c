package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"meter-ledger/ledger"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <suffix>",
	Short: "Find source records by asset-number suffix",
	Long: `Look up records in the configured source ledger whose asset ID
ends with the given suffix (typically the last six digits). Zero, one, or
many matches are all normal outcomes; the operator confirms before adding
an entry.`,
	Args: cobra.ExactArgs(1),
	Run:  runLookup,
}

func runLookup(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	idx, err := ledger.OpenIndex(cfg.Source.Path, cfg.Source)
	exitOnError(err, "failed to load source ledger")
	slog.Debug("source ledger loaded", "path", cfg.Source.Path, "records", idx.Len())

	matches := idx.FindBySuffix(args[0])
	switch len(matches) {
	case 0:
		fmt.Printf("no record matches suffix %q\n", args[0])
	case 1:
		fmt.Println("exactly one match:")
		printSourceRecord(matches[0])
	default:
		fmt.Printf("%d records match suffix %q:\n", len(matches), args[0])
		for _, r := range matches {
			printSourceRecord(r)
		}
	}
}

func printSourceRecord(r ledger.SourceRecord) {
	fmt.Printf("  row %-5d customer=%s (%s) asset=%s meter=%s\n",
		r.Row, r.CustomerID, r.CustomerName, r.AssetID, r.MeterCode)
}
