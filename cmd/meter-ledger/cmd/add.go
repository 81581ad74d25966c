package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"meter-ledger/ledger"
)

var (
	addSuffix     string
	addNewAssetID string
	addMeterType  string
	addSeal       string
	addBoxType    string
	addMaterial   string
	addRemark     string
	addInstallers string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a replacement entry to today's ledger",
	Long: `Resolve --suffix against the source ledger and append one
completed-replacement entry to today's output workbook. The suffix must
match exactly one source record; with several matches, narrow the suffix
(lookup shows the candidates).`,
	Run: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addSuffix, "suffix", "", "asset-number suffix identifying the source record (required)")
	addCmd.Flags().StringVar(&addNewAssetID, "new-asset-id", "", "asset ID of the replacement meter (required)")
	addCmd.Flags().StringVar(&addMeterType, "meter-type", string(ledger.MeterSinglePhase), "meter type: single-phase or three-phase")
	addCmd.Flags().StringVar(&addSeal, "seal", "", "seal number")
	addCmd.Flags().StringVar(&addBoxType, "box-type", "", "cabinet configuration (e.g. single-position, pole-mounted)")
	addCmd.Flags().StringVar(&addMaterial, "material", "", "material usage, free text")
	addCmd.Flags().StringVar(&addRemark, "remark", "", "remark, free text")
	addCmd.Flags().StringVar(&addInstallers, "installers", "", "installer names (default from config)")

	addCmd.MarkFlagRequired("suffix")
	addCmd.MarkFlagRequired("new-asset-id")
}

func runAdd(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	idx, err := ledger.OpenIndex(cfg.Source.Path, cfg.Source)
	exitOnError(err, "failed to load source ledger")

	matches := idx.FindBySuffix(addSuffix)
	switch {
	case len(matches) == 0:
		slog.Error("no source record matches suffix", "suffix", addSuffix)
		os.Exit(1)
	case len(matches) > 1:
		slog.Error("suffix is ambiguous, narrow it", "suffix", addSuffix, "matches", len(matches))
		for _, r := range matches {
			printSourceRecord(r)
		}
		os.Exit(1)
	}
	src := matches[0]

	store, closeStore := openStore(cfg)
	defer closeStore()

	entry := ledger.EntryRecord{
		CustomerID:        src.CustomerID,
		CustomerName:      src.CustomerName,
		OriginalAssetID:   src.AssetID,
		OriginalMeterCode: src.MeterCode,
		NewAssetID:        addNewAssetID,
		MeterType:         ledger.MeterType(addMeterType),
		SealNumber:        addSeal,
		BoxType:           ledger.BoxType(addBoxType),
		MaterialUsage:     addMaterial,
		Installers:        addInstallers,
		Remark:            addRemark,
	}
	exitOnError(store.Append(entry), "failed to append entry")

	path, err := store.TodayPath()
	exitOnError(err, "failed to resolve today's ledger path")
	fmt.Printf("recorded replacement of asset %s (customer %s) in %s\n", src.AssetID, src.CustomerID, path)
}
