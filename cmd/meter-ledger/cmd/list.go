package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's replacement entries",
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	store, closeStore := openStore(cfg)
	defer closeStore()

	entries, err := store.Load()
	exitOnError(err, "failed to load today's ledger")

	if len(entries) == 0 {
		fmt.Println("no entries recorded today")
		return
	}
	for i, e := range entries {
		fmt.Printf("[%d] %s  customer=%s (%s)  %s -> %s  meter=%s seal=%s\n",
			i, e.RecordedAt.Format("15:04:05"), e.CustomerID, e.CustomerName,
			e.OriginalAssetID, e.NewAssetID, e.MeterType, e.SealNumber)
	}
}
