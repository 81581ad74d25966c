package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a recorded entry",
	Long: `Remove the entry at the given zero-based index from today's
ledger. Later entries shift down by one, so indices from an earlier 'list'
are stale after a delete.`,
	Args: cobra.ExactArgs(1),
	Run:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "confirm the deletion")
}

func runDelete(cmd *cobra.Command, args []string) {
	index, err := strconv.Atoi(args[0])
	exitOnError(err, "index must be an integer")

	if !deleteYes {
		slog.Error("refusing to delete without --yes")
		os.Exit(1)
	}

	cfg := loadConfig()
	store, closeStore := openStore(cfg)
	defer closeStore()

	exitOnError(store.DeleteAt(index), "failed to delete entry")
	fmt.Printf("entry %d deleted; run 'list' for fresh indices\n", index)
}
