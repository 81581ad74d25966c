package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"meter-ledger/ledger"
)

var editSets []string

var editCmd = &cobra.Command{
	Use:   "edit <index>",
	Short: "Edit fields of a recorded entry",
	Long: `Overwrite fields of the entry at the given zero-based index, as
shown by 'list'. Only replacement details are editable (new_asset_id,
original_meter_code, meter_type, seal_number, box_type, material_usage,
remark); customer identity and the timestamp are not.

Example:
  meter-ledger edit 0 --set seal_number=S-4411 --set remark="re-sealed"`,
	Args: cobra.ExactArgs(1),
	Run:  runEdit,
}

func init() {
	editCmd.Flags().StringArrayVar(&editSets, "set", nil, "field=value, repeatable (required)")
	editCmd.MarkFlagRequired("set")
}

func runEdit(cmd *cobra.Command, args []string) {
	index, err := strconv.Atoi(args[0])
	exitOnError(err, "index must be an integer")

	updates := make(map[ledger.Field]string, len(editSets))
	for _, kv := range editSets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			slog.Error("--set expects field=value", "got", kv)
			os.Exit(1)
		}
		updates[ledger.Field(strings.TrimSpace(name))] = value
	}

	cfg := loadConfig()
	store, closeStore := openStore(cfg)
	defer closeStore()

	exitOnError(store.EditAt(index, updates), "failed to edit entry")
	fmt.Printf("entry %d updated (%d field(s))\n", index, len(updates))
}
