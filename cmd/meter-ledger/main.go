package main

import (
	"os"

	"meter-ledger/cmd/meter-ledger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
