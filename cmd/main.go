package main

import (
	"os"

	"github.com/tcfw/minechain/internal/cli"
	"github.com/tcfw/minechain/internal/utils/logging"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
