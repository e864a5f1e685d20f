package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tcfw/minechain/internal/config"
)

const (
	flagOutput = "output"
	flagIDBase = "id-base"
)

var (
	rootCmd = &cobra.Command{
		Use:           "minechain",
		Short:         "Build and mine a proof-of-work block chain in memory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase verbosity")
	viper.BindPFlag(config.Cfg_verbose, rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentFlags().StringP(flagOutput, "o", outputYAML, "output format: yaml or json")
	rootCmd.PersistentFlags().String(flagIDBase, "base32", "multibase encoding for block ids")

	regCommands()
}

func Execute() error {
	return rootCmd.Execute()
}

// signalContext is cancelled on SIGINT/SIGTERM so a long mining run can
// be stopped.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
