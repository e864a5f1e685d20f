package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tcfw/minechain/internal/config"
)

var (
	genesisCmd = &cobra.Command{
		Use:   "genesis",
		Short: "Mine a genesis block and print it",
		RunE:  runGenesis,
	}
)

func runGenesis(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, err := config.GetConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	c, err := newChain(ctx, cfg)
	if err != nil {
		return err
	}

	v, err := newBlockView(c.Tip(), c.Hasher(), idBase(cmd))
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), outputFormat(cmd), v)
}
